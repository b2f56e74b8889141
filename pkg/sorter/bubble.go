package sorter

import (
	"context"

	"github.com/IPampurin/LineSorter/pkg/comparer"
	"github.com/IPampurin/LineSorter/pkg/workerpool"
)

// BubbleSort сортирует lines пузырьком на месте,
// завершается досрочно, если за проход не было ни одной перестановки
func BubbleSort(lines []string, cmp comparer.Comparer) {

	for end := len(lines) - 1; end > 0; end-- {
		swapped := false
		for j := 0; j < end; j++ {
			// меняем только если правая строка строго выше левой - сохраняем устойчивость
			if cmp.IsFirstAboveSecond(lines[j+1], lines[j]) {
				lines[j], lines[j+1] = lines[j+1], lines[j]
				swapped = true
			}
		}
		if !swapped {
			return
		}
	}
}

// ThreadedBubbleSort делит lines на непрерывные партиции по числу воркеров пула,
// сортирует каждую пузырьком в своём воркере и затем сливает партиции попарно.
// Если пул не передан, создаётся временный пул на GOMAXPROCS воркеров
func ThreadedBubbleSort(ctx context.Context, lines []string, cmp comparer.Comparer, pool *workerpool.Pool) error {

	if len(lines) < 2 {
		return nil
	}

	if pool == nil {
		pool = workerpool.New(0)
		defer pool.Close()
	}

	bounds := pool.ParallelFor(len(lines), func(start, end int) {
		BubbleSort(lines[start:end], cmp)
	})

	// отмена могла прийти, пока партиции сортировались
	if err := ctx.Err(); err != nil {
		return err
	}

	mergeRuns(lines, bounds, cmp)

	return nil
}

// mergeRuns попарно сливает соседние отсортированные отрезки, заданные границами bounds
func mergeRuns(lines []string, bounds []int, cmp comparer.Comparer) {

	if len(bounds) <= 2 {
		return
	}

	buf := make([]string, len(lines))
	for len(bounds) > 2 {
		next := []int{0}
		for i := 0; i+1 < len(bounds); i += 2 {
			start := bounds[i]
			// нечётный последний отрезок переходит в следующий раунд как есть
			if i+2 >= len(bounds) {
				next = append(next, bounds[i+1])
				continue
			}
			mid, end := bounds[i+1], bounds[i+2]
			merge(buf[start:end], lines[start:mid], lines[mid:end], cmp)
			copy(lines[start:end], buf[start:end])
			next = append(next, end)
		}
		bounds = next
	}
}
