package sorter

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/IPampurin/LineSorter/pkg/comparer"
)

// MergeSort сортирует lines слиянием на месте с одним вспомогательным буфером
func MergeSort(lines []string, cmp comparer.Comparer) {

	if len(lines) < 2 {
		return
	}

	buf := make([]string, len(lines))
	mergeSort(lines, buf, cmp)
}

// mergeSort сортирует a, используя buf той же длины как черновик
func mergeSort(a, buf []string, cmp comparer.Comparer) {

	if len(a) < 2 {
		return
	}

	mid := len(a) / 2
	mergeSort(a[:mid], buf[:mid], cmp)
	mergeSort(a[mid:], buf[mid:], cmp)
	mergeHalves(a, buf, mid, cmp)
}

// ParallelMergeSort сортирует lines слиянием, запуская половины в отдельных горутинах,
// пока глубина меньше opts.MaxDepth и отрезок длиннее opts.Threshold
func ParallelMergeSort(ctx context.Context, lines []string, cmp comparer.Comparer, opts Options) error {

	if len(lines) < 2 {
		return nil
	}

	opts = opts.withDefaults()
	buf := make([]string, len(lines))

	return parallelMergeSort(ctx, lines, buf, cmp, opts, 0)
}

func parallelMergeSort(ctx context.Context, a, buf []string, cmp comparer.Comparer, opts Options, depth int) error {

	if len(a) < 2 {
		return nil
	}

	// мелкие или глубокие отрезки досортировываем в текущей горутине
	if depth >= opts.MaxDepth || len(a) <= opts.Threshold {
		mergeSort(a, buf, cmp)
		return nil
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	mid := len(a) / 2

	var g errgroup.Group
	g.Go(func() error {
		return parallelMergeSort(ctx, a[:mid], buf[:mid], cmp, opts, depth+1)
	})
	g.Go(func() error {
		return parallelMergeSort(ctx, a[mid:], buf[mid:], cmp, opts, depth+1)
	})
	if err := g.Wait(); err != nil {
		return err
	}

	mergeHalves(a, buf, mid, cmp)

	return nil
}

// mergeHalves сливает отсортированные a[:mid] и a[mid:] обратно в a через buf
func mergeHalves(a, buf []string, mid int, cmp comparer.Comparer) {

	// половины уже стоят в нужном порядке
	if !cmp.IsFirstAboveSecond(a[mid], a[mid-1]) {
		return
	}

	merge(buf, a[:mid], a[mid:], cmp)
	copy(a, buf)
}

// merge сливает left и right в dst (len(dst) == len(left)+len(right)),
// при равенстве берётся строка из left, что сохраняет устойчивость
func merge(dst, left, right []string, cmp comparer.Comparer) {

	i, j, k := 0, 0, 0
	for i < len(left) && j < len(right) {
		if cmp.IsFirstAboveSecond(right[j], left[i]) {
			dst[k] = right[j]
			j++
		} else {
			dst[k] = left[i]
			i++
		}
		k++
	}

	k += copy(dst[k:], left[i:])
	copy(dst[k:], right[j:])
}
