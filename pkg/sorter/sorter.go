// Package sorter содержит алгоритмы сортировки главного списка строк.
// Встроенные сортировки стандартной библиотеки не используются,
// все алгоритмы устойчивые, поэтому для одного компаратора дают одинаковый результат.
package sorter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/IPampurin/LineSorter/pkg/comparer"
	"github.com/IPampurin/LineSorter/pkg/workerpool"
)

// ErrUnknownAlgorithm возвращается для неизвестного имени алгоритма
var ErrUnknownAlgorithm = errors.New("неизвестный алгоритм сортировки")

// значения по умолчанию для параллельной сортировки слиянием
const (
	DefaultThreshold = 1000 // размер, ниже которого новые горутины не создаются
	DefaultMaxDepth  = 3    // глубина рекурсии, после которой новые горутины не создаются
)

// Algorithm - алгоритм сортировки
type Algorithm string

const (
	Bubble         Algorithm = "bubble"          // пузырьком
	ThreadedBubble Algorithm = "threaded-bubble" // пузырьком по партициям с последующим слиянием
	Merge          Algorithm = "merge"           // слиянием
)

// ParseAlgorithm разбирает имя алгоритма
func ParseAlgorithm(s string) (Algorithm, error) {

	switch alg := Algorithm(strings.ToLower(strings.TrimSpace(s))); alg {
	case Bubble, ThreadedBubble, Merge:
		return alg, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
}

// Options - параметры параллельных вариантов
type Options struct {
	Threshold int              // порог размера для порождения горутин
	MaxDepth  int              // предельная глубина порождения горутин
	Pool      *workerpool.Pool // пул для пузырьковой сортировки партиций
}

// withDefaults подставляет значения по умолчанию вместо нулевых
func (o Options) withDefaults() Options {

	if o.Threshold <= 0 {
		o.Threshold = DefaultThreshold
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = DefaultMaxDepth
	}

	return o
}

// Sort сортирует lines на месте выбранным алгоритмом,
// parallel выбирает многопоточный вариант алгоритма
func Sort(ctx context.Context, alg Algorithm, parallel bool, lines []string, cmp comparer.Comparer, opts Options) error {

	if cmp == nil {
		return fmt.Errorf("%w: компаратор не задан", comparer.ErrInvalidSortType)
	}

	switch alg {
	case Bubble:
		// у пузырька нет своего параллельного варианта, его роль играет ThreadedBubble
		if parallel {
			return ThreadedBubbleSort(ctx, lines, cmp, opts.Pool)
		}
		BubbleSort(lines, cmp)
		return nil
	case ThreadedBubble:
		if !parallel {
			BubbleSort(lines, cmp)
			return nil
		}
		return ThreadedBubbleSort(ctx, lines, cmp, opts.Pool)
	case Merge:
		if !parallel {
			MergeSort(lines, cmp)
			return nil
		}
		return ParallelMergeSort(ctx, lines, cmp, opts)
	}

	return fmt.Errorf("%w: %q", ErrUnknownAlgorithm, string(alg))
}

// IsSorted проверяет, что ни одна строка не должна стоять выше предыдущей
func IsSorted(lines []string, cmp comparer.Comparer) bool {

	for i := 1; i < len(lines); i++ {
		if cmp.IsFirstAboveSecond(lines[i], lines[i-1]) {
			return false
		}
	}

	return true
}
