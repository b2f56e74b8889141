package sorter

import (
	"context"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IPampurin/LineSorter/pkg/comparer"
	"github.com/IPampurin/LineSorter/pkg/generator"
	"github.com/IPampurin/LineSorter/pkg/workerpool"
)

// reference сортирует копию стандартной устойчивой сортировкой - эталон для сравнения
func reference(lines []string, cmp comparer.Comparer) []string {

	out := slices.Clone(lines)
	slices.SortStableFunc(out, func(a, b string) int {
		switch {
		case cmp.IsFirstAboveSecond(a, b):
			return -1
		case cmp.IsFirstAboveSecond(b, a):
			return 1
		}
		return 0
	})

	return out
}

// variant - один вариант сортировки под тестом
type variant struct {
	name string
	run  func(ctx context.Context, lines []string, cmp comparer.Comparer) error
}

func variants(pool *workerpool.Pool) []variant {

	// маленький порог, чтобы горутины порождались даже на тестовых данных
	small := Options{Threshold: 8, MaxDepth: 3, Pool: pool}

	return []variant{
		{"пузырёк", func(_ context.Context, l []string, c comparer.Comparer) error { BubbleSort(l, c); return nil }},
		{"пузырёк по партициям", func(ctx context.Context, l []string, c comparer.Comparer) error {
			return ThreadedBubbleSort(ctx, l, c, pool)
		}},
		{"слияние", func(_ context.Context, l []string, c comparer.Comparer) error { MergeSort(l, c); return nil }},
		{"параллельное слияние", func(ctx context.Context, l []string, c comparer.Comparer) error {
			return ParallelMergeSort(ctx, l, c, small)
		}},
		{"параллельное слияние по умолчанию", func(ctx context.Context, l []string, c comparer.Comparer) error {
			return ParallelMergeSort(ctx, l, c, Options{})
		}},
	}
}

// TestVariantsMatchReference сверяет все алгоритмы с эталоном на всех порядках
func TestVariantsMatchReference(t *testing.T) {

	pool := workerpool.New(4)
	defer pool.Close()

	inputs := map[string][]string{
		"пустой список":   {},
		"одна строка":     {"single"},
		"с префиксами":    {"abc", "ab", "a", "", "abcd", "b", "ab"},
		"дубликаты":       {"x", "y", "x", "", "y", "x", ""},
		"случайные слова": generator.Lines(700, 3),
	}

	for _, sortType := range comparer.AllSortTypes {
		cmp, err := comparer.New(sortType)
		require.NoError(t, err)

		for inputName, input := range inputs {
			want := reference(input, cmp)

			for _, v := range variants(pool) {
				t.Run(sortType.String()+"/"+inputName+"/"+v.name, func(t *testing.T) {
					got := slices.Clone(input)
					require.NoError(t, v.run(context.Background(), got, cmp))
					assert.Equal(t, want, got)
					assert.True(t, IsSorted(got, cmp))
				})
			}
		}
	}
}

// TestStability проверяет, что равные по ключу строки сохраняют исходный порядок
func TestStability(t *testing.T) {

	cmp, err := comparer.New(comparer.LastLetterAscending)
	require.NoError(t, err)

	input := []string{"3a", "1b", "2a", "", "4b", "5a"}
	want := []string{"", "3a", "2a", "5a", "1b", "4b"}

	for _, v := range variants(nil) {
		t.Run(v.name, func(t *testing.T) {
			got := slices.Clone(input)
			require.NoError(t, v.run(context.Background(), got, cmp))
			assert.Equal(t, want, got)
		})
	}
}

// TestSortDispatch проверяет выбор алгоритма и ошибки диспетчера
func TestSortDispatch(t *testing.T) {

	cmp, err := comparer.New(comparer.AlphabeticalDescending)
	require.NoError(t, err)

	input := generator.Lines(300, 11)
	want := reference(input, cmp)

	for _, alg := range []Algorithm{Bubble, ThreadedBubble, Merge} {
		for _, parallel := range []bool{false, true} {
			got := slices.Clone(input)
			require.NoError(t, Sort(context.Background(), alg, parallel, got, cmp, Options{}))
			assert.Equal(t, want, got, "%s parallel=%v", alg, parallel)
		}
	}

	err = Sort(context.Background(), Algorithm("quick"), false, []string{"b", "a"}, cmp, Options{})
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)

	err = Sort(context.Background(), Merge, false, []string{"b", "a"}, nil, Options{})
	assert.ErrorIs(t, err, comparer.ErrInvalidSortType)
}

// TestParallelMergeSortCancelled проверяет отказ при отменённом контексте
func TestParallelMergeSortCancelled(t *testing.T) {

	cmp, err := comparer.New(comparer.AlphabeticalAscending)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	lines := generator.Lines(5000, 5)
	err = ParallelMergeSort(ctx, lines, cmp, Options{Threshold: 100, MaxDepth: 2})
	assert.ErrorIs(t, err, context.Canceled)

	err = ThreadedBubbleSort(ctx, generator.Lines(50, 5), cmp, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

// TestParseAlgorithm тестирует разбор имени алгоритма
func TestParseAlgorithm(t *testing.T) {

	alg, err := ParseAlgorithm(" Merge ")
	require.NoError(t, err)
	assert.Equal(t, Merge, alg)

	alg, err = ParseAlgorithm("threaded-bubble")
	require.NoError(t, err)
	assert.Equal(t, ThreadedBubble, alg)

	_, err = ParseAlgorithm("heap")
	assert.ErrorIs(t, err, ErrUnknownAlgorithm)
}
