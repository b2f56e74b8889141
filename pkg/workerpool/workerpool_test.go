package workerpool

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestPartitions проверяет разбиение диапазона на части
func TestPartitions(t *testing.T) {

	tests := []struct {
		name     string
		n        int
		parts    int
		expected []int
	}{
		{"пустой диапазон", 0, 4, []int{0}},
		{"ровное деление", 8, 4, []int{0, 2, 4, 6, 8}},
		{"остаток уходит в первые части", 10, 4, []int{0, 3, 6, 8, 10}},
		{"частей больше элементов", 3, 8, []int{0, 1, 2, 3}},
		{"неположительное число частей", 5, 0, []int{0, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Partitions(tt.n, tt.parts))
		})
	}
}

// TestParallelForCoversRange проверяет, что каждый индекс обработан ровно один раз
func TestParallelForCoversRange(t *testing.T) {

	pool := New(4)
	defer pool.Close()

	const n = 1003
	var hits [n]atomic.Int32

	bounds := pool.ParallelFor(n, func(start, end int) {
		for i := start; i < end; i++ {
			hits[i].Add(1)
		}
	})

	assert.Len(t, bounds, 5)
	for i := range hits {
		assert.Equal(t, int32(1), hits[i].Load(), "индекс %d", i)
	}
}

// TestParallelForAfterClose проверяет последовательный запуск на закрытом пуле
func TestParallelForAfterClose(t *testing.T) {

	pool := New(3)
	pool.Close()
	pool.Close()

	var total atomic.Int64
	pool.ParallelFor(10, func(start, end int) {
		total.Add(int64(end - start))
	})

	assert.Equal(t, int64(10), total.Load())
}

// TestNewDefaultsToGOMAXPROCS проверяет число воркеров по умолчанию
func TestNewDefaultsToGOMAXPROCS(t *testing.T) {

	pool := New(0)
	defer pool.Close()

	assert.Positive(t, pool.NumWorkers())
}
