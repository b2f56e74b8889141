// Package workerpool - постоянный пул воркеров для сортировки партиций.
// Пул создаётся один раз на запуск и переиспользуется всеми заданиями,
// чтобы не порождать горутины на каждую сортировку.
package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool - пул воркеров, живущих до вызова Close
type Pool struct {
	numWorkers int
	workC      chan workItem
	closeOnce  sync.Once
	closed     atomic.Bool
}

// workItem - единица работы с барьером завершения
type workItem struct {
	fn      func()
	barrier *sync.WaitGroup
}

// New создаёт пул с numWorkers воркерами (при numWorkers <= 0 берётся GOMAXPROCS)
func New(numWorkers int) *Pool {

	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: numWorkers,
		workC:      make(chan workItem, numWorkers*2),
	}

	for range numWorkers {
		go p.worker()
	}

	return p
}

// worker выполняет задания из канала до его закрытия
func (p *Pool) worker() {

	for item := range p.workC {
		item.fn()
		item.barrier.Done()
	}
}

// NumWorkers возвращает количество воркеров
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Close останавливает пул, повторный вызов безопасен
func (p *Pool) Close() {

	p.closeOnce.Do(func() {
		p.closed.Store(true)
		close(p.workC)
	})
}

// Partitions делит [0, n) на parts непрерывных диапазонов почти равной длины,
// возвращает границы: диапазон i - это [bounds[i], bounds[i+1])
func Partitions(n, parts int) []int {

	if n <= 0 {
		return []int{0}
	}
	parts = max(1, min(parts, n))

	bounds := make([]int, parts+1)
	base, rest := n/parts, n%parts
	for i := range parts {
		size := base
		if i < rest {
			size++
		}
		bounds[i+1] = bounds[i] + size
	}

	return bounds
}

// ParallelFor делит [0, n) на непрерывные диапазоны по числу воркеров,
// вызывает fn(start, end) для каждого диапазона и ждёт завершения всех.
// Возвращает границы диапазонов, чтобы вызывающий мог слить результаты
func (p *Pool) ParallelFor(n int, fn func(start, end int)) []int {

	bounds := Partitions(n, p.numWorkers)
	if n <= 0 {
		return bounds
	}

	// закрытый пул или один диапазон - работаем в текущей горутине
	if p.closed.Load() || len(bounds) == 2 {
		for i := 0; i+1 < len(bounds); i++ {
			fn(bounds[i], bounds[i+1])
		}
		return bounds
	}

	var wg sync.WaitGroup
	wg.Add(len(bounds) - 1)

	for i := 0; i+1 < len(bounds); i++ {
		start, end := bounds[i], bounds[i+1]
		p.workC <- workItem{
			fn: func() {
				fn(start, end)
			},
			barrier: &wg,
		}
	}

	wg.Wait()

	return bounds
}
