package cputime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestClock проверяет, что секундомер не уходит в минус при нагрузке
func TestClock(t *testing.T) {

	clock := Start()

	// немного работы для процессора
	sum := 0
	for i := range 5_000_000 {
		sum += i % 7
	}
	assert.Positive(t, sum)

	wall, cpu := clock.Stop()
	assert.Positive(t, wall)
	assert.GreaterOrEqual(t, cpu, time.Duration(0))
}
