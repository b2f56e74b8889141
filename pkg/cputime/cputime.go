// Package cputime измеряет процессорное время процесса - аналог clock() для отчёта о задании.
package cputime

import "time"

// Clock - секундомер астрономического и процессорного времени
type Clock struct {
	wall time.Time
	cpu  time.Duration
}

// Start запускает секундомер
func Start() Clock {
	return Clock{wall: time.Now(), cpu: Now()}
}

// Stop возвращает прошедшее астрономическое и процессорное время
func (c Clock) Stop() (wall, cpu time.Duration) {
	return time.Since(c.wall), Now() - c.cpu
}
