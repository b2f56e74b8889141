//go:build unix

package cputime

import (
	"time"

	"golang.org/x/sys/unix"
)

// Now возвращает суммарное (user + system) процессорное время процесса
func Now() time.Duration {

	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return 0
	}

	return time.Duration(ru.Utime.Nano() + ru.Stime.Nano())
}
