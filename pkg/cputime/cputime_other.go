//go:build !unix

package cputime

import "time"

// Now на платформах без getrusage процессорное время не измеряется
func Now() time.Duration {
	return 0
}
