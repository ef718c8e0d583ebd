package config

import (
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
)

const maxJobs = 32

// DefaultJobs returns the worker count for the build pool: the number of
// logical CPUs, clamped to [1, 32].
func DefaultJobs() int {
	count, err := cpu.Counts(true)
	if err != nil || count <= 0 {
		count = runtime.NumCPU()
	}
	return ClampJobs(count)
}

// ClampJobs bounds a requested worker count. Zero or negative means "use the default".
func ClampJobs(n int) int {
	if n <= 0 {
		return DefaultJobs()
	}
	if n > maxJobs {
		return maxJobs
	}
	return n
}
