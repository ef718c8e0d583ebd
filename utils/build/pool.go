package build

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Task reads one source file and writes one destination file
type Task struct {
	Job  string // Job the task belongs to, e.g. "hdr presets"
	Src  string
	Dest string
	Run  func() (Entry, error)
}

// RunTasks executes tasks on a pool of at most jobs workers. Every task runs
// to completion even when some fail; all failures are returned joined.
func RunTasks(jobs int, tasks []Task, report *Report) error {
	if jobs < 1 {
		jobs = 1
	}

	var (
		g    errgroup.Group
		mu   sync.Mutex
		errs []error
	)
	g.SetLimit(jobs)

	for _, task := range tasks {
		g.Go(func() error {
			entry, err := task.Run()
			if err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %s: %w", task.Job, task.Src, err))
				mu.Unlock()
				return nil
			}
			if report != nil {
				report.Add(entry)
			}
			return nil
		})
	}

	_ = g.Wait()
	return errors.Join(errs...)
}
