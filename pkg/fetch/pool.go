package fetch

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Task is a unit of work executed by the pool.
type Task func(ctx context.Context) error

// Pool runs tasks across a small fixed set of workers and joins on all of
// them. It exists to parallelize the independent portal page fetches inside a
// single sync; it is not a general job queue.
type Pool struct {
	workers int
	logger  *zap.Logger
}

// NewPool builds a pool with the given worker count.
func NewPool(workers int, logger *zap.Logger) *Pool {
	if workers <= 0 {
		workers = 2
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pool{workers: workers, logger: logger}
}

// Run executes all tasks and blocks until every task has settled. There is no
// fail-fast: a failure in one task never aborts the others. The returned
// error is the failure of the lowest-indexed failed task, which keeps the
// surfaced error deterministic when several tasks fail at once.
func (p *Pool) Run(ctx context.Context, tasks ...Task) error {
	if len(tasks) == 0 {
		return nil
	}

	type job struct {
		index int
		task  Task
	}

	jobs := make(chan job)
	errs := make([]error, len(tasks))

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for j := range jobs {
				if err := j.task(ctx); err != nil {
					p.logger.Warn("pool task failed",
						zap.Int("worker", worker),
						zap.Int("task", j.index),
						zap.Error(err))
					errs[j.index] = err
				}
			}
		}(i + 1)
	}

	for i, t := range tasks {
		jobs <- job{index: i, task: t}
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
