package workers

import "context"

// WorkerFunc lets a plain function serve as a [Worker].
type WorkerFunc func(ctx context.Context)

func (f WorkerFunc) Run(ctx context.Context) { f(ctx) }

// Workers starts a fixed set of background workers together.
type Workers struct {
	workers []Worker
}

func NewWorkers(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

// Run starts every worker in registration order. Nil entries are skipped.
func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		if worker == nil {
			continue
		}
		worker.Run(ctx)
	}
}
