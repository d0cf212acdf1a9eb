package workerpool

import "sync"

// Job is a unit of work submitted to a Dispatcher.
type Job[T any] struct {
	Task func() (T, error)
}

// JobResult carries one finished job's value or error.
type JobResult[T any] struct {
	Result T
	Err    error
}

// Dispatcher runs submitted jobs on a fixed number of workers. Jobs are
// sent to JobQueue and finished results arrive on ResultQueue in
// completion order.
type Dispatcher[T any] struct {
	JobQueue    chan Job[T]
	ResultQueue chan JobResult[T]

	numWorkers int
	quit       chan struct{}
}

// NewDispatcher returns a dispatcher with numWorkers workers. The workers
// do not start until Run is called.
func NewDispatcher[T any](numWorkers int) *Dispatcher[T] {
	return &Dispatcher[T]{
		JobQueue:    make(chan Job[T]),
		ResultQueue: make(chan JobResult[T]),
		numWorkers:  numWorkers,
		quit:        make(chan struct{}),
	}
}

// Run starts the workers and blocks until Stop is called and every worker
// has exited, then closes ResultQueue.
func (d *Dispatcher[T]) Run() {
	var wg sync.WaitGroup
	wg.Add(d.numWorkers)
	for i := 0; i < d.numWorkers; i++ {
		go func() {
			defer wg.Done()
			d.work()
		}()
	}
	wg.Wait()
	close(d.ResultQueue)
}

// Stop terminates the workers. A worker blocked delivering an unread
// result drops it and exits. Stop must be called exactly once.
func (d *Dispatcher[T]) Stop() {
	close(d.quit)
}

func (d *Dispatcher[T]) work() {
	for {
		select {
		case job := <-d.JobQueue:
			result, err := job.Task()
			select {
			case d.ResultQueue <- JobResult[T]{Result: result, Err: err}:
			case <-d.quit:
				return
			}
		case <-d.quit:
			return
		}
	}
}
