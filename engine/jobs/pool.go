// Package jobs runs background work for the engine, primarily asset
// resolution. The main loop never blocks on a job; completion is observed
// by polling whatever state the job mutates.
package jobs

import (
	"fmt"
	"sync"

	"github.com/mirafall/strafe/engine/core"
)

var ErrNoWorkers = fmt.Errorf("attempting to create worker pool with less than 1 worker")
var ErrNegativeQueueSize = fmt.Errorf("attempting to create worker pool with a negative queue size")

// Task is one unit of background work. Run executes on a worker; exactly
// one of OnComplete/OnFailure fires afterwards when set.
type Task struct {
	Run        func() error
	OnComplete func()
	OnFailure  func(error)
}

type Pool struct {
	numWorkers int
	queue      chan Task
	wg         sync.WaitGroup
}

func NewPool(numWorkers int, queueSize int) (*Pool, error) {
	if numWorkers <= 0 {
		return nil, ErrNoWorkers
	}
	if queueSize < 0 {
		return nil, ErrNegativeQueueSize
	}

	p := &Pool{
		numWorkers: numWorkers,
		queue:      make(chan Task, queueSize),
	}
	p.start()

	return p, nil
}

func (p *Pool) start() {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for task := range p.queue {
				if err := task.Run(); err != nil {
					core.LogError("job failed: %s", err.Error())
					if task.OnFailure != nil {
						task.OnFailure(err)
					}
					continue
				}
				if task.OnComplete != nil {
					task.OnComplete()
				}
			}
		}()
	}
}

// Submit queues the task, blocking if the queue is full.
func (p *Pool) Submit(t Task) {
	p.queue <- t
}

// Shutdown drains the queue and stops the workers.
func (p *Pool) Shutdown() error {
	close(p.queue)
	p.wg.Wait()
	return nil
}
