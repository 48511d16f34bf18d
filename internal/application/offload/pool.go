package offload

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/aescanero/qaserve/pkg/ports"
	"go.uber.org/zap"
)

var (
	// ErrPoolSaturated is returned when the task queue is full
	ErrPoolSaturated = errors.New("offload pool saturated")

	// ErrPoolNotStarted is returned before Start has been called
	ErrPoolNotStarted = errors.New("offload pool not started")

	// ErrPoolClosed is returned once Shutdown has been called
	ErrPoolClosed = errors.New("offload pool closed")

	// ErrTaskPanicked wraps the value recovered from a panicking task
	ErrTaskPanicked = errors.New("offload task panicked")
)

// Pool manages a pool of worker goroutines
type Pool struct {
	size      int
	queueSize int
	metrics   ports.MetricsCollector
	logger    *zap.Logger
	health    *HealthMonitor

	queue   chan job
	workers []*worker
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc

	mu      sync.RWMutex
	started bool
	closed  bool
}

// job is a queued unit of work, already bound to its future
type job func(ctx context.Context)

// worker represents a single worker goroutine
type worker struct {
	id      string
	pool    *Pool
	status  WorkerStatus
	mu      sync.RWMutex
	lastJob time.Time
}

// WorkerStatus represents worker status
type WorkerStatus string

const (
	WorkerStatusIdle    WorkerStatus = "idle"
	WorkerStatusBusy    WorkerStatus = "busy"
	WorkerStatusStopped WorkerStatus = "stopped"
)

// NewPool creates a new worker pool. A queueSize of zero hands tasks
// directly to idle workers.
func NewPool(
	size int,
	queueSize int,
	metrics ports.MetricsCollector,
	logger *zap.Logger,
	healthCheckInterval time.Duration,
) *Pool {
	ctx, cancel := context.WithCancel(context.Background())

	pool := &Pool{
		size:      size,
		queueSize: queueSize,
		metrics:   metrics,
		logger:    logger,
		queue:     make(chan job, queueSize),
		workers:   make([]*worker, size),
		ctx:       ctx,
		cancel:    cancel,
	}

	for i := 0; i < size; i++ {
		pool.workers[i] = &worker{
			id:     fmt.Sprintf("worker-%d", i),
			pool:   pool,
			status: WorkerStatusStopped,
		}
	}

	pool.health = NewHealthMonitor(pool, healthCheckInterval, logger)

	return pool
}

// Start starts the worker pool
func (p *Pool) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPoolClosed
	}
	if p.started {
		return fmt.Errorf("offload pool already started")
	}
	p.started = true

	p.logger.Info("starting offload pool",
		zap.Int("size", p.size),
		zap.Int("queue_size", p.queueSize))

	for _, w := range p.workers {
		w.setStatus(WorkerStatusIdle)
		p.wg.Add(1)
		go w.run()
	}

	// Start health monitor
	p.health.Start()

	p.logger.Info("offload pool started", zap.Int("workers", p.size))
	return nil
}

// Shutdown stops accepting tasks, drains the queue and waits for the
// workers. Running tasks see their context cancelled only if ctx expires
// first.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.logger.Info("shutting down offload pool")

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	// Stop health monitor
	p.health.Stop()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.cancel()
		p.logger.Info("offload pool shut down complete")
		return nil
	case <-ctx.Done():
		p.cancel()
		return fmt.Errorf("offload pool shutdown timeout: %w", ctx.Err())
	}
}

// Health returns the pool's health monitor
func (p *Pool) Health() *HealthMonitor {
	return p.health
}

// Size returns the number of workers
func (p *Pool) Size() int {
	return p.size
}

// QueueDepth returns the number of tasks waiting for a worker
func (p *Pool) QueueDepth() int {
	return len(p.queue)
}

// GetStatus returns the status of all workers
func (p *Pool) GetStatus() map[string]WorkerStatus {
	status := make(map[string]WorkerStatus)
	for _, w := range p.workers {
		w.mu.RLock()
		status[w.id] = w.status
		w.mu.RUnlock()
	}
	return status
}

// enqueue hands a job to the queue without blocking
func (p *Pool) enqueue(j job) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPoolClosed
	}
	if !p.started {
		return ErrPoolNotStarted
	}

	select {
	case p.queue <- j:
		p.metrics.SetQueueDepth(len(p.queue))
		return nil
	default:
		return ErrPoolSaturated
	}
}

// Submit queues task on the pool and returns a future for its result.
// The task receives the pool's context, not the caller's.
func Submit[T any](p *Pool, task func(ctx context.Context) (T, error)) (*Future[T], error) {
	f := &Future[T]{done: make(chan struct{})}

	j := func(ctx context.Context) {
		defer close(f.done)
		defer func() {
			if r := recover(); r != nil {
				p.logger.Error("offload task panicked",
					zap.Any("panic", r),
					zap.ByteString("stack", debug.Stack()))
				f.err = fmt.Errorf("%w: %v", ErrTaskPanicked, r)
			}
		}()

		f.value, f.err = task(ctx)
	}

	if err := p.enqueue(j); err != nil {
		return nil, err
	}

	return f, nil
}

// run is the main worker loop
func (w *worker) run() {
	defer w.pool.wg.Done()

	w.pool.logger.Debug("worker started", zap.String("worker_id", w.id))

	for j := range w.pool.queue {
		w.mu.Lock()
		w.status = WorkerStatusBusy
		w.lastJob = time.Now()
		w.mu.Unlock()

		w.pool.metrics.SetQueueDepth(len(w.pool.queue))
		j(w.pool.ctx)

		w.setStatus(WorkerStatusIdle)
	}

	w.setStatus(WorkerStatusStopped)
	w.pool.logger.Debug("worker stopped", zap.String("worker_id", w.id))
}

func (w *worker) setStatus(status WorkerStatus) {
	w.mu.Lock()
	w.status = status
	w.mu.Unlock()
}
