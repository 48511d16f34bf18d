package offload

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

type nopMetrics struct{}

func (nopMetrics) InitEndpoint(string) {}
func (nopMetrics) IncCorrectRequests(string) {}
func (nopMetrics) RecordRequest(string, string) {}
func (nopMetrics) ObserveHTTPRequest(string, string, string, time.Duration) {}
func (nopMetrics) ObserveInference(string, string, time.Duration) {}
func (nopMetrics) RecordCacheLookup(string) {}
func (nopMetrics) RecordWorkerPoolStatus(int, int, int) {}
func (nopMetrics) SetQueueDepth(int) {}

func newTestPool(t *testing.T, size, queueSize int) *Pool {
	t.Helper()

	p := NewPool(size, queueSize, nopMetrics{}, zap.NewNop(), time.Hour)
	if err := p.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = p.Shutdown(ctx)
	})
	return p
}

func TestSubmit_ReturnsResult(t *testing.T) {
	p := newTestPool(t, 2, 4)

	f, err := Submit(p, func(ctx context.Context) (string, error) {
		return "blue", nil
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	got, err := f.Await(context.Background())
	if err != nil {
		t.Fatalf("Await() error = %v", err)
	}
	if got != "blue" {
		t.Errorf("Await() = %q, want %q", got, "blue")
	}
}

func TestSubmit_PropagatesTaskError(t *testing.T) {
	p := newTestPool(t, 1, 1)
	wantErr := errors.New("model exploded")

	f, err := Submit(p, func(ctx context.Context) (int, error) {
		return 0, wantErr
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if _, err := f.Await(context.Background()); !errors.Is(err, wantErr) {
		t.Errorf("Await() error = %v, want %v", err, wantErr)
	}
}

func TestSubmit_RecoversPanic(t *testing.T) {
	p := newTestPool(t, 1, 1)

	f, err := Submit(p, func(ctx context.Context) (int, error) {
		panic("index out of range")
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if _, err := f.Await(context.Background()); !errors.Is(err, ErrTaskPanicked) {
		t.Fatalf("Await() error = %v, want ErrTaskPanicked", err)
	}

	// The worker survives the panic
	f, err = Submit(p, func(ctx context.Context) (int, error) {
		return 42, nil
	})
	if err != nil {
		t.Fatalf("Submit() after panic error = %v", err)
	}
	got, err := f.Await(context.Background())
	if err != nil || got != 42 {
		t.Errorf("Await() after panic = %d, %v, want 42, nil", got, err)
	}
}

func TestSubmit_SaturatedQueue(t *testing.T) {
	p := newTestPool(t, 1, 1)

	started := make(chan struct{}, 1)
	release := make(chan struct{})
	defer close(release)

	blocking := func(ctx context.Context) (struct{}, error) {
		select {
		case started <- struct{}{}:
		default:
		}
		<-release
		return struct{}{}, nil
	}

	if _, err := Submit(p, blocking); err != nil {
		t.Fatalf("first Submit() error = %v", err)
	}
	<-started

	if _, err := Submit(p, blocking); err != nil {
		t.Fatalf("queued Submit() error = %v", err)
	}

	if _, err := Submit(p, blocking); !errors.Is(err, ErrPoolSaturated) {
		t.Errorf("third Submit() error = %v, want ErrPoolSaturated", err)
	}
}

func TestSubmit_BeforeStart(t *testing.T) {
	p := NewPool(2, 4, nopMetrics{}, zap.NewNop(), time.Hour)

	if got := p.Size(); got != 2 {
		t.Errorf("Size() = %d, want 2", got)
	}

	_, err := Submit(p, func(ctx context.Context) (int, error) { return 1, nil })
	if !errors.Is(err, ErrPoolNotStarted) {
		t.Errorf("Submit() error = %v, want ErrPoolNotStarted", err)
	}
	if got := p.QueueDepth(); got != 0 {
		t.Errorf("QueueDepth() = %d, want 0", got)
	}
}

func TestSubmit_AfterShutdown(t *testing.T) {
	p := NewPool(1, 1, nopMetrics{}, zap.NewNop(), time.Hour)
	if err := p.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := p.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}

	_, err := Submit(p, func(ctx context.Context) (int, error) { return 1, nil })
	if !errors.Is(err, ErrPoolClosed) {
		t.Errorf("Submit() error = %v, want ErrPoolClosed", err)
	}

	if err := p.Start(); !errors.Is(err, ErrPoolClosed) {
		t.Errorf("Start() after Shutdown error = %v, want ErrPoolClosed", err)
	}
}

func TestFuture_AwaitHonorsCallerContext(t *testing.T) {
	p := newTestPool(t, 1, 1)

	release := make(chan struct{})
	f, err := Submit(p, func(ctx context.Context) (string, error) {
		<-release
		return "late", nil
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, err := f.Await(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Await() error = %v, want DeadlineExceeded", err)
	}

	// The task keeps running after the caller gave up
	close(release)
	select {
	case <-f.Done():
	case <-time.After(time.Second):
		t.Fatal("task did not complete after caller gave up")
	}
	if got, err := f.Await(context.Background()); err != nil || got != "late" {
		t.Errorf("Await() = %q, %v, want late, nil", got, err)
	}
}

func TestPool_BoundsConcurrency(t *testing.T) {
	const size = 3
	const tasks = 20
	p := newTestPool(t, size, tasks)

	var inFlight, maxInFlight int64
	futures := make([]*Future[int], 0, tasks)

	for i := 0; i < tasks; i++ {
		i := i
		f, err := Submit(p, func(ctx context.Context) (int, error) {
			n := atomic.AddInt64(&inFlight, 1)
			for {
				cur := atomic.LoadInt64(&maxInFlight)
				if n <= cur || atomic.CompareAndSwapInt64(&maxInFlight, cur, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt64(&inFlight, -1)
			return i, nil
		})
		if err != nil {
			t.Fatalf("Submit(%d) error = %v", i, err)
		}
		futures = append(futures, f)
	}

	for i, f := range futures {
		got, err := f.Await(context.Background())
		if err != nil || got != i {
			t.Errorf("future %d = %d, %v", i, got, err)
		}
	}

	if maxInFlight > size {
		t.Errorf("max in-flight tasks = %d, want <= %d", maxInFlight, size)
	}
}

func TestPool_ShutdownDrainsQueue(t *testing.T) {
	p := NewPool(1, 8, nopMetrics{}, zap.NewNop(), time.Hour)
	if err := p.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	var mu sync.Mutex
	ran := 0
	for i := 0; i < 5; i++ {
		if _, err := Submit(p, func(ctx context.Context) (struct{}, error) {
			time.Sleep(time.Millisecond)
			mu.Lock()
			ran++
			mu.Unlock()
			return struct{}{}, nil
		}); err != nil {
			t.Fatalf("Submit() error = %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := p.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if ran != 5 {
		t.Errorf("tasks run before shutdown = %d, want 5", ran)
	}
}

func TestPool_ShutdownTimeout(t *testing.T) {
	p := NewPool(1, 1, nopMetrics{}, zap.NewNop(), time.Hour)
	if err := p.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	started := make(chan struct{})
	if _, err := Submit(p, func(ctx context.Context) (struct{}, error) {
		close(started)
		<-ctx.Done()
		return struct{}{}, ctx.Err()
	}); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := p.Shutdown(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Shutdown() error = %v, want DeadlineExceeded", err)
	}
}

func TestHealthMonitor_Status(t *testing.T) {
	p := NewPool(2, 2, nopMetrics{}, zap.NewNop(), time.Hour)

	if p.Health().IsHealthy() {
		t.Error("IsHealthy() before Start = true, want false")
	}

	if err := p.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	status := p.Health().GetStatus()
	if !status.Healthy || status.TotalWorkers != 2 || status.StoppedWorkers != 0 {
		t.Errorf("GetStatus() after Start = %+v", status)
	}

	if err := p.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}

	status = p.Health().GetStatus()
	if status.Healthy || status.StoppedWorkers != 2 {
		t.Errorf("GetStatus() after Shutdown = %+v", status)
	}
}

func TestHealthMonitor_NotifiesListeners(t *testing.T) {
	p := NewPool(1, 1, nopMetrics{}, zap.NewNop(), time.Hour)

	got := make(chan *HealthStatus, 1)
	p.Health().OnStatus(func(s *HealthStatus) {
		select {
		case got <- s:
		default:
		}
	})

	if err := p.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer p.Shutdown(context.Background())

	select {
	case s := <-got:
		if s.TotalWorkers != 1 {
			t.Errorf("listener status TotalWorkers = %d, want 1", s.TotalWorkers)
		}
	case <-time.After(time.Second):
		t.Fatal("listener was not notified")
	}
}
