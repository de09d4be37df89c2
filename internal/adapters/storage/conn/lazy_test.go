package conn

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type handle struct{ n int32 }

func TestLazy_ConcurrentFirstCallsShareOneAttempt(t *testing.T) {
	var opens, events atomic.Int32
	release := make(chan struct{})

	l := New[*handle]("memory", func(ctx context.Context) (*handle, error) {
		n := opens.Add(1)
		<-release
		return &handle{n: n}, nil
	}, nil, nil)
	l.OnConnect = func(string) { events.Add(1) }

	const callers = 16
	var wg sync.WaitGroup
	got := make([]*handle, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i], errs[i] = l.Connect(context.Background())
		}(i)
	}

	// dar tiempo a que todos entren al intento en vuelo
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if opens.Load() != 1 {
		t.Fatalf("expected 1 open, got %d", opens.Load())
	}
	if events.Load() != 1 {
		t.Fatalf("expected 1 connection event, got %d", events.Load())
	}
	for i := range got {
		if errs[i] != nil {
			t.Fatalf("caller %d: %v", i, errs[i])
		}
		if got[i] != got[0] {
			t.Fatalf("caller %d got a different handle", i)
		}
	}

	// ya listo: no vuelve a abrir
	if _, err := l.Connect(context.Background()); err != nil {
		t.Fatalf("connect after ready: %v", err)
	}
	if opens.Load() != 1 {
		t.Fatalf("expected still 1 open, got %d", opens.Load())
	}
}

func TestLazy_FailedAttemptIsNotCached(t *testing.T) {
	var opens atomic.Int32
	boom := errors.New("dial tcp: refused")

	l := New[*handle]("mongo", func(ctx context.Context) (*handle, error) {
		if opens.Add(1) == 1 {
			return nil, boom
		}
		return &handle{}, nil
	}, nil, nil)

	if _, err := l.Connect(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	h, err := l.Connect(context.Background())
	if err != nil || h == nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if opens.Load() != 2 {
		t.Fatalf("expected 2 opens, got %d", opens.Load())
	}
}

func TestLazy_CallerCancelDoesNotAbortSharedAttempt(t *testing.T) {
	release := make(chan struct{})
	l := New[*handle]("sqlite", func(ctx context.Context) (*handle, error) {
		<-release
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return &handle{}, nil
	}, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := l.Connect(ctx)
		done <- err
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()
	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("expected canceled, got %v", err)
	}

	other := make(chan error, 1)
	go func() {
		_, err := l.Connect(context.Background())
		other <- err
	}()
	time.Sleep(20 * time.Millisecond)
	close(release)

	if err := <-other; err != nil {
		t.Fatalf("second caller should get the shared connection: %v", err)
	}
}

func TestLazy_Close(t *testing.T) {
	var closed atomic.Int32
	l := New[*handle]("postgres", func(ctx context.Context) (*handle, error) {
		return &handle{}, nil
	}, func(*handle) error {
		closed.Add(1)
		return nil
	}, nil)

	if err := l.Close(); err != nil || closed.Load() != 0 {
		t.Fatalf("close before connect should be a no-op")
	}
	if _, err := l.Connect(context.Background()); err != nil {
		t.Fatalf("connect: %v", err)
	}
	if err := l.Close(); err != nil || closed.Load() != 1 {
		t.Fatalf("expected one close, got %d (%v)", closed.Load(), err)
	}
}
