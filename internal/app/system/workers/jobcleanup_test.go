package workers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
)

type fakeDeleter struct {
	mu    sync.Mutex
	calls []time.Time
	n     int64
	err   error
}

func (f *fakeDeleter) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, now)
	return f.n, f.err
}

func (f *fakeDeleter) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func TestJobCleanup_SweepUsesClock(t *testing.T) {
	d := &fakeDeleter{n: 2}
	w := NewJobCleanup(d, zap.NewNop(), time.Hour)
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	w.now = func() time.Time { return fixed }

	if got := w.sweep(); got != 2 {
		t.Errorf("sweep = %d, want 2", got)
	}
	if len(d.calls) != 1 || !d.calls[0].Equal(fixed) {
		t.Errorf("DeleteExpired called with %v, want %v", d.calls, fixed)
	}
}

func TestJobCleanup_SweepErrorIsLogged(t *testing.T) {
	w := NewJobCleanup(&fakeDeleter{err: errors.New("db down")}, zap.NewNop(), time.Hour)
	if got := w.sweep(); got != 0 {
		t.Errorf("sweep = %d on error, want 0", got)
	}
}

func TestJobCleanup_StartStop(t *testing.T) {
	d := &fakeDeleter{}
	w := NewJobCleanup(d, zap.NewNop(), 10*time.Millisecond)
	w.Start()

	deadline := time.Now().Add(2 * time.Second)
	for d.count() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	w.Stop()

	if d.count() == 0 {
		t.Fatal("worker never swept")
	}
	after := d.count()
	time.Sleep(30 * time.Millisecond)
	if d.count() != after {
		t.Error("worker kept sweeping after Stop")
	}
}
