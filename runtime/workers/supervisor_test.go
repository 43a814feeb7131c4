package workers

import (
	"context"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type panickyWorker struct {
	runs atomic.Int32
}

func (w *panickyWorker) Run(context.Context) error {
	if w.runs.Add(1) == 1 {
		panic("first run explodes")
	}
	return nil
}

type blockedWorker struct{}

func (blockedWorker) Run(ctx context.Context) error {
	<-ctx.Done()
	return ctx.Err()
}

func Test_Supervisor_Restarts_After_Panic(t *testing.T) {
	worker := &panickyWorker{}
	sup := NewSupervisor(slog.Default(), time.Millisecond).Add(worker)

	done := make(chan struct{})
	go func() {
		sup.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("supervisor did not finish")
	}
	require.EqualValues(t, 2, worker.runs.Load())
}

func Test_Supervisor_Stop_Cancels_Workers(t *testing.T) {
	sup := NewSupervisor(slog.Default(), time.Millisecond).Add(blockedWorker{})

	done := make(chan struct{})
	go func() {
		sup.Run(context.Background())
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	sup.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("supervisor did not stop")
	}
}

func Test_Worker_Name(t *testing.T) {
	require.Equal(t, "panickyWorker", Name(&panickyWorker{}))
	require.Equal(t, "blockedWorker", Name(blockedWorker{}))
	require.Equal(t, "NilWorker", Name(nil))
}
