package workers

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"batepapo-api/domain"
	"batepapo-api/repositories"
	"batepapo-api/storage"
)

type reaperFixture struct {
	clock        *fakeClock
	reaper       *ReaperWorker
	participants repositories.ParticipantRepository
	messages     repositories.MessageRepository
}

type fakeClock struct {
	current time.Time
}

func (c *fakeClock) Now() time.Time { return c.current }

func (c *fakeClock) Advance(d time.Duration) { c.current = c.current.Add(d) }

func newReaperFixture(t *testing.T, interval, ttl time.Duration) *reaperFixture {
	t.Helper()
	store := storage.NewMemoryStore()
	log := slog.Default()
	participants := repositories.NewParticipantRepository(store, log)
	messages := repositories.NewMessageRepository(store, log)

	clock := &fakeClock{current: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)}
	reaper := NewReaperWorker(participants, messages, log, interval, ttl)
	reaper.now = clock.Now

	return &reaperFixture{clock: clock, reaper: reaper, participants: participants, messages: messages}
}

func (f *reaperFixture) register(t *testing.T, name string) {
	t.Helper()
	err := f.participants.Create(context.Background(), domain.Participant{
		Name:       name,
		LastStatus: f.clock.Now().UnixMilli(),
	})
	require.NoError(t, err)
}

func Test_Reap_Removes_Stale_And_Broadcasts_Leave(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f := newReaperFixture(t, 15*time.Second, 10*time.Second)

	// Ana registers at t=0 and never heartbeats; the sweep at t=16 evicts her.
	f.register(t, "Ana")
	f.clock.Advance(16 * time.Second)

	req.NoError(f.reaper.reap(ctx))

	left, err := f.participants.All(ctx)
	req.NoError(err)
	req.Empty(left)

	log, err := f.messages.VisibleTo(ctx, "anyone")
	req.NoError(err)
	req.Len(log, 1)
	req.Equal("Ana", log[0].From)
	req.Equal(domain.Broadcast, log[0].To)
	req.Equal(domain.TypeStatus, log[0].Type)
	req.Equal(domain.LeftRoomText, log[0].Text)
}

func Test_Reap_Leaves_Fresh_Participants_Alone(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f := newReaperFixture(t, 15*time.Second, 10*time.Second)

	f.register(t, "Ana")
	f.clock.Advance(16 * time.Second)
	f.register(t, "Bob")

	req.NoError(f.reaper.reap(ctx))

	left, err := f.participants.All(ctx)
	req.NoError(err)
	req.Len(left, 1)
	req.Equal("Bob", left[0].Name)

	log, err := f.messages.VisibleTo(ctx, "anyone")
	req.NoError(err)
	req.Len(log, 1)
	req.Equal("Ana", log[0].From)
}

func Test_Reap_Cannot_Double_Reap(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f := newReaperFixture(t, 15*time.Second, 10*time.Second)

	f.register(t, "Ana")
	f.clock.Advance(16 * time.Second)

	req.NoError(f.reaper.reap(ctx))
	req.NoError(f.reaper.reap(ctx))
	f.clock.Advance(time.Hour)
	req.NoError(f.reaper.reap(ctx))

	log, err := f.messages.VisibleTo(ctx, "anyone")
	req.NoError(err)
	req.Len(log, 1, "a reaped participant must produce exactly one leave notice")
}

func Test_Reap_Within_TTL_Is_A_NoOp(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	f := newReaperFixture(t, 15*time.Second, 10*time.Second)

	f.register(t, "Ana")
	f.clock.Advance(9 * time.Second)

	req.NoError(f.reaper.reap(ctx))

	left, err := f.participants.All(ctx)
	req.NoError(err)
	req.Len(left, 1)

	log, err := f.messages.VisibleTo(ctx, "anyone")
	req.NoError(err)
	req.Empty(log)
}

func Test_Run_Stops_On_Context_Cancel(t *testing.T) {
	f := newReaperFixture(t, time.Millisecond, 10*time.Second)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- f.reaper.Run(ctx) }()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("reaper did not stop after cancel")
	}
}
