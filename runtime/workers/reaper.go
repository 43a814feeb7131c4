package workers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"batepapo-api/domain"
	"batepapo-api/repositories"
)

// ReaperWorker is the liveness authority: on a fixed cadence it removes
// every participant whose last heartbeat is older than the TTL and
// broadcasts a "left room" notice for each one. One instance per deployment.
type ReaperWorker struct {
	participants repositories.IParticipantRepository
	messages     repositories.IMessageRepository
	log          *slog.Logger
	interval     time.Duration
	ttl          time.Duration
	now          func() time.Time
}

func NewReaperWorker(
	participants repositories.IParticipantRepository,
	messages repositories.IMessageRepository,
	log *slog.Logger,
	interval, ttl time.Duration,
) *ReaperWorker {
	return &ReaperWorker{
		participants: participants,
		messages:     messages,
		log:          log,
		interval:     interval,
		ttl:          ttl,
		now:          time.Now,
	}
}

// Run ticks every interval. Cycles run serially on this goroutine, so a slow
// cycle delays the next one instead of overlapping it. A failed cycle is
// logged and abandoned; the next tick starts fresh.
func (w *ReaperWorker) Run(ctx context.Context) error {
	w.log.Info("Starting reaper", "interval", w.interval, "ttl", w.ttl)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.reap(ctx); err != nil {
				w.log.Error("Reap cycle failed", "err", err)
			}
		}
	}
}

// reap is one expiry sweep: find the stale set, delete it in one batch, then
// append the leave notices. The delete and the notices are not atomic; a
// crash in between silently drops notices, which is accepted.
func (w *ReaperWorker) reap(ctx context.Context) error {
	threshold := w.now().Add(-w.ttl).UnixMilli()

	stale, err := w.participants.Stale(ctx, threshold)
	if err != nil {
		return fmt.Errorf("scan stale participants: %w", err)
	}
	if len(stale) == 0 {
		return nil
	}

	deleted, err := w.participants.DeleteStale(ctx, threshold)
	if err != nil {
		return fmt.Errorf("delete stale participants: %w", err)
	}
	w.log.Info("Reaped inactive participants", "count", deleted)

	for _, p := range stale {
		if err := w.messages.Append(ctx, domain.NewStatus(p.Name, domain.LeftRoomText, w.now())); err != nil {
			// Known consistency gap: the participant is already gone,
			// the room just never hears about it.
			w.log.Warn("Leave notice lost", "name", p.Name, "err", err)
		}
	}
	return nil
}
