package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"batepapo-api/domain"
	"batepapo-api/errors"
	"batepapo-api/repositories"
	"batepapo-api/sanitize"
	"batepapo-api/storage"
)

// PresenceService handles registration, heartbeat refresh, and the presence
// snapshot. The conflict check and the insert are two separate store calls;
// registrations are serialized through mu so two concurrent Register calls
// for the same name cannot both pass the check within this process.
type PresenceService struct {
	mu           sync.Mutex
	participants repositories.IParticipantRepository
	messages     repositories.IMessageRepository
	log          *slog.Logger
	now          func() time.Time
}

func NewPresenceService(
	participants repositories.IParticipantRepository,
	messages repositories.IMessageRepository,
	log *slog.Logger,
) *PresenceService {
	return &PresenceService{
		participants: participants,
		messages:     messages,
		log:          log,
		now:          time.Now,
	}
}

// Register creates the presence record and broadcasts the join notice.
// The two writes are not transactional: a crash in between leaves a
// participant without an "entered room" message, which is accepted.
func (s *PresenceService) Register(ctx context.Context, name string) error {
	name = sanitize.Text(name)
	if name == "" {
		return errors.ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.participants.FindByName(ctx, name)
	switch {
	case err == nil:
		return errors.ErrNameTaken
	case !stderrors.Is(err, storage.ErrNoDocument):
		return fmt.Errorf("conflict check for %q: %w", name, err)
	}

	at := s.now()
	if err := s.participants.Create(ctx, domain.Participant{Name: name, LastStatus: at.UnixMilli()}); err != nil {
		return fmt.Errorf("create participant %q: %w", name, err)
	}
	if err := s.messages.Append(ctx, domain.NewStatus(name, domain.EnteredRoomText, at)); err != nil {
		return fmt.Errorf("join notice for %q: %w", name, err)
	}
	s.log.Info("Participant registered", "name", name)
	return nil
}

// Heartbeat refreshes the participant's last-seen stamp. The identity token
// is sanitized before lookup; an unknown identity is the caller's signal to
// re-register, not an internal failure.
func (s *PresenceService) Heartbeat(ctx context.Context, name string) error {
	name = sanitize.Text(name)
	err := s.participants.Refresh(ctx, name, s.now().UnixMilli())
	if stderrors.Is(err, storage.ErrNoDocument) {
		return errors.ErrUnknownParticipant
	}
	return err
}

// List returns a snapshot of the presence store. Concurrent reap cycles may
// remove entries the snapshot still shows.
func (s *PresenceService) List(ctx context.Context) ([]domain.Participant, error) {
	return s.participants.All(ctx)
}
