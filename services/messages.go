package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/abadojack/whatlanggo"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"batepapo-api/domain"
	"batepapo-api/errors"
	"batepapo-api/moderation"
	"batepapo-api/repositories"
	"batepapo-api/sanitize"
	"batepapo-api/search"
	"batepapo-api/storage"
)

// MessageService validates submissions against current presence, appends to
// the log, and reads it back through the per-requester visibility filter.
type MessageService struct {
	participants repositories.IParticipantRepository
	messages     repositories.IMessageRepository
	censor       *moderation.Censor
	index        *search.Index
	log          *slog.Logger
	now          func() time.Time
}

// NewMessageService wires the router. censor and index may be nil; posting
// then skips moderation and search indexing respectively.
func NewMessageService(
	participants repositories.IParticipantRepository,
	messages repositories.IMessageRepository,
	censor *moderation.Censor,
	index *search.Index,
	log *slog.Logger,
) *MessageService {
	return &MessageService{
		participants: participants,
		messages:     messages,
		censor:       censor,
		index:        index,
		log:          log,
		now:          time.Now,
	}
}

// Post appends a user-facing message. The sender must resolve to a live
// participant at this instant; a reaped identity gets ErrUserDisconnected and
// is expected to re-register. Any live participant may address any name,
// live or not.
func (s *MessageService) Post(ctx context.Context, from, to, text string, t domain.MessageType) (domain.Message, error) {
	from = sanitize.Text(from)

	_, err := s.participants.FindByName(ctx, from)
	switch {
	case stderrors.Is(err, storage.ErrNoDocument):
		return domain.Message{}, errors.ErrUserDisconnected
	case err != nil:
		return domain.Message{}, fmt.Errorf("liveness check for %q: %w", from, err)
	}

	text = sanitize.Text(text)
	if s.censor != nil {
		censored, words := s.censor.Apply(text)
		if len(words) > 0 {
			info := whatlanggo.Detect(text)
			s.log.Warn("Censored words in message",
				"from", from,
				"words", words,
				"lang", info.Lang.Iso6391())
			text = censored
		}
	}

	msg := domain.Message{
		ID:   uuid.New(),
		From: from,
		To:   to,
		Text: text,
		Type: t,
		Time: s.now().Format(domain.TimeLayout),
	}
	if err := s.messages.Append(ctx, msg); err != nil {
		return domain.Message{}, fmt.Errorf("append message: %w", err)
	}
	if s.index != nil {
		// Index failures lose a search hit, never a message.
		if err := s.index.Add(msg); err != nil {
			s.log.Warn("Indexing message failed", "id", msg.ID, "err", err)
		}
	}
	return msg, nil
}

// List returns the last limit messages visible to the requester, in log
// order. The filter runs over the whole log first, so the truncation always
// yields the most recent visible messages. limit <= 0 means unlimited.
func (s *MessageService) List(ctx context.Context, requester string, limit int) ([]domain.Message, error) {
	requester = sanitize.Text(requester)
	visible, err := s.messages.VisibleTo(ctx, requester)
	if err != nil {
		return nil, err
	}
	return tail(visible, limit), nil
}

// Search runs a full-text query over message text, then applies the same
// visibility rule List enforces.
func (s *MessageService) Search(ctx context.Context, requester, query string, limit int) ([]domain.Message, error) {
	if s.index == nil {
		return nil, nil
	}
	requester = sanitize.Text(requester)

	max := limit
	if max <= 0 {
		max = 100
	}
	hits, err := s.index.Search(ctx, query, max)
	if err != nil {
		return nil, err
	}
	visible := lo.Filter(hits, func(msg domain.Message, _ int) bool {
		return msg.VisibleTo(requester)
	})
	return tail(visible, limit), nil
}

func tail(messages []domain.Message, limit int) []domain.Message {
	if limit > 0 && len(messages) > limit {
		return messages[len(messages)-limit:]
	}
	return messages
}
