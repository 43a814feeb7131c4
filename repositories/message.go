//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"batepapo-api/domain"
	"batepapo-api/storage"
)

type IMessageRepository interface {
	Append(ctx context.Context, msg domain.Message) error
	VisibleTo(ctx context.Context, requester string) ([]domain.Message, error)
}

// MessageRepository is the append-only message log. Documents are never
// updated or deleted; ordering is the store's insertion order.
type MessageRepository struct {
	store storage.Store
	log   *slog.Logger
}

func NewMessageRepository(store storage.Store, log *slog.Logger) MessageRepository {
	return MessageRepository{store: store, log: log}
}

func (r MessageRepository) Append(ctx context.Context, msg domain.Message) error {
	doc, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}
	return r.store.Insert(ctx, storage.Messages, doc)
}

// VisibleTo scans the full log and keeps what the requester may read,
// preserving log order. Truncation by limit is the caller's business: it has
// to happen after this filter, never before.
func (r MessageRepository) VisibleTo(ctx context.Context, requester string) ([]domain.Message, error) {
	docs, err := r.store.FindMany(ctx, storage.Messages, func(doc []byte) bool {
		var msg domain.Message
		if err := json.Unmarshal(doc, &msg); err != nil {
			return false
		}
		return msg.VisibleTo(requester)
	})
	if err != nil {
		return nil, err
	}
	messages := make([]domain.Message, 0, len(docs))
	for _, doc := range docs {
		var msg domain.Message
		if err := json.Unmarshal(doc, &msg); err != nil {
			return nil, fmt.Errorf("unmarshal message: %w", err)
		}
		messages = append(messages, msg)
	}
	return messages, nil
}
