//go:generate go run go.uber.org/mock/mockgen -source=participant.go -destination=../mocks/mock_participant_repository.go -package=mocks
package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"batepapo-api/domain"
	"batepapo-api/storage"
)

type IParticipantRepository interface {
	Create(ctx context.Context, p domain.Participant) error
	FindByName(ctx context.Context, name string) (domain.Participant, error)
	All(ctx context.Context) ([]domain.Participant, error)
	Refresh(ctx context.Context, name string, lastStatus int64) error
	Stale(ctx context.Context, threshold int64) ([]domain.Participant, error)
	DeleteStale(ctx context.Context, threshold int64) (int, error)
}

// ParticipantRepository persists presence records as JSON documents in the
// "participants" collection.
type ParticipantRepository struct {
	store storage.Store
	log   *slog.Logger
}

func NewParticipantRepository(store storage.Store, log *slog.Logger) ParticipantRepository {
	return ParticipantRepository{store: store, log: log}
}

func (r ParticipantRepository) Create(ctx context.Context, p domain.Participant) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal participant: %w", err)
	}
	return r.store.Insert(ctx, storage.Participants, doc)
}

func (r ParticipantRepository) FindByName(ctx context.Context, name string) (domain.Participant, error) {
	doc, err := r.store.FindOne(ctx, storage.Participants, byName(name))
	if err != nil {
		return domain.Participant{}, err
	}
	var p domain.Participant
	if err := json.Unmarshal(doc, &p); err != nil {
		return domain.Participant{}, fmt.Errorf("unmarshal participant: %w", err)
	}
	return p, nil
}

func (r ParticipantRepository) All(ctx context.Context) ([]domain.Participant, error) {
	docs, err := r.store.FindMany(ctx, storage.Participants, func([]byte) bool { return true })
	if err != nil {
		return nil, err
	}
	return decodeParticipants(docs)
}

// Refresh moves the participant's last-seen stamp forward. The patch decodes
// and re-encodes the stored document so unknown fields are not silently kept.
func (r ParticipantRepository) Refresh(ctx context.Context, name string, lastStatus int64) error {
	return r.store.UpdateOne(ctx, storage.Participants, byName(name), func(doc []byte) ([]byte, error) {
		var p domain.Participant
		if err := json.Unmarshal(doc, &p); err != nil {
			return nil, fmt.Errorf("unmarshal participant: %w", err)
		}
		p.LastStatus = lastStatus
		return json.Marshal(p)
	})
}

// Stale returns every participant whose last activity is strictly older than
// the threshold, in registration order.
func (r ParticipantRepository) Stale(ctx context.Context, threshold int64) ([]domain.Participant, error) {
	docs, err := r.store.FindMany(ctx, storage.Participants, olderThan(threshold))
	if err != nil {
		return nil, err
	}
	return decodeParticipants(docs)
}

// DeleteStale removes the same set Stale would return, in one batch call.
func (r ParticipantRepository) DeleteStale(ctx context.Context, threshold int64) (int, error) {
	return r.store.DeleteMany(ctx, storage.Participants, olderThan(threshold))
}

func byName(name string) storage.Predicate {
	return func(doc []byte) bool {
		var p domain.Participant
		if err := json.Unmarshal(doc, &p); err != nil {
			return false
		}
		return p.Name == name
	}
}

func olderThan(threshold int64) storage.Predicate {
	return func(doc []byte) bool {
		var p domain.Participant
		if err := json.Unmarshal(doc, &p); err != nil {
			return false
		}
		return p.LastStatus < threshold
	}
}

func decodeParticipants(docs [][]byte) ([]domain.Participant, error) {
	participants := make([]domain.Participant, 0, len(docs))
	for _, doc := range docs {
		var p domain.Participant
		if err := json.Unmarshal(doc, &p); err != nil {
			return nil, fmt.Errorf("unmarshal participant: %w", err)
		}
		participants = append(participants, p)
	}
	return participants, nil
}
