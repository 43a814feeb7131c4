//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=../mocks/mock_store.go -package=mocks
package storage

import (
	"context"
	"errors"
)

// Collection names used by the repositories.
const (
	Participants = "participants"
	Messages     = "messages"
)

// ErrNoDocument is returned by FindOne and UpdateOne when nothing matches.
var ErrNoDocument = errors.New("no document matches the predicate")

// Predicate selects documents by inspecting their encoded form.
type Predicate func(doc []byte) bool

// Patch produces the replacement for a matched document.
type Patch func(doc []byte) ([]byte, error)

// Store is the document-store contract the whole system is written against.
// Each call is individually atomic; sequences of calls are not. Documents
// within a collection keep their insertion order on every scan.
type Store interface {
	Insert(ctx context.Context, collection string, doc []byte) error
	FindOne(ctx context.Context, collection string, match Predicate) ([]byte, error)
	FindMany(ctx context.Context, collection string, match Predicate) ([][]byte, error)
	DeleteMany(ctx context.Context, collection string, match Predicate) (int, error)
	UpdateOne(ctx context.Context, collection string, match Predicate, patch Patch) error
}
