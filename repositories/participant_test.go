package repositories

import (
	"context"
	"log/slog"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"

	"batepapo-api/domain"
	"batepapo-api/storage"
)

func openBadgerStore(t *testing.T) *storage.BadgerStore {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return storage.NewBadgerStore(db, slog.Default())
}

func Test_Participant_Create_And_Find(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repo := NewParticipantRepository(openBadgerStore(t), slog.Default())

	req.NoError(repo.Create(ctx, domain.Participant{Name: "Ana", LastStatus: 100}))

	p, err := repo.FindByName(ctx, "Ana")
	req.NoError(err)
	req.Equal("Ana", p.Name)
	req.EqualValues(100, p.LastStatus)

	_, err = repo.FindByName(ctx, "Bob")
	req.ErrorIs(err, storage.ErrNoDocument)
}

func Test_Participant_Refresh(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repo := NewParticipantRepository(openBadgerStore(t), slog.Default())

	req.NoError(repo.Create(ctx, domain.Participant{Name: "Ana", LastStatus: 100}))
	req.NoError(repo.Refresh(ctx, "Ana", 250))

	p, err := repo.FindByName(ctx, "Ana")
	req.NoError(err)
	req.EqualValues(250, p.LastStatus)

	req.ErrorIs(repo.Refresh(ctx, "Bob", 250), storage.ErrNoDocument)
}

func Test_Participant_Stale_And_DeleteStale(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repo := NewParticipantRepository(openBadgerStore(t), slog.Default())

	req.NoError(repo.Create(ctx, domain.Participant{Name: "Ana", LastStatus: 50}))
	req.NoError(repo.Create(ctx, domain.Participant{Name: "Bob", LastStatus: 150}))
	req.NoError(repo.Create(ctx, domain.Participant{Name: "Carol", LastStatus: 99}))

	stale, err := repo.Stale(ctx, 100)
	req.NoError(err)
	req.Len(stale, 2)
	req.Equal("Ana", stale[0].Name)
	req.Equal("Carol", stale[1].Name)

	deleted, err := repo.DeleteStale(ctx, 100)
	req.NoError(err)
	req.Equal(2, deleted)

	left, err := repo.All(ctx)
	req.NoError(err)
	req.Len(left, 1)
	req.Equal("Bob", left[0].Name)

	// threshold boundary is strict: lastStatus == threshold survives
	stale, err = repo.Stale(ctx, 150)
	req.NoError(err)
	req.Empty(stale)
}
