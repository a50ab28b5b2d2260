package memory

import (
	"context"
	"testing"

	"didilikeit/internal/domain/entity"
	"didilikeit/internal/domain/repository"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_ReadReplace(t *testing.T) {
	ctx := context.Background()
	store := New(&entity.LogEntry{ID: "1", OwnerEmail: "a@example.com", Title: "Dune"})

	snapshot, err := store.ReadAll(ctx)
	require.NoError(t, err)
	require.Len(t, snapshot.Rows, 1)

	snapshot.Rows[0].Title = "mutated"
	assert.Equal(t, "Dune", store.Rows()[0].Title)

	next := append(snapshot.Rows, &entity.LogEntry{ID: "2", Title: "Arrival"})
	require.NoError(t, store.ReplaceAll(ctx, next, snapshot.Version))
	assert.Len(t, store.Rows(), 2)

	err = store.ReplaceAll(ctx, nil, snapshot.Version)
	require.ErrorIs(t, err, repository.ErrVersionMismatch)
	assert.Len(t, store.Rows(), 2)

	require.NoError(t, store.ReplaceAll(ctx, nil, ""))
	assert.Empty(t, store.Rows())
}

func TestStore_Unavailable(t *testing.T) {
	ctx := context.Background()
	store := New()
	store.SetUnavailable(errors.New("quota exceeded"))

	_, err := store.ReadAll(ctx)
	require.ErrorIs(t, err, repository.ErrStoreUnavailable)

	err = store.ReplaceAll(ctx, nil, "")
	require.ErrorIs(t, err, repository.ErrStoreUnavailable)

	store.SetUnavailable(nil)
	_, err = store.ReadAll(ctx)
	require.NoError(t, err)
}

func TestStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().ReadAll(ctx)
	require.ErrorIs(t, err, repository.ErrStoreUnavailable)
	require.ErrorIs(t, err, context.Canceled)
}
