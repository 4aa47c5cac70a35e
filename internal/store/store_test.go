package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "revisions.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveRevision_VersionsIncrement(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	v1, err := s.SaveRevision(ctx, "ada", "Button", "source v1", Changeset{Property: "padding", Value: "p-4"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), v1)

	v2, err := s.SaveRevision(ctx, "ada", "Button", "source v2", Changeset{Property: "padding", Value: "p-6"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), v2)

	// A different component starts its own version stream.
	v, err := s.SaveRevision(ctx, "ada", "Card", "card v1", Changeset{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	// Same component under a different owner is independent too.
	v, err = s.SaveRevision(ctx, "grace", "Button", "other v1", Changeset{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)
}

func TestLatestAndGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.SaveRevision(ctx, "ada", "Button", "v1", Changeset{ElementID: "el-0", Property: "padding", Value: "p-4"})
	require.NoError(t, err)
	_, err = s.SaveRevision(ctx, "ada", "Button", "v2", Changeset{ElementID: "el-0", Property: "padding", Value: "p-6"})
	require.NoError(t, err)

	latest, err := s.Latest(ctx, "ada", "Button")
	require.NoError(t, err)
	assert.Equal(t, int64(2), latest.Version)
	assert.Equal(t, "v2", latest.Source)
	assert.Equal(t, "p-6", latest.Changeset.Value)
	assert.False(t, latest.CreatedAt.IsZero())

	first, err := s.Get(ctx, "ada", "Button", 1)
	require.NoError(t, err)
	assert.Equal(t, "v1", first.Source)
	assert.Equal(t, "p-4", first.Changeset.Value)
}

func TestHistory_NewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, src := range []string{"v1", "v2", "v3"} {
		_, err := s.SaveRevision(ctx, "ada", "Button", src, Changeset{})
		require.NoError(t, err)
	}

	history, err := s.History(ctx, "ada", "Button")
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, int64(3), history[0].Version)
	assert.Equal(t, "v3", history[0].Source)
	assert.Equal(t, int64(1), history[2].Version)
}

func TestNotFound(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.Latest(ctx, "ada", "Missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Get(ctx, "ada", "Missing", 1)
	assert.ErrorIs(t, err, ErrNotFound)

	history, err := s.History(ctx, "ada", "Missing")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestOpen_InMemory(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	_, err = s.SaveRevision(context.Background(), "", "X", "src", Changeset{})
	assert.NoError(t, err)
}
