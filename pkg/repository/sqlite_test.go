package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestSQLiteRepo(t *testing.T) *SQLiteRepository[doc] {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scala40-test.db")
	repo, err := NewSQLiteRepository[doc](path, "test_docs")
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSQLiteRepository_PutGetRoundTrip(t *testing.T) {
	repo := newTestSQLiteRepo(t)
	ctx := context.Background()

	version, err := repo.Put(ctx, "g1", doc{Value: "a"}, NewDocument)
	require.NoError(t, err)
	require.Equal(t, int64(1), version)

	got, gotVersion, err := repo.Get(ctx, "g1")
	require.NoError(t, err)
	require.Equal(t, int64(1), gotVersion)
	require.Equal(t, "a", got.Value)
}

func TestSQLiteRepository_PutNewDocumentTwiceFails(t *testing.T) {
	repo := newTestSQLiteRepo(t)
	ctx := context.Background()

	_, err := repo.Put(ctx, "g1", doc{Value: "a"}, NewDocument)
	require.NoError(t, err)

	_, err = repo.Put(ctx, "g1", doc{Value: "b"}, NewDocument)
	require.ErrorIs(t, err, ErrAlreadyExists)
}

func TestSQLiteRepository_PutStaleVersionFails(t *testing.T) {
	repo := newTestSQLiteRepo(t)
	ctx := context.Background()

	v1, err := repo.Put(ctx, "g1", doc{Value: "a"}, NewDocument)
	require.NoError(t, err)

	v2, err := repo.Put(ctx, "g1", doc{Value: "b"}, v1)
	require.NoError(t, err)
	require.Equal(t, v1+1, v2)

	_, err = repo.Put(ctx, "g1", doc{Value: "c"}, v1)
	require.ErrorIs(t, err, ErrVersionConflict)
}

func TestSQLiteRepository_GetMissingReturnsNotFound(t *testing.T) {
	repo := newTestSQLiteRepo(t)
	_, _, err := repo.Get(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteRepository_DeleteRequiresMatchingVersion(t *testing.T) {
	repo := newTestSQLiteRepo(t)
	ctx := context.Background()

	v1, err := repo.Put(ctx, "g1", doc{Value: "a"}, NewDocument)
	require.NoError(t, err)

	err = repo.Delete(ctx, "g1", v1+1)
	require.ErrorIs(t, err, ErrVersionConflict)

	err = repo.Delete(ctx, "g1", v1)
	require.NoError(t, err)

	_, _, err = repo.Get(ctx, "g1")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteRepository_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scala40-reopen.db")

	repo1, err := NewSQLiteRepository[doc](path, "test_docs")
	require.NoError(t, err)
	_, err = repo1.Put(context.Background(), "g1", doc{Value: "persisted"}, NewDocument)
	require.NoError(t, err)
	require.NoError(t, repo1.Close())

	repo2, err := NewSQLiteRepository[doc](path, "test_docs")
	require.NoError(t, err)
	defer repo2.Close()

	got, version, err := repo2.Get(context.Background(), "g1")
	require.NoError(t, err)
	require.Equal(t, int64(1), version)
	require.Equal(t, "persisted", got.Value)
}
