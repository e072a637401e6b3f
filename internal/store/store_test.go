package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("", zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestHighScoreMissingProfile(t *testing.T) {
	s := openTestStore(t)
	score, err := s.HighScore(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Zero(t, score)
}

func TestCommitOnlyWhenStrictlyExceeded(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	written, err := s.Commit(ctx, "ace", 1500, 1)
	require.NoError(t, err)
	assert.True(t, written)

	written, err = s.Commit(ctx, "ace", 1500, 2)
	require.NoError(t, err)
	assert.False(t, written, "equal score is not a new record")

	written, err = s.Commit(ctx, "ace", 900, 3)
	require.NoError(t, err)
	assert.False(t, written)

	score, err := s.HighScore(ctx, "ace")
	require.NoError(t, err)
	assert.Equal(t, 1500, score)

	written, err = s.Commit(ctx, "ace", 1501, 2)
	require.NoError(t, err)
	assert.True(t, written)

	score, err = s.HighScore(ctx, "ace")
	require.NoError(t, err)
	assert.Equal(t, 1501, score)
}

func TestCommitZeroScoreSkipped(t *testing.T) {
	s := openTestStore(t)
	written, err := s.Commit(context.Background(), "rookie", 0, 1)
	require.NoError(t, err)
	assert.False(t, written)

	top, err := s.Top(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, top)
}

func TestTopOrdering(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	for profile, score := range map[string]int{"a": 300, "b": 900, "c": 600} {
		_, err := s.Commit(ctx, profile, score, 1)
		require.NoError(t, err)
	}

	top, err := s.Top(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "b", top[0].Profile)
	assert.Equal(t, "c", top[1].Profile)
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.db")
	ctx := context.Background()

	s, err := Open(path, zerolog.Nop())
	require.NoError(t, err)
	_, err = s.Commit(ctx, "local", 4200, 3)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path, zerolog.Nop())
	require.NoError(t, err)
	defer s.Close()
	score, err := s.HighScore(ctx, "local")
	require.NoError(t, err)
	assert.Equal(t, 4200, score)
}
