package archive

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_EmptyDSN(t *testing.T) {
	_, err := Open(context.Background(), "  ")
	require.ErrorIs(t, err, ErrNoDSN)
}

func TestOpen_SQLitePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "archive.db")
	st, err := Open(context.Background(), "sqlite://"+path)
	require.NoError(t, err)
	defer st.Close()

	assert.IsType(t, &SQLite{}, st)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestSQLite_AddList(t *testing.T) {
	ctx := context.Background()
	st, err := OpenSQLite(filepath.Join(t.TempDir(), "archive.db"))
	require.NoError(t, err)
	defer st.Close()

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i := range 3 {
		id, err := st.Add(ctx, Article{
			RunID:     fmt.Sprintf("run-%d", i),
			VideoID:   "abc123",
			Repo:      "owner/repo",
			Title:     fmt.Sprintf("Post %d", i),
			Path:      fmt.Sprintf("generated_blogs/blog_%d.md", i),
			Body:      "# body",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
		assert.Equal(t, int64(i+1), id)
	}

	got, err := st.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "run-2", got[0].RunID)
	assert.Equal(t, "run-1", got[1].RunID)
	assert.Equal(t, "Post 2", got[0].Title)
	assert.True(t, got[0].CreatedAt.Equal(base.Add(2*time.Minute)))
	assert.Empty(t, got[0].Body, "list omits bodies")
}

func TestSQLite_ListEmpty(t *testing.T) {
	st, err := OpenSQLite(filepath.Join(t.TempDir(), "archive.db"))
	require.NoError(t, err)
	defer st.Close()

	got, err := st.List(context.Background(), 0)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSQLite_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "archive.db")

	st, err := OpenSQLite(path)
	require.NoError(t, err)
	_, err = st.Add(ctx, Article{RunID: "r", VideoID: "v", Repo: "o/r", Path: "p"})
	require.NoError(t, err)
	require.NoError(t, st.Close())

	st, err = OpenSQLite(path)
	require.NoError(t, err)
	defer st.Close()
	got, err := st.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.False(t, got[0].CreatedAt.IsZero())
}

func TestClampLimit(t *testing.T) {
	tests := []struct{ in, want int }{
		{0, defaultListLimit},
		{-5, defaultListLimit},
		{7, 7},
		{10_000, maxListLimit},
	}
	for _, tt := range tests {
		if got := clampLimit(tt.in); got != tt.want {
			t.Errorf("clampLimit(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

// TestPostgres_AddList runs against a real server when ARCHIVE_TEST_PG_DSN is set.
func TestPostgres_AddList(t *testing.T) {
	dsn := os.Getenv("ARCHIVE_TEST_PG_DSN")
	if dsn == "" {
		t.Skip("ARCHIVE_TEST_PG_DSN not set")
	}
	ctx := context.Background()
	st, err := Open(ctx, dsn)
	require.NoError(t, err)
	defer st.Close()

	runID := fmt.Sprintf("test-%d", time.Now().UnixNano())
	_, err = st.Add(ctx, Article{RunID: runID, VideoID: "v", Repo: "o/r", Path: "p", Body: "b"})
	require.NoError(t, err)

	got, err := st.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, runID, got[0].RunID)
}
