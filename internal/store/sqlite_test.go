package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmeddyounes/mediatrace/api"
	_ "modernc.org/sqlite"
)

func seedDB(t *testing.T, rows [][4]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "content.db")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	_, err = db.Exec(`CREATE TABLE content_attributes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		content_id INTEGER NOT NULL,
		content_title TEXT NOT NULL DEFAULT '',
		kind TEXT NOT NULL,
		blob TEXT NOT NULL
	)`)
	require.NoError(t, err)

	for _, r := range rows {
		_, err = db.Exec(
			"INSERT INTO content_attributes (content_id, content_title, kind, blob) VALUES (?, ?, ?, ?)",
			r[0], r[1], r[2], r[3])
		require.NoError(t, err)
	}
	return path
}

func TestFetchPage(t *testing.T) {
	path := seedDB(t, [][4]any{
		{101, "Home", "_elementor_data", `[{"id":1}]`},
		{102, "About", "_elementor_data", `[{"id":2}]`},
		{103, "Contact", "_other_meta", `ignored`},
		{104, "Blog", "_elementor_data", `[{"id":3}]`},
	})
	s, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	ctx := context.Background()

	t.Run("kind filter and stable order", func(t *testing.T) {
		rows, err := s.FetchPage(ctx, PageQuery{
			Kinds: []api.BlobKind{"_elementor_data"},
			Limit: 10,
		})
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, int64(101), rows[0].ContentID)
		assert.Equal(t, "Home", rows[0].ContentTitle)
		assert.Equal(t, int64(104), rows[2].ContentID)
	})

	t.Run("pagination", func(t *testing.T) {
		q := PageQuery{Kinds: []api.BlobKind{"_elementor_data"}, Limit: 2}
		first, err := s.FetchPage(ctx, q)
		require.NoError(t, err)
		require.Len(t, first, 2)

		q.Offset = 2
		second, err := s.FetchPage(ctx, q)
		require.NoError(t, err)
		require.Len(t, second, 1)
		assert.Equal(t, int64(104), second[0].ContentID)
	})

	t.Run("pattern filter is OR of substrings", func(t *testing.T) {
		rows, err := s.FetchPage(ctx, PageQuery{
			Kinds:    []api.BlobKind{"_elementor_data"},
			Patterns: []string{`"id":1]`, `"id":3]`},
			Limit:    10,
		})
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, int64(101), rows[0].ContentID)
		assert.Equal(t, int64(104), rows[1].ContentID)
	})

	t.Run("empty kinds selects nothing", func(t *testing.T) {
		rows, err := s.FetchPage(ctx, PageQuery{Limit: 10})
		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}

func TestFetchPageEscapesPatterns(t *testing.T) {
	path := seedDB(t, [][4]any{
		{201, "A", "_k", `value with 100% literal percent`},
		{202, "B", "_k", `value with x literal percent`},
		{203, "C", "_k", `under_score`},
		{204, "D", "_k", `underXscore`},
	})
	s, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	ctx := context.Background()

	rows, err := s.FetchPage(ctx, PageQuery{
		Kinds: []api.BlobKind{"_k"}, Patterns: []string{`100% literal`}, Limit: 10,
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(201), rows[0].ContentID)

	// An unescaped _ would match any character; the escaped form must not.
	rows, err = s.FetchPage(ctx, PageQuery{
		Kinds: []api.BlobKind{"_k"}, Patterns: []string{`under_score`}, Limit: 10,
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(203), rows[0].ContentID)
}

func TestStoreIsReadOnly(t *testing.T) {
	path := seedDB(t, [][4]any{{1, "T", "_k", `{}`}})
	s, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = s.Close() }()

	_, err = s.db.Exec("DELETE FROM content_attributes")
	assert.Error(t, err, "query_only connection must refuse writes")
}
