package store

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ahmeddyounes/mediatrace/api"
	_ "modernc.org/sqlite"
)

const (
	busyTimeoutMS   = 5000
	maxOpenConns    = 1
	maxIdleConns    = 1
	connMaxLifetime = 5 * time.Minute
)

// SQLite implements ContentStore over a content_attributes table:
//
//	CREATE TABLE content_attributes (
//	  id            INTEGER PRIMARY KEY,
//	  content_id    INTEGER NOT NULL,
//	  content_title TEXT NOT NULL DEFAULT '',
//	  kind          TEXT NOT NULL,
//	  blob          TEXT NOT NULL
//	);
//
// The table may equally be a view over the host platform's own schema, as
// long as id gives a stable ascending order. The connection is opened in
// query-only mode — this store never writes.
type SQLite struct {
	db *sql.DB
}

// Open opens the content database read-only.
func Open(path string) (*SQLite, error) {
	dsn, err := sqliteDSN(path)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if err := configureDB(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLite{db: db}, nil
}

// Close closes the underlying database connection.
func (s *SQLite) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// FetchPage implements ContentStore.
func (s *SQLite) FetchPage(ctx context.Context, q PageQuery) ([]api.ContentBlob, error) {
	if len(q.Kinds) == 0 || q.Limit <= 0 {
		return nil, nil
	}

	var sb strings.Builder
	sb.WriteString("SELECT content_id, content_title, kind, blob FROM content_attributes WHERE kind IN (")
	args := make([]any, 0, len(q.Kinds)+len(q.Patterns)+2)
	for i, k := range q.Kinds {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("?")
		args = append(args, string(k))
	}
	sb.WriteString(")")

	if len(q.Patterns) > 0 {
		sb.WriteString(" AND (")
		for i, p := range q.Patterns {
			if i > 0 {
				sb.WriteString(" OR ")
			}
			sb.WriteString(`blob LIKE ? ESCAPE '\'`)
			args = append(args, "%"+s.EscapeLike(p)+"%")
		}
		sb.WriteString(")")
	}

	sb.WriteString(" ORDER BY id ASC LIMIT ? OFFSET ?")
	args = append(args, q.Limit, q.Offset)

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("query content_attributes: %w", err)
	}
	defer func() { _ = rows.Close() }() // safe to ignore

	var out []api.ContentBlob
	for rows.Next() {
		var b api.ContentBlob
		var kind string
		if err := rows.Scan(&b.ContentID, &b.ContentTitle, &kind, &b.Raw); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		b.Kind = api.BlobKind(kind)
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return out, nil
}

// EscapeLike implements ContentStore. %, _ and the escape character itself
// are neutralized so patterns match literally.
func (s *SQLite) EscapeLike(text string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(text)
}

func configureDB(db *sql.DB) error {
	// Probe once so a bad path fails at Open, not on the first scan.
	if err := db.Ping(); err != nil {
		return fmt.Errorf("configure sqlite: %w", err)
	}

	// Single connection: the engine is single-threaded per invocation.
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)
	return nil
}

// sqliteDSN carries the pragmas in the DSN so they apply to every
// connection the pool opens, not just the first.
func sqliteDSN(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("db path is required")
	}
	u := url.URL{
		Scheme:   "file",
		Path:     path,
		RawQuery: fmt.Sprintf("_pragma=query_only(1)&_pragma=busy_timeout(%d)", busyTimeoutMS),
	}
	return u.String(), nil
}
