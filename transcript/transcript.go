// Package transcript stores the lines broadcast to a whole session in
// SQLite, so late comers can catch up.
package transcript

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/zond/tabletop"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS transcript (
	id      INTEGER PRIMARY KEY AUTOINCREMENT,
	at      INTEGER NOT NULL,
	speaker TEXT NOT NULL,
	text    TEXT NOT NULL
);`

type Entry struct {
	ID      int64  `db:"id"`
	At      int64  `db:"at"`
	Speaker string `db:"speaker"`
	Text    string `db:"text"`
}

func (e Entry) Time() time.Time {
	return time.Unix(0, e.At)
}

type Store struct {
	db  *sqlx.DB
	now func() time.Time
}

// Open opens, and if needed creates, the transcript database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sqlx.ConnectContext(ctx, "sqlite", path)
	if err != nil {
		return nil, tabletop.WithStack(err)
	}
	// SQLite serializes writers anyway, one connection avoids busy errors.
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, tabletop.WithStack(err)
	}
	return &Store{
		db:  db,
		now: time.Now,
	}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Record(ctx context.Context, speaker string, text string) error {
	if _, err := s.db.ExecContext(ctx,
		"INSERT INTO transcript (at, speaker, text) VALUES (?, ?, ?)",
		s.now().UnixNano(), speaker, text); err != nil {
		return tabletop.WithStack(err)
	}
	return nil
}

// Recent returns the n latest entries, oldest first.
func (s *Store) Recent(ctx context.Context, n int) ([]Entry, error) {
	result := []Entry{}
	if n <= 0 {
		return result, nil
	}
	if err := s.db.SelectContext(ctx, &result,
		"SELECT id, at, speaker, text FROM (SELECT * FROM transcript ORDER BY id DESC LIMIT ?) ORDER BY id ASC", n); err != nil {
		return nil, tabletop.WithStack(err)
	}
	return result, nil
}
