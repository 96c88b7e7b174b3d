// Package sqlite is the file backed provider used for the persistent core.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"github.com/cockroachdb/errors"
	"github.com/yuyang0/kvstorage/types"

	_ "modernc.org/sqlite"
)

var tableRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type Store struct {
	db    *sql.DB
	table string
}

func New(cfg *types.SQLiteConfig) (*Store, error) {
	if !tableRe.MatchString(cfg.Table) {
		return nil, errors.Wrapf(types.ErrInvalidTable, "%q", cfg.Table)
	}
	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open sqlite database %s", cfg.Path)
	}
	// busy_timeout waits up to 5 seconds for locks to clear
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "failed to set busy_timeout")
	}
	// a single connection keeps ":memory:" databases alive and serializes writers
	db.SetMaxOpenConns(1)

	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (key TEXT PRIMARY KEY, value BLOB NOT NULL)`, cfg.Table)
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "failed to create table %s", cfg.Table)
	}
	return &Store{
		db:    db,
		table: cfg.Table,
	}, nil
}

func (s *Store) Set(ctx context.Context, k string, v []byte) error {
	if v == nil {
		v = []byte{}
	}
	q := fmt.Sprintf(`INSERT INTO %s (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value`, s.table)
	_, err := s.db.ExecContext(ctx, q, k, v)
	return errors.Wrapf(err, "failed to set %s", k)
}

func (s *Store) Get(ctx context.Context, k string) ([]byte, error) {
	var v []byte
	q := fmt.Sprintf(`SELECT value FROM %s WHERE key = ?`, s.table)
	err := s.db.QueryRowContext(ctx, q, k).Scan(&v)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "failed to get %s", k)
	}
	if v == nil {
		v = []byte{}
	}
	return v, nil
}

func (s *Store) Remove(ctx context.Context, k string) error {
	q := fmt.Sprintf(`DELETE FROM %s WHERE key = ?`, s.table)
	_, err := s.db.ExecContext(ctx, q, k)
	return errors.Wrapf(err, "failed to remove %s", k)
}

func (s *Store) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s`, s.table))
	return errors.Wrapf(err, "failed to clear table %s", s.table)
}

func (s *Store) Close() error {
	return s.db.Close()
}
