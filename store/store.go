// Package store persists session collections and pass runs in a sqlite file, so output
// collections survive between invocations of the command line tool
package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/notargets/gojoint/host"
)

const schema = `
CREATE TABLE IF NOT EXISTS collections (
	name    TEXT PRIMARY KEY,
	role_id INTEGER NOT NULL,
	kind    INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS members (
	collection TEXT NOT NULL,
	position   INTEGER NOT NULL,
	member     INTEGER NOT NULL,
	PRIMARY KEY (collection, position)
);
CREATE TABLE IF NOT EXISTS children (
	parent   TEXT NOT NULL,
	position INTEGER NOT NULL,
	child    TEXT NOT NULL,
	PRIMARY KEY (parent, position)
);
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	pass       TEXT NOT NULL,
	started    TEXT NOT NULL,
	components INTEGER NOT NULL,
	skipped    INTEGER NOT NULL
);`

// Run is the record of one pass execution
type Run struct {
	ID         uuid.UUID
	Pass       string
	Started    time.Time
	Components int
	Skipped    int
}

type Store struct {
	db *sql.DB
}

// Open creates or opens the state file at path
func Open(ctx context.Context, path string) (s *Store, err error) {
	var db *sql.DB
	if db, err = sql.Open("sqlite", path); err != nil {
		return nil, errors.Wrapf(err, "opening state %s", path)
	}
	// A single connection serializes writers
	db.SetMaxOpenConns(1)
	if _, err = db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, errors.Wrapf(err, "creating schema in %s", path)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SaveCollections replaces the stored collections with cols
func (s *Store) SaveCollections(ctx context.Context, cols []*host.Collection) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin")
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()
	for _, table := range []string{"collections", "members", "children"} {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return errors.Wrapf(err, "clearing %s", table)
		}
	}
	for _, c := range cols {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO collections (name, role_id, kind) VALUES (?, ?, ?)`,
			c.Name, c.RoleID, int(c.Kind)); err != nil {
			return errors.Wrapf(err, "saving collection %q", c.Name)
		}
		for i, m := range c.Members {
			if _, err = tx.ExecContext(ctx,
				`INSERT INTO members (collection, position, member) VALUES (?, ?, ?)`,
				c.Name, i, m); err != nil {
				return errors.Wrapf(err, "saving members of %q", c.Name)
			}
		}
		for i, child := range c.Children {
			if _, err = tx.ExecContext(ctx,
				`INSERT INTO children (parent, position, child) VALUES (?, ?, ?)`,
				c.Name, i, child); err != nil {
				return errors.Wrapf(err, "saving children of %q", c.Name)
			}
		}
	}
	return errors.Wrap(tx.Commit(), "commit")
}

// LoadCollections returns the stored collections ordered by name, members in insertion order
func (s *Store) LoadCollections(ctx context.Context) (cols []*host.Collection, err error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, role_id, kind FROM collections ORDER BY name`)
	if err != nil {
		return nil, errors.Wrap(err, "loading collections")
	}
	byName := make(map[string]*host.Collection)
	for rows.Next() {
		var (
			c    = &host.Collection{}
			kind int
		)
		if err = rows.Scan(&c.Name, &c.RoleID, &kind); err != nil {
			rows.Close()
			return nil, errors.Wrap(err, "scanning collection")
		}
		c.Kind = host.CollectionKind(kind)
		cols = append(cols, c)
		byName[c.Name] = c
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if rows, err = s.db.QueryContext(ctx,
		`SELECT collection, member FROM members ORDER BY collection, position`); err != nil {
		return nil, errors.Wrap(err, "loading members")
	}
	for rows.Next() {
		var (
			name   string
			member int
		)
		if err = rows.Scan(&name, &member); err != nil {
			rows.Close()
			return nil, errors.Wrap(err, "scanning member")
		}
		if c, ok := byName[name]; ok {
			c.Members = append(c.Members, member)
		}
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if rows, err = s.db.QueryContext(ctx,
		`SELECT parent, child FROM children ORDER BY parent, position`); err != nil {
		return nil, errors.Wrap(err, "loading children")
	}
	defer rows.Close()
	for rows.Next() {
		var parent, child string
		if err = rows.Scan(&parent, &child); err != nil {
			return nil, errors.Wrap(err, "scanning child")
		}
		if c, ok := byName[parent]; ok {
			c.Children = append(c.Children, child)
		}
	}
	return cols, rows.Err()
}

// Restore installs every stored collection into the session, returning how many were restored
func (s *Store) Restore(ctx context.Context, sess *host.Session) (n int, err error) {
	cols, err := s.LoadCollections(ctx)
	if err != nil {
		return
	}
	for _, c := range cols {
		sess.RestoreCollection(c)
	}
	return len(cols), nil
}

func (s *Store) RecordRun(ctx context.Context, r Run) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, pass, started, components, skipped) VALUES (?, ?, ?, ?, ?)`,
		r.ID.String(), r.Pass, r.Started.UTC().Format(time.RFC3339Nano), r.Components, r.Skipped)
	return errors.Wrapf(err, "recording run %s", r.ID)
}

// Runs returns the recorded runs, oldest first
func (s *Store) Runs(ctx context.Context) (runs []Run, err error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, pass, started, components, skipped FROM runs ORDER BY started, id`)
	if err != nil {
		return nil, errors.Wrap(err, "loading runs")
	}
	defer rows.Close()
	for rows.Next() {
		var (
			r           Run
			id, started string
		)
		if err = rows.Scan(&id, &r.Pass, &started, &r.Components, &r.Skipped); err != nil {
			return nil, errors.Wrap(err, "scanning run")
		}
		if r.ID, err = uuid.Parse(id); err != nil {
			return nil, errors.Wrapf(err, "run id %q", id)
		}
		if r.Started, err = time.Parse(time.RFC3339Nano, started); err != nil {
			return nil, errors.Wrapf(err, "run %s start time", id)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
