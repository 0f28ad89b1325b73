// SPDX-License-Identifier: MIT
// Package: lvmesh/store
//
// store.go: the SQLite snapshot repository.

package store

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/katalvlaran/lvmesh/codec"
	"github.com/katalvlaran/lvmesh/tria"
)

var (
	// ErrNotFound is returned when no snapshot is stored under a name.
	ErrNotFound = errors.New("store: snapshot not found")

	// ErrEmptyName is returned for an empty snapshot name.
	ErrEmptyName = errors.New("store: empty snapshot name")
)

// Entry summarizes one stored snapshot.
type Entry struct {
	Name        string
	Format      string
	Dim         int
	SpaceDim    int
	Levels      int
	ActiveCells int
	Vertices    int
	UpdatedAt   time.Time
}

// Option configures a Repository.
type Option func(*Repository)

// WithLogger sets the logger. Panics on nil.
func WithLogger(l *zap.Logger) Option {
	if l == nil {
		panic("store: WithLogger(nil)")
	}
	return func(r *Repository) { r.log = l }
}

// WithCodec sets the codec new snapshots are written with. Rows written
// with another codec stay readable. Panics on nil.
func WithCodec(c codec.Codec) Option {
	if c == nil {
		panic("store: WithCodec(nil)")
	}
	return func(r *Repository) { r.codec = c }
}

// Repository stores snapshots in SQLite. It is safe for concurrent use.
type Repository struct {
	db    *sql.DB
	codec codec.Codec
	log   *zap.Logger
}

// New opens (creating if needed) the database at path. ":memory:" gives a
// private in-memory database.
func New(path string, opts ...Option) (*Repository, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	repo := &Repository{db: db, codec: codec.NewYAMLCodec(), log: zap.NewNop()}
	for _, opt := range opts {
		opt(repo)
	}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	repo.log.Debug("snapshot store opened", zap.String("path", path))

	return repo, nil
}

func (r *Repository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		name TEXT PRIMARY KEY,
		format TEXT NOT NULL,
		dim INTEGER NOT NULL,
		spacedim INTEGER NOT NULL,
		levels INTEGER NOT NULL,
		active_cells INTEGER NOT NULL,
		vertices INTEGER NOT NULL,
		data BLOB NOT NULL,
		updated_at INTEGER NOT NULL
	);
	`

	_, err := r.db.Exec(schema)
	return err
}

// Close closes the database.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Save stores the current state of tr under name, replacing any previous
// snapshot of that name.
func (r *Repository) Save(ctx context.Context, name string, tr *tria.Triangulation) error {
	if name == "" {
		return ErrEmptyName
	}
	var buf bytes.Buffer
	if err := r.codec.Export(tr.Snapshot(), &buf); err != nil {
		return fmt.Errorf("failed to encode snapshot %q: %w", name, err)
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO snapshots (name, format, dim, spacedim, levels, active_cells, vertices, data, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			format = excluded.format,
			dim = excluded.dim,
			spacedim = excluded.spacedim,
			levels = excluded.levels,
			active_cells = excluded.active_cells,
			vertices = excluded.vertices,
			data = excluded.data,
			updated_at = excluded.updated_at
	`, name, r.codec.Format(), tr.Dim(), tr.SpaceDim(), tr.NLevels(), tr.NActiveCells(), tr.NUsedVertices(),
		buf.Bytes(), time.Now().UTC().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to save snapshot %q: %w", name, err)
	}
	r.log.Debug("snapshot saved",
		zap.String("name", name),
		zap.String("format", r.codec.Format()),
		zap.Int("bytes", buf.Len()),
		zap.Int("active_cells", tr.NActiveCells()))

	return nil
}

// Get returns the snapshot stored under name.
func (r *Repository) Get(ctx context.Context, name string) (*tria.Snapshot, error) {
	var (
		format string
		data   []byte
	)
	err := r.db.QueryRowContext(ctx, `SELECT format, data FROM snapshots WHERE name = ?`, name).Scan(&format, &data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot %q: %w", name, err)
	}
	c, err := codec.ForFormat(format)
	if err != nil {
		return nil, fmt.Errorf("snapshot %q: %w", name, err)
	}
	snap, err := c.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("snapshot %q: %w", name, err)
	}

	return snap, nil
}

// Load replaces the content of tr with the snapshot stored under name.
func (r *Repository) Load(ctx context.Context, name string, tr *tria.Triangulation) error {
	snap, err := r.Get(ctx, name)
	if err != nil {
		return err
	}
	if err := tr.Load(snap); err != nil {
		return fmt.Errorf("failed to load snapshot %q: %w", name, err)
	}
	r.log.Debug("snapshot loaded", zap.String("name", name), zap.Int("active_cells", tr.NActiveCells()))

	return nil
}

// List returns the stored snapshots ordered by name.
func (r *Repository) List(ctx context.Context) ([]Entry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT name, format, dim, spacedim, levels, active_cells, vertices, updated_at
		FROM snapshots
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e       Entry
			updated int64
		)
		if err := rows.Scan(&e.Name, &e.Format, &e.Dim, &e.SpaceDim, &e.Levels, &e.ActiveCells, &e.Vertices, &updated); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		e.UpdatedAt = time.UnixMilli(updated).UTC()
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshots: %w", err)
	}

	return out, nil
}

// Delete removes the snapshot stored under name.
func (r *Repository) Delete(ctx context.Context, name string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM snapshots WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete snapshot %q: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	r.log.Debug("snapshot deleted", zap.String("name", name))

	return nil
}
