// Package sqlite stores instances in a single SQLite table.
// Uses WAL mode so an interrupted flush never leaves a half-written store.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)

	"github.com/hbnb-network/hbnb/internal/domain"
	"github.com/hbnb-network/hbnb/internal/infra/storage"
)

const backend = "sqlite"

// DB is a domain.Storage backed by SQLite. The in-memory index is the
// source of truth between flushes.
type DB struct {
	db      *sql.DB
	reg     domain.Registry
	objects *domain.Objects
	logger  *slog.Logger
}

// Open creates or opens the database at path.
func Open(path string, reg domain.Registry, logger *slog.Logger) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dsn := "file:" + path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite is single-writer
	db.SetMaxIdleConns(1)

	if logger == nil {
		logger = slog.Default()
	}
	d := &DB{
		db:      db,
		reg:     reg,
		objects: domain.NewObjects(),
		logger:  logger.With("component", "storage", "backend", backend),
	}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return d, nil
}

// Close cleanly shuts down the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Ping checks database connectivity.
func (d *DB) Ping() error {
	return d.db.Ping()
}

func (d *DB) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS objects (
			key   TEXT PRIMARY KEY,
			class TEXT NOT NULL,
			id    TEXT NOT NULL,
			seq   INTEGER NOT NULL,
			data  TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_objects_seq ON objects(seq)`,
	}
	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// ─── domain.Storage ─────────────────────────────────────────────────────────

// All returns the live instance index.
func (d *DB) All() *domain.Objects {
	return d.objects
}

// New indexes inst and binds its save hook to a single-row write.
func (d *DB) New(inst *domain.Instance) {
	d.objects.Set(inst.Key(), inst)
	inst.OnSave(d.saveInstance)
}

// Save replaces the stored table with the current index in one transaction.
func (d *DB) Save() error {
	start := time.Now()
	values := d.objects.Values()

	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM objects`); err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO objects (key, class, id, seq, data) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for seq, inst := range values {
		data, err := storage.Encode(inst)
		if err != nil {
			return err
		}
		if _, err := stmt.Exec(inst.Key(), inst.Class.Name, inst.ID, seq, string(data)); err != nil {
			return fmt.Errorf("write %s: %w", inst.Key(), err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	storage.RecordFlush(backend, "all", start, len(values))
	d.logger.Debug("flushed", "instances", len(values), "took", time.Since(start))
	return nil
}

// saveInstance writes one row, keeping its position if already stored.
func (d *DB) saveInstance(inst *domain.Instance) error {
	start := time.Now()
	data, err := storage.Encode(inst)
	if err != nil {
		return err
	}
	_, err = d.db.Exec(
		`INSERT INTO objects (key, class, id, seq, data)
		 VALUES (?, ?, ?, (SELECT COALESCE(MAX(seq), -1) + 1 FROM objects), ?)
		 ON CONFLICT(key) DO UPDATE SET data=excluded.data`,
		inst.Key(), inst.Class.Name, inst.ID, string(data),
	)
	if err != nil {
		return fmt.Errorf("write %s: %w", inst.Key(), err)
	}
	storage.RecordFlush(backend, "instance", start, d.objects.Len())
	return nil
}

// Reload replaces the index with the stored rows. Rows naming an
// unregistered class or failing to decode are skipped with a warning.
func (d *DB) Reload() error {
	rows, err := d.db.Query(`SELECT key, data FROM objects ORDER BY seq`)
	if err != nil {
		return err
	}
	defer rows.Close()

	d.objects.Reset()
	for rows.Next() {
		var key, data string
		if err := rows.Scan(&key, &data); err != nil {
			return err
		}
		inst, err := storage.Decode([]byte(data), d.reg)
		if errors.Is(err, domain.ErrUnknownStoredClass) || errors.Is(err, domain.ErrCorruptRecord) {
			d.logger.Warn("skipping stored record", "key", key, "err", err)
			continue
		}
		if err != nil {
			return err
		}
		d.New(inst)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	d.logger.Debug("reloaded", "instances", d.objects.Len())
	return nil
}

// Count returns the number of stored rows.
func (d *DB) Count() (int, error) {
	var n int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM objects`).Scan(&n)
	return n, err
}
