package persist

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"InkBoard/internal/state"
)

// Archive appends every committed snapshot to a local SQLite table. The
// in-memory history window is bounded, so the archive is what makes
// point-in-time recovery possible after a restart.
type Archive struct {
	db  *sql.DB
	log *slog.Logger
}

const archiveSchema = `
CREATE TABLE IF NOT EXISTS snapshot (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at TEXT NOT NULL,
	data       TEXT NOT NULL
);
`

// OpenArchive opens (creating if needed) the archive database at path.
func OpenArchive(path string, logger *slog.Logger) (*Archive, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("persist: open archive: %w", err)
	}
	if _, err := db.Exec(archiveSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("persist: archive schema: %w", err)
	}
	return &Archive{db: db, log: logger}, nil
}

func (a *Archive) Close() error {
	return a.db.Close()
}

// Append stores one committed snapshot.
func (a *Archive) Append(objects []state.CanvasObject) error {
	data, err := Encode(objects)
	if err != nil {
		return fmt.Errorf("persist: encode: %w", err)
	}
	_, err = a.db.Exec(
		`INSERT INTO snapshot (created_at, data) VALUES (?, ?)`,
		time.Now().UTC().Format(time.RFC3339Nano), string(data),
	)
	if err != nil {
		return fmt.Errorf("persist: archive append: %w", err)
	}
	return nil
}

// Latest returns the newest archived snapshot, or ok=false when the archive
// is empty.
func (a *Archive) Latest() ([]state.CanvasObject, bool, error) {
	var data string
	err := a.db.QueryRow(`SELECT data FROM snapshot ORDER BY id DESC LIMIT 1`).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("persist: archive read: %w", err)
	}
	objects, err := Decode([]byte(data))
	if err != nil {
		return nil, false, err
	}
	return objects, true, nil
}

// Prune deletes archived snapshots older than the retention window, keeping
// at least the newest row.
func (a *Archive) Prune(olderThan time.Duration) error {
	cutoff := time.Now().UTC().Add(-olderThan).Format(time.RFC3339Nano)
	_, err := a.db.Exec(
		`DELETE FROM snapshot WHERE created_at < ? AND id <> (SELECT MAX(id) FROM snapshot)`,
		cutoff,
	)
	if err != nil {
		return fmt.Errorf("persist: archive prune: %w", err)
	}
	return nil
}
