// Package persist serializes committed scenes. The primary store is a JSON
// board file written after every commit; a SQLite archive keeps older
// snapshots around for recovery.
package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"InkBoard/internal/state"
)

// SnapshotVersion is the current board-file schema version.
const SnapshotVersion = 1

// Snapshot is the persisted board-file envelope. Earlier builds wrote a
// bare object array with no version tag; Decode still accepts that form.
type Snapshot struct {
	Version int                  `json:"version"`
	Objects []state.CanvasObject `json:"objects"`
}

// Encode marshals the object sequence into the versioned envelope.
func Encode(objects []state.CanvasObject) ([]byte, error) {
	return json.MarshalIndent(Snapshot{Version: SnapshotVersion, Objects: objects}, "", "  ")
}

// Decode parses a board file, accepting both the versioned envelope and the
// legacy bare-array form.
func Decode(data []byte) ([]state.CanvasObject, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err == nil && snap.Version > 0 {
		if snap.Version > SnapshotVersion {
			return nil, fmt.Errorf("persist: snapshot version %d is newer than supported %d", snap.Version, SnapshotVersion)
		}
		return snap.Objects, nil
	}
	var legacy []state.CanvasObject
	if err := json.Unmarshal(data, &legacy); err != nil {
		return nil, fmt.Errorf("persist: unrecognized snapshot format: %w", err)
	}
	return legacy, nil
}

// FileStore saves and loads board files.
type FileStore struct {
	Path string
	Log  *slog.Logger
}

func NewFileStore(path string, logger *slog.Logger) *FileStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileStore{Path: path, Log: logger}
}

// Save writes the snapshot atomically: a temp file in the same directory is
// renamed over the target, so a crash mid-write never leaves a torn board
// file behind.
func (fs *FileStore) Save(objects []state.CanvasObject) error {
	data, err := Encode(objects)
	if err != nil {
		return fmt.Errorf("persist: encode: %w", err)
	}
	dir := filepath.Dir(fs.Path)
	tmp, err := os.CreateTemp(dir, ".inkboard-*.json")
	if err != nil {
		return fmt.Errorf("persist: temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("persist: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("persist: close: %w", err)
	}
	if err := os.Rename(tmp.Name(), fs.Path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("persist: rename: %w", err)
	}
	return nil
}

// Load reads the board file. A missing file or malformed content yields an
// empty scene; startup never fails on bad persisted data.
func (fs *FileStore) Load() []state.CanvasObject {
	data, err := os.ReadFile(fs.Path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fs.Log.Warn("board file unreadable, starting empty", "path", fs.Path, "err", err)
		}
		return nil
	}
	objects, err := Decode(data)
	if err != nil {
		fs.Log.Warn("board file malformed, starting empty", "path", fs.Path, "err", err)
		return nil
	}
	return objects
}
