package store

import (
	"context"
	"os"
	"path/filepath"
)

// FileBackend stores placement blobs as files in a directory, one file per
// player. Keys contain player names, so paths use a hash of the key rather
// than the key itself.
type FileBackend struct {
	dir string
}

// NewFileBackend creates a file-based backend in the given directory.
// The directory will be created if it doesn't exist. An empty dir defaults
// to ~/.config/dotstitch/positions/.
func NewFileBackend(dir string) (*FileBackend, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(home, ".config", "dotstitch", "positions")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileBackend{dir: dir}, nil
}

// Get retrieves a blob. A missing or unreadable file is a clean miss;
// placement memory is reproducible, so there is nothing to repair.
func (f *FileBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := os.ReadFile(f.path(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set stores a blob. The write is atomic: data lands in a temp file that is
// renamed over the target, so a crash never leaves a half-written record.
func (f *FileBackend) Set(ctx context.Context, key string, data []byte) error {
	path := f.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Delete removes a blob.
func (f *FileBackend) Delete(ctx context.Context, key string) error {
	err := os.Remove(f.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close does nothing for the file backend.
func (f *FileBackend) Close() error { return nil }

// path converts a storage key to a file path.
// Uses a hash-based directory structure to avoid too many files in one dir.
func (f *FileBackend) path(key string) string {
	hash := Hash([]byte(key))
	subdir := hash[:2]
	filename := hash[2:] + ".json"
	return filepath.Join(f.dir, subdir, filename)
}

// Ensure FileBackend implements Backend.
var _ Backend = (*FileBackend)(nil)
