package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileStore keeps one payload file per key in a flat directory, plus a small
// json sidecar with the creation time and TTL. Payload files keep their raw
// bytes so cached images can be opened directly.
type FileStore struct {
	dir        string
	ext        string
	defaultTTL time.Duration
}

type fileMeta struct {
	CreatedAt time.Time     `json:"created_at"`
	TTL       time.Duration `json:"ttl"`
}

// NewFileStore creates dir if needed. ext is appended to every payload file
// name (e.g. ".png"). defaultTTL applies to payload files that have no
// sidecar, in which case the file mtime is the creation time.
func NewFileStore(dir, ext string, defaultTTL time.Duration) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("couldn't create cache dir %s: %w", dir, err)
	}
	return &FileStore{
		dir:        dir,
		ext:        ext,
		defaultTTL: defaultTTL,
	}, nil
}

func (s *FileStore) Dir() string {
	return s.dir
}

// FileName maps a key to its payload file name. It is a pure function of
// the key so repeated requests land on the same file.
func (s *FileStore) FileName(key string) string {
	return sanitizeKey(key) + s.ext
}

// Path is the absolute location of key's payload file.
func (s *FileStore) Path(key string) string {
	return filepath.Join(s.dir, s.FileName(key))
}

func (s *FileStore) metaPath(key string) string {
	return filepath.Join(s.dir, sanitizeKey(key)+".meta.json")
}

func (s *FileStore) Load(_ context.Context, key string) (Entry, bool, error) {
	path := s.Path(key)
	payload, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, fmt.Errorf("read %s: %w", path, err)
	}

	entry := Entry{Key: key, Payload: payload}
	meta, err := s.loadMeta(key)
	if err == nil {
		entry.CreatedAt = meta.CreatedAt
		entry.TTL = meta.TTL
		return entry, true, nil
	}
	// WARNING: a missing or corrupted sidecar is not an error, we fall back
	// to the payload mtime
	info, err := os.Stat(path)
	if err != nil {
		return Entry{}, false, fmt.Errorf("stat %s: %w", path, err)
	}
	entry.CreatedAt = info.ModTime()
	entry.TTL = s.defaultTTL
	return entry, true, nil
}

func (s *FileStore) loadMeta(key string) (fileMeta, error) {
	meta := fileMeta{}
	content, err := os.ReadFile(s.metaPath(key))
	if err != nil {
		return meta, err
	}
	err = json.Unmarshal(content, &meta)
	return meta, err
}

// Save writes the payload then its sidecar. Both writes are atomic renames
// so readers never see a half written file.
func (s *FileStore) Save(_ context.Context, entry Entry) error {
	if err := writeFileAtomic(s.Path(entry.Key), entry.Payload); err != nil {
		return err
	}
	meta, err := json.Marshal(fileMeta{CreatedAt: entry.CreatedAt, TTL: entry.TTL})
	if err != nil {
		return fmt.Errorf("couldn't marshal cache meta: %w", err)
	}
	return writeFileAtomic(s.metaPath(entry.Key), meta)
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", tmpName, err)
	}
	return nil
}

func sanitizeKey(key string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '_', r == '-', r == '.':
			return r
		default:
			return '_'
		}
	}, key)
}
