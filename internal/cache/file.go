package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// entry is the persisted cache record: an absolute expiry in unix seconds
// and the rendered document.
type entry struct {
	TTL int64  `json:"ttl"`
	RSS string `json:"rss"`
}

// File implements Store backed by a single JSON file.
type File struct {
	path string
	now  func() time.Time
}

// NewFile creates a file-backed cache at path. The file is created on the
// first Put.
func NewFile(path string) *File {
	return &File{path: path, now: time.Now}
}

// NewFileWithClock creates a file-backed cache with a fixed clock (useful
// for testing).
func NewFileWithClock(path string, now func() time.Time) *File {
	return &File{path: path, now: now}
}

// Get reads the persisted entry. Any read or decode failure is a miss.
func (f *File) Get(_ context.Context) (string, bool) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return "", false
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return "", false
	}
	if e.RSS == "" || e.TTL <= f.now().Unix() {
		return "", false
	}
	return e.RSS + Annotation, true
}

// Put persists the document with an expiry of now plus ttlSeconds,
// replacing any prior entry.
func (f *File) Put(_ context.Context, doc string, ttlSeconds int) error {
	data, err := json.Marshal(entry{
		TTL: f.now().Unix() + int64(ttlSeconds),
		RSS: doc,
	})
	if err != nil {
		return fmt.Errorf("marshal cache entry: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0o644); err != nil { //nolint:gosec // feed document, not a secret
		return fmt.Errorf("write cache file: %w", err)
	}
	return nil
}

// Close is a no-op for the file store.
func (f *File) Close() error { return nil }
