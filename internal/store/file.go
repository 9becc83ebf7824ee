package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"snowglobe/internal/logging"
)

const fileExt = ".json"

// FileStore keeps one JSON file per submission in a directory. The short id
// index is rebuilt from the files when the store is opened.
type FileStore struct {
	mu    sync.RWMutex
	dir   string
	opts  options
	index map[string]string // short id -> file path
}

var _ Store = (*FileStore)(nil)

// OpenFile opens or creates a FileStore rooted at dir. Files that fail to
// parse are logged and skipped.
func OpenFile(dir string, opts ...Option) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("store: data directory cannot be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	f := &FileStore{
		dir:   dir,
		opts:  buildOptions(opts),
		index: make(map[string]string),
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory: %w", err)
	}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, ".") || filepath.Ext(name) != fileExt {
			continue
		}
		path := filepath.Join(dir, name)
		sub, err := readSubmission(path)
		if err != nil {
			logging.Logger().Warn("store: skipping unreadable submission", "path", path, "error", err)
			continue
		}
		if prev, dup := f.index[sub.ShortID]; dup {
			logging.Logger().Warn("store: duplicate short id on disk", "shortid", sub.ShortID, "kept", prev, "skipped", path)
			continue
		}
		f.index[sub.ShortID] = path
	}
	logging.Logger().Info("store: opened", "dir", dir, "submissions", len(f.index))
	return f, nil
}

// Dir returns the data directory.
func (f *FileStore) Dir() string { return f.dir }

func readSubmission(path string) (*Submission, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sub Submission
	if err := json.Unmarshal(data, &sub); err != nil {
		return nil, fmt.Errorf("failed to unmarshal submission: %w", err)
	}
	if sub.ShortID == "" {
		return nil, fmt.Errorf("submission has no short id")
	}
	return &sub, nil
}

func (f *FileStore) write(path string, sub *Submission) error {
	data, err := json.MarshalIndent(sub, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal submission: %w", err)
	}
	if err := atomicWriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write submission: %w", err)
	}
	return nil
}

func (f *FileStore) taken(id string) bool {
	_, ok := f.index[id]
	return ok
}

func (f *FileStore) Create(ctx context.Context, sub *Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	rec := sub.Clone()
	if err := f.opts.prepare(rec, f.taken); err != nil {
		return err
	}
	path := filepath.Join(f.dir, rec.ID+fileExt)
	if err := f.write(path, rec); err != nil {
		return err
	}
	f.index[rec.ShortID] = path
	sub.ID, sub.ShortID = rec.ID, rec.ShortID
	sub.Created, sub.Updated = rec.Created, rec.Updated
	return nil
}

func (f *FileStore) GetByShortID(ctx context.Context, shortID string) (*Submission, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	path, ok := f.index[shortID]
	if !ok {
		return nil, ErrNotFound
	}
	return readSubmission(path)
}

func (f *FileStore) SetEmail(ctx context.Context, shortID, email string) (*Submission, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	path, ok := f.index[shortID]
	if !ok {
		return nil, ErrNotFound
	}
	sub, err := readSubmission(path)
	if err != nil {
		return nil, err
	}
	sub.Email = email
	sub.Updated = f.opts.now().UTC()
	if err := f.write(path, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (f *FileStore) List(ctx context.Context) ([]*Submission, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]*Submission, 0, len(f.index))
	for _, path := range f.index {
		sub, err := readSubmission(path)
		if err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	sortByCreated(out)
	return out, nil
}
