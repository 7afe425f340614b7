package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/afero"

	"github.com/mind-engage/pizzaquiz/internal/quiz"
)

type fileRecord struct {
	State     quiz.UserState `json:"state"`
	UpdatedAt int64          `json:"updated_at"`
}

// fileStore keeps every user in one JSON document. Each call loads the
// whole document, changes one key and writes the whole document back, so
// two processes sharing the file still race (last writer wins). Within a
// process the cycle is serialised.
type fileStore struct {
	mu   sync.Mutex
	fs   afero.Fs
	path string
	now  func() time.Time
}

// NewFile stores users in a JSON file on the local disk.
func NewFile(path string) Store {
	return NewFileFS(afero.NewOsFs(), path)
}

// NewFileFS is NewFile over an arbitrary filesystem.
func NewFileFS(fsys afero.Fs, path string) Store {
	return &fileStore{fs: fsys, path: path, now: time.Now}
}

func (f *fileStore) load() (map[string]fileRecord, error) {
	raw, err := afero.ReadFile(f.fs, f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]fileRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.path, err)
	}
	users := map[string]fileRecord{}
	if len(raw) == 0 {
		return users, nil
	}
	if err := json.Unmarshal(raw, &users); err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.path, err)
	}
	return users, nil
}

func (f *fileStore) save(users map[string]fileRecord) error {
	raw, err := json.Marshal(users)
	if err != nil {
		return err
	}
	tmp, err := afero.TempFile(f.fs, filepath.Dir(f.path), filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", f.path, err)
	}
	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = f.fs.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		_ = f.fs.Remove(tmp.Name())
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := f.fs.Rename(tmp.Name(), f.path); err != nil {
		_ = f.fs.Remove(tmp.Name())
		return fmt.Errorf("replace %s: %w", f.path, err)
	}
	return nil
}

func (f *fileStore) Get(ctx context.Context, userID string) (quiz.UserState, error) {
	if err := ctx.Err(); err != nil {
		return quiz.UserState{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	users, err := f.load()
	if err != nil {
		return quiz.UserState{}, err
	}
	rec, ok := users[userID]
	if !ok {
		return quiz.UserState{}, ErrNotFound
	}
	return rec.State, nil
}

func (f *fileStore) Put(ctx context.Context, userID string, s quiz.UserState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	users, err := f.load()
	if err != nil {
		return err
	}
	users[userID] = fileRecord{State: s, UpdatedAt: f.now().Unix()}
	return f.save(users)
}

func (f *fileStore) Delete(ctx context.Context, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	users, err := f.load()
	if err != nil {
		return err
	}
	if _, ok := users[userID]; !ok {
		return ErrNotFound
	}
	delete(users, userID)
	return f.save(users)
}

func (f *fileStore) PruneIdle(ctx context.Context, before time.Time) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	users, err := f.load()
	if err != nil {
		return 0, err
	}
	cutoff := before.Unix()
	n := 0
	for id, rec := range users {
		if rec.UpdatedAt < cutoff {
			delete(users, id)
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return n, f.save(users)
}

func (f *fileStore) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	users, err := f.load()
	if err != nil {
		return 0, err
	}
	return len(users), nil
}

func (f *fileStore) Close() error { return nil }
