package storage

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// FSStore keeps blobs as flat files under base.
type FSStore struct {
	fs   afero.Fs
	base string
}

func NewFSStore(base string) (*FSStore, error) {
	if base == "" {
		base = "./static"
	}
	return NewFSStoreOn(afero.NewOsFs(), base)
}

func NewFSStoreOn(fsys afero.Fs, base string) (*FSStore, error) {
	if err := fsys.MkdirAll(base, 0o755); err != nil {
		return nil, err
	}
	return &FSStore{fs: fsys, base: base}, nil
}

// path rejects anything that could leave base.
func (s *FSStore) path(key string) (string, error) {
	if key == "" || key != filepath.Base(key) || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", ErrInvalidKey
	}
	return filepath.Join(s.base, key), nil
}

func (s *FSStore) Put(key string, r io.Reader) (string, error) {
	dst, err := s.path(key)
	if err != nil {
		return "", err
	}
	tmp := dst + ".part"
	f, err := s.fs.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = s.fs.Remove(tmp)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	if err := s.fs.Rename(tmp, dst); err != nil {
		return "", err
	}
	return key, nil
}

func (s *FSStore) Get(key string) (io.ReadCloser, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}
	f, err := s.fs.Open(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	return f, err
}

func (s *FSStore) Exists(key string) bool {
	p, err := s.path(key)
	if err != nil {
		return false
	}
	st, err := s.fs.Stat(p)
	return err == nil && !st.IsDir()
}
