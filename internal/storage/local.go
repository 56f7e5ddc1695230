package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// LocalStore writes images below Root. References are BaseURL joined with the key.
type LocalStore struct {
	Root    string
	BaseURL string
}

func NewLocalStore(root, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create media root %s", root)
	}
	return &LocalStore{Root: root, BaseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

func (s *LocalStore) path(key string) (string, error) {
	p := filepath.Join(s.Root, filepath.FromSlash(key))
	rel, err := filepath.Rel(s.Root, p)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.Errorf("key %q escapes the media root", key)
	}
	return p, nil
}

func (s *LocalStore) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	p, err := s.path(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return "", errors.Wrap(err, "create image directory")
	}
	f, err := os.Create(p)
	if err != nil {
		return "", errors.Wrap(err, "create image file")
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		os.Remove(p)
		return "", errors.Wrap(err, "write image file")
	}
	if err := f.Close(); err != nil {
		return "", errors.Wrap(err, "close image file")
	}
	return s.BaseURL + "/" + key, nil
}

func (s *LocalStore) Delete(ctx context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "remove image file")
	}
	return nil
}

func (s *LocalStore) KeyOf(ref string) (string, bool) {
	return keyUnder(s.BaseURL, ref)
}
