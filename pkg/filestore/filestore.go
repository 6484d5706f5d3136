package filestore

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"
)

// Store keeps uploaded files on local disk under root. A file saved as
// (dir, name) is served at the URL /dir/name.
type Store struct {
	root string
}

func New(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{root: root}, nil
}

func (s *Store) Root() string { return s.root }

// Dir returns the on-disk directory backing dir.
func (s *Store) Dir(dir string) string {
	return filepath.Join(s.root, dir)
}

// Save writes data atomically: readers see either no file or the whole file.
func (s *Store) Save(dir, name string, data []byte) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.Contains(dir, "..") {
		return "", fmt.Errorf("invalid file path %q/%q", dir, name)
	}

	target := s.Dir(dir)
	if err := os.MkdirAll(target, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}
	if err := renameio.WriteFile(filepath.Join(target, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return "/" + path.Join(dir, name), nil
}

// Remove deletes the file behind url. Missing files are not an error.
func (s *Store) Remove(url string) error {
	rel := strings.TrimPrefix(path.Clean("/"+url), "/")
	if rel == "" {
		return fmt.Errorf("invalid file url %q", url)
	}
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(rel)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", url, err)
	}
	return nil
}
