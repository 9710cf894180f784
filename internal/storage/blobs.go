package storage

// Filesystem blob store for uploaded sources, templates and rendered
// payloads. Paths returned by Save are relative to the root and are what
// the record store persists.

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	CategoryUploads   = "uploads"
	CategoryTemplates = "templates"
	CategoryGenerated = "generated"
	categoryTemp      = "temp"
)

// Store is a blob store rooted at a single directory
type Store struct {
	root string
}

// New creates the store and its category directories
func New(root string) (*Store, error) {
	for _, c := range []string{CategoryUploads, CategoryTemplates, CategoryGenerated, categoryTemp} {
		if err := os.MkdirAll(filepath.Join(root, c), 0o755); err != nil {
			return nil, fmt.Errorf("create blob dir %s: %w", c, err)
		}
	}
	return &Store{root: root}, nil
}

// Save writes data under the category with a timestamped unique name and
// returns the store-relative path
func (s *Store) Save(category, filename string, data []byte) (string, error) {
	name := fmt.Sprintf("%s_%s_%s",
		time.Now().UTC().Format("20060102_150405"),
		uuid.NewString()[:8],
		sanitize(filename),
	)
	rel := filepath.Join(category, name)
	if err := os.WriteFile(filepath.Join(s.root, rel), data, 0o644); err != nil {
		return "", fmt.Errorf("save blob %s: %w", rel, err)
	}
	return rel, nil
}

// Read returns the blob's bytes
func (s *Store) Read(path string) ([]byte, error) {
	abs, err := s.resolve(path)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(abs)
}

// Delete removes a blob; a missing file is not an error
func (s *Store) Delete(path string) error {
	if path == "" {
		return nil
	}
	abs, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(abs); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// SaveTemp writes an invocation-scoped artifact and returns its absolute
// path. Callers must remove it on every exit path; the sweeper is only a
// backstop.
func (s *Store) SaveTemp(filename string, data []byte) (string, error) {
	name := fmt.Sprintf("%s_%s", uuid.NewString()[:8], sanitize(filename))
	abs := filepath.Join(s.root, categoryTemp, name)
	if err := os.WriteFile(abs, data, 0o644); err != nil {
		return "", fmt.Errorf("save temp %s: %w", name, err)
	}
	return abs, nil
}

// Abs returns the absolute path of a store-relative blob path
func (s *Store) Abs(path string) (string, error) {
	return s.resolve(path)
}

// resolve maps a store-relative path to an absolute one, refusing
// traversal outside the root
func (s *Store) resolve(path string) (string, error) {
	clean := filepath.Clean(path)
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("blob path escapes store root: %s", path)
	}
	return filepath.Join(s.root, clean), nil
}

func sanitize(filename string) string {
	base := filepath.Base(filename)
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
}
