// Package store is the key-value collaborator bundlekit persists settings in.
//
// A FileStore keeps one YAML document whose top-level keys map to opaque
// records. Writes go to a temporary file that is renamed into place, so a
// crash never leaves a half-written document behind.
package store

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	e "bundlekit/pkg/errors"
)

// Store reads and writes records by key.
type Store interface {
	Get(key string, into any) (bool, error)
	Put(key string, value any) error
	Path() string
}

// FileStore is a Store backed by a YAML file.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// DefaultPath returns $BUNDLEKIT_HOME/store.yaml, falling back to
// ~/.bundlekit/store.yaml and then to the working directory.
func DefaultPath() string {
	if dir := os.Getenv("BUNDLEKIT_HOME"); dir != "" {
		return filepath.Join(dir, "store.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		if wd, _ := os.Getwd(); wd != "" {
			return filepath.Join(wd, ".bundlekit", "store.yaml")
		}
	}
	return filepath.Join(home, ".bundlekit", "store.yaml")
}

// Open returns a FileStore at path. The file is created on first Put.
func Open(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string { return s.path }

// Get decodes the record stored under key into into. It reports false with
// a nil error when the key or the whole file is absent.
func (s *FileStore) Get(key string, into any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return false, err
	}
	node, ok := doc[key]
	if !ok {
		return false, nil
	}
	if err := node.Decode(into); err != nil {
		return false, s.corrupted(err, fmt.Sprintf("Stored record %q is unreadable", key))
	}
	return true, nil
}

// Put replaces the record stored under key.
func (s *FileStore) Put(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.read()
	if err != nil {
		return err
	}
	var node yaml.Node
	if err := node.Encode(value); err != nil {
		return e.Wrap(err, e.ErrInvalidConfig, fmt.Sprintf("Cannot encode record %q", key))
	}
	doc[key] = node
	return s.write(doc)
}

func (s *FileStore) read() (map[string]yaml.Node, error) {
	doc := make(map[string]yaml.Node)
	b, err := os.ReadFile(s.path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return doc, nil
		}
		if stderrors.Is(err, os.ErrPermission) {
			return nil, e.Wrap(err, e.ErrStorePermission, "Cannot read settings").WithContext("path", s.path)
		}
		return nil, e.Wrap(err, e.ErrUnknown, "Cannot read settings").WithContext("path", s.path)
	}
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, s.corrupted(err, "Settings file is not valid YAML")
	}
	if doc == nil {
		doc = make(map[string]yaml.Node)
	}
	return doc, nil
}

func (s *FileStore) write(doc map[string]yaml.Node) error {
	b, err := yaml.Marshal(doc)
	if err != nil {
		return e.Wrap(err, e.ErrUnknown, "Cannot encode settings")
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return s.writeError(err)
	}
	tmp, err := os.CreateTemp(dir, ".store-*.yaml")
	if err != nil {
		return s.writeError(err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	// Passwords live in this file.
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return s.writeError(err)
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return s.writeError(err)
	}
	if err := tmp.Close(); err != nil {
		return s.writeError(err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return s.writeError(err)
	}
	return nil
}

func (s *FileStore) writeError(err error) error {
	code := e.ErrUnknown
	if stderrors.Is(err, os.ErrPermission) {
		code = e.ErrStorePermission
	}
	return e.Wrap(err, code, "Cannot save settings").WithContext("path", s.path)
}

func (s *FileStore) corrupted(err error, msg string) error {
	return e.New(e.ErrStoreCorrupted, msg).WithCause(err).WithContext("path", s.path)
}
