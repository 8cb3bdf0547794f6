// Package localstore provides single-slot durable stores for the session
// identity, mirroring browser local storage: one JSON document held under a
// fixed application key.
package localstore

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/pkg/errors"

	"github.com/qemer/lms/core"
	"github.com/qemer/lms/core/auth"
)

// appKey is the fixed application identifier the identity is stored under.
const appKey = "qemer-user"

type document map[string]auth.Identity

// FileStore persists the identity to a JSON file on disk.
type FileStore struct {
	mu   sync.Mutex
	path string
}

var _ auth.Store = (*FileStore)(nil)

func NewFileStore(conf *core.Config) *FileStore {
	return &FileStore{path: conf.SessionPath}
}

func (s *FileStore) Read() (auth.Identity, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return auth.Identity{}, false, nil
	}
	if err != nil {
		return auth.Identity{}, false, errors.Wrap(err, "reading session file")
	}

	var doc document
	if err = json.Unmarshal(data, &doc); err != nil {
		return auth.Identity{}, false, errors.Wrap(err, "parsing session file")
	}
	identity, ok := doc[appKey]
	return identity, ok, nil
}

func (s *FileStore) Write(identity auth.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(document{appKey: identity})
	if err != nil {
		return errors.Wrap(err, "encoding session")
	}
	return errors.Wrap(os.WriteFile(s.path, data, 0600), "writing session file")
}

func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "removing session file")
	}
	return nil
}

// MemStore is an in-memory Store for tests and the admin CLI.
type MemStore struct {
	mu       sync.Mutex
	identity *auth.Identity
}

var _ auth.Store = (*MemStore)(nil)

func NewMemStore() *MemStore { return &MemStore{} }

func (s *MemStore) Read() (auth.Identity, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return auth.Identity{}, false, nil
	}
	return *s.identity, true, nil
}

func (s *MemStore) Write(identity auth.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = &identity
	return nil
}

func (s *MemStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = nil
	return nil
}
