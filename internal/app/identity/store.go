/*
Package identity contains the credential-derived identity model for the client.

This file defines the Store capability. The credential is written once at login,
read by every privileged call, and cleared on logout or detected expiry. Passing
a Store explicitly replaces ambient global access to the credential.
*/
package identity

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Store is the session credential capability injected into components that
// need the bearer token.
type Store interface {
	// Get returns the stored credential and whether one is present.
	Get() (string, bool)

	// Set replaces the stored credential.
	Set(token string)

	// Clear removes the stored credential.
	Clear()
}

// MemoryStore keeps the credential in memory for the process lifetime.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
}

// NewMemoryStore returns an empty in-memory credential store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Get() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

func (s *MemoryStore) Set(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

func (s *MemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}

const credentialFileName = "credential"

// FileStore persists the credential under a configuration directory so the
// terminal client stays signed in between invocations.
type FileStore struct {
	mu  sync.Mutex
	dir string
}

// NewFileStore returns a FileStore rooted at dir. An empty dir falls back to
// ~/.pandacare.
func NewFileStore(dir string) *FileStore {
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".pandacare")
	}
	return &FileStore{dir: dir}
}

func (s *FileStore) path() string {
	return filepath.Join(s.dir, credentialFileName)
}

func (s *FileStore) Get() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path())
	if err != nil {
		return "", false
	}

	token := strings.TrimSpace(string(data))
	return token, token != ""
}

func (s *FileStore) Set(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return
	}
	_ = os.WriteFile(s.path(), []byte(token), 0o600)
}

func (s *FileStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = os.Remove(s.path())
}
