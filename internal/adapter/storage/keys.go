// Package storage holds the in-process stores behind the HTTP layer.
// Users and payments live in memory for this system, so these replace what
// would otherwise be database tables.
package storage

import "sync"

// KeyStore maps hashed API keys to usernames.
type KeyStore struct {
	mu   sync.RWMutex
	keys map[string]string // key hash -> username
}

func NewKeyStore() *KeyStore {
	return &KeyStore{keys: make(map[string]string)}
}

// Save registers a key hash for a username. Only the hash ever enters the
// store; the raw key is shown to the caller once and forgotten.
func (s *KeyStore) Save(keyHash, username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[keyHash] = username
}

// Lookup resolves a key hash to the username it belongs to.
func (s *KeyStore) Lookup(keyHash string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	username, ok := s.keys[keyHash]
	return username, ok
}
