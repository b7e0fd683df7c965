package storage

import "sync"

// CachedResponse is a stored HTTP response for an idempotency key.
type CachedResponse struct {
	Status int
	Body   []byte
}

// IdempotencyStore remembers the response produced for each Idempotency-Key
// so a retried request gets the original result instead of a second payment.
type IdempotencyStore struct {
	mu        sync.Mutex
	responses map[string]CachedResponse
}

func NewIdempotencyStore() *IdempotencyStore {
	return &IdempotencyStore{responses: make(map[string]CachedResponse)}
}

func (s *IdempotencyStore) Get(key string) (CachedResponse, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, ok := s.responses[key]
	return res, ok
}

// Save stores the response for a key. First write wins.
func (s *IdempotencyStore) Save(key string, status int, body []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.responses[key]; exists {
		return
	}
	// Copy the body: fiber reuses its buffers between requests.
	stored := make([]byte, len(body))
	copy(stored, body)
	s.responses[key] = CachedResponse{Status: status, Body: stored}
}
