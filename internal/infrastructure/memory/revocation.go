package memory

import (
	"context"
	"sync"
	"time"
)

// RevocationStore jti revocados con expiración.
type RevocationStore struct {
	mu      sync.Mutex
	now     func() time.Time
	revoked map[string]time.Time
}

// NewRevocationStore crea el almacén vacío.
func NewRevocationStore() *RevocationStore {
	return &RevocationStore{now: time.Now, revoked: map[string]time.Time{}}
}

// Revoke marca tokenID como revocado durante ttl.
func (s *RevocationStore) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for id, exp := range s.revoked {
		if !now.Before(exp) {
			delete(s.revoked, id)
		}
	}
	s.revoked[tokenID] = now.Add(ttl)
	return nil
}

// IsRevoked informa si tokenID sigue revocado.
func (s *RevocationStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp, ok := s.revoked[tokenID]
	return ok && s.now().Before(exp), nil
}
