package redis

import (
	"context"
	"time"
)

// RevocationStore jti revocados como claves con TTL igual a la vida restante del token.
type RevocationStore struct {
	client *Client
}

// NewRevocationStore adaptador de revocación sobre c.
func (c *Client) NewRevocationStore() *RevocationStore {
	return &RevocationStore{client: c}
}

// Revoke marca tokenID durante ttl.
func (s *RevocationStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	return s.client.store.Set(ctx, buildKey("revoked", tokenID), "1", ttl).Err()
}

// IsRevoked informa si tokenID está revocado.
func (s *RevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.store.Exists(ctx, buildKey("revoked", tokenID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
