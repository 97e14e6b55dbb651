package metadata

import (
	"context"

	"github.com/dmitrijs2005/petswap/internal/common"
)

// TokenStore keeps the single persisted bearer token under a fixed key.
type TokenStore struct {
	repo Repository
}

func NewTokenStore(repo Repository) *TokenStore {
	return &TokenStore{repo: repo}
}

// Load returns the persisted token, or "" when none is stored.
func (s *TokenStore) Load(ctx context.Context) (string, error) {
	v, err := s.repo.Get(ctx, common.TokenMetadataKey)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func (s *TokenStore) Save(ctx context.Context, token string) error {
	return s.repo.Set(ctx, common.TokenMetadataKey, []byte(token))
}

func (s *TokenStore) Clear(ctx context.Context) error {
	return s.repo.Delete(ctx, common.TokenMetadataKey)
}
