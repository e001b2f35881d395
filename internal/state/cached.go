package state

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
)

// CachedStore reads through a fast front store into a durable back
// store, cache-aside. Front failures are logged and absorbed; the back
// store is the source of truth.
type CachedStore struct {
	front  Store
	back   Store
	logger *zap.Logger
}

func NewCached(front, back Store, logger *zap.Logger) *CachedStore {
	return &CachedStore{front: front, back: back, logger: logger}
}

func (s *CachedStore) Load(ctx context.Context, key string) (json.RawMessage, bool, error) {
	data, found, err := s.front.Load(ctx, key)
	if err == nil && found {
		return data, true, nil
	}
	if err != nil {
		s.logger.Warn("cache load failed, falling back",
			zap.String("key", key),
			zap.Error(err))
	}

	data, found, err = s.back.Load(ctx, key)
	if err != nil || !found {
		return nil, false, err
	}

	// Backfill the cache, best effort.
	if err := s.front.Save(ctx, key, data); err != nil {
		s.logger.Warn("cache backfill failed",
			zap.String("key", key),
			zap.Error(err))
	}
	return data, true, nil
}

func (s *CachedStore) Save(ctx context.Context, key string, state json.RawMessage) error {
	if err := s.back.Save(ctx, key, state); err != nil {
		return err
	}
	if err := s.front.Save(ctx, key, state); err != nil {
		s.logger.Warn("cache save failed",
			zap.String("key", key),
			zap.Error(err))
	}
	return nil
}

func (s *CachedStore) Delete(ctx context.Context, key string) error {
	if err := s.back.Delete(ctx, key); err != nil {
		return err
	}
	if err := s.front.Delete(ctx, key); err != nil {
		s.logger.Warn("cache delete failed",
			zap.String("key", key),
			zap.Error(err))
	}
	return nil
}

func (s *CachedStore) Close() error {
	frontErr := s.front.Close()
	backErr := s.back.Close()
	if backErr != nil {
		return backErr
	}
	return frontErr
}
