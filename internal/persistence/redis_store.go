package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore is a HistoryStore and ActivationStore backed by Redis.
// It uses a simple key structure:
//
//	<prefix>history:<run>      => STRING of concatenated history records
//	<prefix>activations:<run>  => LIST of gob-encoded activation records
//
// History records are appended with APPEND, so a run's history is a single
// contiguous value that can be handed to the executor as-is.
type RedisStore struct {
	client *redis.Client
	prefix string
}

var (
	_ HistoryStore    = (*RedisStore)(nil)
	_ ActivationStore = (*RedisStore)(nil)
)

// NewRedisStore creates a RedisStore.
// prefix is optional and defaults to "flowwire:".
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "flowwire:"
	}
	return &RedisStore{
		client: client,
		prefix: prefix,
	}
}

func (s *RedisStore) keyHistory(runID string) string {
	return s.prefix + "history:" + runID
}

func (s *RedisStore) keyActivations(runID string) string {
	return s.prefix + "activations:" + runID
}

func (s *RedisStore) AppendEvents(ctx context.Context, runID string, records []byte) error {
	if err := validateRecords(runID, records); err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}
	return s.client.Append(ctx, s.keyHistory(runID), string(records)).Err()
}

func (s *RedisStore) LoadHistory(ctx context.Context, runID string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.keyHistory(runID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrRunNotFound
		}
		return nil, err
	}
	return data, nil
}

func (s *RedisStore) SaveActivation(ctx context.Context, rec ActivationRecord) error {
	data, err := encodeValue(&rec)
	if err != nil {
		return fmt.Errorf("encode activation: %w", err)
	}
	return s.client.RPush(ctx, s.keyActivations(rec.RunID), data).Err()
}

func (s *RedisStore) ListActivations(ctx context.Context, runID string) ([]ActivationRecord, error) {
	items, err := s.client.LRange(ctx, s.keyActivations(runID), 0, -1).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrRunNotFound
		}
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrRunNotFound
	}

	out := make([]ActivationRecord, 0, len(items))
	for _, item := range items {
		rec, err := decodeValue[ActivationRecord]([]byte(item))
		if err != nil {
			return nil, fmt.Errorf("decode activation: %w", err)
		}
		out = append(out, rec)
	}
	return out, nil
}
