package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/saadkhan011/calcrew-frontend/internal/modules/checkout"
)

const (
	redisKeyPrefix   = "checkout:session:"
	redisMaxAttempts = 5
)

// Redis stores sessions as JSON values with a sliding TTL. Update is an
// optimistic WATCH/MULTI transaction retried on conflict.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttlOr(ttl)}
}

func redisKey(id string) string { return redisKeyPrefix + id }

func (s *Redis) Create(ctx context.Context, sess checkout.Session) error {
	b, err := encodeSession(sess)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, redisKey(sess.ID), b, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (s *Redis) Get(ctx context.Context, id string) (checkout.Session, error) {
	b, err := s.client.Get(ctx, redisKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return checkout.Session{}, checkout.ErrSessionNotFound
	}
	if err != nil {
		return checkout.Session{}, fmt.Errorf("redis get failed: %w", err)
	}
	return decodeSession(b)
}

func (s *Redis) Update(ctx context.Context, id string, fn checkout.UpdateFunc) (checkout.Session, error) {
	key := redisKey(id)

	var out checkout.Session
	txf := func(tx *redis.Tx) error {
		b, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return checkout.ErrSessionNotFound
		}
		if err != nil {
			return fmt.Errorf("redis get failed: %w", err)
		}
		cur, err := decodeSession(b)
		if err != nil {
			return err
		}
		next, err := fn(cur)
		if err != nil {
			out = cur
			return err
		}
		nb, err := encodeSession(next)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, nb, s.ttl)
			return nil
		})
		if err == nil {
			out = next
		}
		return err
	}

	for i := 0; i < redisMaxAttempts; i++ {
		err := s.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return out, err
	}
	return checkout.Session{}, fmt.Errorf("redis update %s: too much contention", id)
}

func (s *Redis) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, redisKey(id)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func (s *Redis) String() string { return "redis" }
