// Package cache keeps session snapshots in Redis so that reads do not hit the
// database. Every failure is logged and treated as a miss.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/vietanh2810/bingo-api/internal/domain"
)

const keyPrefix = "bingo:session:"

type SessionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionCache connects to redisURL (redis://host:port/db).
func NewSessionCache(ctx context.Context, redisURL string, ttl time.Duration) (*SessionCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL -> %w", err)
	}

	client := redis.NewClient(opts)
	if err = client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("client.Ping -> %w", err)
	}
	zap.L().Info("connected to redis", zap.String("addr", opts.Addr))

	return newSessionCache(client, ttl), nil
}

func newSessionCache(client *redis.Client, ttl time.Duration) *SessionCache {
	return &SessionCache{
		client: client,
		ttl:    ttl,
	}
}

func Key(sessionID string) string {
	return keyPrefix + sessionID
}

func (c *SessionCache) Get(ctx context.Context, id string) (domain.Session, bool) {
	raw, err := c.client.Get(ctx, Key(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			zap.L().Warn("session cache get", zap.String("session_id", id), zap.Error(err))
		}
		return domain.Session{}, false
	}

	var session domain.Session
	if err = json.Unmarshal(raw, &session); err != nil {
		zap.L().Warn("session cache decode", zap.String("session_id", id), zap.Error(err))
		return domain.Session{}, false
	}

	return session, true
}

func (c *SessionCache) Set(ctx context.Context, session domain.Session) {
	raw, err := json.Marshal(session)
	if err != nil {
		zap.L().Warn("session cache encode", zap.String("session_id", session.ID), zap.Error(err))
		return
	}

	if err = c.client.Set(ctx, Key(session.ID), raw, c.ttl).Err(); err != nil {
		zap.L().Warn("session cache set", zap.String("session_id", session.ID), zap.Error(err))
	}
}

func (c *SessionCache) Delete(ctx context.Context, id string) {
	if err := c.client.Del(ctx, Key(id)).Err(); err != nil {
		zap.L().Warn("session cache delete", zap.String("session_id", id), zap.Error(err))
	}
}

func (c *SessionCache) Close() error {
	return c.client.Close()
}
