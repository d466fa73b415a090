package session

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the three session keys in Redis under a common
// prefix. Useful when the console runs on shared ops hosts and the
// session should follow the operator rather than the machine.
type RedisStore struct {
	client *redis.Client
	prefix string
	ctx    context.Context
}

func NewRedisStore(url, prefix string) (*RedisStore, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opt)
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	if strings.TrimSpace(prefix) == "" {
		prefix = "admin-console:"
	}
	return &RedisStore{client: client, prefix: prefix, ctx: ctx}, nil
}

func (s *RedisStore) key(name string) string {
	return s.prefix + name
}

func (s *RedisStore) Save(sess Session) error {
	userJSON, err := json.Marshal(sess.User)
	if err != nil {
		return fmt.Errorf("encode user snapshot: %w", err)
	}
	if err := s.client.Set(s.ctx, s.key(keyToken), sess.AccessToken, 0).Err(); err != nil {
		return fmt.Errorf("set token key: %w", err)
	}
	if err := s.client.Set(s.ctx, s.key(keyRefreshToken), sess.RefreshToken, 0).Err(); err != nil {
		return fmt.Errorf("set refresh token key: %w", err)
	}
	if err := s.client.Set(s.ctx, s.key(keyUser), userJSON, 0).Err(); err != nil {
		return fmt.Errorf("set user key: %w", err)
	}
	return nil
}

func (s *RedisStore) Load() (Session, bool) {
	token, err := s.client.Get(s.ctx, s.key(keyToken)).Result()
	if err != nil || token == "" {
		return Session{}, false
	}

	userJSON, err := s.client.Get(s.ctx, s.key(keyUser)).Result()
	if err != nil {
		_ = s.Clear()
		return Session{}, false
	}
	var user User
	if json.Unmarshal([]byte(userJSON), &user) != nil || user == (User{}) {
		_ = s.Clear()
		return Session{}, false
	}

	refresh, _ := s.client.Get(s.ctx, s.key(keyRefreshToken)).Result()

	return Session{
		AccessToken:  token,
		RefreshToken: refresh,
		User:         user,
	}, true
}

func (s *RedisStore) Clear() error {
	if err := s.client.Del(s.ctx, s.key(keyToken), s.key(keyRefreshToken), s.key(keyUser)).Err(); err != nil {
		return fmt.Errorf("clear session keys: %w", err)
	}
	return nil
}

// Close releases the underlying Redis connection pool.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
