package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DefaultPrefix is the key prefix used when none is configured
const DefaultPrefix = "langjson:template:"

// ErrTemplateNotFound is returned when no template is stored under a name
var ErrTemplateNotFound = errors.New("template not found")

// TemplateStore persists named templates
type TemplateStore interface {
	Save(ctx context.Context, name string, tmpl interface{}) error
	Load(ctx context.Context, name string) (interface{}, error)
	Delete(ctx context.Context, name string) error
	Exists(ctx context.Context, name string) (bool, error)
	SetTTL(ctx context.Context, name string, ttl time.Duration) error
	List(ctx context.Context) ([]string, error)
}

// RedisTemplateStore implements TemplateStore on Redis strings
type RedisTemplateStore struct {
	client *redis.Client
	prefix string
	logger *zap.Logger
}

// NewRedisTemplateStore creates a new Redis template store
func NewRedisTemplateStore(client *redis.Client, prefix string, logger *zap.Logger) *RedisTemplateStore {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisTemplateStore{
		client: client,
		prefix: prefix,
		logger: logger,
	}
}

func (s *RedisTemplateStore) key(name string) string {
	return s.prefix + name
}

// Save stores a template under name, replacing any previous one
func (s *RedisTemplateStore) Save(ctx context.Context, name string, tmpl interface{}) error {
	if name == "" {
		return fmt.Errorf("template name is required")
	}

	data, err := json.Marshal(tmpl)
	if err != nil {
		return fmt.Errorf("failed to marshal template: %w", err)
	}

	if err := s.client.Set(ctx, s.key(name), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save template: %w", err)
	}

	s.logger.Debug("template saved", zap.String("name", name), zap.Int("bytes", len(data)))
	return nil
}

// Load returns the template stored under name
func (s *RedisTemplateStore) Load(ctx context.Context, name string) (interface{}, error) {
	data, err := s.client.Get(ctx, s.key(name)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
		}
		return nil, fmt.Errorf("failed to load template: %w", err)
	}

	var tmpl interface{}
	if err := json.Unmarshal([]byte(data), &tmpl); err != nil {
		return nil, fmt.Errorf("failed to unmarshal template: %w", err)
	}

	return tmpl, nil
}

// Delete removes the template stored under name
func (s *RedisTemplateStore) Delete(ctx context.Context, name string) error {
	if err := s.client.Del(ctx, s.key(name)).Err(); err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}
	return nil
}

// Exists checks if a template is stored under name
func (s *RedisTemplateStore) Exists(ctx context.Context, name string) (bool, error) {
	result, err := s.client.Exists(ctx, s.key(name)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check existence: %w", err)
	}
	return result > 0, nil
}

// SetTTL sets a time-to-live for a stored template
func (s *RedisTemplateStore) SetTTL(ctx context.Context, name string, ttl time.Duration) error {
	ok, err := s.client.Expire(ctx, s.key(name), ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to set TTL: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	return nil
}

// List returns the stored template names in sorted order
func (s *RedisTemplateStore) List(ctx context.Context) ([]string, error) {
	var names []string

	iter := s.client.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if name := strings.TrimPrefix(iter.Val(), s.prefix); name != "" {
			names = append(names, name)
		}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}

	sort.Strings(names)
	return names, nil
}
