package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pawhaven/internal/config"

	"github.com/redis/go-redis/v9"
)

const defaultPrefix = "ph"

// Store Redis 缓存封装，未启用时读取总是未命中、写入为空操作
type Store struct {
	client *redis.Client
	prefix string
}

// NewStore 根据配置创建缓存
func NewStore(cfg *config.RedisConfig) *Store {
	if cfg == nil || !cfg.Enabled {
		return &Store{prefix: defaultPrefix}
	}
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = "127.0.0.1"
	}
	port := cfg.Port
	if port <= 0 {
		port = 6379
	}
	prefix := strings.TrimSpace(cfg.Prefix)
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &Store{
		client: redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", host, port),
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
		prefix: prefix,
	}
}

// NewStoreWithClient 使用已有客户端
func NewStoreWithClient(client *redis.Client, prefix string) *Store {
	if strings.TrimSpace(prefix) == "" {
		prefix = defaultPrefix
	}
	return &Store{client: client, prefix: prefix}
}

// Enabled 判断缓存是否启用
func (s *Store) Enabled() bool {
	return s != nil && s.client != nil
}

// Client 获取 Redis 客户端，未启用返回 nil
func (s *Store) Client() *redis.Client {
	if !s.Enabled() {
		return nil
	}
	return s.client
}

// Key 拼接带前缀的键
func (s *Store) Key(key string) string {
	trimmed := strings.TrimSpace(key)
	prefix := defaultPrefix
	if s != nil && s.prefix != "" {
		prefix = s.prefix
	}
	if trimmed == "" {
		return prefix
	}
	return prefix + ":" + trimmed
}

// GetJSON 获取 JSON 缓存
func (s *Store) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	if !s.Enabled() {
		return false, nil
	}
	val, err := s.client.Get(ctx, s.Key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(val, dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON 写入 JSON 缓存
func (s *Store) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !s.Enabled() {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.Key(key), payload, ttl).Err()
}

// Del 删除缓存
func (s *Store) Del(ctx context.Context, keys ...string) error {
	if !s.Enabled() || len(keys) == 0 {
		return nil
	}
	full := make([]string, 0, len(keys))
	for _, key := range keys {
		full = append(full, s.Key(key))
	}
	return s.client.Del(ctx, full...).Err()
}

// Ping 健康检查
func (s *Store) Ping(ctx context.Context) error {
	if !s.Enabled() {
		return nil
	}
	return s.client.Ping(ctx).Err()
}

// Close 关闭连接
func (s *Store) Close() error {
	if !s.Enabled() {
		return nil
	}
	return s.client.Close()
}
