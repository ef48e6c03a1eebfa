package cache

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"time"

	"github.com/foodgram-next/internal/config"
	"github.com/foodgram-next/internal/constants"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

const pingTimeout = 3 * time.Second

// store 进程内唯一的 Redis 连接；为 nil 表示缓存关闭，所有读写退化为空操作
type store struct {
	client *redis.Client
	prefix string
}

var current atomic.Pointer[store]

func load() *store {
	return current.Load()
}

// InitRedis 连接 Redis；连不上时关闭缓存并返回错误，调用方只需记录日志
func InitRedis(cfg *config.RedisConfig) error {
	if old := current.Swap(nil); old != nil {
		_ = old.client.Close()
	}
	if cfg == nil || !cfg.Enabled {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return err
	}
	current.Store(&store{client: client, prefix: normalizePrefix(cfg.Prefix)})
	return nil
}

// Enabled 缓存是否可用
func Enabled() bool {
	return load() != nil
}

// Client 供限流等需要原生命令的场景，缓存关闭时返回 nil
func Client() *redis.Client {
	if s := load(); s != nil {
		return s.client
	}
	return nil
}

// Status 健康检查使用：disabled / ok / 错误信息
func Status(ctx context.Context) (string, error) {
	s := load()
	if s == nil {
		return "disabled", nil
	}
	if err := s.client.Ping(ctx).Err(); err != nil {
		return "error", err
	}
	return "ok", nil
}

// Close 关闭连接并关闭缓存
func Close() error {
	if s := current.Swap(nil); s != nil {
		return s.client.Close()
	}
	return nil
}

// GetJSON 读取 JSON 缓存，未命中返回 false
func GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	s := load()
	if s == nil {
		return false, nil
	}
	raw, err := s.client.Get(ctx, s.key(key)).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return false, nil
	case err != nil:
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		// 结构变更后的旧数据按未命中处理
		_ = s.client.Del(ctx, s.key(key)).Err()
		return false, nil
	}
	return true, nil
}

// SetJSON 写入 JSON 缓存
func SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	s := load()
	if s == nil {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(key), payload, ttl).Err()
}

// Del 删除缓存
func Del(ctx context.Context, keys ...string) error {
	s := load()
	if s == nil || len(keys) == 0 {
		return nil
	}
	full := make([]string, 0, len(keys))
	for _, key := range keys {
		full = append(full, s.key(key))
	}
	return s.client.Del(ctx, full...).Err()
}

// Key 返回带前缀的完整 key
func Key(key string) string {
	prefix := constants.RedisPrefixDefault
	if s := load(); s != nil {
		prefix = s.prefix
	}
	return joinKey(prefix, key)
}

func (s *store) key(key string) string {
	return joinKey(s.prefix, key)
}

func normalizePrefix(prefix string) string {
	prefix = strings.Trim(strings.TrimSpace(prefix), ":")
	if prefix == "" {
		return constants.RedisPrefixDefault
	}
	return prefix
}

func joinKey(prefix, key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return prefix
	}
	return prefix + ":" + key
}
