package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cnb.cool/zhiqiangwang/pkg/logx"
	"github.com/opsre/cloudinv/internal/model"
	"github.com/redis/go-redis/v9"
)

// RedisStore Redis 缓存, 多实例部署时共享快照
//
// 过期由 Redis 键过期接管, 容量由 Redis 自身的内存策略接管
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	prefix string // 键前缀, 各提供商各用一份避免互相覆盖
}

// NewRedisStore 创建 Redis 缓存
func NewRedisStore(addr, password string, db int, ttl time.Duration, prefix string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	// 测试连接
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisStore{
		client: client,
		ttl:    ttl,
		prefix: prefix,
	}, nil
}

// Get 查询缓存, Redis 不可用时降级为未命中
func (s *RedisStore) Get(ctx context.Context, region, sortBy string) ([]*model.Instance, bool) {
	if s.ttl <= 0 {
		return nil, false
	}

	data, err := s.client.Get(ctx, s.key(region, sortBy)).Result()
	if err == redis.Nil {
		return nil, false // 缓存未命中
	}
	if err != nil {
		logx.Warn("Failed to read instance cache from redis, region %s, error %v", region, err)
		return nil, false
	}

	var instances []*model.Instance
	if err := json.Unmarshal([]byte(data), &instances); err != nil {
		logx.Warn("Failed to decode cached instances, region %s, error %v", region, err)
		return nil, false
	}

	return instances, true
}

// Set 写入缓存, 失败只告警不影响请求
func (s *RedisStore) Set(ctx context.Context, region, sortBy string, instances []*model.Instance) {
	if s.ttl <= 0 {
		return
	}

	data, err := json.Marshal(instances)
	if err != nil {
		logx.Warn("Failed to encode instances for cache, region %s, error %v", region, err)
		return
	}

	if err := s.client.Set(ctx, s.key(region, sortBy), data, s.ttl).Err(); err != nil {
		logx.Warn("Failed to write instance cache to redis, region %s, error %v", region, err)
	}
}

// Close 关闭 Redis 连接
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) key(region, sortBy string) string {
	return fmt.Sprintf("%s:%s:%s", s.prefix, region, sortBy)
}
