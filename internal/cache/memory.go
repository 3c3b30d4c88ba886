package cache

import (
	"context"
	"slices"
	"sync"
	"time"

	"cnb.cool/zhiqiangwang/pkg/logx"
	"github.com/opsre/cloudinv/internal/model"
)

// entryKey 缓存键, 区域与排序字段唯一确定一份快照
type entryKey struct {
	region string
	sortBy string
}

type entry struct {
	instances []*model.Instance
	createdAt time.Time
}

// MemoryStore 进程内缓存
//
// 过期条目在读取时懒清理, 不起后台定时器; 条目数超过上限时
// 按创建时间从早到晚淘汰
type MemoryStore struct {
	ttl        time.Duration
	maxEntries int

	mu      sync.RWMutex
	entries map[entryKey]*entry

	now func() time.Time // 测试时可替换
}

// NewMemoryStore 创建进程内缓存
//
// ttl <= 0 表示禁用缓存, 所有读取都视为未命中;
// maxEntries <= 0 表示不限制条目数
func NewMemoryStore(ttl time.Duration, maxEntries int) *MemoryStore {
	return &MemoryStore{
		ttl:        ttl,
		maxEntries: maxEntries,
		entries:    make(map[entryKey]*entry),
		now:        time.Now,
	}
}

// Get 查询缓存
func (s *MemoryStore) Get(ctx context.Context, region, sortBy string) ([]*model.Instance, bool) {
	if s.ttl <= 0 {
		return nil, false
	}

	key := entryKey{region: region, sortBy: sortBy}

	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if s.now().Sub(e.createdAt) >= s.ttl {
		s.mu.Lock()
		// 只清理读到的那个条目, 避免误删并发写入的新快照
		if cur, ok := s.entries[key]; ok && cur == e {
			delete(s.entries, key)
		}
		s.mu.Unlock()

		logx.Debug("Cache entry expired, region %s, sort_by %s", region, sortBy)

		return nil, false
	}

	// 返回副本, 调用方改动切片不影响缓存内容
	return slices.Clone(e.instances), true
}

// Set 写入缓存
func (s *MemoryStore) Set(ctx context.Context, region, sortBy string, instances []*model.Instance) {
	if s.ttl <= 0 {
		return
	}

	key := entryKey{region: region, sortBy: sortBy}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = &entry{
		instances: slices.Clone(instances),
		createdAt: s.now(),
	}

	s.evictLocked()
}

// evictLocked 超出容量时按最早创建淘汰, 调用方需持有写锁
func (s *MemoryStore) evictLocked() {
	if s.maxEntries <= 0 {
		return
	}

	for len(s.entries) > s.maxEntries {
		var oldestKey entryKey
		var oldestAt time.Time
		first := true

		for k, e := range s.entries {
			if first || e.createdAt.Before(oldestAt) {
				oldestKey = k
				oldestAt = e.createdAt
				first = false
			}
		}

		delete(s.entries, oldestKey)

		logx.Debug("Evicted oldest cache entry, region %s, sort_by %s",
			oldestKey.region, oldestKey.sortBy)
	}
}

// Len 当前缓存条目数
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.entries)
}
