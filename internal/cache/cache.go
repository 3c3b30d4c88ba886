package cache

import (
	"context"

	"github.com/opsre/cloudinv/internal/model"
)

// Store 实例查询结果缓存, 键为 (区域, 排序字段)
//
// 同一区域不同排序字段各存一份快照, 快照在写入前已按排序字段排好,
// 命中时直接返回, 不再重新排序
type Store interface {
	// Get 查询缓存, 命中返回快照副本, 未命中或已过期返回 false
	Get(ctx context.Context, region, sortBy string) ([]*model.Instance, bool)
	// Set 写入快照并记录创建时间
	Set(ctx context.Context, region, sortBy string, instances []*model.Instance)
}
