package inventory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"cnb.cool/zhiqiangwang/pkg/logx"
	"github.com/opsre/cloudinv/internal/cache"
	"github.com/opsre/cloudinv/internal/model"
	"github.com/opsre/cloudinv/internal/provider"
)

// Service 单个提供商的实例查询管线: 参数校验, 缓存, 排序, 分页
type Service struct {
	provider provider.Provider
	store    cache.Store

	// 区域集合可选短缓存, regionTTL <= 0 时每次校验都实时查询
	regionTTL time.Duration
	regionMu  sync.RWMutex
	regions   map[string]struct{}
	regionsAt time.Time

	now func() time.Time // 测试时可替换
}

// NewService 创建实例查询服务
func NewService(p provider.Provider, store cache.Store, regionTTL time.Duration) *Service {
	return &Service{
		provider:  p,
		store:     store,
		regionTTL: regionTTL,
		now:       time.Now,
	}
}

// ProviderName 返回后端提供商名称
func (s *Service) ProviderName() string {
	return s.provider.GetName()
}

// Query 校验参数后返回指定区域实例列表的一页
//
// 校验顺序固定为区域, 排序字段, 页大小, 第一个失败即返回;
// 全部通过后走缓存取快照再分页
func (s *Service) Query(ctx context.Context, region, sortBy string, page, pageSize int) ([]*model.Instance, error) {
	if err := s.ValidateRegion(ctx, region); err != nil {
		return nil, err
	}
	if err := ValidateSortBy(sortBy); err != nil {
		return nil, err
	}
	if err := ValidatePageSize(pageSize); err != nil {
		return nil, err
	}

	items, err := s.Instances(ctx, region, sortBy)
	if err != nil {
		return nil, err
	}

	return Paginate(items, page, pageSize), nil
}

// ValidateRegion 校验区域名, 区域集合来自云上实时查询
func (s *Service) ValidateRegion(ctx context.Context, region string) error {
	if region == "" {
		return ErrInvalidRegion
	}

	regions, err := s.validRegions(ctx)
	if err != nil {
		return fmt.Errorf("failed to list valid regions: %w", err)
	}

	if _, ok := regions[region]; !ok {
		return ErrInvalidRegion
	}

	return nil
}

// Regions 返回当前账号可见的区域列表
func (s *Service) Regions(ctx context.Context) ([]string, error) {
	regions, err := s.provider.ListRegions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list regions: %w", err)
	}

	return regions, nil
}

// HealthCheck 透传提供商健康检查
func (s *Service) HealthCheck(ctx context.Context) error {
	return s.provider.HealthCheck(ctx)
}

// Instances 返回区域实例的完整排序快照, 不做参数校验和分页
//
// 命中缓存直接返回快照, 未命中则拉取并排好序后写入; 同一键并发
// 未命中时各自拉取, 后写覆盖先写, 快照内容等价无需去重
func (s *Service) Instances(ctx context.Context, region, sortBy string) ([]*model.Instance, error) {
	if items, ok := s.store.Get(ctx, region, sortBy); ok {
		logx.Debug("Instance cache hit, region %s, sort_by %s", region, sortBy)
		return items, nil
	}

	items, err := s.provider.ListInstances(ctx, region)
	if err != nil {
		return nil, fmt.Errorf("failed to list instances: %w", err)
	}
	if items == nil {
		items = make([]*model.Instance, 0)
	}

	SortInstances(items, sortBy)
	s.store.Set(ctx, region, sortBy, items)

	logx.Debug("Instance cache filled, region %s, sort_by %s, count %d",
		region, sortBy, len(items))

	return items, nil
}

// validRegions 返回区域标识集合, 启用短缓存时在有效期内复用
func (s *Service) validRegions(ctx context.Context) (map[string]struct{}, error) {
	if s.regionTTL > 0 {
		s.regionMu.RLock()
		if s.regions != nil && s.now().Sub(s.regionsAt) < s.regionTTL {
			regions := s.regions
			s.regionMu.RUnlock()
			return regions, nil
		}
		s.regionMu.RUnlock()
	}

	names, err := s.provider.ListRegions(ctx)
	if err != nil {
		return nil, err
	}

	regions := make(map[string]struct{}, len(names))
	for _, name := range names {
		regions[name] = struct{}{}
	}

	if s.regionTTL > 0 {
		s.regionMu.Lock()
		s.regions = regions
		s.regionsAt = s.now()
		s.regionMu.Unlock()
	}

	return regions, nil
}
