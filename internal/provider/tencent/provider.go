package tencent

import (
	"context"
	"fmt"
	"sync"

	"cnb.cool/zhiqiangwang/pkg/logx"
	"github.com/opsre/cloudinv/internal/model"
	"github.com/opsre/cloudinv/internal/provider"
)

// defaultMetadataRegion 区域发现等账号级接口使用的接入区域
const defaultMetadataRegion = "ap-guangzhou"

// TencentProvider 腾讯云提供商实现
type TencentProvider struct {
	secretID       string
	secretKey      string
	metadataRegion string

	mu      sync.RWMutex
	clients map[string]*Client // region -> client
	config  map[string]any
}

// NewProvider 创建腾讯云提供商
func NewProvider() provider.Provider {
	return &TencentProvider{
		clients: make(map[string]*Client),
	}
}

// GetName 返回提供商名称
func (p *TencentProvider) GetName() string {
	return "tencent"
}

// Initialize 初始化腾讯云提供商
func (p *TencentProvider) Initialize(config map[string]any) error {
	p.config = config

	secretID, ok := config["secret_id"].(string)
	if !ok || secretID == "" {
		return fmt.Errorf("secret_id is required")
	}

	secretKey, ok := config["secret_key"].(string)
	if !ok || secretKey == "" {
		return fmt.Errorf("secret_key is required")
	}

	p.secretID = secretID
	p.secretKey = secretKey

	p.metadataRegion = defaultMetadataRegion
	if region, ok := config["metadata_region"].(string); ok && region != "" {
		p.metadataRegion = region
	}

	logx.Info("Tencent provider initialized successfully, metadata region %s", p.metadataRegion)

	return nil
}

// getClient 按区域懒加载客户端, 同一区域只建一次
func (p *TencentProvider) getClient(region string) *Client {
	p.mu.RLock()
	client, ok := p.clients[region]
	p.mu.RUnlock()
	if ok {
		return client
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if client, ok := p.clients[region]; ok {
		return client
	}

	client = NewClient(p.secretID, p.secretKey, region)
	p.clients[region] = client

	return client
}

// ListInstances 列出指定区域的所有实例
func (p *TencentProvider) ListInstances(ctx context.Context, region string) ([]*model.Instance, error) {
	if region == "" {
		return nil, fmt.Errorf("region is required")
	}

	return p.getClient(region).ListCVMInstances(ctx)
}

// ListRegions 列出当前账号可见的区域
func (p *TencentProvider) ListRegions(ctx context.Context) ([]string, error) {
	return p.getClient(p.metadataRegion).ListCVMRegions(ctx)
}

// HealthCheck 健康检查
func (p *TencentProvider) HealthCheck(ctx context.Context) error {
	if _, err := p.ListRegions(ctx); err != nil {
		return fmt.Errorf("tencent health check failed: %w", err)
	}

	logx.Debug("Tencent health check passed")

	return nil
}
