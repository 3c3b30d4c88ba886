package aliyun

import (
	"context"
	"fmt"
	"sync"

	"cnb.cool/zhiqiangwang/pkg/logx"
	"github.com/opsre/cloudinv/internal/model"
	"github.com/opsre/cloudinv/internal/provider"
)

// defaultMetadataRegion 区域发现等账号级接口使用的接入区域
const defaultMetadataRegion = "cn-hangzhou"

// AliyunProvider 阿里云提供商实现
type AliyunProvider struct {
	accessKeyID     string
	accessKeySecret string
	metadataRegion  string

	mu      sync.RWMutex
	clients map[string]*Client // region -> client
	config  map[string]any
}

// NewProvider 创建阿里云提供商
func NewProvider() provider.Provider {
	return &AliyunProvider{
		clients: make(map[string]*Client),
	}
}

// GetName 返回提供商名称
func (p *AliyunProvider) GetName() string {
	return "aliyun"
}

// Initialize 初始化阿里云提供商
func (p *AliyunProvider) Initialize(config map[string]any) error {
	p.config = config

	accessKeyID, ok := config["access_key_id"].(string)
	if !ok || accessKeyID == "" {
		return fmt.Errorf("access_key_id is required")
	}

	accessKeySecret, ok := config["access_key_secret"].(string)
	if !ok || accessKeySecret == "" {
		return fmt.Errorf("access_key_secret is required")
	}

	p.accessKeyID = accessKeyID
	p.accessKeySecret = accessKeySecret

	p.metadataRegion = defaultMetadataRegion
	if region, ok := config["metadata_region"].(string); ok && region != "" {
		p.metadataRegion = region
	}

	logx.Info("Aliyun provider initialized successfully, metadata region %s", p.metadataRegion)

	return nil
}

// getClient 按区域懒加载客户端, 同一区域只建一次
func (p *AliyunProvider) getClient(region string) (*Client, error) {
	p.mu.RLock()
	client, ok := p.clients[region]
	p.mu.RUnlock()
	if ok {
		return client, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if client, ok := p.clients[region]; ok {
		return client, nil
	}

	client, err := NewClient(p.accessKeyID, p.accessKeySecret, region)
	if err != nil {
		return nil, err
	}
	p.clients[region] = client

	return client, nil
}

// ListInstances 列出指定区域的所有实例
func (p *AliyunProvider) ListInstances(ctx context.Context, region string) ([]*model.Instance, error) {
	if region == "" {
		return nil, fmt.Errorf("region is required")
	}

	client, err := p.getClient(region)
	if err != nil {
		return nil, err
	}

	return client.ListECSInstances(ctx)
}

// ListRegions 列出当前账号可见的区域
func (p *AliyunProvider) ListRegions(ctx context.Context) ([]string, error) {
	client, err := p.getClient(p.metadataRegion)
	if err != nil {
		return nil, err
	}

	return client.ListECSRegions(ctx)
}

// HealthCheck 健康检查
func (p *AliyunProvider) HealthCheck(ctx context.Context) error {
	if _, err := p.ListRegions(ctx); err != nil {
		return fmt.Errorf("aliyun health check failed: %w", err)
	}

	logx.Debug("Aliyun health check passed")

	return nil
}
