package aws

import (
	"context"
	"fmt"
	"sync"

	"cnb.cool/zhiqiangwang/pkg/logx"
	"github.com/opsre/cloudinv/internal/model"
	"github.com/opsre/cloudinv/internal/provider"
)

// defaultMetadataRegion 区域发现等账号级接口使用的固定接入区域
const defaultMetadataRegion = "eu-west-1"

// AWSProvider AWS 提供商实现
type AWSProvider struct {
	accessKeyID     string
	secretAccessKey string
	metadataRegion  string

	mu      sync.RWMutex
	clients map[string]*Client // region -> client
	config  map[string]any
}

// NewProvider 创建 AWS 提供商
func NewProvider() provider.Provider {
	return &AWSProvider{
		clients: make(map[string]*Client),
	}
}

// GetName 返回提供商名称
func (p *AWSProvider) GetName() string {
	return "aws"
}

// Initialize 初始化 AWS 提供商
func (p *AWSProvider) Initialize(config map[string]any) error {
	p.config = config

	accessKeyID, _ := config["access_key_id"].(string)
	secretAccessKey, _ := config["secret_access_key"].(string)

	// 显式凭证必须成对出现, 都不给时走 SDK 默认凭证链
	if (accessKeyID == "") != (secretAccessKey == "") {
		return fmt.Errorf("access_key_id and secret_access_key must be set together")
	}

	p.accessKeyID = accessKeyID
	p.secretAccessKey = secretAccessKey

	p.metadataRegion = defaultMetadataRegion
	if region, ok := config["metadata_region"].(string); ok && region != "" {
		p.metadataRegion = region
	}

	logx.Info("AWS provider initialized successfully, metadata region %s", p.metadataRegion)

	return nil
}

// getClient 按区域懒加载客户端, 同一区域只建一次
func (p *AWSProvider) getClient(region string) *Client {
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

	client = NewClient(p.accessKeyID, p.secretAccessKey, region)
	p.clients[region] = client

	return client
}

// ListInstances 列出指定区域的所有实例
func (p *AWSProvider) ListInstances(ctx context.Context, region string) ([]*model.Instance, error) {
	if region == "" {
		return nil, fmt.Errorf("region is required")
	}

	return p.getClient(region).ListEC2Instances(ctx)
}

// ListRegions 列出当前账号可见的区域
func (p *AWSProvider) ListRegions(ctx context.Context) ([]string, error) {
	return p.getClient(p.metadataRegion).ListEC2Regions(ctx)
}

// HealthCheck 健康检查
func (p *AWSProvider) HealthCheck(ctx context.Context) error {
	if _, err := p.ListRegions(ctx); err != nil {
		return fmt.Errorf("aws health check failed: %w", err)
	}

	logx.Debug("AWS health check passed")

	return nil
}
