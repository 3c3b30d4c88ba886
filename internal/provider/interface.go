package provider

import (
	"context"

	"github.com/opsre/cloudinv/internal/model"
)

// Provider 定义了云服务提供商的统一接口
type Provider interface {
	// GetName 返回提供商名称 (如: aws, aliyun, tencent)
	GetName() string

	// Initialize 初始化提供商客户端
	Initialize(config map[string]any) error

	// ListInstances 列出指定区域的全部实例 (EC2/ECS/CVM), 不排序不分页
	ListInstances(ctx context.Context, region string) ([]*model.Instance, error)

	// ListRegions 列出提供商当前有效的区域标识
	ListRegions(ctx context.Context) ([]string, error)

	// HealthCheck 健康检查
	HealthCheck(ctx context.Context) error
}
