package imcp

import (
	"fmt"
	"slices"
	"strings"

	"github.com/opsre/cloudinv/internal/inventory"
	"github.com/opsre/cloudinv/internal/model"
)

// ==================== Provider 辅助函数 ====================

// serviceFor 根据名称选择提供商服务, 留空使用默认提供商
func (s *MCPServer) serviceFor(name string) (*inventory.Service, error) {
	if name == "" {
		name = s.config.Providers.Default
	}

	svc, ok := s.services[name]
	if !ok {
		return nil, fmt.Errorf("provider %s is not enabled", name)
	}

	return svc, nil
}

// intArg 读取数值参数, JSON 数字解码后是 float64
func intArg(args map[string]any, key string, def int) int {
	v, ok := args[key].(float64)
	if !ok {
		return def
	}
	return int(v)
}

// instanceHasIP 判断实例的公网或任一私网 IP 是否命中
func instanceHasIP(inst *model.Instance, ip string) bool {
	if inst.PublicIP == ip {
		return true
	}
	return slices.Contains(inst.PrivateIPs, ip)
}

// ==================== 格式化函数 ====================

// formatInstances 格式化实例信息
func formatInstances(instances []*model.Instance, providerName, region string) string {
	if len(instances) == 0 {
		return fmt.Sprintf("未找到任何实例 (提供商: %s, 区域: %s)", providerName, region)
	}

	var result strings.Builder
	result.WriteString(fmt.Sprintf("找到 %d 个实例 (提供商: %s, 区域: %s):\n\n", len(instances), providerName, region))

	for i, inst := range instances {
		result.WriteString(fmt.Sprintf("【实例 %d】\n", i+1))
		result.WriteString(fmt.Sprintf("  实例 ID: %s\n", inst.ID))
		result.WriteString(fmt.Sprintf("  实例名称: %s\n", inst.Name))
		result.WriteString(fmt.Sprintf("  实例规格: %s\n", inst.Type))
		result.WriteString(fmt.Sprintf("  状态: %s\n", inst.State))
		result.WriteString(fmt.Sprintf("  可用区: %s\n", inst.AvailabilityZone))
		result.WriteString(fmt.Sprintf("  公网 IP: %s\n", inst.PublicIP))

		if len(inst.PrivateIPs) > 0 {
			result.WriteString(fmt.Sprintf("  私网 IP: %s\n", strings.Join(inst.PrivateIPs, ", ")))
		}

		result.WriteString("\n")
	}

	return result.String()
}

// formatRegions 格式化区域列表
func formatRegions(regions []string, providerName string) string {
	if len(regions) == 0 {
		return fmt.Sprintf("提供商 %s 未返回任何可用区域", providerName)
	}

	var result strings.Builder
	result.WriteString(fmt.Sprintf("共 %d 个可用区域 (提供商: %s):\n\n", len(regions), providerName))

	for _, r := range regions {
		result.WriteString(fmt.Sprintf("  - %s\n", r))
	}

	return result.String()
}
