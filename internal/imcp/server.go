package imcp

import (
	"context"
	"fmt"

	"cnb.cool/zhiqiangwang/pkg/logx"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/opsre/cloudinv/internal/config"
	"github.com/opsre/cloudinv/internal/inventory"
)

// MCPServer 通过 MCP 协议对外暴露实例查询工具
type MCPServer struct {
	config    *config.Config
	services  map[string]*inventory.Service
	mcpServer *server.MCPServer
	sseServer *server.SSEServer
}

// NewMCPServer 创建 MCP 服务端并注册所有工具
func NewMCPServer(cfg *config.Config, services map[string]*inventory.Service, version string) (*MCPServer, error) {
	if _, ok := services[cfg.Providers.Default]; !ok {
		return nil, fmt.Errorf("default provider %s is not enabled", cfg.Providers.Default)
	}

	s := &MCPServer{
		config:   cfg,
		services: services,
	}

	s.mcpServer = server.NewMCPServer(
		"cloudinv",
		version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	s.registerTools()

	return s, nil
}

// registerTools 注册所有工具
func (s *MCPServer) registerTools() {
	listInstancesTool := mcp.NewTool("list_instances",
		mcp.WithDescription("列出指定区域的云主机实例, 支持排序与分页"),
		mcp.WithString("region",
			mcp.Required(),
			mcp.Description("区域 ID, 例如 eu-west-1 或 cn-hangzhou"),
		),
		mcp.WithString("provider",
			mcp.Description("云提供商 (aws/aliyun/tencent), 留空使用默认提供商"),
		),
		mcp.WithString("sort_by",
			mcp.Description("排序字段: Name, ID, Type, State, AvailabilityZone, PublicIP, PrivateIPs"),
		),
		mcp.WithNumber("page",
			mcp.Description("页码, 从 1 开始, 默认 1"),
		),
		mcp.WithNumber("page_size",
			mcp.Description("每页条数, 必须为正数, 默认 5"),
		),
	)
	s.mcpServer.AddTool(listInstancesTool, s.handleListInstances)

	listRegionsTool := mcp.NewTool("list_regions",
		mcp.WithDescription("列出提供商当前可用的区域"),
		mcp.WithString("provider",
			mcp.Description("云提供商 (aws/aliyun/tencent), 留空使用默认提供商"),
		),
	)
	s.mcpServer.AddTool(listRegionsTool, s.handleListRegions)

	searchByIPTool := mcp.NewTool("search_instance_by_ip",
		mcp.WithDescription("在指定区域内根据公网或私网 IP 查找实例"),
		mcp.WithString("ip",
			mcp.Required(),
			mcp.Description("要查找的 IP 地址"),
		),
		mcp.WithString("region",
			mcp.Required(),
			mcp.Description("区域 ID"),
		),
		mcp.WithString("provider",
			mcp.Description("云提供商 (aws/aliyun/tencent), 留空使用默认提供商"),
		),
	)
	s.mcpServer.AddTool(searchByIPTool, s.handleSearchInstanceByIP)

	searchByNameTool := mcp.NewTool("search_instance_by_name",
		mcp.WithDescription("在指定区域内根据实例名称查找实例"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("实例名称, 精确匹配"),
		),
		mcp.WithString("region",
			mcp.Required(),
			mcp.Description("区域 ID"),
		),
		mcp.WithString("provider",
			mcp.Description("云提供商 (aws/aliyun/tencent), 留空使用默认提供商"),
		),
	)
	s.mcpServer.AddTool(searchByNameTool, s.handleSearchInstanceByName)
}

// Start 以 SSE 方式启动 MCP 服务, 阻塞直到服务退出
func (s *MCPServer) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Server.MCP.Port)
	s.sseServer = server.NewSSEServer(s.mcpServer)

	logx.Info("🔌 MCP server starting on %s", addr)
	return s.sseServer.Start(addr)
}

// Stop 停止 MCP 服务
func (s *MCPServer) Stop(ctx context.Context) error {
	if s.sseServer == nil {
		return nil
	}

	logx.Info("Stopping MCP server...")
	return s.sseServer.Shutdown(ctx)
}
