package imcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/opsre/cloudinv/internal/model"
)

// handleListInstances 处理列出实例的请求
func (s *MCPServer) handleListInstances(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]any)
	if !ok {
		return mcp.NewToolResultError("invalid arguments type"), nil
	}

	region, ok := args["region"].(string)
	if !ok || region == "" {
		return mcp.NewToolResultError("region parameter is required"), nil
	}

	providerName, _ := args["provider"].(string)
	sortBy, _ := args["sort_by"].(string)
	page := intArg(args, "page", 1)
	pageSize := intArg(args, "page_size", 5)

	svc, err := s.serviceFor(providerName)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	instances, err := svc.Query(ctx, region, sortBy, page, pageSize)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatInstances(instances, svc.ProviderName(), region)
	return mcp.NewToolResultText(result), nil
}

// handleListRegions 处理列出区域的请求
func (s *MCPServer) handleListRegions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]any)
	if !ok {
		args = make(map[string]any)
	}

	providerName, _ := args["provider"].(string)

	svc, err := s.serviceFor(providerName)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	regions, err := svc.Regions(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatRegions(regions, svc.ProviderName())
	return mcp.NewToolResultText(result), nil
}

// handleSearchInstanceByIP 处理根据 IP 查找实例的请求
func (s *MCPServer) handleSearchInstanceByIP(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]any)
	if !ok {
		return mcp.NewToolResultError("invalid arguments type"), nil
	}

	ip, ok := args["ip"].(string)
	if !ok || ip == "" {
		return mcp.NewToolResultError("ip parameter is required"), nil
	}

	region, ok := args["region"].(string)
	if !ok || region == "" {
		return mcp.NewToolResultError("region parameter is required"), nil
	}

	providerName, _ := args["provider"].(string)

	svc, err := s.serviceFor(providerName)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := svc.ValidateRegion(ctx, region); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	instances, err := svc.Instances(ctx, region, "")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var matched []*model.Instance
	for _, inst := range instances {
		if instanceHasIP(inst, ip) {
			matched = append(matched, inst)
		}
	}

	if len(matched) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("未找到 IP 为 %s 的实例 (区域: %s)", ip, region)), nil
	}

	result := formatInstances(matched, svc.ProviderName(), region)
	return mcp.NewToolResultText(result), nil
}

// handleSearchInstanceByName 处理根据名称查找实例的请求
func (s *MCPServer) handleSearchInstanceByName(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]any)
	if !ok {
		return mcp.NewToolResultError("invalid arguments type"), nil
	}

	name, ok := args["name"].(string)
	if !ok || name == "" {
		return mcp.NewToolResultError("name parameter is required"), nil
	}

	region, ok := args["region"].(string)
	if !ok || region == "" {
		return mcp.NewToolResultError("region parameter is required"), nil
	}

	providerName, _ := args["provider"].(string)

	svc, err := s.serviceFor(providerName)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := svc.ValidateRegion(ctx, region); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	instances, err := svc.Instances(ctx, region, "")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var matched []*model.Instance
	for _, inst := range instances {
		if inst.Name == name {
			matched = append(matched, inst)
		}
	}

	if len(matched) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("未找到名称为 %s 的实例 (区域: %s)", name, region)), nil
	}

	result := formatInstances(matched, svc.ProviderName(), region)
	return mcp.NewToolResultText(result), nil
}
