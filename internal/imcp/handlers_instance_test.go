package imcp

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsre/cloudinv/internal/cache"
	"github.com/opsre/cloudinv/internal/config"
	"github.com/opsre/cloudinv/internal/inventory"
	"github.com/opsre/cloudinv/internal/model"
)

type fakeProvider struct {
	name      string
	regions   []string
	instances map[string][]*model.Instance
}

func (p *fakeProvider) GetName() string                   { return p.name }
func (p *fakeProvider) Initialize(map[string]any) error   { return nil }
func (p *fakeProvider) HealthCheck(context.Context) error { return nil }

func (p *fakeProvider) ListInstances(_ context.Context, region string) ([]*model.Instance, error) {
	return p.instances[region], nil
}

func (p *fakeProvider) ListRegions(context.Context) ([]string, error) {
	return p.regions, nil
}

func newTestMCPServer(t *testing.T) *MCPServer {
	t.Helper()

	p := &fakeProvider{
		name:    "aws",
		regions: []string{"eu-west-1", "us-east-1"},
		instances: map[string][]*model.Instance{
			"eu-west-1": {
				{
					Name:             "web-1",
					ID:               "i-0a1",
					Type:             "t2.micro",
					State:            "running",
					AvailabilityZone: "eu-west-1a",
					PublicIP:         "52.16.0.7",
					PrivateIPs:       []string{"10.0.0.4"},
				},
				{
					Name:             "web-2",
					ID:               "i-0b2",
					Type:             "t2.small",
					State:            "stopped",
					AvailabilityZone: "eu-west-1b",
					PublicIP:         "N/A",
					PrivateIPs:       []string{"10.0.0.5", "10.0.1.5"},
				},
			},
		},
	}

	cfg := &config.Config{}
	cfg.Providers.Default = "aws"
	cfg.Server.MCP.Port = 8081

	services := map[string]*inventory.Service{
		"aws": inventory.NewService(p, cache.NewMemoryStore(0, 0), 0),
	}

	s, err := NewMCPServer(cfg, services, "test")
	require.NoError(t, err)
	return s
}

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func textContent(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)

	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestListInstancesToolReturnsFormattedText(t *testing.T) {
	s := newTestMCPServer(t)

	result, err := s.handleListInstances(context.Background(), callRequest("list_instances", map[string]any{
		"region": "eu-west-1",
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	text := textContent(t, result)
	assert.Contains(t, text, "找到 2 个实例")
	assert.Contains(t, text, "i-0a1")
	assert.Contains(t, text, "web-2")
	assert.Contains(t, text, "10.0.0.5, 10.0.1.5")
}

func TestListInstancesToolRequiresRegion(t *testing.T) {
	s := newTestMCPServer(t)

	result, err := s.handleListInstances(context.Background(), callRequest("list_instances", map[string]any{}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestListInstancesToolRejectsInvalidRegion(t *testing.T) {
	s := newTestMCPServer(t)

	result, err := s.handleListInstances(context.Background(), callRequest("list_instances", map[string]any{
		"region": "mars-north-1",
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, textContent(t, result), "Invalid region name")
}

func TestListInstancesToolPaginates(t *testing.T) {
	s := newTestMCPServer(t)

	result, err := s.handleListInstances(context.Background(), callRequest("list_instances", map[string]any{
		"region":    "eu-west-1",
		"sort_by":   "Name",
		"page":      float64(2),
		"page_size": float64(1),
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	text := textContent(t, result)
	assert.Contains(t, text, "找到 1 个实例")
	assert.Contains(t, text, "web-2")
	assert.NotContains(t, text, "web-1")
}

func TestListInstancesToolUnknownProvider(t *testing.T) {
	s := newTestMCPServer(t)

	result, err := s.handleListInstances(context.Background(), callRequest("list_instances", map[string]any{
		"region":   "eu-west-1",
		"provider": "gcp",
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, textContent(t, result), "provider gcp is not enabled")
}

func TestListRegionsTool(t *testing.T) {
	s := newTestMCPServer(t)

	result, err := s.handleListRegions(context.Background(), callRequest("list_regions", nil))
	require.NoError(t, err)
	require.False(t, result.IsError)

	text := textContent(t, result)
	assert.Contains(t, text, "共 2 个可用区域")
	assert.Contains(t, text, "eu-west-1")
	assert.Contains(t, text, "us-east-1")
}

func TestSearchInstanceByIPMatchesPrivateIP(t *testing.T) {
	s := newTestMCPServer(t)

	result, err := s.handleSearchInstanceByIP(context.Background(), callRequest("search_instance_by_ip", map[string]any{
		"ip":     "10.0.1.5",
		"region": "eu-west-1",
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	text := textContent(t, result)
	assert.Contains(t, text, "i-0b2")
	assert.NotContains(t, text, "i-0a1")
}

func TestSearchInstanceByIPNotFound(t *testing.T) {
	s := newTestMCPServer(t)

	result, err := s.handleSearchInstanceByIP(context.Background(), callRequest("search_instance_by_ip", map[string]any{
		"ip":     "192.168.1.1",
		"region": "eu-west-1",
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)
	assert.Contains(t, textContent(t, result), "未找到 IP 为 192.168.1.1 的实例")
}

func TestSearchInstanceByNameExactMatch(t *testing.T) {
	s := newTestMCPServer(t)

	result, err := s.handleSearchInstanceByName(context.Background(), callRequest("search_instance_by_name", map[string]any{
		"name":   "web-1",
		"region": "eu-west-1",
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	text := textContent(t, result)
	assert.Contains(t, text, "i-0a1")
	assert.NotContains(t, text, "i-0b2")
}
