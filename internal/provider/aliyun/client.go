package aliyun

import (
	"fmt"
	"sync"

	openapi "github.com/alibabacloud-go/darabonba-openapi/v2/client"
	ecs "github.com/alibabacloud-go/ecs-20140526/v4/client"
	"github.com/alibabacloud-go/tea/tea"
)

// Client 阿里云客户端
type Client struct {
	AccessKeyID     string
	AccessKeySecret string
	Region          string

	mu        sync.Mutex
	ecsClient *ecs.Client
}

// NewClient 创建阿里云客户端
func NewClient(accessKeyID, accessKeySecret, region string) (*Client, error) {
	if accessKeyID == "" || accessKeySecret == "" {
		return nil, fmt.Errorf("access key id or secret is empty")
	}

	if region == "" {
		region = "cn-hangzhou" // 默认区域
	}

	client := &Client{
		AccessKeyID:     accessKeyID,
		AccessKeySecret: accessKeySecret,
		Region:          region,
	}

	return client, nil
}

// GetECSClient 获取 ECS 客户端, 首次调用时创建
func (c *Client) GetECSClient() (*ecs.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ecsClient != nil {
		return c.ecsClient, nil
	}

	endpoint := fmt.Sprintf("ecs.%s.aliyuncs.com", c.Region)

	config := &openapi.Config{
		AccessKeyId:     tea.String(c.AccessKeyID),
		AccessKeySecret: tea.String(c.AccessKeySecret),
		Endpoint:        tea.String(endpoint),
	}

	client, err := ecs.NewClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create ECS client: %w", err)
	}

	c.ecsClient = client
	return client, nil
}
