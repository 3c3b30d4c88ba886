package aws

import (
	"context"
	"fmt"
	"sync"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
)

// Client AWS 客户端
type Client struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string

	mu        sync.Mutex
	ec2Client *ec2.Client
}

// NewClient 创建 AWS 客户端
func NewClient(accessKeyID, secretAccessKey, region string) *Client {
	return &Client{
		AccessKeyID:     accessKeyID,
		SecretAccessKey: secretAccessKey,
		Region:          region,
	}
}

// GetEC2Client 获取 EC2 客户端
// 密钥为空时走 SDK 默认凭证链 (环境变量 / 共享配置 / IMDS)
func (c *Client) GetEC2Client(ctx context.Context) (*ec2.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ec2Client != nil {
		return c.ec2Client, nil
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(c.Region),
	}
	if c.AccessKeyID != "" && c.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(c.AccessKeyID, c.SecretAccessKey, "")))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}

	c.ec2Client = ec2.NewFromConfig(cfg)
	return c.ec2Client, nil
}
