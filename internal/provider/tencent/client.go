package tencent

import (
	"fmt"
	"sync"

	"github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/common"
	"github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/common/profile"
	cvm "github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/cvm/v20170312"
)

// Client 腾讯云客户端
type Client struct {
	SecretID  string
	SecretKey string
	Region    string

	mu        sync.Mutex
	cvmClient *cvm.Client
}

// NewClient 创建腾讯云客户端
func NewClient(secretID, secretKey, region string) *Client {
	return &Client{
		SecretID:  secretID,
		SecretKey: secretKey,
		Region:    region,
	}
}

// GetCVMClient 获取 CVM 客户端, 首次调用时创建
func (c *Client) GetCVMClient() (*cvm.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cvmClient != nil {
		return c.cvmClient, nil
	}

	credential := common.NewCredential(c.SecretID, c.SecretKey)
	cpf := profile.NewClientProfile()
	cpf.HttpProfile.Endpoint = "cvm.tencentcloudapi.com"

	client, err := cvm.NewClient(credential, c.Region, cpf)
	if err != nil {
		return nil, fmt.Errorf("failed to create CVM client: %w", err)
	}

	c.cvmClient = client
	return client, nil
}
