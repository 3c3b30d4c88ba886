package tencent

import (
	"context"
	"fmt"

	"cnb.cool/zhiqiangwang/pkg/logx"
	"github.com/opsre/cloudinv/internal/model"
	cvm "github.com/tencentcloud/tencentcloud-sdk-go/tencentcloud/cvm/v20170312"
)

// queryLimit DescribeInstances 单次翻页条数, 取接口上限
const queryLimit = int64(100)

// ListCVMInstances 查询区域内全部 CVM 实例, 内部翻页取全量
func (c *Client) ListCVMInstances(ctx context.Context) ([]*model.Instance, error) {
	cvmClient, err := c.GetCVMClient()
	if err != nil {
		return nil, err
	}

	logx.Debug("Querying Tencent CVM instances, region %s", c.Region)

	instances := make([]*model.Instance, 0)
	for offset := int64(0); ; offset += queryLimit {
		request := cvm.NewDescribeInstancesRequest()
		limit := queryLimit
		off := offset
		request.Limit = &limit
		request.Offset = &off

		response, err := cvmClient.DescribeInstances(request)
		if err != nil {
			return nil, fmt.Errorf("failed to describe instances: %w", err)
		}

		page := response.Response.InstanceSet
		if len(page) == 0 {
			break
		}

		for _, inst := range page {
			instances = append(instances, convertCVMToInstance(inst))
		}

		if int64(len(page)) < queryLimit {
			break
		}
	}

	logx.Info("Successfully queried Tencent CVM instances, count %d, region %s",
		len(instances), c.Region)

	return instances, nil
}

// ListCVMRegions 查询当前账号可见的区域标识列表
func (c *Client) ListCVMRegions(ctx context.Context) ([]string, error) {
	cvmClient, err := c.GetCVMClient()
	if err != nil {
		return nil, err
	}

	response, err := cvmClient.DescribeRegions(cvm.NewDescribeRegionsRequest())
	if err != nil {
		return nil, fmt.Errorf("failed to describe regions: %w", err)
	}

	regions := make([]string, 0, len(response.Response.RegionSet))
	for _, r := range response.Response.RegionSet {
		if r != nil && r.Region != nil {
			regions = append(regions, *r.Region)
		}
	}

	logx.Debug("Successfully queried Tencent regions, count %d", len(regions))

	return regions, nil
}

// convertCVMToInstance 将腾讯云 CVM 实例转换为统一的实例模型
func convertCVMToInstance(inst *cvm.Instance) *model.Instance {
	instance := &model.Instance{
		PublicIP:   "N/A",
		PrivateIPs: make([]string, 0, len(inst.PrivateIpAddresses)),
	}

	if inst.InstanceId != nil {
		instance.ID = *inst.InstanceId
	}
	if inst.InstanceType != nil {
		instance.Type = *inst.InstanceType
	}
	if inst.InstanceState != nil {
		instance.State = *inst.InstanceState
	}
	if inst.Placement != nil && inst.Placement.Zone != nil {
		instance.AvailabilityZone = *inst.Placement.Zone
	}

	// 名称优先取第一个标签的值, 没有标签时退回实例名
	if len(inst.Tags) > 0 && inst.Tags[0] != nil && inst.Tags[0].Value != nil {
		instance.Name = *inst.Tags[0].Value
	} else if inst.InstanceName != nil {
		instance.Name = *inst.InstanceName
	}

	if len(inst.PublicIpAddresses) > 0 && inst.PublicIpAddresses[0] != nil {
		instance.PublicIP = *inst.PublicIpAddresses[0]
	}

	for _, ip := range inst.PrivateIpAddresses {
		if ip != nil {
			instance.PrivateIPs = append(instance.PrivateIPs, *ip)
		}
	}

	return instance
}
