package aliyun

import (
	"context"
	"fmt"

	"cnb.cool/zhiqiangwang/pkg/logx"
	ecs "github.com/alibabacloud-go/ecs-20140526/v4/client"
	"github.com/alibabacloud-go/tea/tea"
	"github.com/opsre/cloudinv/internal/model"
)

// queryPageSize DescribeInstances 单次翻页条数, 取接口上限
const queryPageSize = 100

// ListECSInstances 查询区域内全部 ECS 实例, 内部翻页取全量
func (c *Client) ListECSInstances(ctx context.Context) ([]*model.Instance, error) {
	ecsClient, err := c.GetECSClient()
	if err != nil {
		return nil, err
	}

	logx.Debug("Querying Aliyun ECS instances, region %s", c.Region)

	instances := make([]*model.Instance, 0)
	for pageNum := 1; ; pageNum++ {
		request := &ecs.DescribeInstancesRequest{
			RegionId:   tea.String(c.Region),
			PageSize:   tea.Int32(queryPageSize),
			PageNumber: tea.Int32(int32(pageNum)),
		}

		response, err := ecsClient.DescribeInstances(request)
		if err != nil {
			return nil, fmt.Errorf("failed to describe instances: %w", err)
		}

		if response.Body == nil || response.Body.Instances == nil {
			break
		}

		page := response.Body.Instances.Instance
		if len(page) == 0 {
			break
		}

		for _, inst := range page {
			instances = append(instances, convertECSToInstance(inst))
		}

		total := int(tea.Int32Value(response.Body.TotalCount))
		if len(instances) >= total {
			break
		}
	}

	logx.Info("Successfully queried Aliyun ECS instances, count %d, region %s",
		len(instances), c.Region)

	return instances, nil
}

// ListECSRegions 查询当前账号可见的区域标识列表
func (c *Client) ListECSRegions(ctx context.Context) ([]string, error) {
	ecsClient, err := c.GetECSClient()
	if err != nil {
		return nil, err
	}

	response, err := ecsClient.DescribeRegions(&ecs.DescribeRegionsRequest{})
	if err != nil {
		return nil, fmt.Errorf("failed to describe regions: %w", err)
	}

	if response.Body == nil || response.Body.Regions == nil {
		return []string{}, nil
	}

	regions := make([]string, 0, len(response.Body.Regions.Region))
	for _, r := range response.Body.Regions.Region {
		if r != nil {
			regions = append(regions, tea.StringValue(r.RegionId))
		}
	}

	logx.Debug("Successfully queried Aliyun regions, count %d", len(regions))

	return regions, nil
}

// convertECSToInstance 将阿里云 ECS 实例转换为统一的实例模型
func convertECSToInstance(inst *ecs.DescribeInstancesResponseBodyInstancesInstance) *model.Instance {
	instance := &model.Instance{
		ID:               tea.StringValue(inst.InstanceId),
		Type:             tea.StringValue(inst.InstanceType),
		State:            tea.StringValue(inst.Status),
		AvailabilityZone: tea.StringValue(inst.ZoneId),
		PublicIP:         "N/A",
		PrivateIPs:       make([]string, 0),
	}

	// 名称优先取第一个标签的值, 没有标签时退回实例名
	if inst.Tags != nil && len(inst.Tags.Tag) > 0 && inst.Tags.Tag[0] != nil {
		instance.Name = tea.StringValue(inst.Tags.Tag[0].TagValue)
	} else {
		instance.Name = tea.StringValue(inst.InstanceName)
	}

	// 公网 IP 优先取固定公网地址, 其次 EIP
	if inst.PublicIpAddress != nil && len(inst.PublicIpAddress.IpAddress) > 0 {
		instance.PublicIP = tea.StringValue(inst.PublicIpAddress.IpAddress[0])
	} else if inst.EipAddress != nil && tea.StringValue(inst.EipAddress.IpAddress) != "" {
		instance.PublicIP = tea.StringValue(inst.EipAddress.IpAddress)
	}

	// 私网 IP 取 VPC 属性下的地址列表
	if inst.VpcAttributes != nil && inst.VpcAttributes.PrivateIpAddress != nil {
		for _, ip := range inst.VpcAttributes.PrivateIpAddress.IpAddress {
			if ip != nil {
				instance.PrivateIPs = append(instance.PrivateIPs, tea.StringValue(ip))
			}
		}
	}

	return instance
}
