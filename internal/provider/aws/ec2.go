package aws

import (
	"context"
	"fmt"

	"cnb.cool/zhiqiangwang/pkg/logx"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/opsre/cloudinv/internal/model"
)

// ListEC2Instances 查询区域内全部 EC2 实例 (DescribeInstances 翻页取全量)
func (c *Client) ListEC2Instances(ctx context.Context) ([]*model.Instance, error) {
	ec2Client, err := c.GetEC2Client(ctx)
	if err != nil {
		return nil, err
	}

	logx.Debug("Querying AWS EC2 instances, region %s", c.Region)

	instances := make([]*model.Instance, 0)
	paginator := ec2.NewDescribeInstancesPaginator(ec2Client, &ec2.DescribeInstancesInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to describe instances: %w", err)
		}

		for _, reservation := range page.Reservations {
			for _, inst := range reservation.Instances {
				instances = append(instances, convertEC2ToInstance(inst))
			}
		}
	}

	logx.Info("Successfully queried AWS EC2 instances, count %d, region %s",
		len(instances), c.Region)

	return instances, nil
}

// ListEC2Regions 查询当前账号可见的区域标识列表
func (c *Client) ListEC2Regions(ctx context.Context) ([]string, error) {
	ec2Client, err := c.GetEC2Client(ctx)
	if err != nil {
		return nil, err
	}

	response, err := ec2Client.DescribeRegions(ctx, &ec2.DescribeRegionsInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to describe regions: %w", err)
	}

	regions := make([]string, 0, len(response.Regions))
	for _, r := range response.Regions {
		regions = append(regions, aws.ToString(r.RegionName))
	}

	logx.Debug("Successfully queried AWS regions, count %d", len(regions))

	return regions, nil
}

// convertEC2ToInstance 将 EC2 实例转换为统一的实例模型
func convertEC2ToInstance(inst types.Instance) *model.Instance {
	instance := &model.Instance{
		ID:         aws.ToString(inst.InstanceId),
		Type:       string(inst.InstanceType),
		PublicIP:   "N/A",
		PrivateIPs: make([]string, 0, len(inst.NetworkInterfaces)),
	}

	// 名称取第一个标签的值, 不区分标签键
	if len(inst.Tags) > 0 {
		instance.Name = aws.ToString(inst.Tags[0].Value)
	}

	if inst.State != nil {
		instance.State = string(inst.State.Name)
	}
	if inst.Placement != nil {
		instance.AvailabilityZone = aws.ToString(inst.Placement.AvailabilityZone)
	}
	if inst.PublicIpAddress != nil {
		instance.PublicIP = aws.ToString(inst.PublicIpAddress)
	}

	// 每个网卡取主私网 IP, 顺序与接口返回顺序一致
	for _, eni := range inst.NetworkInterfaces {
		if eni.PrivateIpAddress != nil {
			instance.PrivateIPs = append(instance.PrivateIPs, aws.ToString(eni.PrivateIpAddress))
		}
	}

	return instance
}
