package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opsre/cloudinv/internal/provider"
)

var (
	awsRegion     string
	awsSortBy     string
	awsPage       int
	awsPageSize   int
	awsOutputType string
)

// awsCmd AWS 查询命令组
var awsCmd = &cobra.Command{
	Use:   "aws",
	Short: "查询 AWS 资源",
	Long:  `查询 AWS 的 EC2 实例与可用区域。`,
}

// awsInstancesCmd 列出 EC2 实例
var awsInstancesCmd = &cobra.Command{
	Use:   "instances",
	Short: "列出 EC2 实例",
	Long:  `列出指定区域的 AWS EC2 实例, 支持排序与分页。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		p, err := initAWSProvider()
		if err != nil {
			return err
		}

		return runInstanceQuery(ctx, p, awsRegion, awsSortBy, awsPage, awsPageSize, awsOutputType)
	},
}

// awsRegionsCmd 列出可用区域
var awsRegionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "列出可用区域",
	Long:  `列出 AWS 当前可用的区域。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		p, err := initAWSProvider()
		if err != nil {
			return err
		}

		return runRegionQuery(ctx, p, awsOutputType)
	},
}

// initAWSProvider 获取并初始化 AWS Provider
// 未配置密钥时走 SDK 默认凭证链 (环境变量、共享凭证文件、实例角色)
func initAWSProvider() (provider.Provider, error) {
	p, err := provider.GetProvider("aws")
	if err != nil {
		return nil, fmt.Errorf("failed to get aws provider: %w", err)
	}

	providerConfig := map[string]any{
		"access_key_id":     cfg.Providers.AWS.AK,
		"secret_access_key": cfg.Providers.AWS.SK,
		"metadata_region":   cfg.Providers.AWS.MetadataRegion,
	}

	if err := p.Initialize(providerConfig); err != nil {
		return nil, fmt.Errorf("failed to initialize aws provider: %w", err)
	}

	return p, nil
}

func init() {
	queryCmd.AddCommand(awsCmd)

	awsCmd.AddCommand(awsInstancesCmd)
	awsCmd.AddCommand(awsRegionsCmd)

	awsCmd.PersistentFlags().StringVarP(&awsRegion, "region", "r", "", "指定区域 (instances 子命令必填)")
	awsCmd.PersistentFlags().StringVar(&awsSortBy, "sort-by", "", "排序字段 (Name, ID, Type, State, AvailabilityZone, PublicIP, PrivateIPs)")
	awsCmd.PersistentFlags().IntVar(&awsPage, "page", 1, "页码")
	awsCmd.PersistentFlags().IntVar(&awsPageSize, "page-size", 0, "分页大小 (0 表示不分页)")
	awsCmd.PersistentFlags().StringVarP(&awsOutputType, "output", "o", "table", "输出格式 (table, json)")
}
