package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opsre/cloudinv/internal/provider"
)

var (
	aliyunRegion     string
	aliyunSortBy     string
	aliyunPage       int
	aliyunPageSize   int
	aliyunOutputType string
)

// aliyunCmd 阿里云查询命令组
var aliyunCmd = &cobra.Command{
	Use:   "aliyun",
	Short: "查询阿里云资源",
	Long:  `查询阿里云的 ECS 实例与可用区域。`,
}

// aliyunInstancesCmd 列出 ECS 实例
var aliyunInstancesCmd = &cobra.Command{
	Use:   "instances",
	Short: "列出 ECS 实例",
	Long:  `列出指定区域的阿里云 ECS 实例, 支持排序与分页。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		p, err := initAliyunProvider()
		if err != nil {
			return err
		}

		return runInstanceQuery(ctx, p, aliyunRegion, aliyunSortBy, aliyunPage, aliyunPageSize, aliyunOutputType)
	},
}

// aliyunRegionsCmd 列出可用区域
var aliyunRegionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "列出可用区域",
	Long:  `列出阿里云当前可用的区域。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		p, err := initAliyunProvider()
		if err != nil {
			return err
		}

		return runRegionQuery(ctx, p, aliyunOutputType)
	},
}

// initAliyunProvider 获取并初始化阿里云 Provider
func initAliyunProvider() (provider.Provider, error) {
	p, err := provider.GetProvider("aliyun")
	if err != nil {
		return nil, fmt.Errorf("failed to get aliyun provider: %w", err)
	}

	providerConfig := map[string]any{
		"access_key_id":     cfg.Providers.Aliyun.AK,
		"access_key_secret": cfg.Providers.Aliyun.SK,
		"metadata_region":   cfg.Providers.Aliyun.MetadataRegion,
	}

	if err := p.Initialize(providerConfig); err != nil {
		return nil, fmt.Errorf("failed to initialize aliyun provider: %w", err)
	}

	return p, nil
}

func init() {
	queryCmd.AddCommand(aliyunCmd)

	aliyunCmd.AddCommand(aliyunInstancesCmd)
	aliyunCmd.AddCommand(aliyunRegionsCmd)

	aliyunCmd.PersistentFlags().StringVarP(&aliyunRegion, "region", "r", "", "指定区域 (instances 子命令必填)")
	aliyunCmd.PersistentFlags().StringVar(&aliyunSortBy, "sort-by", "", "排序字段 (Name, ID, Type, State, AvailabilityZone, PublicIP, PrivateIPs)")
	aliyunCmd.PersistentFlags().IntVar(&aliyunPage, "page", 1, "页码")
	aliyunCmd.PersistentFlags().IntVar(&aliyunPageSize, "page-size", 0, "分页大小 (0 表示不分页)")
	aliyunCmd.PersistentFlags().StringVarP(&aliyunOutputType, "output", "o", "table", "输出格式 (table, json)")
}
