package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opsre/cloudinv/internal/provider"
)

var (
	tencentRegion     string
	tencentSortBy     string
	tencentPage       int
	tencentPageSize   int
	tencentOutputType string
)

// tencentCmd 腾讯云查询命令组
var tencentCmd = &cobra.Command{
	Use:   "tencent",
	Short: "查询腾讯云资源",
	Long:  `查询腾讯云的 CVM 实例与可用区域。`,
}

// tencentInstancesCmd 列出 CVM 实例
var tencentInstancesCmd = &cobra.Command{
	Use:   "instances",
	Short: "列出 CVM 实例",
	Long:  `列出指定区域的腾讯云 CVM 实例, 支持排序与分页。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		p, err := initTencentProvider()
		if err != nil {
			return err
		}

		return runInstanceQuery(ctx, p, tencentRegion, tencentSortBy, tencentPage, tencentPageSize, tencentOutputType)
	},
}

// tencentRegionsCmd 列出可用区域
var tencentRegionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "列出可用区域",
	Long:  `列出腾讯云当前可用的区域。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		p, err := initTencentProvider()
		if err != nil {
			return err
		}

		return runRegionQuery(ctx, p, tencentOutputType)
	},
}

// initTencentProvider 获取并初始化腾讯云 Provider
func initTencentProvider() (provider.Provider, error) {
	p, err := provider.GetProvider("tencent")
	if err != nil {
		return nil, fmt.Errorf("failed to get tencent provider: %w", err)
	}

	providerConfig := map[string]any{
		"secret_id":       cfg.Providers.Tencent.AK,
		"secret_key":      cfg.Providers.Tencent.SK,
		"metadata_region": cfg.Providers.Tencent.MetadataRegion,
	}

	if err := p.Initialize(providerConfig); err != nil {
		return nil, fmt.Errorf("failed to initialize tencent provider: %w", err)
	}

	return p, nil
}

func init() {
	queryCmd.AddCommand(tencentCmd)

	tencentCmd.AddCommand(tencentInstancesCmd)
	tencentCmd.AddCommand(tencentRegionsCmd)

	tencentCmd.PersistentFlags().StringVarP(&tencentRegion, "region", "r", "", "指定区域 (instances 子命令必填)")
	tencentCmd.PersistentFlags().StringVar(&tencentSortBy, "sort-by", "", "排序字段 (Name, ID, Type, State, AvailabilityZone, PublicIP, PrivateIPs)")
	tencentCmd.PersistentFlags().IntVar(&tencentPage, "page", 1, "页码")
	tencentCmd.PersistentFlags().IntVar(&tencentPageSize, "page-size", 0, "分页大小 (0 表示不分页)")
	tencentCmd.PersistentFlags().StringVarP(&tencentOutputType, "output", "o", "table", "输出格式 (table, json)")
}
