package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"cnb.cool/zhiqiangwang/pkg/logx"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/opsre/cloudinv/internal/inventory"
	"github.com/opsre/cloudinv/internal/model"
	"github.com/opsre/cloudinv/internal/provider"
)

// queryCmd 查询命令组
var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "查询云实例资源",
	Long:  `查询各云服务商的虚拟机实例列表与可用区域。`,
}

func init() {
	rootCmd.AddCommand(queryCmd)
}

// runInstanceQuery 查询并输出实例列表
func runInstanceQuery(ctx context.Context, p provider.Provider, region, sortBy string, page, pageSize int, outputType string) error {
	if region == "" {
		return fmt.Errorf("region is required, use --region to specify one")
	}

	if err := inventory.ValidateSortBy(sortBy); err != nil {
		return err
	}

	instances, err := p.ListInstances(ctx, region)
	if err != nil {
		return fmt.Errorf("failed to list instances: %w", err)
	}

	inventory.SortInstances(instances, sortBy)

	// page-size 为 0 时输出全部
	if pageSize > 0 {
		instances = inventory.Paginate(instances, page, pageSize)
	}

	return outputInstances(instances, region, outputType)
}

// runRegionQuery 查询并输出区域列表
func runRegionQuery(ctx context.Context, p provider.Provider, outputType string) error {
	regions, err := p.ListRegions(ctx)
	if err != nil {
		return fmt.Errorf("failed to list regions: %w", err)
	}

	if outputType == "json" {
		data, _ := json.MarshalIndent(regions, "", "  ")
		fmt.Println(string(data))
		return nil
	}

	rows := [][]string{}
	for _, r := range regions {
		rows = append(rows, []string{r})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("99"))).
		Headers("Region").
		Rows(rows...)

	fmt.Println(t)
	fmt.Println()
	logx.Info("Query completed, count %d", len(regions))

	return nil
}

// outputInstances 以表格或 JSON 输出实例列表
func outputInstances(instances []*model.Instance, region, outputType string) error {
	if outputType == "json" {
		data, _ := json.MarshalIndent(instances, "", "  ")
		fmt.Println(string(data))
		return nil
	}

	rows := [][]string{}
	for _, inst := range instances {
		rows = append(rows, []string{
			inst.ID, inst.Name, inst.Type, inst.State,
			inst.AvailabilityZone, inst.PublicIP, strings.Join(inst.PrivateIPs, ", "),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("99"))).
		Headers("ID", "Name", "Type", "State", "Availability Zone", "Public IP", "Private IPs").
		Rows(rows...)

	fmt.Println(t)
	fmt.Println()
	logx.Info("Query completed, count %d, region %s", len(instances), region)

	return nil
}
