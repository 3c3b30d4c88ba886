package cmd

import (
	"fmt"
	"os"

	"cnb.cool/zhiqiangwang/pkg/logx"
	"github.com/spf13/cobra"

	"github.com/opsre/cloudinv/internal/config"
	"github.com/opsre/cloudinv/internal/provider"
	"github.com/opsre/cloudinv/internal/provider/aliyun"
	"github.com/opsre/cloudinv/internal/provider/aws"
	"github.com/opsre/cloudinv/internal/provider/tencent"
	"github.com/opsre/cloudinv/internal/server"
)

var (
	cfgFile string
	cfg     *config.Config
)

// rootCmd 根命令
var rootCmd = &cobra.Command{
	Use:   "cloudinv",
	Short: "跨云实例清单查询服务",
	Long:  `cloudinv 提供跨云平台的虚拟机实例清单查询能力, 支持 AWS、阿里云、腾讯云, 可通过 HTTP 接口、MCP 工具或命令行查询。`,
}

// Execute 执行根命令
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "配置文件路径 (默认搜索 ./config.yaml 与 ./configs/config.yaml)")
}

// initConfig 加载配置, 注册内置提供商
func initConfig() {
	var err error
	cfg, err = config.LoadConfig(cfgFile)
	if err != nil {
		logx.Error("Failed to load config: %v", err)
		os.Exit(1)
	}

	registerProviders()

	server.InitVersionHandler(Version, GitCommit, BuildTime)
}

// registerProviders 注册所有内置提供商, 凭证初始化推迟到使用时
func registerProviders() {
	provider.Register("aws", aws.NewProvider())
	provider.Register("aliyun", aliyun.NewProvider())
	provider.Register("tencent", tencent.NewProvider())
}
