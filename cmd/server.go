package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cnb.cool/zhiqiangwang/pkg/logx"
	"github.com/spf13/cobra"

	"github.com/opsre/cloudinv/internal/cache"
	"github.com/opsre/cloudinv/internal/config"
	"github.com/opsre/cloudinv/internal/imcp"
	"github.com/opsre/cloudinv/internal/inventory"
	"github.com/opsre/cloudinv/internal/provider"
	"github.com/opsre/cloudinv/internal/server"
	"github.com/opsre/cloudinv/internal/service"
)

// serverCmd 服务命令
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "启动实例查询服务",
	Long:  `启动 HTTP 查询服务, 按配置可同时启动 MCP (SSE) 服务。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}

// runServer 装配并启动所有服务, 阻塞直到收到退出信号
func runServer() error {
	services, err := buildServices(cfg)
	if err != nil {
		return err
	}
	if len(services) == 0 {
		return fmt.Errorf("no provider enabled, check the providers section of the config")
	}

	// 查询日志落地到 sqlite
	logService := service.NewQueryLogService()

	httpServer, err := server.NewHTTPGinServer(cfg, services, logService)
	if err != nil {
		return err
	}

	go func() {
		if err := httpServer.Start(); err != nil && err != http.ErrServerClosed {
			logx.Error("HTTP server error: %v", err)
		}
	}()

	var mcpServer *imcp.MCPServer
	if cfg.Server.MCP.Enabled {
		mcpServer, err = imcp.NewMCPServer(cfg, services, Version)
		if err != nil {
			return err
		}

		go func() {
			if err := mcpServer.Start(); err != nil && err != http.ErrServerClosed {
				logx.Error("MCP server error: %v", err)
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logx.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if mcpServer != nil {
		if err := mcpServer.Stop(ctx); err != nil {
			logx.Warn("Failed to stop MCP server: %v", err)
		}
	}

	if err := httpServer.Stop(ctx); err != nil {
		logx.Warn("Failed to stop HTTP server: %v", err)
	}

	return nil
}

// buildServices 为每个启用的提供商构建查询服务
func buildServices(cfg *config.Config) (map[string]*inventory.Service, error) {
	services := make(map[string]*inventory.Service)

	enable := func(name string, providerConfig map[string]any) error {
		p, err := provider.GetProvider(name)
		if err != nil {
			return err
		}

		if err := p.Initialize(providerConfig); err != nil {
			return fmt.Errorf("failed to initialize provider %s: %w", name, err)
		}

		store, err := buildStore(cfg, name)
		if err != nil {
			return err
		}

		regionTTL := time.Duration(cfg.Cache.RegionTTL) * time.Second
		services[name] = inventory.NewService(p, store, regionTTL)

		logx.Info("✅ Provider enabled: %s", name)
		return nil
	}

	if cfg.Providers.AWS.Enabled {
		err := enable("aws", map[string]any{
			"access_key_id":     cfg.Providers.AWS.AK,
			"secret_access_key": cfg.Providers.AWS.SK,
			"metadata_region":   cfg.Providers.AWS.MetadataRegion,
		})
		if err != nil {
			return nil, err
		}
	}

	if cfg.Providers.Aliyun.Enabled {
		err := enable("aliyun", map[string]any{
			"access_key_id":     cfg.Providers.Aliyun.AK,
			"access_key_secret": cfg.Providers.Aliyun.SK,
			"metadata_region":   cfg.Providers.Aliyun.MetadataRegion,
		})
		if err != nil {
			return nil, err
		}
	}

	if cfg.Providers.Tencent.Enabled {
		err := enable("tencent", map[string]any{
			"secret_id":       cfg.Providers.Tencent.AK,
			"secret_key":      cfg.Providers.Tencent.SK,
			"metadata_region": cfg.Providers.Tencent.MetadataRegion,
		})
		if err != nil {
			return nil, err
		}
	}

	return services, nil
}

// buildStore 按配置选择实例快照缓存后端
func buildStore(cfg *config.Config, providerName string) (cache.Store, error) {
	ttl := time.Duration(cfg.Cache.TTL) * time.Second

	switch cfg.Cache.Type {
	case "redis":
		// 每个提供商独立的键前缀, 避免同一区域名在不同云之间串缓存
		prefix := fmt.Sprintf("cloudinv:instances:%s", providerName)
		return cache.NewRedisStore(cfg.Cache.Redis.Addr, cfg.Cache.Redis.Password, cfg.Cache.Redis.DB, ttl, prefix)
	case "memory", "":
		return cache.NewMemoryStore(ttl, cfg.Cache.MaxEntries), nil
	default:
		return nil, fmt.Errorf("unknown cache type: %s", cfg.Cache.Type)
	}
}
