package server

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"time"

	"cnb.cool/zhiqiangwang/pkg/logx"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/opsre/cloudinv/internal/config"
	"github.com/opsre/cloudinv/internal/inventory"
	"github.com/opsre/cloudinv/internal/service"
)

// HTTPGinServer 基于 Gin 的 HTTP 服务器
type HTTPGinServer struct {
	config *config.Config
	engine *gin.Engine
	server *http.Server

	services       map[string]*inventory.Service // 提供商名 -> 查询服务
	defaultService *inventory.Service
	logService     *service.QueryLogService
}

// NewHTTPGinServer 创建基于 Gin 的 HTTP 服务器
func NewHTTPGinServer(cfg *config.Config, services map[string]*inventory.Service, logService *service.QueryLogService) (*HTTPGinServer, error) {
	// 设置 Gin 模式
	if cfg.Server.HTTP.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	defaultService, ok := services[cfg.Providers.Default]
	if !ok {
		return nil, fmt.Errorf("default provider %s is not enabled", cfg.Providers.Default)
	}

	s := &HTTPGinServer{
		config:         cfg,
		engine:         gin.New(),
		services:       services,
		defaultService: defaultService,
		logService:     logService,
	}

	// 注册中间件
	s.registerMiddlewares()

	// 注册路由
	s.registerRoutes()

	return s, nil
}

// registerMiddlewares 注册中间件
func (s *HTTPGinServer) registerMiddlewares() {
	// 恢复中间件 - 从 panic 恢复
	s.engine.Use(gin.Recovery())

	// 请求 ID 中间件
	s.engine.Use(s.requestIDMiddleware())

	// 自定义日志中间件
	s.engine.Use(s.loggingMiddleware())

	// CORS 中间件(如果需要)
	s.engine.Use(s.corsMiddleware())
}

// requestIDMiddleware 请求 ID 中间件, 沿用来访请求头里的 ID, 没有则生成
func (s *HTTPGinServer) requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		c.Next()
	}
}

// loggingMiddleware 自定义日志中间件
func (s *HTTPGinServer) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		logx.Info("HTTP request, method %s, path %s, remote_addr %s", method, path, c.ClientIP())

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()

		logx.Info("HTTP response, method %s, path %s, status %d, duration %s",
			method, path, status, duration)
	}
}

// corsMiddleware CORS 中间件
func (s *HTTPGinServer) corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// registerRoutes 注册路由
func (s *HTTPGinServer) registerRoutes() {
	// 顶层实例查询接口, 响应为裸 JSON 数组
	s.engine.GET("/get_ec2_instances", s.handleGetEC2Instances)

	// API v1 路由组
	v1 := s.engine.Group("/api/v1")
	{
		// 健康检查与版本
		v1.GET("/health", s.handleHealth)
		v1.GET("/version", GetVersionInfo)

		// 实例查询
		v1.GET("/providers", s.handleProviderList)
		v1.GET("/regions", s.handleRegionList)
		v1.GET("/instances", s.handleInstanceList)

		// 查询日志
		logs := v1.Group("/logs")
		{
			logs.GET("", s.handleQueryLogList)
			logs.GET("/stats", s.handleQueryLogStats)
		}
	}
}

// Start 启动 HTTP 服务器
func (s *HTTPGinServer) Start() error {
	addr := fmt.Sprintf("0.0.0.0:%d", s.config.Server.HTTP.Port)

	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	logx.Info("🛜 Starting HTTP Server (Gin), Addr %s", addr)
	return s.server.ListenAndServe()
}

// Stop 停止 HTTP 服务器
func (s *HTTPGinServer) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// Response 统一响应结构
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// success 返回成功响应
func (s *HTTPGinServer) success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{
		Code:    200,
		Message: "Success",
		Data:    data,
	})
}

// error 返回错误响应
func (s *HTTPGinServer) error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

// serviceFor 按提供商名取查询服务, 名称为空时用默认提供商
func (s *HTTPGinServer) serviceFor(name string) (*inventory.Service, error) {
	if name == "" {
		return s.defaultService, nil
	}

	svc, ok := s.services[name]
	if !ok {
		return nil, fmt.Errorf("provider %s is not enabled", name)
	}

	return svc, nil
}

// ==================== 健康检查 ====================

func (s *HTTPGinServer) handleHealth(c *gin.Context) {
	data := gin.H{"status": "healthy"}

	// deep=true 时逐个探活提供商
	if c.Query("deep") == "true" {
		providers := gin.H{}
		status := "healthy"

		for name, svc := range s.services {
			if err := svc.HealthCheck(c.Request.Context()); err != nil {
				providers[name] = err.Error()
				status = "degraded"
			} else {
				providers[name] = "ok"
			}
		}

		data["status"] = status
		data["providers"] = providers
	}

	s.success(c, data)
}

// ==================== 提供商 API ====================

func (s *HTTPGinServer) handleProviderList(c *gin.Context) {
	names := make([]string, 0, len(s.services))
	for name := range s.services {
		names = append(names, name)
	}
	sort.Strings(names)

	s.success(c, gin.H{
		"providers": names,
		"default":   s.config.Providers.Default,
	})
}

// ==================== 区域 API ====================

func (s *HTTPGinServer) handleRegionList(c *gin.Context) {
	svc, err := s.serviceFor(c.Query("provider"))
	if err != nil {
		s.error(c, http.StatusBadRequest, err.Error())
		return
	}

	regions, err := svc.Regions(c.Request.Context())
	if err != nil {
		s.error(c, http.StatusInternalServerError, fmt.Sprintf("Failed to list regions: %v", err))
		return
	}

	s.success(c, gin.H{
		"provider": svc.ProviderName(),
		"total":    len(regions),
		"regions":  regions,
	})
}
