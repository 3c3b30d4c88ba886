package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ==================== 查询日志 API ====================

// handleQueryLogList 获取实例查询日志
func (s *HTTPGinServer) handleQueryLogList(c *gin.Context) {
	if s.logService == nil {
		s.error(c, http.StatusServiceUnavailable, "query log storage is not available")
		return
	}

	// 分页参数
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	provider := c.Query("provider")
	region := c.Query("region")
	status, _ := strconv.Atoi(c.Query("status"))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	offset := (page - 1) * pageSize
	logs, total, err := s.logService.ListQueryLogs(provider, region, status, pageSize, offset)
	if err != nil {
		s.error(c, http.StatusInternalServerError, fmt.Sprintf("Failed to list query logs: %v", err))
		return
	}

	s.success(c, gin.H{
		"total":     total,
		"page":      page,
		"page_size": pageSize,
		"items":     logs,
	})
}

// handleQueryLogStats 获取查询统计信息
func (s *HTTPGinServer) handleQueryLogStats(c *gin.Context) {
	if s.logService == nil {
		s.error(c, http.StatusServiceUnavailable, "query log storage is not available")
		return
	}

	stats, err := s.logService.GetQueryLogStats()
	if err != nil {
		s.error(c, http.StatusInternalServerError, fmt.Sprintf("Failed to get query log stats: %v", err))
		return
	}

	s.success(c, stats)
}
