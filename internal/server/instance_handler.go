package server

import (
	"net/http"
	"strconv"
	"time"

	"cnb.cool/zhiqiangwang/pkg/logx"
	"github.com/gin-gonic/gin"
	"github.com/opsre/cloudinv/internal/inventory"
	"github.com/opsre/cloudinv/internal/model"
	"github.com/opsre/cloudinv/internal/service"
)

// 分页参数缺省值
const (
	defaultPage     = 1
	defaultPageSize = 5
)

// ==================== 实例查询 API ====================

// handleGetEC2Instances 顶层实例查询接口
//
// 走默认提供商, 成功响应是实例对象的裸 JSON 数组,
// 失败响应是 {"error": "<文案>"}
func (s *HTTPGinServer) handleGetEC2Instances(c *gin.Context) {
	s.listInstances(c, s.defaultService, true)
}

// handleInstanceList /api/v1 实例查询, 响应带统一包裹和分页信息
func (s *HTTPGinServer) handleInstanceList(c *gin.Context) {
	svc, err := s.serviceFor(c.Query("provider"))
	if err != nil {
		s.error(c, http.StatusBadRequest, err.Error())
		return
	}

	s.listInstances(c, svc, false)
}

// listInstances 实例查询管线: 解析参数, 逐项校验, 查询, 分页, 记日志
//
// 校验顺序固定为区域, 排序字段, 页大小, 页码, 第一个失败即返回 400;
// 上游云接口故障一律 500, 不会伪装成参数错误
func (s *HTTPGinServer) listInstances(c *gin.Context, svc *inventory.Service, bare bool) {
	start := time.Now()

	region := c.Query("region")
	sortBy := c.Query("sort_by")
	page, pageErr := parseIntParam(c, "page", defaultPage)
	pageSize, pageSizeErr := parseIntParam(c, "page_size", defaultPageSize)

	fail := func(status int, err error) {
		if bare {
			c.JSON(status, gin.H{"error": err.Error()})
		} else {
			s.error(c, status, err.Error())
		}
		s.recordQueryLog(c, svc, region, sortBy, page, pageSize, status, 0, start, err)
	}

	if err := svc.ValidateRegion(c.Request.Context(), region); err != nil {
		if inventory.IsClientError(err) {
			fail(http.StatusBadRequest, err)
		} else {
			fail(http.StatusInternalServerError, err)
		}
		return
	}
	if err := inventory.ValidateSortBy(sortBy); err != nil {
		fail(http.StatusBadRequest, err)
		return
	}
	// 页大小解析失败与非正数同样按非法页大小处理
	if pageSizeErr != nil {
		fail(http.StatusBadRequest, inventory.ErrInvalidPageSize)
		return
	}
	if err := inventory.ValidatePageSize(pageSize); err != nil {
		fail(http.StatusBadRequest, err)
		return
	}
	if pageErr != nil {
		fail(http.StatusBadRequest, inventory.ErrInvalidPage)
		return
	}

	items, err := svc.Instances(c.Request.Context(), region, sortBy)
	if err != nil {
		fail(http.StatusInternalServerError, err)
		return
	}

	pageItems := inventory.Paginate(items, page, pageSize)

	if bare {
		c.IndentedJSON(http.StatusOK, pageItems)
	} else {
		s.success(c, &model.InstanceList{
			Items:    pageItems,
			PageInfo: model.NewPageInfo(page, pageSize, len(items)),
		})
	}

	s.recordQueryLog(c, svc, region, sortBy, page, pageSize, http.StatusOK, len(pageItems), start, nil)
}

// parseIntParam 解析整型查询参数, 参数缺省时取默认值
func parseIntParam(c *gin.Context, name string, defaultValue int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue, err
	}

	return value, nil
}

// recordQueryLog 记录一次实例查询, 写入失败只告警不影响响应
func (s *HTTPGinServer) recordQueryLog(c *gin.Context, svc *inventory.Service, region, sortBy string, page, pageSize, status, count int, start time.Time, queryErr error) {
	if s.logService == nil {
		return
	}

	errMsg := ""
	if queryErr != nil {
		errMsg = queryErr.Error()
	}

	if _, err := s.logService.CreateQueryLog(&service.QueryLogParams{
		RequestID: c.GetString("request_id"),
		Provider:  svc.ProviderName(),
		Region:    region,
		SortBy:    sortBy,
		Page:      page,
		PageSize:  pageSize,
		Status:    status,
		Count:     count,
		Latency:   time.Since(start).Milliseconds(),
		Error:     errMsg,
	}); err != nil {
		logx.Warn("Failed to record query log, error %v", err)
	}
}
