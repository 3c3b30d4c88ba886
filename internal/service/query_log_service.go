package service

import (
	"time"

	"github.com/opsre/cloudinv/internal/database"
	"github.com/opsre/cloudinv/internal/model"
	"gorm.io/gorm"
)

// QueryLogService 实例查询日志服务
type QueryLogService struct {
	db *gorm.DB
}

// NewQueryLogService 创建查询日志服务
func NewQueryLogService() *QueryLogService {
	return &QueryLogService{
		db: database.GetDB(),
	}
}

// QueryLogParams 查询日志参数
type QueryLogParams struct {
	RequestID string
	Provider  string
	Region    string
	SortBy    string
	Page      int
	PageSize  int
	Status    int // HTTP 状态码
	Count     int // 返回实例数
	Latency   int64
	Error     string
}

// CreateQueryLog 记录一次实例查询
func (s *QueryLogService) CreateQueryLog(params *QueryLogParams) (*model.QueryLog, error) {
	log := &model.QueryLog{
		RequestID: params.RequestID,
		Timestamp: time.Now(),
		Provider:  params.Provider,
		Region:    params.Region,
		SortBy:    params.SortBy,
		Page:      params.Page,
		PageSize:  params.PageSize,
		Status:    params.Status,
		Count:     params.Count,
		Latency:   params.Latency,
		Error:     params.Error,
	}

	if err := s.db.Create(log).Error; err != nil {
		return nil, err
	}

	return log, nil
}

// ListQueryLogs 查询日志列表, status 为 0 时不过滤状态码
func (s *QueryLogService) ListQueryLogs(provider, region string, status, limit, offset int) ([]model.QueryLog, int64, error) {
	var logs []model.QueryLog
	var total int64

	query := s.db.Model(&model.QueryLog{})

	// 过滤条件
	if provider != "" {
		query = query.Where("provider = ?", provider)
	}
	if region != "" {
		query = query.Where("region = ?", region)
	}
	if status > 0 {
		query = query.Where("status = ?", status)
	}

	// 获取总数
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 分页查询
	if err := query.Order("timestamp DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}

// GetQueryLogStats 获取统计信息
func (s *QueryLogService) GetQueryLogStats() (map[string]interface{}, error) {
	stats := make(map[string]interface{})

	// 总查询次数
	var total int64
	if err := s.db.Model(&model.QueryLog{}).Count(&total).Error; err != nil {
		return nil, err
	}
	stats["total"] = total

	// 成功次数
	var successCount int64
	if err := s.db.Model(&model.QueryLog{}).Where("status < ?", 400).Count(&successCount).Error; err != nil {
		return nil, err
	}
	stats["success_count"] = successCount

	// 失败次数
	var errorCount int64
	if err := s.db.Model(&model.QueryLog{}).Where("status >= ?", 400).Count(&errorCount).Error; err != nil {
		return nil, err
	}
	stats["error_count"] = errorCount

	// 平均延迟
	var avgLatency float64
	if err := s.db.Model(&model.QueryLog{}).Select("COALESCE(AVG(latency), 0)").Scan(&avgLatency).Error; err != nil {
		return nil, err
	}
	stats["avg_latency"] = avgLatency

	return stats, nil
}
