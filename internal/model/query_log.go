package model

import "time"

// QueryLog 实例查询日志
type QueryLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RequestID string    `gorm:"size:50;index" json:"request_id"`
	Timestamp time.Time `gorm:"index" json:"timestamp"`
	Provider  string    `gorm:"size:50;index" json:"provider"`
	Region    string    `gorm:"size:50;index" json:"region"`
	SortBy    string    `gorm:"size:50" json:"sort_by"`
	Page      int       `json:"page"`
	PageSize  int       `json:"page_size"`
	Status    int       `gorm:"index" json:"status"` // HTTP 状态码
	Count     int       `json:"count"`               // 返回实例数
	Latency   int64     `json:"latency"`             // 延迟(毫秒)
	Error     string    `gorm:"type:text" json:"error"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName 指定表名
func (QueryLog) TableName() string {
	return "query_logs"
}
