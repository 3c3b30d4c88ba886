package model

// PageInfo 分页信息
type PageInfo struct {
	PageNum   int `json:"page_num"`
	PageSize  int `json:"page_size"`
	Total     int `json:"total"`
	TotalPage int `json:"total_page"`
}

// NewPageInfo 根据总数计算分页信息
func NewPageInfo(pageNum, pageSize, total int) *PageInfo {
	totalPage := 0
	if pageSize > 0 {
		totalPage = (total + pageSize - 1) / pageSize
	}
	return &PageInfo{
		PageNum:   pageNum,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	}
}
