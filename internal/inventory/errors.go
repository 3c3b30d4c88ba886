package inventory

import (
	"errors"
	"fmt"
	"strings"
)

// 校验错误文案是对外接口契约的一部分, 不做改写
var (
	// ErrInvalidRegion 区域名为空或不在云上区域集合中
	ErrInvalidRegion = errors.New("Invalid region name")

	// ErrInvalidSortBy 排序字段不在支持列表中
	ErrInvalidSortBy = fmt.Errorf("Invalid sort by attribute.\nValid attributes to short by are:%s",
		strings.Join(sortAttributes, ", "))

	// ErrInvalidPageSize 页大小不是正整数
	ErrInvalidPageSize = errors.New("Invalid page size.\nPage size must be positive numbers")

	// ErrInvalidPage 页码不是整数
	ErrInvalidPage = errors.New("Invalid page numbers.")
)

// IsClientError 判断是否为参数校验类错误, 对应 HTTP 400
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidRegion) ||
		errors.Is(err, ErrInvalidSortBy) ||
		errors.Is(err, ErrInvalidPageSize) ||
		errors.Is(err, ErrInvalidPage)
}
