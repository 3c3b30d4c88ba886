package inventory

import "github.com/opsre/cloudinv/internal/model"

// Paginate 取第 page 页 (1 起), 下标越界时裁剪到列表边界
//
// 起始下标落在列表之外返回空页而不是报错; 结束下标越界返回剩余尾部;
// page 不足 1 时同样得到空页
func Paginate(items []*model.Instance, page, pageSize int) []*model.Instance {
	start := (page - 1) * pageSize
	end := start + pageSize

	if start < 0 {
		start = 0
	}
	if end < start {
		end = start
	}
	if start > len(items) {
		start = len(items)
	}
	if end > len(items) {
		end = len(items)
	}

	return items[start:end]
}
