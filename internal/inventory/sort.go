package inventory

import (
	"slices"
	"strings"

	"github.com/opsre/cloudinv/internal/model"
)

// sortAttributes 支持排序的实例字段, 顺序即错误提示中的展示顺序
var sortAttributes = []string{
	"Name", "ID", "Type", "State", "AvailabilityZone", "PublicIP", "PrivateIPs",
}

// sortComparators 字段名到比较函数的映射, 按名取函数, 不走反射
var sortComparators = map[string]func(a, b *model.Instance) int{
	"Name":             func(a, b *model.Instance) int { return strings.Compare(a.Name, b.Name) },
	"ID":               func(a, b *model.Instance) int { return strings.Compare(a.ID, b.ID) },
	"Type":             func(a, b *model.Instance) int { return strings.Compare(a.Type, b.Type) },
	"State":            func(a, b *model.Instance) int { return strings.Compare(a.State, b.State) },
	"AvailabilityZone": func(a, b *model.Instance) int { return strings.Compare(a.AvailabilityZone, b.AvailabilityZone) },
	"PublicIP":         func(a, b *model.Instance) int { return strings.Compare(a.PublicIP, b.PublicIP) },
	"PrivateIPs":       func(a, b *model.Instance) int { return slices.Compare(a.PrivateIPs, b.PrivateIPs) },
}

// SortInstances 按指定字段原地稳定升序排序, 字段为空时保持原顺序
func SortInstances(instances []*model.Instance, sortBy string) {
	if sortBy == "" {
		return
	}

	cmp, ok := sortComparators[sortBy]
	if !ok {
		return
	}

	slices.SortStableFunc(instances, cmp)
}
