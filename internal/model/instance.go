package model

// Instance 统一的实例模型 (跨云平台)
// 所有字段始终序列化, 缺失值使用哨兵值而不是省略键
type Instance struct {
	Name             string   `json:"Name"`             // 实例名称, 取第一个标签的值, 无标签时为空
	ID               string   `json:"ID"`               // 实例 ID
	Type             string   `json:"Type"`             // 实例规格
	State            string   `json:"State"`            // 状态
	AvailabilityZone string   `json:"AvailabilityZone"` // 可用区
	PublicIP         string   `json:"PublicIP"`         // 公网 IP, 无则为 "N/A"
	PrivateIPs       []string `json:"PrivateIPs"`       // 私网 IP, 每个网卡一个
}

// InstanceList 实例列表
type InstanceList struct {
	Items    []*Instance `json:"items"`
	PageInfo *PageInfo   `json:"page_info,omitempty"`
}
