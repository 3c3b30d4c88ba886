package config

// Config 全局配置
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Providers ProvidersConfig `mapstructure:"providers"`
}

// ServerConfig 服务端配置
type ServerConfig struct {
	HTTP HTTPConfig `mapstructure:"http"`
	MCP  MCPConfig  `mapstructure:"mcp"`
}

// HTTPConfig HTTP 服务配置
type HTTPConfig struct {
	Port  int  `mapstructure:"port"`
	Debug bool `mapstructure:"debug"`
}

// MCPConfig MCP 服务配置
type MCPConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

// CacheConfig 实例缓存配置
type CacheConfig struct {
	Type       string      `mapstructure:"type"`        // memory 或 redis
	TTL        int         `mapstructure:"ttl"`         // 快照有效期, 秒
	MaxEntries int         `mapstructure:"max_entries"` // memory 类型的条目上限
	RegionTTL  int         `mapstructure:"region_ttl"`  // 区域集合短缓存, 秒, 0 表示每次实时查询
	Redis      RedisConfig `mapstructure:"redis"`
}

// RedisConfig Redis 连接配置
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// ProvidersConfig 云提供商配置
type ProvidersConfig struct {
	Default string         `mapstructure:"default"` // 默认提供商, 顶层实例接口走它
	AWS     ProviderConfig `mapstructure:"aws"`
	Aliyun  ProviderConfig `mapstructure:"aliyun"`
	Tencent ProviderConfig `mapstructure:"tencent"`
}

// ProviderConfig 单个提供商的账号配置
type ProviderConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	AK             string `mapstructure:"ak"`
	SK             string `mapstructure:"sk"`
	MetadataRegion string `mapstructure:"metadata_region"` // 区域发现接口的接入区域, 留空用各家默认值
}
