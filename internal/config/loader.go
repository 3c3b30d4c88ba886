package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// LoadConfig 加载配置文件
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()

	// 设置配置文件
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		// 默认配置文件搜索路径
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("$HOME/.cloudinv")
		v.AddConfigPath("/etc/cloudinv")
	}

	// 支持环境变量
	v.SetEnvPrefix("CLOUDINV")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 设置默认值
	setDefaults(v)

	// 读取配置文件
	if err := v.ReadInConfig(); err != nil {
		// 如果是找不到配置文件，则使用默认配置
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// 解析配置
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 替换环境变量
	expandEnvVars(&config)

	return &config, nil
}

// setDefaults 设置默认配置值
func setDefaults(v *viper.Viper) {
	// Server 默认配置
	v.SetDefault("server.http.port", 8080)
	v.SetDefault("server.http.debug", false)
	v.SetDefault("server.mcp.enabled", false)
	v.SetDefault("server.mcp.port", 8081)

	// Cache 默认配置
	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.ttl", 200)
	v.SetDefault("cache.max_entries", 1000)
	v.SetDefault("cache.region_ttl", 0)
	v.SetDefault("cache.redis.addr", "localhost:6379")
	v.SetDefault("cache.redis.db", 0)

	// Provider 默认配置
	v.SetDefault("providers.default", "aws")
}

// expandEnvVars 展开环境变量
func expandEnvVars(config *Config) {
	// 展开各提供商账号配置中的环境变量
	config.Providers.AWS.AK = os.ExpandEnv(config.Providers.AWS.AK)
	config.Providers.AWS.SK = os.ExpandEnv(config.Providers.AWS.SK)
	config.Providers.Aliyun.AK = os.ExpandEnv(config.Providers.Aliyun.AK)
	config.Providers.Aliyun.SK = os.ExpandEnv(config.Providers.Aliyun.SK)
	config.Providers.Tencent.AK = os.ExpandEnv(config.Providers.Tencent.AK)
	config.Providers.Tencent.SK = os.ExpandEnv(config.Providers.Tencent.SK)

	// 展开 Redis 密码中的环境变量
	config.Cache.Redis.Password = os.ExpandEnv(config.Cache.Redis.Password)
}
