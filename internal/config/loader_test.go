package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfigFile(t, "")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTP.Port)
	assert.False(t, cfg.Server.HTTP.Debug)
	assert.False(t, cfg.Server.MCP.Enabled)
	assert.Equal(t, 8081, cfg.Server.MCP.Port)

	assert.Equal(t, "memory", cfg.Cache.Type)
	assert.Equal(t, 200, cfg.Cache.TTL)
	assert.Equal(t, 1000, cfg.Cache.MaxEntries)
	assert.Equal(t, 0, cfg.Cache.RegionTTL)
	assert.Equal(t, "localhost:6379", cfg.Cache.Redis.Addr)

	assert.Equal(t, "aws", cfg.Providers.Default)
}

func TestLoadConfigReadsYAML(t *testing.T) {
	path := writeConfigFile(t, `
server:
  http:
    port: 9090
    debug: true
  mcp:
    enabled: true
    port: 9091

cache:
  type: redis
  ttl: 60
  redis:
    addr: redis.internal:6379
    db: 3

providers:
  default: aliyun
  aliyun:
    enabled: true
    ak: LTAI0000
    sk: secret0000
    metadata_region: cn-shanghai
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTP.Port)
	assert.True(t, cfg.Server.HTTP.Debug)
	assert.True(t, cfg.Server.MCP.Enabled)
	assert.Equal(t, 9091, cfg.Server.MCP.Port)

	assert.Equal(t, "redis", cfg.Cache.Type)
	assert.Equal(t, 60, cfg.Cache.TTL)
	assert.Equal(t, "redis.internal:6379", cfg.Cache.Redis.Addr)
	assert.Equal(t, 3, cfg.Cache.Redis.DB)

	assert.Equal(t, "aliyun", cfg.Providers.Default)
	assert.True(t, cfg.Providers.Aliyun.Enabled)
	assert.Equal(t, "LTAI0000", cfg.Providers.Aliyun.AK)
	assert.Equal(t, "cn-shanghai", cfg.Providers.Aliyun.MetadataRegion)

	// 未出现的段保持默认值
	assert.Equal(t, 1000, cfg.Cache.MaxEntries)
	assert.False(t, cfg.Providers.AWS.Enabled)
}

func TestLoadConfigExpandsEnvPlaceholders(t *testing.T) {
	t.Setenv("TEST_AWS_AK", "AKIAEXAMPLE")
	t.Setenv("TEST_AWS_SK", "wJalrEXAMPLEKEY")
	t.Setenv("TEST_REDIS_PASSWORD", "redis-pass")

	path := writeConfigFile(t, `
cache:
  redis:
    password: ${TEST_REDIS_PASSWORD}

providers:
  aws:
    enabled: true
    ak: ${TEST_AWS_AK}
    sk: ${TEST_AWS_SK}
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "AKIAEXAMPLE", cfg.Providers.AWS.AK)
	assert.Equal(t, "wJalrEXAMPLEKEY", cfg.Providers.AWS.SK)
	assert.Equal(t, "redis-pass", cfg.Cache.Redis.Password)
}

func TestLoadConfigEnvOverridesDefault(t *testing.T) {
	t.Setenv("CLOUDINV_SERVER_HTTP_PORT", "19999")
	t.Setenv("CLOUDINV_PROVIDERS_DEFAULT", "tencent")

	path := writeConfigFile(t, "")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 19999, cfg.Server.HTTP.Port)
	assert.Equal(t, "tencent", cfg.Providers.Default)
}

func TestLoadConfigExplicitFileMissing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := writeConfigFile(t, "server: [unclosed")

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
