package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "ap-guangzhou", cfg.Sms.Region)
	assert.Equal(t, "sms.tencentcloudapi.com", cfg.Client.HttpProfile.Endpoint)
	assert.Equal(t, "POST", cfg.Client.HttpProfile.ReqMethod)
	assert.Equal(t, 60*time.Second, cfg.Client.HttpProfile.ReqTimeout)
	assert.Equal(t, "2021-01-11", cfg.Client.APIVersion)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "smsctl.yaml")
	content := `
logging:
  level: debug
sms:
  region: ap-beijing
  sdkAppId: "1400000000"
  signName: TestSign
  templateId: "123456"
client:
  debug: true
  rateLimit: 10
  http:
    endpoint: custom.endpoint.com
    reqTimeout: 30s
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "ap-beijing", cfg.Sms.Region)
	assert.Equal(t, "1400000000", cfg.Sms.SdkAppID)
	assert.True(t, cfg.Client.Debug)
	assert.Equal(t, float64(10), cfg.Client.RateLimit)
	assert.Equal(t, "custom.endpoint.com", cfg.Client.HttpProfile.Endpoint)
	assert.Equal(t, 30*time.Second, cfg.Client.HttpProfile.ReqTimeout)
}

func TestLoadFromEnvPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	content := `
sms:
  region: eu-frankfurt
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("SMSCTL_CONFIG", path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "eu-frankfurt", cfg.Sms.Region)

	// 显式 path 优先于环境变量
	other := filepath.Join(dir, "other.yaml")
	require.NoError(t, os.WriteFile(other, []byte("sms:\n  region: ap-beijing\n"), 0o600))
	cfg, err = Load(other)
	require.NoError(t, err)
	assert.Equal(t, "ap-beijing", cfg.Sms.Region)
}

func TestValidate(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	// 默认配置缺少 sdkAppId / templateId
	require.Error(t, cfg.Validate())

	cfg.Sms.SdkAppID = "1400000000"
	cfg.Sms.TemplateID = "123456"
	assert.NoError(t, cfg.Validate())
}
