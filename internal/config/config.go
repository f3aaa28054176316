package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/taoyao-code/tencentcloud-sms/profile"
)

// LumberjackConfig 日志滚动（lumberjack）配置
type LumberjackConfig struct {
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"maxSize"`
	MaxBackups int    `mapstructure:"maxBackups"`
	MaxAgeDays int    `mapstructure:"maxAge"`
	Compress   bool   `mapstructure:"compress"`
}

// LoggingConfig 日志级别与输出配置
type LoggingConfig struct {
	Level  string           `mapstructure:"level"`
	Format string           `mapstructure:"format"`
	File   LumberjackConfig `mapstructure:"file"`
}

// SmsConfig 短信发送默认参数
type SmsConfig struct {
	Region     string `mapstructure:"region"`
	SdkAppID   string `mapstructure:"sdkAppId"`
	SignName   string `mapstructure:"signName"`
	TemplateID string `mapstructure:"templateId"`
}

// Config 顶层配置结构
type Config struct {
	Logging LoggingConfig         `mapstructure:"logging"`
	Sms     SmsConfig             `mapstructure:"sms"`
	Client  profile.ClientProfile `mapstructure:"client"`
}

// Load 从 YAML/TOML/JSON 文件与环境变量加载配置。
// path 为空时依次尝试环境变量 SMSCTL_CONFIG 与 ./configs/smsctl.yaml。
func Load(path string) (*Config, error) {
	v := viper.New()

	if path == "" {
		// 直接读环境变量：viper 的 env 查找带 SMSCTL_ 前缀，会找错键
		path = os.Getenv("SMSCTL_CONFIG")
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.SetConfigName("smsctl")
		v.SetConfigType("yaml")
	}

	setDefaults(v)

	// 环境变量覆盖：前缀 SMSCTL_，点号替换为下划线
	v.SetEnvPrefix("SMSCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// 允许缺少配置文件，依赖默认值与环境变量
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Validate 校验发送必需的字段
func (c *Config) Validate() error {
	if c.Sms.Region == "" {
		return fmt.Errorf("sms.region is required")
	}
	if c.Sms.SdkAppID == "" {
		return fmt.Errorf("sms.sdkAppId is required")
	}
	if c.Sms.TemplateID == "" {
		return fmt.Errorf("sms.templateId is required")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file.filename", "")
	v.SetDefault("logging.file.maxSize", 100)
	v.SetDefault("logging.file.maxBackups", 7)
	v.SetDefault("logging.file.maxAge", 30)
	v.SetDefault("logging.file.compress", true)

	v.SetDefault("sms.region", "ap-guangzhou")

	v.SetDefault("client.http.reqMethod", profile.DefaultReqMethod)
	v.SetDefault("client.http.endpoint", profile.DefaultEndpoint)
	v.SetDefault("client.http.reqTimeout", 60*time.Second)
	v.SetDefault("client.http.connectTimeout", 60*time.Second)
	v.SetDefault("client.http.userAgent", profile.DefaultUserAgent)
	v.SetDefault("client.signMethod", profile.DefaultSignMethod)
	v.SetDefault("client.apiVersion", profile.DefaultAPIVersion)
	v.SetDefault("client.language", profile.DefaultLanguage)
	v.SetDefault("client.debug", false)
	v.SetDefault("client.rateLimit", 0)
	v.SetDefault("client.rateBurst", 1)
}
