package profile

import (
	"fmt"
	"strings"
	"time"
)

// 默认值
const (
	DefaultEndpoint   = "sms.tencentcloudapi.com"
	DefaultReqMethod  = "POST"
	DefaultTimeout    = 60 * time.Second
	DefaultAPIVersion = "2021-01-11"
	DefaultLanguage   = "en-US"
	DefaultSignMethod = "TC3-HMAC-SHA256"
	DefaultUserAgent  = "tencentcloud-sms-go/1.0.0"
)

// HttpProfile HTTP 传输配置
type HttpProfile struct {
	ReqMethod      string        `mapstructure:"reqMethod"`
	Endpoint       string        `mapstructure:"endpoint"`
	ReqTimeout     time.Duration `mapstructure:"reqTimeout"`
	ConnectTimeout time.Duration `mapstructure:"connectTimeout"`
	KeepAlive      bool          `mapstructure:"keepAlive"`
	ProxyHost      string        `mapstructure:"proxyHost"`
	ProxyPort      int           `mapstructure:"proxyPort"`
	UserAgent      string        `mapstructure:"userAgent"`
}

// NewHttpProfile 默认 HTTP 配置
func NewHttpProfile() *HttpProfile {
	return &HttpProfile{
		ReqMethod:      DefaultReqMethod,
		Endpoint:       DefaultEndpoint,
		ReqTimeout:     DefaultTimeout,
		ConnectTimeout: DefaultTimeout,
		KeepAlive:      false,
		UserAgent:      DefaultUserAgent,
	}
}

// FullEndpoint 带协议的完整地址，未写协议时补 https://
func (p *HttpProfile) FullEndpoint() string {
	if strings.HasPrefix(p.Endpoint, "http://") || strings.HasPrefix(p.Endpoint, "https://") {
		return p.Endpoint
	}
	return "https://" + p.Endpoint
}

// HasProxy 代理是否配置完整（host 与 port 都要有）
func (p *HttpProfile) HasProxy() bool {
	return p.ProxyHost != "" && p.ProxyPort > 0
}

// ProxyURL 代理地址，未配置返回空串
func (p *HttpProfile) ProxyURL() string {
	if !p.HasProxy() {
		return ""
	}
	return fmt.Sprintf("http://%s:%d", p.ProxyHost, p.ProxyPort)
}

// ClientProfile 客户端配置
type ClientProfile struct {
	HttpProfile *HttpProfile `mapstructure:"http"`
	SignMethod  string       `mapstructure:"signMethod"`
	APIVersion  string       `mapstructure:"apiVersion"`
	Language    string       `mapstructure:"language"`
	Debug       bool         `mapstructure:"debug"`

	// RateLimit 客户端限流（每秒请求数），0 表示不限流
	RateLimit float64 `mapstructure:"rateLimit"`
	// RateBurst 限流桶容量，RateLimit>0 且未设置时取 1
	RateBurst int `mapstructure:"rateBurst"`
}

// NewClientProfile 默认客户端配置
func NewClientProfile() *ClientProfile {
	return &ClientProfile{
		HttpProfile: NewHttpProfile(),
		SignMethod:  DefaultSignMethod,
		APIVersion:  DefaultAPIVersion,
		Language:    DefaultLanguage,
	}
}

// WithHttpProfile 指定 HTTP 配置的客户端配置
func WithHttpProfile(hp *HttpProfile) *ClientProfile {
	cp := NewClientProfile()
	if hp != nil {
		cp.HttpProfile = hp
	}
	return cp
}
