package credential

import (
	"os"

	"github.com/taoyao-code/tencentcloud-sms/tcerr"
)

// 环境变量名，长名优先
const (
	EnvSecretID  = "TENCENTCLOUD_SECRET_ID"
	EnvSecretKey = "TENCENTCLOUD_SECRET_KEY"
	EnvToken     = "TENCENTCLOUD_TOKEN"

	EnvSecretIDShort  = "TC_SECRET_ID"
	EnvSecretKeyShort = "TC_SECRET_KEY"
	EnvTokenShort     = "TC_TOKEN"
)

// Credential API 访问凭证。Token 仅临时密钥需要。
// 凭证只参与本地 HMAC 计算，SecretKey 不会随请求发出。
type Credential struct {
	SecretID  string
	SecretKey string
	Token     string
}

// New 创建凭证
func New(secretID, secretKey, token string) Credential {
	return Credential{SecretID: secretID, SecretKey: secretKey, Token: token}
}

// FromEnv 从环境变量读取凭证：
// TENCENTCLOUD_SECRET_ID / TC_SECRET_ID、TENCENTCLOUD_SECRET_KEY /
// TC_SECRET_KEY，可选 TENCENTCLOUD_TOKEN / TC_TOKEN。
func FromEnv() (Credential, error) {
	secretID := envOr(EnvSecretID, EnvSecretIDShort)
	if secretID == "" {
		return Credential{}, tcerr.NewAuth(EnvSecretID + " or " + EnvSecretIDShort + " environment variable not found")
	}
	secretKey := envOr(EnvSecretKey, EnvSecretKeyShort)
	if secretKey == "" {
		return Credential{}, tcerr.NewAuth(EnvSecretKey + " or " + EnvSecretKeyShort + " environment variable not found")
	}
	return Credential{
		SecretID:  secretID,
		SecretKey: secretKey,
		Token:     envOr(EnvToken, EnvTokenShort),
	}, nil
}

// Validate 校验必填字段。签名本身不做校验，空凭证在这里拦下。
func (c Credential) Validate() error {
	if c.SecretID == "" {
		return tcerr.NewAuth("secret id cannot be empty")
	}
	if c.SecretKey == "" {
		return tcerr.NewAuth("secret key cannot be empty")
	}
	return nil
}

// HasToken 是否携带临时 Token
func (c Credential) HasToken() bool { return c.Token != "" }

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return os.Getenv(fallback)
}
