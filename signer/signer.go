package signer

import (
	"fmt"
	"time"
)

const (
	// Algorithm 签名算法标识
	Algorithm = "TC3-HMAC-SHA256"

	// RequestType 凭证范围终段固定值
	RequestType = "tc3_request"

	// DateFormat 凭证范围日期格式（UTC）
	DateFormat = "20060102"

	// EmptyPayloadSHA256 空请求体的 SHA256（hex）
	EmptyPayloadSHA256 = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
)

// Signer TC3-HMAC-SHA256 签名器。
// 无内部状态（仅持有凭证），不读时钟、不做网络 IO、不打日志，
// 可在多 goroutine 间安全复用。
type Signer struct {
	secretID  string
	secretKey string
	token     string
}

// New 创建签名器。此处不校验凭证，空凭证会在更高层（client）被拦下；
// 若直接使用，空 key 只会产生服务端拒绝的签名。
func New(secretID, secretKey, token string) *Signer {
	return &Signer{
		secretID:  secretID,
		secretKey: secretKey,
		token:     token,
	}
}

// SignRequest 对一次请求元数据计算 TC3 签名（hex 小写）。
// headers 中应只包含希望纳入签名的头；调用方须保证
// X-TC-Timestamp 与这里传入的 t 是同一个时间点。
// error 仅在底层 HMAC 原语失败时返回；对 HMAC-SHA256 实际不可达，
// 保留以区分致命配置错误。
func (s *Signer) SignRequest(method, uri, query string, headers map[string]string, payload []byte, service string, t time.Time) (string, error) {
	canonicalRequest := CanonicalRequest(method, uri, query, headers, payload)
	stringToSign := s.StringToSign(canonicalRequest, service, t)
	key := deriveSigningKey(s.secretKey, t.UTC().Format(DateFormat), service)
	return hexHMACSHA256(key, stringToSign), nil
}

// StringToSign 构造待签串：算法、epoch 秒、凭证范围、规范请求串哈希。
// 日期与 epoch 必须来自同一个 t，否则服务端校验必失败且本地无任何报错。
func (s *Signer) StringToSign(canonicalRequest, service string, t time.Time) string {
	return fmt.Sprintf("%s\n%d\n%s\n%s",
		Algorithm,
		t.Unix(),
		CredentialScope(service, t),
		HashPayload([]byte(canonicalRequest)),
	)
}

// AuthorizationHeader 按固定格式拼 Authorization 头，
// 字段间分隔符为 ", "（逗号加空格），与服务端逐字节比对。
func (s *Signer) AuthorizationHeader(signature, service string, t time.Time, signedHeaders string) string {
	return fmt.Sprintf("%s Credential=%s/%s, SignedHeaders=%s, Signature=%s",
		Algorithm,
		s.secretID,
		CredentialScope(service, t),
		signedHeaders,
		signature,
	)
}

// CredentialScope 凭证范围：{date}/{service}/tc3_request，
// 将派生密钥的有效性限定在一个自然日和一个服务内。
func CredentialScope(service string, t time.Time) string {
	return fmt.Sprintf("%s/%s/%s", t.UTC().Format(DateFormat), service, RequestType)
}
