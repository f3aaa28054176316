package signer

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// deriveSigningKey 四级 HMAC-SHA256 派生链：
//
//	kDate    = HMAC("TC3"+secretKey, date)
//	kService = HMAC(kDate, service)
//	kSigning = HMAC(kService, "tc3_request")
//
// 中间密钥仅存活于本次调用，不缓存；派生代价很低，按次重算即可，
// 也避免了凭证更换后缓存密钥失效的问题。
func deriveSigningKey(secretKey, date, service string) []byte {
	kDate := hmacSHA256([]byte("TC3"+secretKey), []byte(date))
	kService := hmacSHA256(kDate, []byte(service))
	return hmacSHA256(kService, []byte(RequestType))
}

func hmacSHA256(key, data []byte) []byte {
	mac := hmac.New(sha256.New, key)
	_, _ = mac.Write(data)
	return mac.Sum(nil)
}

func hexHMACSHA256(key []byte, data string) string {
	return hex.EncodeToString(hmacSHA256(key, []byte(data)))
}
