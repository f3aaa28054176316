package tcerr

import (
	"errors"
	"fmt"
)

// Kind 错误类别
type Kind string

const (
	// KindAuth 认证错误（凭证缺失或为空，签名前就能发现）
	KindAuth Kind = "auth"
	// KindConfig 配置错误（不重试，立即上抛）
	KindConfig Kind = "config"
	// KindParameter 参数校验错误
	KindParameter Kind = "parameter"
	// KindSignature 签名原语内部错误（HMAC-SHA256 下实际不可达，保留类别）
	KindSignature Kind = "signature"
	// KindNetwork 网络/传输错误
	KindNetwork Kind = "network"
	// KindAPI 服务端返回的 API 错误（带 Code/Message/RequestId）
	KindAPI Kind = "api"
	// KindTimeout 超时错误
	KindTimeout Kind = "timeout"
)

// Error SDK 统一错误类型
type Error struct {
	kind      Kind
	code      string // 仅 API 错误携带
	message   string
	requestID string // 仅 API 错误携带
	cause     error
}

func (e *Error) Error() string {
	switch {
	case e.kind == KindAPI && e.requestID != "":
		return fmt.Sprintf("api error: %s - %s (request id: %s)", e.code, e.message, e.requestID)
	case e.kind == KindAPI:
		return fmt.Sprintf("api error: %s - %s", e.code, e.message)
	case e.cause != nil:
		return fmt.Sprintf("%s error: %s: %v", e.kind, e.message, e.cause)
	default:
		return fmt.Sprintf("%s error: %s", e.kind, e.message)
	}
}

// Unwrap 暴露底层错误，支持 errors.Is/As
func (e *Error) Unwrap() error { return e.cause }

// Kind 返回错误类别
func (e *Error) Kind() Kind { return e.kind }

// Code 返回 API 错误码，非 API 错误为空串
func (e *Error) Code() string { return e.code }

// Message 返回错误描述
func (e *Error) Message() string { return e.message }

// RequestID 返回服务端请求 ID，没有则为空串
func (e *Error) RequestID() string { return e.requestID }

// IsCode 判断是否为指定错误码的 API 错误
func (e *Error) IsCode(code string) bool { return e.kind == KindAPI && e.code == code }

// NewAuth 认证错误
func NewAuth(message string) *Error {
	return &Error{kind: KindAuth, message: message}
}

// NewConfig 配置错误
func NewConfig(message string) *Error {
	return &Error{kind: KindConfig, message: message}
}

// NewParameter 参数错误
func NewParameter(message string) *Error {
	return &Error{kind: KindParameter, message: message}
}

// NewSignature 签名错误
func NewSignature(message string, cause error) *Error {
	return &Error{kind: KindSignature, message: message, cause: cause}
}

// NewAPI 服务端 API 错误
func NewAPI(code, message, requestID string) *Error {
	return &Error{kind: KindAPI, code: code, message: message, requestID: requestID}
}

// WrapNetwork 包装网络错误
func WrapNetwork(message string, cause error) *Error {
	return &Error{kind: KindNetwork, message: message, cause: cause}
}

// NewTimeout 超时错误
func NewTimeout(message string) *Error {
	return &Error{kind: KindTimeout, message: message}
}

// AsError 从 error 链中取出 *Error，取不到返回 nil
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

// CodeOf 取 err 的 API 错误码，非 API 错误返回空串
func CodeOf(err error) string {
	if e := AsError(err); e != nil {
		return e.Code()
	}
	return ""
}
