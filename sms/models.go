package sms

import (
	"fmt"

	"github.com/taoyao-code/tencentcloud-sms/tcerr"
)

// MaxPhoneNumbers 单次请求最多手机号数量
const MaxPhoneNumbers = 200

// SendSmsRequest 发送短信请求。字段名与云 API 线上格式一致，
// 可选字段为空时不参与序列化。
type SendSmsRequest struct {
	// PhoneNumberSet 目标手机号，E.164 格式，如 +8613800000000，单次最多 200 个
	PhoneNumberSet []string `json:"PhoneNumberSet"`

	// SmsSdkAppId 短信应用 ID，控制台可查
	SmsSdkAppID string `json:"SmsSdkAppId"`

	// TemplateId 已审批的模板 ID
	TemplateID string `json:"TemplateId"`

	// SignName 短信签名。国内短信必填，国际/港澳台可不填
	SignName string `json:"SignName,omitempty"`

	// TemplateParamSet 模板参数，个数须与模板变量一致
	TemplateParamSet []string `json:"TemplateParamSet,omitempty"`

	// ExtendCode 短信码号扩展号，默认未开通
	ExtendCode string `json:"ExtendCode,omitempty"`

	// SessionContext 用户会话上下文，服务端原样返回
	SessionContext string `json:"SessionContext,omitempty"`

	// SenderId 国际短信 SenderId，国内短信留空
	SenderID string `json:"SenderId,omitempty"`
}

// NewSendSmsRequest 创建国内短信请求
func NewSendSmsRequest(phoneNumbers []string, sdkAppID, templateID, signName string, templateParams []string) *SendSmsRequest {
	return &SendSmsRequest{
		PhoneNumberSet:   phoneNumbers,
		SmsSdkAppID:      sdkAppID,
		TemplateID:       templateID,
		SignName:         signName,
		TemplateParamSet: templateParams,
	}
}

// NewInternationalSendSmsRequest 创建国际短信请求（无签名）
func NewInternationalSendSmsRequest(phoneNumbers []string, sdkAppID, templateID string, templateParams []string) *SendSmsRequest {
	return &SendSmsRequest{
		PhoneNumberSet:   phoneNumbers,
		SmsSdkAppID:      sdkAppID,
		TemplateID:       templateID,
		TemplateParamSet: templateParams,
	}
}

// Validate 请求参数校验
func (r *SendSmsRequest) Validate() error {
	if len(r.PhoneNumberSet) == 0 {
		return tcerr.NewParameter("phone number set cannot be empty")
	}
	if len(r.PhoneNumberSet) > MaxPhoneNumbers {
		return tcerr.NewParameter(fmt.Sprintf("phone number set cannot exceed %d numbers", MaxPhoneNumbers))
	}
	if r.SmsSdkAppID == "" {
		return tcerr.NewParameter("sms sdk app id cannot be empty")
	}
	if r.TemplateID == "" {
		return tcerr.NewParameter("template id cannot be empty")
	}
	for _, phone := range r.PhoneNumberSet {
		if len(phone) == 0 {
			return tcerr.NewParameter("phone number cannot be empty")
		}
	}
	return nil
}

// SendStatus 单个手机号的发送状态
type SendStatus struct {
	// SerialNo 发送流水号
	SerialNo string `json:"SerialNo"`

	// PhoneNumber 手机号
	PhoneNumber string `json:"PhoneNumber"`

	// Fee 计费条数
	Fee int `json:"Fee"`

	// SessionContext 用户会话上下文
	SessionContext string `json:"SessionContext"`

	// Code 发送状态码，Ok 表示成功
	Code string `json:"Code"`

	// Message 发送状态描述
	Message string `json:"Message"`

	// IsoCode 国家/地区码
	IsoCode string `json:"IsoCode"`
}

// IsSuccess 该号码是否发送成功
func (s *SendStatus) IsSuccess() bool { return s.Code == "Ok" }

// StatusDescription 可读的状态描述
func (s *SendStatus) StatusDescription() string {
	switch s.Code {
	case "Ok":
		return "Success"
	case tcerr.CodeIncorrectPhoneNumber:
		return "Invalid phone number format"
	case tcerr.CodeSignatureIncorrectOrUnapproved:
		return "Signature incorrect or unapproved"
	case tcerr.CodeTemplateIncorrectOrUnapproved:
		return "Template incorrect or unapproved"
	case tcerr.CodeInsufficientBalance:
		return "Insufficient balance"
	case tcerr.CodePhoneNumberCountLimit:
		return "Phone number count limit exceeded"
	case "LimitExceeded.DeliveryFrequencyLimit":
		return "Delivery frequency limit exceeded"
	default:
		return "Unknown status"
	}
}

// SendSmsResponse 发送短信响应
type SendSmsResponse struct {
	// SendStatusSet 每个手机号的发送状态
	SendStatusSet []SendStatus `json:"SendStatusSet"`

	// RequestId 本次请求的唯一 ID，排障时提供给云上支持
	RequestID string `json:"RequestId"`
}

// IsAllSuccess 是否全部发送成功
func (r *SendSmsResponse) IsAllSuccess() bool {
	for i := range r.SendStatusSet {
		if !r.SendStatusSet[i].IsSuccess() {
			return false
		}
	}
	return true
}

// SuccessCount 发送成功的号码数
func (r *SendSmsResponse) SuccessCount() int {
	n := 0
	for i := range r.SendStatusSet {
		if r.SendStatusSet[i].IsSuccess() {
			n++
		}
	}
	return n
}

// FailedCount 发送失败的号码数
func (r *SendSmsResponse) FailedCount() int {
	return len(r.SendStatusSet) - r.SuccessCount()
}

// SuccessfulNumbers 发送成功的号码列表
func (r *SendSmsResponse) SuccessfulNumbers() []string {
	var numbers []string
	for i := range r.SendStatusSet {
		if r.SendStatusSet[i].IsSuccess() {
			numbers = append(numbers, r.SendStatusSet[i].PhoneNumber)
		}
	}
	return numbers
}

// FailedNumbers 发送失败的号码与原因
func (r *SendSmsResponse) FailedNumbers() map[string]string {
	failed := make(map[string]string)
	for i := range r.SendStatusSet {
		if !r.SendStatusSet[i].IsSuccess() {
			failed[r.SendStatusSet[i].PhoneNumber] = r.SendStatusSet[i].Message
		}
	}
	return failed
}

// PhoneStatus 查询指定号码的发送状态，查不到返回 nil
func (r *SendSmsResponse) PhoneStatus(phoneNumber string) *SendStatus {
	for i := range r.SendStatusSet {
		if r.SendStatusSet[i].PhoneNumber == phoneNumber {
			return &r.SendStatusSet[i]
		}
	}
	return nil
}

// TotalFee 总计费条数
func (r *SendSmsResponse) TotalFee() int {
	total := 0
	for i := range r.SendStatusSet {
		total += r.SendStatusSet[i].Fee
	}
	return total
}
