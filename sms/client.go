package sms

import (
	"context"

	"github.com/taoyao-code/tencentcloud-sms/client"
	"github.com/taoyao-code/tencentcloud-sms/credential"
	"github.com/taoyao-code/tencentcloud-sms/profile"
)

// Service 云 API 服务名
const Service = "sms"

// ActionSendSms 发送短信接口名
const ActionSendSms = "SendSms"

// Client 短信服务客户端
type Client struct {
	*client.Client
}

// NewClient 创建短信客户端，region 形如 ap-guangzhou
func NewClient(cred credential.Credential, region string) *Client {
	return &Client{Client: client.New(cred, region, Service)}
}

// NewClientWithProfile 创建指定配置的短信客户端
func NewClientWithProfile(cred credential.Credential, region string, cp *profile.ClientProfile) *Client {
	return &Client{Client: client.WithProfile(cred, region, Service, cp)}
}

// SendSms 发送短信。请求先做本地参数校验，再经通用客户端签名发出。
func (c *Client) SendSms(ctx context.Context, req *SendSmsRequest) (*SendSmsResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var resp SendSmsResponse
	if err := c.Do(ctx, ActionSendSms, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
