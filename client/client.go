package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/taoyao-code/tencentcloud-sms/credential"
	"github.com/taoyao-code/tencentcloud-sms/profile"
	"github.com/taoyao-code/tencentcloud-sms/signer"
	"github.com/taoyao-code/tencentcloud-sms/tcerr"
)

// Client 云 API 通用客户端。负责组装 X-TC-* 公共头、签名、HTTP 收发
// 和响应信封解析；签名本身由 signer 完成，这里只提供被签名的请求元数据。
type Client struct {
	credential credential.Credential
	region     string
	service    string
	profile    *profile.ClientProfile

	httpClient *http.Client
	signer     *signer.Signer
	limiter    *rate.Limiter
	logger     *zap.Logger

	// now 按次取时间，测试中可替换获得确定性签名
	now func() time.Time
}

// New 创建客户端，使用默认配置
func New(cred credential.Credential, region, service string) *Client {
	return WithProfile(cred, region, service, profile.NewClientProfile())
}

// WithProfile 创建指定配置的客户端
func WithProfile(cred credential.Credential, region, service string, cp *profile.ClientProfile) *Client {
	if cp == nil {
		cp = profile.NewClientProfile()
	}
	if cp.HttpProfile == nil {
		cp.HttpProfile = profile.NewHttpProfile()
	}

	var limiter *rate.Limiter
	if cp.RateLimit > 0 {
		burst := cp.RateBurst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cp.RateLimit), burst)
	}

	return &Client{
		credential: cred,
		region:     region,
		service:    service,
		profile:    cp,
		httpClient: newHTTPClient(cp.HttpProfile),
		signer:     signer.New(cred.SecretID, cred.SecretKey, cred.Token),
		limiter:    limiter,
		logger:     zap.NewNop(),
		now:        time.Now,
	}
}

func newHTTPClient(hp *profile.HttpProfile) *http.Client {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: hp.ConnectTimeout,
		}).DialContext,
		DisableKeepAlives: !hp.KeepAlive,
	}
	if hp.HasProxy() {
		if proxyURL, err := url.Parse(hp.ProxyURL()); err == nil {
			transport.Proxy = http.ProxyURL(proxyURL)
		}
	}
	return &http.Client{
		Timeout:   hp.ReqTimeout,
		Transport: transport,
	}
}

// SetLogger 注入日志器，默认 zap.NewNop
func (c *Client) SetLogger(l *zap.Logger) {
	if l != nil {
		c.logger = l
	}
}

// SetCredential 更换凭证。签名密钥链按次派生，换凭证即刻生效。
func (c *Client) SetCredential(cred credential.Credential) {
	c.credential = cred
	c.signer = signer.New(cred.SecretID, cred.SecretKey, cred.Token)
}

// Region 当前地域
func (c *Client) Region() string { return c.region }

// Service 服务名
func (c *Client) Service() string { return c.service }

// Profile 客户端配置
func (c *Client) Profile() *profile.ClientProfile { return c.profile }

// responseEnvelope 云 API 响应信封 {"Response": {...}}
type responseEnvelope struct {
	Response json.RawMessage `json:"Response"`
}

type responseMeta struct {
	Error *struct {
		Code    string `json:"Code"`
		Message string `json:"Message"`
	} `json:"Error"`
	RequestID string `json:"RequestId"`
}

// Do 发起一次 API 调用：序列化 request、签名、发送、解析信封，
// 成功时把 Response 内容反序列化进 response。
func (c *Client) Do(ctx context.Context, action string, request, response any) error {
	if err := c.credential.Validate(); err != nil {
		recordError(action, string(tcerr.KindAuth))
		return err
	}

	if c.limiter != nil {
		RateLimitWaitTotal.WithLabelValues(action).Inc()
		if err := c.limiter.Wait(ctx); err != nil {
			recordError(action, string(tcerr.KindTimeout))
			return tcerr.NewTimeout("rate limiter wait: " + err.Error())
		}
	}

	// 只序列化一次；被哈希的字节与发出的字节必须是同一份
	payload, err := json.Marshal(request)
	if err != nil {
		recordError(action, string(tcerr.KindParameter))
		return tcerr.NewParameter("marshal request: " + err.Error())
	}

	hp := c.profile.HttpProfile
	endpoint := hp.FullEndpoint()
	u, err := url.Parse(endpoint)
	if err != nil {
		recordError(action, string(tcerr.KindConfig))
		return tcerr.NewConfig("invalid endpoint " + hp.Endpoint)
	}

	// X-TC-Timestamp 与签名用的是同一个时间点
	now := c.now()
	traceID := uuid.NewString()

	// 按约定只签 content-type 与 host，其余公共头不参与签名
	signedHeaders := map[string]string{
		"Content-Type": "application/json",
		"Host":         u.Host,
	}

	sig, err := c.signer.SignRequest(hp.ReqMethod, "/", "", signedHeaders, payload, c.service, now)
	if err != nil {
		recordError(action, string(tcerr.KindSignature))
		return tcerr.NewSignature("sign request", err)
	}
	authorization := c.signer.AuthorizationHeader(sig, c.service, now, signer.SignedHeaders(signedHeaders))

	var body io.Reader
	if hp.ReqMethod == http.MethodPost {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, hp.ReqMethod, endpoint, body)
	if err != nil {
		recordError(action, string(tcerr.KindNetwork))
		return tcerr.WrapNetwork("build request", err)
	}

	req.Host = u.Host
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", authorization)
	req.Header.Set("User-Agent", hp.UserAgent)
	req.Header.Set("X-TC-Action", action)
	req.Header.Set("X-TC-Version", c.profile.APIVersion)
	req.Header.Set("X-TC-Region", c.region)
	req.Header.Set("X-TC-Timestamp", strconv.FormatInt(now.Unix(), 10))
	req.Header.Set("X-TC-Language", c.profile.Language)
	if c.credential.HasToken() {
		req.Header.Set("X-TC-Token", c.credential.Token)
	}

	if c.profile.Debug {
		c.logger.Debug("api request",
			zap.String("trace_id", traceID),
			zap.String("action", action),
			zap.String("endpoint", endpoint),
			zap.ByteString("payload", payload))
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	observeDuration(action, time.Since(start).Seconds())
	if err != nil {
		if ue, ok := err.(*url.Error); ok && ue.Timeout() {
			recordError(action, string(tcerr.KindTimeout))
			return tcerr.NewTimeout("request timed out: " + err.Error())
		}
		recordError(action, string(tcerr.KindNetwork))
		return tcerr.WrapNetwork("send request", err)
	}
	defer func() { _ = resp.Body.Close() }()

	recordRequest(action, strconv.Itoa(resp.StatusCode))

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		recordError(action, string(tcerr.KindNetwork))
		return tcerr.WrapNetwork("read response", err)
	}

	if c.profile.Debug {
		c.logger.Debug("api response",
			zap.String("trace_id", traceID),
			zap.String("action", action),
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", respBody))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		recordError(action, string(tcerr.KindNetwork))
		return tcerr.WrapNetwork(fmt.Sprintf("http status %d: %s", resp.StatusCode, respBody), nil)
	}

	var envelope responseEnvelope
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		recordError(action, string(tcerr.KindNetwork))
		return tcerr.WrapNetwork("decode response", err)
	}
	if envelope.Response == nil {
		recordError(action, string(tcerr.KindNetwork))
		return tcerr.WrapNetwork("invalid response format: missing Response", nil)
	}

	var meta responseMeta
	if err := json.Unmarshal(envelope.Response, &meta); err != nil {
		recordError(action, string(tcerr.KindNetwork))
		return tcerr.WrapNetwork("decode response meta", err)
	}
	if meta.Error != nil {
		recordError(action, string(tcerr.KindAPI))
		return tcerr.NewAPI(meta.Error.Code, meta.Error.Message, meta.RequestID)
	}

	if response != nil {
		if err := json.Unmarshal(envelope.Response, response); err != nil {
			recordError(action, string(tcerr.KindNetwork))
			return tcerr.WrapNetwork("decode response body", err)
		}
	}
	return nil
}
