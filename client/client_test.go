package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taoyao-code/tencentcloud-sms/credential"
	"github.com/taoyao-code/tencentcloud-sms/profile"
	"github.com/taoyao-code/tencentcloud-sms/signer"
	"github.com/taoyao-code/tencentcloud-sms/tcerr"
)

type echoRequest struct {
	Value string `json:"Value"`
}

type echoResponse struct {
	Echo      string `json:"Echo"`
	RequestID string `json:"RequestId"`
}

func testClient(endpoint string) *Client {
	cp := profile.NewClientProfile()
	cp.HttpProfile.Endpoint = endpoint
	return WithProfile(credential.New("test_id", "test_key", ""), "ap-guangzhou", "sms", cp)
}

// mock 服务端独立重算签名，与 Authorization 头逐字节比对。
// 在 handler goroutine 中运行，只返回结果，不触发 FailNow。
func verifySignature(t *testing.T, r *http.Request, body []byte) bool {
	t.Helper()

	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "TC3-HMAC-SHA256 ") {
		t.Logf("unexpected auth header: %s", auth)
		return false
	}

	fields := map[string]string{}
	for _, part := range strings.Split(strings.TrimPrefix(auth, "TC3-HMAC-SHA256 "), ", ") {
		k, v, ok := strings.Cut(part, "=")
		if !ok {
			return false
		}
		fields[k] = v
	}
	if fields["SignedHeaders"] != "content-type;host" {
		return false
	}

	ts, err := strconv.ParseInt(r.Header.Get("X-TC-Timestamp"), 10, 64)
	if err != nil {
		return false
	}

	headers := map[string]string{
		"Content-Type": r.Header.Get("Content-Type"),
		"Host":         r.Host,
	}
	want, err := signer.New("test_id", "test_key", "").
		SignRequest(r.Method, "/", "", headers, body, "sms", time.Unix(ts, 0).UTC())
	if err != nil {
		return false
	}
	return fields["Signature"] == want
}

func TestDoSignedRequestAccepted(t *testing.T) {
	var sawHeaders http.Header
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		sawHeaders = r.Header.Clone()
		if !verifySignature(t, r, body) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"Response":{"Error":{"Code":"AuthFailure.SignatureFailure","Message":"signature mismatch"},"RequestId":"req-1"}}`))
			return
		}
		var req echoRequest
		_ = json.Unmarshal(body, &req)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"Response": map[string]any{"Echo": req.Value, "RequestId": "req-1"},
		})
	}))
	defer ts.Close()

	c := testClient(ts.URL)
	var resp echoResponse
	err := c.Do(context.Background(), "Echo", &echoRequest{Value: "hello"}, &resp)
	require.NoError(t, err)
	assert.Equal(t, "hello", resp.Echo)
	assert.Equal(t, "req-1", resp.RequestID)

	assert.Equal(t, "Echo", sawHeaders.Get("X-TC-Action"))
	assert.Equal(t, "2021-01-11", sawHeaders.Get("X-TC-Version"))
	assert.Equal(t, "ap-guangzhou", sawHeaders.Get("X-TC-Region"))
	assert.Equal(t, "en-US", sawHeaders.Get("X-TC-Language"))
	assert.Empty(t, sawHeaders.Get("X-TC-Token"))
}

func TestDoSendsTokenHeader(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "session-token", r.Header.Get("X-TC-Token"))
		_, _ = w.Write([]byte(`{"Response":{"RequestId":"req-2"}}`))
	}))
	defer ts.Close()

	cp := profile.NewClientProfile()
	cp.HttpProfile.Endpoint = ts.URL
	c := WithProfile(credential.New("test_id", "test_key", "session-token"), "ap-guangzhou", "sms", cp)
	require.NoError(t, c.Do(context.Background(), "Echo", &echoRequest{}, nil))
}

func TestDoAPIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"Response":{"Error":{"Code":"FailedOperation.TemplateIncorrectOrUnapproved","Message":"template rejected"},"RequestId":"req-3"}}`))
	}))
	defer ts.Close()

	err := testClient(ts.URL).Do(context.Background(), "Echo", &echoRequest{}, nil)
	require.Error(t, err)
	e := tcerr.AsError(err)
	require.NotNil(t, e)
	assert.Equal(t, tcerr.KindAPI, e.Kind())
	assert.Equal(t, tcerr.CodeTemplateIncorrectOrUnapproved, e.Code())
	assert.Equal(t, "req-3", e.RequestID())
	assert.True(t, e.IsCode(tcerr.CodeTemplateIncorrectOrUnapproved))
}

func TestDoEmptyCredentialFailsBeforeSending(t *testing.T) {
	hit := false
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hit = true
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	cp := profile.NewClientProfile()
	cp.HttpProfile.Endpoint = ts.URL
	c := WithProfile(credential.New("", "", ""), "ap-guangzhou", "sms", cp)
	err := c.Do(context.Background(), "Echo", &echoRequest{}, nil)
	require.Error(t, err)
	e := tcerr.AsError(err)
	require.NotNil(t, e)
	assert.Equal(t, tcerr.KindAuth, e.Kind())
	assert.False(t, hit, "no request should reach the server")
}

func TestDoHTTPStatusError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	err := testClient(ts.URL).Do(context.Background(), "Echo", &echoRequest{}, nil)
	require.Error(t, err)
	e := tcerr.AsError(err)
	require.NotNil(t, e)
	assert.Equal(t, tcerr.KindNetwork, e.Kind())
}

func TestDoMissingResponseEnvelope(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	err := testClient(ts.URL).Do(context.Background(), "Echo", &echoRequest{}, nil)
	require.Error(t, err)
	e := tcerr.AsError(err)
	require.NotNil(t, e)
	assert.Equal(t, tcerr.KindNetwork, e.Kind())
}

func TestDoTimestampHeaderMatchesSignature(t *testing.T) {
	// now 固定后，X-TC-Timestamp 与签名必须一致到秒
	fixed := time.Unix(1609459200, 0).UTC()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1609459200", r.Header.Get("X-TC-Timestamp"))
		body, _ := io.ReadAll(r.Body)
		assert.True(t, verifySignature(t, r, body))
		_, _ = w.Write([]byte(`{"Response":{"RequestId":"req-4"}}`))
	}))
	defer ts.Close()

	c := testClient(ts.URL)
	c.now = func() time.Time { return fixed }
	require.NoError(t, c.Do(context.Background(), "Echo", &echoRequest{Value: "x"}, nil))
}

func TestDoRateLimited(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"Response":{"RequestId":"req-5"}}`))
	}))
	defer ts.Close()

	cp := profile.NewClientProfile()
	cp.HttpProfile.Endpoint = ts.URL
	cp.RateLimit = 100
	cp.RateBurst = 1
	c := WithProfile(credential.New("test_id", "test_key", ""), "ap-guangzhou", "sms", cp)

	for i := 0; i < 3; i++ {
		require.NoError(t, c.Do(context.Background(), "Echo", &echoRequest{}, nil))
	}
}
