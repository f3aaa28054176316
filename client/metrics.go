package client

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// APIRequestsTotal API 请求总数
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tencentcloud_sms_api_requests_total",
			Help: "Total number of TencentCloud API requests",
		},
		[]string{"action", "status"}, // status: HTTP 状态码
	)

	// APIDuration API 响应延迟
	APIDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tencentcloud_sms_api_duration_seconds",
			Help:    "Duration of TencentCloud API requests in seconds",
			Buckets: []float64{.025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"action"},
	)

	// APIErrorTotal API 错误总数
	APIErrorTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tencentcloud_sms_api_error_total",
			Help: "Total number of TencentCloud API errors",
		},
		[]string{"action", "kind"}, // kind: tcerr 错误类别
	)

	// RateLimitWaitTotal 客户端限流等待次数
	RateLimitWaitTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tencentcloud_sms_rate_limit_wait_total",
			Help: "Total number of client-side rate limit waits",
		},
		[]string{"action"},
	)
)

// recordRequest 记录一次 API 请求
func recordRequest(action, status string) {
	APIRequestsTotal.WithLabelValues(action, status).Inc()
}

// recordError 记录一次 API 错误
func recordError(action, kind string) {
	APIErrorTotal.WithLabelValues(action, kind).Inc()
}

// observeDuration 记录请求耗时
func observeDuration(action string, seconds float64) {
	APIDuration.WithLabelValues(action).Observe(seconds)
}
