package metrics

import (
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// 全局 Registry，供 API 注册与暴露
var DefaultRegistry = prometheus.NewRegistry()

func init() {
	DefaultRegistry.MustRegister(
		ToolCallDuration, ToolCallTotal,
		TokenExchangeTotal, BackendRequestDuration,
	)
}

// ToolCallDuration 工具调用耗时（秒）
var ToolCallDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "sfdcgw_tool_call_duration_seconds",
		Help:    "工具调用耗时（秒）",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"tool"},
)

// ToolCallTotal 工具调用总数（按结果）
var ToolCallTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "sfdcgw_tool_call_total",
		Help: "工具调用总数（按结果）",
	},
	[]string{"tool", "outcome"}, // ok | domain_error | error
)

// TokenExchangeTotal OAuth2 token 交换总数（按结果）
var TokenExchangeTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "sfdcgw_token_exchange_total",
		Help: "OAuth2 token 交换总数（按结果）",
	},
	[]string{"outcome"}, // ok | error
)

// BackendRequestDuration Salesforce 后端调用耗时（秒）
var BackendRequestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "sfdcgw_backend_request_duration_seconds",
		Help:    "Salesforce 后端调用耗时（秒）",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"operation"}, // query | retrieve | create | update | identity
)

// WritePrometheus 将 Prometheus 文本格式写入 w（供 Hertz 等复用）
func WritePrometheus(w io.Writer) error {
	metrics, err := DefaultRegistry.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.FmtText)
	for _, mf := range metrics {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}
