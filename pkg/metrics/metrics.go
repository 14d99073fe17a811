package metrics

import "github.com/prometheus/client_golang/prometheus"

// Package-level instruments, registered once from main via
// MustRegisterMetrics.
var (
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sei_sense_http_requests_total",
		Help: "Total number of HTTP requests by route and status code",
	}, []string{"route", "status"})

	RPCCallsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sei_sense_rpc_calls_total",
		Help: "Total number of node RPC calls by method and outcome",
	}, []string{"method", "outcome"})

	RPCCallDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sei_sense_rpc_call_duration_seconds",
		Help:    "Node RPC call latency in seconds by method",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})

	ToolInvocationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sei_sense_tool_invocations_total",
		Help: "Total number of tool invocations by tool name and outcome",
	}, []string{"tool", "outcome"})

	ActiveToolSessions = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "sei_sense_tool_sessions_active",
		Help: "Number of currently open tool protocol sessions",
	})

	LLMRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sei_sense_llm_requests_total",
		Help: "Total number of language model requests by outcome",
	}, []string{"outcome"})

	BlocksScannedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sei_sense_history_blocks_scanned_total",
		Help: "Total number of blocks walked by the history reconstructor",
	})
)

// MustRegisterMetrics registers all instruments with the default registry.
// It panics on duplicate registration, which only happens on programmer
// error.
func MustRegisterMetrics() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		RPCCallsTotal,
		RPCCallDuration,
		ToolInvocationsTotal,
		ActiveToolSessions,
		LLMRequestsTotal,
		BlocksScannedTotal,
	)
}

// ObserveRPCCall records one RPC call with its duration and outcome.
func ObserveRPCCall(method string, seconds float64, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	RPCCallsTotal.WithLabelValues(method, outcome).Inc()
	RPCCallDuration.WithLabelValues(method).Observe(seconds)
}
