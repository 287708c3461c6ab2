package client

type (
	// SubmitRequest is the payload for a form submission.
	SubmitRequest struct {
		User string `json:"user"`
	}

	// MetricsRequest asks the service for per-region latency
	// metrics against a breach threshold.
	MetricsRequest struct {
		Regions     []string `json:"regions"`
		ThresholdMS float64  `json:"threshold_ms"`
	}

	// RegionMetrics holds the aggregated metrics for one region.
	RegionMetrics struct {
		Region     string  `json:"region"`
		AvgLatency float64 `json:"avg_latency"`
		P95Latency float64 `json:"p95_latency"`
		AvgUptime  float64 `json:"avg_uptime"`
		Breaches   int     `json:"breaches"`
	}

	MetricsResponse struct {
		Regions []RegionMetrics `json:"regions"`
	}

	HealthResponse struct {
		Msg string `json:"msg"`
	}

	// ErrorResponse is the error body returned by the service.
	ErrorResponse struct {
		Detail string `json:"detail"`
	}
)
