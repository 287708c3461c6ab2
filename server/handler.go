// Package server implements the latency telemetry service the
// probe client talks to: a health check, per-region latency
// aggregation, and indexed record lookup.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/probeops/latencyprobe/client"
	"github.com/probeops/latencyprobe/telemetry"
)

// Handler serves the latency telemetry endpoints.
type Handler struct {
	data *telemetry.Dataset
	log  *logrus.Logger
}

// New returns the http handler for the latency service, with
// request logging and gzip response encoding wired in.
func New(data *telemetry.Dataset, log *logrus.Logger) http.Handler {
	h := &Handler{data: data, log: log}
	mux := http.NewServeMux()
	mux.HandleFunc("/", h.health)
	mux.HandleFunc("/api/latency", h.metrics)
	mux.HandleFunc("/api/latency/test", h.record)
	return h.logRequests(withGzip(mux))
}

// health reports that the service is up.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, &client.HealthResponse{
		Msg: "Hello, World. Latency service is up!",
	})
}

// metrics aggregates the telemetry series for each requested
// region against the given breach threshold.
func (h *Handler) metrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	req := new(client.MetricsRequest)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp := &client.MetricsResponse{
		Regions: []client.RegionMetrics{},
	}
	for _, name := range req.Regions {
		series, ok := h.data.Region(name)
		if !ok {
			writeError(w, http.StatusBadRequest,
				fmt.Sprintf("region '%s' not found", name))
			return
		}
		resp.Regions = append(resp.Regions, client.RegionMetrics{
			Region:     name,
			AvgLatency: telemetry.Round2(telemetry.Mean(series.Latencies)),
			P95Latency: telemetry.Round2(telemetry.Percentile(series.Latencies, 95)),
			AvgUptime:  telemetry.Round2(telemetry.Mean(series.Uptimes)),
			Breaches:   telemetry.Breaches(series.Latencies, req.ThresholdMS),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// recordRequest carries the index of the record to fetch. The
// index arrives either as an integer under "id" or under
// "user", where historical clients send the value as a string.
type recordRequest struct {
	ID   *int `json:"id"`
	User any  `json:"user"`
}

// record returns the telemetry record at the requested index.
func (h *Handler) record(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	req := new(recordRequest)
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	index, err := req.index()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	rec, ok := h.data.Record(index)
	if !ok {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("record index %d out of range", index))
		return
	}
	writeJSON(w, http.StatusOK, map[string]telemetry.Record{
		"records": rec,
	})
}

// index resolves the record index from the request body.
func (req *recordRequest) index() (int, error) {
	if req.ID != nil {
		return *req.ID, nil
	}
	switch v := req.User.(type) {
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("user value '%s' is not a record index", v)
		}
		return n, nil
	case float64:
		return int(v), nil
	case nil:
		return 0, fmt.Errorf("missing record index")
	default:
		return 0, fmt.Errorf("user value is not a record index")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, &client.ErrorResponse{Detail: detail})
}

// logRequests tags every request with an identifier and logs
// the method, path, status and duration.
func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		h.log.WithFields(logrus.Fields{
			"request.id": uuid.NewString(),
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     rec.status,
			"duration":   time.Since(start),
		}).Infoln("request handled")
	})
}

// statusRecorder captures the response status for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}
