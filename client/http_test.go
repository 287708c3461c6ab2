package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
)

var noContext = context.Background()

// errorTransport fails every request with a fixed error.
type errorTransport struct {
	err error
}

func (t *errorTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, t.err
}

func TestSubmit(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/latency/test", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		in := new(SubmitRequest)
		err := json.NewDecoder(r.Body).Decode(in)
		assert.NoError(t, err)
		assert.Equal(t, "3", in.User)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	body, err := New(srv.URL).Submit(noContext, "3")

	assert.NoError(t, err)
	assert.Equal(t, json.RawMessage(`{"status":"ok"}`), body)
	assert.Equal(t, 1, calls)
}

func TestSubmit_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Submit(noContext, "3")

	assert.EqualError(t, err, "Failed to fetch data: HTTP error! status: 500")
}

func TestSubmit_TransportError(t *testing.T) {
	c := New("http://localhost")
	c.Client = &http.Client{
		Transport: &errorTransport{err: errors.New("network down")},
	}

	_, err := c.Submit(noContext, "3")

	assert.EqualError(t, err, "Failed to fetch data: network down")
}

func TestSubmit_ParseError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Submit(noContext, "3")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to fetch data: ")
}

func TestSubmit_Gzip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("Accept-Encoding"), "gzip")
		w.Header().Set("Content-Encoding", "gzip")
		zw := gzip.NewWriter(w)
		zw.Write([]byte(`{"status":"ok"}`))
		zw.Close()
	}))
	defer srv.Close()

	body, err := New(srv.URL).Submit(noContext, "3")

	assert.NoError(t, err)
	assert.Equal(t, json.RawMessage(`{"status":"ok"}`), body)
}

func TestMetrics(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/latency", r.URL.Path)

		in := new(MetricsRequest)
		err := json.NewDecoder(r.Body).Decode(in)
		assert.NoError(t, err)
		assert.Equal(t, []string{"apac"}, in.Regions)
		assert.Equal(t, 200.0, in.ThresholdMS)

		json.NewEncoder(w).Encode(&MetricsResponse{
			Regions: []RegionMetrics{
				{Region: "apac", AvgLatency: 250, P95Latency: 385, AvgUptime: 97.5, Breaches: 2},
			},
		})
	}))
	defer srv.Close()

	resp, err := New(srv.URL).Metrics(noContext, &MetricsRequest{
		Regions:     []string{"apac"},
		ThresholdMS: 200,
	})

	assert.NoError(t, err)
	assert.Len(t, resp.Regions, 1)
	assert.Equal(t, 385.0, resp.Regions[0].P95Latency)
}

func TestMetrics_Detail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(&ErrorResponse{Detail: "region 'mars' not found"})
	}))
	defer srv.Close()

	_, err := New(srv.URL).Metrics(noContext, &MetricsRequest{
		Regions: []string{"mars"},
	})

	assert.EqualError(t, err, "region 'mars' not found")
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		json.NewEncoder(w).Encode(&HealthResponse{Msg: "up"})
	}))
	defer srv.Close()

	resp, err := New(srv.URL).Health(noContext)

	assert.NoError(t, err)
	assert.Equal(t, "up", resp.Msg)
}
