package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/klauspost/compress/gzip"
	"github.com/sirupsen/logrus"
)

const (
	submitEndpoint  = "/api/latency/test"
	metricsEndpoint = "/api/latency"
	healthEndpoint  = "/"
)

// DefaultEndpoint is the address of the hosted latency service.
const DefaultEndpoint = "https://tds-public-repo.vercel.app"

// defaultClient is the default http.Client.
var defaultClient = &http.Client{
	CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	},
}

// New returns a new client for the given endpoint. If the
// endpoint is empty the hosted service address is used.
func New(endpoint string) *HTTPClient {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &HTTPClient{
		Logger:   logrus.New(),
		Endpoint: endpoint,
		Client:   defaultClient,
	}
}

// An HTTPClient manages communication with the latency service.
type HTTPClient struct {
	Client   *http.Client
	Logger   *logrus.Logger
	Endpoint string
}

// Submit posts the user value to the submission endpoint and
// returns the parsed response payload. A transport failure, a
// non-2xx status and an unparseable body all surface as a
// request error carrying the "Failed to fetch data" prefix.
//
// The call is made exactly once. No retry, no deadline beyond
// whatever the caller attached to the context.
func (p *HTTPClient) Submit(ctx context.Context, user string) (json.RawMessage, error) {
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(&SubmitRequest{User: user}); err != nil {
		p.logger().Errorf("could not encode submission payload: %s", err)
		return nil, err
	}

	res, body, err := p.do(ctx, submitEndpoint, "POST", buf)
	if err != nil {
		return nil, fmt.Errorf("Failed to fetch data: %s", unwrapTransport(err))
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("Failed to fetch data: HTTP error! status: %d", res.StatusCode)
	}

	// verify the body parses as json before handing it back.
	// the payload shape is otherwise unconstrained.
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, fmt.Errorf("Failed to fetch data: %s", err)
	}
	return json.RawMessage(body), nil
}

// Metrics fetches the aggregated per-region latency metrics.
func (p *HTTPClient) Metrics(ctx context.Context, r *MetricsRequest) (*MetricsResponse, error) {
	resp := &MetricsResponse{}
	_, err := p.doJson(ctx, metricsEndpoint, "POST", r, resp) //nolint: bodyclose
	return resp, err
}

// Health checks that the service is up.
func (p *HTTPClient) Health(ctx context.Context) (*HealthResponse, error) {
	resp := &HealthResponse{}
	_, err := p.doJson(ctx, healthEndpoint, "GET", nil, resp) //nolint: bodyclose
	return resp, err
}

func (p *HTTPClient) doJson(ctx context.Context, path, method string, in, out interface{}) (*http.Response, error) {
	var buf = &bytes.Buffer{}
	// marshal the input payload into json format and copy
	// to an io.ReadCloser.
	if in != nil {
		if err := json.NewEncoder(buf).Encode(in); err != nil {
			p.logger().Errorf("could not encode input payload: %s", err)
		}
	}
	res, body, err := p.do(ctx, path, method, buf)
	if err != nil {
		return res, err
	}
	if res.StatusCode > 299 {
		// if the response body includes an error message
		// we should return the error string.
		eres := &ErrorResponse{}
		if jsonErr := json.Unmarshal(body, eres); jsonErr == nil && eres.Detail != "" {
			return res, errors.New(eres.Detail)
		}
		if len(body) != 0 {
			return res, errors.New(string(body))
		}
		// if the response body is empty we should return
		// the default status code text.
		return res, errors.New(http.StatusText(res.StatusCode))
	}
	if out == nil {
		return res, nil
	}
	if jsonErr := json.Unmarshal(body, out); jsonErr != nil {
		return res, jsonErr
	}
	return res, nil
}

// do is a helper function that issues an http request with the
// input encoded as json and returns the raw response body.
func (p *HTTPClient) do(ctx context.Context, path, method string, in *bytes.Buffer) (*http.Response, []byte, error) {
	endpoint := p.Endpoint + path
	req, err := http.NewRequestWithContext(ctx, method, endpoint, in)
	if err != nil {
		return nil, nil, err
	}

	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept-Encoding", "gzip")
	res, err := p.Client.Do(req)
	if res != nil {
		defer func() {
			// drain the response body so we can reuse
			// this connection.
			if _, err = io.Copy(io.Discard, io.LimitReader(res.Body, 4096)); err != nil {
				p.logger().Errorf("could not drain response body: %s", err)
			}
			res.Body.Close()
		}()
	}
	if err != nil {
		return res, nil, err
	}

	// if the response body returns no content we exit
	// immediately. We do not read the response and we
	// do not return an error.
	if res.StatusCode == 204 {
		return res, nil, nil
	}

	// the Accept-Encoding header is set manually above, so the
	// transport does not decompress for us.
	var r io.Reader = res.Body
	if res.Header.Get("Content-Encoding") == "gzip" {
		zr, zerr := gzip.NewReader(res.Body)
		if zerr != nil {
			return res, nil, zerr
		}
		defer zr.Close()
		r = zr
	}

	// else read the response body into a byte slice.
	body, err := io.ReadAll(r)
	if err != nil {
		return res, nil, err
	}
	return res, body, nil
}

// unwrapTransport strips the url.Error envelope added by the
// http client so the underlying transport message is surfaced.
func unwrapTransport(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return uerr.Err
	}
	return err
}

// logger is a helper function that returns the default logger
// if a custom logger is not defined.
func (p *HTTPClient) logger() *logrus.Logger {
	if p.Logger == nil {
		return logrus.StandardLogger()
	}
	return p.Logger
}
