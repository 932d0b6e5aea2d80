package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Config configures an API client.
type Config struct {
	BaseURL string
	Timeout time.Duration // per-request bound; zero means DefaultTimeout
}

const DefaultTimeout = 30 * time.Second

func (c Config) timeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return DefaultTimeout
}

// newHTTPClient builds the shared transport: otel instrumentation over the
// default transport.
func newHTTPClient() *http.Client {
	return &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}

func newBreaker(name string) *gobreaker.CircuitBreaker[[]byte] {
	return gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:    name,
		Timeout: 15 * time.Second,
	})
}

// errorPayload covers both collaborator error shapes: the Order API sends
// {"message": ...}, the Payment API sends {"error": ...}.
type errorPayload struct {
	Message string `json:"message"`
	Err     string `json:"error"`
}

func (e errorPayload) reason(fallback string) string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != "" {
		return e.Err
	}
	return fallback
}

// postJSON executes a JSON POST through the circuit breaker and returns the
// raw response body. Non-2xx responses become errors carrying the upstream
// message when one is decodable.
func postJSON(ctx context.Context, client *http.Client, breaker *gobreaker.CircuitBreaker[[]byte], url string, body interface{}) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request failed: %w", err)
	}

	return breaker.Execute(func() ([]byte, error) {
		req, errReq := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if errReq != nil {
			return nil, errReq
		}
		req.Header.Set("Content-Type", "application/json")

		resp, errDo := client.Do(req)
		if errDo != nil {
			return nil, errDo
		}
		defer resp.Body.Close()

		data, errRead := io.ReadAll(resp.Body)
		if errRead != nil {
			return nil, fmt.Errorf("read response failed: %w", errRead)
		}

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			var ep errorPayload
			_ = json.Unmarshal(data, &ep)
			return nil, fmt.Errorf("%s", ep.reason(fmt.Sprintf("unexpected status %d", resp.StatusCode)))
		}
		return data, nil
	})
}
