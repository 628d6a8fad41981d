package pexels

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	errs "pexelsearch/pkg/errors"
	"pexelsearch/pkg/logger"
)

// Response is a completed HTTP exchange. Any status code is a valid
// Response; the API reports its errors in the JSON body.
type Response struct {
	StatusCode int
	Body       []byte
	Header     http.Header
}

// Transport issues a single GET request. It fails only when no response
// could be read (connection, timeout, body read).
type Transport interface {
	Get(ctx context.Context, url string, headers map[string]string, timeout time.Duration) (*Response, error)
}

// HTTPTransport is a Transport backed by net/http
type HTTPTransport struct {
	httpClient *http.Client
	logger     logger.Logger
}

// NewHTTPTransport wraps httpClient, or a fresh client if nil
func NewHTTPTransport(httpClient *http.Client, log logger.Logger) *HTTPTransport {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if log == nil {
		log = logger.GetLogger()
	}
	return &HTTPTransport{httpClient: httpClient, logger: log}
}

// Get performs the request, bounding it by timeout when positive
func (t *HTTPTransport) Get(ctx context.Context, url string, headers map[string]string, timeout time.Duration) (*Response, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errs.Wrap(errs.ErrorTypeUnknown, "failed to create request", err)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	resp, err := t.httpClient.Do(req)
	if err != nil {
		t.logger.WithError(err).WarnWithFields("HTTP request failed", map[string]interface{}{
			"method":   req.Method,
			"url":      url,
			"duration": time.Since(start),
		})
		return nil, errs.Wrap(errs.ErrorTypeNetwork, "network error", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &errs.Error{
			Type:    errs.ErrorTypeNetwork,
			Message: fmt.Sprintf("failed to read response body (status %d)", resp.StatusCode),
			Code:    resp.StatusCode,
			Err:     err,
		}
	}

	logger.LogRequest(t.logger, req.Method, url, resp.StatusCode, float64(time.Since(start).Microseconds())/1000)

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       body,
		Header:     resp.Header,
	}, nil
}
