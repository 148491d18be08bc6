package apimanager

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// Executor performs one round trip.
type Executor interface {
	Execute(ctx context.Context, req *http.Request) (*Response, error)
}

// ExecutorFunc adapts a function to Executor.
type ExecutorFunc func(ctx context.Context, req *http.Request) (*Response, error)

// Execute implements Executor.
func (f ExecutorFunc) Execute(ctx context.Context, req *http.Request) (*Response, error) {
	return f(ctx, req)
}

// HTTPExecutor is the Executor backed by an *http.Client. It performs a
// single attempt and reads the whole body.
type HTTPExecutor struct {
	client *http.Client
}

// NewHTTPExecutor wraps client. A nil client gets a clone of the default
// transport and no timeout.
func NewHTTPExecutor(client *http.Client) *HTTPExecutor {
	if client == nil {
		client = &http.Client{
			Transport: http.DefaultTransport.(*http.Transport).Clone(),
		}
	}
	return &HTTPExecutor{client: client}
}

// Execute implements Executor. Any transport failure is reported as
// KindStatusNotOK wrapping the cause.
func (e *HTTPExecutor) Execute(ctx context.Context, req *http.Request) (*Response, error) {
	resp, err := e.client.Do(req.WithContext(ctx))
	if err != nil {
		return nil, newError(KindStatusNotOK, 0, nil, err)
	}
	if resp == nil {
		return nil, newError(KindNoResponse, 0, nil, nil)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newError(KindStatusNotOK, resp.StatusCode, nil, fmt.Errorf("read response body: %w", err))
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

// CloseIdleConnections closes idle connections of the underlying client.
func (e *HTTPExecutor) CloseIdleConnections() {
	e.client.CloseIdleConnections()
}
