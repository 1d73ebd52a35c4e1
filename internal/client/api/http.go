package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/dmitrijs2005/coursehub/internal/common"
	"github.com/dmitrijs2005/coursehub/internal/logging"
)

const tracerName = "github.com/dmitrijs2005/coursehub/internal/client/api"

// maxErrorBody caps how much of a failed response is read.
const maxErrorBody = 1 << 20

// HTTPClient implements Client over JSON/HTTP.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	log        logging.Logger
	tracer     trace.Tracer
	propagator propagation.TextMapPropagator

	mu     sync.RWMutex
	tokens TokenSource
}

var _ Client = (*HTTPClient)(nil)

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithTracerProvider traces requests with tp instead of the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *HTTPClient) { c.tracer = tp.Tracer(tracerName) }
}

// WithPropagator injects trace context with p instead of the global
// propagator.
func WithPropagator(p propagation.TextMapPropagator) Option {
	return func(c *HTTPClient) { c.propagator = p }
}

// New creates a client for the API rooted at baseURL. Endpoint paths are
// appended to it, so a missing trailing slash is added.
func New(baseURL string, timeout time.Duration, log logging.Logger, opts ...Option) *HTTPClient {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	c := &HTTPClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		log:        log.With("component", "api"),
		tracer:     otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *HTTPClient) textMapPropagator() propagation.TextMapPropagator {
	if c.propagator != nil {
		return c.propagator
	}
	return otel.GetTextMapPropagator()
}

// SetTokenSource installs the source of bearer tokens. It is set after
// construction because the token source itself refreshes through this
// client.
func (c *HTTPClient) SetTokenSource(ts TokenSource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tokens = ts
}

func (c *HTTPClient) tokenSource() TokenSource {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tokens
}

// call performs an authenticated request. A 401 answer forces one refresh
// and one retry.
func (c *HTTPClient) call(ctx context.Context, method, path string, body, out any) error {
	ts := c.tokenSource()
	if ts == nil {
		return fmt.Errorf("%w: no token source", ErrUnauthorized)
	}

	token, err := ts.Token(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}

	err = c.doRequest(ctx, method, path, body, out, token)
	if !IsStatus(err, http.StatusUnauthorized) {
		return err
	}

	c.log.Debug(ctx, "access token rejected, refreshing", "method", method, "path", path)
	token, err = ts.ForceRefresh(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}
	return c.doRequest(ctx, method, path, body, out, token)
}

func (c *HTTPClient) get(ctx context.Context, path string, out any) error {
	return c.call(ctx, http.MethodGet, path, nil, out)
}

func (c *HTTPClient) post(ctx context.Context, path string, body any, out any) error {
	return c.call(ctx, http.MethodPost, path, body, out)
}

func (c *HTTPClient) doRequest(ctx context.Context, method, path string, body any, out any, bearer string) (err error) {
	requestID := uuid.NewString()

	ctx, span := c.tracer.Start(ctx, "HTTP "+method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", path),
			attribute.String("coursehub.request_id", requestID),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+strings.TrimPrefix(path, "/"), reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set(common.AuthorizationHeader, "Bearer "+bearer)
	}
	req.Header.Set(common.RequestIDHeader, requestID)
	c.textMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = mapTransportError(err)
		c.log.Warn(ctx, "request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return err
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode >= 400 {
		respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if readErr != nil {
			return &HTTPError{StatusCode: resp.StatusCode, Message: fmt.Sprintf("failed to read body: %v", readErr)}
		}
		httpErr := parseErrorBody(resp.StatusCode, respBody)
		c.log.Debug(ctx, "request rejected", "method", method, "path", path, "request_id", requestID, "status", resp.StatusCode)
		return httpErr
	}

	if out == nil {
		return nil
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return mapTransportError(err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// mapTransportError folds network failures and client timeouts into
// ErrUnavailable. Caller cancellation is passed through unchanged.
func mapTransportError(err error) error {
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("do request: %w", err)
	}
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}
