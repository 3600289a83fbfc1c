package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fekuna/omnipos-catalog-admin/internal/pkg/logger"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// TokenSource supplies the bearer credential for authenticated calls.
type TokenSource interface {
	Token() string
}

type Config struct {
	BaseURL string
	Timeout time.Duration
	// Transport defaults to http.DefaultTransport.
	Transport http.RoundTripper
}

// Request is a single JSON call against the API.
type Request struct {
	Op     string
	Method string
	Path   string
	Body   any
	Auth   bool
}

type Client struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
	tokens  TokenSource
	logger  logger.ZapLogger
}

func NewClient(cfg Config, tokens TokenSource, log logger.ZapLogger) *Client {
	base := cfg.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	return &Client{
		baseURL: cfg.BaseURL,
		timeout: cfg.Timeout,
		http:    &http.Client{Transport: otelhttp.NewTransport(base)},
		tokens:  tokens,
		logger:  log,
	}
}

// Do sends req and decodes a 2xx JSON body into out (which may be nil).
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	var token string
	if req.Auth {
		if c.tokens != nil {
			token = c.tokens.Token()
		}
		if token == "" {
			return &Error{Op: req.Op, StatusCode: http.StatusUnauthorized, Err: ErrUnauthorized}
		}
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var body io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return &Error{Op: req.Op, Err: fmt.Errorf("encode request: %w", err)}
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, c.baseURL+req.Path, body)
	if err != nil {
		return &Error{Op: req.Op, Err: err}
	}
	requestID := uuid.New().String()
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		c.logger.Warn("api call failed",
			zap.String("op", req.Op),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return &Error{Op: req.Op, Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug("api call",
		zap.String("op", req.Op),
		zap.String("method", req.Method),
		zap.String("path", req.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
		zap.String("request_id", requestID),
	)

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Op: req.Op, StatusCode: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Op: req.Op, StatusCode: resp.StatusCode, Message: serverMessage(payload)}
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			apiErr.Err = ErrUnauthorized
		}
		c.logger.Warn("api call rejected",
			zap.String("op", req.Op),
			zap.Int("status", resp.StatusCode),
			zap.String("message", apiErr.Message),
			zap.String("request_id", requestID),
		)
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(payload)) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return &Error{Op: req.Op, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// serverMessage extracts {"message": ...} or {"error": ...} from an error body.
func serverMessage(payload []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}
