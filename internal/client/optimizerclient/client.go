package optimizerclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	QuantPath    = "/quant"
	OptimizePath = "/optimize"

	RequestIDHeader   = "X-Request-Id"
	EnvironmentHeader = "X-Medalytics-Env"

	maxResponseBytes = 4 << 20
)

// Failure kinds. Every failed request is reported as a *RequestError that
// matches exactly one of them with errors.Is.
var (
	ErrTransport = errors.New("optimizer unreachable")
	ErrStatus    = errors.New("optimizer returned an error status")
	ErrDecode    = errors.New("optimizer response malformed")
)

// RequestError describes a failed call to the optimizer.
type RequestError struct {
	Kind       error
	Method     string
	Path       string
	StatusCode int
	Err        error
}

func (e *RequestError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s: %v", e.Method, e.Path, e.Kind)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (status %d)", e.StatusCode)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *RequestError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Client talks to the optimization service.
type Client struct {
	baseURL    string
	http       *http.Client
	transport  *headerTransport
	log        *zerolog.Logger
	timeout    time.Duration
	attempts   uint
	retryDelay time.Duration
}

func New(baseURL string, log *zerolog.Logger, opts ...Option) *Client {
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}
	transport := newHeaderTransport(nil)
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		http:       &http.Client{Transport: transport},
		transport:  transport,
		log:        log,
		timeout:    10 * time.Second,
		attempts:   1,
		retryDelay: 200 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds calls whose context carries no deadline of its own.
// Zero disables the bound.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithRetryAttempts sets how many times a call is tried. Only transport
// failures and 5xx responses are retried.
func WithRetryAttempts(attempts uint) Option {
	return func(c *Client) {
		if attempts < 1 {
			attempts = 1
		}
		c.attempts = attempts
	}
}

func WithRetryDelay(delay time.Duration) Option {
	return func(c *Client) {
		c.retryDelay = delay
	}
}

// WithBaseTransport replaces the round tripper beneath the header transport.
func WithBaseTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.transport.base = rt
	}
}

// WithHeader adds a header to every request.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		c.transport.extraHeaders.Set(key, value)
	}
}

func (c *Client) BaseURL() string { return c.baseURL }

type quantResponse struct {
	Data *[]float64 `json:"data"`
}

type optimizeRequest struct {
	FilePath string `json:"file_path"`
}

type optimizeResponse struct {
	OptimizedAllocation *[]float64 `json:"optimized_allocation"`
}

// Quant fetches the chart series shown on the network optimization tab.
func (c *Client) Quant(ctx context.Context) ([]float64, error) {
	var resp quantResponse
	if err := c.do(ctx, http.MethodGet, QuantPath, nil, &resp); err != nil {
		return nil, err
	}
	if resp.Data == nil {
		return nil, &RequestError{Kind: ErrDecode, Method: http.MethodGet, Path: QuantPath, Err: errors.New(`missing field "data"`)}
	}

	c.log.Debug().Int("points", len(*resp.Data)).Msg("Received quant series")
	return *resp.Data, nil
}

// Optimize asks the optimizer to allocate resources for the CSV at filePath,
// a path on the optimizer's own filesystem.
func (c *Client) Optimize(ctx context.Context, filePath string) ([]float64, error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, errors.New("file path is empty")
	}

	var resp optimizeResponse
	if err := c.do(ctx, http.MethodPost, OptimizePath, optimizeRequest{FilePath: filePath}, &resp); err != nil {
		return nil, err
	}
	if resp.OptimizedAllocation == nil {
		return nil, &RequestError{Kind: ErrDecode, Method: http.MethodPost, Path: OptimizePath, Err: errors.New(`missing field "optimized_allocation"`)}
	}

	c.log.Debug().Str("filePath", filePath).
		Int("hospitals", len(*resp.OptimizedAllocation)).
		Msg("Received optimized allocation")
	return *resp.OptimizedAllocation, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	if _, ok := ctx.Deadline(); !ok && c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encode request body")
		}
	}

	err := retry.Do(
		func() error {
			return c.roundTrip(ctx, method, path, payload, out)
		},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.retryDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(retryable),
		retry.OnRetry(func(n uint, err error) {
			c.log.Debug().Uint("attempt", n+1).Err(err).Msg("Retrying optimizer request")
		}),
	)
	if err != nil {
		// retry-go reports a context that expires between attempts as the bare
		// context error.
		var reqErr *RequestError
		if !errors.As(err, &reqErr) {
			err = &RequestError{Kind: ErrTransport, Method: method, Path: path, Err: err}
		}
		c.log.Error().Err(err).Str("method", method).Str("path", path).Msg("Optimizer request failed")
		return err
	}
	return nil
}

func (c *Client) roundTrip(ctx context.Context, method, path string, payload []byte, out any) error {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &RequestError{Kind: ErrTransport, Method: method, Path: path, Err: err}
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debug().Str("method", method).Str("url", req.URL.String()).Msg("Calling optimizer")

	resp, err := c.http.Do(req) // #nosec G107 -- base URL comes from CLI configuration
	if err != nil {
		return &RequestError{Kind: ErrTransport, Method: method, Path: path, Err: err}
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Warn().Err(cerr).Msg("Failed to close optimizer response body")
		}
	}()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &RequestError{Kind: ErrTransport, Method: method, Path: path, StatusCode: resp.StatusCode, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var detail error
		if msg := strings.TrimSpace(string(data)); msg != "" {
			detail = errors.New(msg)
		}
		return &RequestError{Kind: ErrStatus, Method: method, Path: path, StatusCode: resp.StatusCode, Err: detail}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &RequestError{Kind: ErrDecode, Method: method, Path: path, StatusCode: resp.StatusCode, Err: err}
	}
	return nil
}

func retryable(err error) bool {
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		return false
	}
	switch {
	case errors.Is(reqErr.Kind, ErrTransport):
		return true
	case errors.Is(reqErr.Kind, ErrStatus):
		return reqErr.StatusCode >= http.StatusInternalServerError
	default:
		return false
	}
}
