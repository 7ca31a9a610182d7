package protocol

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/GriffinCanCode/PatternAssistant/core/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/PatternAssistant/core/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/PatternAssistant/core/internal/logging"
	"github.com/GriffinCanCode/PatternAssistant/core/internal/shared/id"
	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// TokenSource yields the current bearer credential, read at call time
type TokenSource interface {
	Token() (string, bool)
}

// Options configures a Client
type Options struct {
	Endpoint  string
	Timeout   time.Duration // zero leaves the transport default
	UserAgent string
	// AttachToken sends the TokenSource credential as a bearer header.
	// Off by default: the server currently accepts anonymous operations.
	AttachToken  bool
	RateLimitRPS float64 // zero or less means unlimited
	Tokens       TokenSource
	Logger       *logging.Logger
	Metrics      *monitoring.Metrics
	IDs          *id.Generator
	Tracer       *tracing.Tracer // nil disables spans
}

// Client executes operations against a single endpoint. It holds no
// cross-call state besides its configuration; safe for concurrent use.
type Client struct {
	endpoint string
	resty    *resty.Client
	limiter  *rate.Limiter
	tokens   TokenSource
	attach   bool
	logger   *logging.Logger
	metrics  *monitoring.Metrics
	ids      *id.Generator
	tracer   *tracing.Tracer
	mu       sync.RWMutex
}

type envelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []ServerMessage `json:"errors"`
}

// NewClient creates a one-shot operation client
func NewClient(opts Options) (*Client, error) {
	if opts.Endpoint == "" {
		return nil, fmt.Errorf("endpoint required")
	}

	// retryablehttp supplies a pooled transport; retries stay disabled
	// because every call is a single round trip.
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.Logger = nil

	restyClient := resty.New()
	restyClient.
		SetRetryCount(0).
		SetTransport(retryClient.HTTPClient.Transport).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetJSONMarshaler(sonic.Marshal).
		SetJSONUnmarshaler(sonic.Unmarshal)
	if opts.Timeout > 0 {
		restyClient.SetTimeout(opts.Timeout)
	}
	if opts.UserAgent != "" {
		restyClient.SetHeader("User-Agent", opts.UserAgent)
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if opts.RateLimitRPS > 0 {
		burst := int(opts.RateLimitRPS)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimitRPS), burst)
	}

	ids := opts.IDs
	if ids == nil {
		ids = id.Default()
	}

	return &Client{
		endpoint: opts.Endpoint,
		resty:    restyClient,
		limiter:  limiter,
		tokens:   opts.Tokens,
		attach:   opts.AttachToken,
		logger:   logging.OrNop(opts.Logger).Named("protocol"),
		metrics:  opts.Metrics,
		ids:      ids,
		tracer:   opts.Tracer,
	}, nil
}

// Endpoint returns the fixed endpoint URL
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Tracer returns the span tracer, nil when tracing is off
func (c *Client) Tracer() *tracing.Tracer {
	return c.tracer
}

// SetAttachToken switches bearer attachment on or off
func (c *Client) SetAttachToken(attach bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.attach = attach
}

// Do executes op and returns the raw data payload
func (c *Client) Do(ctx context.Context, op Operation) (json.RawMessage, error) {
	var out json.RawMessage
	err := c.execute(ctx, op, func(data []byte) error {
		out = append(json.RawMessage(nil), data...)
		return nil
	})
	return out, err
}

// Execute runs op and decodes its data payload into T
func Execute[T any](ctx context.Context, c *Client, op Operation) (T, error) {
	var out T
	err := c.execute(ctx, op, func(data []byte) error {
		return sonic.Unmarshal(data, &out)
	})
	return out, err
}

func (c *Client) execute(ctx context.Context, op Operation, decode func([]byte) error) (err error) {
	name := op.Name()
	reqID := c.ids.NewRequestID()
	start := time.Now()
	size := 0

	span, ctx := c.tracer.StartSpan(ctx, name)
	span.SetTag("request_id", reqID.String())

	defer func() {
		c.tracer.End(span, err)

		outcome := "ok"
		if pe, ok := AsError(err); ok {
			outcome = pe.Kind.String()
			fields := []zap.Field{
				zap.String("operation", name),
				zap.String("request_id", reqID.String()),
				zap.String("kind", outcome),
				zap.Int("status", pe.StatusCode),
				zap.Error(err),
			}
			if span != nil {
				fields = append(fields, zap.String("trace", tracing.FormatTrace(span.TraceID, span.SpanID)))
			}
			c.logger.Warn("Operation failed", fields...)
		} else {
			c.logger.Debug("Operation completed",
				zap.String("operation", name),
				zap.String("request_id", reqID.String()),
				zap.Duration("elapsed", time.Since(start)))
		}
		c.metrics.RecordOperation(name, outcome, time.Since(start), size)
	}()

	body, encErr := op.Body()
	if encErr != nil {
		return &Error{Kind: KindEncodeError, Operation: name, Err: encErr}
	}
	size = len(body)

	if waitErr := c.limiter.Wait(ctx); waitErr != nil {
		return &Error{Kind: KindTransportError, Operation: name, Err: fmt.Errorf("rate limit: %w", waitErr)}
	}

	req := c.resty.R().
		SetContext(ctx).
		SetHeader("X-Request-ID", reqID.String()).
		SetBody(body)
	tracing.InjectHeaders(ctx, req.Header)

	c.mu.RLock()
	attach := c.attach
	c.mu.RUnlock()
	if attach && c.tokens != nil {
		if token, ok := c.tokens.Token(); ok {
			req.SetAuthToken(token)
		}
	}

	resp, postErr := req.Post(c.endpoint)
	if postErr != nil {
		return &Error{Kind: KindTransportError, Operation: name, Err: postErr}
	}

	status := resp.StatusCode()
	if status < 200 || status > 299 {
		return &Error{Kind: KindHTTPStatusError, Operation: name, StatusCode: status}
	}

	var env envelope
	if decErr := sonic.Unmarshal(resp.Body(), &env); decErr != nil {
		return &Error{Kind: KindDecodeError, Operation: name, Err: decErr}
	}

	if len(env.Errors) > 0 {
		return &Error{Kind: KindGraphQLError, Operation: name, Messages: env.Errors}
	}

	data := bytes.TrimSpace(env.Data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return &Error{Kind: KindEmptyDataError, Operation: name}
	}

	if decErr := decode(data); decErr != nil {
		return &Error{Kind: KindDecodeError, Operation: name, Err: decErr}
	}
	return nil
}
