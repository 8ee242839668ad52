// Package zynle is a client for the ZynlePay JSON API. Every operation is a
// POST of the same authenticated envelope to one endpoint; the "method"
// field of the data block selects what the gateway does.
package zynle

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"zynlepay/pkg/provider"
	"zynlepay/pkg/provider/base"
)

const (
	SandboxURL    = "https://sandbox.zynlepay.com/zynlepay/jsonapi"
	ProductionURL = "https://payments.zynlepay.com/zynlepay/jsonapi/"

	// PaymentStatusPath is where CheckStatus posts, relative to the base URL.
	PaymentStatusPath = "/paymentstatus"

	DefaultServiceID = "1002"
)

// Config holds what New needs to build a client.
type Config struct {
	MerchantID string
	APIID      string
	APIKey     string
	ServiceID  string
	Channel    string

	Sandbox bool
	// BaseURL overrides the sandbox/production URL when set.
	BaseURL string
	// Timeout bounds every request; zero means base.DefaultTimeout.
	Timeout time.Duration
}

// Dispatcher sends an envelope and returns the unwrapped gateway response.
type Dispatcher interface {
	PostJSON(ctx context.Context, endpoint string, payload any) (provider.Response, error)
}

// Client issues ZynlePay operations. It is safe for concurrent use.
type Client struct {
	auth       Credentials
	baseURL    string
	sandbox    bool
	timeout    time.Duration
	dispatcher Dispatcher
	logger     provider.Logger
	ids        provider.IDGenerator
	refs       provider.ReferenceValidator
}

type options struct {
	logger     provider.Logger
	ids        provider.IDGenerator
	refs       provider.ReferenceValidator
	httpClient *http.Client
	dispatcher Dispatcher
}

// Option customizes a Client.
type Option func(*options)

// WithLogger sets the logger. The default discards output.
func WithLogger(l provider.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithIDGenerator replaces the ULID request-identifier generator.
func WithIDGenerator(g provider.IDGenerator) Option {
	return func(o *options) { o.ids = g }
}

// WithReferenceValidator replaces the default reference number rule.
func WithReferenceValidator(v provider.ReferenceValidator) Option {
	return func(o *options) { o.refs = v }
}

// WithHTTPClient sets the underlying HTTP client. Its Timeout is kept when
// non-zero, otherwise the configured timeout applies.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

// WithDispatcher bypasses HTTP entirely.
func WithDispatcher(d Dispatcher) Option {
	return func(o *options) { o.dispatcher = d }
}

// New validates cfg and builds a client. It performs no network access.
func New(cfg Config, opts ...Option) (*Client, error) {
	auth := Credentials{
		MerchantID: cfg.MerchantID,
		APIID:      cfg.APIID,
		APIKey:     cfg.APIKey,
		ServiceID:  cfg.ServiceID,
		Channel:    cfg.Channel,
	}
	if err := auth.validate(); err != nil {
		return nil, err
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = ProductionURL
		if cfg.Sandbox {
			baseURL = SandboxURL
		}
	}
	u, err := url.Parse(baseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, provider.NewInvalidConfiguration("base_url", "Base URL must be an absolute http(s) URL")
	}

	timeout := cfg.Timeout
	if timeout < 0 {
		return nil, provider.NewInvalidConfiguration("timeout", "Timeout cannot be negative")
	}
	if timeout == 0 {
		timeout = base.DefaultTimeout
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = provider.NopLogger{}
	}
	if o.ids == nil {
		o.ids = provider.NewULIDGenerator()
	}
	if o.refs == nil {
		o.refs = base.NewReferenceValidator()
	}
	if o.dispatcher == nil {
		hc := &http.Client{Timeout: timeout}
		if o.httpClient != nil {
			cp := *o.httpClient
			if cp.Timeout == 0 {
				cp.Timeout = timeout
			}
			hc = &cp
		}
		o.dispatcher = base.NewHTTPClient("zynlepay", baseURL, hc, o.logger)
	}

	return &Client{
		auth:       auth,
		baseURL:    baseURL,
		sandbox:    cfg.Sandbox,
		timeout:    timeout,
		dispatcher: o.dispatcher,
		logger:     o.logger,
		ids:        o.ids,
		refs:       o.refs,
	}, nil
}

// Auth returns a copy of the credentials sent with every request.
func (c *Client) Auth() Credentials { return c.auth }

// BaseURL returns the endpoint requests are posted to.
func (c *Client) BaseURL() string { return c.baseURL }

// Sandbox reports whether the client was configured for the sandbox.
func (c *Client) Sandbox() bool { return c.sandbox }

// Timeout returns the per-request time budget.
func (c *Client) Timeout() time.Duration { return c.timeout }

// send wraps data in an envelope and dispatches it.
func (c *Client) send(ctx context.Context, endpoint string, data provider.Payload) (provider.Response, error) {
	fields := logFields(data)
	if err := ctx.Err(); err != nil {
		return nil, provider.NewTransportError("request not sent", err)
	}

	resp, err := c.dispatcher.PostJSON(ctx, endpoint, BuildEnvelope(c.auth, data))
	if err != nil {
		fields["error"] = err.Error()
		c.logger.Error("ZynlePay operation failed", fields)
		return nil, err
	}

	fields["response_code"] = resp.Code()
	c.logger.Info("ZynlePay operation", fields)
	return resp, nil
}

// logFields picks the identifiers worth logging. Card data and credentials
// never leave the payload.
func logFields(data provider.Payload) map[string]any {
	fields := map[string]any{"provider": "zynlepay"}
	for _, k := range []string{keyMethod, keyReferenceNo, keyRequestID, keyTransactionID} {
		if v, ok := data[k]; ok {
			fields[k] = v
		}
	}
	return fields
}
