package zynle

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"zynlepay/pkg/provider"
)

// fakeDispatcher records envelopes and replays scripted results.
type fakeDispatcher struct {
	mu        sync.Mutex
	calls     []call
	responses []result
}

type call struct {
	endpoint string
	envelope Envelope
}

type result struct {
	resp provider.Response
	err  error
}

func (f *fakeDispatcher) PostJSON(_ context.Context, endpoint string, payload any) (provider.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{endpoint: endpoint, envelope: payload.(Envelope)})
	if len(f.responses) == 0 {
		return provider.Response{"response_code": "100"}, nil
	}
	r := f.responses[0]
	if len(f.responses) > 1 {
		f.responses = f.responses[1:]
	}
	return r.resp, r.err
}

func (f *fakeDispatcher) last(t *testing.T) call {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.calls)
	return f.calls[len(f.calls)-1]
}

func (f *fakeDispatcher) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func testConfig() Config {
	return Config{
		MerchantID: "M001",
		APIID:      "API001",
		APIKey:     "secret-key",
		ServiceID:  DefaultServiceID,
		Channel:    "momo",
		Sandbox:    true,
	}
}

func newTestClient(t *testing.T, opts ...Option) (*Client, *fakeDispatcher) {
	t.Helper()
	fd := &fakeDispatcher{}
	opts = append([]Option{WithDispatcher(fd), WithIDGenerator(&provider.SequenceGenerator{})}, opts...)
	c, err := New(testConfig(), opts...)
	require.NoError(t, err)
	return c, fd
}

func TestNew_RequiresEveryCredential(t *testing.T) {
	cases := map[string]func(*Config){
		"merchant_id": func(c *Config) { c.MerchantID = "" },
		"api_id":      func(c *Config) { c.APIID = "" },
		"api_key":     func(c *Config) { c.APIKey = "" },
		"channel":     func(c *Config) { c.Channel = "" },
		"service_id":  func(c *Config) { c.ServiceID = "" },
	}
	for field, mutate := range cases {
		t.Run(field, func(t *testing.T) {
			cfg := testConfig()
			mutate(&cfg)
			c, err := New(cfg)
			require.Nil(t, c)
			var perr *provider.Error
			require.ErrorAs(t, err, &perr)
			require.Equal(t, provider.ErrInvalidConfiguration, perr.Kind)
			require.Equal(t, field, perr.Field)
		})
	}
}

func TestNew_EmptyAPIKeyNeverTouchesNetwork(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { hits++ }))
	defer srv.Close()

	cfg := testConfig()
	cfg.APIKey = ""
	cfg.BaseURL = srv.URL
	_, err := New(cfg)
	require.True(t, provider.IsKind(err, provider.ErrInvalidConfiguration))
	require.Equal(t, 0, hits)
}

func TestNew_BaseURLSelection(t *testing.T) {
	cfg := testConfig()
	c, err := New(cfg)
	require.NoError(t, err)
	require.Equal(t, SandboxURL, c.BaseURL())
	require.True(t, c.Sandbox())

	cfg.Sandbox = false
	c, err = New(cfg)
	require.NoError(t, err)
	require.Equal(t, ProductionURL, c.BaseURL())

	cfg.BaseURL = "http://localhost:9000/jsonapi"
	c, err = New(cfg)
	require.NoError(t, err)
	require.Equal(t, "http://localhost:9000/jsonapi", c.BaseURL())

	cfg.BaseURL = "ftp://example.com"
	_, err = New(cfg)
	require.True(t, provider.IsKind(err, provider.ErrInvalidConfiguration))
}

func TestNew_Defaults(t *testing.T) {
	c, err := New(testConfig())
	require.NoError(t, err)
	require.Equal(t, 30*time.Second, c.Timeout())
	require.Equal(t, Credentials{
		MerchantID: "M001",
		APIID:      "API001",
		APIKey:     "secret-key",
		ServiceID:  "1002",
		Channel:    "momo",
	}, c.Auth())
}

func TestBuildEnvelope_Deterministic(t *testing.T) {
	auth := testConfig()
	creds := Credentials{MerchantID: auth.MerchantID, APIID: auth.APIID, APIKey: auth.APIKey, ServiceID: auth.ServiceID, Channel: auth.Channel}
	data := provider.Payload{"method": "checkBalance", "request_id": "balance_000001"}

	a, err := json.Marshal(BuildEnvelope(creds, data))
	require.NoError(t, err)
	b, err := json.Marshal(BuildEnvelope(creds, data))
	require.NoError(t, err)
	require.Equal(t, a, b)

	require.JSONEq(t, `{
		"auth": {"merchant_id":"M001","api_id":"API001","api_key":"secret-key","service_id":"1002","channel":"momo"},
		"data": {"method":"checkBalance","request_id":"balance_000001"},
		"userdata": {"udf1":"","udf2":"","udf3":"","udf4":"","udf5":""}
	}`, string(a))
}

func TestAdapters_MethodTagAndUniqueRequestID(t *testing.T) {
	c, fd := newTestClient(t, WithIDGenerator(provider.NewULIDGenerator()))
	ctx := context.Background()
	amount := decimal.RequireFromString("150.50")

	ops := []struct {
		method   string
		endpoint string
		run      func() (provider.Response, error)
	}{
		{MethodBillPayment, "", func() (provider.Response, error) {
			return c.RunBillPayment(ctx, BillPaymentParams{SenderID: "260970000001", ReferenceNo: "REF-00001", Amount: amount})
		}},
		{MethodPaymentStatus, "", func() (provider.Response, error) { return c.CheckPaymentStatus(ctx, "REF-00001") }},
		{MethodPaymentStatus, PaymentStatusPath, func() (provider.Response, error) { return c.CheckStatus(ctx, "REF-00001") }},
		{MethodTranAuthCapture, "", func() (provider.Response, error) {
			return c.RunTranAuthCapture(ctx, CardPaymentParams{
				ReferenceNo: "REF-00002", Amount: amount, CardNumber: "4111111111111111",
				ExpiryMonth: "12", ExpiryYear: "2030", CVV: "123", Email: "a@example.com", Phone: "260970000001",
			})
		}},
		{MethodPayToEwallet, "", func() (provider.Response, error) {
			return c.RunPayToEwallet(ctx, EwalletTransferParams{ReferenceNo: "REF-00003", Amount: amount, ReceiverID: "260970000002"})
		}},
		{MethodEwalletTransferStatus, "", func() (provider.Response, error) { return c.CheckEwalletTransferStatus(ctx, "REF-00003") }},
		{MethodPayToBank, "", func() (provider.Response, error) {
			return c.RunPayToBank(ctx, BankTransferParams{ReferenceNo: "REF-00004", Amount: amount, Description: "payout", BankName: "ZANACO", ReceiverID: "0123456789"})
		}},
		{MethodBankTransferStatus, "", func() (provider.Response, error) { return c.CheckBankTransferStatus(ctx, "REF-00004") }},
		{MethodBalance, "", func() (provider.Response, error) { return c.CheckBalance(ctx) }},
	}

	seen := map[string]bool{}
	for _, op := range ops {
		t.Run(op.method, func(t *testing.T) {
			for i := 0; i < 2; i++ {
				resp, err := op.run()
				require.NoError(t, err)
				require.Equal(t, "100", resp.Code())

				sent := fd.last(t)
				require.Equal(t, op.endpoint, sent.endpoint)
				require.Equal(t, op.method, sent.envelope.Data["method"])
				id, _ := sent.envelope.Data["request_id"].(string)
				require.NotEmpty(t, id)
				require.False(t, seen[id], "request_id reused: %s", id)
				seen[id] = true
			}
		})
	}
}

func TestRunBillPayment_Payload(t *testing.T) {
	c, fd := newTestClient(t)
	_, err := c.RunBillPayment(context.Background(), BillPaymentParams{
		SenderID:     "260970000001",
		ReferenceNo:  "REF-12345",
		Amount:       decimal.RequireFromString("10.05"),
		Description:  "Order 42",
		RedirectURLs: RedirectURLs{CallbackURL: "https://shop.example.com/hook"},
	})
	require.NoError(t, err)

	data := fd.last(t).envelope.Data
	require.Equal(t, provider.Payload{
		"method":       "runBillPayment",
		"sender_id":    "260970000001",
		"reference_no": "REF-12345",
		"amount":       json.Number("10.05"),
		"request_id":   "req_000001",
		"description":  "Order 42",
		"callback_url": "https://shop.example.com/hook",
	}, data)
	require.NotContains(t, data, "success_url")
	require.NotContains(t, data, "fail_url")
}

func TestRunTranAuthCapture_NormalizesCardNumber(t *testing.T) {
	c, fd := newTestClient(t)
	params := CardPaymentParams{
		ReferenceNo: "REF-CARD1",
		Amount:      decimal.NewFromInt(25),
		ExpiryMonth: "01",
		ExpiryYear:  "2029",
		CVV:         "999",
		Email:       "buyer@example.com",
		Phone:       "260970000001",
	}

	params.CardNumber = "4111 1111-1111 1111"
	_, err := c.RunTranAuthCapture(context.Background(), params)
	require.NoError(t, err)
	spaced := fd.last(t).envelope.Data

	params.CardNumber = "4111111111111111"
	_, err = c.RunTranAuthCapture(context.Background(), params)
	require.NoError(t, err)
	plain := fd.last(t).envelope.Data

	require.Equal(t, "4111111111111111", spaced["cardnumber"])
	require.Equal(t, spaced["cardnumber"], plain["cardnumber"])
	require.Equal(t, "ZMW", spaced["currency"])
	require.Equal(t, "card_000001", spaced["request_id"])
	require.Equal(t, "txn_000002", spaced["transaction_id"])
	require.NotContains(t, spaced, "nameoncard")
	require.NotContains(t, spaced, "callback_url")
}

func TestAdapters_RejectInvalidInputBeforeSending(t *testing.T) {
	c, fd := newTestClient(t)
	ctx := context.Background()
	one := decimal.NewFromInt(1)

	cases := []struct {
		name  string
		field string
		run   func() error
	}{
		{"bill missing sender", "sender_id", func() error {
			_, err := c.RunBillPayment(ctx, BillPaymentParams{ReferenceNo: "REF-00001", Amount: one})
			return err
		}},
		{"bill bad reference", "reference_no", func() error {
			_, err := c.RunBillPayment(ctx, BillPaymentParams{SenderID: "2609", ReferenceNo: "bad ref!", Amount: one})
			return err
		}},
		{"bill zero amount", "amount", func() error {
			_, err := c.RunBillPayment(ctx, BillPaymentParams{SenderID: "2609", ReferenceNo: "REF-00001"})
			return err
		}},
		{"status empty reference", "reference_no", func() error {
			_, err := c.CheckStatus(ctx, "")
			return err
		}},
		{"card missing cvv", "cvv", func() error {
			_, err := c.RunTranAuthCapture(ctx, CardPaymentParams{
				ReferenceNo: "REF-00001", Amount: one, CardNumber: "4111", ExpiryMonth: "1", ExpiryYear: "30",
				Email: "a@b.c", Phone: "1",
			})
			return err
		}},
		{"card blank number", "cardnumber", func() error {
			_, err := c.RunTranAuthCapture(ctx, CardPaymentParams{ReferenceNo: "REF-00001", Amount: one, CardNumber: " - "})
			return err
		}},
		{"ewallet negative amount", "amount", func() error {
			_, err := c.RunPayToEwallet(ctx, EwalletTransferParams{ReferenceNo: "REF-00001", Amount: decimal.NewFromInt(-5), ReceiverID: "x"})
			return err
		}},
		{"ewallet missing receiver", "receiver_id", func() error {
			_, err := c.RunPayToEwallet(ctx, EwalletTransferParams{ReferenceNo: "REF-00001", Amount: one})
			return err
		}},
		{"bank missing bank name", "bank_name", func() error {
			_, err := c.RunPayToBank(ctx, BankTransferParams{ReferenceNo: "REF-00001", Amount: one, Description: "d", ReceiverID: "r"})
			return err
		}},
		{"bank status short reference", "reference_no", func() error {
			_, err := c.CheckBankTransferStatus(ctx, "ab")
			return err
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.run()
			var perr *provider.Error
			require.ErrorAs(t, err, &perr)
			require.Equal(t, provider.ErrInvalidArgument, perr.Kind)
			require.Equal(t, tc.field, perr.Field)
		})
	}
	require.Equal(t, 0, fd.count())
}

type allowAll struct{}

func (allowAll) IsValid(string) bool { return true }

func TestWithReferenceValidator(t *testing.T) {
	c, fd := newTestClient(t, WithReferenceValidator(allowAll{}))
	_, err := c.CheckPaymentStatus(context.Background(), "x")
	require.NoError(t, err)
	require.Equal(t, "x", fd.last(t).envelope.Data["reference_no"])
}

func TestSend_CancelledContext(t *testing.T) {
	c, fd := newTestClient(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.CheckBalance(ctx)
	require.True(t, provider.IsKind(err, provider.ErrTransport))
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 0, fd.count())
}

type recordingLogger struct {
	mu      sync.Mutex
	entries []map[string]any
}

func (l *recordingLogger) record(fields map[string]any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, fields)
}

func (l *recordingLogger) Info(_ string, fields map[string]any)    { l.record(fields) }
func (l *recordingLogger) Warning(_ string, fields map[string]any) { l.record(fields) }
func (l *recordingLogger) Error(_ string, fields map[string]any)   { l.record(fields) }

func TestSend_LogsWithoutSecrets(t *testing.T) {
	logger := &recordingLogger{}
	c, _ := newTestClient(t, WithLogger(logger))
	_, err := c.RunTranAuthCapture(context.Background(), CardPaymentParams{
		ReferenceNo: "REF-00001", Amount: decimal.NewFromInt(1), CardNumber: "4111111111111111",
		ExpiryMonth: "1", ExpiryYear: "30", CVV: "123", Email: "a@b.c", Phone: "1",
	})
	require.NoError(t, err)
	require.Len(t, logger.entries, 1)

	raw, err := json.Marshal(logger.entries[0])
	require.NoError(t, err)
	require.NotContains(t, string(raw), "4111111111111111")
	require.NotContains(t, string(raw), "secret-key")
	require.Equal(t, "REF-00001", logger.entries[0]["reference_no"])
}

func TestEndToEnd_HTTP(t *testing.T) {
	var envelope map[string]any
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		b, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(b, &envelope)
		_, _ = w.Write([]byte(`{"response":{"response_code":"100","reference_no":"REF-00001","status":"SUCCESS"}}`))
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.BaseURL = srv.URL + "/zynlepay/jsonapi/"
	c, err := New(cfg, WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	resp, err := c.CheckStatus(context.Background(), "REF-00001")
	require.NoError(t, err)
	require.Equal(t, "SUCCESS", resp.String("status"))
	require.Equal(t, "/zynlepay/jsonapi/paymentstatus", path)

	auth := envelope["auth"].(map[string]any)
	require.Equal(t, "M001", auth["merchant_id"])
	require.Equal(t, "1002", auth["service_id"])
	data := envelope["data"].(map[string]any)
	require.Equal(t, "checkPaymentStatus", data["method"])
	require.Len(t, envelope["userdata"], 5)
}

func TestCheckBalance_NonObjectResponseIsProtocolError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response":"Invalid credentials"}`))
	}))
	defer srv.Close()

	cfg := testConfig()
	cfg.BaseURL = srv.URL
	c, err := New(cfg, WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	resp, err := c.CheckBalance(context.Background())
	require.Nil(t, resp)
	require.True(t, provider.IsKind(err, provider.ErrProtocol), "got %v", err)
}
