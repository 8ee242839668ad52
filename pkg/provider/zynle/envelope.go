package zynle

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"zynlepay/pkg/provider"
)

// Payload keys shared by several operations.
const (
	keyMethod        = "method"
	keyReferenceNo   = "reference_no"
	keyRequestID     = "request_id"
	keyTransactionID = "transaction_id"
	keyAmount        = "amount"
	keyDescription   = "description"
	keyCallbackURL   = "callback_url"
	keySuccessURL    = "success_url"
	keyFailURL       = "fail_url"
)

// Method tags understood by the gateway.
const (
	MethodBillPayment           = "runBillPayment"
	MethodPaymentStatus         = "checkPaymentStatus"
	MethodTranAuthCapture       = "runTranAuthCapture"
	MethodPayToEwallet          = "runPayToEwallet"
	MethodEwalletTransferStatus = "checkEwalletTransferStatus"
	MethodPayToBank             = "runPayToBank"
	MethodBankTransferStatus    = "checkBankTransferStatus"
	MethodBalance               = "checkBalance"
)

// Credentials authenticate every request. The zero value is invalid.
type Credentials struct {
	MerchantID string `json:"merchant_id"`
	APIID      string `json:"api_id"`
	APIKey     string `json:"api_key"`
	ServiceID  string `json:"service_id"`
	Channel    string `json:"channel"`
}

func (c Credentials) validate() error {
	checks := []struct {
		field, value, name string
	}{
		{"merchant_id", c.MerchantID, "Merchant ID"},
		{"api_id", c.APIID, "API ID"},
		{"api_key", c.APIKey, "API key"},
		{"channel", c.Channel, "Channel"},
		{"service_id", c.ServiceID, "Service ID"},
	}
	for _, ch := range checks {
		if ch.value == "" {
			return provider.NewInvalidConfiguration(ch.field, ch.name+" cannot be empty")
		}
	}
	return nil
}

// UserData is a block of extension slots the gateway reserves. They are
// always sent empty.
type UserData struct {
	UDF1 string `json:"udf1"`
	UDF2 string `json:"udf2"`
	UDF3 string `json:"udf3"`
	UDF4 string `json:"udf4"`
	UDF5 string `json:"udf5"`
}

// Envelope is the JSON body of every request.
type Envelope struct {
	Auth     Credentials      `json:"auth"`
	Data     provider.Payload `json:"data"`
	UserData UserData         `json:"userdata"`
}

// BuildEnvelope wraps data with auth and the empty userdata block.
func BuildEnvelope(auth Credentials, data provider.Payload) Envelope {
	return Envelope{Auth: auth, Data: data}
}

// RedirectURLs are optional notification and browser redirect targets.
type RedirectURLs struct {
	CallbackURL string
	SuccessURL  string
	FailURL     string
}

func (u RedirectURLs) apply(p provider.Payload) {
	setOptional(p, keyCallbackURL, u.CallbackURL)
	setOptional(p, keySuccessURL, u.SuccessURL)
	setOptional(p, keyFailURL, u.FailURL)
}

// setOptional adds key only for non-empty values; the gateway expects
// missing keys rather than nulls.
func setOptional(p provider.Payload, key, value string) {
	if value != "" {
		p[key] = value
	}
}

// amountValue renders a decimal as a JSON number without float rounding.
func amountValue(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}
