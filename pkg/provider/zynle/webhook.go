package zynle

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"zynlepay/pkg/provider"
)

type WebhookStatus string

const (
	WebhookSuccess   WebhookStatus = "success"
	WebhookInitiated WebhookStatus = "initiated"
	WebhookFailed    WebhookStatus = "failed"
)

const (
	ActionCompletePayment   = "complete_payment"
	ActionAwaitConfirmation = "await_confirmation"
	ActionCancelOrder       = "cancel_order"
)

const (
	codeSuccess   = 100
	codeInitiated = 120
)

// WebhookOutcome is what a merchant should do with a notification.
type WebhookOutcome struct {
	Status      WebhookStatus `json:"status"`
	ReferenceNo string        `json:"reference_no"`
	Action      string        `json:"action"`
	Error       string        `json:"error,omitempty"`
}

// ClassifyWebhook maps a gateway notification to an outcome.
//
// Fields are read from the object under "response". Payloads without a
// "response" key are read flat from the root, the shape form posts use.
func ClassifyWebhook(payload map[string]any) (WebhookOutcome, error) {
	fields := payload
	if raw, ok := payload["response"]; ok {
		nested, ok := raw.(map[string]any)
		if !ok {
			return WebhookOutcome{}, provider.NewInvalidPayload("invalid webhook payload: response must be an object")
		}
		fields = nested
	}

	code, ok := provider.StringValue(fields["response_code"])
	if !ok {
		return WebhookOutcome{}, provider.NewInvalidPayload("invalid webhook payload: missing response_code")
	}
	ref, ok := provider.StringValue(fields["reference_no"])
	if !ok {
		return WebhookOutcome{}, provider.NewInvalidPayload("invalid webhook payload: missing reference_no")
	}

	switch {
	case codeEquals(code, codeSuccess):
		return WebhookOutcome{Status: WebhookSuccess, ReferenceNo: ref, Action: ActionCompletePayment}, nil
	case codeEquals(code, codeInitiated):
		return WebhookOutcome{Status: WebhookInitiated, ReferenceNo: ref, Action: ActionAwaitConfirmation}, nil
	}

	reason, _ := provider.StringValue(fields["response_description"])
	if reason == "" {
		reason = "Unknown error"
	}
	return WebhookOutcome{Status: WebhookFailed, ReferenceNo: ref, Action: ActionCancelOrder, Error: reason}, nil
}

// codeEquals compares numerically when code parses as a number, so "100",
// 100 and "100.0" all match.
func codeEquals(code string, want int) bool {
	code = strings.TrimSpace(code)
	if f, err := strconv.ParseFloat(code, 64); err == nil {
		return f == float64(want)
	}
	return code == strconv.Itoa(want)
}

// ParseWebhook decodes a JSON notification body and classifies it.
func ParseWebhook(body []byte) (WebhookOutcome, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var payload map[string]any
	if err := dec.Decode(&payload); err != nil || payload == nil {
		return WebhookOutcome{}, provider.NewInvalidPayload("invalid webhook payload: body is not a JSON object")
	}
	if dec.More() {
		return WebhookOutcome{}, provider.NewInvalidPayload("invalid webhook payload: trailing data after JSON object")
	}
	return ClassifyWebhook(payload)
}

// WebhookPayloadFromForm turns form fields into a payload. Keys written as
// response[name] are collected under "response".
func WebhookPayloadFromForm(form url.Values) map[string]any {
	payload := make(map[string]any, len(form))
	var nested map[string]any
	for key, values := range form {
		if len(values) == 0 {
			continue
		}
		if name, ok := strings.CutPrefix(key, "response["); ok && strings.HasSuffix(name, "]") {
			if nested == nil {
				nested = make(map[string]any)
			}
			nested[strings.TrimSuffix(name, "]")] = values[0]
			continue
		}
		payload[key] = values[0]
	}
	if nested != nil {
		payload["response"] = nested
	}
	return payload
}
