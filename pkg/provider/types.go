package provider

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Payload is the operation-specific "data" block of a request.
type Payload map[string]any

// Response is a decoded gateway reply. Numbers are kept as json.Number.
type Response map[string]any

// ReferenceValidator checks caller-supplied reference numbers.
type ReferenceValidator interface {
	IsValid(reference string) bool
}

// String returns the value under key rendered as text, or "" when absent.
func (r Response) String(key string) string {
	s, _ := StringValue(r[key])
	return s
}

// Code returns the gateway response_code.
func (r Response) Code() string { return r.String("response_code") }

// Description returns the gateway response_description.
func (r Response) Description() string { return r.String("response_description") }

// StringValue renders scalar JSON values as text. It reports false for nil.
func StringValue(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case bool:
		return strconv.FormatBool(t), true
	default:
		return fmt.Sprint(t), true
	}
}
