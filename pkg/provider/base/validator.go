package base

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"zynlepay/pkg/provider"
)

var referencePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ReferenceValidator accepts references of letters, digits, '-' and '_'
// within a length window. It never rewrites its input.
type ReferenceValidator struct {
	minLen int
	maxLen int
}

// NewReferenceValidator returns the gateway's rule: 5 to 100 characters.
func NewReferenceValidator() *ReferenceValidator {
	return &ReferenceValidator{minLen: 5, maxLen: 100}
}

func (v *ReferenceValidator) IsValid(reference string) bool {
	if reference == "" {
		return false
	}
	if len(reference) < v.minLen || len(reference) > v.maxLen {
		return false
	}
	return referencePattern.MatchString(reference)
}

// ValidateReference checks a reference number with rv and names field in
// the returned error.
func ValidateReference(rv provider.ReferenceValidator, field, reference string) error {
	if reference == "" {
		return provider.NewInvalidArgument(field, fmt.Sprintf("%s cannot be empty", field))
	}
	if !rv.IsValid(reference) {
		return provider.NewInvalidArgument(field, fmt.Sprintf("%s has an invalid format", field))
	}
	return nil
}

// RequireString rejects empty or blank values.
func RequireString(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return provider.NewInvalidArgument(field, fmt.Sprintf("%s cannot be empty", field))
	}
	return nil
}

// RequirePositive rejects amounts that are zero or negative.
func RequirePositive(field string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return provider.NewInvalidArgument(field, fmt.Sprintf("%s must be greater than 0", field))
	}
	return nil
}

var cardNumberCleaner = strings.NewReplacer(" ", "", "-", "")

// NormalizeCardNumber strips spaces and hyphens from a card number.
func NormalizeCardNumber(number string) string {
	return cardNumberCleaner.Replace(number)
}
