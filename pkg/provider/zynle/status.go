package zynle

import (
	"context"

	"zynlepay/pkg/provider"
)

// CheckStatus queries any payment by reference at the dedicated
// payment-status endpoint.
func (c *Client) CheckStatus(ctx context.Context, referenceNo string) (provider.Response, error) {
	return c.statusQuery(ctx, PaymentStatusPath, MethodPaymentStatus, "status", referenceNo)
}
