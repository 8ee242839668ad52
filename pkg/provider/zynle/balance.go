package zynle

import (
	"context"

	"zynlepay/pkg/provider"
)

// CheckBalance returns the merchant wallet balance.
func (c *Client) CheckBalance(ctx context.Context) (provider.Response, error) {
	return c.send(ctx, "", provider.Payload{
		keyMethod:    MethodBalance,
		keyRequestID: c.ids.NewID("balance"),
	})
}
