package zynle

import (
	"context"

	"github.com/shopspring/decimal"

	"zynlepay/pkg/provider"
	"zynlepay/pkg/provider/base"
)

// EwalletTransferParams describe a payout to a mobile-money wallet.
type EwalletTransferParams struct {
	ReferenceNo string
	Amount      decimal.Decimal
	ReceiverID  string
}

func (c *Client) RunPayToEwallet(ctx context.Context, p EwalletTransferParams) (provider.Response, error) {
	if err := base.ValidateReference(c.refs, keyReferenceNo, p.ReferenceNo); err != nil {
		return nil, err
	}
	if err := base.RequirePositive(keyAmount, p.Amount); err != nil {
		return nil, err
	}
	if err := base.RequireString("receiver_id", p.ReceiverID); err != nil {
		return nil, err
	}

	return c.send(ctx, "", provider.Payload{
		keyMethod:      MethodPayToEwallet,
		keyReferenceNo: p.ReferenceNo,
		keyAmount:      amountValue(p.Amount),
		"receiver_id":  p.ReceiverID,
		keyRequestID:   c.ids.NewID("ewallet"),
	})
}

func (c *Client) CheckEwalletTransferStatus(ctx context.Context, referenceNo string) (provider.Response, error) {
	return c.statusQuery(ctx, "", MethodEwalletTransferStatus, "ewallet_status", referenceNo)
}
