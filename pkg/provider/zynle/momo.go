package zynle

import (
	"context"

	"github.com/shopspring/decimal"

	"zynlepay/pkg/provider"
	"zynlepay/pkg/provider/base"
)

// BillPaymentParams describe a mobile-money deposit.
type BillPaymentParams struct {
	SenderID    string
	ReferenceNo string
	Amount      decimal.Decimal
	Description string
	RedirectURLs
}

// RunBillPayment asks the payer's mobile-money wallet to approve a payment.
func (c *Client) RunBillPayment(ctx context.Context, p BillPaymentParams) (provider.Response, error) {
	if err := base.RequireString("sender_id", p.SenderID); err != nil {
		return nil, err
	}
	if err := base.ValidateReference(c.refs, keyReferenceNo, p.ReferenceNo); err != nil {
		return nil, err
	}
	if err := base.RequirePositive(keyAmount, p.Amount); err != nil {
		return nil, err
	}

	data := provider.Payload{
		keyMethod:      MethodBillPayment,
		"sender_id":    p.SenderID,
		keyReferenceNo: p.ReferenceNo,
		keyAmount:      amountValue(p.Amount),
		keyRequestID:   c.ids.NewID("req"),
	}
	setOptional(data, keyDescription, p.Description)
	p.RedirectURLs.apply(data)

	return c.send(ctx, "", data)
}

// CheckPaymentStatus queries a mobile-money payment at the base endpoint.
func (c *Client) CheckPaymentStatus(ctx context.Context, referenceNo string) (provider.Response, error) {
	return c.statusQuery(ctx, "", MethodPaymentStatus, "status", referenceNo)
}

// statusQuery is shared by every "check*Status" operation.
func (c *Client) statusQuery(ctx context.Context, endpoint, method, prefix, referenceNo string) (provider.Response, error) {
	if err := base.ValidateReference(c.refs, keyReferenceNo, referenceNo); err != nil {
		return nil, err
	}
	return c.send(ctx, endpoint, provider.Payload{
		keyMethod:      method,
		keyReferenceNo: referenceNo,
		keyRequestID:   c.ids.NewID(prefix),
	})
}
