package zynle

import (
	"context"

	"github.com/shopspring/decimal"

	"zynlepay/pkg/provider"
	"zynlepay/pkg/provider/base"
)

// BankTransferParams describe a payout from the merchant wallet to a bank
// account.
type BankTransferParams struct {
	ReferenceNo string
	Amount      decimal.Decimal
	Description string
	BankName    string
	ReceiverID  string
	RedirectURLs
}

func (c *Client) RunPayToBank(ctx context.Context, p BankTransferParams) (provider.Response, error) {
	if err := base.ValidateReference(c.refs, keyReferenceNo, p.ReferenceNo); err != nil {
		return nil, err
	}
	if err := base.RequirePositive(keyAmount, p.Amount); err != nil {
		return nil, err
	}
	for _, r := range []struct{ field, value string }{
		{keyDescription, p.Description},
		{"bank_name", p.BankName},
		{"receiver_id", p.ReceiverID},
	} {
		if err := base.RequireString(r.field, r.value); err != nil {
			return nil, err
		}
	}

	data := provider.Payload{
		keyMethod:      MethodPayToBank,
		keyReferenceNo: p.ReferenceNo,
		keyAmount:      amountValue(p.Amount),
		keyDescription: p.Description,
		"bank_name":    p.BankName,
		"receiver_id":  p.ReceiverID,
		keyRequestID:   c.ids.NewID("bank"),
	}
	p.RedirectURLs.apply(data)

	return c.send(ctx, "", data)
}

func (c *Client) CheckBankTransferStatus(ctx context.Context, referenceNo string) (provider.Response, error) {
	return c.statusQuery(ctx, "", MethodBankTransferStatus, "bank_status", referenceNo)
}
