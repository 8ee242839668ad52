package zynle

import (
	"context"

	"github.com/shopspring/decimal"

	"zynlepay/pkg/provider"
	"zynlepay/pkg/provider/base"
)

const DefaultCurrency = "ZMW"

// CardPaymentParams describe a card authorization with immediate capture.
type CardPaymentParams struct {
	ReferenceNo string
	Amount      decimal.Decimal
	CardNumber  string
	ExpiryMonth string
	ExpiryYear  string
	CVV         string
	Email       string
	Phone       string

	NameOnCard  string
	Description string
	// Currency defaults to ZMW.
	Currency  string
	FirstName string
	LastName  string
	Address   string
	City      string
	State     string
	ZipCode   string
	Country   string
	RedirectURLs
}

// RunTranAuthCapture charges a card.
func (c *Client) RunTranAuthCapture(ctx context.Context, p CardPaymentParams) (provider.Response, error) {
	if err := base.ValidateReference(c.refs, keyReferenceNo, p.ReferenceNo); err != nil {
		return nil, err
	}
	if err := base.RequirePositive(keyAmount, p.Amount); err != nil {
		return nil, err
	}
	cardNumber := base.NormalizeCardNumber(p.CardNumber)
	required := []struct{ field, value string }{
		{"cardnumber", cardNumber},
		{"expiry_month", p.ExpiryMonth},
		{"expiry_year", p.ExpiryYear},
		{"cvv", p.CVV},
		{"email", p.Email},
		{"phone", p.Phone},
	}
	for _, r := range required {
		if err := base.RequireString(r.field, r.value); err != nil {
			return nil, err
		}
	}

	currency := p.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	data := provider.Payload{
		keyMethod:        MethodTranAuthCapture,
		keyReferenceNo:   p.ReferenceNo,
		keyRequestID:     c.ids.NewID("card"),
		keyTransactionID: c.ids.NewID("txn"),
		keyAmount:        amountValue(p.Amount),
		"currency":       currency,
		"cardnumber":     cardNumber,
		"expiry_month":   p.ExpiryMonth,
		"expiry_year":    p.ExpiryYear,
		"cvv":            p.CVV,
		"email":          p.Email,
		"phone":          p.Phone,
	}
	setOptional(data, "nameoncard", p.NameOnCard)
	setOptional(data, keyDescription, p.Description)
	setOptional(data, "first_name", p.FirstName)
	setOptional(data, "last_name", p.LastName)
	setOptional(data, "address", p.Address)
	setOptional(data, "city", p.City)
	setOptional(data, "state", p.State)
	setOptional(data, "zip_code", p.ZipCode)
	setOptional(data, "country", p.Country)
	p.RedirectURLs.apply(data)

	return c.send(ctx, "", data)
}
