package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"zynlepay/pkg/provider"
	"zynlepay/pkg/provider/zynle"
)

// PaymentGateway is the part of *zynle.Client the API exposes.
type PaymentGateway interface {
	RunBillPayment(ctx context.Context, p zynle.BillPaymentParams) (provider.Response, error)
	RunTranAuthCapture(ctx context.Context, p zynle.CardPaymentParams) (provider.Response, error)
	CheckStatusWithRetry(ctx context.Context, referenceNo string, maxAttempts int, delay time.Duration) (provider.Response, error)
	RunPayToEwallet(ctx context.Context, p zynle.EwalletTransferParams) (provider.Response, error)
	CheckEwalletTransferStatus(ctx context.Context, referenceNo string) (provider.Response, error)
	RunPayToBank(ctx context.Context, p zynle.BankTransferParams) (provider.Response, error)
	CheckBankTransferStatus(ctx context.Context, referenceNo string) (provider.Response, error)
	CheckBalance(ctx context.Context) (provider.Response, error)
}

type redirectReq struct {
	CallbackURL string `json:"callback_url"`
	SuccessURL  string `json:"success_url"`
	FailURL     string `json:"fail_url"`
}

func (r redirectReq) urls() zynle.RedirectURLs {
	return zynle.RedirectURLs{CallbackURL: r.CallbackURL, SuccessURL: r.SuccessURL, FailURL: r.FailURL}
}

type momoReq struct {
	SenderID    string          `json:"sender_id"`
	ReferenceNo string          `json:"reference_no"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	redirectReq
}

type cardReq struct {
	ReferenceNo string          `json:"reference_no"`
	Amount      decimal.Decimal `json:"amount"`
	CardNumber  string          `json:"card_number"`
	ExpiryMonth string          `json:"expiry_month"`
	ExpiryYear  string          `json:"expiry_year"`
	CVV         string          `json:"cvv"`
	Email       string          `json:"email"`
	Phone       string          `json:"phone"`
	NameOnCard  string          `json:"name_on_card"`
	Description string          `json:"description"`
	Currency    string          `json:"currency"`
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	Address     string          `json:"address"`
	City        string          `json:"city"`
	State       string          `json:"state"`
	ZipCode     string          `json:"zip_code"`
	Country     string          `json:"country"`
	redirectReq
}

type ewalletReq struct {
	ReferenceNo string          `json:"reference_no"`
	Amount      decimal.Decimal `json:"amount"`
	ReceiverID  string          `json:"receiver_id"`
}

type bankReq struct {
	ReferenceNo string          `json:"reference_no"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	BankName    string          `json:"bank_name"`
	ReceiverID  string          `json:"receiver_id"`
	redirectReq
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, r, http.StatusBadRequest, "bad json")
		return false
	}
	return true
}

// reply sends resp or maps err, logging gateway failures.
func reply(w http.ResponseWriter, r *http.Request, op, message string, resp provider.Response, err error) {
	if err != nil {
		log.Error().Err(err).Str("operation", op).Msg("zynlepay call failed")
		respondProviderError(w, r, err)
		return
	}
	respondOK(w, r, message, resp)
}

func CreateMomoPayment(gw PaymentGateway) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in momoReq
		if !decode(w, r, &in) {
			return
		}
		resp, err := gw.RunBillPayment(r.Context(), zynle.BillPaymentParams{
			SenderID:     in.SenderID,
			ReferenceNo:  in.ReferenceNo,
			Amount:       in.Amount,
			Description:  in.Description,
			RedirectURLs: in.urls(),
		})
		reply(w, r, zynle.MethodBillPayment, "Payment initiated", resp, err)
	}
}

func CreateCardPayment(gw PaymentGateway) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in cardReq
		if !decode(w, r, &in) {
			return
		}
		resp, err := gw.RunTranAuthCapture(r.Context(), zynle.CardPaymentParams{
			ReferenceNo:  in.ReferenceNo,
			Amount:       in.Amount,
			CardNumber:   in.CardNumber,
			ExpiryMonth:  in.ExpiryMonth,
			ExpiryYear:   in.ExpiryYear,
			CVV:          in.CVV,
			Email:        in.Email,
			Phone:        in.Phone,
			NameOnCard:   in.NameOnCard,
			Description:  in.Description,
			Currency:     in.Currency,
			FirstName:    in.FirstName,
			LastName:     in.LastName,
			Address:      in.Address,
			City:         in.City,
			State:        in.State,
			ZipCode:      in.ZipCode,
			Country:      in.Country,
			RedirectURLs: in.urls(),
		})
		reply(w, r, zynle.MethodTranAuthCapture, "Card payment processed", resp, err)
	}
}

// PaymentStatus polls the gateway with the configured retry policy.
func PaymentStatus(gw PaymentGateway, attempts int, delay time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ref := chi.URLParam(r, "reference")
		resp, err := gw.CheckStatusWithRetry(r.Context(), ref, attempts, delay)
		reply(w, r, zynle.MethodPaymentStatus, "Payment status retrieved", resp, err)
	}
}

func CreateEwalletTransfer(gw PaymentGateway) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in ewalletReq
		if !decode(w, r, &in) {
			return
		}
		resp, err := gw.RunPayToEwallet(r.Context(), zynle.EwalletTransferParams{
			ReferenceNo: in.ReferenceNo,
			Amount:      in.Amount,
			ReceiverID:  in.ReceiverID,
		})
		reply(w, r, zynle.MethodPayToEwallet, "Transfer initiated", resp, err)
	}
}

func EwalletTransferStatus(gw PaymentGateway) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := gw.CheckEwalletTransferStatus(r.Context(), chi.URLParam(r, "reference"))
		reply(w, r, zynle.MethodEwalletTransferStatus, "Transfer status retrieved", resp, err)
	}
}

func CreateBankTransfer(gw PaymentGateway) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in bankReq
		if !decode(w, r, &in) {
			return
		}
		resp, err := gw.RunPayToBank(r.Context(), zynle.BankTransferParams{
			ReferenceNo:  in.ReferenceNo,
			Amount:       in.Amount,
			Description:  in.Description,
			BankName:     in.BankName,
			ReceiverID:   in.ReceiverID,
			RedirectURLs: in.urls(),
		})
		reply(w, r, zynle.MethodPayToBank, "Transfer initiated", resp, err)
	}
}

func BankTransferStatus(gw PaymentGateway) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := gw.CheckBankTransferStatus(r.Context(), chi.URLParam(r, "reference"))
		reply(w, r, zynle.MethodBankTransferStatus, "Transfer status retrieved", resp, err)
	}
}

func Balance(gw PaymentGateway) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := gw.CheckBalance(r.Context())
		reply(w, r, zynle.MethodBalance, "Balance retrieved", resp, err)
	}
}
