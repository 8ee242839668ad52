package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"zynlepay/pkg/provider"
)

// maxBodyBytes caps every inbound request body.
const maxBodyBytes = 1 << 20

// APIResponse is the reply envelope of every endpoint.
type APIResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func respondOK(w http.ResponseWriter, r *http.Request, message string, data any) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, APIResponse{Status: "success", Message: message, Data: data})
}

func respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	render.Status(r, status)
	render.JSON(w, r, APIResponse{Status: "error", Message: message})
}

// respondProviderError maps SDK error kinds to HTTP statuses.
func respondProviderError(w http.ResponseWriter, r *http.Request, err error) {
	var perr *provider.Error
	if !errors.As(err, &perr) {
		respondError(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	respondError(w, r, statusForKind(perr.Kind), perr.Error())
}

func statusForKind(kind provider.ErrorKind) int {
	switch kind {
	case provider.ErrInvalidArgument, provider.ErrInvalidPayload:
		return http.StatusBadRequest
	case provider.ErrTransport:
		return http.StatusGatewayTimeout
	case provider.ErrRemote, provider.ErrProtocol:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
