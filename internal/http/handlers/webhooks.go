package handlers

import (
	"io"
	"mime"
	"net/http"

	"github.com/rs/zerolog/log"

	"zynlepay/pkg/provider/zynle"
)

// ZynlePayWebhook receives gateway notifications posted as JSON or as a
// form, and answers with the classified outcome.
func ZynlePayWebhook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

		var (
			out zynle.WebhookOutcome
			err error
		)
		if isForm(r) {
			if err = r.ParseForm(); err != nil {
				respondError(w, r, http.StatusBadRequest, "invalid form body")
				return
			}
			out, err = zynle.ClassifyWebhook(zynle.WebhookPayloadFromForm(r.PostForm))
		} else {
			body, rerr := io.ReadAll(r.Body)
			if rerr != nil {
				respondError(w, r, http.StatusBadRequest, "unable to read body")
				return
			}
			out, err = zynle.ParseWebhook(body)
		}
		if err != nil {
			log.Warn().Err(err).Msg("rejected zynlepay webhook")
			respondError(w, r, http.StatusBadRequest, err.Error())
			return
		}

		log.Info().
			Str("reference_no", out.ReferenceNo).
			Str("status", string(out.Status)).
			Str("action", out.Action).
			Msg("zynlepay webhook")
		respondOK(w, r, "Webhook processed successfully", out)
	}
}

func isForm(r *http.Request) bool {
	ct, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return ct == "application/x-www-form-urlencoded"
}
