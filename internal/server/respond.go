package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/khalidmnor/legal-ai-assistant/internal/assistant"
	"github.com/khalidmnor/legal-ai-assistant/internal/completion"
)

type errorDetail struct {
	Code           string `json:"code"`
	Message        string `json:"message"`
	UpstreamStatus int    `json:"upstream_status,omitempty"`
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorBody{Error: errorDetail{Code: code, Message: message}})
}

// runError maps run failures onto HTTP statuses and stable error codes.
// Upstream failures all surface as 502 with the code telling them
// apart.
func runError(w http.ResponseWriter, err error) {
	var ve *assistant.ValidationError
	var uf *assistant.UnknownFunctionError
	var pe *completion.ProtocolError
	var te *completion.TransportError
	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, "validation", ve.Message)
	case errors.As(err, &uf):
		writeError(w, http.StatusNotFound, "unknown_function", uf.Error())
	case errors.Is(err, completion.ErrMissingCredential):
		writeError(w, http.StatusUnauthorized, "missing_credential",
			"no API key configured; set OPENROUTER_API_KEY or store a key for this session")
	case errors.Is(err, completion.ErrMalformedResponse):
		writeError(w, http.StatusBadGateway, "malformed_response",
			"completion API returned an unexpected response")
	case errors.As(err, &pe):
		writeJSON(w, http.StatusBadGateway, errorBody{Error: errorDetail{
			Code:           "protocol",
			Message:        pe.Error(),
			UpstreamStatus: pe.Status,
		}})
	case errors.As(err, &te):
		writeError(w, http.StatusBadGateway, "transport", te.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal", "internal server error")
	}
}
