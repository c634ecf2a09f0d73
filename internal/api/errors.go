package api

import (
	"encoding/json"
	"net/http"

	"github.com/manapixels/stock-screener/internal/errors"
	"github.com/manapixels/stock-screener/internal/logging"
)

// ErrorBody is the payload inside the error envelope.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an API error response.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// respondError sends an error response. 401 responses carry the bearer
// challenge header.
func respondError(w http.ResponseWriter, statusCode int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	if statusCode == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	w.WriteHeader(statusCode)

	response := ErrorResponse{
		Error: ErrorBody{
			Code:    code,
			Message: message,
		},
	}

	json.NewEncoder(w).Encode(response)
}

// respondWithError maps a categorized error onto the wire. System error
// causes are logged here and never serialized.
func respondWithError(w http.ResponseWriter, err error) {
	catErr := errors.Categorize(err)
	if errors.IsSystemError(catErr) {
		logging.WithError(catErr).Error("Request failed")
	}
	respondError(w, catErr.StatusCode, catErr.Code, catErr.Message)
}

// respondUpstreamError handles failures from outbound clients. Categorized
// errors (missing provider configuration) pass through untouched; anything
// else becomes an upstream error carrying only the endpoint's generic
// message.
func respondUpstreamError(w http.ResponseWriter, err error, message string) {
	if catErr, ok := err.(*errors.CategorizedError); ok {
		respondWithError(w, catErr)
		return
	}
	respondWithError(w, errors.NewUpstreamError(message, err))
}

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// parseJSONBody parses JSON request body.
func parseJSONBody(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}
