package api

import (
	"net/http"

	"github.com/manapixels/stock-screener/internal/errors"
)

// handleSendTelegramMessage handles POST /send_telegram_message/ - Relay a
// message to a Telegram chat. chat_id and message ride as query parameters
// (frontend contract).
func (s *Server) handleSendTelegramMessage(w http.ResponseWriter, r *http.Request) {
	chatID := r.URL.Query().Get("chat_id")
	message := r.URL.Query().Get("message")
	if chatID == "" {
		respondWithError(w, errors.NewValidationError("Chat ID parameter is required"))
		return
	}
	if message == "" {
		respondWithError(w, errors.NewValidationError("Message parameter is required"))
		return
	}

	if err := s.telegram.SendMessage(r.Context(), chatID, message); err != nil {
		respondUpstreamError(w, err, "Error sending message")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Message sent successfully!"})
}
