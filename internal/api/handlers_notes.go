package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/manapixels/stock-screener/internal/errors"
)

// handleUpsertStockNote handles POST /stock_notes/ - Create or replace the
// caller's note for a symbol
func (s *Server) handleUpsertStockNote(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		respondWithError(w, err)
		return
	}

	var req struct {
		Symbol string `json:"symbol"`
		Note   string `json:"note"`
	}
	if err := parseJSONBody(r, &req); err != nil {
		respondWithError(w, errors.NewValidationError("Invalid request body"))
		return
	}
	if req.Symbol == "" {
		respondWithError(w, errors.NewValidationError("Symbol is required"))
		return
	}

	note, err := s.notes.Upsert(r.Context(), user.ID, req.Symbol, req.Note)
	if err != nil {
		respondWithError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, note)
}

// handleGetStockNote handles GET /stock_notes/{symbol} - The caller's note
// for a symbol, or a JSON null when none exists
func (s *Server) handleGetStockNote(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		respondWithError(w, err)
		return
	}

	symbol := mux.Vars(r)["symbol"]

	note, err := s.notes.GetByOwnerAndSymbol(r.Context(), user.ID, symbol)
	if err != nil {
		respondWithError(w, err)
		return
	}

	// A nil note serializes as null, matching the nullable response shape.
	respondJSON(w, http.StatusOK, note)
}
