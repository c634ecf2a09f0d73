package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/manapixels/stock-screener/internal/errors"
	"github.com/manapixels/stock-screener/internal/models"
)

// handleAddWatchlistItem handles POST /watchlist/ - Track a stock for the
// caller. Duplicate symbols are allowed.
func (s *Server) handleAddWatchlistItem(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		respondWithError(w, err)
		return
	}

	var req struct {
		Symbol      string `json:"symbol"`
		CompanyName string `json:"company_name"`
	}
	if err := parseJSONBody(r, &req); err != nil {
		respondWithError(w, errors.NewValidationError("Invalid request body"))
		return
	}
	if req.Symbol == "" {
		respondWithError(w, errors.NewValidationError("Symbol is required"))
		return
	}
	if req.CompanyName == "" {
		respondWithError(w, errors.NewValidationError("Company name is required"))
		return
	}

	item := &models.WatchlistItem{
		Symbol:      req.Symbol,
		CompanyName: req.CompanyName,
		OwnerID:     user.ID,
	}
	if err := s.watchlist.Create(r.Context(), item); err != nil {
		respondWithError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, item)
}

// handleGetWatchlist handles GET /watchlist/ - The caller's watchlist
func (s *Server) handleGetWatchlist(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		respondWithError(w, err)
		return
	}

	items, err := s.watchlist.ListByOwner(r.Context(), user.ID)
	if err != nil {
		respondWithError(w, err)
		return
	}
	// Serialize an empty watchlist as [] rather than null.
	if items == nil {
		items = []*models.WatchlistItem{}
	}

	respondJSON(w, http.StatusOK, items)
}

// handleDeleteWatchlistItem handles DELETE /watchlist/{item_id} - Remove an
// item the caller owns. Another user's item is indistinguishable from a
// missing one.
func (s *Server) handleDeleteWatchlistItem(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		respondWithError(w, err)
		return
	}

	itemID := mux.Vars(r)["item_id"]

	item, err := s.watchlist.Delete(r.Context(), itemID, user.ID)
	if err != nil {
		respondWithError(w, err)
		return
	}
	if item == nil {
		respondWithError(w, errors.NewNotFoundError("Item not found in watchlist"))
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Item deleted successfully"})
}
