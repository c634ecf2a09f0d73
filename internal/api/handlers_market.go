package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/manapixels/stock-screener/internal/errors"
)

// handleSearchStock handles GET /search/stock - Symbol search by keywords
func (s *Server) handleSearchStock(w http.ResponseWriter, r *http.Request) {
	keywords := r.URL.Query().Get("keywords")
	if keywords == "" {
		respondWithError(w, errors.NewValidationError("Keywords parameter is required"))
		return
	}

	data, err := s.market.SearchSymbol(r.Context(), keywords)
	if err != nil {
		respondUpstreamError(w, err, "Error fetching stock data")
		return
	}

	respondJSON(w, http.StatusOK, data)
}

// handleStockDetail handles GET /stock/{symbol} - Aggregated overview,
// earnings, prices, indicators and news for one symbol. The aggregate is
// all-or-nothing, so a single failed upstream call fails the request.
func (s *Server) handleStockDetail(w http.ResponseWriter, r *http.Request) {
	symbol := mux.Vars(r)["symbol"]

	detail, err := s.market.StockDetail(r.Context(), symbol)
	if err != nil {
		respondUpstreamError(w, err, "Error fetching stock details")
		return
	}

	respondJSON(w, http.StatusOK, detail)
}
