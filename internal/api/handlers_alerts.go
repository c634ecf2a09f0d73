package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/manapixels/stock-screener/internal/errors"
	"github.com/manapixels/stock-screener/internal/models"
)

// handleCreateAlert handles POST /alerts/ - Store a threshold alert for the
// caller. Alerts are configuration only; nothing evaluates them against
// market data.
func (s *Server) handleCreateAlert(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		respondWithError(w, err)
		return
	}

	var req struct {
		Symbol    string   `json:"symbol"`
		AlertType string   `json:"alert_type"`
		Threshold *float64 `json:"threshold"`
		IsActive  *bool    `json:"is_active"`
	}
	if err := parseJSONBody(r, &req); err != nil {
		respondWithError(w, errors.NewValidationError("Invalid request body"))
		return
	}
	if req.Symbol == "" {
		respondWithError(w, errors.NewValidationError("Symbol is required"))
		return
	}
	if req.AlertType == "" {
		respondWithError(w, errors.NewValidationError("Alert type is required"))
		return
	}
	if req.Threshold == nil {
		respondWithError(w, errors.NewValidationError("Threshold is required"))
		return
	}

	// Alerts are active unless the caller says otherwise.
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	alert := &models.Alert{
		Symbol:    req.Symbol,
		AlertType: req.AlertType,
		Threshold: *req.Threshold,
		IsActive:  isActive,
		OwnerID:   user.ID,
	}
	if err := s.alerts.Create(r.Context(), alert); err != nil {
		respondWithError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, alert)
}

// handleGetAlerts handles GET /alerts/ - The caller's alerts
func (s *Server) handleGetAlerts(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		respondWithError(w, err)
		return
	}

	alerts, err := s.alerts.ListByOwner(r.Context(), user.ID)
	if err != nil {
		respondWithError(w, err)
		return
	}
	if alerts == nil {
		alerts = []*models.Alert{}
	}

	respondJSON(w, http.StatusOK, alerts)
}

// handleDeleteAlert handles DELETE /alerts/{alert_id} - Remove an alert the
// caller owns
func (s *Server) handleDeleteAlert(w http.ResponseWriter, r *http.Request) {
	user, err := s.currentUser(r)
	if err != nil {
		respondWithError(w, err)
		return
	}

	alertID := mux.Vars(r)["alert_id"]

	alert, err := s.alerts.Delete(r.Context(), alertID, user.ID)
	if err != nil {
		respondWithError(w, err)
		return
	}
	if alert == nil {
		respondWithError(w, errors.NewNotFoundError("Alert not found"))
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Alert deleted successfully"})
}
