package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"CryptoBoard/internal/dashboard"
	"CryptoBoard/internal/model"
)

// Dashboard is the controller surface the HTTP handlers drive.
type Dashboard interface {
	View() model.DashboardView
	AssetView(assetID string) (model.AssetView, error)
	Refresh(ctx context.Context) error
	SetTimeFrame(tf model.TimeFrame) error
	SetShowRSI(show bool)
	Focus(assetID string) error
	PointerDown(assetID string, value float64) error
	PointerMove(assetID string, value float64) error
	PointerUp(assetID string) error
}

// Handler serves the dashboard view and accepts user input events.
type Handler struct {
	dash           Dashboard
	refreshTimeout time.Duration
}

// NewHandler creates a new Handler.
func NewHandler(dash Dashboard) *Handler {
	return &Handler{dash: dash, refreshTimeout: 30 * time.Second}
}

// ErrorResponse is the JSON body of every non-2xx answer.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// SettingsRequest is the body of PUT /api/settings. Absent fields are left unchanged.
type SettingsRequest struct {
	TimeFrame *string `json:"time_frame"`
	ShowRSI   *bool   `json:"show_rsi"`
}

// PointerRequest is the body of POST /api/assets/{id}/pointer.
type PointerRequest struct {
	Type  string   `json:"type"` // down, move or up
	Value *float64 `json:"value"`
}

// Routes registers all endpoints on mux.
func (h *Handler) Routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.Health)
	mux.HandleFunc("GET /api/dashboard", h.GetDashboard)
	mux.HandleFunc("GET /api/assets/{id}", h.GetAsset)
	mux.HandleFunc("PUT /api/settings", h.PutSettings)
	mux.HandleFunc("POST /api/assets/{id}/pointer", h.PostPointer)
	mux.HandleFunc("POST /api/assets/{id}/focus", h.PostFocus)
	mux.HandleFunc("POST /api/refresh", h.PostRefresh)
}

// Health handles GET /healthz
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetDashboard handles GET /api/dashboard
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.dash.View())
}

// GetAsset handles GET /api/assets/{id}
func (h *Handler) GetAsset(w http.ResponseWriter, r *http.Request) {
	av, err := h.dash.AssetView(r.PathValue("id"))
	if err != nil {
		h.writeDashboardError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, av)
}

// PutSettings handles PUT /api/settings. A time-frame change refetches at once.
func (h *Handler) PutSettings(w http.ResponseWriter, r *http.Request) {
	var req SettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	// Validate everything before touching the dashboard.
	var tf model.TimeFrame
	if req.TimeFrame != nil {
		parsed, err := model.ParseTimeFrame(*req.TimeFrame)
		if err != nil {
			h.writeErrorResponse(w, http.StatusBadRequest, "unsupported time frame: "+*req.TimeFrame)
			return
		}
		tf = parsed
	}

	if tf != "" {
		if err := h.dash.SetTimeFrame(tf); err != nil {
			h.writeErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if req.ShowRSI != nil {
		h.dash.SetShowRSI(*req.ShowRSI)
	}
	if tf != "" {
		go h.refreshInBackground()
	}
	h.writeJSON(w, http.StatusOK, h.dash.View())
}

// PostPointer handles POST /api/assets/{id}/pointer
func (h *Handler) PostPointer(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req PointerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	var err error
	switch req.Type {
	case "down", "move":
		if req.Value == nil {
			h.writeErrorResponse(w, http.StatusBadRequest, "value is required for "+req.Type)
			return
		}
		if req.Type == "down" {
			err = h.dash.PointerDown(id, *req.Value)
		} else {
			err = h.dash.PointerMove(id, *req.Value)
		}
	case "up":
		err = h.dash.PointerUp(id)
	default:
		h.writeErrorResponse(w, http.StatusBadRequest, "type must be one of down, move, up")
		return
	}
	if err != nil {
		h.writeDashboardError(w, err)
		return
	}

	av, err := h.dash.AssetView(id)
	if err != nil {
		h.writeDashboardError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, av)
}

// PostFocus handles POST /api/assets/{id}/focus
func (h *Handler) PostFocus(w http.ResponseWriter, r *http.Request) {
	if err := h.dash.Focus(r.PathValue("id")); err != nil {
		h.writeDashboardError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PostRefresh handles POST /api/refresh
func (h *Handler) PostRefresh(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.refreshTimeout)
	defer cancel()
	if err := h.dash.Refresh(ctx); err != nil && !errors.Is(err, dashboard.ErrSuperseded) {
		h.writeDashboardError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, h.dash.View())
}

func (h *Handler) refreshInBackground() {
	ctx, cancel := context.WithTimeout(context.Background(), h.refreshTimeout)
	defer cancel()
	if err := h.dash.Refresh(ctx); err != nil && !errors.Is(err, dashboard.ErrSuperseded) {
		log.Printf("[WARN] refresh after settings change: %v", err)
	}
}

func (h *Handler) writeDashboardError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, dashboard.ErrUnknownAsset):
		h.writeErrorResponse(w, http.StatusNotFound, err.Error())
	case errors.Is(err, dashboard.ErrStopped):
		h.writeErrorResponse(w, http.StatusServiceUnavailable, err.Error())
	default:
		h.writeErrorResponse(w, http.StatusBadGateway, err.Error())
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[ERROR] encode response: %v", err)
	}
}

func (h *Handler) writeErrorResponse(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	})
}
