package handlers

import (
	"net/http"

	"github.com/dustmassingale/ProjectPlanningTool/internal/application/dashboard"
	"github.com/dustmassingale/ProjectPlanningTool/internal/application/ports"
	"github.com/dustmassingale/ProjectPlanningTool/internal/infrastructure/http/middleware"
)

// DashboardHandler serves the dashboard view-model for the session's
// active team.
type DashboardHandler struct {
	view      *dashboard.View
	telemetry ports.Telemetry
}

func NewDashboardHandler(view *dashboard.View, telemetry ports.Telemetry) *DashboardHandler {
	return &DashboardHandler{view: view, telemetry: telemetry}
}

func (h *DashboardHandler) Index(w http.ResponseWriter, r *http.Request) {
	_, sess := middleware.SessionFromContext(r.Context())
	if sess == nil {
		writeErr(w, http.StatusUnauthorized, "sign in required")
		return
	}
	vm, err := h.view.Execute(r.Context(), sess.UserID, sess.ActiveTeamID)
	if err != nil {
		h.telemetry.RecordException(err)
		writeErr(w, http.StatusInternalServerError, genericProcessingError)
		return
	}
	writeJSON(w, http.StatusOK, vm)
}
