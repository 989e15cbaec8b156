package dashboardhandler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"perfdash/internal/domain/dashboard"
	"perfdash/internal/reports"
	"perfdash/internal/transport/http/api"
	"perfdash/internal/transport/http/middleware"
)

const formatPDF = "pdf"

type Handler struct {
	Service *dashboard.Service
	Logger  *slog.Logger
}

func NewHandler(service *dashboard.Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{Service: service, Logger: logger}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/api/users", h.handleUsers)
	r.Get("/api/dashboard/*", h.handleUserDashboard)
	r.Get("/api/team-dashboard/*", h.handleTeamDashboard)
}

func (h *Handler) handleUsers(w http.ResponseWriter, r *http.Request) {
	api.Success(w, r, h.Service.Users(r.Context()))
}

func (h *Handler) handleUserDashboard(w http.ResponseWriter, r *http.Request) {
	data := h.Service.UserDashboard(r.Context(), aliasFromPath(r.URL.Path))
	if wantsPDF(r) {
		body, err := reports.UserDashboardPDF(data)
		if err != nil {
			h.renderFailed(w, r, err)
			return
		}
		api.WritePDF(w, r, "dashboard-"+fileSafe(data.UserAlias)+".pdf", body)
		return
	}
	api.Success(w, r, data)
}

func (h *Handler) handleTeamDashboard(w http.ResponseWriter, r *http.Request) {
	data := h.Service.TeamDashboard(r.Context(), aliasFromPath(r.URL.Path))
	if wantsPDF(r) {
		body, err := reports.TeamDashboardPDF(data)
		if err != nil {
			h.renderFailed(w, r, err)
			return
		}
		api.WritePDF(w, r, "team-dashboard-"+fileSafe(data.ManagerAlias)+".pdf", body)
		return
	}
	api.Success(w, r, data)
}

func (h *Handler) renderFailed(w http.ResponseWriter, r *http.Request, err error) {
	h.Logger.Error("render pdf failed", "err", err, "path", r.URL.Path, "request_id", middleware.GetRequestID(r.Context()))
	api.InternalError(w, r)
}

// aliasFromPath returns the final path segment; a trailing slash yields "".
func aliasFromPath(path string) string {
	return path[strings.LastIndex(path, "/")+1:]
}

func wantsPDF(r *http.Request) bool {
	return strings.EqualFold(r.URL.Query().Get("format"), formatPDF)
}

func fileSafe(alias string) string {
	cleaned := strings.Map(func(c rune) rune {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
			return c
		}
		return -1
	}, alias)
	if cleaned == "" {
		return "report"
	}
	return cleaned
}
