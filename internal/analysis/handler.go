package analysis

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/verdict-labs/verdict/pkg/handlers"
	"github.com/verdict-labs/verdict/pkg/routes"
)

// Handler exposes ad-hoc analysis over HTTP.
type Handler struct {
	system System
	logger *slog.Logger
}

// NewHandler creates a Handler for analysis endpoints.
func NewHandler(system System, logger *slog.Logger) *Handler {
	return &Handler{
		system: system,
		logger: logger.With("handler", "analysis"),
	}
}

// Routes returns the route group for analysis endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/analysis",
		Routes: []routes.Route{
			{Method: http.MethodPost, Pattern: "/url", Handler: h.analyzeURL},
		},
	}
}

func (h *Handler) analyzeURL(w http.ResponseWriter, r *http.Request) {
	var req struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	req.URL = strings.TrimSpace(req.URL)
	if req.URL == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("url required"))
		return
	}

	result := h.system.AnalyzeURL(r.Context(), req.URL)
	handlers.RespondJSON(w, http.StatusOK, result)
}
