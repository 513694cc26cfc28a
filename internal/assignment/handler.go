package assignment

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/verdict-labs/verdict/pkg/handlers"
	"github.com/verdict-labs/verdict/pkg/routes"
)

// taskResponse wraps a task so the no-work case has an explicit shape.
// TaskStartTime is issued with the task and echoed back on label submission,
// where the elapsed time is computed server-side.
type taskResponse struct {
	Task            *Task  `json:"task"`
	TaskStartTime   string `json:"task_start_time,omitempty"`
	NoTaskAvailable bool   `json:"no_task_available"`
}

// Handler exposes task scheduling over HTTP.
type Handler struct {
	system System
	logger *slog.Logger
}

// NewHandler creates a Handler for task endpoints.
func NewHandler(system System, logger *slog.Logger) *Handler {
	return &Handler{
		system: system,
		logger: logger.With("handler", "assignment"),
	}
}

// Routes returns the route group for task endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/tasks",
		Routes: []routes.Route{
			{Method: http.MethodPost, Pattern: "/request", Handler: h.request},
			{Method: http.MethodGet, Pattern: "/active", Handler: h.active},
		},
	}
}

func (h *Handler) request(w http.ResponseWriter, r *http.Request) {
	var req struct {
		LabelerID int64 `json:"labeler_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	task, err := h.system.RequestTask(r.Context(), req.LabelerID)
	h.respondTask(w, task, err)
}

func (h *Handler) active(w http.ResponseWriter, r *http.Request) {
	labelerID, err := strconv.ParseInt(r.URL.Query().Get("labeler_id"), 10, 64)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("labeler_id required"))
		return
	}

	task, err := h.system.ActiveTask(r.Context(), labelerID)
	h.respondTask(w, task, err)
}

func (h *Handler) respondTask(w http.ResponseWriter, task *Task, err error) {
	// An empty queue is a normal outcome for a labeler, not an error.
	if errors.Is(err, ErrNoTask) {
		handlers.RespondJSON(w, http.StatusOK, taskResponse{NoTaskAvailable: true})
		return
	}
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, taskResponse{
		Task:          task,
		TaskStartTime: time.Now().UTC().Format(time.RFC3339),
	})
}
