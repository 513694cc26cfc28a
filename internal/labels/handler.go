package labels

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/verdict-labs/verdict/pkg/handlers"
	"github.com/verdict-labs/verdict/pkg/routes"
)

// Handler exposes label operations over HTTP.
type Handler struct {
	system System
	logger *slog.Logger
}

// NewHandler creates a Handler for label endpoints.
func NewHandler(system System, logger *slog.Logger) *Handler {
	return &Handler{
		system: system,
		logger: logger.With("handler", "labels"),
	}
}

// Routes returns the route group for label endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/labels",
		Routes: []routes.Route{
			{Method: http.MethodPost, Pattern: "", Handler: h.submit},
			{Method: http.MethodGet, Pattern: "", Handler: h.list},
			{Method: http.MethodGet, Pattern: "/{id}", Handler: h.find},
		},
	}
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	var cmd SubmitLabel
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	submission, err := h.system.Submit(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, submission)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()

	if v := values.Get("content_item_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
			return
		}
		h.respondList(w, r, func() ([]Label, error) {
			return h.system.ListByContentItem(r.Context(), id)
		})
		return
	}

	if v := values.Get("labeler_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
			return
		}
		h.respondList(w, r, func() ([]Label, error) {
			return h.system.ListByLabeler(r.Context(), id)
		})
		return
	}

	handlers.RespondError(w, h.logger, http.StatusBadRequest,
		fmt.Errorf("content_item_id or labeler_id required"))
}

func (h *Handler) find(w http.ResponseWriter, r *http.Request) {
	label, err := h.system.Find(r.Context(), r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, label)
}

func (h *Handler) respondList(w http.ResponseWriter, r *http.Request, fetch func() ([]Label, error)) {
	labels, err := fetch()
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, labels)
}
