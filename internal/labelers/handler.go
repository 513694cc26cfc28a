package labelers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/verdict-labs/verdict/pkg/handlers"
	"github.com/verdict-labs/verdict/pkg/pagination"
	"github.com/verdict-labs/verdict/pkg/routes"
)

// Handler exposes labeler registry operations over HTTP.
type Handler struct {
	system System
	paging pagination.Config
	logger *slog.Logger
}

// NewHandler creates a Handler for the labeler registry.
func NewHandler(system System, paging pagination.Config, logger *slog.Logger) *Handler {
	return &Handler{
		system: system,
		paging: paging,
		logger: logger.With("handler", "labelers"),
	}
}

// Routes returns the route group for labeler endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/labelers",
		Routes: []routes.Route{
			{Method: http.MethodPost, Pattern: "", Handler: h.create},
			{Method: http.MethodGet, Pattern: "", Handler: h.list},
			{Method: http.MethodGet, Pattern: "/{id}", Handler: h.find},
			{Method: http.MethodPut, Pattern: "/{id}", Handler: h.update},
			{Method: http.MethodDelete, Pattern: "/{id}", Handler: h.deactivate},
		},
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var cmd CreateLabeler
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	labeler, err := h.system.Create(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, labeler)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.paging)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.system.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) find(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	labeler, err := h.system.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, labeler)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	var cmd UpdateLabeler
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	labeler, err := h.system.Update(r.Context(), id, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, labeler)
}

func (h *Handler) deactivate(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if err := h.system.Deactivate(r.Context(), id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}
