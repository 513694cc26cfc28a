package content

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/verdict-labs/verdict/pkg/handlers"
	"github.com/verdict-labs/verdict/pkg/pagination"
	"github.com/verdict-labs/verdict/pkg/routes"
)

// Handler exposes content queue operations over HTTP.
type Handler struct {
	system System
	paging pagination.Config
	logger *slog.Logger
}

// NewHandler creates a Handler for the content queue.
func NewHandler(system System, paging pagination.Config, logger *slog.Logger) *Handler {
	return &Handler{
		system: system,
		paging: paging,
		logger: logger.With("handler", "content"),
	}
}

// Routes returns the route group for content endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/content",
		Routes: []routes.Route{
			{Method: http.MethodPost, Pattern: "", Handler: h.create},
			{Method: http.MethodPost, Pattern: "/batch", Handler: h.createBatch},
			{Method: http.MethodGet, Pattern: "", Handler: h.list},
			{Method: http.MethodGet, Pattern: "/{id}", Handler: h.find},
			{Method: http.MethodPost, Pattern: "/{id}/reset", Handler: h.reset},
			{Method: http.MethodPost, Pattern: "/{id}/analyze", Handler: h.analyze},
			{Method: http.MethodDelete, Pattern: "/{id}", Handler: h.delete},
		},
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ActorID int64 `json:"actor_id"`
		CreateContent
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	item, err := h.system.Create(r.Context(), req.ActorID, req.CreateContent)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, item)
}

func (h *Handler) createBatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ActorID int64           `json:"actor_id"`
		Items   []CreateContent `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}
	if len(req.Items) == 0 {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("items required"))
		return
	}

	result, err := h.system.CreateBatch(r.Context(), req.ActorID, req.Items)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, result)
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

	item, err := h.system.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, item)
}

func (h *Handler) reset(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	var req struct {
		ActorID int64 `json:"actor_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	item, err := h.system.Reset(r.Context(), req.ActorID, id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, item)
}

func (h *Handler) analyze(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.system.Analyze(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	actorID, err := strconv.ParseInt(r.URL.Query().Get("actor_id"), 10, 64)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("actor_id required"))
		return
	}

	if err := h.system.Delete(r.Context(), actorID, id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}
