// Package server exposes the event store and recurrence engine over a JSON
// REST boundary: CRUD on /api/events plus series-scoped operations on
// /api/recurring-events.
package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/librecal/librecal/ics"
	"github.com/librecal/librecal/recur"
	"github.com/librecal/librecal/store"
)

const mimeTypeJSON = "application/json; charset=utf-8"

// Router dispatches event API requests. It owns no business logic: the
// engine computes, the storage persists, the router translates.
type Router struct {
	storage  store.Storage
	engine   *recur.Engine
	exporter *ics.Exporter
	logger   *slog.Logger
	mux      *http.ServeMux
}

// NewRouter creates a router over the given storage and engine. A nil
// logger disables request logging.
func NewRouter(storage store.Storage, engine *recur.Engine, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	r := &Router{
		storage:  storage,
		engine:   engine,
		exporter: ics.NewExporter(engine),
		logger:   logger,
		mux:      http.NewServeMux(),
	}

	r.mux.HandleFunc("GET /api/events", r.handleListEvents)
	r.mux.HandleFunc("POST /api/events", r.handleCreateEvent)
	r.mux.HandleFunc("PUT /api/events/{id}", r.handleUpdateEvent)
	r.mux.HandleFunc("DELETE /api/events/{id}", r.handleDeleteEvent)
	r.mux.HandleFunc("PUT /api/recurring-events/{repeatId}", r.handleUpdateSeries)
	r.mux.HandleFunc("DELETE /api/recurring-events/{repeatId}", r.handleDeleteSeries)
	r.mux.HandleFunc("GET /api/recurring-events/{repeatId}/ics", r.handleExportSeries)

	return r
}

// ServeHTTP implements http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.logger.Info("received request",
		"method", req.Method,
		"path", req.URL.Path,
		"remote_addr", req.RemoteAddr)
	r.mux.ServeHTTP(w, req)
}

// handleListEvents returns all events, optionally filtered to an inclusive
// date range given as ?start=YYYY-MM-DD&end=YYYY-MM-DD.
func (r *Router) handleListEvents(w http.ResponseWriter, req *http.Request) {
	events, err := r.storage.ListEvents(req.Context())
	if err != nil {
		r.internalError(w, "list events", err)
		return
	}

	startParam := req.URL.Query().Get("start")
	endParam := req.URL.Query().Get("end")
	if startParam != "" || endParam != "" {
		start, err1 := time.ParseInLocation(time.DateOnly, startParam, time.UTC)
		end, err2 := time.ParseInLocation(time.DateOnly, endParam, time.UTC)
		if err1 != nil || err2 != nil {
			r.writeError(w, http.StatusBadRequest, "start and end must be YYYY-MM-DD dates")
			return
		}
		events = recur.FilterInRange(events, start, end)
	}

	if events == nil {
		events = []recur.Event{}
	}
	r.writeJSON(w, http.StatusOK, events)
}

// handleCreateEvent validates the submitted event, expands its series when
// recurring, and stores the resulting instances. Validation failures are
// returned as the validation result with status 400; the client renders the
// errors and warnings directly.
func (r *Router) handleCreateEvent(w http.ResponseWriter, req *http.Request) {
	var template recur.Event
	if err := json.NewDecoder(req.Body).Decode(&template); err != nil {
		r.writeError(w, http.StatusBadRequest, "malformed event body")
		return
	}

	if result := r.engine.ValidateEvent(template); !result.IsValid {
		r.writeJSON(w, http.StatusBadRequest, result)
		return
	}
	if recur.IsRecurring(template.Rule) {
		result := r.engine.ValidateRule(template.Date, template.Rule.Kind, template.Rule.Interval, template.Rule.End)
		if !result.IsValid {
			r.writeJSON(w, http.StatusBadRequest, result)
			return
		}
	}

	instances, err := r.engine.ExpandEvent(template, template.Rule)
	if err != nil {
		r.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(instances) == 0 {
		r.writeError(w, http.StatusBadRequest, "the event date is beyond the generation horizon")
		return
	}

	if err := r.storage.CreateEvents(req.Context(), instances); err != nil {
		r.storageError(w, "create events", err)
		return
	}

	r.logger.Info("created events", "count", len(instances), "series_id", instances[0].SeriesID)
	r.writeJSON(w, http.StatusCreated, instances)
}

// handleUpdateEvent replaces a single instance. Editing one instance of a
// recurring series severs it from the series permanently.
func (r *Router) handleUpdateEvent(w http.ResponseWriter, req *http.Request) {
	id := req.PathValue("id")

	existing, err := r.storage.GetEvent(req.Context(), id)
	if err != nil {
		r.storageError(w, "get event", err)
		return
	}

	var submitted recur.Event
	if err := json.NewDecoder(req.Body).Decode(&submitted); err != nil {
		r.writeError(w, http.StatusBadRequest, "malformed event body")
		return
	}
	submitted.ID = existing.ID

	standalone, err := recur.ConvertToStandalone(&submitted)
	if err != nil {
		r.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := r.storage.UpdateEvent(req.Context(), standalone); err != nil {
		r.storageError(w, "update event", err)
		return
	}
	r.writeJSON(w, http.StatusOK, standalone)
}

func (r *Router) handleDeleteEvent(w http.ResponseWriter, req *http.Request) {
	id := req.PathValue("id")
	if err := r.storage.DeleteEvent(req.Context(), id); err != nil {
		r.storageError(w, "delete event", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleUpdateSeries applies a partial update to every instance of a
// series. Bulk edits are refused once the whole series lies in the past.
func (r *Router) handleUpdateSeries(w http.ResponseWriter, req *http.Request) {
	seriesID := req.PathValue("repeatId")

	latest, ok, err := r.latestInSeries(req, seriesID)
	if err != nil {
		r.internalError(w, "list events", err)
		return
	}
	if !ok {
		r.writeError(w, http.StatusNotFound, "no events in series")
		return
	}
	if perms := r.engine.EditPermissions(latest); !perms.CanAll {
		r.writeError(w, http.StatusForbidden, "past series cannot be bulk-edited")
		return
	}

	var patch recur.Patch
	if err := json.NewDecoder(req.Body).Decode(&patch); err != nil {
		r.writeError(w, http.StatusBadRequest, "malformed patch body")
		return
	}
	if patch.IsZero() {
		r.writeError(w, http.StatusBadRequest, "patch changes nothing")
		return
	}

	updated, err := r.storage.UpdateSeries(req.Context(), seriesID, patch)
	if err != nil {
		r.storageError(w, "update series", err)
		return
	}
	r.writeJSON(w, http.StatusOK, updated)
}

// handleDeleteSeries removes every instance of a series. Bulk deletion is
// refused once the whole series lies in the past.
func (r *Router) handleDeleteSeries(w http.ResponseWriter, req *http.Request) {
	seriesID := req.PathValue("repeatId")

	latest, ok, err := r.latestInSeries(req, seriesID)
	if err != nil {
		r.internalError(w, "list events", err)
		return
	}
	if !ok {
		r.writeError(w, http.StatusNotFound, "no events in series")
		return
	}
	if perms := r.engine.DeletePermissions(latest); !perms.CanAll {
		r.writeError(w, http.StatusForbidden, "past series cannot be bulk-deleted")
		return
	}

	removed, err := r.storage.DeleteSeries(req.Context(), seriesID)
	if err != nil {
		r.storageError(w, "delete series", err)
		return
	}
	r.logger.Info("deleted series", "series_id", seriesID, "removed", removed)
	w.WriteHeader(http.StatusNoContent)
}

// handleExportSeries renders every instance of a series as iCalendar data.
func (r *Router) handleExportSeries(w http.ResponseWriter, req *http.Request) {
	seriesID := req.PathValue("repeatId")

	events, err := r.storage.ListEvents(req.Context())
	if err != nil {
		r.internalError(w, "list events", err)
		return
	}
	instances := recur.EventsInSeries(events, seriesID)
	if len(instances) == 0 {
		r.writeError(w, http.StatusNotFound, "no events in series")
		return
	}

	cal, err := r.exporter.ExportInstances(instances)
	if err != nil {
		r.internalError(w, "export series", err)
		return
	}
	data, err := ics.Encode(cal)
	if err != nil {
		r.internalError(w, "encode calendar", err)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// latestInSeries finds the latest-dated instance of a series. If even that
// one is past, the whole series is past and bulk operations are refused.
func (r *Router) latestInSeries(req *http.Request, seriesID string) (recur.Event, bool, error) {
	events, err := r.storage.ListEvents(req.Context())
	if err != nil {
		return recur.Event{}, false, err
	}
	instances := recur.EventsInSeries(events, seriesID)
	if len(instances) == 0 {
		return recur.Event{}, false, nil
	}

	latest := instances[0]
	for _, ev := range instances[1:] {
		if ev.Date.After(latest.Date) {
			latest = ev
		}
	}
	return latest, true, nil
}

type errorBody struct {
	Error string `json:"error"`
}

func (r *Router) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", mimeTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		r.logger.Error("encode response", "error", err)
	}
}

func (r *Router) writeError(w http.ResponseWriter, status int, msg string) {
	r.writeJSON(w, status, errorBody{Error: msg})
}

func (r *Router) storageError(w http.ResponseWriter, op string, err error) {
	var serr *store.Error
	if errors.As(err, &serr) {
		switch serr.Type {
		case store.ErrNotFound:
			r.writeError(w, http.StatusNotFound, serr.Message)
			return
		case store.ErrInvalidInput:
			r.writeError(w, http.StatusBadRequest, serr.Message)
			return
		case store.ErrAlreadyExists:
			r.writeError(w, http.StatusConflict, serr.Message)
			return
		}
	}
	r.internalError(w, op, err)
}

func (r *Router) internalError(w http.ResponseWriter, op string, err error) {
	r.logger.Error(op, "error", err)
	r.writeError(w, http.StatusInternalServerError, "internal error")
}
