package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/availops/availagent/internal/agent"
	"github.com/availops/availagent/internal/sla"
	"github.com/availops/availagent/internal/store"
)

// registerRoutes mounts the REST API.
func (s *Server) registerRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/services", s.handleListServices)
		r.Get("/services/{id}/promise", s.handleGetPromise)
		r.Get("/services/{id}/downtime", s.handleGetDowntime)
		r.Get("/services/{id}/availability", s.handleAvailability)
		r.Post("/ask", s.handleAsk)
	})
}

func (s *Server) handleListServices(w http.ResponseWriter, r *http.Request) {
	services, err := s.store.ListServices(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, map[string]any{"count": len(services), "services": services})
}

func (s *Server) handleGetPromise(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	from, to, ok := s.dateRange(w, r, id)
	if !ok {
		return
	}

	entries, err := s.store.PromisesInRange(r.Context(), id, from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	total := 0
	for _, e := range entries {
		total += e.PromisedMinutes
	}
	writeJSON(w, map[string]any{
		"service_id":             id,
		"from":                   from,
		"to":                     to,
		"total_promised_minutes": total,
		"entries":                entries,
	})
}

func (s *Server) handleGetDowntime(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	from, to, ok := s.dateRange(w, r, id)
	if !ok {
		return
	}

	events, err := s.store.DowntimeInRange(r.Context(), id, from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, map[string]any{
		"service_id": id,
		"from":       from,
		"to":         to,
		"count":      len(events),
		"events":     events,
	})
}

func (s *Server) handleAvailability(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" || to == "" {
		writeError(w, http.StatusBadRequest, "from and to query parameters are required")
		return
	}

	result, err := s.calc.Compute(r.Context(), id, from, to)
	switch {
	case errors.Is(err, store.ErrServiceNotFound):
		writeError(w, http.StatusNotFound, err.Error())
		return
	case errors.Is(err, sla.ErrInvalidRange):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, map[string]any{
		"result": result,
		"status": sla.StatusFor(result.AvailabilityPct),
	})
}

type askRequest struct {
	Question string `json:"question"`
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	if s.asker == nil {
		writeError(w, http.StatusServiceUnavailable, "agent not configured")
		return
	}

	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Question == "" {
		writeError(w, http.StatusBadRequest, "question is required")
		return
	}

	answer, err := s.asker.Ask(r.Context(), req.Question)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, agent.ErrLoopLimit) {
			status = http.StatusUnprocessableEntity
		}
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, map[string]string{"answer": answer})
}

// dateRange reads and validates the from/to query params and checks that
// the service exists.
func (s *Server) dateRange(w http.ResponseWriter, r *http.Request, serviceID string) (string, string, bool) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" || to == "" {
		writeError(w, http.StatusBadRequest, "from and to query parameters are required")
		return "", "", false
	}

	fromDay, err := sla.ParseDay(from)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return "", "", false
	}
	toDay, err := sla.ParseDay(to)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return "", "", false
	}
	if fromDay.After(toDay) {
		writeError(w, http.StatusBadRequest, "from is after to")
		return "", "", false
	}

	if _, err := s.store.GetService(r.Context(), serviceID); err != nil {
		if errors.Is(err, store.ErrServiceNotFound) {
			writeError(w, http.StatusNotFound, err.Error())
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return "", "", false
	}

	return from, to, true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
