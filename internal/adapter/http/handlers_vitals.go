package adapthttp

import (
	"net/http"

	"healthtrack/internal/app"
)

func (s *Server) handleVitals(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := userFromContext(r)

	switch r.Method {
	case http.MethodGet:
		limit := intQuery(r, "limit", 30)
		items, err := s.vitals.ListRecent(ctx, user.ID, limit)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items})

	case http.MethodPost:
		var body app.VitalSignInput
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		v, err := s.vitals.Record(ctx, user.ID, body)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		s.metrics.ObserveRecord("vital_sign")
		writeJSON(w, http.StatusCreated, map[string]any{"entry": v})

	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleVital(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := userFromContext(r)
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		v, err := s.vitals.Get(ctx, user.ID, id)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"entry": v})

	case http.MethodPut:
		var body app.VitalSignInput
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		v, err := s.vitals.Update(ctx, user.ID, id, body)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"entry": v})

	case http.MethodDelete:
		if err := s.vitals.Delete(ctx, user.ID, id); err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "deleted": true})

	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleGoal(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := userFromContext(r)

	switch r.Method {
	case http.MethodGet:
		g, err := s.goals.Get(ctx, user.ID)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"goal": g})

	case http.MethodPut:
		var body app.GoalInput
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		g, err := s.goals.Set(ctx, user.ID, body)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"goal": g})

	case http.MethodDelete:
		if err := s.goals.Clear(ctx, user.ID); err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "deleted": true})

	default:
		methodNotAllowed(w)
	}
}
