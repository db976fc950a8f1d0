package adapthttp

import (
	"net/http"

	"healthtrack/internal/app"
)

func (s *Server) handleExercises(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := userFromContext(r)

	switch r.Method {
	case http.MethodGet:
		items, err := s.exercises.ListRecent(ctx, user.ID, intQuery(r, "limit", 30))
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items})

	case http.MethodPost:
		var body app.ExerciseInput
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		e, err := s.exercises.Record(ctx, user.ID, body)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		s.metrics.ObserveRecord("exercise")
		writeJSON(w, http.StatusCreated, map[string]any{"entry": e})

	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleExercise(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		methodNotAllowed(w)
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.exercises.Delete(r.Context(), userFromContext(r).ID, id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "deleted": true})
}

func (s *Server) handleExerciseSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	period, err := s.periodQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	summary, err := s.exercises.Summary(r.Context(), userFromContext(r).ID, period)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleMeals(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := userFromContext(r)

	switch r.Method {
	case http.MethodGet:
		items, err := s.meals.ListRecent(ctx, user.ID, intQuery(r, "limit", 30))
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items})

	case http.MethodPost:
		var body app.MealInput
		if err := parseJSON(r, &body); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		m, err := s.meals.Record(ctx, user.ID, body)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		s.metrics.ObserveRecord("meal")
		writeJSON(w, http.StatusCreated, map[string]any{"entry": m})

	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleMeal(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		methodNotAllowed(w)
		return
	}
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.meals.Delete(r.Context(), userFromContext(r).ID, id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "deleted": true})
}

func (s *Server) handleMealUndoLast(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	undone, id, err := s.meals.UndoLast(r.Context(), userFromContext(r).ID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"undone": undone, "id": id})
}

func (s *Server) handleMealSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	period, err := s.periodQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	summary, err := s.meals.Summary(r.Context(), userFromContext(r).ID, period)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
