package adapthttp

import (
	"net/http"

	"healthtrack/internal/stats"
)

// units maps each reported metric to its display unit.
var units = func() map[stats.Metric]string {
	m := make(map[stats.Metric]string, len(stats.Descriptors))
	for _, d := range stats.Descriptors {
		m[d.Metric] = d.Unit
	}
	return m
}()

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	period, err := s.periodQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	user := userFromContext(r)
	report, err := s.stats.Report(r.Context(), user.ID, period)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"stats": report,
		"units": units,
	})
}

func (s *Server) handleChartsVitals(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	user := userFromContext(r)
	days := intQuery(r, "days", 90)
	unit := r.URL.Query().Get("unit")
	if unit == "" {
		unit = "kg"
	}

	series, err := s.charts.GetVitalSeries(r.Context(), user.ID, days, unit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, series)
}
