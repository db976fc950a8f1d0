package adapthttp

import (
	"net/http"
	"net/netip"

	"healthtrack/internal/app"
	"healthtrack/internal/metrics"
	"healthtrack/internal/stats"
)

// Services groups the application services the HTTP adapter drives.
type Services struct {
	Vitals    *app.VitalService
	Goals     *app.GoalService
	Stats     *app.StatsService
	Charts    *app.ChartsService
	Exercises *app.ExerciseService
	Meals     *app.MealService
	Profiles  *app.ProfileService
	Auth      *app.AuthService
}

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	vitals    *app.VitalService
	goals     *app.GoalService
	stats     *app.StatsService
	charts    *app.ChartsService
	exercises *app.ExerciseService
	meals     *app.MealService
	profiles  *app.ProfileService
	authSvc   *app.AuthService

	oidcConfig    *OIDCConfig
	metrics       *metrics.Manager
	defaultPeriod stats.Period
	webDir        string
	disableAuth   bool

	// Forward auth is off while forwardHeader is empty.
	forwardHeader  string
	trustedProxies []netip.Prefix
}

// New creates a Server wired to the given application services.
func New(svc Services, webDir string) *Server {
	return &Server{
		vitals:        svc.Vitals,
		goals:         svc.Goals,
		stats:         svc.Stats,
		charts:        svc.Charts,
		exercises:     svc.Exercises,
		meals:         svc.Meals,
		profiles:      svc.Profiles,
		authSvc:       svc.Auth,
		oidcConfig:    &OIDCConfig{},
		defaultPeriod: stats.PeriodWeek,
		webDir:        webDir,
	}
}

// WithoutAuth disables authentication; every request acts as user 1.
func (s *Server) WithoutAuth() *Server {
	s.disableAuth = true
	return s
}

// WithForwardAuth accepts the user named in header, but only on requests
// whose peer address falls within one of trusted.
func (s *Server) WithForwardAuth(header string, trusted []netip.Prefix) *Server {
	s.forwardHeader = http.CanonicalHeaderKey(header)
	s.trustedProxies = trusted
	return s
}

// WithOIDC enables the SSO login flow.
func (s *Server) WithOIDC(cfg *OIDCConfig) *Server {
	if cfg != nil {
		s.oidcConfig = cfg
	}
	return s
}

// WithMetrics records request metrics on m and serves them on /metrics.
func (s *Server) WithMetrics(m *metrics.Manager) *Server {
	s.metrics = m
	return s
}

// WithDefaultPeriod sets the period used when a request names none.
func (s *Server) WithDefaultPeriod(p stats.Period) *Server {
	s.defaultPeriod = p
	return s
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	public := http.NewServeMux()
	public.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
	public.HandleFunc("/auth/login", s.handleLogin)
	public.HandleFunc("/auth/logout", s.handleLogout)
	public.HandleFunc("/auth/setup", s.handleSetupUser)
	public.HandleFunc("/auth/config", s.handleConfig)
	public.HandleFunc("/auth/sso/login", s.handleSSOLogin)
	public.HandleFunc("/auth/sso/callback", s.handleSSOCallback)

	api := http.NewServeMux()
	api.HandleFunc("/auth/me", s.handleMe)

	api.HandleFunc("/vitals", s.handleVitals)
	api.HandleFunc("/vitals/{id}", s.handleVital)
	api.HandleFunc("/goal", s.handleGoal)
	api.HandleFunc("/profile", s.handleProfile)
	api.HandleFunc("/stats", s.handleStats)
	api.HandleFunc("/charts/vitals", s.handleChartsVitals)

	api.HandleFunc("/exercises", s.handleExercises)
	api.HandleFunc("/exercises/summary", s.handleExerciseSummary)
	api.HandleFunc("/exercises/{id}", s.handleExercise)

	api.HandleFunc("/meals", s.handleMeals)
	api.HandleFunc("/meals/summary", s.handleMealSummary)
	api.HandleFunc("/meals/undo-last", s.handleMealUndoLast)
	api.HandleFunc("/meals/{id}", s.handleMeal)

	public.Handle("/", s.authMiddleware(api))

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", public))
	if s.metrics != nil {
		root.Handle("/metrics", s.metrics.Handler())
	}
	root.Handle("/", spaFromDisk(s.webDir))

	return withRequestID(s.loggingMiddleware(s.metricsMiddleware(withNoCache(root))))
}
