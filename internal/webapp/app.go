package webapp

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"searchlight/internal/core/models"
	"searchlight/internal/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = []string{"login.html", "dashboard.html", "detail.html"}

// Analytics adalah sumber ranking dan detail video.
type Analytics interface {
	VideoRanking(ctx context.Context) []models.VideoRanking
	VideoDetail(ctx context.Context, videoID string) (*models.VideoDetail, error)
}

// Pinger dipakai oleh /healthz.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Application menyimpan dependensi untuk semua handler dashboard.
type Application struct {
	Store       Pinger
	Analytics   Analytics
	Sessions    *Sessions
	Templates   map[string]*template.Template
	Gatherer    prometheus.Gatherer
	CORSOrigins []string
}

// NewApplication mem-parse template dan menyusun Application.
func NewApplication(store Pinger, svc Analytics, sessions *Sessions, gatherer prometheus.Gatherer, corsOrigins []string) (*Application, error) {
	templates, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	return &Application{
		Store:       store,
		Analytics:   svc,
		Sessions:    sessions,
		Templates:   templates,
		Gatherer:    gatherer,
		CORSOrigins: corsOrigins,
	}, nil
}

func parseTemplates() (map[string]*template.Template, error) {
	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		t, err := template.New(page).Funcs(templateFuncs).ParseFS(templateFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", page, err)
		}
		templates[page] = t
	}
	return templates, nil
}

// Routes menyusun router dashboard.
func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(app.logRequests)
	r.Use(app.instrument)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", app.healthHandler)
	r.Handle("/metrics", promhttp.HandlerFor(app.Gatherer, promhttp.HandlerOpts{}))

	r.Get("/login", app.loginPageHandler)
	r.Post("/login", app.loginHandler)
	r.Post("/logout", app.logoutHandler)

	// Halaman
	r.Group(func(r chi.Router) {
		r.Use(app.requirePage)
		r.Get("/", app.dashboardHandler)
		r.Get("/videos/{id}", app.videoDetailHandler)
	})

	// API
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   app.CORSOrigins,
			AllowedMethods:   []string{"GET", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
		r.Use(app.requireAPI)
		r.Get("/rankings", app.apiRankingsHandler)
		r.Get("/videos/{id}", app.apiVideoDetailHandler)
	})

	return r
}

// Serve memulai server HTTP pada port yang diberikan dan berhenti saat ctx selesai.
func (app *Application) Serve(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.Logger.Info().Msg("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (app *Application) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Logger.Error().Err(err).Msg("error encoding JSON")
	}
}

// render mengeksekusi template ke buffer dulu supaya error template tidak
// menghasilkan halaman setengah jadi.
func (app *Application) render(w http.ResponseWriter, status int, page string, data interface{}) {
	t, ok := app.Templates[page]
	if !ok {
		logger.Logger.Error().Str("page", page).Msg("template not found")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		logger.Logger.Error().Err(err).Str("page", page).Msg("error rendering template")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
