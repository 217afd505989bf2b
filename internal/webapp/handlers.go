package webapp

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"searchlight/internal/core/database"
	"searchlight/internal/logger"
)

func (app *Application) healthHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := app.Store.Ping(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("health check failed")
		app.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	app.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (app *Application) loginPageHandler(w http.ResponseWriter, r *http.Request) {
	if app.Sessions.Authenticated(r) {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	app.render(w, http.StatusOK, "login.html", loginPage{})
}

func (app *Application) loginHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.render(w, http.StatusBadRequest, "login.html", loginPage{Error: "Invalid form submission."})
		return
	}

	password := r.PostFormValue("password")
	if password == "" {
		app.render(w, http.StatusOK, "login.html", loginPage{})
		return
	}
	if !app.Sessions.CheckPassword(password) {
		logger.Logger.Warn().Msg("dashboard login failed")
		app.render(w, http.StatusUnauthorized, "login.html", loginPage{Error: "Incorrect password."})
		return
	}

	token, err := app.Sessions.Issue()
	if err != nil {
		logger.Logger.Error().Err(err).Msg("failed to issue session token")
		app.render(w, http.StatusInternalServerError, "login.html", loginPage{Error: "Could not start a session, try again."})
		return
	}
	app.Sessions.setCookie(w, r, token)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (app *Application) logoutHandler(w http.ResponseWriter, r *http.Request) {
	app.Sessions.clearCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// dashboardHandler merender tab yang dipilih. Ranking hanya dimuat saat
// tab analisis video aktif.
func (app *Application) dashboardHandler(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("tab")
	if key == "" {
		key = defaultTab
	}
	data := dashboardPage{Tabs: tabs, Active: findTab(key)}
	if data.Active.Key == "videos" {
		data.Rankings = app.Analytics.VideoRanking(r.Context())
	}
	app.render(w, http.StatusOK, "dashboard.html", data)
}

func (app *Application) videoDetailHandler(w http.ResponseWriter, r *http.Request) {
	detail, err := app.Analytics.VideoDetail(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, database.ErrNotFound) {
		app.render(w, http.StatusNotFound, "detail.html", detailPage{Error: "Video not found."})
		return
	}
	if err != nil {
		logger.Logger.Error().Err(err).Msg("failed to fetch video detail")
		app.render(w, http.StatusInternalServerError, "detail.html", detailPage{Error: "Could not load this video."})
		return
	}
	app.render(w, http.StatusOK, "detail.html", detailPage{Detail: detail})
}

// API
func (app *Application) apiRankingsHandler(w http.ResponseWriter, r *http.Request) {
	rankings := app.Analytics.VideoRanking(r.Context())
	app.writeJSON(w, http.StatusOK, map[string]interface{}{
		"data":  rankings,
		"count": len(rankings),
	})
}

func (app *Application) apiVideoDetailHandler(w http.ResponseWriter, r *http.Request) {
	detail, err := app.Analytics.VideoDetail(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, database.ErrNotFound) {
		app.writeJSON(w, http.StatusNotFound, map[string]string{"error": "Video not found"})
		return
	}
	if err != nil {
		logger.Logger.Error().Err(err).Msg("failed to fetch video detail")
		app.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Failed to fetch video"})
		return
	}
	app.writeJSON(w, http.StatusOK, detail)
}
