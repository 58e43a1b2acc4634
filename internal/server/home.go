package server

import (
	"html/template"
	"net/http"

	"github.com/rs/zerolog/hlog"

	"github.com/pantryapp/pantry/internal/components/session"
	"github.com/pantryapp/pantry/internal/shared/middleware"
)

type homePageData struct {
	User *session.Identity
}

// NewHomeHandler renders the landing page with the current user, or the
// anonymous variant with sign-in/up links.
func NewHomeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := hlog.FromRequest(r)

		tmpl, err := template.ParseFiles("templates/home.html")
		if err != nil {
			logger.Error().Err(err).Msg("Failed to parse home template")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		data := homePageData{User: middleware.IdentityFromContext(r.Context())}
		if err := tmpl.Execute(w, data); err != nil {
			logger.Error().Err(err).Msg("Failed to execute home template")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
	}
}
