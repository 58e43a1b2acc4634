package user

import (
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/hlog"

	"github.com/pantryapp/pantry/internal/components/pantry"
	"github.com/pantryapp/pantry/internal/components/session"
	"github.com/pantryapp/pantry/internal/shared/middleware"
)

type (
	Router struct {
		service      Servicer
		pantries     pantry.Servicer
		pantryRouter chi.Router
	}

	indexPageData struct {
		User  *session.Identity
		Users []Summary
	}

	showPageData struct {
		User    *session.Identity
		Profile *Summary
		Pantry  []pantry.FoodItem
	}
)

func NewRouter(service Servicer, pantries pantry.Servicer, pantryRouter chi.Router) chi.Router {
	router := &Router{
		service:      service,
		pantries:     pantries,
		pantryRouter: pantryRouter,
	}
	return router.Routes()
}

// Routes serves the community pages and hosts the nested pantry resource
// under /{userId}/foods.
func (r *Router) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", r.Index)
	router.Get("/{userId}", r.Show)
	router.Mount("/{userId}/foods", r.pantryRouter)
	return router
}

// Index lists every registered user.
func (r *Router) Index(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	logger := hlog.FromRequest(req)

	users, err := r.service.List(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing users")
		http.Redirect(w, req, "/", http.StatusSeeOther)
		return
	}

	data := indexPageData{
		User:  middleware.IdentityFromContext(ctx),
		Users: users,
	}
	r.render(w, req, "templates/users_index.html", data)
}

// Show renders one user's public profile: username plus pantry contents.
func (r *Router) Show(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	logger := hlog.FromRequest(req)

	id, err := uuid.Parse(chi.URLParam(req, "userId"))
	if err != nil {
		logger.Warn().Str("user_id", chi.URLParam(req, "userId")).Msg("Invalid user ID")
		http.Redirect(w, req, "/", http.StatusSeeOther)
		return
	}

	profile, err := r.service.Get(ctx, id)
	if err != nil {
		logger.Error().Err(err).Str("user_id", id.String()).Msg("Error getting user profile")
		http.Redirect(w, req, "/", http.StatusSeeOther)
		return
	}

	items, err := r.pantries.ListItems(ctx, id)
	if err != nil {
		logger.Error().Err(err).Str("user_id", id.String()).Msg("Error listing profile pantry")
		http.Redirect(w, req, "/", http.StatusSeeOther)
		return
	}

	data := showPageData{
		User:    middleware.IdentityFromContext(ctx),
		Profile: profile,
		Pantry:  items,
	}
	r.render(w, req, "templates/users_show.html", data)
}

func (r *Router) render(w http.ResponseWriter, req *http.Request, templatePath string, data interface{}) {
	logger := hlog.FromRequest(req)

	tmpl, err := template.ParseFiles(templatePath)
	if err != nil {
		logger.Error().Err(err).Str("template", templatePath).Msg("Failed to parse template")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html")
	if err := tmpl.Execute(w, data); err != nil {
		logger.Error().Err(err).Str("template", templatePath).Msg("Failed to execute template")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
