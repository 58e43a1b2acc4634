package auth

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/pantryapp/pantry/internal/components/session"
	"github.com/pantryapp/pantry/internal/shared/config"
	"github.com/pantryapp/pantry/internal/shared/cookie"
	"github.com/pantryapp/pantry/internal/shared/middleware"
)

type (
	Router struct {
		service   Servicer
		sessions  session.Servicer
		secretKey []byte
	}

	formPageData struct {
		User *session.Identity
	}
)

func NewRouter(service Servicer, sessions session.Servicer, cfg *config.Config) chi.Router {
	router := &Router{
		service:   service,
		sessions:  sessions,
		secretKey: cfg.SecretKey(),
	}
	return router.Routes()
}

func (r *Router) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/sign-up", r.SignUpPage)
	router.Post("/sign-up", r.HandleSignUp)
	router.Get("/sign-in", r.SignInPage)
	router.Post("/sign-in", r.HandleSignIn)
	router.Get("/sign-out", r.HandleSignOut)
	return router
}

func (r *Router) SignUpPage(w http.ResponseWriter, req *http.Request) {
	r.renderForm(w, req, "templates/sign_up.html")
}

func (r *Router) SignInPage(w http.ResponseWriter, req *http.Request) {
	r.renderForm(w, req, "templates/sign_in.html")
}

// HandleSignUp registers a new user. Domain failures answer with a plain-text
// message; storage failures are logged and collapse to a redirect home.
func (r *Router) HandleSignUp(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	logger := hlog.FromRequest(req)

	in := RegisterIn{
		Username:        req.FormValue("username"),
		Password:        req.FormValue("password"),
		ConfirmPassword: req.FormValue("confirmPassword"),
	}

	logger.Debug().Str("username", in.Username).Msg("Registration attempt")

	_, err := r.service.Register(ctx, in)
	switch {
	case err == nil:
		logger.Debug().Str("username", in.Username).Msg("Registration successful")
		http.Redirect(w, req, "/auth/sign-in", http.StatusSeeOther)
	case errors.Is(err, ErrDuplicateUsername):
		writePlainText(w, http.StatusConflict, "Username already taken.")
	case errors.Is(err, ErrPasswordMismatch):
		writePlainText(w, http.StatusBadRequest, "Password and Confirm Password must match")
	case errors.Is(err, ErrValidation):
		writePlainText(w, http.StatusBadRequest, "Username and password are required.")
	default:
		logger.Error().Err(err).Str("username", in.Username).Msg("Registration failed")
		http.Redirect(w, req, "/", http.StatusSeeOther)
	}
}

// HandleSignIn verifies credentials and starts a session. The failure message
// never reveals whether the username exists.
func (r *Router) HandleSignIn(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	logger := hlog.FromRequest(req)

	username := req.FormValue("username")
	password := req.FormValue("password")

	logger.Debug().Str("username", username).Msg("Login attempt")

	identity, err := r.service.Authenticate(ctx, username, password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			logger.Warn().Str("username", username).Msg("Login failed: invalid credentials")
			writePlainText(w, http.StatusUnauthorized, "Login failed. Please try again.")
			return
		}
		logger.Error().Err(err).Str("username", username).Msg("Login failed")
		http.Redirect(w, req, "/", http.StatusSeeOther)
		return
	}

	token, err := r.sessions.Start(ctx, *identity)
	if err != nil {
		logger.Error().Err(err).Str("username", username).Msg("Login failed: could not start session")
		http.Redirect(w, req, "/", http.StatusSeeOther)
		return
	}

	if err := cookie.SetCookie(w, token, r.secretKey); err != nil {
		logger.Error().Err(err).Str("username", username).Msg("Login failed: could not set cookie")
		http.Redirect(w, req, "/", http.StatusSeeOther)
		return
	}

	logger.Debug().Str("username", username).Str("user_id", identity.UserID.String()).Msg("Login successful")
	http.Redirect(w, req, "/", http.StatusSeeOther)
}

// HandleSignOut ends the session bound to the cookie, if any, and always
// redirects home.
func (r *Router) HandleSignOut(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	logger := hlog.FromRequest(req)

	if token, err := cookie.GetCookie(req, r.secretKey); err == nil {
		if err := r.sessions.End(ctx, *token); err != nil {
			logger.Error().Err(err).Msg("Failed to end session")
		}
	}

	cookie.DeleteCookie(w)
	http.Redirect(w, req, "/", http.StatusSeeOther)
}

func (r *Router) renderForm(w http.ResponseWriter, req *http.Request, templatePath string) {
	logger := hlog.FromRequest(req)

	tmpl, err := template.ParseFiles(templatePath)
	if err != nil {
		logger.Error().Err(err).Str("template", templatePath).Msg("Failed to parse template")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	data := formPageData{User: middleware.IdentityFromContext(req.Context())}
	if err := tmpl.Execute(w, data); err != nil {
		logger.Error().Err(err).Str("template", templatePath).Msg("Failed to execute template")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func writePlainText(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	fmt.Fprintln(w, message)
}
