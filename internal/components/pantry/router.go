package pantry

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/hlog"

	"github.com/pantryapp/pantry/internal/components/session"
	"github.com/pantryapp/pantry/internal/shared/config"
	"github.com/pantryapp/pantry/internal/shared/middleware"
)

type (
	Router struct {
		service          Servicer
		enforceOwnership bool
	}

	listPageData struct {
		User    *session.Identity
		OwnerID uuid.UUID
		Items   []FoodItem
	}

	itemPageData struct {
		User    *session.Identity
		OwnerID uuid.UUID
		Item    *FoodItem
	}
)

func NewRouter(service Servicer, cfg *config.Config) chi.Router {
	router := &Router{
		service:          service,
		enforceOwnership: cfg.EnforceOwnership,
	}
	return router.Routes()
}

// Routes builds the nested pantry router, mounted under /users/{userId}/foods.
// Reads stay public; mutations pass the ownership guard, which is a no-op
// unless enforcement is enabled.
func (r *Router) Routes() chi.Router {
	router := chi.NewRouter()
	guard := middleware.NewOwnershipGuard(r.enforceOwnership)

	router.Get("/", r.Index)
	router.Get("/new", r.NewForm)
	router.Get("/{itemId}", r.Show)
	router.Get("/{itemId}/edit", r.EditForm)

	router.Group(func(router chi.Router) {
		router.Use(guard)
		router.Post("/", r.Create)
		router.Put("/{itemId}", r.Update)
		router.Delete("/{itemId}", r.Delete)
	})

	return router
}

// Index lists the pantry of the user named in the path.
func (r *Router) Index(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	logger := hlog.FromRequest(req)

	userID, ok := r.ownerID(w, req)
	if !ok {
		return
	}

	items, err := r.service.ListItems(ctx, userID)
	if err != nil {
		logger.Error().Err(err).Str("user_id", userID.String()).Msg("Error listing pantry items")
		http.Redirect(w, req, "/", http.StatusSeeOther)
		return
	}

	data := listPageData{
		User:    middleware.IdentityFromContext(ctx),
		OwnerID: userID,
		Items:   items,
	}
	r.render(w, req, "templates/foods_index.html", data)
}

// NewForm renders the add-item form.
func (r *Router) NewForm(w http.ResponseWriter, req *http.Request) {
	userID, ok := r.ownerID(w, req)
	if !ok {
		return
	}

	data := itemPageData{
		User:    middleware.IdentityFromContext(req.Context()),
		OwnerID: userID,
	}
	r.render(w, req, "templates/foods_new.html", data)
}

// Create appends a submitted item to the pantry and returns to the list.
func (r *Router) Create(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	logger := hlog.FromRequest(req)

	userID, ok := r.ownerID(w, req)
	if !ok {
		return
	}

	in := AddItemIn{Name: req.FormValue("name")}

	if _, err := r.service.AddItem(ctx, userID, in); err != nil {
		logger.Error().Err(err).Str("user_id", userID.String()).Msg("Error adding pantry item")
		http.Redirect(w, req, "/", http.StatusSeeOther)
		return
	}

	http.Redirect(w, req, fmt.Sprintf("/users/%s/foods", userID), http.StatusSeeOther)
}

// Show displays a single item.
func (r *Router) Show(w http.ResponseWriter, req *http.Request) {
	r.renderItem(w, req, "templates/foods_show.html")
}

// EditForm renders a pre-filled edit form for an item.
func (r *Router) EditForm(w http.ResponseWriter, req *http.Request) {
	r.renderItem(w, req, "templates/foods_edit.html")
}

// Update applies the enumerated mutable fields to an item and returns to the
// list.
func (r *Router) Update(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	logger := hlog.FromRequest(req)

	userID, ok := r.ownerID(w, req)
	if !ok {
		return
	}
	itemID, ok := r.itemID(w, req)
	if !ok {
		return
	}

	in := UpdateItemIn{}
	if name := req.FormValue("name"); name != "" {
		in.Name = &name
	}

	if _, err := r.service.UpdateItem(ctx, userID, itemID, in); err != nil {
		logger.Error().Err(err).Str("item_id", itemID.String()).Msg("Error updating pantry item")
		http.Redirect(w, req, "/", http.StatusSeeOther)
		return
	}

	http.Redirect(w, req, fmt.Sprintf("/users/%s/foods", userID), http.StatusSeeOther)
}

// Delete removes an item and returns to the list. Removing an absent item is
// a silent no-op.
func (r *Router) Delete(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	logger := hlog.FromRequest(req)

	userID, ok := r.ownerID(w, req)
	if !ok {
		return
	}
	itemID, ok := r.itemID(w, req)
	if !ok {
		return
	}

	if err := r.service.RemoveItem(ctx, userID, itemID); err != nil {
		logger.Error().Err(err).Str("item_id", itemID.String()).Msg("Error removing pantry item")
		http.Redirect(w, req, "/", http.StatusSeeOther)
		return
	}

	http.Redirect(w, req, fmt.Sprintf("/users/%s/foods", userID), http.StatusSeeOther)
}

func (r *Router) renderItem(w http.ResponseWriter, req *http.Request, templatePath string) {
	ctx := req.Context()
	logger := hlog.FromRequest(req)

	userID, ok := r.ownerID(w, req)
	if !ok {
		return
	}
	itemID, ok := r.itemID(w, req)
	if !ok {
		return
	}

	item, err := r.service.GetItem(ctx, userID, itemID)
	if err != nil {
		logger.Error().Err(err).Str("item_id", itemID.String()).Msg("Error getting pantry item")
		http.Redirect(w, req, "/", http.StatusSeeOther)
		return
	}

	data := itemPageData{
		User:    middleware.IdentityFromContext(ctx),
		OwnerID: userID,
		Item:    item,
	}
	r.render(w, req, templatePath, data)
}

func (r *Router) ownerID(w http.ResponseWriter, req *http.Request) (uuid.UUID, bool) {
	userID, err := uuid.Parse(chi.URLParam(req, "userId"))
	if err != nil {
		hlog.FromRequest(req).Warn().Str("user_id", chi.URLParam(req, "userId")).Msg("Invalid user ID")
		http.Redirect(w, req, "/", http.StatusSeeOther)
		return uuid.Nil, false
	}
	return userID, true
}

func (r *Router) itemID(w http.ResponseWriter, req *http.Request) (uuid.UUID, bool) {
	itemID, err := uuid.Parse(chi.URLParam(req, "itemId"))
	if err != nil {
		hlog.FromRequest(req).Warn().Str("item_id", chi.URLParam(req, "itemId")).Msg("Invalid item ID")
		http.Redirect(w, req, "/", http.StatusSeeOther)
		return uuid.Nil, false
	}
	return itemID, true
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
