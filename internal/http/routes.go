package httpx

import (
	"log/slog"
	"net/http"

	"github.com/khunglong92/dogiadung-sub001/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Categories *service.CategoryService
	Products   *service.ProductService
	Offerings  *service.OfferingService
	Projects   *service.ProjectService
	Contacts   *service.ContactService
	Users      *service.UserService
	Sinks      *service.WebhookSinkService
	Auth       *service.AuthService
	OAuth      bool // expose the OAuth begin/complete routes
	Logger     *slog.Logger
}

// NewRouter creates and configures the HTTP router.
//
// Read endpoints for the marketing site content (categories, products,
// services, projects) and contact submission are public; every write and the
// contact/user/webhook surfaces require an admin bearer token.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	admin := RequireAdmin(services.Auth)

	registerAuthRoutes(mux, &AuthHandlers{Svc: services.Auth, Logger: services.Logger}, services)
	registerCategoryRoutes(mux, &CategoryHandlers{Svc: services.Categories}, admin)
	registerProductRoutes(mux, &ProductHandlers{Svc: services.Products}, admin)
	registerServiceRoutes(mux, &ServiceHandlers{Svc: services.Offerings}, admin)
	registerProjectRoutes(mux, &ProjectHandlers{Svc: services.Projects}, admin)
	registerContactRoutes(mux, &ContactHandlers{Svc: services.Contacts}, admin)
	registerUserRoutes(mux, &UserHandlers{Svc: services.Users}, admin)
	registerWebhookSinkRoutes(mux, &WebhookSinkHandlers{Svc: services.Sinks}, admin)

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	return mux
}

type middleware func(http.Handler) http.Handler

func handle(mux *http.ServeMux, pattern string, h http.HandlerFunc, mws ...middleware) {
	var handler http.Handler = h
	for i := len(mws) - 1; i >= 0; i-- {
		handler = mws[i](handler)
	}
	mux.Handle(pattern, handler)
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers, services RouterServices) {
	handle(mux, "POST /api/auth/login", h.Login)
	handle(mux, "POST /api/auth/refresh", h.Refresh)
	handle(mux, "POST /api/auth/logout", h.Logout)
	handle(mux, "GET /api/auth/profile", h.Profile, RequireAuth(services.Auth))
	if services.OAuth {
		handle(mux, "GET /api/auth/oauth/begin", h.BeginOAuth)
		handle(mux, "POST /api/auth/oauth/complete", h.CompleteOAuth)
	}
}

func registerCategoryRoutes(mux *http.ServeMux, h *CategoryHandlers, admin middleware) {
	handle(mux, "GET /api/categories", h.List)
	handle(mux, "GET /api/categories/{id}", h.GetByID)
	handle(mux, "POST /api/categories", h.Create, admin)
	handle(mux, "PUT /api/categories/{id}", h.Update, admin)
	handle(mux, "DELETE /api/categories/{id}", h.Delete, admin)
}

func registerProductRoutes(mux *http.ServeMux, h *ProductHandlers, admin middleware) {
	handle(mux, "GET /api/products", h.List)
	handle(mux, "GET /api/products/{id}", h.GetByID)
	handle(mux, "POST /api/products", h.Create, admin)
	handle(mux, "PUT /api/products/{id}", h.Update, admin)
	handle(mux, "DELETE /api/products/{id}", h.Delete, admin)
}

func registerServiceRoutes(mux *http.ServeMux, h *ServiceHandlers, admin middleware) {
	handle(mux, "GET /api/services", h.List)
	handle(mux, "GET /api/services/{id}", h.GetByID)
	handle(mux, "POST /api/services", h.Create, admin)
	handle(mux, "PUT /api/services/{id}", h.Update, admin)
	handle(mux, "DELETE /api/services/{id}", h.Delete, admin)
}

func registerProjectRoutes(mux *http.ServeMux, h *ProjectHandlers, admin middleware) {
	handle(mux, "GET /api/projects", h.List)
	handle(mux, "GET /api/projects/{id}", h.GetByID)
	handle(mux, "POST /api/projects", h.Create, admin)
	handle(mux, "PUT /api/projects/{id}", h.Update, admin)
	handle(mux, "DELETE /api/projects/{id}", h.Delete, admin)
}

func registerContactRoutes(mux *http.ServeMux, h *ContactHandlers, admin middleware) {
	handle(mux, "POST /api/contacts", h.Submit)
	handle(mux, "GET /api/contacts", h.List, admin)
	handle(mux, "GET /api/contacts/{id}", h.GetByID, admin)
	handle(mux, "PUT /api/contacts/{id}", h.Update, admin)
	handle(mux, "DELETE /api/contacts/{id}", h.Delete, admin)
}

func registerUserRoutes(mux *http.ServeMux, h *UserHandlers, admin middleware) {
	handle(mux, "GET /api/users", h.List, admin)
	handle(mux, "GET /api/users/{id}", h.GetByID, admin)
	handle(mux, "POST /api/users", h.Create, admin)
	handle(mux, "PUT /api/users/{id}", h.Update, admin)
	handle(mux, "DELETE /api/users/{id}", h.Delete, admin)
}

func registerWebhookSinkRoutes(mux *http.ServeMux, h *WebhookSinkHandlers, admin middleware) {
	handle(mux, "GET /api/webhook-sinks", h.List, admin)
	handle(mux, "GET /api/webhook-sinks/{id}", h.GetByID, admin)
	handle(mux, "POST /api/webhook-sinks", h.Create, admin)
	handle(mux, "PUT /api/webhook-sinks/{id}", h.Update, admin)
	handle(mux, "DELETE /api/webhook-sinks/{id}", h.Delete, admin)
}
