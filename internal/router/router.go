package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/muskan-fatima97/ClassyShop/internal/handler"
	"github.com/muskan-fatima97/ClassyShop/internal/middleware"
	"github.com/muskan-fatima97/ClassyShop/internal/platform/auth"
	"github.com/muskan-fatima97/ClassyShop/internal/platform/metrics"
	"go.uber.org/zap"
)

// Handlers bundles the per-resource handlers the router mounts.
type Handlers struct {
	Auth     *handler.AuthHandler
	Category *handler.CategoryHandler
	Brand    *handler.BrandHandler
	Product  *handler.ProductHandler
	Order    *handler.OrderHandler
	User     *handler.UserHandler
}

// Deps carries the middleware collaborators.
type Deps struct {
	Tokens     *auth.TokenManager
	Users      middleware.UserLoader
	Metrics    *metrics.Manager
	Logger     *zap.Logger
	UploadsDir string
}

func New(h Handlers, deps Deps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.Metrics(deps.Metrics))

	authRequired := middleware.JWTAuth(deps.Tokens, deps.Users, deps.Logger)

	setupAuthRoutes(r, h.Auth, authRequired)
	setupCategoryRoutes(r, h.Category, authRequired)
	setupBrandRoutes(r, h.Brand, authRequired)
	setupProductRoutes(r, h.Product, authRequired)
	setupUserRoutes(r, h.User, authRequired)
	setupOrderRoutes(r, h.Order, authRequired)

	if deps.UploadsDir != "" {
		fileServer := http.StripPrefix("/uploads/", http.FileServer(http.Dir(deps.UploadsDir)))
		r.Get("/uploads/*", fileServer.ServeHTTP)
	}

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "API endpoint not found"})
	})

	return r
}

func setupAuthRoutes(r *chi.Mux, h *handler.AuthHandler, authRequired func(http.Handler) http.Handler) {
	r.Post("/auth/signup", h.Signup)
	r.Post("/auth/login", h.Login)
	r.Post("/auth/forget-password", h.ForgetPassword)
	r.Post("/auth/reset-password/{token}", h.ResetPassword)

	r.Group(func(protected chi.Router) {
		protected.Use(authRequired)
		protected.Post("/auth/logout", h.Logout)
	})
}

func setupCategoryRoutes(r *chi.Mux, h *handler.CategoryHandler, authRequired func(http.Handler) http.Handler) {
	r.Group(func(protected chi.Router) {
		protected.Use(authRequired)
		protected.Get("/category/all", h.GetAll)

		protected.Group(func(admin chi.Router) {
			admin.Use(middleware.AdminOnly)
			admin.Post("/category/create", h.Create)
			admin.Put("/category/update/{id}", h.Update)
			admin.Delete("/category/delete/{id}", h.Delete)
		})
	})
}

func setupBrandRoutes(r *chi.Mux, h *handler.BrandHandler, authRequired func(http.Handler) http.Handler) {
	r.Group(func(protected chi.Router) {
		protected.Use(authRequired)
		protected.Get("/brand/all", h.GetAll)
		protected.Get("/brand/get/{id}", h.GetByID)

		protected.Group(func(admin chi.Router) {
			admin.Use(middleware.AdminOnly)
			admin.Post("/brand/create", h.Create)
			admin.Put("/brand/update/{id}", h.Update)
			admin.Delete("/brand/delete/{id}", h.Delete)
		})
	})
}

func setupProductRoutes(r *chi.Mux, h *handler.ProductHandler, authRequired func(http.Handler) http.Handler) {
	// The catalogue listing is public; everything else needs a token.
	r.Get("/product/all", h.GetAll)

	r.Group(func(protected chi.Router) {
		protected.Use(authRequired)
		protected.Get("/product/search", h.Search)
		protected.Get("/product/get/{id}", h.GetByID)
		protected.Get("/product/category/{name}", h.GetByCategory)
		protected.Get("/product/brand/{name}", h.GetByBrand)

		protected.Group(func(admin chi.Router) {
			admin.Use(middleware.AdminOnly)
			admin.Post("/product/create", h.Create)
			admin.Put("/product/update/{id}", h.Update)
			admin.Delete("/product/delete/{id}", h.Delete)
		})
	})
}

func setupUserRoutes(r *chi.Mux, h *handler.UserHandler, authRequired func(http.Handler) http.Handler) {
	r.Group(func(protected chi.Router) {
		protected.Use(authRequired)
		protected.Group(func(admin chi.Router) {
			admin.Use(middleware.AdminOnly)
			admin.Get("/user/all", h.GetAll)
		})
	})
}

func setupOrderRoutes(r *chi.Mux, h *handler.OrderHandler, authRequired func(http.Handler) http.Handler) {
	r.Group(func(protected chi.Router) {
		protected.Use(authRequired)
		protected.Post("/order/create", h.Create)
		protected.Get("/order/user/{userId}", h.GetUserOrders)
		protected.Get("/order/get", h.GetAllOrders)
		protected.Put("/order/status/{id}", h.UpdateStatus)
	})
}
