package http

import (
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/vacation-shop/go-backend/docs" // Импорт сгенерированных файлов
	"github.com/vacation-shop/go-backend/internal/usecase"
	"github.com/vacation-shop/go-backend/pkg/logger"
)

type Router struct {
	router *chi.Mux
	auth   *AuthMiddleware
	logger logger.Logger
}

func NewRouter(router *chi.Mux, auth *AuthMiddleware, logger logger.Logger) *Router {
	return &Router{router: router, auth: auth, logger: logger}
}

// Deps — юзкейсы и инфраструктура, которые раздаёт роутер.
type Deps struct {
	ProductUC   usecase.ProductUC
	CategoryUC  usecase.CategoryUC
	UserUC      usecase.UserUC
	OrderUC     usecase.OrderUC
	EmailUC     usecase.EmailUC
	ImagesInfra usecase.ImagesInfra
}

func (r *Router) Init(deps *Deps) {
	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"), // ссылка на JSON
	))

	r.router.Route("/api/v1", func(v1 chi.Router) {
		r.registerProductRoutes(v1, NewProductHandler(deps.ProductUC, r.logger))
		r.registerCategoryRoutes(v1, NewCategoryHandler(deps.CategoryUC, r.logger))
		r.registerUserRoutes(v1, NewUserHandler(deps.UserUC, r.logger))
		r.registerOrderRoutes(v1, NewOrderHandler(deps.OrderUC, deps.EmailUC, r.logger))
		r.registerEmailRoutes(v1, NewEmailHandler(deps.EmailUC, r.logger))
		r.registerImageRoutes(v1, NewImageHandler(deps.ImagesInfra, r.logger))
	})
}

func (r *Router) registerProductRoutes(router chi.Router, h *ProductHandler) {
	router.Route("/products", func(pr chi.Router) {
		pr.With(r.auth.OptionalAuth).Get("/", h.getProducts)
		pr.Get("/health", h.health)
		pr.Get("/{id}", h.getProductByID)

		pr.Group(func(admin chi.Router) {
			admin.Use(r.auth.RequireAuth, r.auth.RequireAdmin)
			admin.Post("/", h.addProduct)
			admin.Put("/{id}", h.updateProduct)
			admin.Delete("/{id}", h.deleteProduct)
		})
	})
}

func (r *Router) registerCategoryRoutes(router chi.Router, h *CategoryHandler) {
	router.Route("/categories", func(ct chi.Router) {
		ct.Get("/", h.getCategories)
		ct.Get("/{id}", h.getCategoryByID)

		ct.Group(func(admin chi.Router) {
			admin.Use(r.auth.RequireAuth, r.auth.RequireAdmin)
			admin.Post("/", h.addCategory)
		})
	})
}

func (r *Router) registerUserRoutes(router chi.Router, h *UserHandler) {
	router.Route("/users", func(us chi.Router) {
		us.Post("/", h.register)
		us.Post("/login", h.login)

		us.Group(func(authed chi.Router) {
			authed.Use(r.auth.RequireAuth)
			authed.Get("/{id}", h.getUserByID)
			authed.Put("/{id}", h.updateUser)
			authed.Post("/change-password", h.changePassword)
		})
	})
}

func (r *Router) registerOrderRoutes(router chi.Router, h *OrderHandler) {
	router.Route("/orders", func(or chi.Router) {
		or.Use(r.auth.RequireAuth)
		or.Post("/", h.addOrder)
		or.Get("/{id}", h.getOrderByID)
		or.Get("/user/{userId}", h.getOrdersByUserID)
	})
}

func (r *Router) registerEmailRoutes(router chi.Router, h *EmailHandler) {
	router.Route("/email", func(em chi.Router) {
		em.Use(r.auth.RequireAuth)
		em.Post("/send-order-confirmation", h.sendOrderConfirmation)
	})
}

func (r *Router) registerImageRoutes(router chi.Router, h *ImageHandler) {
	router.Route("/images", func(im chi.Router) {
		im.Get("/", h.getImage)
		im.Get("/list", h.listImages)

		im.Group(func(admin chi.Router) {
			admin.Use(r.auth.RequireAuth, r.auth.RequireAdmin)
			admin.Post("/", h.uploadImages)
			admin.Delete("/", h.deleteImage)
		})
	})
}

// Handler возвращает собранный chi.Mux.
func (r *Router) Handler() *chi.Mux {
	return r.router
}
