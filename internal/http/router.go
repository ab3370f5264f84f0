package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/vendas-ahora/api-vendas/internal/http/handlers"
	"github.com/vendas-ahora/api-vendas/internal/service/auth"
	"github.com/vendas-ahora/api-vendas/internal/service/client"
	"github.com/vendas-ahora/api-vendas/internal/service/eventservice"
	"github.com/vendas-ahora/api-vendas/internal/service/product"
	"github.com/vendas-ahora/api-vendas/internal/service/sale"
	"github.com/vendas-ahora/api-vendas/internal/service/uploads"
	"github.com/vendas-ahora/api-vendas/internal/service/user"
	"github.com/vendas-ahora/api-vendas/internal/validators"
)

const HealthPath = "/api/v1/health"

// Deps collects the external collaborators the routes need. Events may
// be nil when no broker is configured.
type Deps struct {
	DB       *gorm.DB
	Uploads  uploads.Service
	Events   eventservice.SalePublisher
	Tokens   auth.TokenService
	Validate *validator.Validate
}

func NewRouter(deps Deps) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Logger, middleware.Recoverer)

	validate := deps.Validate
	if validate == nil {
		validate = validators.New()
	}

	statusHandler := handlers.NewStatusHandler()
	clientHandler := &handlers.ClientHandler{Service: client.NewClientService(deps.DB, validate)}
	productHandler := &handlers.ProductHandler{Service: product.NewProductService(deps.DB, validate, deps.Uploads)}
	saleHandler := &handlers.SaleHandler{Service: sale.NewSaleService(deps.DB, validate, deps.Events)}
	userHandler := &handlers.UserHandler{Service: user.NewUserService(deps.DB, validate, deps.Tokens)}

	r.Get(HealthPath, func(w http.ResponseWriter, r *http.Request) {
		statusHandler.Health(w)
	})

	r.Post("/signup", userHandler.Signup)
	r.Post("/login", userHandler.Login)

	r.Route("/clients", func(r chi.Router) {
		r.Get("/", clientHandler.List)
		r.Post("/", clientHandler.Create)
		r.Get("/{id}", clientHandler.Get)
		r.Put("/{id}", clientHandler.Update)
		r.Delete("/{id}", clientHandler.Delete)
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/", productHandler.List)
		r.Post("/", productHandler.Create)
		r.Get("/{id}", productHandler.Get)
		r.Put("/{id}", productHandler.Update)
		r.Delete("/{id}", productHandler.Delete)
	})

	r.Post("/sales", saleHandler.Create)

	return r
}
