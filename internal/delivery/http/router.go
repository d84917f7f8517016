package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/rcoelho/loja-virtual/internal/config"
	"github.com/rcoelho/loja-virtual/internal/delivery/http/handler"
	"github.com/rcoelho/loja-virtual/internal/delivery/http/middleware"
	"github.com/rcoelho/loja-virtual/internal/delivery/http/response"
	"github.com/rcoelho/loja-virtual/internal/pkg/logger"
)

// Router holds HTTP handlers and router configuration for the API
type Router struct {
	produtoHandler   *handler.ProdutoHandler
	vendaHandler     *handler.VendaHandler
	relatorioHandler *handler.RelatorioHandler
	logger           *logger.Logger
	cfg              *config.Config
}

// NewRouter creates a new HTTP router for the data gateway API
func NewRouter(
	produtoHandler *handler.ProdutoHandler,
	vendaHandler *handler.VendaHandler,
	relatorioHandler *handler.RelatorioHandler,
	cfg *config.Config,
	log *logger.Logger,
) *Router {
	return &Router{
		produtoHandler:   produtoHandler,
		vendaHandler:     vendaHandler,
		relatorioHandler: relatorioHandler,
		logger:           log,
		cfg:              cfg,
	}
}

// Setup configures and returns the HTTP router
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(rt.logger))
	r.Use(chimiddleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   rt.cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", rt.healthCheck)

	r.Route("/api", func(r chi.Router) {
		r.Route("/produtos", func(r chi.Router) {
			r.Post("/", rt.produtoHandler.Criar)
			r.Get("/", rt.produtoHandler.Listar)
			r.Get("/{id}", rt.produtoHandler.BuscarPorID)
			r.Put("/{id}", rt.produtoHandler.Atualizar)
			r.Delete("/{id}", rt.produtoHandler.Remover)
		})

		r.Route("/vendas", func(r chi.Router) {
			r.Get("/", rt.vendaHandler.Listar)
			r.Post("/", rt.vendaHandler.Criar)
		})

		r.Route("/relatorios", func(r chi.Router) {
			r.Get("/produtos-estoque-baixo", rt.relatorioHandler.EstoqueBaixo)
			r.Get("/categorias", rt.relatorioHandler.Categorias)
			r.Get("/resumo", rt.relatorioHandler.Resumo)
		})
	})

	return r
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
