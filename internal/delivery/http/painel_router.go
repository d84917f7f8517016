package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/rcoelho/loja-virtual/internal/delivery/http/handler"
	"github.com/rcoelho/loja-virtual/internal/delivery/http/middleware"
	"github.com/rcoelho/loja-virtual/internal/pkg/logger"
)

// NewPainelRouter wires the back office surface: derived views as JSON
// plus the command and sale endpoints.
func NewPainelRouter(painel *handler.PainelHandler, log *logger.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Timeout(30 * time.Second))

	r.Route("/painel", func(r chi.Router) {
		r.Get("/catalogo", painel.Catalogo)
		r.Get("/vendas", painel.Vendas)
		r.Get("/dashboard", painel.Dashboard)
		r.Get("/produtos-disponiveis", painel.Disponiveis)

		r.Post("/comandos", painel.Comando)
		r.Post("/vendas", painel.RegistrarVenda)

		r.Post("/produtos", painel.CriarProduto)
		r.Put("/produtos/{id}", painel.AtualizarProduto)
		r.Delete("/produtos/{id}", painel.RemoverProduto)
	})

	return r
}
