package handler

import (
	"net/http"

	"github.com/rcoelho/loja-virtual/internal/delivery/http/request"
	"github.com/rcoelho/loja-virtual/internal/delivery/http/response"
	"github.com/rcoelho/loja-virtual/internal/engine/dashboard"
	"github.com/rcoelho/loja-virtual/internal/pkg/logger"
	"github.com/rcoelho/loja-virtual/internal/usecase/relatorio"
)

// RelatorioHandler handles HTTP requests for the report endpoints
type RelatorioHandler struct {
	service *relatorio.Service
	logger  *logger.Logger
}

// NewRelatorioHandler creates a new report handler
func NewRelatorioHandler(service *relatorio.Service, log *logger.Logger) *RelatorioHandler {
	return &RelatorioHandler{
		service: service,
		logger:  log,
	}
}

// EstoqueBaixo handles GET /api/relatorios/produtos-estoque-baixo
func (h *RelatorioHandler) EstoqueBaixo(w http.ResponseWriter, r *http.Request) {
	limite := request.GetIntQuery(r, "limite", dashboard.LimiteEstoqueBaixo)

	produtos, err := h.service.EstoqueBaixo(r.Context(), limite)
	if err != nil {
		h.logger.Error("Internal error in relatorio handler", err)
		response.Error(w, http.StatusInternalServerError, "Erro interno")
		return
	}

	response.Success(w, map[string]interface{}{
		"limite":         limite,
		"total_produtos": len(produtos),
		"produtos":       produtos,
	})
}

// Categorias handles GET /api/relatorios/categorias
func (h *RelatorioHandler) Categorias(w http.ResponseWriter, r *http.Request) {
	categorias, err := h.service.Categorias(r.Context())
	if err != nil {
		h.logger.Error("Internal error in relatorio handler", err)
		response.Error(w, http.StatusInternalServerError, "Erro interno")
		return
	}

	response.Success(w, map[string]interface{}{
		"total":      len(categorias),
		"categorias": categorias,
	})
}

// Resumo handles GET /api/relatorios/resumo
func (h *RelatorioHandler) Resumo(w http.ResponseWriter, r *http.Request) {
	resumo, err := h.service.Resumo(r.Context())
	if err != nil {
		h.logger.Error("Internal error in relatorio handler", err)
		response.Error(w, http.StatusInternalServerError, "Erro interno")
		return
	}

	response.Success(w, resumo)
}
