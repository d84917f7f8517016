package handler

import (
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/rcoelho/loja-virtual/internal/delivery/http/request"
	"github.com/rcoelho/loja-virtual/internal/delivery/http/response"
	"github.com/rcoelho/loja-virtual/internal/domain"
	"github.com/rcoelho/loja-virtual/internal/pkg/logger"
	"github.com/rcoelho/loja-virtual/internal/usecase/produto"
)

// ProdutoHandler handles HTTP requests for products
type ProdutoHandler struct {
	service *produto.Service
	logger  *logger.Logger
}

// NewProdutoHandler creates a new product handler
func NewProdutoHandler(service *produto.Service, log *logger.Logger) *ProdutoHandler {
	return &ProdutoHandler{
		service: service,
		logger:  log,
	}
}

// ProdutoRequest is the request body for creating or updating a product
type ProdutoRequest struct {
	Nome      string          `json:"nome"`
	Categoria string          `json:"categoria"`
	Preco     decimal.Decimal `json:"preco"`
	Estoque   int64           `json:"estoque"`
}

// Criar handles POST /api/produtos
// @Summary Create a new product
// @Tags Produtos
// @Accept json
// @Produce json
// @Param produto body ProdutoRequest true "Product fields"
// @Success 201 {object} domain.Produto
// @Failure 400 {object} map[string]string
// @Router /produtos [post]
func (h *ProdutoHandler) Criar(w http.ResponseWriter, r *http.Request) {
	var req ProdutoRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}

	produto := &domain.Produto{
		Nome:      req.Nome,
		Categoria: req.Categoria,
		Preco:     req.Preco,
		Estoque:   req.Estoque,
	}

	if err := h.service.Criar(r.Context(), produto); err != nil {
		h.handleError(w, err)
		return
	}

	response.Created(w, produto)
}

// BuscarPorID handles GET /api/produtos/{id}
func (h *ProdutoHandler) BuscarPorID(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetInt64Param(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "ID de produto inválido")
		return
	}

	produto, err := h.service.BuscarPorID(r.Context(), id)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, produto)
}

// Listar handles GET /api/produtos with an optional categoria filter
func (h *ProdutoHandler) Listar(w http.ResponseWriter, r *http.Request) {
	categoria := r.URL.Query().Get("categoria")

	produtos, err := h.service.Listar(r.Context(), categoria)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, produtos)
}

// Atualizar handles PUT /api/produtos/{id} with the full field set
func (h *ProdutoHandler) Atualizar(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetInt64Param(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "ID de produto inválido")
		return
	}

	var req ProdutoRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}

	produto := &domain.Produto{
		ID:        id,
		Nome:      req.Nome,
		Categoria: req.Categoria,
		Preco:     req.Preco,
		Estoque:   req.Estoque,
	}

	if err := h.service.Atualizar(r.Context(), produto); err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, produto)
}

// Remover handles DELETE /api/produtos/{id}
func (h *ProdutoHandler) Remover(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetInt64Param(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "ID de produto inválido")
		return
	}

	if err := h.service.Remover(r.Context(), id); err != nil {
		h.handleError(w, err)
		return
	}

	response.NoContent(w)
}

// handleError maps service errors onto the HTTP contract
func (h *ProdutoHandler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNaoEncontrado):
		response.Error(w, http.StatusNotFound, "Produto não encontrado")
	case errors.Is(err, domain.ErrEntradaInvalida):
		response.Error(w, http.StatusBadRequest, "Entrada inválida")
	default:
		h.logger.Error("Internal error in produto handler", err)
		response.Error(w, http.StatusInternalServerError, "Erro interno")
	}
}
