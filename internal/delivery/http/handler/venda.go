package handler

import (
	"errors"
	"net/http"

	"github.com/rcoelho/loja-virtual/internal/delivery/http/request"
	"github.com/rcoelho/loja-virtual/internal/delivery/http/response"
	"github.com/rcoelho/loja-virtual/internal/domain"
	"github.com/rcoelho/loja-virtual/internal/pkg/logger"
	"github.com/rcoelho/loja-virtual/internal/usecase/venda"
)

// VendaHandler handles HTTP requests for sales
type VendaHandler struct {
	service *venda.Service
	logger  *logger.Logger
}

// NewVendaHandler creates a new sale handler
func NewVendaHandler(service *venda.Service, log *logger.Logger) *VendaHandler {
	return &VendaHandler{
		service: service,
		logger:  log,
	}
}

// CriarVendaRequest is the request body for registering a sale
type CriarVendaRequest struct {
	ProdutoID  int64 `json:"produto_id"`
	Quantidade int64 `json:"quantidade"`
}

// Listar handles GET /api/vendas with optional data_inicio/data_fim
// (YYYY-MM-DD) query parameters.
func (h *VendaHandler) Listar(w http.ResponseWriter, r *http.Request) {
	periodo := domain.Periodo{
		Inicio: request.GetDateQuery(r, "data_inicio"),
		Fim:    request.GetDateQuery(r, "data_fim"),
	}

	vendas, err := h.service.Listar(r.Context(), periodo)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, vendas)
}

// Criar handles POST /api/vendas. The stock verdict comes from the
// repository transaction; an insufficient-stock rejection is surfaced
// with its literal message so clients can show it verbatim.
func (h *VendaHandler) Criar(w http.ResponseWriter, r *http.Request) {
	var req CriarVendaRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}

	venda, err := h.service.Registrar(r.Context(), req.ProdutoID, req.Quantidade)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Created(w, venda)
}

// handleError maps service errors onto the HTTP contract
func (h *VendaHandler) handleError(w http.ResponseWriter, err error) {
	var estoqueErr *domain.EstoqueInsuficienteError

	switch {
	case errors.As(err, &estoqueErr):
		response.Error(w, http.StatusBadRequest, estoqueErr.Error())
	case errors.Is(err, domain.ErrQuantidadeInvalida):
		response.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNaoEncontrado):
		response.Error(w, http.StatusNotFound, "Produto não encontrado")
	default:
		h.logger.Error("Internal error in venda handler", err)
		response.Error(w, http.StatusInternalServerError, "Erro interno")
	}
}
