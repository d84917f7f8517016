package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/rcoelho/loja-virtual/internal/delivery/http/request"
	"github.com/rcoelho/loja-virtual/internal/delivery/http/response"
	"github.com/rcoelho/loja-virtual/internal/domain"
	"github.com/rcoelho/loja-virtual/internal/engine/catalog"
	"github.com/rcoelho/loja-virtual/internal/engine/form"
	"github.com/rcoelho/loja-virtual/internal/engine/ledger"
	"github.com/rcoelho/loja-virtual/internal/engine/sale"
	"github.com/rcoelho/loja-virtual/internal/engine/store"
	"github.com/rcoelho/loja-virtual/internal/pkg/logger"
)

// PainelHandler exposes the engine's derived views and commands to the
// back office UI. It owns no state of its own: every read is a pure
// derivation from the store, every write goes through a store command.
type PainelHandler struct {
	store    *store.Store
	flow     *sale.Flow
	logger   *logger.Logger
	comandos map[string]func(ctx context.Context, valor string) error
}

// NewPainelHandler creates the back office handler
func NewPainelHandler(st *store.Store, flow *sale.Flow, log *logger.Logger) *PainelHandler {
	h := &PainelHandler{
		store:  st,
		flow:   flow,
		logger: log,
	}

	// One dispatch table instead of a callback per control
	h.comandos = map[string]func(ctx context.Context, valor string) error{
		"setCategoria": func(_ context.Context, valor string) error {
			st.SetCategoria(valor)
			return nil
		},
		"setBusca": func(_ context.Context, valor string) error {
			st.SetBusca(valor)
			return nil
		},
		"alternarOrdem": func(_ context.Context, valor string) error {
			st.AlternarOrdem(catalog.Ordem(valor))
			return nil
		},
		"setBuscaVendas": func(_ context.Context, valor string) error {
			filtro := ledger.Filtro{Busca: valor}
			st.SetFiltroVendas(filtro)
			return nil
		},
		"recarregar": func(ctx context.Context, _ string) error {
			if err := st.LoadProdutos(ctx); err != nil {
				return err
			}
			return st.LoadVendas(ctx)
		},
	}

	return h
}

// ComandoRequest names an action from the dispatch table
type ComandoRequest struct {
	Acao  string `json:"acao"`
	Valor string `json:"valor"`
}

// Comando handles POST /painel/comandos
func (h *PainelHandler) Comando(w http.ResponseWriter, r *http.Request) {
	var req ComandoRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}

	cmd, ok := h.comandos[req.Acao]
	if !ok {
		response.Error(w, http.StatusBadRequest, "Ação desconhecida: "+req.Acao)
		return
	}

	if err := cmd(r.Context(), req.Valor); err != nil {
		// The store already tracked the failure; surface it for the UI
		response.Error(w, http.StatusBadGateway, err.Error())
		return
	}

	response.NoContent(w)
}

type estadoPayload struct {
	Estado   string `json:"estado"`
	Mensagem string `json:"mensagem,omitempty"`
}

// Catalogo handles GET /painel/catalogo: the filtered, searched and
// sorted product view plus everything the catalog page renders.
func (h *PainelHandler) Catalogo(w http.ResponseWriter, r *http.Request) {
	criteria := h.store.Criteria()
	estado, mensagem := h.store.EstadoCatalogo()

	response.Success(w, map[string]interface{}{
		"produtos":   h.store.Catalogo(),
		"categorias": h.store.Categorias(),
		"criteria": map[string]interface{}{
			"categoria": criteria.Categoria,
			"busca":     criteria.Busca,
			"ordem":     criteria.Ordem,
			"desc":      criteria.Desc,
		},
		"estado": estadoPayload{Estado: estado.String(), Mensagem: mensagem},
	})
}

// Vendas handles GET /painel/vendas: filtered history plus totals.
func (h *PainelHandler) Vendas(w http.ResponseWriter, r *http.Request) {
	totais := h.store.TotaisVendas()
	estado, mensagem := h.store.EstadoVendas()

	response.Success(w, map[string]interface{}{
		"vendas": h.store.Vendas(),
		"totais": map[string]interface{}{
			"vendas":           totais.Vendas,
			"valor_total":      totais.ValorTotal,
			"quantidade_total": totais.QuantidadeTotal,
		},
		"estado": estadoPayload{Estado: estado.String(), Mensagem: mensagem},
	})
}

// Dashboard handles GET /painel/dashboard
func (h *PainelHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.store.Dashboard())
}

// Disponiveis handles GET /painel/produtos-disponiveis: the products
// offered in the sale dialog (exhausted stock is not selectable).
func (h *PainelHandler) Disponiveis(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.store.Disponiveis())
}

// RegistrarVenda handles POST /painel/vendas: the sale execution flow.
func (h *PainelHandler) RegistrarVenda(w http.ResponseWriter, r *http.Request) {
	var req CriarVendaRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}

	venda, erros, err := h.flow.Submit(r.Context(), req.ProdutoID, req.Quantidade)
	if erros != nil {
		response.JSON(w, http.StatusBadRequest, map[string]interface{}{"erros": erros})
		return
	}
	if err != nil {
		h.handleEngineError(w, err)
		return
	}

	response.Created(w, venda)
}

// CriarProduto handles POST /painel/produtos
func (h *PainelHandler) CriarProduto(w http.ResponseWriter, r *http.Request) {
	var f form.ProdutoForm
	if err := request.DecodeJSON(r, &f); err != nil {
		response.Error(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}

	criado, erros, err := h.store.CriarProduto(r.Context(), f)
	if erros != nil {
		response.JSON(w, http.StatusBadRequest, map[string]interface{}{"erros": erros})
		return
	}
	if err != nil {
		h.handleEngineError(w, err)
		return
	}

	response.Created(w, criado)
}

// AtualizarProduto handles PUT /painel/produtos/{id}
func (h *PainelHandler) AtualizarProduto(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetInt64Param(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "ID de produto inválido")
		return
	}

	var f form.ProdutoForm
	if err := request.DecodeJSON(r, &f); err != nil {
		response.Error(w, http.StatusBadRequest, "Corpo da requisição inválido")
		return
	}

	atualizado, erros, err := h.store.AtualizarProduto(r.Context(), id, f)
	if erros != nil {
		response.JSON(w, http.StatusBadRequest, map[string]interface{}{"erros": erros})
		return
	}
	if err != nil {
		h.handleEngineError(w, err)
		return
	}

	response.Success(w, atualizado)
}

// RemoverProduto handles DELETE /painel/produtos/{id}
func (h *PainelHandler) RemoverProduto(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetInt64Param(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "ID de produto inválido")
		return
	}

	if err := h.store.RemoverProduto(r.Context(), id); err != nil {
		h.handleEngineError(w, err)
		return
	}

	response.NoContent(w)
}

// handleEngineError maps engine/gateway errors onto HTTP. Business
// rejections keep the server's literal reason.
func (h *PainelHandler) handleEngineError(w http.ResponseWriter, err error) {
	var rejeicao *domain.RejeicaoError

	switch {
	case errors.As(err, &rejeicao):
		response.Error(w, http.StatusBadRequest, rejeicao.Motivo)
	case errors.Is(err, domain.ErrNaoEncontrado):
		response.Error(w, http.StatusNotFound, "Produto não encontrado")
	case errors.Is(err, domain.ErrEntradaInvalida):
		response.Error(w, http.StatusBadRequest, "Entrada inválida")
	case errors.Is(err, domain.ErrIndisponivel):
		response.Error(w, http.StatusBadGateway, err.Error())
	default:
		h.logger.Error("Internal error in painel handler", err)
		response.Error(w, http.StatusInternalServerError, "Erro interno")
	}
}
