// Package store owns the in-memory mirror of the catalog and the sale
// ledger. The collections are written only by completed gateway
// responses flowing through the command methods below; every read is a
// pure derivation over the current snapshot.
package store

import (
	"context"
	"sync"

	"github.com/rcoelho/loja-virtual/internal/domain"
	"github.com/rcoelho/loja-virtual/internal/engine/catalog"
	"github.com/rcoelho/loja-virtual/internal/engine/dashboard"
	"github.com/rcoelho/loja-virtual/internal/engine/form"
	"github.com/rcoelho/loja-virtual/internal/engine/ledger"
	"github.com/rcoelho/loja-virtual/internal/engine/request"
	"github.com/rcoelho/loja-virtual/internal/pkg/logger"
)

// Gateway is the remote persistence contract the store consumes.
type Gateway interface {
	ListarProdutos(ctx context.Context) ([]*domain.Produto, error)
	ListarVendas(ctx context.Context) ([]*domain.Venda, error)
	CriarProduto(ctx context.Context, produto *domain.Produto) (*domain.Produto, error)
	AtualizarProduto(ctx context.Context, produto *domain.Produto) (*domain.Produto, error)
	RemoverProduto(ctx context.Context, id int64) error
	CriarVenda(ctx context.Context, produtoID, quantidade int64) (*domain.Venda, error)
}

// Store holds the catalog and ledger mirror plus the view criteria.
type Store struct {
	gw     Gateway
	logger *logger.Logger

	mu       sync.RWMutex
	produtos []*domain.Produto
	vendas   []*domain.Venda
	criteria catalog.Criteria
	filtro   ledger.Filtro

	// One tracker per distinct operation
	cargaProdutos *request.Tracker
	cargaVendas   *request.Tracker
	criacao       *request.Tracker
	atualizacao   *request.Tracker
	remocao       *request.Tracker
}

// New creates an empty store bound to a gateway
func New(gw Gateway, log *logger.Logger) *Store {
	return &Store{
		gw:            gw,
		logger:        log,
		criteria:      catalog.DefaultCriteria(),
		cargaProdutos: request.NewTracker(),
		cargaVendas:   request.NewTracker(),
		criacao:       request.NewTracker(),
		atualizacao:   request.NewTracker(),
		remocao:       request.NewTracker(),
	}
}

// Gateway exposes the bound gateway, e.g. for the sale execution flow.
func (s *Store) Gateway() Gateway {
	return s.gw
}

// ---- load commands ----

// LoadProdutos refreshes the catalog from the gateway. Responses to
// superseded loads are discarded: only a completion newer than the last
// accepted one may install its collection.
func (s *Store) LoadProdutos(ctx context.Context) error {
	seq := s.cargaProdutos.Begin()

	produtos, err := s.gw.ListarProdutos(ctx)
	if err != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.cargaProdutos.Fail(seq, err.Error()) {
			// A failed load leaves an empty catalog, not a stale one
			s.produtos = nil
			s.logger.Error("Failed to load produtos from gateway", err)
		}
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.cargaProdutos.Succeed(seq) {
		s.logger.Debugf("Discarding stale catalog load (seq=%d)", seq)
		return nil
	}
	s.produtos = produtos
	return nil
}

// LoadVendas refreshes the sale ledger, with the same stale-response rule.
func (s *Store) LoadVendas(ctx context.Context) error {
	seq := s.cargaVendas.Begin()

	vendas, err := s.gw.ListarVendas(ctx)
	if err != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.cargaVendas.Fail(seq, err.Error()) {
			s.vendas = nil
			s.logger.Error("Failed to load vendas from gateway", err)
		}
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.cargaVendas.Succeed(seq) {
		s.logger.Debugf("Discarding stale ledger load (seq=%d)", seq)
		return nil
	}
	s.vendas = vendas
	return nil
}

// ---- product mutation commands ----

// CriarProduto validates the form, issues the create and patches the
// local catalog with the authoritative response. Field errors come back
// in the map; the error return covers gateway failures.
func (s *Store) CriarProduto(ctx context.Context, f form.ProdutoForm) (*domain.Produto, map[string]string, error) {
	produto, erros := f.Validar()
	if erros != nil {
		return nil, erros, domain.ErrEntradaInvalida
	}

	seq := s.criacao.Begin()
	criado, err := s.gw.CriarProduto(ctx, produto)
	if err != nil {
		s.criacao.Fail(seq, err.Error())
		return nil, nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.criacao.Succeed(seq) {
		s.produtos = append(s.produtos, criado)
	}
	return criado, nil, nil
}

// AtualizarProduto validates and issues a full-field update.
func (s *Store) AtualizarProduto(ctx context.Context, id int64, f form.ProdutoForm) (*domain.Produto, map[string]string, error) {
	produto, erros := f.Validar()
	if erros != nil {
		return nil, erros, domain.ErrEntradaInvalida
	}
	produto.ID = id

	seq := s.atualizacao.Begin()
	atualizado, err := s.gw.AtualizarProduto(ctx, produto)
	if err != nil {
		s.atualizacao.Fail(seq, err.Error())
		return nil, nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.atualizacao.Succeed(seq) {
		for i, p := range s.produtos {
			if p.ID == id {
				s.produtos[i] = atualizado
				break
			}
		}
	}
	return atualizado, nil, nil
}

// RemoverProduto deletes a product; historical sales keep displaying it
// through their denormalized name snapshot.
func (s *Store) RemoverProduto(ctx context.Context, id int64) error {
	seq := s.remocao.Begin()
	if err := s.gw.RemoverProduto(ctx, id); err != nil {
		s.remocao.Fail(seq, err.Error())
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.remocao.Succeed(seq) {
		restantes := s.produtos[:0:0]
		for _, p := range s.produtos {
			if p.ID != id {
				restantes = append(restantes, p)
			}
		}
		s.produtos = restantes
	}
	return nil
}

// AcrescentarVenda patches a completed sale into the ledger (most recent
// first). Called by the sale execution flow with the gateway's response.
func (s *Store) AcrescentarVenda(venda *domain.Venda) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vendas = append([]*domain.Venda{venda}, s.vendas...)
}

// ---- view criteria commands ----

// SetCategoria selects the category filter ("all" keeps everything)
func (s *Store) SetCategoria(categoria string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria.Categoria = categoria
}

// SetBusca sets the catalog search term
func (s *Store) SetBusca(termo string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria.Busca = termo
}

// AlternarOrdem toggles the sort column/direction
func (s *Store) AlternarOrdem(ordem catalog.Ordem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria = s.criteria.Alternar(ordem)
}

// SetFiltroVendas sets the ledger period/search filter
func (s *Store) SetFiltroVendas(filtro ledger.Filtro) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filtro = filtro
}

// ---- derived reads ----

// Criteria returns the current catalog view criteria
func (s *Store) Criteria() catalog.Criteria {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.criteria
}

// Catalogo derives the filtered, searched and sorted product view
func (s *Store) Catalogo() []*domain.Produto {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return catalog.DeriveView(s.produtos, s.criteria)
}

// Categorias derives the distinct category set over the unfiltered catalog
func (s *Store) Categorias() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return catalog.Categorias(s.produtos)
}

// Produto looks a product up in the current snapshot by ID. The returned
// record is a copy; callers cannot mutate the mirror through it.
func (s *Store) Produto(id int64) (*domain.Produto, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.produtos {
		if p.ID == id {
			copia := *p
			return &copia, true
		}
	}
	return nil, false
}

// Disponiveis derives the products offered in the sale form: only those
// with stock to sell.
func (s *Store) Disponiveis() []*domain.Produto {
	s.mu.RLock()
	defer s.mu.RUnlock()
	disponiveis := make([]*domain.Produto, 0, len(s.produtos))
	for _, p := range s.produtos {
		if p.Estoque > 0 {
			disponiveis = append(disponiveis, p)
		}
	}
	return disponiveis
}

// Vendas derives the filtered sale history view
func (s *Store) Vendas() []*domain.Venda {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ledger.Aplicar(s.vendas, s.filtro)
}

// TotaisVendas reduces the filtered sale view into its totals
func (s *Store) TotaisVendas() ledger.Totais {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ledger.Somar(ledger.Aplicar(s.vendas, s.filtro))
}

// Dashboard reduces the loaded (not filtered) collections into the
// summary metrics.
func (s *Store) Dashboard() dashboard.Resumo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return dashboard.Calcular(s.produtos, s.vendas)
}

// ---- operation state reads ----

// EstadoCatalogo reports the catalog load state
func (s *Store) EstadoCatalogo() (request.State, string) {
	return s.cargaProdutos.Snapshot()
}

// EstadoVendas reports the ledger load state
func (s *Store) EstadoVendas() (request.State, string) {
	return s.cargaVendas.Snapshot()
}
