package relatorio

import (
	"context"

	"github.com/rcoelho/loja-virtual/internal/domain"
	"github.com/rcoelho/loja-virtual/internal/engine/catalog"
	"github.com/rcoelho/loja-virtual/internal/engine/dashboard"
	"github.com/rcoelho/loja-virtual/internal/pkg/logger"
)

// Cache is the summary cache the service reads through
type Cache interface {
	GetResumo(ctx context.Context) (*dashboard.Resumo, error)
	SetResumo(ctx context.Context, resumo *dashboard.Resumo) error
}

// Service computes the report views over the live collections
type Service struct {
	produtos domain.ProdutoRepository
	vendas   domain.VendaRepository
	cache    Cache
	logger   *logger.Logger
}

// NewService creates a new report service
func NewService(produtos domain.ProdutoRepository, vendas domain.VendaRepository, cache Cache, log *logger.Logger) *Service {
	return &Service{
		produtos: produtos,
		vendas:   vendas,
		cache:    cache,
		logger:   log,
	}
}

// EstoqueBaixo lists products whose stock sits under the limit.
// limite <= 0 falls back to the fixed low-stock policy.
func (s *Service) EstoqueBaixo(ctx context.Context, limite int64) ([]*domain.Produto, error) {
	if limite <= 0 {
		limite = dashboard.LimiteEstoqueBaixo
	}

	produtos, err := s.produtos.Listar(ctx)
	if err != nil {
		s.logger.Error("Failed to list produtos for report", err)
		return nil, err
	}

	baixos := []*domain.Produto{}
	for _, p := range produtos {
		if p.Estoque < limite {
			baixos = append(baixos, p)
		}
	}
	return baixos, nil
}

// Categorias lists the distinct category set across the catalog
func (s *Service) Categorias(ctx context.Context) ([]string, error) {
	produtos, err := s.produtos.Listar(ctx)
	if err != nil {
		s.logger.Error("Failed to list produtos for report", err)
		return nil, err
	}

	return catalog.Categorias(produtos), nil
}

// Resumo computes the dashboard summary with read-through caching
func (s *Service) Resumo(ctx context.Context) (*dashboard.Resumo, error) {
	if resumo, err := s.cache.GetResumo(ctx); err == nil {
		s.logger.Debugf("Cache hit for resumo")
		return resumo, nil
	}

	produtos, err := s.produtos.Listar(ctx)
	if err != nil {
		s.logger.Error("Failed to list produtos for resumo", err)
		return nil, err
	}

	vendas, err := s.vendas.Listar(ctx)
	if err != nil {
		s.logger.Error("Failed to list vendas for resumo", err)
		return nil, err
	}

	resumo := dashboard.Calcular(produtos, vendas)

	if err := s.cache.SetResumo(ctx, &resumo); err != nil {
		s.logger.Warnf("Failed to cache resumo: %v", err)
	}

	return &resumo, nil
}
