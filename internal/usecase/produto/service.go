package produto

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/rcoelho/loja-virtual/internal/domain"
	"github.com/rcoelho/loja-virtual/internal/pkg/logger"
	pkgvalidator "github.com/rcoelho/loja-virtual/internal/pkg/validator"
)

// Cache is the product-list cache the service reads through
type Cache interface {
	GetProdutos(ctx context.Context, categoria string) ([]*domain.Produto, error)
	SetProdutos(ctx context.Context, categoria string, produtos []*domain.Produto) error
	Invalidar(ctx context.Context) error
}

// Service handles product business logic
type Service struct {
	repo     domain.ProdutoRepository
	cache    Cache
	validate *validator.Validate
	logger   *logger.Logger
}

// NewService creates a new product service
func NewService(repo domain.ProdutoRepository, cache Cache, log *logger.Logger) *Service {
	return &Service{
		repo:     repo,
		cache:    cache,
		validate: pkgvalidator.Get(),
		logger:   log,
	}
}

// valido runs the struct tags plus the decimal checks the validator
// cannot express.
func (s *Service) valido(produto *domain.Produto) bool {
	if err := s.validate.Struct(produto); err != nil {
		return false
	}
	return produto.Preco.IsPositive()
}

// Criar creates a new product
func (s *Service) Criar(ctx context.Context, produto *domain.Produto) error {
	if !s.valido(produto) {
		s.logger.Warnf("Produto validation failed (nome=%q)", produto.Nome)
		return domain.ErrEntradaInvalida
	}

	if err := s.repo.Criar(ctx, produto); err != nil {
		s.logger.Error("Failed to create produto", err)
		return err
	}

	s.invalidar(ctx)

	s.logger.WithFields(map[string]interface{}{
		"produto_id": produto.ID,
		"nome":       produto.Nome,
	}).Info("Produto created successfully")

	return nil
}

// BuscarPorID retrieves a product by ID
func (s *Service) BuscarPorID(ctx context.Context, id int64) (*domain.Produto, error) {
	produto, err := s.repo.BuscarPorID(ctx, id)
	if err != nil {
		if err == domain.ErrNaoEncontrado {
			s.logger.Debugf("Produto not found: %d", id)
		} else {
			s.logger.Error("Failed to get produto", err)
		}
		return nil, err
	}

	return produto, nil
}

// Listar retrieves products with read-through caching; categoria ""
// means the full catalog.
func (s *Service) Listar(ctx context.Context, categoria string) ([]*domain.Produto, error) {
	if produtos, err := s.cache.GetProdutos(ctx, categoria); err == nil {
		s.logger.Debugf("Cache hit for produtos (categoria=%q)", categoria)
		return produtos, nil
	}

	var produtos []*domain.Produto
	var err error
	if categoria == "" {
		produtos, err = s.repo.Listar(ctx)
	} else {
		produtos, err = s.repo.ListarPorCategoria(ctx, categoria)
	}
	if err != nil {
		s.logger.Error("Failed to list produtos", err)
		return nil, err
	}

	if err := s.cache.SetProdutos(ctx, categoria, produtos); err != nil {
		s.logger.Warnf("Failed to cache produtos (categoria=%q): %v", categoria, err)
	}

	return produtos, nil
}

// Atualizar replaces the full field set of an existing product
func (s *Service) Atualizar(ctx context.Context, produto *domain.Produto) error {
	if !s.valido(produto) {
		s.logger.Warnf("Produto validation failed (id=%d)", produto.ID)
		return domain.ErrEntradaInvalida
	}

	if err := s.repo.Atualizar(ctx, produto); err != nil {
		s.logger.Error("Failed to update produto", err)
		return err
	}

	s.invalidar(ctx)

	s.logger.WithFields(map[string]interface{}{
		"produto_id": produto.ID,
		"nome":       produto.Nome,
	}).Info("Produto updated successfully")

	return nil
}

// Remover deletes a product
func (s *Service) Remover(ctx context.Context, id int64) error {
	if err := s.repo.Remover(ctx, id); err != nil {
		s.logger.Error("Failed to delete produto", err)
		return err
	}

	s.invalidar(ctx)

	s.logger.WithFields(map[string]interface{}{
		"produto_id": id,
	}).Info("Produto deleted successfully")

	return nil
}

func (s *Service) invalidar(ctx context.Context) {
	// Stale lists would show wrong stock to every storefront client
	if err := s.cache.Invalidar(ctx); err != nil {
		s.logger.Warnf("Failed to invalidate produto cache: %v", err)
	}
}
