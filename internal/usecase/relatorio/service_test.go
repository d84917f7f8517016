package relatorio

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rcoelho/loja-virtual/internal/domain"
	"github.com/rcoelho/loja-virtual/internal/engine/dashboard"
	"github.com/rcoelho/loja-virtual/internal/pkg/logger"
)

// MockProdutoRepository is a mock implementation of domain.ProdutoRepository
type MockProdutoRepository struct {
	mock.Mock
}

func (m *MockProdutoRepository) Criar(ctx context.Context, p *domain.Produto) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProdutoRepository) BuscarPorID(ctx context.Context, id int64) (*domain.Produto, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Produto), args.Error(1)
}

func (m *MockProdutoRepository) Listar(ctx context.Context) ([]*domain.Produto, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Produto), args.Error(1)
}

func (m *MockProdutoRepository) ListarPorCategoria(ctx context.Context, categoria string) ([]*domain.Produto, error) {
	args := m.Called(ctx, categoria)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Produto), args.Error(1)
}

func (m *MockProdutoRepository) Atualizar(ctx context.Context, p *domain.Produto) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProdutoRepository) Remover(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockVendaRepository is a mock implementation of domain.VendaRepository
type MockVendaRepository struct {
	mock.Mock
}

func (m *MockVendaRepository) Listar(ctx context.Context) ([]*domain.Venda, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Venda), args.Error(1)
}

func (m *MockVendaRepository) ListarPorPeriodo(ctx context.Context, periodo domain.Periodo) ([]*domain.Venda, error) {
	args := m.Called(ctx, periodo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Venda), args.Error(1)
}

func (m *MockVendaRepository) Registrar(ctx context.Context, produtoID, quantidade int64) (*domain.Venda, error) {
	args := m.Called(ctx, produtoID, quantidade)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Venda), args.Error(1)
}

// MockResumoCache is a mock implementation of Cache
type MockResumoCache struct {
	mock.Mock
}

func (m *MockResumoCache) GetResumo(ctx context.Context) (*dashboard.Resumo, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dashboard.Resumo), args.Error(1)
}

func (m *MockResumoCache) SetResumo(ctx context.Context, resumo *dashboard.Resumo) error {
	args := m.Called(ctx, resumo)
	return args.Error(0)
}

func produtosEstoque() []*domain.Produto {
	return []*domain.Produto{
		{ID: 1, Nome: "A", Categoria: "Frutas", Preco: decimal.NewFromInt(1), Estoque: 0},
		{ID: 2, Nome: "B", Categoria: "Frutas", Preco: decimal.NewFromInt(1), Estoque: 3},
		{ID: 3, Nome: "C", Categoria: "Limpeza", Preco: decimal.NewFromInt(1), Estoque: 8},
	}
}

func TestService_EstoqueBaixo_LimitePadrao(t *testing.T) {
	mockProdutos := new(MockProdutoRepository)
	mockVendas := new(MockVendaRepository)
	service := NewService(mockProdutos, mockVendas, new(MockResumoCache), logger.New("test"))

	mockProdutos.On("Listar", mock.Anything).Return(produtosEstoque(), nil)

	baixos, err := service.EstoqueBaixo(context.Background(), 0)

	require.NoError(t, err)
	// Default limit 5: stocks 0 and 3 qualify, 8 does not
	require.Len(t, baixos, 2)
	assert.Equal(t, int64(1), baixos[0].ID)
	assert.Equal(t, int64(2), baixos[1].ID)
}

func TestService_EstoqueBaixo_LimiteExplicito(t *testing.T) {
	mockProdutos := new(MockProdutoRepository)
	service := NewService(mockProdutos, new(MockVendaRepository), new(MockResumoCache), logger.New("test"))

	mockProdutos.On("Listar", mock.Anything).Return(produtosEstoque(), nil)

	baixos, err := service.EstoqueBaixo(context.Background(), 10)

	require.NoError(t, err)
	assert.Len(t, baixos, 3)
}

func TestService_Categorias(t *testing.T) {
	mockProdutos := new(MockProdutoRepository)
	service := NewService(mockProdutos, new(MockVendaRepository), new(MockResumoCache), logger.New("test"))

	mockProdutos.On("Listar", mock.Anything).Return(produtosEstoque(), nil)

	categorias, err := service.Categorias(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"Frutas", "Limpeza"}, categorias)
}

func TestService_Resumo_CacheMiss(t *testing.T) {
	mockProdutos := new(MockProdutoRepository)
	mockVendas := new(MockVendaRepository)
	mockCache := new(MockResumoCache)
	service := NewService(mockProdutos, mockVendas, mockCache, logger.New("test"))

	mockCache.On("GetResumo", mock.Anything).Return(nil, errors.New("cache miss"))
	mockProdutos.On("Listar", mock.Anything).Return(produtosEstoque(), nil)
	mockVendas.On("Listar", mock.Anything).Return([]*domain.Venda{
		{VendaID: 1, ValorTotal: decimal.NewFromInt(100)},
	}, nil)
	mockCache.On("SetResumo", mock.Anything, mock.Anything).Return(nil)

	resumo, err := service.Resumo(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, resumo.TotalProdutos)
	assert.Equal(t, 1, resumo.TotalVendas)
	assert.Equal(t, 1, resumo.SemEstoque)
	assert.Equal(t, 1, resumo.EstoqueBaixo)
	mockCache.AssertExpectations(t)
}

func TestService_Resumo_CacheHit(t *testing.T) {
	mockProdutos := new(MockProdutoRepository)
	mockVendas := new(MockVendaRepository)
	mockCache := new(MockResumoCache)
	service := NewService(mockProdutos, mockVendas, mockCache, logger.New("test"))

	cached := &dashboard.Resumo{TotalProdutos: 42, ValorTotalVendas: decimal.Zero}
	mockCache.On("GetResumo", mock.Anything).Return(cached, nil)

	resumo, err := service.Resumo(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 42, resumo.TotalProdutos)
	mockProdutos.AssertNotCalled(t, "Listar", mock.Anything)
	mockVendas.AssertNotCalled(t, "Listar", mock.Anything)
}

func TestService_Resumo_FalhaNoRepositorio(t *testing.T) {
	mockProdutos := new(MockProdutoRepository)
	mockCache := new(MockResumoCache)
	service := NewService(mockProdutos, new(MockVendaRepository), mockCache, logger.New("test"))

	mockCache.On("GetResumo", mock.Anything).Return(nil, errors.New("cache miss"))
	mockProdutos.On("Listar", mock.Anything).Return(nil, errors.New("database error"))

	_, err := service.Resumo(context.Background())

	assert.Error(t, err)
}
