package venda

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rcoelho/loja-virtual/internal/domain"
	"github.com/rcoelho/loja-virtual/internal/pkg/logger"
)

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

// MockCache is a mock implementation of Cache
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Invalidar(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockPublisher records published events for inspection
type MockPublisher struct {
	mock.Mock
	publicado chan []byte
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{publicado: make(chan []byte, 1)}
}

func (m *MockPublisher) Publish(ctx context.Context, subject string, data []byte) error {
	args := m.Called(ctx, subject, data)
	select {
	case m.publicado <- data:
	default:
	}
	return args.Error(0)
}

func TestService_Listar(t *testing.T) {
	mockRepo := new(MockVendaRepository)
	service := NewService(mockRepo, new(MockCache), NewMockPublisher(), logger.New("test"))

	vendas := []*domain.Venda{
		{VendaID: 2, ProdutoNome: "Notebook", Quantidade: 1, ValorTotal: decimal.NewFromInt(3500)},
	}
	mockRepo.On("Listar", mock.Anything).Return(vendas, nil)

	result, err := service.Listar(context.Background(), domain.Periodo{})

	require.NoError(t, err)
	assert.Len(t, result, 1)
}

func TestService_Listar_ComPeriodo(t *testing.T) {
	mockRepo := new(MockVendaRepository)
	service := NewService(mockRepo, new(MockCache), NewMockPublisher(), logger.New("test"))

	inicio, _ := time.Parse("2006-01-02", "2026-01-01")
	fim, _ := time.Parse("2006-01-02", "2026-01-31")
	periodo := domain.Periodo{Inicio: inicio, Fim: fim}

	mockRepo.On("ListarPorPeriodo", mock.Anything, periodo).Return([]*domain.Venda{}, nil)

	_, err := service.Listar(context.Background(), periodo)

	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockRepo.AssertNotCalled(t, "Listar", mock.Anything)
}

func TestService_Listar_PeriodoIncompleto(t *testing.T) {
	mockRepo := new(MockVendaRepository)
	service := NewService(mockRepo, new(MockCache), NewMockPublisher(), logger.New("test"))

	inicio, _ := time.Parse("2006-01-02", "2026-01-01")

	// With only one bound set the filter does not apply
	mockRepo.On("Listar", mock.Anything).Return([]*domain.Venda{}, nil)

	_, err := service.Listar(context.Background(), domain.Periodo{Inicio: inicio})
	require.NoError(t, err)

	_, err = service.Listar(context.Background(), domain.Periodo{Fim: inicio})
	require.NoError(t, err)

	mockRepo.AssertNotCalled(t, "ListarPorPeriodo", mock.Anything, mock.Anything)
}

func TestService_Registrar(t *testing.T) {
	mockRepo := new(MockVendaRepository)
	mockCache := new(MockCache)
	publisher := NewMockPublisher()
	service := NewService(mockRepo, mockCache, publisher, logger.New("test"))

	registrada := &domain.Venda{
		VendaID: 7, ProdutoID: 1, ProdutoNome: "Notebook", Quantidade: 2,
		ValorTotal: decimal.NewFromInt(7000), DataVenda: time.Now(),
	}
	mockRepo.On("Registrar", mock.Anything, int64(1), int64(2)).Return(registrada, nil)
	mockCache.On("Invalidar", mock.Anything).Return(nil)
	publisher.On("Publish", mock.Anything, AssuntoVendaCriada, mock.Anything).Return(nil)

	venda, err := service.Registrar(context.Background(), 1, 2)

	require.NoError(t, err)
	assert.Equal(t, int64(7), venda.VendaID)
	mockCache.AssertExpectations(t)

	select {
	case data := <-publisher.publicado:
		var event VendaEvent
		require.NoError(t, json.Unmarshal(data, &event))
		assert.Equal(t, int64(7), event.VendaID)
		assert.Equal(t, int64(1), event.ProdutoID)
		assert.Equal(t, int64(2), event.Quantidade)
		assert.NotEqual(t, [16]byte{}, [16]byte(event.EventID))
	case <-time.After(time.Second):
		t.Fatal("expected a venda event to be published")
	}
}

func TestService_Registrar_EstoqueInsuficiente(t *testing.T) {
	mockRepo := new(MockVendaRepository)
	mockCache := new(MockCache)
	publisher := NewMockPublisher()
	service := NewService(mockRepo, mockCache, publisher, logger.New("test"))

	mockRepo.On("Registrar", mock.Anything, int64(1), int64(10)).Return(nil, &domain.EstoqueInsuficienteError{
		ProdutoID: 1, Disponivel: 3, Solicitado: 10,
	})

	_, err := service.Registrar(context.Background(), 1, 10)

	var estoqueErr *domain.EstoqueInsuficienteError
	require.ErrorAs(t, err, &estoqueErr)
	assert.Equal(t, int64(3), estoqueErr.Disponivel)

	// A rejected sale publishes nothing and invalidates nothing
	mockCache.AssertNotCalled(t, "Invalidar", mock.Anything)
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}
