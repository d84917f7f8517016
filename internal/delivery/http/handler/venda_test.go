package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/rcoelho/loja-virtual/internal/domain"
	"github.com/rcoelho/loja-virtual/internal/pkg/logger"
	"github.com/rcoelho/loja-virtual/internal/usecase/venda"
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

// MockInvalidador is a mock implementation of venda.Cache
type MockInvalidador struct {
	mock.Mock
}

func (m *MockInvalidador) Invalidar(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockPublisher is a mock implementation of venda.EventPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, subject string, data []byte) error {
	args := m.Called(ctx, subject, data)
	return args.Error(0)
}

func newVendaHandler(repo *MockVendaRepository) *VendaHandler {
	log := logger.New("test")
	cache := new(MockInvalidador)
	cache.On("Invalidar", mock.Anything).Return(nil).Maybe()
	publisher := new(MockPublisher)
	// Publishing happens in a background goroutine; allow it without asserting
	publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	service := venda.NewService(repo, cache, publisher, log)
	return NewVendaHandler(service, log)
}

func TestVendaHandler_Listar_Success(t *testing.T) {
	mockRepo := new(MockVendaRepository)
	handler := newVendaHandler(mockRepo)

	vendas := []*domain.Venda{
		{VendaID: 2, ProdutoID: 1, ProdutoNome: "Notebook", Quantidade: 1, ValorTotal: decimal.NewFromInt(3500), DataVenda: time.Now()},
		{VendaID: 1, ProdutoID: 2, ProdutoNome: "Mouse", Quantidade: 2, ValorTotal: decimal.NewFromInt(160), DataVenda: time.Now()},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/vendas", nil)
	w := httptest.NewRecorder()

	mockRepo.On("Listar", mock.Anything).Return(vendas, nil)

	handler.Listar(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockRepo.AssertExpectations(t)

	var result []*domain.Venda
	err := json.Unmarshal(w.Body.Bytes(), &result)
	assert.NoError(t, err)
	assert.Len(t, result, 2)
	assert.Equal(t, int64(2), result[0].VendaID)
}

func TestVendaHandler_Listar_ProdutoRemovido(t *testing.T) {
	mockRepo := new(MockVendaRepository)
	handler := newVendaHandler(mockRepo)

	// Deleting a product nulls its reference but keeps the sale; the
	// name snapshot is what the history shows
	vendas := []*domain.Venda{
		{VendaID: 3, ProdutoID: 0, ProdutoNome: "Notebook", Quantidade: 1, ValorTotal: decimal.NewFromInt(3500), DataVenda: time.Now()},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/vendas", nil)
	w := httptest.NewRecorder()

	mockRepo.On("Listar", mock.Anything).Return(vendas, nil)

	handler.Listar(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var result []*domain.Venda
	err := json.Unmarshal(w.Body.Bytes(), &result)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), result[0].ProdutoID)
	assert.Equal(t, "Notebook", result[0].ProdutoNome)
}

func TestVendaHandler_Listar_PorPeriodo(t *testing.T) {
	mockRepo := new(MockVendaRepository)
	handler := newVendaHandler(mockRepo)

	req := httptest.NewRequest(http.MethodGet, "/api/vendas?data_inicio=2026-01-01&data_fim=2026-01-31", nil)
	w := httptest.NewRecorder()

	mockRepo.On("ListarPorPeriodo", mock.Anything, mock.MatchedBy(func(p domain.Periodo) bool {
		return p.Inicio.Format("2006-01-02") == "2026-01-01" && p.Fim.Format("2006-01-02") == "2026-01-31"
	})).Return([]*domain.Venda{}, nil)

	handler.Listar(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockRepo.AssertExpectations(t)
}

func TestVendaHandler_Criar_Success(t *testing.T) {
	mockRepo := new(MockVendaRepository)
	handler := newVendaHandler(mockRepo)

	registrada := &domain.Venda{
		VendaID:     7,
		ProdutoID:   1,
		ProdutoNome: "Notebook",
		Quantidade:  2,
		ValorTotal:  decimal.NewFromInt(7000),
		DataVenda:   time.Now(),
	}

	bodyBytes, _ := json.Marshal(CriarVendaRequest{ProdutoID: 1, Quantidade: 2})
	req := httptest.NewRequest(http.MethodPost, "/api/vendas", bytes.NewReader(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	mockRepo.On("Registrar", mock.Anything, int64(1), int64(2)).Return(registrada, nil)

	handler.Criar(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockRepo.AssertExpectations(t)

	var venda domain.Venda
	err := json.Unmarshal(w.Body.Bytes(), &venda)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), venda.VendaID)
	assert.Equal(t, "Notebook", venda.ProdutoNome)
}

func TestVendaHandler_Criar_EstoqueInsuficiente(t *testing.T) {
	mockRepo := new(MockVendaRepository)
	handler := newVendaHandler(mockRepo)

	bodyBytes, _ := json.Marshal(CriarVendaRequest{ProdutoID: 1, Quantidade: 10})
	req := httptest.NewRequest(http.MethodPost, "/api/vendas", bytes.NewReader(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	mockRepo.On("Registrar", mock.Anything, int64(1), int64(10)).Return(nil, &domain.EstoqueInsuficienteError{
		ProdutoID:  1,
		Disponivel: 3,
		Solicitado: 10,
	})

	handler.Criar(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var response map[string]string
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "Estoque insuficiente. Disponível: 3, Solicitado: 10", response["error"])
	mockRepo.AssertExpectations(t)
}

func TestVendaHandler_Criar_QuantidadeInvalida(t *testing.T) {
	mockRepo := new(MockVendaRepository)
	handler := newVendaHandler(mockRepo)

	bodyBytes, _ := json.Marshal(CriarVendaRequest{ProdutoID: 1, Quantidade: 0})
	req := httptest.NewRequest(http.MethodPost, "/api/vendas", bytes.NewReader(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	mockRepo.On("Registrar", mock.Anything, int64(1), int64(0)).Return(nil, domain.ErrQuantidadeInvalida)

	handler.Criar(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var response map[string]string
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "a quantidade deve ser maior que zero", response["error"])
}

func TestVendaHandler_Criar_ProdutoNaoEncontrado(t *testing.T) {
	mockRepo := new(MockVendaRepository)
	handler := newVendaHandler(mockRepo)

	bodyBytes, _ := json.Marshal(CriarVendaRequest{ProdutoID: 99, Quantidade: 1})
	req := httptest.NewRequest(http.MethodPost, "/api/vendas", bytes.NewReader(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	mockRepo.On("Registrar", mock.Anything, int64(99), int64(1)).Return(nil, domain.ErrNaoEncontrado)

	handler.Criar(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	var response map[string]string
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, "Produto não encontrado", response["error"])
}

func TestVendaHandler_Criar_RepositoryError(t *testing.T) {
	mockRepo := new(MockVendaRepository)
	handler := newVendaHandler(mockRepo)

	bodyBytes, _ := json.Marshal(CriarVendaRequest{ProdutoID: 1, Quantidade: 1})
	req := httptest.NewRequest(http.MethodPost, "/api/vendas", bytes.NewReader(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	mockRepo.On("Registrar", mock.Anything, int64(1), int64(1)).Return(nil, fmt.Errorf("database error"))

	handler.Criar(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestVendaHandler_Criar_InvalidJSON(t *testing.T) {
	mockRepo := new(MockVendaRepository)
	handler := newVendaHandler(mockRepo)

	req := httptest.NewRequest(http.MethodPost, "/api/vendas", bytes.NewReader([]byte("not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.Criar(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockRepo.AssertNotCalled(t, "Registrar", mock.Anything, mock.Anything, mock.Anything)
}
