package venda

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/rcoelho/loja-virtual/internal/domain"
	"github.com/rcoelho/loja-virtual/internal/pkg/logger"
)

// AssuntoVendaCriada is the subject sale events are published on
const AssuntoVendaCriada = "vendas.criada"

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data []byte) error
}

// Cache invalidation hook shared with the product service
type Cache interface {
	Invalidar(ctx context.Context) error
}

// VendaEvent is published after a sale is recorded. The stock alert
// worker picks it up to check the remaining stock.
type VendaEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Timestamp  time.Time `json:"timestamp"`
	VendaID    int64     `json:"venda_id"`
	ProdutoID  int64     `json:"produto_id"`
	Quantidade int64     `json:"quantidade"`
}

// Service handles sale business logic
type Service struct {
	repo      domain.VendaRepository
	cache     Cache
	publisher EventPublisher
	logger    *logger.Logger
}

// NewService creates a new sale service
func NewService(repo domain.VendaRepository, cache Cache, publisher EventPublisher, log *logger.Logger) *Service {
	return &Service{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		logger:    log,
	}
}

// Listar retrieves the sale history, optionally narrowed to a period
func (s *Service) Listar(ctx context.Context, periodo domain.Periodo) ([]*domain.Venda, error) {
	var vendas []*domain.Venda
	var err error

	// The filter applies only when both bounds are present; a
	// one-sided period returns the full history.
	if !periodo.Inicio.IsZero() && !periodo.Fim.IsZero() {
		vendas, err = s.repo.ListarPorPeriodo(ctx, periodo)
	} else {
		vendas, err = s.repo.Listar(ctx)
	}
	if err != nil {
		s.logger.Error("Failed to list vendas", err)
		return nil, err
	}

	return vendas, nil
}

// Registrar records a sale. The repository performs the authoritative
// stock check and decrement in one transaction; the service only adds
// caching and event concerns on top.
func (s *Service) Registrar(ctx context.Context, produtoID, quantidade int64) (*domain.Venda, error) {
	venda, err := s.repo.Registrar(ctx, produtoID, quantidade)
	if err != nil {
		s.logger.Error("Failed to register venda", err)
		return nil, err
	}

	// Stock changed, so cached lists and the summary are stale now
	if err := s.cache.Invalidar(ctx); err != nil {
		s.logger.Warnf("Failed to invalidate cache after venda %d: %v", venda.VendaID, err)
	}

	s.publicarEvento(venda)

	s.logger.WithFields(map[string]interface{}{
		"venda_id":    venda.VendaID,
		"produto_id":  venda.ProdutoID,
		"quantidade":  venda.Quantidade,
		"valor_total": venda.ValorTotal.String(),
	}).Info("Venda registered successfully")

	return venda, nil
}

// publicarEvento publishes a sale event (non-blocking)
func (s *Service) publicarEvento(venda *domain.Venda) {
	event := VendaEvent{
		EventID:    uuid.New(),
		Timestamp:  time.Now(),
		VendaID:    venda.VendaID,
		ProdutoID:  venda.ProdutoID,
		Quantidade: venda.Quantidade,
	}

	data, err := json.Marshal(event)
	if err != nil {
		s.logger.Errorf(err, "Failed to marshal event for venda %d", venda.VendaID)
		return
	}

	// Publish in background to avoid blocking the request
	go func() {
		if err := s.publisher.Publish(context.Background(), AssuntoVendaCriada, data); err != nil {
			s.logger.Errorf(err, "Failed to publish event for venda %d", venda.VendaID)
		}
	}()
}
