// Package worker hosts the stock alert worker: it listens to sale
// events and flags products whose stock ran out or fell under the
// low-stock limit.
package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rcoelho/loja-virtual/internal/domain"
	"github.com/rcoelho/loja-virtual/internal/engine/dashboard"
	"github.com/rcoelho/loja-virtual/internal/pkg/logger"
	"github.com/rcoelho/loja-virtual/internal/usecase/venda"
)

// ProdutoBuscador is the slice of the product repository the worker needs
type ProdutoBuscador interface {
	BuscarPorID(ctx context.Context, id int64) (*domain.Produto, error)
}

// EstoqueWorker processes sale events and raises stock alerts
type EstoqueWorker struct {
	produtos ProdutoBuscador
	logger   *logger.Logger
}

// NewEstoqueWorker creates a new stock alert worker
func NewEstoqueWorker(produtos ProdutoBuscador, log *logger.Logger) *EstoqueWorker {
	return &EstoqueWorker{
		produtos: produtos,
		logger:   log,
	}
}

// HandleEvent processes one sale event. The product is re-read so the
// alert reflects the stock after the authoritative decrement, not the
// figure inside the event.
func (w *EstoqueWorker) HandleEvent(data []byte) error {
	var event venda.VendaEvent
	if err := json.Unmarshal(data, &event); err != nil {
		w.logger.Error("Failed to unmarshal venda event", err)
		return fmt.Errorf("failed to unmarshal event: %w", err)
	}

	produto, err := w.produtos.BuscarPorID(context.Background(), event.ProdutoID)
	if err != nil {
		if errors.Is(err, domain.ErrNaoEncontrado) {
			// Sold and deleted before we got here; nothing to alert on
			w.logger.Debugf("Produto %d gone, skipping stock check", event.ProdutoID)
			return nil
		}
		return fmt.Errorf("failed to load produto %d: %w", event.ProdutoID, err)
	}

	campos := map[string]interface{}{
		"venda_id":   event.VendaID,
		"produto_id": produto.ID,
		"nome":       produto.Nome,
		"estoque":    produto.Estoque,
	}

	switch {
	case produto.Estoque == 0:
		w.logger.WithFields(campos).Warnf("Produto sem estoque após venda")
	case produto.Estoque < dashboard.LimiteEstoqueBaixo:
		w.logger.WithFields(campos).Warnf("Produto com estoque baixo após venda")
	default:
		w.logger.WithFields(campos).Debugf("Estoque ok após venda")
	}

	return nil
}
