// Package sale implements the sale execution flow: advisory validation
// against the locally cached stock, total preview, submission to the
// gateway and the post-success refresh. The authoritative stock check
// happens server side; this flow only surfaces its verdict.
package sale

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rcoelho/loja-virtual/internal/domain"
	"github.com/rcoelho/loja-virtual/internal/engine/form"
	"github.com/rcoelho/loja-virtual/internal/engine/request"
	"github.com/rcoelho/loja-virtual/internal/engine/store"
	"github.com/rcoelho/loja-virtual/internal/pkg/logger"
)

// Flow drives one sale dialog. It owns its own request tracker; the
// surrounding UI reads Estado to render spinners and messages.
type Flow struct {
	store           *store.Store
	tracker         *request.Tracker
	logger          *logger.Logger
	sucessoExibicao time.Duration
}

// NewFlow creates a sale execution flow over the store's gateway.
// sucessoExibicao is how long the success state is displayed before the
// flow returns to idle.
func NewFlow(st *store.Store, log *logger.Logger, sucessoExibicao time.Duration) *Flow {
	return &Flow{
		store:           st,
		tracker:         request.NewTracker(),
		logger:          log,
		sucessoExibicao: sucessoExibicao,
	}
}

// PrevisaoTotal computes the display total (unit price × quantity) from
// the local snapshot, before anything is submitted.
func (f *Flow) PrevisaoTotal(produtoID, quantidade int64) (decimal.Decimal, bool) {
	produto, ok := f.store.Produto(produtoID)
	if !ok {
		return decimal.Zero, false
	}
	return produto.Preco.Mul(decimal.NewFromInt(quantidade)), true
}

// Submit validates and executes a sale. Field-level problems come back
// in the map without touching the network; gateway failures carry the
// server's reason verbatim and never mutate local stock. On success the
// sale is patched into the ledger and the catalog is re-fetched so the
// authoritative stock decrement becomes visible.
func (f *Flow) Submit(ctx context.Context, produtoID, quantidade int64) (*domain.Venda, map[string]string, error) {
	produto, _ := f.store.Produto(produtoID)

	// Advisory check only: the snapshot may be stale, the server decides
	if erros := (form.VendaForm{ProdutoID: produtoID, Quantidade: quantidade}).Validar(produto); erros != nil {
		return nil, erros, domain.ErrEntradaInvalida
	}

	valorPrevisto := produto.Preco.Mul(decimal.NewFromInt(quantidade))
	f.logger.WithFields(map[string]interface{}{
		"produto_id":     produtoID,
		"quantidade":     quantidade,
		"valor_previsto": valorPrevisto.String(),
	}).Info("Submitting sale")

	seq := f.tracker.Begin()
	venda, err := f.store.Gateway().CriarVenda(ctx, produtoID, quantidade)
	if err != nil {
		// No automatic retry: a rejection means the input is wrong and a
		// transport failure is the user's call to retry
		f.tracker.Fail(seq, err.Error())
		f.logger.Error("Sale rejected by gateway", err)
		return nil, nil, err
	}

	if f.tracker.Succeed(seq) {
		f.store.AcrescentarVenda(venda)
		if err := f.store.LoadProdutos(ctx); err != nil {
			f.logger.Error("Failed to refresh catalog after sale", err)
		}
		time.AfterFunc(f.sucessoExibicao, f.tracker.Reset)
	}

	f.logger.WithFields(map[string]interface{}{
		"venda_id":    venda.VendaID,
		"valor_total": venda.ValorTotal.String(),
	}).Info("Sale completed")

	return venda, nil, nil
}

// Estado reports the flow's request state and error message, if any.
func (f *Flow) Estado() (request.State, string) {
	return f.tracker.Snapshot()
}
