// Package dashboard reduces the product and sale collections into the
// summary metrics shown on the home screen. The reduction is pure and is
// re-run whenever either collection changes.
package dashboard

import (
	"github.com/shopspring/decimal"

	"github.com/rcoelho/loja-virtual/internal/domain"
)

// LimiteEstoqueBaixo is the fixed low-stock policy: a product with
// 0 < estoque < LimiteEstoqueBaixo counts as low stock.
const LimiteEstoqueBaixo = 5

// Resumo holds the dashboard metrics, computed over the loaded (not
// filtered) collections.
type Resumo struct {
	TotalProdutos    int             `json:"total_produtos"`
	TotalVendas      int             `json:"total_vendas"`
	ValorTotalVendas decimal.Decimal `json:"valor_total_vendas"`
	EstoqueBaixo     int             `json:"estoque_baixo"`
	SemEstoque       int             `json:"sem_estoque"`
}

// Calcular reduces the collections into a Resumo. Monetary totals use
// exact decimal addition so repeated fractional prices never drift.
func Calcular(produtos []*domain.Produto, vendas []*domain.Venda) Resumo {
	resumo := Resumo{ValorTotalVendas: decimal.Zero}

	for _, p := range produtos {
		resumo.TotalProdutos++
		switch {
		case p.Estoque == 0:
			resumo.SemEstoque++
		case p.Estoque < LimiteEstoqueBaixo:
			resumo.EstoqueBaixo++
		}
	}

	for _, v := range vendas {
		resumo.TotalVendas++
		resumo.ValorTotalVendas = resumo.ValorTotalVendas.Add(v.ValorTotal)
	}

	return resumo
}
