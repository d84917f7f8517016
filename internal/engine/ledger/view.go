// Package ledger derives read-only views of the sale history.
package ledger

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rcoelho/loja-virtual/internal/domain"
)

// Filtro narrows the sale history by date period and product name.
type Filtro struct {
	Periodo domain.Periodo
	Busca   string
}

// Aplicar returns the sales matching the filter, preserving the source
// order (most recent first, as the gateway lists them). The input slice
// is never mutated.
func Aplicar(vendas []*domain.Venda, filtro Filtro) []*domain.Venda {
	resultado := make([]*domain.Venda, 0, len(vendas))

	busca := strings.ToLower(filtro.Busca)
	for _, v := range vendas {
		if !filtro.Periodo.Contem(v.DataVenda) {
			continue
		}
		if busca != "" && !strings.Contains(strings.ToLower(v.ProdutoNome), busca) {
			continue
		}
		resultado = append(resultado, v)
	}
	return resultado
}

// Totais summarizes a (possibly filtered) sale list.
type Totais struct {
	Vendas          int
	ValorTotal      decimal.Decimal
	QuantidadeTotal int64
}

// Somar reduces the sale list into its totals using exact decimal
// arithmetic for the monetary sum.
func Somar(vendas []*domain.Venda) Totais {
	totais := Totais{ValorTotal: decimal.Zero}
	for _, v := range vendas {
		totais.Vendas++
		totais.ValorTotal = totais.ValorTotal.Add(v.ValorTotal)
		totais.QuantidadeTotal += v.Quantidade
	}
	return totais
}
