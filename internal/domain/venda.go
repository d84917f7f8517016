package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Venda represents a completed sale. Once recorded it is never mutated:
// there are no update or delete operations for sales anywhere in the system.
type Venda struct {
	VendaID     int64           `json:"venda_id" db:"venda_id"`
	ProdutoID   int64           `json:"produto_id" db:"produto_id"`
	ProdutoNome string          `json:"produto_nome" db:"produto_nome"`
	Quantidade  int64           `json:"quantidade" db:"quantidade" validate:"required,gt=0"`
	ValorTotal  decimal.Decimal `json:"valor_total" db:"valor_total"`
	DataVenda   time.Time       `json:"data_venda" db:"data_venda"`
}

// Periodo is a closed date interval for sale queries. Zero values mean
// the bound is open.
type Periodo struct {
	Inicio time.Time
	Fim    time.Time
}

// Contem reports whether t falls inside the period, comparing dates only.
func (p Periodo) Contem(t time.Time) bool {
	dia := t.Truncate(24 * time.Hour)
	if !p.Inicio.IsZero() && dia.Before(p.Inicio.Truncate(24*time.Hour)) {
		return false
	}
	if !p.Fim.IsZero() && dia.After(p.Fim.Truncate(24*time.Hour)) {
		return false
	}
	return true
}

// VendaRepository defines the interface for sale data access
type VendaRepository interface {
	// Listar retrieves all sales, most recent first (venda_id DESC)
	Listar(ctx context.Context) ([]*Venda, error)

	// ListarPorPeriodo retrieves sales whose data_venda falls in the period
	ListarPorPeriodo(ctx context.Context, periodo Periodo) ([]*Venda, error)

	// Registrar atomically checks stock, decrements it and records the
	// sale. This is the authoritative stock check; returns
	// *EstoqueInsuficienteError when the product cannot cover quantidade.
	Registrar(ctx context.Context, produtoID, quantidade int64) (*Venda, error)
}
