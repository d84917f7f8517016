package domain

import (
	"context"

	"github.com/shopspring/decimal"
)

func init() {
	// A API fala JSON numérico para preços, não strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Produto represents a catalog product
type Produto struct {
	ID        int64           `json:"id" db:"id"`
	Nome      string          `json:"nome" db:"nome" validate:"required,min=1,max=100"`
	Categoria string          `json:"categoria" db:"categoria" validate:"required,min=1,max=50"`
	Preco     decimal.Decimal `json:"preco" db:"preco"`
	Estoque   int64           `json:"estoque" db:"estoque" validate:"gte=0"`
}

// Valido reports whether the record satisfies the catalog invariants.
// The validator tags cover the string and integer fields; decimal fields
// are checked by hand because the validator cannot see inside them.
func (p *Produto) Valido() bool {
	return p.ID >= 1 &&
		p.Nome != "" && len([]rune(p.Nome)) <= 100 &&
		p.Categoria != "" &&
		p.Preco.IsPositive() &&
		p.Estoque >= 0
}

// ProdutoRepository defines the interface for product data access
type ProdutoRepository interface {
	// Criar inserts a new product and fills in the assigned ID
	Criar(ctx context.Context, produto *Produto) error

	// BuscarPorID retrieves a product by ID
	BuscarPorID(ctx context.Context, id int64) (*Produto, error)

	// Listar retrieves all products ordered by ID
	Listar(ctx context.Context) ([]*Produto, error)

	// ListarPorCategoria retrieves products of one category ordered by ID
	ListarPorCategoria(ctx context.Context, categoria string) ([]*Produto, error)

	// Atualizar replaces the full field set of an existing product
	Atualizar(ctx context.Context, produto *Produto) error

	// Remover deletes a product; historical sales keep their name snapshot
	Remover(ctx context.Context, id int64) error
}
