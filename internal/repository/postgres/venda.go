package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/rcoelho/loja-virtual/internal/domain"
)

// VendaRepository implements domain.VendaRepository for PostgreSQL
type VendaRepository struct {
	db *sqlx.DB
}

// NewVendaRepository creates a new PostgreSQL sale repository
func NewVendaRepository(db *sqlx.DB) *VendaRepository {
	return &VendaRepository{db: db}
}

// Listar retrieves all sales, most recent first
func (r *VendaRepository) Listar(ctx context.Context) ([]*domain.Venda, error) {
	// produto_id is NULL once the product has been deleted; zero marks
	// a sale whose product no longer exists
	query := `
		SELECT venda_id, COALESCE(produto_id, 0) AS produto_id, produto_nome, quantidade, valor_total, data_venda
		FROM vendas
		ORDER BY venda_id DESC
	`

	vendas := []*domain.Venda{}
	if err := r.db.SelectContext(ctx, &vendas, query); err != nil {
		return nil, err
	}

	return vendas, nil
}

// ListarPorPeriodo retrieves sales whose data_venda falls in the period
func (r *VendaRepository) ListarPorPeriodo(ctx context.Context, periodo domain.Periodo) ([]*domain.Venda, error) {
	query := `
		SELECT venda_id, COALESCE(produto_id, 0) AS produto_id, produto_nome, quantidade, valor_total, data_venda
		FROM vendas
		WHERE DATE(data_venda) BETWEEN $1 AND $2
		ORDER BY data_venda DESC
	`

	vendas := []*domain.Venda{}
	err := r.db.SelectContext(ctx, &vendas, query, periodo.Inicio, periodo.Fim)
	if err != nil {
		return nil, err
	}

	return vendas, nil
}

// Registrar atomically validates stock, decrements it and records the
// sale. The row lock makes concurrent sales against the same product
// serialize here, which is the authoritative check the clients rely on.
func (r *VendaRepository) Registrar(ctx context.Context, produtoID, quantidade int64) (*domain.Venda, error) {
	if quantidade <= 0 {
		return nil, domain.ErrQuantidadeInvalida
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var produto domain.Produto
	err = tx.GetContext(ctx, &produto, `
		SELECT id, nome, categoria, preco, estoque
		FROM produtos
		WHERE id = $1
		FOR UPDATE
	`, produtoID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNaoEncontrado
		}
		return nil, err
	}

	if produto.Estoque < quantidade {
		return nil, &domain.EstoqueInsuficienteError{
			ProdutoID:  produtoID,
			Disponivel: produto.Estoque,
			Solicitado: quantidade,
		}
	}

	valorTotal := produto.Preco.Mul(decimal.NewFromInt(quantidade))

	if _, err := tx.ExecContext(ctx, `
		UPDATE produtos SET estoque = estoque - $1 WHERE id = $2
	`, quantidade, produtoID); err != nil {
		return nil, err
	}

	venda := &domain.Venda{
		ProdutoID:   produtoID,
		ProdutoNome: produto.Nome,
		Quantidade:  quantidade,
		ValorTotal:  valorTotal,
		DataVenda:   time.Now(),
	}

	err = tx.QueryRowxContext(ctx, `
		INSERT INTO vendas (produto_id, produto_nome, quantidade, valor_total, data_venda)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING venda_id
	`,
		venda.ProdutoID,
		venda.ProdutoNome,
		venda.Quantidade,
		venda.ValorTotal,
		venda.DataVenda,
	).Scan(&venda.VendaID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit sale: %w", err)
	}

	return venda, nil
}
