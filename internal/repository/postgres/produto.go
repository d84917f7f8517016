package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/rcoelho/loja-virtual/internal/domain"
)

// ProdutoRepository implements domain.ProdutoRepository for PostgreSQL
type ProdutoRepository struct {
	db *sqlx.DB
}

// NewProdutoRepository creates a new PostgreSQL product repository
func NewProdutoRepository(db *sqlx.DB) *ProdutoRepository {
	return &ProdutoRepository{db: db}
}

// Criar inserts a new product and fills in the assigned ID
func (r *ProdutoRepository) Criar(ctx context.Context, produto *domain.Produto) error {
	query := `
		INSERT INTO produtos (nome, categoria, preco, estoque)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	return r.db.QueryRowxContext(
		ctx,
		query,
		produto.Nome,
		produto.Categoria,
		produto.Preco,
		produto.Estoque,
	).Scan(&produto.ID)
}

// BuscarPorID retrieves a product by ID
func (r *ProdutoRepository) BuscarPorID(ctx context.Context, id int64) (*domain.Produto, error) {
	query := `
		SELECT id, nome, categoria, preco, estoque
		FROM produtos
		WHERE id = $1
	`

	var produto domain.Produto
	err := r.db.GetContext(ctx, &produto, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNaoEncontrado
		}
		return nil, err
	}

	return &produto, nil
}

// Listar retrieves all products ordered by ID
func (r *ProdutoRepository) Listar(ctx context.Context) ([]*domain.Produto, error) {
	query := `
		SELECT id, nome, categoria, preco, estoque
		FROM produtos
		ORDER BY id
	`

	produtos := []*domain.Produto{}
	if err := r.db.SelectContext(ctx, &produtos, query); err != nil {
		return nil, err
	}

	return produtos, nil
}

// ListarPorCategoria retrieves products of one category ordered by ID.
// The match is exact and case-sensitive.
func (r *ProdutoRepository) ListarPorCategoria(ctx context.Context, categoria string) ([]*domain.Produto, error) {
	query := `
		SELECT id, nome, categoria, preco, estoque
		FROM produtos
		WHERE categoria = $1
		ORDER BY id
	`

	produtos := []*domain.Produto{}
	if err := r.db.SelectContext(ctx, &produtos, query, categoria); err != nil {
		return nil, err
	}

	return produtos, nil
}

// Atualizar replaces the full field set of an existing product
func (r *ProdutoRepository) Atualizar(ctx context.Context, produto *domain.Produto) error {
	query := `
		UPDATE produtos
		SET nome = $1, categoria = $2, preco = $3, estoque = $4
		WHERE id = $5
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		produto.Nome,
		produto.Categoria,
		produto.Preco,
		produto.Estoque,
		produto.ID,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrNaoEncontrado
	}

	return nil
}

// Remover deletes a product. Sales reference it only through the
// denormalized name snapshot, so the history survives the removal.
func (r *ProdutoRepository) Remover(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM produtos WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrNaoEncontrado
	}

	return nil
}
