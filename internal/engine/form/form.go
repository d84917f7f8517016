// Package form validates raw user input before it enters the domain
// layer. Validation never fails with an error for expected bad input:
// each Validar returns either a normalized record or a field name to
// human-readable message mapping.
package form

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/rcoelho/loja-virtual/internal/domain"
	pkgvalidator "github.com/rcoelho/loja-virtual/internal/pkg/validator"
)

// ProdutoForm carries the raw field values of the product form. Numeric
// fields arrive as text and are normalized here.
type ProdutoForm struct {
	Nome      string `json:"nome" validate:"required,min=1,max=100"`
	Categoria string `json:"categoria" validate:"required,min=1,max=50"`
	Preco     string `json:"preco" validate:"required"`
	Estoque   string `json:"estoque" validate:"required"`
}

// Validar returns the normalized product or the per-field errors.
func (f ProdutoForm) Validar() (*domain.Produto, map[string]string) {
	erros := make(map[string]string)

	if err := pkgvalidator.Get().Struct(f); err != nil {
		for campo, msg := range pkgvalidator.Mensagens(err) {
			erros[campo] = msg
		}
	}

	produto := &domain.Produto{
		Nome:      f.Nome,
		Categoria: f.Categoria,
	}

	if _, ok := erros["preco"]; !ok {
		preco, err := decimal.NewFromString(f.Preco)
		switch {
		case err != nil:
			erros["preco"] = "Preço deve ser um número"
		case !preco.IsPositive():
			erros["preco"] = "Preço deve ser maior que zero"
		default:
			produto.Preco = preco
		}
	}

	if _, ok := erros["estoque"]; !ok {
		estoque, err := strconv.ParseInt(f.Estoque, 10, 64)
		switch {
		case err != nil:
			erros["estoque"] = "Estoque deve ser um número inteiro"
		case estoque < 0:
			erros["estoque"] = "Estoque não pode ser negativo"
		default:
			produto.Estoque = estoque
		}
	}

	if len(erros) > 0 {
		return nil, erros
	}
	return produto, nil
}

// VendaForm carries the sale request fields.
type VendaForm struct {
	ProdutoID  int64 `json:"produto_id" validate:"required,gt=0"`
	Quantidade int64 `json:"quantidade" validate:"required,gt=0"`
}

// Validar checks the field shape first and, only when the shape holds,
// the cross-field stock rule against the product snapshot. The stock
// error names the exact available quantity instead of the generic range
// message. A nil produto means the ID did not resolve in the catalog.
func (f VendaForm) Validar(produto *domain.Produto) map[string]string {
	erros := make(map[string]string)

	if err := pkgvalidator.Get().Struct(f); err != nil {
		for campo := range pkgvalidator.Mensagens(err) {
			switch campo {
			case "produto_id":
				erros[campo] = "Selecione um produto"
			case "quantidade":
				erros[campo] = "Quantidade deve ser maior que zero"
			}
		}
		return erros
	}

	switch {
	case produto == nil:
		erros["produto_id"] = "Produto não encontrado"
	case produto.Estoque == 0:
		erros["produto_id"] = "Produto sem estoque"
	case f.Quantidade > produto.Estoque:
		erros["quantidade"] = fmt.Sprintf("Estoque disponível: %d unidades", produto.Estoque)
	}

	if len(erros) > 0 {
		return erros
	}
	return nil
}
