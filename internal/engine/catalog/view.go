// Package catalog derives read-only views of the product collection.
// Every function here is pure: the source slice is never reordered or
// mutated, so repeated derivations with the same inputs are idempotent.
package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/rcoelho/loja-virtual/internal/domain"
)

// TodasCategorias is the category filter value that keeps every product.
const TodasCategorias = "all"

// Ordem identifies a sortable catalog column
type Ordem string

const (
	OrdemID      Ordem = "id"
	OrdemNome    Ordem = "nome"
	OrdemPreco   Ordem = "preco"
	OrdemEstoque Ordem = "estoque"
)

// Criteria describes one derived catalog view: category filter, search
// term and sort column/direction. The zero-ish default is DefaultCriteria.
type Criteria struct {
	Categoria string
	Busca     string
	Ordem     Ordem
	Desc      bool
}

// DefaultCriteria is the view applied before any user interaction:
// all categories, no search, ascending by ID.
func DefaultCriteria() Criteria {
	return Criteria{Categoria: TodasCategorias, Ordem: OrdemID}
}

// Alternar applies a sort toggle: selecting the current column flips the
// direction, selecting another column resets to ascending.
func (c Criteria) Alternar(ordem Ordem) Criteria {
	if c.Ordem == ordem {
		c.Desc = !c.Desc
		return c
	}
	c.Ordem = ordem
	c.Desc = false
	return c
}

// Product names sort like a pt-BR speaker expects ("água" before "banana")
var colador = collate.New(language.BrazilianPortuguese)

// DeriveView applies the fixed filter → search → sort pipeline and
// returns a new slice; produtos is left untouched.
func DeriveView(produtos []*domain.Produto, criteria Criteria) []*domain.Produto {
	resultado := make([]*domain.Produto, 0, len(produtos))

	for _, p := range produtos {
		if criteria.Categoria != "" && criteria.Categoria != TodasCategorias && p.Categoria != criteria.Categoria {
			continue
		}
		if !contemBusca(p, criteria.Busca) {
			continue
		}
		resultado = append(resultado, p)
	}

	ordenar(resultado, criteria)
	return resultado
}

// contemBusca matches the term case-insensitively against nome or categoria
func contemBusca(p *domain.Produto, termo string) bool {
	if termo == "" {
		return true
	}
	termo = strings.ToLower(termo)
	return strings.Contains(strings.ToLower(p.Nome), termo) ||
		strings.Contains(strings.ToLower(p.Categoria), termo)
}

func ordenar(produtos []*domain.Produto, criteria Criteria) {
	ordem := criteria.Ordem
	if ordem == "" {
		ordem = OrdemID
	}

	menor := func(a, b *domain.Produto) bool {
		switch ordem {
		case OrdemNome:
			return colador.CompareString(a.Nome, b.Nome) < 0
		case OrdemPreco:
			return a.Preco.LessThan(b.Preco)
		case OrdemEstoque:
			return a.Estoque < b.Estoque
		default:
			return a.ID < b.ID
		}
	}

	// Stable sort keeps the tie order deterministic across repeated
	// derivations and makes ascending/descending exact mirrors for
	// distinct keys.
	sort.SliceStable(produtos, func(i, j int) bool {
		if criteria.Desc {
			return menor(produtos[j], produtos[i])
		}
		return menor(produtos[i], produtos[j])
	})
}

// Categorias extracts the distinct category set from the unfiltered
// collection, sorted with the same collation as product names.
func Categorias(produtos []*domain.Produto) []string {
	vistas := make(map[string]struct{}, len(produtos))
	categorias := make([]string, 0, len(produtos))

	for _, p := range produtos {
		if _, ok := vistas[p.Categoria]; ok {
			continue
		}
		vistas[p.Categoria] = struct{}{}
		categorias = append(categorias, p.Categoria)
	}

	sort.Slice(categorias, func(i, j int) bool {
		return colador.CompareString(categorias[i], categorias[j]) < 0
	})
	return categorias
}
