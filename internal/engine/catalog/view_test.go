package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/rcoelho/loja-virtual/internal/domain"
)

func produtosExemplo() []*domain.Produto {
	return []*domain.Produto{
		{ID: 1, Nome: "Banana", Categoria: "Frutas", Preco: decimal.NewFromFloat(3.50), Estoque: 20},
		{ID: 2, Nome: "Apple", Categoria: "Frutas", Preco: decimal.NewFromFloat(5.00), Estoque: 8},
		{ID: 3, Nome: "Avocado", Categoria: "Frutas", Preco: decimal.NewFromFloat(7.25), Estoque: 3},
		{ID: 4, Nome: "Teclado", Categoria: "Eletrônicos", Preco: decimal.NewFromInt(120), Estoque: 0},
	}
}

func nomes(produtos []*domain.Produto) []string {
	out := make([]string, len(produtos))
	for i, p := range produtos {
		out[i] = p.Nome
	}
	return out
}

func TestDeriveView_Default(t *testing.T) {
	produtos := produtosExemplo()

	view := DeriveView(produtos, DefaultCriteria())

	assert.Equal(t, []string{"Banana", "Apple", "Avocado", "Teclado"}, nomes(view))
}

func TestDeriveView_FiltraCategoria(t *testing.T) {
	produtos := produtosExemplo()

	view := DeriveView(produtos, Criteria{Categoria: "Eletrônicos", Ordem: OrdemID})

	assert.Equal(t, []string{"Teclado"}, nomes(view))
}

func TestDeriveView_CategoriaAll(t *testing.T) {
	produtos := produtosExemplo()

	view := DeriveView(produtos, Criteria{Categoria: TodasCategorias, Ordem: OrdemID})

	assert.Len(t, view, 4)
}

func TestDeriveView_BuscaCaseInsensitive(t *testing.T) {
	produtos := produtosExemplo()

	view := DeriveView(produtos, Criteria{Categoria: TodasCategorias, Busca: "a", Ordem: OrdemNome})

	// "a" matches Apple, Avocado and Banana by name and Frutas by category;
	// Teclado matches neither
	assert.Equal(t, []string{"Apple", "Avocado", "Banana"}, nomes(view))
}

func TestDeriveView_BuscaPorCategoria(t *testing.T) {
	produtos := produtosExemplo()

	view := DeriveView(produtos, Criteria{Categoria: TodasCategorias, Busca: "eletrô", Ordem: OrdemID})

	assert.Equal(t, []string{"Teclado"}, nomes(view))
}

func TestDeriveView_OrdenaPorNome(t *testing.T) {
	produtos := []*domain.Produto{
		{ID: 1, Nome: "Épico", Categoria: "Livros"},
		{ID: 2, Nome: "Água", Categoria: "Bebidas"},
		{ID: 3, Nome: "Banana", Categoria: "Frutas"},
		{ID: 4, Nome: "Abacaxi", Categoria: "Frutas"},
	}

	asc := DeriveView(produtos, Criteria{Categoria: TodasCategorias, Ordem: OrdemNome})
	desc := DeriveView(produtos, Criteria{Categoria: TodasCategorias, Ordem: OrdemNome, Desc: true})

	// Accented names sort with their base letter, not by byte value
	// ("Água" would land after "Banana" in a plain string sort)
	assert.Equal(t, []string{"Abacaxi", "Água", "Banana", "Épico"}, nomes(asc))
	assert.Equal(t, []string{"Épico", "Banana", "Água", "Abacaxi"}, nomes(desc))
}

func TestDeriveView_OrdenaPorPreco(t *testing.T) {
	produtos := produtosExemplo()

	asc := DeriveView(produtos, Criteria{Categoria: TodasCategorias, Ordem: OrdemPreco})
	desc := DeriveView(produtos, Criteria{Categoria: TodasCategorias, Ordem: OrdemPreco, Desc: true})

	assert.Equal(t, []string{"Banana", "Apple", "Avocado", "Teclado"}, nomes(asc))

	// Descending is the exact mirror for distinct keys
	assert.Equal(t, []string{"Teclado", "Avocado", "Apple", "Banana"}, nomes(desc))
}

func TestDeriveView_OrdenaPorEstoque(t *testing.T) {
	produtos := produtosExemplo()

	view := DeriveView(produtos, Criteria{Categoria: TodasCategorias, Ordem: OrdemEstoque})

	assert.Equal(t, []string{"Teclado", "Avocado", "Apple", "Banana"}, nomes(view))
}

func TestDeriveView_NaoMutaOrigem(t *testing.T) {
	produtos := produtosExemplo()

	DeriveView(produtos, Criteria{Categoria: TodasCategorias, Ordem: OrdemPreco, Desc: true})

	assert.Equal(t, []string{"Banana", "Apple", "Avocado", "Teclado"}, nomes(produtos))
}

func TestDeriveView_Idempotente(t *testing.T) {
	produtos := produtosExemplo()
	criteria := Criteria{Categoria: "Frutas", Busca: "a", Ordem: OrdemNome}

	primeira := DeriveView(produtos, criteria)
	segunda := DeriveView(produtos, criteria)

	assert.Equal(t, nomes(primeira), nomes(segunda))
}

func TestDeriveView_Vazio(t *testing.T) {
	view := DeriveView(nil, DefaultCriteria())

	assert.NotNil(t, view)
	assert.Empty(t, view)
}

func TestAlternar(t *testing.T) {
	c := DefaultCriteria()

	c = c.Alternar(OrdemPreco)
	assert.Equal(t, OrdemPreco, c.Ordem)
	assert.False(t, c.Desc)

	c = c.Alternar(OrdemPreco)
	assert.True(t, c.Desc)

	// Switching columns resets to ascending
	c = c.Alternar(OrdemNome)
	assert.Equal(t, OrdemNome, c.Ordem)
	assert.False(t, c.Desc)
}

func TestCategorias(t *testing.T) {
	produtos := produtosExemplo()

	categorias := Categorias(produtos)

	assert.Equal(t, []string{"Eletrônicos", "Frutas"}, categorias)
}

func TestCategorias_SemDuplicatas(t *testing.T) {
	produtos := []*domain.Produto{
		{ID: 1, Nome: "A", Categoria: "Frutas"},
		{ID: 2, Nome: "B", Categoria: "Frutas"},
	}

	assert.Equal(t, []string{"Frutas"}, Categorias(produtos))
}
