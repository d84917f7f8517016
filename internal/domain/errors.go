package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNaoEncontrado is returned when a resource is not found
	ErrNaoEncontrado = errors.New("recurso não encontrado")

	// ErrEntradaInvalida is returned when input validation fails
	ErrEntradaInvalida = errors.New("entrada inválida")

	// ErrQuantidadeInvalida is returned for non-positive sale quantities
	ErrQuantidadeInvalida = errors.New("a quantidade deve ser maior que zero")

	// ErrIndisponivel is returned when the remote gateway cannot be reached
	// or answers with a malformed response
	ErrIndisponivel = errors.New("serviço indisponível")
)

// EstoqueInsuficienteError is returned when a sale asks for more units
// than the product currently has in stock.
type EstoqueInsuficienteError struct {
	ProdutoID  int64
	Disponivel int64
	Solicitado int64
}

func (e *EstoqueInsuficienteError) Error() string {
	return fmt.Sprintf("Estoque insuficiente. Disponível: %d, Solicitado: %d", e.Disponivel, e.Solicitado)
}

// RejeicaoError carries a business rejection reported by the gateway.
// Motivo is the server's literal message and is surfaced verbatim.
type RejeicaoError struct {
	Motivo string
}

func (e *RejeicaoError) Error() string {
	return e.Motivo
}
