// Package gateway is the engine's boundary to the remote persistence
// layer. Payloads are decoded into explicit schemas and checked before
// they enter the domain layer; malformed responses never reach the store.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/rcoelho/loja-virtual/internal/config"
	"github.com/rcoelho/loja-virtual/internal/domain"
	"github.com/rcoelho/loja-virtual/internal/pkg/logger"
)

// apiError is the failure envelope every gateway endpoint uses
type apiError struct {
	Error string `json:"error"`
}

// Client talks to the remote data gateway over HTTP
type Client struct {
	http   *resty.Client
	logger *logger.Logger
}

// NewClient creates a gateway client from configuration
func NewClient(cfg *config.Config, log *logger.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(cfg.Gateway.BaseURL).
		SetTimeout(cfg.Gateway.RequestTimeout).
		SetRetryCount(cfg.Gateway.RetryCount).
		SetHeader("Accept", "application/json")

	return &Client{http: httpClient, logger: log}
}

// falha maps a non-2xx response to the error taxonomy: not-found and
// business rejections keep the server's literal reason, everything else
// is a transport-level failure.
func (c *Client) falha(resp *resty.Response) error {
	var payload apiError
	if err := json.Unmarshal(resp.Body(), &payload); err != nil || payload.Error == "" {
		return fmt.Errorf("%w: status %d", domain.ErrIndisponivel, resp.StatusCode())
	}

	if resp.StatusCode() == http.StatusNotFound {
		return fmt.Errorf("%w: %s", domain.ErrNaoEncontrado, payload.Error)
	}
	if resp.StatusCode() >= http.StatusInternalServerError {
		return fmt.Errorf("%w: %s", domain.ErrIndisponivel, payload.Error)
	}
	return &domain.RejeicaoError{Motivo: payload.Error}
}

// ListarProdutos fetches the full product catalog
func (c *Client) ListarProdutos(ctx context.Context) ([]*domain.Produto, error) {
	var produtos []*domain.Produto

	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&produtos).
		Get("/api/produtos")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrIndisponivel, err)
	}
	if resp.IsError() {
		return nil, c.falha(resp)
	}

	for _, p := range produtos {
		if !p.Valido() {
			c.logger.Warnf("Gateway returned malformed product (id=%d)", p.ID)
			return nil, fmt.Errorf("%w: produto malformado na resposta", domain.ErrIndisponivel)
		}
	}
	return produtos, nil
}

// BuscarProduto fetches a single product by ID
func (c *Client) BuscarProduto(ctx context.Context, id int64) (*domain.Produto, error) {
	var produto domain.Produto

	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&produto).
		SetPathParam("id", fmt.Sprintf("%d", id)).
		Get("/api/produtos/{id}")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrIndisponivel, err)
	}
	if resp.IsError() {
		return nil, c.falha(resp)
	}

	if !produto.Valido() {
		return nil, fmt.Errorf("%w: produto malformado na resposta", domain.ErrIndisponivel)
	}
	return &produto, nil
}

// CriarProduto creates a product and returns it with the assigned ID
func (c *Client) CriarProduto(ctx context.Context, produto *domain.Produto) (*domain.Produto, error) {
	var criado domain.Produto

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(produto).
		SetResult(&criado).
		Post("/api/produtos")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrIndisponivel, err)
	}
	if resp.IsError() {
		return nil, c.falha(resp)
	}

	if !criado.Valido() {
		return nil, fmt.Errorf("%w: produto malformado na resposta", domain.ErrIndisponivel)
	}
	return &criado, nil
}

// AtualizarProduto replaces the full field set of an existing product
func (c *Client) AtualizarProduto(ctx context.Context, produto *domain.Produto) (*domain.Produto, error) {
	var atualizado domain.Produto

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(produto).
		SetResult(&atualizado).
		SetPathParam("id", fmt.Sprintf("%d", produto.ID)).
		Put("/api/produtos/{id}")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrIndisponivel, err)
	}
	if resp.IsError() {
		return nil, c.falha(resp)
	}

	if !atualizado.Valido() {
		return nil, fmt.Errorf("%w: produto malformado na resposta", domain.ErrIndisponivel)
	}
	return &atualizado, nil
}

// RemoverProduto deletes a product
func (c *Client) RemoverProduto(ctx context.Context, id int64) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("id", fmt.Sprintf("%d", id)).
		Delete("/api/produtos/{id}")
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrIndisponivel, err)
	}
	if resp.IsError() {
		return c.falha(resp)
	}
	return nil
}

// ListarVendas fetches the full sale history
func (c *Client) ListarVendas(ctx context.Context) ([]*domain.Venda, error) {
	var vendas []*domain.Venda

	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&vendas).
		Get("/api/vendas")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrIndisponivel, err)
	}
	if resp.IsError() {
		return nil, c.falha(resp)
	}

	for _, v := range vendas {
		if v.VendaID < 1 || v.Quantidade < 1 {
			c.logger.Warnf("Gateway returned malformed sale (venda_id=%d)", v.VendaID)
			return nil, fmt.Errorf("%w: venda malformada na resposta", domain.ErrIndisponivel)
		}
	}
	return vendas, nil
}

// CriarVenda submits a sale. The server performs the authoritative stock
// check and decrement; a business rejection comes back as RejeicaoError
// with the server's reason untouched.
func (c *Client) CriarVenda(ctx context.Context, produtoID, quantidade int64) (*domain.Venda, error) {
	var venda domain.Venda

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]int64{"produto_id": produtoID, "quantidade": quantidade}).
		SetResult(&venda).
		Post("/api/vendas")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrIndisponivel, err)
	}
	if resp.IsError() {
		return nil, c.falha(resp)
	}

	if venda.VendaID < 1 {
		return nil, fmt.Errorf("%w: venda malformada na resposta", domain.ErrIndisponivel)
	}
	return &venda, nil
}
