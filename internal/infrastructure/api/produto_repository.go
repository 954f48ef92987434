package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/vendaflow/crmdesk/internal/domain/entity"
)

// ProdutoRepository implementa repository.ProdutoRepository sobre /produto.
type ProdutoRepository struct {
	c *Client
}

// NewProdutoRepository constrói o repositório REST do catálogo.
func NewProdutoRepository(c *Client) *ProdutoRepository {
	return &ProdutoRepository{c: c}
}

func (r *ProdutoRepository) ListByEmpresa(ctx context.Context, empresaID string) ([]*entity.Produto, error) {
	var docs []wireProduto
	path := "/produto?empresa=" + url.QueryEscape(empresaID)
	if err := r.c.do(ctx, http.MethodGet, path, nil, &docs); err != nil {
		return nil, err
	}
	return mapSlice(docs, wireProduto.toEntity), nil
}

func (r *ProdutoRepository) Create(ctx context.Context, p *entity.Produto) (*entity.Produto, error) {
	body := map[string]any{
		"empresa":      p.EmpresaID,
		"nome":         p.Nome,
		"valor_total":  p.ValorTotal,
		"max_parcelas": p.MaxParcelas,
	}
	var doc wireProduto
	if err := r.c.do(ctx, http.MethodPost, "/produto", body, &doc); err != nil {
		return nil, err
	}
	return doc.toEntity(), nil
}

func (r *ProdutoRepository) Update(ctx context.Context, p *entity.Produto) error {
	body := map[string]any{
		"nome":         p.Nome,
		"valor_total":  p.ValorTotal,
		"max_parcelas": p.MaxParcelas,
	}
	return r.c.do(ctx, http.MethodPut, "/produto/"+p.ID, body, nil)
}

func (r *ProdutoRepository) Delete(ctx context.Context, id string) error {
	return r.c.do(ctx, http.MethodDelete, "/produto/delete/"+id, nil, nil)
}
