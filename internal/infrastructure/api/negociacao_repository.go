package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/vendaflow/crmdesk/internal/domain/entity"
)

// NegociacaoRepository implementa repository.NegociacaoRepository sobre
// /negociacao e /negociacao/produtos.
type NegociacaoRepository struct {
	c *Client
}

// NewNegociacaoRepository constrói o repositório REST de negociações.
func NewNegociacaoRepository(c *Client) *NegociacaoRepository {
	return &NegociacaoRepository{c: c}
}

func (r *NegociacaoRepository) ListByFunil(ctx context.Context, funilID string) ([]*entity.Negociacao, error) {
	var docs []wireNegociacao
	path := "/negociacao?funil=" + url.QueryEscape(funilID)
	if err := r.c.do(ctx, http.MethodGet, path, nil, &docs); err != nil {
		return nil, err
	}
	return mapSlice(docs, wireNegociacao.toEntity), nil
}

func (r *NegociacaoRepository) Create(ctx context.Context, n *entity.Negociacao) (*entity.Negociacao, error) {
	body := map[string]any{
		"empresa":     n.EmpresaID,
		"lead":        n.LeadID,
		"funil":       n.FunilID,
		"etapa":       n.EtapaID,
		"titulo":      n.Titulo,
		"status":      n.Status,
		"responsavel": n.ResponsavelID,
	}
	var doc wireNegociacao
	if err := r.c.do(ctx, http.MethodPost, "/negociacao", body, &doc); err != nil {
		return nil, err
	}
	return doc.toEntity(), nil
}

func (r *NegociacaoRepository) Update(ctx context.Context, n *entity.Negociacao) error {
	body := map[string]any{
		"titulo":      n.Titulo,
		"status":      n.Status,
		"etapa":       n.EtapaID,
		"responsavel": n.ResponsavelID,
	}
	return r.c.do(ctx, http.MethodPut, "/negociacao/"+n.ID, body, nil)
}

// UpdateEtapa move a negociação de coluna no kanban (/negociacao/updateetapa).
func (r *NegociacaoRepository) UpdateEtapa(ctx context.Context, id, etapaID string) error {
	body := map[string]any{"negociacao": id, "etapa": etapaID}
	return r.c.do(ctx, http.MethodPut, "/negociacao/updateetapa", body, nil)
}

func (r *NegociacaoRepository) Delete(ctx context.Context, id string) error {
	return r.c.do(ctx, http.MethodDelete, "/negociacao/delete/"+id, nil, nil)
}

func (r *NegociacaoRepository) ListProdutosByEmpresa(ctx context.Context, empresaID string) ([]*entity.NegociacaoProduto, error) {
	var docs []wireNegociacaoProduto
	path := "/negociacao/produtos?empresa=" + url.QueryEscape(empresaID)
	if err := r.c.do(ctx, http.MethodGet, path, nil, &docs); err != nil {
		return nil, err
	}
	return mapSlice(docs, wireNegociacaoProduto.toEntity), nil
}

// AddProduto vincula um produto com snapshot de preço e parcelas no momento
// da inclusão.
func (r *NegociacaoRepository) AddProduto(ctx context.Context, np *entity.NegociacaoProduto) (*entity.NegociacaoProduto, error) {
	body := map[string]any{
		"empresa":        np.EmpresaID,
		"negociacao":     np.NegociacaoID,
		"produto":        np.ProdutoID,
		"valor_snapshot": np.ValorSnapshot,
		"parcelas":       np.Parcelas,
	}
	var doc wireNegociacaoProduto
	if err := r.c.do(ctx, http.MethodPost, "/negociacao/produtos", body, &doc); err != nil {
		return nil, err
	}
	return doc.toEntity(), nil
}

func (r *NegociacaoRepository) RemoveProduto(ctx context.Context, id string) error {
	return r.c.do(ctx, http.MethodDelete, "/negociacao/produtos/delete/"+id, nil, nil)
}
