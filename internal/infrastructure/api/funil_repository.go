package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/vendaflow/crmdesk/internal/domain/entity"
)

// FunilRepository implementa repository.FunilRepository sobre /funil.
type FunilRepository struct {
	c *Client
}

// NewFunilRepository constrói o repositório REST de funis.
func NewFunilRepository(c *Client) *FunilRepository {
	return &FunilRepository{c: c}
}

func (r *FunilRepository) ListByEmpresa(ctx context.Context, empresaID string) ([]*entity.Funil, error) {
	var docs []wireFunil
	path := "/funil?empresa=" + url.QueryEscape(empresaID)
	if err := r.c.do(ctx, http.MethodGet, path, nil, &docs); err != nil {
		return nil, err
	}
	return mapSlice(docs, wireFunil.toEntity), nil
}

func (r *FunilRepository) Create(ctx context.Context, funil *entity.Funil) (*entity.Funil, error) {
	body := map[string]any{"empresa": funil.EmpresaID, "nome": funil.Nome}
	var doc wireFunil
	if err := r.c.do(ctx, http.MethodPost, "/funil", body, &doc); err != nil {
		return nil, err
	}
	return doc.toEntity(), nil
}

func (r *FunilRepository) Update(ctx context.Context, funil *entity.Funil) error {
	body := map[string]any{"nome": funil.Nome}
	return r.c.do(ctx, http.MethodPut, "/funil/"+funil.ID, body, nil)
}

func (r *FunilRepository) Delete(ctx context.Context, id string) error {
	return r.c.do(ctx, http.MethodDelete, "/funil/delete/"+id, nil, nil)
}

// EtapaRepository implementa repository.EtapaRepository sobre /etapa.
type EtapaRepository struct {
	c *Client
}

// NewEtapaRepository constrói o repositório REST de etapas.
func NewEtapaRepository(c *Client) *EtapaRepository {
	return &EtapaRepository{c: c}
}

func (r *EtapaRepository) ListByFunil(ctx context.Context, funilID string) ([]*entity.Etapa, error) {
	var docs []wireEtapa
	path := "/etapa?funil=" + url.QueryEscape(funilID)
	if err := r.c.do(ctx, http.MethodGet, path, nil, &docs); err != nil {
		return nil, err
	}
	return mapSlice(docs, wireEtapa.toEntity), nil
}

func (r *EtapaRepository) Create(ctx context.Context, etapa *entity.Etapa) (*entity.Etapa, error) {
	body := map[string]any{
		"empresa": etapa.EmpresaID,
		"funil":   etapa.FunilID,
		"nome":    etapa.Nome,
		"ordem":   etapa.Ordem,
	}
	var doc wireEtapa
	if err := r.c.do(ctx, http.MethodPost, "/etapa", body, &doc); err != nil {
		return nil, err
	}
	return doc.toEntity(), nil
}

func (r *EtapaRepository) Update(ctx context.Context, etapa *entity.Etapa) error {
	body := map[string]any{"nome": etapa.Nome, "ordem": etapa.Ordem}
	return r.c.do(ctx, http.MethodPut, "/etapa/"+etapa.ID, body, nil)
}

func (r *EtapaRepository) Delete(ctx context.Context, id string) error {
	return r.c.do(ctx, http.MethodDelete, "/etapa/delete/"+id, nil, nil)
}

// UpdateOrder persiste a ordem completa das etapas de um funil em uma única
// chamada. orderedIDs é a nova ordem visual, índice = ordem.
func (r *EtapaRepository) UpdateOrder(ctx context.Context, funilID string, orderedIDs []string) error {
	body := map[string]any{"funil": funilID, "ordem": orderedIDs}
	return r.c.do(ctx, http.MethodPut, "/etapa/updateorder", body, nil)
}
