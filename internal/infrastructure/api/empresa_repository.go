package api

import (
	"context"
	"net/http"

	"github.com/vendaflow/crmdesk/internal/domain/entity"
)

// EmpresaRepository implementa repository.EmpresaRepository sobre /empresa.
type EmpresaRepository struct {
	c *Client
}

// NewEmpresaRepository constrói o repositório REST de empresas.
func NewEmpresaRepository(c *Client) *EmpresaRepository {
	return &EmpresaRepository{c: c}
}

func (r *EmpresaRepository) ListAll(ctx context.Context) ([]*entity.Empresa, error) {
	var docs []wireEmpresa
	if err := r.c.do(ctx, http.MethodGet, "/empresa", nil, &docs); err != nil {
		return nil, err
	}
	return mapSlice(docs, wireEmpresa.toEntity), nil
}

func (r *EmpresaRepository) Create(ctx context.Context, empresa *entity.Empresa) (*entity.Empresa, error) {
	body := map[string]any{
		"nome":           empresa.Nome,
		"documento":      empresa.Documento,
		"cor_primaria":   empresa.CorPrimaria,
		"cor_secundaria": empresa.CorSecundaria,
		"logo_url":       empresa.LogoURL,
		"ativa":          empresa.Ativa,
	}
	var doc wireEmpresa
	if err := r.c.do(ctx, http.MethodPost, "/empresa", body, &doc); err != nil {
		return nil, err
	}
	return doc.toEntity(), nil
}

func (r *EmpresaRepository) Update(ctx context.Context, empresa *entity.Empresa) error {
	body := map[string]any{
		"nome":           empresa.Nome,
		"documento":      empresa.Documento,
		"cor_primaria":   empresa.CorPrimaria,
		"cor_secundaria": empresa.CorSecundaria,
		"logo_url":       empresa.LogoURL,
		"ativa":          empresa.Ativa,
	}
	return r.c.do(ctx, http.MethodPut, "/empresa/"+empresa.ID, body, nil)
}

func (r *EmpresaRepository) Delete(ctx context.Context, id string) error {
	return r.c.do(ctx, http.MethodDelete, "/empresa/delete/"+id, nil, nil)
}
