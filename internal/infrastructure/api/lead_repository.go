package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/vendaflow/crmdesk/internal/domain/entity"
)

// LeadRepository implementa repository.LeadRepository sobre /cliente
// (nome histórico do endpoint de leads no backend).
type LeadRepository struct {
	c *Client
}

// NewLeadRepository constrói o repositório REST de leads.
func NewLeadRepository(c *Client) *LeadRepository {
	return &LeadRepository{c: c}
}

func (r *LeadRepository) ListByEmpresa(ctx context.Context, empresaID string) ([]*entity.Lead, error) {
	var docs []wireLead
	path := "/cliente?empresa=" + url.QueryEscape(empresaID)
	if err := r.c.do(ctx, http.MethodGet, path, nil, &docs); err != nil {
		return nil, err
	}
	return mapSlice(docs, wireLead.toEntity), nil
}

func (r *LeadRepository) Create(ctx context.Context, lead *entity.Lead) (*entity.Lead, error) {
	var doc wireLead
	if err := r.c.do(ctx, http.MethodPost, "/cliente", leadBody(lead), &doc); err != nil {
		return nil, err
	}
	return doc.toEntity(), nil
}

func (r *LeadRepository) Update(ctx context.Context, lead *entity.Lead) error {
	return r.c.do(ctx, http.MethodPut, "/cliente/"+lead.ID, leadBody(lead), nil)
}

// Delete é soft delete: o backend marca deletado=true e o lead continua
// vindo nas listagens.
func (r *LeadRepository) Delete(ctx context.Context, id string) error {
	return r.c.do(ctx, http.MethodDelete, "/cliente/delete/"+id, nil, nil)
}

func leadBody(lead *entity.Lead) map[string]any {
	return map[string]any{
		"empresa":       lead.EmpresaID,
		"nome_completo": lead.NomeCompleto,
		"email":         lead.Email,
		"whatsapp":      lead.Whatsapp,
		"tipo_pessoa":   lead.TipoPessoa,
		"campanha":      lead.Campanha,
		"avaliacao":     lead.Avaliacao,
		"status":        lead.Status,
		"responsavel":   lead.ResponsavelID,
	}
}
