package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/vendaflow/crmdesk/internal/domain/entity"
)

// EventoRepository implementa repository.EventoRepository sobre /evento.
type EventoRepository struct {
	c *Client
}

// NewEventoRepository constrói o repositório REST da linha do tempo.
func NewEventoRepository(c *Client) *EventoRepository {
	return &EventoRepository{c: c}
}

func (r *EventoRepository) ListByNegociacao(ctx context.Context, negociacaoID string) ([]*entity.Evento, error) {
	var docs []wireEvento
	path := "/evento?negociacao=" + url.QueryEscape(negociacaoID)
	if err := r.c.do(ctx, http.MethodGet, path, nil, &docs); err != nil {
		return nil, err
	}
	return mapSlice(docs, wireEvento.toEntity), nil
}

func (r *EventoRepository) Create(ctx context.Context, evento *entity.Evento) (*entity.Evento, error) {
	body := map[string]any{
		"empresa":    evento.EmpresaID,
		"negociacao": evento.NegociacaoID,
		"autor":      evento.AutorID,
		"tipo":       evento.Tipo,
		"descricao":  evento.Descricao,
	}
	var doc wireEvento
	if err := r.c.do(ctx, http.MethodPost, "/evento", body, &doc); err != nil {
		return nil, err
	}
	return doc.toEntity(), nil
}
