package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/vendaflow/crmdesk/internal/domain/entity"
)

// NotificacaoRepository implementa repository.NotificacaoRepository sobre
// /notificacao (fila de aprovações).
type NotificacaoRepository struct {
	c *Client
}

// NewNotificacaoRepository constrói o repositório REST de notificações.
func NewNotificacaoRepository(c *Client) *NotificacaoRepository {
	return &NotificacaoRepository{c: c}
}

func (r *NotificacaoRepository) ListByUsuario(ctx context.Context, usuarioID string) ([]*entity.Notificacao, error) {
	var docs []wireNotificacao
	path := "/notificacao?usuario=" + url.QueryEscape(usuarioID)
	if err := r.c.do(ctx, http.MethodGet, path, nil, &docs); err != nil {
		return nil, err
	}
	return mapSlice(docs, wireNotificacao.toEntity), nil
}

func (r *NotificacaoRepository) Approve(ctx context.Context, id string) error {
	return r.c.do(ctx, http.MethodPost, "/notificacao/aprovar/"+id, nil, nil)
}

func (r *NotificacaoRepository) Reject(ctx context.Context, id string) error {
	return r.c.do(ctx, http.MethodPost, "/notificacao/rejeitar/"+id, nil, nil)
}
