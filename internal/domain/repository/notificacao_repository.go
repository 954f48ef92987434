package repository

import (
	"context"

	"github.com/vendaflow/crmdesk/internal/domain/entity"
)

// NotificacaoRepository define o porto da fila de aprovações. Approve e
// Reject removem a notificação no backend; o chamador remove a cópia local.
type NotificacaoRepository interface {
	ListByUsuario(ctx context.Context, usuarioID string) ([]*entity.Notificacao, error)
	Approve(ctx context.Context, id string) error
	Reject(ctx context.Context, id string) error
}
