package repository

import (
	"context"

	"github.com/vendaflow/crmdesk/internal/domain/entity"
)

// EventoRepository define o porto de acesso remoto para a linha do tempo.
// Eventos são imutáveis: só existem List e Create.
type EventoRepository interface {
	ListByNegociacao(ctx context.Context, negociacaoID string) ([]*entity.Evento, error)
	Create(ctx context.Context, evento *entity.Evento) (*entity.Evento, error)
}
