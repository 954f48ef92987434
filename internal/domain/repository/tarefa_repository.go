package repository

import (
	"context"

	"github.com/vendaflow/crmdesk/internal/domain/entity"
)

// TarefaRepository define o porto de acesso remoto para Tarefa.
type TarefaRepository interface {
	ListByUsuario(ctx context.Context, usuarioID string) ([]*entity.Tarefa, error)
	Create(ctx context.Context, tarefa *entity.Tarefa) (*entity.Tarefa, error)
	Update(ctx context.Context, tarefa *entity.Tarefa) error
	Delete(ctx context.Context, id string) error
}
