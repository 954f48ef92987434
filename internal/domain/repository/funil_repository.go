package repository

import (
	"context"

	"github.com/vendaflow/crmdesk/internal/domain/entity"
)

// FunilRepository define o porto de acesso remoto para Funil.
type FunilRepository interface {
	ListByEmpresa(ctx context.Context, empresaID string) ([]*entity.Funil, error)
	Create(ctx context.Context, funil *entity.Funil) (*entity.Funil, error)
	Update(ctx context.Context, funil *entity.Funil) error
	Delete(ctx context.Context, id string) error
}

// EtapaRepository define o porto de acesso remoto para Etapa.
// UpdateOrder persiste a reordenação completa de um funil em uma chamada
// (endpoint /etapa/updateorder).
type EtapaRepository interface {
	ListByFunil(ctx context.Context, funilID string) ([]*entity.Etapa, error)
	Create(ctx context.Context, etapa *entity.Etapa) (*entity.Etapa, error)
	Update(ctx context.Context, etapa *entity.Etapa) error
	Delete(ctx context.Context, id string) error
	UpdateOrder(ctx context.Context, funilID string, orderedIDs []string) error
}
