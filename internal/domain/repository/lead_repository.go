package repository

import (
	"context"

	"github.com/vendaflow/crmdesk/internal/domain/entity"
)

// LeadRepository define o porto de acesso remoto para Lead.
// Delete é soft delete no backend (deletado=true); o registro continua sendo
// devolvido por ListByEmpresa.
type LeadRepository interface {
	ListByEmpresa(ctx context.Context, empresaID string) ([]*entity.Lead, error)
	Create(ctx context.Context, lead *entity.Lead) (*entity.Lead, error)
	Update(ctx context.Context, lead *entity.Lead) error
	Delete(ctx context.Context, id string) error
}
