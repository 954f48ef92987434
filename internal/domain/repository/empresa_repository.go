package repository

import (
	"context"

	"github.com/vendaflow/crmdesk/internal/domain/entity"
)

// EmpresaRepository define o porto de acesso remoto para Empresa (DIP).
// A implementação REST vive em infrastructure/api.
type EmpresaRepository interface {
	ListAll(ctx context.Context) ([]*entity.Empresa, error)
	Create(ctx context.Context, empresa *entity.Empresa) (*entity.Empresa, error)
	Update(ctx context.Context, empresa *entity.Empresa) error
	Delete(ctx context.Context, id string) error
}
