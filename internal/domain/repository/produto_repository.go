package repository

import (
	"context"

	"github.com/vendaflow/crmdesk/internal/domain/entity"
)

// ProdutoRepository define o porto de acesso remoto para o catálogo.
type ProdutoRepository interface {
	ListByEmpresa(ctx context.Context, empresaID string) ([]*entity.Produto, error)
	Create(ctx context.Context, produto *entity.Produto) (*entity.Produto, error)
	Update(ctx context.Context, produto *entity.Produto) error
	Delete(ctx context.Context, id string) error
}
