package repository

import (
	"context"

	"github.com/vendaflow/crmdesk/internal/domain/entity"
)

// NegociacaoRepository define o porto de acesso remoto para Negociacao e seus
// produtos vinculados. UpdateEtapa corresponde ao endpoint
// /negociacao/updateetapa (movimento de coluna no kanban).
type NegociacaoRepository interface {
	ListByFunil(ctx context.Context, funilID string) ([]*entity.Negociacao, error)
	Create(ctx context.Context, negociacao *entity.Negociacao) (*entity.Negociacao, error)
	Update(ctx context.Context, negociacao *entity.Negociacao) error
	UpdateEtapa(ctx context.Context, id, etapaID string) error
	Delete(ctx context.Context, id string) error

	ListProdutosByEmpresa(ctx context.Context, empresaID string) ([]*entity.NegociacaoProduto, error)
	AddProduto(ctx context.Context, np *entity.NegociacaoProduto) (*entity.NegociacaoProduto, error)
	RemoveProduto(ctx context.Context, id string) error
}
