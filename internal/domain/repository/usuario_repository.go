package repository

import (
	"context"

	"github.com/vendaflow/crmdesk/internal/domain/entity"
)

// UsuarioRepository define o porto de acesso remoto para Usuario.
// Login devolve o token emitido pelo backend junto com o usuário autenticado;
// a emissão e validação do token são responsabilidade do backend.
type UsuarioRepository interface {
	Login(ctx context.Context, email, senha string) (token string, usuario *entity.Usuario, err error)
	ListByEmpresa(ctx context.Context, empresaID string) ([]*entity.Usuario, error)
	Create(ctx context.Context, usuario *entity.Usuario, senha string) (*entity.Usuario, error)
	Update(ctx context.Context, usuario *entity.Usuario) error
	Delete(ctx context.Context, id string) error
	UpdatePassword(ctx context.Context, usuarioID, senhaAtual, senhaNova string) error
}
