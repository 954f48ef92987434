package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/vendaflow/crmdesk/internal/domain/entity"
)

// UsuarioRepository implementa repository.UsuarioRepository sobre /usuario.
type UsuarioRepository struct {
	c *Client
}

// NewUsuarioRepository constrói o repositório REST de usuários.
func NewUsuarioRepository(c *Client) *UsuarioRepository {
	return &UsuarioRepository{c: c}
}

// Login autentica no backend e devolve o token emitido junto com o usuário.
// A senha trafega em claro sobre TLS; nenhum hash é feito no cliente.
func (r *UsuarioRepository) Login(ctx context.Context, email, senha string) (string, *entity.Usuario, error) {
	body := map[string]any{"email": email, "senha": senha}
	var out struct {
		Token   string      `json:"token"`
		Usuario wireUsuario `json:"usuario"`
	}
	if err := r.c.do(ctx, http.MethodPost, "/usuario/login", body, &out); err != nil {
		return "", nil, err
	}
	return out.Token, out.Usuario.toEntity(), nil
}

func (r *UsuarioRepository) ListByEmpresa(ctx context.Context, empresaID string) ([]*entity.Usuario, error) {
	var docs []wireUsuario
	path := "/usuario?empresa=" + url.QueryEscape(empresaID)
	if err := r.c.do(ctx, http.MethodGet, path, nil, &docs); err != nil {
		return nil, err
	}
	return mapSlice(docs, wireUsuario.toEntity), nil
}

func (r *UsuarioRepository) Create(ctx context.Context, usuario *entity.Usuario, senha string) (*entity.Usuario, error) {
	body := map[string]any{
		"empresa":    usuario.EmpresaID,
		"nome":       usuario.Nome,
		"email":      usuario.Email,
		"perfil":     usuario.Perfil,
		"permissoes": usuario.Permissoes,
		"ativo":      usuario.Ativo,
		"senha":      senha,
	}
	var doc wireUsuario
	if err := r.c.do(ctx, http.MethodPost, "/usuario", body, &doc); err != nil {
		return nil, err
	}
	return doc.toEntity(), nil
}

func (r *UsuarioRepository) Update(ctx context.Context, usuario *entity.Usuario) error {
	body := map[string]any{
		"nome":       usuario.Nome,
		"email":      usuario.Email,
		"perfil":     usuario.Perfil,
		"permissoes": usuario.Permissoes,
		"ativo":      usuario.Ativo,
	}
	return r.c.do(ctx, http.MethodPut, "/usuario/"+usuario.ID, body, nil)
}

func (r *UsuarioRepository) Delete(ctx context.Context, id string) error {
	return r.c.do(ctx, http.MethodDelete, "/usuario/delete/"+id, nil, nil)
}

// UpdatePassword troca a senha via /usuario/passwordupdate. A validação da
// senha atual é do backend.
func (r *UsuarioRepository) UpdatePassword(ctx context.Context, usuarioID, senhaAtual, senhaNova string) error {
	body := map[string]any{
		"usuario":     usuarioID,
		"senha_atual": senhaAtual,
		"senha_nova":  senhaNova,
	}
	return r.c.do(ctx, http.MethodPost, "/usuario/passwordupdate", body, nil)
}
