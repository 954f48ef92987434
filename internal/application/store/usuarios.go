package store

import (
	"context"
	"fmt"

	"github.com/vendaflow/crmdesk/internal/domain"
	"github.com/vendaflow/crmdesk/internal/domain/entity"
)

// CreateUsuario cria um usuário do tenant (ação administrativa) e recarrega
// a coleção.
func (s *Store) CreateUsuario(ctx context.Context, usuario *entity.Usuario, senha string) error {
	if err := s.requerAdmin(); err != nil {
		return err
	}
	if usuario.Email == "" || senha == "" {
		return fmt.Errorf("store: email e senha são obrigatórios: %w", domain.ErrInvalidInput)
	}
	s.mu.Lock()
	usuario.EmpresaID = s.usuario.EmpresaID
	for _, u := range s.usuarios {
		if u.Email == usuario.Email {
			s.mu.Unlock()
			return fmt.Errorf("store: email %s já cadastrado: %w", usuario.Email, domain.ErrDuplicate)
		}
	}
	s.mu.Unlock()

	if _, err := s.repos.Usuarios.Create(ctx, usuario, senha); err != nil {
		return err
	}
	return s.refetchUsuarios(ctx)
}

// UpdateUsuario atualiza perfil/permissões/ativação (patch otimista).
func (s *Store) UpdateUsuario(ctx context.Context, usuario *entity.Usuario) error {
	if err := s.requerAdmin(); err != nil {
		return err
	}
	s.mu.Lock()
	i := indexUsuario(s.usuarios, usuario.ID)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("store: usuário %s: %w", usuario.ID, domain.ErrNotFound)
	}
	anterior := s.usuarios[i]
	novo := *usuario
	novo.EmpresaID = anterior.EmpresaID
	s.usuarios[i] = &novo
	s.mu.Unlock()

	if err := s.repos.Usuarios.Update(ctx, &novo); err != nil {
		s.mu.Lock()
		if j := indexUsuario(s.usuarios, usuario.ID); j >= 0 {
			s.usuarios[j] = anterior
		}
		s.mu.Unlock()
		return err
	}
	return nil
}

// DeleteUsuario remove um usuário (otimista com rollback). O usuário da
// sessão não pode remover a si mesmo.
func (s *Store) DeleteUsuario(ctx context.Context, id string) error {
	if err := s.requerAdmin(); err != nil {
		return err
	}
	s.mu.Lock()
	if s.usuario != nil && s.usuario.ID == id {
		s.mu.Unlock()
		return fmt.Errorf("store: não é possível remover o próprio usuário: %w", domain.ErrConflict)
	}
	i := indexUsuario(s.usuarios, id)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("store: usuário %s: %w", id, domain.ErrNotFound)
	}
	anteriores := s.usuarios
	s.usuarios = append(append([]*entity.Usuario(nil), s.usuarios[:i]...), s.usuarios[i+1:]...)
	s.mu.Unlock()

	if err := s.repos.Usuarios.Delete(ctx, id); err != nil {
		s.mu.Lock()
		s.usuarios = anteriores
		s.mu.Unlock()
		return err
	}
	return nil
}

// ChangePassword troca a senha do próprio usuário (ou de outro, se admin).
// A senha nunca é tocada localmente; validação é do backend.
func (s *Store) ChangePassword(ctx context.Context, usuarioID, senhaAtual, senhaNova string) error {
	s.mu.Lock()
	u := s.usuario
	s.mu.Unlock()
	if u == nil {
		return domain.ErrUnauthenticated
	}
	if u.ID != usuarioID && !u.Administra() {
		return fmt.Errorf("store: troca de senha de terceiro: %w", domain.ErrForbidden)
	}
	if senhaNova == "" {
		return fmt.Errorf("store: senha nova vazia: %w", domain.ErrInvalidInput)
	}
	return s.repos.Usuarios.UpdatePassword(ctx, usuarioID, senhaAtual, senhaNova)
}

func (s *Store) refetchUsuarios(ctx context.Context) error {
	s.mu.Lock()
	empresaID := s.usuario.EmpresaID
	s.mu.Unlock()

	usuarios, err := s.repos.Usuarios.ListByEmpresa(ctx, empresaID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.usuarios = usuarios
	s.mu.Unlock()
	return nil
}

func indexUsuario(usuarios []*entity.Usuario, id string) int {
	for i, u := range usuarios {
		if u.ID == id {
			return i
		}
	}
	return -1
}
