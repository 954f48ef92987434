package store

import (
	"context"
	"fmt"

	"github.com/vendaflow/crmdesk/internal/domain"
	"github.com/vendaflow/crmdesk/internal/domain/entity"
)

// CreateEmpresa cria um tenant (somente proprietário/superadmin) e recarrega
// a coleção.
func (s *Store) CreateEmpresa(ctx context.Context, empresa *entity.Empresa) error {
	if err := s.requerPerfil(entity.PerfilProprietario, entity.PerfilSuperAdmin); err != nil {
		return err
	}
	if empresa.Nome == "" {
		return fmt.Errorf("store: nome da empresa é obrigatório: %w", domain.ErrInvalidInput)
	}
	if _, err := s.repos.Empresas.Create(ctx, empresa); err != nil {
		return err
	}
	empresas, err := s.repos.Empresas.ListAll(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.empresas = empresas
	s.mu.Unlock()
	return nil
}

// UpdateEmpresa atualiza o tenant (patch otimista com rollback).
func (s *Store) UpdateEmpresa(ctx context.Context, empresa *entity.Empresa) error {
	if err := s.requerAdmin(); err != nil {
		return err
	}
	s.mu.Lock()
	i := indexEmpresa(s.empresas, empresa.ID)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("store: empresa %s: %w", empresa.ID, domain.ErrNotFound)
	}
	anterior := s.empresas[i]
	nova := *empresa
	s.empresas[i] = &nova
	s.mu.Unlock()

	if err := s.repos.Empresas.Update(ctx, &nova); err != nil {
		s.mu.Lock()
		if j := indexEmpresa(s.empresas, empresa.ID); j >= 0 {
			s.empresas[j] = anterior
		}
		s.mu.Unlock()
		return err
	}
	return nil
}

// DeleteEmpresa remove o tenant (somente proprietário; otimista com rollback).
func (s *Store) DeleteEmpresa(ctx context.Context, id string) error {
	if err := s.requerPerfil(entity.PerfilProprietario); err != nil {
		return err
	}
	s.mu.Lock()
	i := indexEmpresa(s.empresas, id)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("store: empresa %s: %w", id, domain.ErrNotFound)
	}
	anteriores := s.empresas
	s.empresas = append(append([]*entity.Empresa(nil), s.empresas[:i]...), s.empresas[i+1:]...)
	s.mu.Unlock()

	if err := s.repos.Empresas.Delete(ctx, id); err != nil {
		s.mu.Lock()
		s.empresas = anteriores
		s.mu.Unlock()
		return err
	}
	return nil
}

// requerPerfil falha com ErrForbidden se o perfil da sessão não está entre
// os permitidos.
func (s *Store) requerPerfil(perfis ...string) error {
	s.mu.Lock()
	u := s.usuario
	s.mu.Unlock()
	if u == nil {
		return domain.ErrUnauthenticated
	}
	for _, p := range perfis {
		if u.Perfil == p {
			return nil
		}
	}
	return fmt.Errorf("store: perfil %s: %w", u.Perfil, domain.ErrForbidden)
}

func indexEmpresa(empresas []*entity.Empresa, id string) int {
	for i, e := range empresas {
		if e.ID == id {
			return i
		}
	}
	return -1
}
