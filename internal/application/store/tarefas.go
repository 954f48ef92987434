package store

import (
	"context"
	"fmt"

	"github.com/vendaflow/crmdesk/internal/domain"
	"github.com/vendaflow/crmdesk/internal/domain/entity"
)

// CreateTarefa cria uma tarefa do usuário da sessão e recarrega a coleção.
func (s *Store) CreateTarefa(ctx context.Context, tarefa *entity.Tarefa) error {
	s.mu.Lock()
	if s.usuario == nil {
		s.mu.Unlock()
		return domain.ErrUnauthenticated
	}
	tarefa.EmpresaID = s.usuario.EmpresaID
	if tarefa.UsuarioID == "" {
		tarefa.UsuarioID = s.usuario.ID
	}
	usuarioID := s.usuario.ID
	s.mu.Unlock()

	if tarefa.Status == "" {
		tarefa.Status = entity.TarefaPendente
	}
	if _, err := s.repos.Tarefas.Create(ctx, tarefa); err != nil {
		return err
	}
	tarefas, err := s.repos.Tarefas.ListByUsuario(ctx, usuarioID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.tarefas = tarefas
	s.mu.Unlock()
	return nil
}

// ConcluirTarefa marca a tarefa como concluída (patch otimista).
func (s *Store) ConcluirTarefa(ctx context.Context, id string) error {
	return s.atualizarStatusTarefa(ctx, id, entity.TarefaConcluida)
}

// ReabrirTarefa devolve a tarefa para pendente (patch otimista).
func (s *Store) ReabrirTarefa(ctx context.Context, id string) error {
	return s.atualizarStatusTarefa(ctx, id, entity.TarefaPendente)
}

func (s *Store) atualizarStatusTarefa(ctx context.Context, id, status string) error {
	s.mu.Lock()
	i := indexTarefa(s.tarefas, id)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("store: tarefa %s: %w", id, domain.ErrNotFound)
	}
	anterior := s.tarefas[i]
	nova := *anterior
	nova.Status = status
	s.tarefas[i] = &nova
	s.mu.Unlock()

	if err := s.repos.Tarefas.Update(ctx, &nova); err != nil {
		s.mu.Lock()
		if j := indexTarefa(s.tarefas, id); j >= 0 {
			s.tarefas[j] = anterior
		}
		s.mu.Unlock()
		return err
	}
	return nil
}

// DeleteTarefa remove a tarefa (otimista com rollback).
func (s *Store) DeleteTarefa(ctx context.Context, id string) error {
	s.mu.Lock()
	i := indexTarefa(s.tarefas, id)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("store: tarefa %s: %w", id, domain.ErrNotFound)
	}
	anteriores := s.tarefas
	s.tarefas = append(append([]*entity.Tarefa(nil), s.tarefas[:i]...), s.tarefas[i+1:]...)
	s.mu.Unlock()

	if err := s.repos.Tarefas.Delete(ctx, id); err != nil {
		s.mu.Lock()
		s.tarefas = anteriores
		s.mu.Unlock()
		return err
	}
	return nil
}

func indexTarefa(tarefas []*entity.Tarefa, id string) int {
	for i, t := range tarefas {
		if t.ID == id {
			return i
		}
	}
	return -1
}
