package store

import (
	"context"
	"fmt"

	"github.com/vendaflow/crmdesk/internal/domain"
	"github.com/vendaflow/crmdesk/internal/domain/entity"
)

// AprovarNotificacao confirma a entrada da fila de aprovações no backend e
// então a remove da coleção local. A remoção não é otimista: uma aprovação
// só some da fila depois de confirmada.
func (s *Store) AprovarNotificacao(ctx context.Context, id string) error {
	return s.resolverNotificacao(ctx, id, s.repos.Notificacoes.Approve)
}

// RejeitarNotificacao rejeita a entrada e a remove da coleção local.
func (s *Store) RejeitarNotificacao(ctx context.Context, id string) error {
	return s.resolverNotificacao(ctx, id, s.repos.Notificacoes.Reject)
}

func (s *Store) resolverNotificacao(ctx context.Context, id string, op func(context.Context, string) error) error {
	if err := s.requerAdmin(); err != nil {
		return err
	}
	s.mu.Lock()
	i := indexNotificacao(s.notificacoes, id)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("store: notificação %s: %w", id, domain.ErrNotFound)
	}
	s.mu.Unlock()

	if err := op(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if j := indexNotificacao(s.notificacoes, id); j >= 0 {
		s.notificacoes = append(append([]*entity.Notificacao(nil), s.notificacoes[:j]...), s.notificacoes[j+1:]...)
	}
	return nil
}

func indexNotificacao(notificacoes []*entity.Notificacao, id string) int {
	for i, n := range notificacoes {
		if n.ID == id {
			return i
		}
	}
	return -1
}
