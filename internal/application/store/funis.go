package store

import (
	"context"
	"fmt"

	"github.com/vendaflow/crmdesk/internal/domain"
	"github.com/vendaflow/crmdesk/internal/domain/entity"
)

// CreateFunil cria um funil e recarrega a coleção de funis.
func (s *Store) CreateFunil(ctx context.Context, nome string) error {
	if err := s.requerModulo(entity.ModuloFunis); err != nil {
		return err
	}
	if nome == "" {
		return fmt.Errorf("store: nome do funil é obrigatório: %w", domain.ErrInvalidInput)
	}
	s.mu.Lock()
	empresaID := s.usuario.EmpresaID
	s.mu.Unlock()

	if _, err := s.repos.Funis.Create(ctx, &entity.Funil{EmpresaID: empresaID, Nome: nome}); err != nil {
		return err
	}
	funis, err := s.repos.Funis.ListByEmpresa(ctx, empresaID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.funis = funis
	s.mu.Unlock()
	return nil
}

// UpdateFunil renomeia um funil (patch otimista com rollback).
func (s *Store) UpdateFunil(ctx context.Context, funilID, nome string) error {
	if err := s.requerModulo(entity.ModuloFunis); err != nil {
		return err
	}
	s.mu.Lock()
	i := indexFunil(s.funis, funilID)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("store: funil %s: %w", funilID, domain.ErrNotFound)
	}
	anterior := s.funis[i]
	novo := *anterior
	novo.Nome = nome
	s.funis[i] = &novo
	s.mu.Unlock()

	if err := s.repos.Funis.Update(ctx, &novo); err != nil {
		s.mu.Lock()
		if j := indexFunil(s.funis, funilID); j >= 0 {
			s.funis[j] = anterior
		}
		s.mu.Unlock()
		return err
	}
	return nil
}

// DeleteFunil remove o funil (otimista). Se o funil removido era o
// selecionado, a seleção passa para o primeiro funil restante.
func (s *Store) DeleteFunil(ctx context.Context, funilID string) error {
	if err := s.requerAdmin(); err != nil {
		return err
	}
	s.mu.Lock()
	i := indexFunil(s.funis, funilID)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("store: funil %s: %w", funilID, domain.ErrNotFound)
	}
	anteriores := s.funis
	s.funis = append(append([]*entity.Funil(nil), s.funis[:i]...), s.funis[i+1:]...)
	s.mu.Unlock()

	if err := s.repos.Funis.Delete(ctx, funilID); err != nil {
		s.mu.Lock()
		s.funis = anteriores
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	selecionado := s.funilSelecionado
	proximo := ""
	if len(s.funis) > 0 {
		proximo = s.funis[0].ID
	}
	s.mu.Unlock()
	if selecionado == funilID && proximo != "" {
		return s.SelectFunil(ctx, proximo)
	}
	if selecionado == funilID {
		s.mu.Lock()
		s.funilSelecionado = ""
		s.etapas, s.negociacoes = nil, nil
		s.mu.Unlock()
	}
	return nil
}

// CreateEtapa cria uma etapa ao fim do funil selecionado e recarrega as
// etapas.
func (s *Store) CreateEtapa(ctx context.Context, funilID, nome string) error {
	if err := s.requerModulo(entity.ModuloFunis); err != nil {
		return err
	}
	if nome == "" {
		return fmt.Errorf("store: nome da etapa é obrigatório: %w", domain.ErrInvalidInput)
	}
	s.mu.Lock()
	empresaID := s.usuario.EmpresaID
	ordem := 0
	for _, e := range s.etapas {
		if e.FunilID == funilID && e.Ordem >= ordem {
			ordem = e.Ordem + 1
		}
	}
	s.mu.Unlock()

	etapa := &entity.Etapa{EmpresaID: empresaID, FunilID: funilID, Nome: nome, Ordem: ordem}
	if _, err := s.repos.Etapas.Create(ctx, etapa); err != nil {
		return err
	}
	return s.refetchEtapas(ctx, funilID)
}

// UpdateEtapa renomeia uma etapa (patch otimista com rollback).
func (s *Store) UpdateEtapa(ctx context.Context, etapaID, nome string) error {
	if err := s.requerModulo(entity.ModuloFunis); err != nil {
		return err
	}
	s.mu.Lock()
	i := indexEtapa(s.etapas, etapaID)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("store: etapa %s: %w", etapaID, domain.ErrNotFound)
	}
	anterior := s.etapas[i]
	nova := *anterior
	nova.Nome = nome
	s.etapas[i] = &nova
	s.mu.Unlock()

	if err := s.repos.Etapas.Update(ctx, &nova); err != nil {
		s.mu.Lock()
		if j := indexEtapa(s.etapas, etapaID); j >= 0 {
			s.etapas[j] = anterior
		}
		s.mu.Unlock()
		return err
	}
	return nil
}

// DeleteEtapa remove a etapa e renumera as restantes do funil para manter
// Ordem contígua; tudo otimista, com rollback do conjunto em falha.
// Etapas com negociações não podem ser removidas.
func (s *Store) DeleteEtapa(ctx context.Context, etapaID string) error {
	if err := s.requerModulo(entity.ModuloFunis); err != nil {
		return err
	}
	s.mu.Lock()
	i := indexEtapa(s.etapas, etapaID)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("store: etapa %s: %w", etapaID, domain.ErrNotFound)
	}
	for _, n := range s.negociacoes {
		if n.EtapaID == etapaID {
			s.mu.Unlock()
			return fmt.Errorf("store: etapa %s tem negociações: %w", etapaID, domain.ErrConflict)
		}
	}
	anteriores := s.etapas
	funilID := s.etapas[i].FunilID
	restantes := make([]*entity.Etapa, 0, len(s.etapas)-1)
	ordem := 0
	for _, e := range s.etapas {
		if e.ID == etapaID {
			continue
		}
		copia := *e
		if copia.FunilID == funilID {
			copia.Ordem = ordem
			ordem++
		}
		restantes = append(restantes, &copia)
	}
	s.etapas = restantes
	s.mu.Unlock()

	if err := s.repos.Etapas.Delete(ctx, etapaID); err != nil {
		s.mu.Lock()
		s.etapas = anteriores
		s.mu.Unlock()
		return err
	}

	// Persiste a renumeração; o estado local já está contíguo.
	ids := make([]string, 0, len(restantes))
	for _, e := range restantes {
		if e.FunilID == funilID {
			ids = append(ids, e.ID)
		}
	}
	if err := s.repos.Etapas.UpdateOrder(ctx, funilID, ids); err != nil {
		// A remoção já foi confirmada e não volta; a renumeração local não
		// chegou ao backend. Recarrega para espelhar o que ele de fato tem.
		if rerr := s.refetchEtapas(ctx, funilID); rerr != nil {
			s.log.Warn().Err(rerr).Str("funil", funilID).Msg("recarga de etapas após falha de reordenação")
		}
		return err
	}
	return nil
}

// ReorderEtapas aplica a nova ordem visual das etapas do funil: Ordem vira
// uma sequência contígua começando em zero, na ordem de orderedIDs. O patch
// é otimista; em falha o conjunto anterior é restaurado.
func (s *Store) ReorderEtapas(ctx context.Context, funilID string, orderedIDs []string) error {
	if err := s.requerModulo(entity.ModuloFunis); err != nil {
		return err
	}
	s.mu.Lock()
	atuais := make(map[string]*entity.Etapa)
	for _, e := range s.etapas {
		if e.FunilID == funilID {
			atuais[e.ID] = e
		}
	}
	if len(orderedIDs) != len(atuais) {
		s.mu.Unlock()
		return fmt.Errorf("store: reordenação com %d ids para %d etapas: %w",
			len(orderedIDs), len(atuais), domain.ErrInvalidInput)
	}
	for _, id := range orderedIDs {
		if _, ok := atuais[id]; !ok {
			s.mu.Unlock()
			return fmt.Errorf("store: etapa %s não pertence ao funil %s: %w", id, funilID, domain.ErrInvalidInput)
		}
	}

	anteriores := s.etapas
	novas := make([]*entity.Etapa, 0, len(s.etapas))
	for ordem, id := range orderedIDs {
		copia := *atuais[id]
		copia.Ordem = ordem
		novas = append(novas, &copia)
	}
	for _, e := range s.etapas {
		if e.FunilID != funilID {
			novas = append(novas, e)
		}
	}
	ordenarEtapas(novas)
	s.etapas = novas
	s.mu.Unlock()

	if err := s.repos.Etapas.UpdateOrder(ctx, funilID, orderedIDs); err != nil {
		s.mu.Lock()
		s.etapas = anteriores
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *Store) refetchEtapas(ctx context.Context, funilID string) error {
	etapas, err := s.repos.Etapas.ListByFunil(ctx, funilID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	ordenarEtapas(etapas)
	s.etapas = etapas
	s.mu.Unlock()
	return nil
}

func indexEtapa(etapas []*entity.Etapa, id string) int {
	for i, e := range etapas {
		if e.ID == id {
			return i
		}
	}
	return -1
}
