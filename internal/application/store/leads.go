package store

import (
	"context"
	"fmt"

	"github.com/vendaflow/crmdesk/internal/domain"
	"github.com/vendaflow/crmdesk/internal/domain/entity"
)

// FalhaItem é uma falha individual de uma operação em lote.
type FalhaItem struct {
	ID     string
	Indice int
	Motivo string
}

// ResultadoLote resume uma operação em lote: quantos itens foram aplicados e
// as falhas coletadas. O lote sempre prossegue após uma falha individual.
type ResultadoLote struct {
	Sucessos int
	Falhas   []FalhaItem
}

// CreateLead cria um lead e recarrega a coleção (o backend atribui o ID).
func (s *Store) CreateLead(ctx context.Context, lead *entity.Lead) error {
	if err := s.requerModulo(entity.ModuloLeads); err != nil {
		return err
	}
	if lead.NomeCompleto == "" && lead.Email == "" {
		return fmt.Errorf("store: lead precisa de nome ou email: %w", domain.ErrInvalidInput)
	}
	if lead.Avaliacao < 0 || lead.Avaliacao > 5 {
		return fmt.Errorf("store: avaliação %d inválida (1..5, 0 = sem nota): %w", lead.Avaliacao, domain.ErrInvalidInput)
	}
	s.mu.Lock()
	lead.EmpresaID = s.usuario.EmpresaID
	if lead.ResponsavelID == "" {
		lead.ResponsavelID = s.usuario.ID
	}
	s.mu.Unlock()

	if _, err := s.repos.Leads.Create(ctx, lead); err != nil {
		return err
	}
	return s.refetchLeads(ctx)
}

// UpdateLead aplica o patch otimista e chama o backend; em falha restaura o
// registro anterior e devolve o erro.
func (s *Store) UpdateLead(ctx context.Context, lead *entity.Lead) error {
	if err := s.requerModulo(entity.ModuloLeads); err != nil {
		return err
	}
	s.mu.Lock()
	i := indexLead(s.leads, lead.ID)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("store: lead %s: %w", lead.ID, domain.ErrNotFound)
	}
	anterior := s.leads[i]
	novo := *lead
	novo.EmpresaID = anterior.EmpresaID
	s.leads[i] = &novo
	s.mu.Unlock()

	if err := s.repos.Leads.Update(ctx, &novo); err != nil {
		s.restoreLead(anterior)
		return err
	}
	return nil
}

// DeleteLead faz soft delete: marca deletado localmente de forma otimista e
// chama o backend; em falha desfaz a marca. O registro permanece na coleção
// e some das visões filtradas.
func (s *Store) DeleteLead(ctx context.Context, id string) error {
	if err := s.requerModulo(entity.ModuloLeads); err != nil {
		return err
	}
	s.mu.Lock()
	i := indexLead(s.leads, id)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("store: lead %s: %w", id, domain.ErrNotFound)
	}
	anterior := s.leads[i]
	marcado := *anterior
	marcado.Deletado = true
	s.leads[i] = &marcado
	s.mu.Unlock()

	if err := s.repos.Leads.Delete(ctx, id); err != nil {
		s.restoreLead(anterior)
		return err
	}
	return nil
}

// ReassignLeads reatribui os leads ao novo responsável, sequencialmente e
// aguardando cada escrita. Falhas individuais entram no resultado com o
// motivo; o restante do lote prossegue.
func (s *Store) ReassignLeads(ctx context.Context, leadIDs []string, responsavelID string) (*ResultadoLote, error) {
	if err := s.requerModulo(entity.ModuloLeads); err != nil {
		return nil, err
	}
	if responsavelID == "" {
		return nil, fmt.Errorf("store: responsável é obrigatório: %w", domain.ErrInvalidInput)
	}
	resultado := &ResultadoLote{}
	for idx, id := range leadIDs {
		s.mu.Lock()
		i := indexLead(s.leads, id)
		if i < 0 {
			s.mu.Unlock()
			resultado.Falhas = append(resultado.Falhas, FalhaItem{ID: id, Indice: idx, Motivo: "lead não encontrado"})
			continue
		}
		anterior := s.leads[i]
		novo := *anterior
		novo.ResponsavelID = responsavelID
		s.leads[i] = &novo
		s.mu.Unlock()

		if err := s.repos.Leads.Update(ctx, &novo); err != nil {
			s.restoreLead(anterior)
			resultado.Falhas = append(resultado.Falhas, FalhaItem{ID: id, Indice: idx, Motivo: err.Error()})
			continue
		}
		resultado.Sucessos++
	}
	return resultado, nil
}

// CreateLeadsEmLote cria os leads sequencialmente, aguardando cada escrita,
// e recarrega a coleção uma única vez ao final. Falhas individuais entram no
// resultado com índice e motivo; o restante do lote prossegue.
func (s *Store) CreateLeadsEmLote(ctx context.Context, leads []*entity.Lead) (*ResultadoLote, error) {
	if err := s.requerModulo(entity.ModuloLeads); err != nil {
		return nil, err
	}
	s.mu.Lock()
	empresaID := s.usuario.EmpresaID
	usuarioID := s.usuario.ID
	s.mu.Unlock()

	resultado := &ResultadoLote{}
	for idx, lead := range leads {
		if lead.NomeCompleto == "" && lead.Email == "" {
			resultado.Falhas = append(resultado.Falhas, FalhaItem{Indice: idx, Motivo: "lead precisa de nome ou email"})
			continue
		}
		lead.EmpresaID = empresaID
		if lead.ResponsavelID == "" {
			lead.ResponsavelID = usuarioID
		}
		if _, err := s.repos.Leads.Create(ctx, lead); err != nil {
			resultado.Falhas = append(resultado.Falhas, FalhaItem{Indice: idx, Motivo: err.Error()})
			continue
		}
		resultado.Sucessos++
	}
	if resultado.Sucessos > 0 {
		if err := s.refetchLeads(ctx); err != nil {
			return resultado, err
		}
	}
	return resultado, nil
}

// refetchLeads recarrega a coleção de leads do tenant.
func (s *Store) refetchLeads(ctx context.Context) error {
	s.mu.Lock()
	empresaID := s.usuario.EmpresaID
	s.mu.Unlock()

	leads, err := s.repos.Leads.ListByEmpresa(ctx, empresaID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.leads = leads
	s.mu.Unlock()
	return nil
}

// restoreLead desfaz um patch otimista devolvendo o registro anterior.
func (s *Store) restoreLead(anterior *entity.Lead) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := indexLead(s.leads, anterior.ID); i >= 0 {
		s.leads[i] = anterior
	}
}

func indexLead(leads []*entity.Lead, id string) int {
	for i, l := range leads {
		if l.ID == id {
			return i
		}
	}
	return -1
}
