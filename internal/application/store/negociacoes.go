package store

import (
	"context"
	"fmt"

	"github.com/vendaflow/crmdesk/internal/domain"
	"github.com/vendaflow/crmdesk/internal/domain/entity"
)

// CreateNegociacao abre uma negociação para um lead no funil selecionado e
// recarrega a coleção. O lead precisa existir e não estar soft-deletado.
func (s *Store) CreateNegociacao(ctx context.Context, leadID, etapaID, titulo string) error {
	if err := s.requerModulo(entity.ModuloNegociacoes); err != nil {
		return err
	}
	s.mu.Lock()
	empresaID := s.usuario.EmpresaID
	responsavelID := s.usuario.ID
	funilID := s.funilSelecionado
	i := indexLead(s.leads, leadID)
	if i < 0 || s.leads[i].Deletado {
		s.mu.Unlock()
		return fmt.Errorf("store: lead %s: %w", leadID, domain.ErrNotFound)
	}
	if indexEtapa(s.etapas, etapaID) < 0 {
		s.mu.Unlock()
		return fmt.Errorf("store: etapa %s: %w", etapaID, domain.ErrNotFound)
	}
	s.mu.Unlock()

	n := &entity.Negociacao{
		EmpresaID:     empresaID,
		LeadID:        leadID,
		FunilID:       funilID,
		EtapaID:       etapaID,
		Titulo:        titulo,
		Status:        entity.NegociacaoAberta,
		ResponsavelID: responsavelID,
	}
	if _, err := s.repos.Negociacoes.Create(ctx, n); err != nil {
		return err
	}
	return s.refetchNegociacoes(ctx, funilID)
}

// MoveNegociacao muda a negociação de etapa (arrastar no kanban): patch
// otimista, rollback em falha. Em sucesso registra um evento de sistema na
// linha do tempo; falha ao registrar o evento não desfaz o movimento.
func (s *Store) MoveNegociacao(ctx context.Context, id, etapaID string) error {
	if err := s.requerModulo(entity.ModuloNegociacoes); err != nil {
		return err
	}
	s.mu.Lock()
	i := indexNegociacao(s.negociacoes, id)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("store: negociação %s: %w", id, domain.ErrNotFound)
	}
	j := indexEtapa(s.etapas, etapaID)
	if j < 0 {
		s.mu.Unlock()
		return fmt.Errorf("store: etapa %s: %w", etapaID, domain.ErrNotFound)
	}
	if s.etapas[j].FunilID != s.negociacoes[i].FunilID {
		s.mu.Unlock()
		return fmt.Errorf("store: etapa %s é de outro funil: %w", etapaID, domain.ErrInvalidInput)
	}
	anterior := s.negociacoes[i]
	nomeEtapa := s.etapas[j].Nome
	autorID := s.usuario.ID
	nova := *anterior
	nova.EtapaID = etapaID
	s.negociacoes[i] = &nova
	s.mu.Unlock()

	if err := s.repos.Negociacoes.UpdateEtapa(ctx, id, etapaID); err != nil {
		s.restoreNegociacao(anterior)
		return err
	}

	s.registrarEvento(ctx, &entity.Evento{
		EmpresaID:    nova.EmpresaID,
		NegociacaoID: id,
		AutorID:      autorID,
		Tipo:         entity.EventoSistema,
		Descricao:    "Negociação movida para a etapa " + nomeEtapa,
	})
	return nil
}

// AlterarStatusNegociacao fecha ou reabre a negociação (aberta/ganha/perdida):
// patch otimista com rollback, evento de mudança de status em sucesso.
func (s *Store) AlterarStatusNegociacao(ctx context.Context, id, status string) error {
	if err := s.requerModulo(entity.ModuloNegociacoes); err != nil {
		return err
	}
	switch status {
	case entity.NegociacaoAberta, entity.NegociacaoGanha, entity.NegociacaoPerdida:
	default:
		return fmt.Errorf("store: status %q: %w", status, domain.ErrInvalidInput)
	}
	s.mu.Lock()
	i := indexNegociacao(s.negociacoes, id)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("store: negociação %s: %w", id, domain.ErrNotFound)
	}
	anterior := s.negociacoes[i]
	autorID := s.usuario.ID
	nova := *anterior
	nova.Status = status
	s.negociacoes[i] = &nova
	s.mu.Unlock()

	if err := s.repos.Negociacoes.Update(ctx, &nova); err != nil {
		s.restoreNegociacao(anterior)
		return err
	}

	s.registrarEvento(ctx, &entity.Evento{
		EmpresaID:    nova.EmpresaID,
		NegociacaoID: id,
		AutorID:      autorID,
		Tipo:         entity.EventoMudancaStatus,
		Descricao:    fmt.Sprintf("Status alterado de %s para %s", anterior.Status, status),
	})
	return nil
}

// DeleteNegociacao remove a negociação (otimista, hard delete).
func (s *Store) DeleteNegociacao(ctx context.Context, id string) error {
	if err := s.requerModulo(entity.ModuloNegociacoes); err != nil {
		return err
	}
	s.mu.Lock()
	i := indexNegociacao(s.negociacoes, id)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("store: negociação %s: %w", id, domain.ErrNotFound)
	}
	anteriores := s.negociacoes
	s.negociacoes = append(append([]*entity.Negociacao(nil), s.negociacoes[:i]...), s.negociacoes[i+1:]...)
	s.mu.Unlock()

	if err := s.repos.Negociacoes.Delete(ctx, id); err != nil {
		s.mu.Lock()
		s.negociacoes = anteriores
		s.mu.Unlock()
		return err
	}
	return nil
}

// AddProdutoNegociacao vincula um produto do catálogo à negociação com
// snapshot do valor e do parcelamento no momento da inclusão; depois
// recarrega os vínculos do tenant.
func (s *Store) AddProdutoNegociacao(ctx context.Context, negociacaoID, produtoID string, parcelas int) error {
	if err := s.requerModulo(entity.ModuloNegociacoes); err != nil {
		return err
	}
	s.mu.Lock()
	if indexNegociacao(s.negociacoes, negociacaoID) < 0 {
		s.mu.Unlock()
		return fmt.Errorf("store: negociação %s: %w", negociacaoID, domain.ErrNotFound)
	}
	var produto *entity.Produto
	for _, p := range s.produtos {
		if p.ID == produtoID {
			produto = p
			break
		}
	}
	if produto == nil {
		s.mu.Unlock()
		return fmt.Errorf("store: produto %s: %w", produtoID, domain.ErrNotFound)
	}
	if parcelas < 1 || parcelas > produto.MaxParcelas {
		s.mu.Unlock()
		return fmt.Errorf("store: %d parcelas (máximo %d): %w", parcelas, produto.MaxParcelas, domain.ErrInvalidInput)
	}
	empresaID := s.usuario.EmpresaID
	valor := produto.ValorTotal
	s.mu.Unlock()

	np := &entity.NegociacaoProduto{
		EmpresaID:     empresaID,
		NegociacaoID:  negociacaoID,
		ProdutoID:     produtoID,
		ValorSnapshot: valor,
		Parcelas:      parcelas,
	}
	if _, err := s.repos.Negociacoes.AddProduto(ctx, np); err != nil {
		return err
	}

	vinculos, err := s.repos.Negociacoes.ListProdutosByEmpresa(ctx, empresaID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.negProdutos = vinculos
	s.mu.Unlock()
	return nil
}

// RemoveProdutoNegociacao desfaz o vínculo (otimista com rollback).
func (s *Store) RemoveProdutoNegociacao(ctx context.Context, id string) error {
	if err := s.requerModulo(entity.ModuloNegociacoes); err != nil {
		return err
	}
	s.mu.Lock()
	i := -1
	for k, np := range s.negProdutos {
		if np.ID == id {
			i = k
			break
		}
	}
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("store: vínculo %s: %w", id, domain.ErrNotFound)
	}
	anteriores := s.negProdutos
	s.negProdutos = append(append([]*entity.NegociacaoProduto(nil), s.negProdutos[:i]...), s.negProdutos[i+1:]...)
	s.mu.Unlock()

	if err := s.repos.Negociacoes.RemoveProduto(ctx, id); err != nil {
		s.mu.Lock()
		s.negProdutos = anteriores
		s.mu.Unlock()
		return err
	}
	return nil
}

// AdicionarNota registra uma nota na linha do tempo e recarrega os eventos
// da negociação (eventos são imutáveis; criação é request-then-refetch).
func (s *Store) AdicionarNota(ctx context.Context, negociacaoID, texto string) error {
	if err := s.requerModulo(entity.ModuloNegociacoes); err != nil {
		return err
	}
	if texto == "" {
		return fmt.Errorf("store: nota vazia: %w", domain.ErrInvalidInput)
	}
	s.mu.Lock()
	empresaID := s.usuario.EmpresaID
	autorID := s.usuario.ID
	s.mu.Unlock()

	evento := &entity.Evento{
		EmpresaID:    empresaID,
		NegociacaoID: negociacaoID,
		AutorID:      autorID,
		Tipo:         entity.EventoNota,
		Descricao:    texto,
	}
	if _, err := s.repos.Eventos.Create(ctx, evento); err != nil {
		return err
	}
	_, err := s.EventosDaNegociacao(ctx, negociacaoID)
	return err
}

// EventosDaNegociacao busca e cacheia a linha do tempo de uma negociação.
func (s *Store) EventosDaNegociacao(ctx context.Context, negociacaoID string) ([]*entity.Evento, error) {
	eventos, err := s.repos.Eventos.ListByNegociacao(ctx, negociacaoID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	mantidos := make([]*entity.Evento, 0, len(s.eventos)+len(eventos))
	for _, e := range s.eventos {
		if e.NegociacaoID != negociacaoID {
			mantidos = append(mantidos, e)
		}
	}
	s.eventos = append(mantidos, eventos...)
	s.mu.Unlock()
	return eventos, nil
}

// registrarEvento cria um evento de sistema sem propagar falha: o movimento
// que o originou já foi confirmado pelo backend.
func (s *Store) registrarEvento(ctx context.Context, evento *entity.Evento) {
	if _, err := s.repos.Eventos.Create(ctx, evento); err != nil {
		s.log.Warn().Err(err).Str("negociacao", evento.NegociacaoID).Msg("evento de linha do tempo não registrado")
	}
}

func (s *Store) refetchNegociacoes(ctx context.Context, funilID string) error {
	negociacoes, err := s.repos.Negociacoes.ListByFunil(ctx, funilID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.negociacoes = negociacoes
	s.mu.Unlock()
	return nil
}

func (s *Store) restoreNegociacao(anterior *entity.Negociacao) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := indexNegociacao(s.negociacoes, anterior.ID); i >= 0 {
		s.negociacoes[i] = anterior
	}
}

func indexNegociacao(negociacoes []*entity.Negociacao, id string) int {
	for i, n := range negociacoes {
		if n.ID == id {
			return i
		}
	}
	return -1
}
