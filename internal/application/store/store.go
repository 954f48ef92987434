// Package store mantém o estado compartilhado do CRM em memória: uma coleção
// por entidade, a sessão autenticada e o funil selecionado. O Store é um
// objeto explícito construído uma vez no startup e passado por injeção a
// todo consumidor; não existe lookup ambiente/global.
//
// Disciplina de sincronização com o backend, uniforme por classe de mutação:
//   - criações: request-then-refetch (o backend atribui o ID; após sucesso a
//     coleção dependente é recarregada);
//   - atualizações, movimentos, reordenações e remoções: patch otimista com
//     snapshot; em falha da chamada o snapshot é restaurado e o erro volta
//     ao chamador.
package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/vendaflow/crmdesk/internal/domain"
	"github.com/vendaflow/crmdesk/internal/domain/entity"
	"github.com/vendaflow/crmdesk/internal/domain/repository"
	"github.com/vendaflow/crmdesk/pkg/logger"
)

// Repos agrupa os portos remotos consumidos pelo Store.
type Repos struct {
	Empresas     repository.EmpresaRepository
	Usuarios     repository.UsuarioRepository
	Leads        repository.LeadRepository
	Funis        repository.FunilRepository
	Etapas       repository.EtapaRepository
	Negociacoes  repository.NegociacaoRepository
	Produtos     repository.ProdutoRepository
	Eventos      repository.EventoRepository
	Tarefas      repository.TarefaRepository
	Notificacoes repository.NotificacaoRepository
}

// SessionPersister é o contrato da sessão persistida em disco.
type SessionPersister interface {
	Load() (token string, usuario *entity.Usuario, err error)
	Save(token string, usuario *entity.Usuario) error
	Clear() error
}

// Store é o estado em memória do CRM.
type Store struct {
	repos Repos
	sess  SessionPersister
	log   *logger.Logger

	mu      sync.Mutex
	usuario *entity.Usuario
	ready   bool
	// loadSeq cresce a cada recarga (bootstrap ou troca de funil). Uma
	// resposta em trânsito só é aplicada se sua sequência ainda for a
	// corrente; respostas superadas são descartadas.
	loadSeq          uint64
	funilSelecionado string

	empresas     []*entity.Empresa
	usuarios     []*entity.Usuario
	leads        []*entity.Lead
	funis        []*entity.Funil
	etapas       []*entity.Etapa
	negociacoes  []*entity.Negociacao
	negProdutos  []*entity.NegociacaoProduto
	produtos     []*entity.Produto
	eventos      []*entity.Evento
	tarefas      []*entity.Tarefa
	notificacoes []*entity.Notificacao
}

// New constrói o Store. Nenhuma chamada de rede acontece aqui; o estado só é
// populado por Login ou Bootstrap.
func New(repos Repos, sess SessionPersister, log *logger.Logger) *Store {
	return &Store{repos: repos, sess: sess, log: log}
}

// Ready informa se o bootstrap terminou. Consumidores não devem renderizar
// visões dependentes de dados antes disso.
func (s *Store) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ready
}

// Usuario devolve o usuário autenticado, ou nil.
func (s *Store) Usuario() *entity.Usuario {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.usuario
}

// FunilSelecionado devolve o id do funil corrente ("" se nenhum).
func (s *Store) FunilSelecionado() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.funilSelecionado
}

// Login autentica, persiste a sessão e dispara o bootstrap.
func (s *Store) Login(ctx context.Context, email, senha string) error {
	if email == "" || senha == "" {
		return fmt.Errorf("store: email e senha são obrigatórios: %w", domain.ErrInvalidInput)
	}
	token, usuario, err := s.repos.Usuarios.Login(ctx, email, senha)
	if err != nil {
		return err
	}
	if err := s.sess.Save(token, usuario); err != nil {
		return err
	}
	s.mu.Lock()
	s.usuario = usuario
	s.mu.Unlock()
	return s.Bootstrap(ctx)
}

// Logout limpa a sessão persistida e zera o estado em memória.
func (s *Store) Logout() error {
	err := s.sess.Clear()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.usuario = nil
	s.ready = false
	s.funilSelecionado = ""
	s.empresas, s.usuarios, s.leads = nil, nil, nil
	s.funis, s.etapas, s.negociacoes = nil, nil, nil
	s.negProdutos, s.eventos, s.tarefas, s.notificacoes = nil, nil, nil, nil
	return err
}

// Bootstrap recarrega o conjunto completo do tenant: empresas, funis da
// empresa, etapas e negociações do primeiro funil, leads, usuários, produtos,
// vínculos de produto, tarefas e notificações. Só então o Store fica ready.
// Sem sessão persistida devolve ErrUnauthenticated.
func (s *Store) Bootstrap(ctx context.Context) error {
	s.mu.Lock()
	if s.usuario == nil {
		_, usuario, err := s.sess.Load()
		if err != nil {
			s.mu.Unlock()
			return err
		}
		if usuario == nil {
			s.mu.Unlock()
			return fmt.Errorf("store: sem sessão persistida: %w", domain.ErrUnauthenticated)
		}
		s.usuario = usuario
	}
	usuario := s.usuario
	s.loadSeq++
	seq := s.loadSeq
	s.mu.Unlock()

	empresaID := usuario.EmpresaID

	empresas, err := s.repos.Empresas.ListAll(ctx)
	if err != nil {
		return err
	}
	funis, err := s.repos.Funis.ListByEmpresa(ctx, empresaID)
	if err != nil {
		return err
	}
	var etapas []*entity.Etapa
	var negociacoes []*entity.Negociacao
	funilSelecionado := ""
	if len(funis) > 0 {
		funilSelecionado = funis[0].ID
		if etapas, err = s.repos.Etapas.ListByFunil(ctx, funilSelecionado); err != nil {
			return err
		}
		if negociacoes, err = s.repos.Negociacoes.ListByFunil(ctx, funilSelecionado); err != nil {
			return err
		}
	}
	leads, err := s.repos.Leads.ListByEmpresa(ctx, empresaID)
	if err != nil {
		return err
	}
	usuarios, err := s.repos.Usuarios.ListByEmpresa(ctx, empresaID)
	if err != nil {
		return err
	}
	produtos, err := s.repos.Produtos.ListByEmpresa(ctx, empresaID)
	if err != nil {
		return err
	}
	negProdutos, err := s.repos.Negociacoes.ListProdutosByEmpresa(ctx, empresaID)
	if err != nil {
		return err
	}
	tarefas, err := s.repos.Tarefas.ListByUsuario(ctx, usuario.ID)
	if err != nil {
		return err
	}
	notificacoes, err := s.repos.Notificacoes.ListByUsuario(ctx, usuario.ID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.loadSeq {
		// Uma recarga mais nova começou enquanto esta estava em trânsito.
		s.log.Debug().Uint64("seq", seq).Msg("bootstrap superado, descartando")
		return nil
	}
	ordenarEtapas(etapas)
	s.empresas = empresas
	s.funis = funis
	s.funilSelecionado = funilSelecionado
	s.etapas = etapas
	s.negociacoes = negociacoes
	s.leads = leads
	s.usuarios = usuarios
	s.produtos = produtos
	s.negProdutos = negProdutos
	s.tarefas = tarefas
	s.notificacoes = notificacoes
	s.ready = true
	return nil
}

// SelectFunil troca o funil corrente e recarrega suas etapas e negociações.
// Trocas rápidas em sequência são seguras: a resposta de uma troca superada
// chega e é descartada pela checagem de sequência. Em falha da recarga a
// seleção anterior é restaurada, então seleção e coleções nunca divergem.
func (s *Store) SelectFunil(ctx context.Context, funilID string) error {
	s.mu.Lock()
	if !s.ready {
		s.mu.Unlock()
		return domain.ErrNotReady
	}
	if indexFunil(s.funis, funilID) < 0 {
		s.mu.Unlock()
		return fmt.Errorf("store: funil %s: %w", funilID, domain.ErrNotFound)
	}
	anterior := s.funilSelecionado
	s.loadSeq++
	seq := s.loadSeq
	s.funilSelecionado = funilID
	s.mu.Unlock()

	etapas, err := s.repos.Etapas.ListByFunil(ctx, funilID)
	if err != nil {
		s.restaurarSelecao(seq, anterior)
		return err
	}
	negociacoes, err := s.repos.Negociacoes.ListByFunil(ctx, funilID)
	if err != nil {
		s.restaurarSelecao(seq, anterior)
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.loadSeq {
		s.log.Debug().Uint64("seq", seq).Str("funil", funilID).Msg("troca de funil superada, descartando")
		return nil
	}
	ordenarEtapas(etapas)
	s.etapas = etapas
	s.negociacoes = negociacoes
	return nil
}

// restaurarSelecao desfaz a troca de funil cuja recarga falhou. Se uma troca
// mais nova já assumiu a sequência, a seleção é dela e fica intocada.
func (s *Store) restaurarSelecao(seq uint64, anterior string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq == s.loadSeq {
		s.funilSelecionado = anterior
	}
}

// ── Acessores (cópias rasas; chamadores não devem mutar os elementos) ────────

func (s *Store) Empresas() []*entity.Empresa {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*entity.Empresa(nil), s.empresas...)
}

func (s *Store) Usuarios() []*entity.Usuario {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*entity.Usuario(nil), s.usuarios...)
}

func (s *Store) Leads() []*entity.Lead {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*entity.Lead(nil), s.leads...)
}

func (s *Store) Funis() []*entity.Funil {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*entity.Funil(nil), s.funis...)
}

func (s *Store) Etapas() []*entity.Etapa {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*entity.Etapa(nil), s.etapas...)
}

func (s *Store) Negociacoes() []*entity.Negociacao {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*entity.Negociacao(nil), s.negociacoes...)
}

func (s *Store) NegociacaoProdutos() []*entity.NegociacaoProduto {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*entity.NegociacaoProduto(nil), s.negProdutos...)
}

func (s *Store) Produtos() []*entity.Produto {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*entity.Produto(nil), s.produtos...)
}

func (s *Store) Tarefas() []*entity.Tarefa {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*entity.Tarefa(nil), s.tarefas...)
}

func (s *Store) Notificacoes() []*entity.Notificacao {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*entity.Notificacao(nil), s.notificacoes...)
}

// ── Permissões ───────────────────────────────────────────────────────────────

// requerModulo falha com ErrForbidden se o usuário da sessão não tem o
// módulo habilitado.
func (s *Store) requerModulo(modulo string) error {
	s.mu.Lock()
	u := s.usuario
	s.mu.Unlock()
	if u == nil {
		return domain.ErrUnauthenticated
	}
	if !u.PodeAcessar(modulo) {
		return fmt.Errorf("store: módulo %s: %w", modulo, domain.ErrForbidden)
	}
	return nil
}

// requerAdmin falha com ErrForbidden se o perfil não é administrativo.
func (s *Store) requerAdmin() error {
	s.mu.Lock()
	u := s.usuario
	s.mu.Unlock()
	if u == nil {
		return domain.ErrUnauthenticated
	}
	if !u.Administra() {
		return fmt.Errorf("store: perfil %s: %w", u.Perfil, domain.ErrForbidden)
	}
	return nil
}

// ── Auxiliares ───────────────────────────────────────────────────────────────

func ordenarEtapas(etapas []*entity.Etapa) {
	sort.SliceStable(etapas, func(i, j int) bool { return etapas[i].Ordem < etapas[j].Ordem })
}

func indexFunil(funis []*entity.Funil, id string) int {
	for i, f := range funis {
		if f.ID == id {
			return i
		}
	}
	return -1
}
