package store_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/vendaflow/crmdesk/internal/application/store"
	"github.com/vendaflow/crmdesk/internal/domain"
	"github.com/vendaflow/crmdesk/internal/domain/entity"
	"github.com/vendaflow/crmdesk/pkg/logger"
)

// backendFake simula o backend em memória. Erros podem ser injetados por
// operação ("leads.update", "etapas.updateorder", ...) para exercitar os
// caminhos de rollback.
type backendFake struct {
	mu     sync.Mutex
	seq    int
	falhas map[string]error

	// antesDeListarEtapas, quando definido, roda no início de
	// ListByFunil; serve para disparar uma recarga concorrente no meio de
	// outra que está em trânsito.
	antesDeListarEtapas func(funilID string)

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

	ordensPersistidas [][]string
}

func (b *backendFake) falhar(op string, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.falhas == nil {
		b.falhas = make(map[string]error)
	}
	b.falhas[op] = err
}

func (b *backendFake) erro(op string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.falhas[op]
}

func (b *backendFake) novoID(prefixo string) string {
	b.seq++
	return fmt.Sprintf("%s%d", prefixo, b.seq)
}

// ── Portos ───────────────────────────────────────────────────────────────────

type fakeEmpresas struct{ b *backendFake }

func (f fakeEmpresas) ListAll(context.Context) ([]*entity.Empresa, error) {
	if err := f.b.erro("empresas.list"); err != nil {
		return nil, err
	}
	return append([]*entity.Empresa(nil), f.b.empresas...), nil
}
func (f fakeEmpresas) Create(_ context.Context, e *entity.Empresa) (*entity.Empresa, error) {
	if err := f.b.erro("empresas.create"); err != nil {
		return nil, err
	}
	copia := *e
	copia.ID = f.b.novoID("emp")
	f.b.empresas = append(f.b.empresas, &copia)
	return &copia, nil
}
func (f fakeEmpresas) Update(_ context.Context, e *entity.Empresa) error {
	return f.b.erro("empresas.update")
}
func (f fakeEmpresas) Delete(_ context.Context, id string) error {
	return f.b.erro("empresas.delete")
}

type fakeUsuarios struct{ b *backendFake }

func (f fakeUsuarios) Login(_ context.Context, email, senha string) (string, *entity.Usuario, error) {
	if err := f.b.erro("usuarios.login"); err != nil {
		return "", nil, err
	}
	for _, u := range f.b.usuarios {
		if u.Email == email {
			return "tok-fake", u, nil
		}
	}
	return "", nil, domain.ErrUnauthenticated
}
func (f fakeUsuarios) ListByEmpresa(context.Context, string) ([]*entity.Usuario, error) {
	if err := f.b.erro("usuarios.list"); err != nil {
		return nil, err
	}
	return append([]*entity.Usuario(nil), f.b.usuarios...), nil
}
func (f fakeUsuarios) Create(_ context.Context, u *entity.Usuario, senha string) (*entity.Usuario, error) {
	if err := f.b.erro("usuarios.create"); err != nil {
		return nil, err
	}
	copia := *u
	copia.ID = f.b.novoID("u")
	f.b.usuarios = append(f.b.usuarios, &copia)
	return &copia, nil
}
func (f fakeUsuarios) Update(_ context.Context, u *entity.Usuario) error {
	return f.b.erro("usuarios.update")
}
func (f fakeUsuarios) Delete(_ context.Context, id string) error {
	return f.b.erro("usuarios.delete")
}
func (f fakeUsuarios) UpdatePassword(_ context.Context, usuarioID, senhaAtual, senhaNova string) error {
	return f.b.erro("usuarios.password")
}

type fakeLeads struct{ b *backendFake }

func (f fakeLeads) ListByEmpresa(context.Context, string) ([]*entity.Lead, error) {
	if err := f.b.erro("leads.list"); err != nil {
		return nil, err
	}
	return append([]*entity.Lead(nil), f.b.leads...), nil
}
func (f fakeLeads) Create(_ context.Context, l *entity.Lead) (*entity.Lead, error) {
	if err := f.b.erro("leads.create"); err != nil {
		return nil, err
	}
	copia := *l
	copia.ID = f.b.novoID("l")
	f.b.leads = append(f.b.leads, &copia)
	return &copia, nil
}
func (f fakeLeads) Update(_ context.Context, l *entity.Lead) error {
	if err := f.b.erro("leads.update"); err != nil {
		return err
	}
	for i, atual := range f.b.leads {
		if atual.ID == l.ID {
			copia := *l
			f.b.leads[i] = &copia
		}
	}
	return nil
}
func (f fakeLeads) Delete(_ context.Context, id string) error {
	if err := f.b.erro("leads.delete"); err != nil {
		return err
	}
	for _, l := range f.b.leads {
		if l.ID == id {
			l.Deletado = true
		}
	}
	return nil
}

type fakeFunis struct{ b *backendFake }

func (f fakeFunis) ListByEmpresa(context.Context, string) ([]*entity.Funil, error) {
	if err := f.b.erro("funis.list"); err != nil {
		return nil, err
	}
	return append([]*entity.Funil(nil), f.b.funis...), nil
}
func (f fakeFunis) Create(_ context.Context, fl *entity.Funil) (*entity.Funil, error) {
	if err := f.b.erro("funis.create"); err != nil {
		return nil, err
	}
	copia := *fl
	copia.ID = f.b.novoID("f")
	f.b.funis = append(f.b.funis, &copia)
	return &copia, nil
}
func (f fakeFunis) Update(_ context.Context, fl *entity.Funil) error {
	return f.b.erro("funis.update")
}
func (f fakeFunis) Delete(_ context.Context, id string) error {
	if err := f.b.erro("funis.delete"); err != nil {
		return err
	}
	restantes := f.b.funis[:0]
	for _, fl := range f.b.funis {
		if fl.ID != id {
			restantes = append(restantes, fl)
		}
	}
	f.b.funis = restantes
	return nil
}

type fakeEtapas struct{ b *backendFake }

func (f fakeEtapas) ListByFunil(_ context.Context, funilID string) ([]*entity.Etapa, error) {
	if f.b.antesDeListarEtapas != nil {
		f.b.antesDeListarEtapas(funilID)
	}
	if err := f.b.erro("etapas.list"); err != nil {
		return nil, err
	}
	out := make([]*entity.Etapa, 0)
	for _, e := range f.b.etapas {
		if e.FunilID == funilID {
			out = append(out, e)
		}
	}
	return out, nil
}
func (f fakeEtapas) Create(_ context.Context, e *entity.Etapa) (*entity.Etapa, error) {
	if err := f.b.erro("etapas.create"); err != nil {
		return nil, err
	}
	copia := *e
	copia.ID = f.b.novoID("e")
	f.b.etapas = append(f.b.etapas, &copia)
	return &copia, nil
}
func (f fakeEtapas) Update(_ context.Context, e *entity.Etapa) error {
	return f.b.erro("etapas.update")
}
func (f fakeEtapas) Delete(_ context.Context, id string) error {
	if err := f.b.erro("etapas.delete"); err != nil {
		return err
	}
	restantes := f.b.etapas[:0]
	for _, e := range f.b.etapas {
		if e.ID != id {
			restantes = append(restantes, e)
		}
	}
	f.b.etapas = restantes
	return nil
}
func (f fakeEtapas) UpdateOrder(_ context.Context, funilID string, orderedIDs []string) error {
	if err := f.b.erro("etapas.updateorder"); err != nil {
		return err
	}
	f.b.ordensPersistidas = append(f.b.ordensPersistidas, orderedIDs)
	return nil
}

type fakeNegociacoes struct{ b *backendFake }

func (f fakeNegociacoes) ListByFunil(_ context.Context, funilID string) ([]*entity.Negociacao, error) {
	if err := f.b.erro("negociacoes.list"); err != nil {
		return nil, err
	}
	out := make([]*entity.Negociacao, 0)
	for _, n := range f.b.negociacoes {
		if n.FunilID == funilID {
			out = append(out, n)
		}
	}
	return out, nil
}
func (f fakeNegociacoes) Create(_ context.Context, n *entity.Negociacao) (*entity.Negociacao, error) {
	if err := f.b.erro("negociacoes.create"); err != nil {
		return nil, err
	}
	copia := *n
	copia.ID = f.b.novoID("n")
	f.b.negociacoes = append(f.b.negociacoes, &copia)
	return &copia, nil
}
func (f fakeNegociacoes) Update(_ context.Context, n *entity.Negociacao) error {
	return f.b.erro("negociacoes.update")
}
func (f fakeNegociacoes) UpdateEtapa(_ context.Context, id, etapaID string) error {
	if err := f.b.erro("negociacoes.updateetapa"); err != nil {
		return err
	}
	for _, n := range f.b.negociacoes {
		if n.ID == id {
			n.EtapaID = etapaID
		}
	}
	return nil
}
func (f fakeNegociacoes) Delete(_ context.Context, id string) error {
	return f.b.erro("negociacoes.delete")
}
func (f fakeNegociacoes) ListProdutosByEmpresa(context.Context, string) ([]*entity.NegociacaoProduto, error) {
	if err := f.b.erro("negociacoes.listprodutos"); err != nil {
		return nil, err
	}
	return append([]*entity.NegociacaoProduto(nil), f.b.negProdutos...), nil
}
func (f fakeNegociacoes) AddProduto(_ context.Context, np *entity.NegociacaoProduto) (*entity.NegociacaoProduto, error) {
	if err := f.b.erro("negociacoes.addproduto"); err != nil {
		return nil, err
	}
	copia := *np
	copia.ID = f.b.novoID("np")
	f.b.negProdutos = append(f.b.negProdutos, &copia)
	return &copia, nil
}
func (f fakeNegociacoes) RemoveProduto(_ context.Context, id string) error {
	return f.b.erro("negociacoes.removeproduto")
}

type fakeProdutos struct{ b *backendFake }

func (f fakeProdutos) ListByEmpresa(context.Context, string) ([]*entity.Produto, error) {
	if err := f.b.erro("produtos.list"); err != nil {
		return nil, err
	}
	return append([]*entity.Produto(nil), f.b.produtos...), nil
}
func (f fakeProdutos) Create(_ context.Context, p *entity.Produto) (*entity.Produto, error) {
	if err := f.b.erro("produtos.create"); err != nil {
		return nil, err
	}
	copia := *p
	copia.ID = f.b.novoID("p")
	f.b.produtos = append(f.b.produtos, &copia)
	return &copia, nil
}
func (f fakeProdutos) Update(_ context.Context, p *entity.Produto) error {
	return f.b.erro("produtos.update")
}
func (f fakeProdutos) Delete(_ context.Context, id string) error {
	return f.b.erro("produtos.delete")
}

type fakeEventos struct{ b *backendFake }

func (f fakeEventos) ListByNegociacao(_ context.Context, negociacaoID string) ([]*entity.Evento, error) {
	if err := f.b.erro("eventos.list"); err != nil {
		return nil, err
	}
	out := make([]*entity.Evento, 0)
	for _, e := range f.b.eventos {
		if e.NegociacaoID == negociacaoID {
			out = append(out, e)
		}
	}
	return out, nil
}
func (f fakeEventos) Create(_ context.Context, e *entity.Evento) (*entity.Evento, error) {
	if err := f.b.erro("eventos.create"); err != nil {
		return nil, err
	}
	copia := *e
	copia.ID = f.b.novoID("ev")
	f.b.eventos = append(f.b.eventos, &copia)
	return &copia, nil
}

type fakeTarefas struct{ b *backendFake }

func (f fakeTarefas) ListByUsuario(context.Context, string) ([]*entity.Tarefa, error) {
	if err := f.b.erro("tarefas.list"); err != nil {
		return nil, err
	}
	return append([]*entity.Tarefa(nil), f.b.tarefas...), nil
}
func (f fakeTarefas) Create(_ context.Context, tf *entity.Tarefa) (*entity.Tarefa, error) {
	if err := f.b.erro("tarefas.create"); err != nil {
		return nil, err
	}
	copia := *tf
	copia.ID = f.b.novoID("t")
	f.b.tarefas = append(f.b.tarefas, &copia)
	return &copia, nil
}
func (f fakeTarefas) Update(_ context.Context, tf *entity.Tarefa) error {
	return f.b.erro("tarefas.update")
}
func (f fakeTarefas) Delete(_ context.Context, id string) error {
	return f.b.erro("tarefas.delete")
}

type fakeNotificacoes struct{ b *backendFake }

func (f fakeNotificacoes) ListByUsuario(context.Context, string) ([]*entity.Notificacao, error) {
	if err := f.b.erro("notificacoes.list"); err != nil {
		return nil, err
	}
	return append([]*entity.Notificacao(nil), f.b.notificacoes...), nil
}
func (f fakeNotificacoes) Approve(_ context.Context, id string) error {
	return f.b.erro("notificacoes.approve")
}
func (f fakeNotificacoes) Reject(_ context.Context, id string) error {
	return f.b.erro("notificacoes.reject")
}

// sessaoMem implementa store.SessionPersister em memória.
type sessaoMem struct {
	token   string
	usuario *entity.Usuario
}

func (s *sessaoMem) Load() (string, *entity.Usuario, error) { return s.token, s.usuario, nil }
func (s *sessaoMem) Save(token string, usuario *entity.Usuario) error {
	s.token, s.usuario = token, usuario
	return nil
}
func (s *sessaoMem) Clear() error { s.token, s.usuario = "", nil; return nil }

// ── Ambiente de teste ────────────────────────────────────────────────────────

func backendSemeado() *backendFake {
	return &backendFake{
		seq:      100,
		empresas: []*entity.Empresa{{ID: "emp1", Nome: "Acme", Ativa: true}},
		usuarios: []*entity.Usuario{
			{ID: "u1", EmpresaID: "emp1", Nome: "Ana", Email: "ana@acme.com", Perfil: entity.PerfilProprietario, Ativo: true},
			{ID: "u2", EmpresaID: "emp1", Nome: "Bruno", Email: "bruno@acme.com", Perfil: entity.PerfilUsuario, Ativo: true},
		},
		funis: []*entity.Funil{
			{ID: "f1", EmpresaID: "emp1", Nome: "Vendas"},
			{ID: "f2", EmpresaID: "emp1", Nome: "Pós-venda"},
		},
		etapas: []*entity.Etapa{
			{ID: "e1", EmpresaID: "emp1", FunilID: "f1", Nome: "Contato", Ordem: 0},
			{ID: "e2", EmpresaID: "emp1", FunilID: "f1", Nome: "Proposta", Ordem: 1},
			{ID: "e3", EmpresaID: "emp1", FunilID: "f1", Nome: "Fechamento", Ordem: 2},
			{ID: "e9", EmpresaID: "emp1", FunilID: "f2", Nome: "Onboarding", Ordem: 0},
		},
		leads: []*entity.Lead{
			{ID: "l1", EmpresaID: "emp1", NomeCompleto: "João da Silva", Email: "joao@exemplo.com", ResponsavelID: "u1"},
			{ID: "l2", EmpresaID: "emp1", NomeCompleto: "Maria Souza", Email: "maria@exemplo.com", ResponsavelID: "u2"},
		},
		negociacoes: []*entity.Negociacao{
			{ID: "n1", EmpresaID: "emp1", LeadID: "l1", FunilID: "f1", EtapaID: "e1", Titulo: "Proposta João", Status: entity.NegociacaoAberta},
		},
		produtos: []*entity.Produto{
			{ID: "p1", EmpresaID: "emp1", Nome: "Plano Ouro", MaxParcelas: 12},
		},
	}
}

func repos(b *backendFake) store.Repos {
	return store.Repos{
		Empresas:     fakeEmpresas{b},
		Usuarios:     fakeUsuarios{b},
		Leads:        fakeLeads{b},
		Funis:        fakeFunis{b},
		Etapas:       fakeEtapas{b},
		Negociacoes:  fakeNegociacoes{b},
		Produtos:     fakeProdutos{b},
		Eventos:      fakeEventos{b},
		Tarefas:      fakeTarefas{b},
		Notificacoes: fakeNotificacoes{b},
	}
}

// novoStorePronto autentica e faz bootstrap sobre o backend semeado.
func novoStorePronto(t *testing.T) (*store.Store, *backendFake) {
	t.Helper()
	b := backendSemeado()
	st := store.New(repos(b), &sessaoMem{}, logger.Nop())
	if err := st.Login(context.Background(), "ana@acme.com", "segredo"); err != nil {
		t.Fatalf("login de teste: %v", err)
	}
	return st, b
}
