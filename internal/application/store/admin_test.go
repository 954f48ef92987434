package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendaflow/crmdesk/internal/application/store"
	"github.com/vendaflow/crmdesk/internal/domain"
	"github.com/vendaflow/crmdesk/internal/domain/entity"
	"github.com/vendaflow/crmdesk/pkg/logger"
)

func TestCreateUsuario_DuplicidadeLocalDeEmail(t *testing.T) {
	st, _ := novoStorePronto(t)

	err := st.CreateUsuario(context.Background(), &entity.Usuario{
		Nome: "Outro Bruno", Email: "bruno@acme.com", Perfil: entity.PerfilUsuario,
	}, "senha123")
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreateUsuario(t *testing.T) {
	st, _ := novoStorePronto(t)

	require.NoError(t, st.CreateUsuario(context.Background(), &entity.Usuario{
		Nome: "Clara", Email: "clara@acme.com", Perfil: entity.PerfilUsuario,
	}, "senha123"))
	assert.Len(t, st.Usuarios(), 3)
}

func TestDeleteUsuario_AutoRemocao(t *testing.T) {
	st, _ := novoStorePronto(t)
	err := st.DeleteUsuario(context.Background(), "u1")
	assert.ErrorIs(t, err, domain.ErrConflict, "o usuário da sessão não remove a si mesmo")
}

func TestCreateUsuario_ApenasAdmin(t *testing.T) {
	b := backendSemeado()
	st := store.New(repos(b), &sessaoMem{}, logger.Nop())
	require.NoError(t, st.Login(context.Background(), "bruno@acme.com", "segredo"))

	err := st.CreateUsuario(context.Background(), &entity.Usuario{
		Nome: "X", Email: "x@acme.com",
	}, "senha123")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCreateEmpresa_ApenasProprietario(t *testing.T) {
	b := backendSemeado()
	b.usuarios[1].Perfil = entity.PerfilAdmin // admin comum não basta
	st := store.New(repos(b), &sessaoMem{}, logger.Nop())
	require.NoError(t, st.Login(context.Background(), "bruno@acme.com", "segredo"))

	err := st.CreateEmpresa(context.Background(), &entity.Empresa{Nome: "Filial"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestCreateEmpresa(t *testing.T) {
	st, _ := novoStorePronto(t)

	require.NoError(t, st.CreateEmpresa(context.Background(), &entity.Empresa{Nome: "Filial"}))
	assert.Len(t, st.Empresas(), 2)
}

func TestUpdateProduto_NaoAfetaSnapshots(t *testing.T) {
	st, b := novoStorePronto(t)
	require.NoError(t, st.AddProdutoNegociacao(context.Background(), "n1", "p1", 1))
	snapshotAntes := st.NegociacaoProdutos()[0].ValorSnapshot

	p := *b.produtos[0]
	p.Nome = "Plano Ouro v2"
	require.NoError(t, st.UpdateProduto(context.Background(), &p))

	assert.True(t, st.NegociacaoProdutos()[0].ValorSnapshot.Equal(snapshotAntes))
}

func TestTarefas_ConcluirEReabrir(t *testing.T) {
	st, b := novoStorePronto(t)
	require.NoError(t, st.CreateTarefa(context.Background(), &entity.Tarefa{
		Tipo: "ligacao", Descricao: "ligar para João",
	}))
	tarefas := st.Tarefas()
	require.Len(t, tarefas, 1)
	id := tarefas[0].ID
	assert.Equal(t, entity.TarefaPendente, tarefas[0].Status)
	assert.Equal(t, "u1", tarefas[0].UsuarioID, "dona default é o usuário da sessão")

	require.NoError(t, st.ConcluirTarefa(context.Background(), id))
	assert.Equal(t, entity.TarefaConcluida, st.Tarefas()[0].Status)

	b.falhar("tarefas.update", errBackend)
	err := st.ReabrirTarefa(context.Background(), id)
	require.ErrorIs(t, err, errBackend)
	assert.Equal(t, entity.TarefaConcluida, st.Tarefas()[0].Status, "rollback do status")
}

func TestNotificacoes_AprovarRemoveAposConfirmar(t *testing.T) {
	b := backendSemeado()
	b.notificacoes = []*entity.Notificacao{
		{ID: "not1", EmpresaID: "emp1", UsuarioID: "u1", Tipo: "aprovacao", Mensagem: "novo usuário aguardando"},
	}
	st := store.New(repos(b), &sessaoMem{}, logger.Nop())
	require.NoError(t, st.Login(context.Background(), "ana@acme.com", "segredo"))
	require.Len(t, st.Notificacoes(), 1)

	require.NoError(t, st.AprovarNotificacao(context.Background(), "not1"))
	assert.Empty(t, st.Notificacoes())
}

// A remoção local só acontece depois que o backend confirma; em falha a
// notificação continua visível.
func TestNotificacoes_FalhaMantemNotificacao(t *testing.T) {
	b := backendSemeado()
	b.notificacoes = []*entity.Notificacao{
		{ID: "not1", EmpresaID: "emp1", UsuarioID: "u1", Tipo: "aprovacao", Mensagem: "x"},
	}
	st := store.New(repos(b), &sessaoMem{}, logger.Nop())
	require.NoError(t, st.Login(context.Background(), "ana@acme.com", "segredo"))
	b.falhar("notificacoes.reject", errBackend)

	err := st.RejeitarNotificacao(context.Background(), "not1")
	require.ErrorIs(t, err, errBackend)
	assert.Len(t, st.Notificacoes(), 1)
}
