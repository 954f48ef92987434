package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendaflow/crmdesk/internal/domain"
	"github.com/vendaflow/crmdesk/internal/infrastructure/api"
	"github.com/vendaflow/crmdesk/pkg/logger"
)

// sessaoFake implementa api.SessionSource em memória.
type sessaoFake struct {
	token string
	limpa bool
}

func (s *sessaoFake) Token() string { return s.token }
func (s *sessaoFake) Clear() error  { s.limpa = true; s.token = ""; return nil }

func novoCliente(t *testing.T, handler http.HandlerFunc, sess *sessaoFake) *api.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return api.NewClient(srv.URL, 5*time.Second, sess, logger.Nop())
}

func TestClient_EnviaCabecalhosDeAutenticacao(t *testing.T) {
	var recebido *http.Request
	sess := &sessaoFake{token: "tok-abc"}
	c := novoCliente(t, func(w http.ResponseWriter, r *http.Request) {
		recebido = r.Clone(context.Background())
		w.Write([]byte(`[]`))
	}, sess)

	_, err := api.NewLeadRepository(c).ListByEmpresa(context.Background(), "emp1")
	require.NoError(t, err)
	require.NotNil(t, recebido)
	assert.Equal(t, "Bearer tok-abc", recebido.Header.Get("Authorization"))
	assert.Equal(t, "application/json", recebido.Header.Get("Accept"))
	assert.NotEmpty(t, recebido.Header.Get("X-Request-ID"))
	assert.Equal(t, "emp1", recebido.URL.Query().Get("empresa"))
}

// Um 401 em qualquer chamada limpa a sessão persistida (logout global) e
// devolve ErrUnauthenticated.
func TestClient_401LimpaSessao(t *testing.T) {
	sess := &sessaoFake{token: "tok-vencido"}
	c := novoCliente(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, sess)

	_, err := api.NewLeadRepository(c).ListByEmpresa(context.Background(), "emp1")
	require.ErrorIs(t, err, domain.ErrUnauthenticated)
	assert.True(t, sess.limpa, "a sessão deve ser limpa no 401")
	assert.Empty(t, sess.token)
}

func TestClient_MapeamentoDeStatus(t *testing.T) {
	casos := []struct {
		status   int
		esperado error
	}{
		{http.StatusForbidden, domain.ErrForbidden},
		{http.StatusNotFound, domain.ErrNotFound},
		{http.StatusConflict, domain.ErrDuplicate},
		{http.StatusInternalServerError, domain.ErrUnavailable},
		{http.StatusBadGateway, domain.ErrUnavailable},
	}
	for _, caso := range casos {
		sess := &sessaoFake{token: "tok"}
		c := novoCliente(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(caso.status)
			json.NewEncoder(w).Encode(map[string]string{"message": "detalhe do backend"})
		}, sess)

		_, err := api.NewLeadRepository(c).ListByEmpresa(context.Background(), "emp1")
		require.ErrorIs(t, err, caso.esperado, "status %d", caso.status)
		assert.ErrorContains(t, err, "detalhe do backend")
		assert.False(t, sess.limpa, "apenas o 401 limpa a sessão")
	}
}

func TestClient_FalhaDeTransporte(t *testing.T) {
	sess := &sessaoFake{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // derruba o servidor antes da chamada
	c := api.NewClient(srv.URL, time.Second, sess, logger.Nop())

	_, err := api.NewLeadRepository(c).ListByEmpresa(context.Background(), "emp1")
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}

func TestClient_SemTokenNaoEnviaAuthorization(t *testing.T) {
	var auth string
	sess := &sessaoFake{}
	c := novoCliente(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}, sess)

	_, err := api.NewLeadRepository(c).ListByEmpresa(context.Background(), "emp1")
	require.NoError(t, err)
	assert.Empty(t, auth)
}
