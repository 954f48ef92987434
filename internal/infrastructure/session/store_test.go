package session_test

import (
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendaflow/crmdesk/internal/domain/entity"
	"github.com/vendaflow/crmdesk/internal/infrastructure/session"
)

func novoStore(t *testing.T) *session.Store {
	t.Helper()
	return session.NewStore(filepath.Join(t.TempDir(), "sub", "session.json"))
}

func TestStore_SaveLoadClear(t *testing.T) {
	st := novoStore(t)

	usuario := &entity.Usuario{ID: "u1", Nome: "Ana", EmpresaID: "emp1", Perfil: entity.PerfilAdmin}
	require.NoError(t, st.Save("tok-123", usuario))

	token, carregado, err := st.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)
	require.NotNil(t, carregado)
	assert.Equal(t, "u1", carregado.ID)
	assert.Equal(t, "emp1", carregado.EmpresaID)
	assert.Equal(t, "tok-123", st.Token())

	require.NoError(t, st.Clear())
	token, carregado, err = st.Load()
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Nil(t, carregado)
}

func TestStore_LoadSemArquivo(t *testing.T) {
	st := novoStore(t)

	token, usuario, err := st.Load()
	require.NoError(t, err, "sessão ausente não é erro")
	assert.Empty(t, token)
	assert.Nil(t, usuario)
	assert.Empty(t, st.Token())
}

func TestStore_ClearIdempotente(t *testing.T) {
	st := novoStore(t)
	assert.NoError(t, st.Clear())
	assert.NoError(t, st.Clear())
}

// O arquivo de sessão carrega credencial; precisa nascer 0600.
func TestStore_PermissaoDoArquivo(t *testing.T) {
	caminho := filepath.Join(t.TempDir(), "session.json")
	st := session.NewStore(caminho)
	require.NoError(t, st.Save("tok", &entity.Usuario{ID: "u1"}))

	info, err := os.Stat(caminho)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

// tokenSemAssinatura monta um JWT com payload arbitrário e assinatura vazia;
// DecodeClaims não valida assinatura, então basta para os testes.
func tokenSemAssinatura(t *testing.T, claims map[string]any) string {
	t.Helper()
	header, err := json.Marshal(map[string]string{"alg": "HS256", "typ": "JWT"})
	require.NoError(t, err)
	payload, err := json.Marshal(claims)
	require.NoError(t, err)
	enc := base64.RawURLEncoding
	return enc.EncodeToString(header) + "." + enc.EncodeToString(payload) + "." + enc.EncodeToString([]byte("x"))
}

func TestDecodeClaims(t *testing.T) {
	exp := time.Now().Add(time.Hour)
	token := tokenSemAssinatura(t, map[string]any{
		"usuario_id": "u1",
		"empresa_id": "emp1",
		"perfil":     "admin",
		"exp":        exp.Unix(),
	})

	claims, err := session.DecodeClaims(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UsuarioID)
	assert.Equal(t, "emp1", claims.EmpresaID)
	assert.Equal(t, "admin", claims.Perfil)
	assert.False(t, claims.Expirada(time.Now()))
	assert.True(t, claims.Expirada(exp.Add(time.Minute)))
}

func TestDecodeClaims_TokenInvalido(t *testing.T) {
	_, err := session.DecodeClaims("não-é-um-jwt")
	assert.Error(t, err)
}

func TestClaims_SemExpiracaoNaoExpira(t *testing.T) {
	claims := &session.Claims{RegisteredClaims: jwt.RegisteredClaims{}}
	assert.False(t, claims.Expirada(time.Now()))
}
