// Package session persiste a sessão autenticada em disco: o token emitido
// pelo backend e o registro do usuário serializado. O arquivo é lido no
// startup e limpo no logout ou em qualquer resposta 401.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/vendaflow/crmdesk/internal/domain/entity"
)

// sessao é o formato do arquivo de sessão.
type sessao struct {
	Token   string          `json:"token"`
	Usuario *entity.Usuario `json:"usuario"`
}

// Store guarda a sessão em um arquivo JSON (0600). A escrita é atômica
// (arquivo temporário + rename) para nunca deixar uma sessão truncada.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore constrói o store apontando para o arquivo de sessão.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load lê a sessão persistida. Devolve ("", nil, nil) se não há sessão.
func (s *Store) Load() (string, *entity.Usuario, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.read()
	if err != nil || sess == nil {
		return "", nil, err
	}
	return sess.Token, sess.Usuario, nil
}

// Save grava token e usuário em disco.
func (s *Store) Save(token string, usuario *entity.Usuario) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("session: criar diretório: %w", err)
	}
	data, err := json.MarshalIndent(sessao{Token: token, Usuario: usuario}, "", "  ")
	if err != nil {
		return fmt.Errorf("session: serializar: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("session: gravar %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("session: renomear: %w", err)
	}
	return nil
}

// Clear remove a sessão. Não é erro limpar uma sessão inexistente.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("session: remover %s: %w", s.path, err)
	}
	return nil
}

// Token devolve o token da sessão atual, ou "" se não há sessão.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.read()
	if err != nil || sess == nil {
		return ""
	}
	return sess.Token
}

func (s *Store) read() (*sessao, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session: ler %s: %w", s.path, err)
	}
	var sess sessao
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("session: decodificar %s: %w", s.path, err)
	}
	if sess.Token == "" {
		return nil, nil
	}
	return &sess, nil
}
