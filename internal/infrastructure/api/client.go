// Package api implementa o cliente REST autenticado do backend do CRM e os
// repositórios por entidade sobre os endpoints /empresa, /usuario, /cliente,
// /funil, /etapa, /negociacao e /produto.
//
// Modelo de falha: uma única tentativa de rede por chamada, sem retry nem
// backoff. Um 401 limpa a sessão persistida e devolve
// domain.ErrUnauthenticated; o chamador deve abortar.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/vendaflow/crmdesk/internal/domain"
	"github.com/vendaflow/crmdesk/pkg/logger"
)

// SessionSource é o contrato mínimo que o cliente precisa da sessão
// persistida: ler o token atual e limpá-la em um 401. O uso de interface
// evita acoplar o cliente ao formato do arquivo de sessão.
type SessionSource interface {
	Token() string
	Clear() error
}

// Client encapsula as chamadas HTTP autenticadas ao backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    SessionSource
	log        *logger.Logger
}

// NewClient constrói o cliente. timeout é o limite de rede por chamada.
func NewClient(baseURL string, timeout time.Duration, session SessionSource, log *logger.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		session:    session,
		log:        log,
	}
}

// apiError é o corpo de erro do backend ({"message": "..."}).
type apiError struct {
	Message string `json:"message"`
}

// do executa uma chamada JSON autenticada. body e out podem ser nil.
// Mapeamento de status: 401 limpa a sessão e devolve ErrUnauthenticated;
// 403 ErrForbidden; 404 ErrNotFound; 409 ErrDuplicate; demais não-2xx
// ErrUnavailable com o status.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: serializar corpo de %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("api: montar %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error().Err(err).Str("method", method).Str("path", path).Msg("falha de transporte")
		return fmt.Errorf("api: %s %s: %v: %w", method, path, err, domain.ErrUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		// Logout global: a sessão local deixa de valer imediatamente.
		if err := c.session.Clear(); err != nil {
			c.log.Warn().Err(err).Msg("não foi possível limpar a sessão após 401")
		}
		return fmt.Errorf("api: %s %s: %w", method, path, domain.ErrUnauthenticated)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := readErrorMessage(resp.Body)
		var kind error
		switch resp.StatusCode {
		case http.StatusForbidden:
			kind = domain.ErrForbidden
		case http.StatusNotFound:
			kind = domain.ErrNotFound
		case http.StatusConflict:
			kind = domain.ErrDuplicate
		default:
			kind = domain.ErrUnavailable
		}
		c.log.Warn().Int("status", resp.StatusCode).Str("method", method).Str("path", path).
			Str("message", msg).Msg("resposta de erro do backend")
		if msg != "" {
			return fmt.Errorf("api: %s %s: status %d (%s): %w", method, path, resp.StatusCode, msg, kind)
		}
		return fmt.Errorf("api: %s %s: status %d: %w", method, path, resp.StatusCode, kind)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("api: decodificar resposta de %s %s: %w", method, path, err)
	}
	return nil
}

// readErrorMessage extrai a mensagem do corpo de erro, se houver.
func readErrorMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return ""
	}
	var e apiError
	if json.Unmarshal(data, &e) == nil && e.Message != "" {
		return e.Message
	}
	return ""
}
