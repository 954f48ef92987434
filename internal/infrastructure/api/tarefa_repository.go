package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/vendaflow/crmdesk/internal/domain/entity"
)

// TarefaRepository implementa repository.TarefaRepository sobre /tarefa.
type TarefaRepository struct {
	c *Client
}

// NewTarefaRepository constrói o repositório REST de tarefas.
func NewTarefaRepository(c *Client) *TarefaRepository {
	return &TarefaRepository{c: c}
}

func (r *TarefaRepository) ListByUsuario(ctx context.Context, usuarioID string) ([]*entity.Tarefa, error) {
	var docs []wireTarefa
	path := "/tarefa?usuario=" + url.QueryEscape(usuarioID)
	if err := r.c.do(ctx, http.MethodGet, path, nil, &docs); err != nil {
		return nil, err
	}
	return mapSlice(docs, wireTarefa.toEntity), nil
}

func (r *TarefaRepository) Create(ctx context.Context, t *entity.Tarefa) (*entity.Tarefa, error) {
	body := map[string]any{
		"empresa":    t.EmpresaID,
		"usuario":    t.UsuarioID,
		"tipo":       t.Tipo,
		"descricao":  t.Descricao,
		"status":     t.Status,
		"vencimento": t.Vencimento,
	}
	var doc wireTarefa
	if err := r.c.do(ctx, http.MethodPost, "/tarefa", body, &doc); err != nil {
		return nil, err
	}
	return doc.toEntity(), nil
}

func (r *TarefaRepository) Update(ctx context.Context, t *entity.Tarefa) error {
	body := map[string]any{
		"tipo":       t.Tipo,
		"descricao":  t.Descricao,
		"status":     t.Status,
		"vencimento": t.Vencimento,
	}
	return r.c.do(ctx, http.MethodPut, "/tarefa/"+t.ID, body, nil)
}

func (r *TarefaRepository) Delete(ctx context.Context, id string) error {
	return r.c.do(ctx, http.MethodDelete, "/tarefa/delete/"+id, nil, nil)
}
