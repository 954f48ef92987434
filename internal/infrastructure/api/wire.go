package api

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vendaflow/crmdesk/internal/domain/entity"
)

// O backend devolve documentos no estilo Mongo: chave "_id" e campos de
// referência que podem chegar como id puro ("abc") ou como documento
// expandido ({"_id":"abc", ...}). Os tipos deste arquivo normalizam as duas
// formas para o modelo plano do domínio. Os mapeamentos são puros e
// idempotentes: mapear duas vezes produz o mesmo resultado.

// ref resolve um campo de referência para o id escalar.
type ref string

// UnmarshalJSON aceita string, objeto expandido ou null.
func (r *ref) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*r = ref(s)
		return nil
	}
	var doc struct {
		ID string `json:"_id"`
	}
	if err := json.Unmarshal(data, &doc); err == nil {
		*r = ref(doc.ID)
		return nil
	}
	// null ou forma inesperada: referência vazia, o chamador decide.
	*r = ""
	return nil
}

func (r ref) String() string { return string(r) }

// mapSlice converte um slice de documentos wire elemento a elemento.
func mapSlice[W any, E any](in []W, conv func(W) *E) []*E {
	out := make([]*E, 0, len(in))
	for _, w := range in {
		out = append(out, conv(w))
	}
	return out
}

// ── Empresa ───────────────────────────────────────────────────────────────────

type wireEmpresa struct {
	ID            string    `json:"_id"`
	Nome          string    `json:"nome"`
	Documento     string    `json:"documento"`
	CorPrimaria   string    `json:"cor_primaria"`
	CorSecundaria string    `json:"cor_secundaria"`
	LogoURL       string    `json:"logo_url"`
	Ativa         bool      `json:"ativa"`
	CriadoEm      time.Time `json:"criado_em"`
	AtualizadoEm  time.Time `json:"atualizado_em"`
}

func (w wireEmpresa) toEntity() *entity.Empresa {
	return &entity.Empresa{
		ID:            w.ID,
		Nome:          w.Nome,
		Documento:     w.Documento,
		CorPrimaria:   w.CorPrimaria,
		CorSecundaria: w.CorSecundaria,
		LogoURL:       w.LogoURL,
		Ativa:         w.Ativa,
		CriadoEm:      w.CriadoEm,
		AtualizadoEm:  w.AtualizadoEm,
	}
}

// ── Usuario ───────────────────────────────────────────────────────────────────

type wireUsuario struct {
	ID           string          `json:"_id"`
	Empresa      ref             `json:"empresa"`
	Nome         string          `json:"nome"`
	Email        string          `json:"email"`
	Perfil       string          `json:"perfil"`
	Permissoes   map[string]bool `json:"permissoes"`
	Ativo        bool            `json:"ativo"`
	CriadoEm     time.Time       `json:"criado_em"`
	AtualizadoEm time.Time       `json:"atualizado_em"`
}

func (w wireUsuario) toEntity() *entity.Usuario {
	return &entity.Usuario{
		ID:           w.ID,
		EmpresaID:    w.Empresa.String(),
		Nome:         w.Nome,
		Email:        w.Email,
		Perfil:       w.Perfil,
		Permissoes:   w.Permissoes,
		Ativo:        w.Ativo,
		CriadoEm:     w.CriadoEm,
		AtualizadoEm: w.AtualizadoEm,
	}
}

// ── Lead (endpoint /cliente) ─────────────────────────────────────────────────

type wireLead struct {
	ID           string    `json:"_id"`
	Empresa      ref       `json:"empresa"`
	NomeCompleto string    `json:"nome_completo"`
	Email        string    `json:"email"`
	Whatsapp     string    `json:"whatsapp"`
	TipoPessoa   string    `json:"tipo_pessoa"`
	Campanha     string    `json:"campanha"`
	Avaliacao    int       `json:"avaliacao"`
	Status       string    `json:"status"`
	Responsavel  ref       `json:"responsavel"`
	Deletado     bool      `json:"deletado"`
	CriadoEm     time.Time `json:"criado_em"`
	AtualizadoEm time.Time `json:"atualizado_em"`
}

func (w wireLead) toEntity() *entity.Lead {
	return &entity.Lead{
		ID:            w.ID,
		EmpresaID:     w.Empresa.String(),
		NomeCompleto:  w.NomeCompleto,
		Email:         w.Email,
		Whatsapp:      w.Whatsapp,
		TipoPessoa:    w.TipoPessoa,
		Campanha:      w.Campanha,
		Avaliacao:     w.Avaliacao,
		Status:        w.Status,
		ResponsavelID: w.Responsavel.String(),
		Deletado:      w.Deletado,
		CriadoEm:      w.CriadoEm,
		AtualizadoEm:  w.AtualizadoEm,
	}
}

// ── Funil / Etapa ────────────────────────────────────────────────────────────

type wireFunil struct {
	ID           string    `json:"_id"`
	Empresa      ref       `json:"empresa"`
	Nome         string    `json:"nome"`
	CriadoEm     time.Time `json:"criado_em"`
	AtualizadoEm time.Time `json:"atualizado_em"`
}

func (w wireFunil) toEntity() *entity.Funil {
	return &entity.Funil{
		ID:           w.ID,
		EmpresaID:    w.Empresa.String(),
		Nome:         w.Nome,
		CriadoEm:     w.CriadoEm,
		AtualizadoEm: w.AtualizadoEm,
	}
}

type wireEtapa struct {
	ID           string    `json:"_id"`
	Empresa      ref       `json:"empresa"`
	Funil        ref       `json:"funil"`
	Nome         string    `json:"nome"`
	Ordem        int       `json:"ordem"`
	CriadoEm     time.Time `json:"criado_em"`
	AtualizadoEm time.Time `json:"atualizado_em"`
}

func (w wireEtapa) toEntity() *entity.Etapa {
	return &entity.Etapa{
		ID:           w.ID,
		EmpresaID:    w.Empresa.String(),
		FunilID:      w.Funil.String(),
		Nome:         w.Nome,
		Ordem:        w.Ordem,
		CriadoEm:     w.CriadoEm,
		AtualizadoEm: w.AtualizadoEm,
	}
}

// ── Negociacao ───────────────────────────────────────────────────────────────

type wireNegociacao struct {
	ID           string    `json:"_id"`
	Empresa      ref       `json:"empresa"`
	Lead         ref       `json:"lead"`
	Funil        ref       `json:"funil"`
	Etapa        ref       `json:"etapa"`
	Titulo       string    `json:"titulo"`
	Status       string    `json:"status"`
	Responsavel  ref       `json:"responsavel"`
	CriadoEm     time.Time `json:"criado_em"`
	AtualizadoEm time.Time `json:"atualizado_em"`
}

func (w wireNegociacao) toEntity() *entity.Negociacao {
	return &entity.Negociacao{
		ID:            w.ID,
		EmpresaID:     w.Empresa.String(),
		LeadID:        w.Lead.String(),
		FunilID:       w.Funil.String(),
		EtapaID:       w.Etapa.String(),
		Titulo:        w.Titulo,
		Status:        w.Status,
		ResponsavelID: w.Responsavel.String(),
		CriadoEm:      w.CriadoEm,
		AtualizadoEm:  w.AtualizadoEm,
	}
}

type wireNegociacaoProduto struct {
	ID            string          `json:"_id"`
	Empresa       ref             `json:"empresa"`
	Negociacao    ref             `json:"negociacao"`
	Produto       ref             `json:"produto"`
	ValorSnapshot decimal.Decimal `json:"valor_snapshot"`
	Parcelas      int             `json:"parcelas"`
	CriadoEm      time.Time       `json:"criado_em"`
}

func (w wireNegociacaoProduto) toEntity() *entity.NegociacaoProduto {
	return &entity.NegociacaoProduto{
		ID:            w.ID,
		EmpresaID:     w.Empresa.String(),
		NegociacaoID:  w.Negociacao.String(),
		ProdutoID:     w.Produto.String(),
		ValorSnapshot: w.ValorSnapshot,
		Parcelas:      w.Parcelas,
		CriadoEm:      w.CriadoEm,
	}
}

// ── Produto ──────────────────────────────────────────────────────────────────

type wireProduto struct {
	ID           string          `json:"_id"`
	Empresa      ref             `json:"empresa"`
	Nome         string          `json:"nome"`
	ValorTotal   decimal.Decimal `json:"valor_total"`
	MaxParcelas  int             `json:"max_parcelas"`
	CriadoEm     time.Time       `json:"criado_em"`
	AtualizadoEm time.Time       `json:"atualizado_em"`
}

func (w wireProduto) toEntity() *entity.Produto {
	return &entity.Produto{
		ID:           w.ID,
		EmpresaID:    w.Empresa.String(),
		Nome:         w.Nome,
		ValorTotal:   w.ValorTotal,
		MaxParcelas:  w.MaxParcelas,
		CriadoEm:     w.CriadoEm,
		AtualizadoEm: w.AtualizadoEm,
	}
}

// ── Evento / Tarefa / Notificacao ────────────────────────────────────────────

type wireEvento struct {
	ID         string    `json:"_id"`
	Empresa    ref       `json:"empresa"`
	Negociacao ref       `json:"negociacao"`
	Autor      ref       `json:"autor"`
	Tipo       string    `json:"tipo"`
	Descricao  string    `json:"descricao"`
	CriadoEm   time.Time `json:"criado_em"`
}

func (w wireEvento) toEntity() *entity.Evento {
	return &entity.Evento{
		ID:           w.ID,
		EmpresaID:    w.Empresa.String(),
		NegociacaoID: w.Negociacao.String(),
		AutorID:      w.Autor.String(),
		Tipo:         w.Tipo,
		Descricao:    w.Descricao,
		CriadoEm:     w.CriadoEm,
	}
}

type wireTarefa struct {
	ID           string    `json:"_id"`
	Empresa      ref       `json:"empresa"`
	Usuario      ref       `json:"usuario"`
	Tipo         string    `json:"tipo"`
	Descricao    string    `json:"descricao"`
	Status       string    `json:"status"`
	Vencimento   time.Time `json:"vencimento"`
	CriadoEm     time.Time `json:"criado_em"`
	AtualizadoEm time.Time `json:"atualizado_em"`
}

func (w wireTarefa) toEntity() *entity.Tarefa {
	return &entity.Tarefa{
		ID:           w.ID,
		EmpresaID:    w.Empresa.String(),
		UsuarioID:    w.Usuario.String(),
		Tipo:         w.Tipo,
		Descricao:    w.Descricao,
		Status:       w.Status,
		Vencimento:   w.Vencimento,
		CriadoEm:     w.CriadoEm,
		AtualizadoEm: w.AtualizadoEm,
	}
}

type wireNotificacao struct {
	ID       string    `json:"_id"`
	Empresa  ref       `json:"empresa"`
	Usuario  ref       `json:"usuario"`
	Tipo     string    `json:"tipo"`
	Mensagem string    `json:"mensagem"`
	CriadoEm time.Time `json:"criado_em"`
}

func (w wireNotificacao) toEntity() *entity.Notificacao {
	return &entity.Notificacao{
		ID:        w.ID,
		EmpresaID: w.Empresa.String(),
		UsuarioID: w.Usuario.String(),
		Tipo:      w.Tipo,
		Mensagem:  w.Mensagem,
		CriadoEm:  w.CriadoEm,
	}
}
