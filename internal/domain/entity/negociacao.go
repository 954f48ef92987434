package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status válidos de uma Negociacao.
const (
	NegociacaoAberta  = "aberta"
	NegociacaoGanha   = "ganha"
	NegociacaoPerdida = "perdida"
)

// Negociacao liga um Lead a um Funil+Etapa. Pertence à empresa do Lead.
type Negociacao struct {
	ID            string
	EmpresaID     string
	LeadID        string
	FunilID       string
	EtapaID       string
	Titulo        string
	Status        string // ver constantes Negociacao*
	ResponsavelID string
	CriadoEm      time.Time
	AtualizadoEm  time.Time
}

// NegociacaoProduto é o vínculo Negociacao x Produto com snapshot de preço e
// parcelamento no momento da inclusão (mudanças posteriores no catálogo não
// afetam negociações existentes).
type NegociacaoProduto struct {
	ID            string
	EmpresaID     string
	NegociacaoID  string
	ProdutoID     string
	ValorSnapshot decimal.Decimal
	Parcelas      int
	CriadoEm      time.Time
}
