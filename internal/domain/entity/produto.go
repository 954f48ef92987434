package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Produto item do catálogo de uma Empresa.
type Produto struct {
	ID           string
	EmpresaID    string
	Nome         string
	ValorTotal   decimal.Decimal
	MaxParcelas  int
	CriadoEm     time.Time
	AtualizadoEm time.Time
}
