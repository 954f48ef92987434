package entity

import "time"

// Tipos de Evento na linha do tempo de uma Negociacao.
const (
	EventoNota          = "nota"
	EventoMudancaStatus = "mudanca_status"
	EventoSistema       = "sistema"
)

// Evento é uma entrada imutável da linha do tempo de uma Negociacao.
// Nunca é editado nem removido depois de criado.
type Evento struct {
	ID           string
	EmpresaID    string
	NegociacaoID string
	AutorID      string // Usuario
	Tipo         string // ver constantes Evento*
	Descricao    string
	CriadoEm     time.Time
}
