package entity

import "time"

// Status válidos de uma Tarefa.
const (
	TarefaPendente  = "pendente"
	TarefaConcluida = "concluida"
)

// Tarefa pertence a um Usuario.
type Tarefa struct {
	ID           string
	EmpresaID    string
	UsuarioID    string
	Tipo         string // ligacao, reuniao, email, outro
	Descricao    string
	Status       string // ver constantes Tarefa*
	Vencimento   time.Time
	CriadoEm     time.Time
	AtualizadoEm time.Time
}
