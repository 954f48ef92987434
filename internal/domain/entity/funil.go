package entity

import "time"

// Funil é um processo de vendas de uma Empresa, composto por Etapas ordenadas.
type Funil struct {
	ID           string
	EmpresaID    string
	Nome         string
	CriadoEm     time.Time
	AtualizadoEm time.Time
}

// Etapa é um passo ordenado dentro de um Funil. Ordem determina a coluna do
// kanban e deve permanecer contígua (0..n-1) e única dentro do funil após
// qualquer reordenação.
type Etapa struct {
	ID           string
	EmpresaID    string
	FunilID      string
	Nome         string
	Ordem        int
	CriadoEm     time.Time
	AtualizadoEm time.Time
}
