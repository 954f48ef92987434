package entity

import "time"

// Notificacao é uma entrada efêmera da fila de aprovações: removida da
// coleção ao ser aprovada ou rejeitada.
type Notificacao struct {
	ID        string
	EmpresaID string
	UsuarioID string // destinatário
	Tipo      string
	Mensagem  string
	CriadoEm  time.Time
}
