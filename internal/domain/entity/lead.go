package entity

import "time"

// Lead é um contato (prospect ou cliente) de uma Empresa.
// Deletado é soft delete: o registro permanece na coleção em memória mas
// nunca aparece nas visões filtradas.
type Lead struct {
	ID            string
	EmpresaID     string
	NomeCompleto  string
	Email         string
	Whatsapp      string
	TipoPessoa    string // "fisica" | "juridica"
	Campanha      string // campanha/origem de captação
	Avaliacao     int    // 1..5
	Status        string
	ResponsavelID string // Usuario dono do lead
	Deletado      bool
	CriadoEm      time.Time
	AtualizadoEm  time.Time
}
