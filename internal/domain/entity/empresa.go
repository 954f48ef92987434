package entity

import "time"

// Empresa representa um tenant do sistema: a fronteira de isolamento de todos
// os dados de negócio. Toda entidade exceto Empresa carrega EmpresaID.
type Empresa struct {
	ID            string
	Nome          string
	Documento     string // CNPJ/CPF do tenant
	CorPrimaria   string // hex, identidade visual do tenant
	CorSecundaria string
	LogoURL       string
	Ativa         bool
	CriadoEm      time.Time
	AtualizadoEm  time.Time
}

// Módulos do CRM que podem ser habilitados por usuário (booleans de permissão).
const (
	ModuloLeads         = "leads"
	ModuloFunis         = "funis"
	ModuloNegociacoes   = "negociacoes"
	ModuloProdutos      = "produtos"
	ModuloRelatorios    = "relatorios"
	ModuloAdministracao = "administracao"
)
