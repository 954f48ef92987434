package entity

import "time"

// Perfis válidos para Usuario, em ordem decrescente de privilégio.
const (
	PerfilProprietario = "proprietario"
	PerfilSuperAdmin   = "superadmin"
	PerfilAdmin        = "admin"
	PerfilUsuario      = "usuario"
)

// Usuario pertence a exatamente uma Empresa. Permissões são booleans por
// módulo (ver constantes Modulo*); o perfil define o teto administrativo.
type Usuario struct {
	ID           string
	EmpresaID    string
	Nome         string
	Email        string
	Perfil       string          // ver constantes Perfil*
	Permissoes   map[string]bool // módulo -> habilitado
	Ativo        bool
	CriadoEm     time.Time
	AtualizadoEm time.Time
}

// PodeAcessar informa se o usuário tem o módulo habilitado. Proprietário e
// superadmin enxergam tudo independentemente dos booleans.
func (u *Usuario) PodeAcessar(modulo string) bool {
	if u == nil || !u.Ativo {
		return false
	}
	if u.Perfil == PerfilProprietario || u.Perfil == PerfilSuperAdmin {
		return true
	}
	return u.Permissoes[modulo]
}

// Administra informa se o perfil permite ações administrativas (usuários,
// empresa, aprovações).
func (u *Usuario) Administra() bool {
	if u == nil || !u.Ativo {
		return false
	}
	switch u.Perfil {
	case PerfilProprietario, PerfilSuperAdmin, PerfilAdmin:
		return true
	}
	return false
}
