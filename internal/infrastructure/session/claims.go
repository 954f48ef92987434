package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims são os claims do token emitido pelo backend: os registrados mais os
// campos próprios da aplicação.
type Claims struct {
	jwt.RegisteredClaims
	UsuarioID string `json:"usuario_id"`
	EmpresaID string `json:"empresa_id"`
	Perfil    string `json:"perfil"`
}

// DecodeClaims decodifica o payload do token SEM validar a assinatura.
// A validação criptográfica é do backend; aqui o interesse é apenas ler a
// expiração e os identificadores para decidir se vale tentar uma chamada.
func DecodeClaims(token string) (*Claims, error) {
	parser := jwt.NewParser()
	claims := &Claims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("session: decodificar token: %w", err)
	}
	return claims, nil
}

// Expirada informa se o token já venceu em relação a now. Token sem claim de
// expiração é tratado como não expirado (o backend decide no 401).
func (c *Claims) Expirada(now time.Time) bool {
	if c.ExpiresAt == nil {
		return false
	}
	return c.ExpiresAt.Before(now)
}
