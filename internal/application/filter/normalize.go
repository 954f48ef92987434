// Package filter contém as derivações locais puras sobre as coleções em
// memória: busca, avaliação, status, responsável, etapa e período. Nenhuma
// função deste pacote faz rede nem muta a entrada; tudo é recomputado a
// partir dos slices recebidos.
package filter

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// normalizar remove acentos e baixa a caixa para comparação de busca
// ("João" casa com "joao"). O transformer é construído por chamada porque
// carrega estado e não é seguro para uso concorrente.
func normalizar(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// contem faz busca por substring normalizada.
func contem(campo, termo string) bool {
	return strings.Contains(normalizar(campo), normalizar(termo))
}
