// Package importer converte texto CSV/TSV colado ou carregado pelo usuário
// em registros de lead. O delimitador é detectado na linha de cabeçalho
// entre vírgula, ponto e vírgula e tabulação; os cabeçalhos são casados por
// substring contra uma tabela declarada de mapeamento. Cabeçalhos não
// reconhecidos viram avisos, nunca descarte silencioso. Falhas de linha são
// coletadas com índice e motivo e o restante do lote prossegue.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Registro é um lead parseado do texto de importação.
type Registro struct {
	NomeCompleto string
	Email        string
	Whatsapp     string
	Campanha     string
	TipoPessoa   string
	Avaliacao    int
}

// Falha é uma linha que não pôde ser importada. Linha é o índice 1-based da
// linha de dados (o cabeçalho não conta).
type Falha struct {
	Linha  int
	Motivo string
}

// Resultado do parse de um lote.
type Resultado struct {
	Registros []Registro
	Avisos    []string // cabeçalhos sem mapeamento
	Falhas    []Falha
}

// Campos alvo do mapeamento de cabeçalho.
const (
	campoNome      = "nome_completo"
	campoEmail     = "email"
	campoWhatsapp  = "whatsapp"
	campoCampanha  = "campanha"
	campoTipo      = "tipo_pessoa"
	campoAvaliacao = "avaliacao"
)

// mapeamentoCabecalhos é a tabela declarada substring -> campo alvo.
// O primeiro casamento vence, então entradas mais específicas vêm antes
// ("telefone" antes de "fone" seria redundante; ambas caem em whatsapp).
var mapeamentoCabecalhos = []struct {
	Substring string
	Campo     string
}{
	{"nome", campoNome},
	{"e-mail", campoEmail},
	{"email", campoEmail},
	{"whatsapp", campoWhatsapp},
	{"telefone", campoWhatsapp},
	{"celular", campoWhatsapp},
	{"fone", campoWhatsapp},
	{"campanha", campoCampanha},
	{"tag", campoCampanha},
	{"origem", campoCampanha},
	{"avaliacao", campoAvaliacao},
	{"pessoa", campoTipo},
	{"tipo", campoTipo},
}

// DetectarDelimitador escolhe o delimitador pela contagem na linha de
// cabeçalho; empate fica com a vírgula.
func DetectarDelimitador(cabecalho string) rune {
	virgulas := strings.Count(cabecalho, ",")
	pontoVirgulas := strings.Count(cabecalho, ";")
	tabs := strings.Count(cabecalho, "\t")

	delim := ','
	maior := virgulas
	if pontoVirgulas > maior {
		delim, maior = ';', pontoVirgulas
	}
	if tabs > maior {
		delim = '\t'
	}
	return delim
}

// Parse interpreta o texto completo (cabeçalho + linhas de dados).
func Parse(texto string) (*Resultado, error) {
	texto = strings.TrimPrefix(texto, "\uFEFF") // BOM de planilhas exportadas
	texto = strings.TrimSpace(texto)
	if texto == "" {
		return nil, fmt.Errorf("importer: texto vazio")
	}

	primeiraLinha, _, _ := strings.Cut(texto, "\n")
	delim := DetectarDelimitador(primeiraLinha)

	r := csv.NewReader(strings.NewReader(texto))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	cabecalhos, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("importer: ler cabeçalho: %w", err)
	}

	resultado := &Resultado{}
	colunas := make(map[int]string) // índice da coluna -> campo alvo
	for i, h := range cabecalhos {
		campo, ok := mapearCabecalho(h)
		if !ok {
			resultado.Avisos = append(resultado.Avisos,
				fmt.Sprintf("cabeçalho %q (coluna %d) não reconhecido, ignorado", strings.TrimSpace(h), i+1))
			continue
		}
		colunas[i] = campo
	}

	linha := 0
	for {
		linha++
		campos, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			resultado.Falhas = append(resultado.Falhas, Falha{Linha: linha, Motivo: err.Error()})
			continue
		}
		reg, err := montarRegistro(campos, colunas)
		if err != nil {
			resultado.Falhas = append(resultado.Falhas, Falha{Linha: linha, Motivo: err.Error()})
			continue
		}
		resultado.Registros = append(resultado.Registros, reg)
	}
	return resultado, nil
}

func mapearCabecalho(h string) (string, bool) {
	h = strings.ToLower(strings.TrimSpace(h))
	for _, m := range mapeamentoCabecalhos {
		if strings.Contains(h, m.Substring) {
			return m.Campo, true
		}
	}
	return "", false
}

func montarRegistro(campos []string, colunas map[int]string) (Registro, error) {
	var reg Registro
	for i, valor := range campos {
		campo, ok := colunas[i]
		if !ok {
			continue
		}
		valor = strings.TrimSpace(valor)
		switch campo {
		case campoNome:
			reg.NomeCompleto = valor
		case campoEmail:
			reg.Email = valor
		case campoWhatsapp:
			reg.Whatsapp = valor
		case campoCampanha:
			reg.Campanha = valor
		case campoTipo:
			reg.TipoPessoa = normalizarTipoPessoa(valor)
		case campoAvaliacao:
			if valor != "" {
				n, err := strconv.Atoi(valor)
				if err != nil || n < 1 || n > 5 {
					return Registro{}, fmt.Errorf("avaliação %q inválida", valor)
				}
				reg.Avaliacao = n
			}
		}
	}
	if reg.NomeCompleto == "" && reg.Email == "" {
		return Registro{}, fmt.Errorf("linha sem nome e sem email")
	}
	return reg, nil
}

// normalizarTipoPessoa aceita as grafias usuais de planilha.
func normalizarTipoPessoa(v string) string {
	switch strings.ToLower(v) {
	case "juridica", "jurídica", "pj", "pessoa juridica", "pessoa jurídica":
		return "juridica"
	case "":
		return ""
	default:
		return "fisica"
	}
}
