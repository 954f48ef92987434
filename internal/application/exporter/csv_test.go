package exporter_test

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendaflow/crmdesk/internal/application/exporter"
	"github.com/vendaflow/crmdesk/internal/domain/entity"
)

var criadoEm = time.Date(2026, 8, 30, 14, 30, 0, 0, time.UTC)

func TestLeadsCSV_CabecalhoMaisUmaLinhaPorLead(t *testing.T) {
	leads := []*entity.Lead{
		{ID: "1", NomeCompleto: "Ana Silva", Email: "ana@exemplo.com", Avaliacao: 4, Status: "novo", CriadoEm: criadoEm},
		{ID: "2", NomeCompleto: "Bruno Costa", Whatsapp: "11999990000", CriadoEm: criadoEm},
	}

	dados, err := exporter.LeadsCSV(leads)
	require.NoError(t, err)

	linhas := strings.Split(strings.TrimRight(string(dados), "\n"), "\n")
	require.Len(t, linhas, 3, "cabeçalho + uma linha por lead")
	assert.Equal(t, "nome_completo,email,whatsapp,campanha,avaliacao,status,criado_em", linhas[0])
	assert.Contains(t, linhas[1], "Ana Silva")
	assert.Contains(t, linhas[1], "2026-08-30 14:30:00")
}

// Campos com vírgula, aspas e quebra de linha devem sobreviver a um ciclo
// exportar → reler com o mesmo escape RFC 4180.
func TestLeadsCSV_EscapeRoundTrip(t *testing.T) {
	leads := []*entity.Lead{
		{ID: "1", NomeCompleto: `Silva, Ana "a pontual"`, Campanha: "linha\nquebrada", CriadoEm: criadoEm},
	}

	dados, err := exporter.LeadsCSV(leads)
	require.NoError(t, err)

	r := csv.NewReader(strings.NewReader(string(dados)))
	registros, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, registros, 2)
	assert.Equal(t, `Silva, Ana "a pontual"`, registros[1][0])
	assert.Equal(t, "linha\nquebrada", registros[1][3])
}

func TestLeadsCSV_Vazio(t *testing.T) {
	dados, err := exporter.LeadsCSV(nil)
	require.NoError(t, err)

	linhas := strings.Split(strings.TrimRight(string(dados), "\n"), "\n")
	assert.Len(t, linhas, 1, "apenas o cabeçalho")
}

func TestNegociacoesCSV_SomaSnapshots(t *testing.T) {
	ns := []*entity.Negociacao{
		{ID: "n1", Titulo: "Proposta Acme", Status: entity.NegociacaoAberta, FunilID: "f1", EtapaID: "e1", CriadoEm: criadoEm},
		{ID: "n2", Titulo: "Sem produtos", Status: entity.NegociacaoAberta, FunilID: "f1", EtapaID: "e1", CriadoEm: criadoEm},
	}
	vinculos := []*entity.NegociacaoProduto{
		{ID: "v1", NegociacaoID: "n1", ValorSnapshot: decimal.RequireFromString("1500.50")},
		{ID: "v2", NegociacaoID: "n1", ValorSnapshot: decimal.RequireFromString("499.50")},
	}

	dados, err := exporter.NegociacoesCSV(ns, vinculos)
	require.NoError(t, err)

	r := csv.NewReader(strings.NewReader(string(dados)))
	registros, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, registros, 3)
	assert.Equal(t, "2000.00", registros[1][4])
	assert.Equal(t, "0.00", registros[2][4], "negociação sem produtos soma zero")
}

func TestNomeArquivo_Datado(t *testing.T) {
	nome := exporter.NomeArquivo("leads", time.Date(2026, 8, 31, 10, 0, 0, 0, time.UTC))
	assert.Equal(t, "leads-2026-08-31.csv", nome)
}
