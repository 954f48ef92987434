// Package exporter gera os arquivos CSV de exportação. O escape segue o
// encoding/csv padrão (RFC 4180), então campos com vírgula, aspas ou quebra
// de linha saem corretamente entre aspas e um reimporte reproduz os valores.
package exporter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vendaflow/crmdesk/internal/domain/entity"
)

// formatoData é o formato das datas nos CSVs exportados.
const formatoData = "2006-01-02 15:04:05"

// LeadsCSV serializa os leads recebidos: uma linha de cabeçalho mais uma
// linha por lead, na ordem da coleção. Quem decide o que entra (filtros,
// soft delete) é o chamador.
func LeadsCSV(leads []*entity.Lead) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"nome_completo", "email", "whatsapp", "campanha", "avaliacao", "status", "criado_em"}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("exporter: escrever cabeçalho: %w", err)
	}
	for _, l := range leads {
		row := []string{
			l.NomeCompleto,
			l.Email,
			l.Whatsapp,
			l.Campanha,
			strconv.Itoa(l.Avaliacao),
			l.Status,
			l.CriadoEm.Format(formatoData),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("exporter: escrever lead %s: %w", l.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("exporter: flush: %w", err)
	}
	return buf.Bytes(), nil
}

// NegociacoesCSV serializa as negociações com o valor total dos produtos
// vinculados (soma dos snapshots de preço).
func NegociacoesCSV(negociacoes []*entity.Negociacao, vinculos []*entity.NegociacaoProduto) ([]byte, error) {
	totais := totaisPorNegociacao(vinculos)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"titulo", "status", "funil", "etapa", "valor_total", "criado_em"}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("exporter: escrever cabeçalho: %w", err)
	}
	for _, n := range negociacoes {
		row := []string{
			n.Titulo,
			n.Status,
			n.FunilID,
			n.EtapaID,
			totais[n.ID].StringFixed(2),
			n.CriadoEm.Format(formatoData),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("exporter: escrever negociação %s: %w", n.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("exporter: flush: %w", err)
	}
	return buf.Bytes(), nil
}

// totaisPorNegociacao soma os snapshots de preço por negociação.
func totaisPorNegociacao(vinculos []*entity.NegociacaoProduto) map[string]decimal.Decimal {
	totais := make(map[string]decimal.Decimal)
	for _, v := range vinculos {
		totais[v.NegociacaoID] = totais[v.NegociacaoID].Add(v.ValorSnapshot)
	}
	return totais
}

// NomeArquivo monta o nome datado do arquivo exportado, ex.
// "leads-2026-08-31.csv".
func NomeArquivo(prefixo string, agora time.Time) string {
	return fmt.Sprintf("%s-%s.csv", prefixo, agora.Format("2006-01-02"))
}
