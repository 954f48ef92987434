// Package report deriva os resumos de relatório a partir das coleções em
// memória. Os valores somam os snapshots de preço dos produtos vinculados,
// nunca o catálogo atual.
package report

import (
	"github.com/shopspring/decimal"

	"github.com/vendaflow/crmdesk/internal/domain/entity"
)

// EtapaResumo é uma linha do relatório de funil: quantas negociações estão
// na etapa e o valor somado delas.
type EtapaResumo struct {
	EtapaID    string
	Nome       string
	Ordem      int
	Quantidade int
	Valor      decimal.Decimal
}

// FunilResumo consolida um funil: linhas por etapa na ordem do kanban mais
// os agregados de status. TaxaConversao é ganhas / (ganhas + perdidas); sem
// negociações fechadas a taxa é zero.
type FunilResumo struct {
	FunilID       string
	Nome          string
	Etapas        []EtapaResumo
	Abertas       int
	Ganhas        int
	Perdidas      int
	ValorAberto   decimal.Decimal
	ValorGanho    decimal.Decimal
	TaxaConversao decimal.Decimal
}

// ResumirFunil monta o resumo do funil. Apenas negociações do funil entram;
// negociações em etapas desconhecidas contam nos agregados de status mas não
// aparecem em nenhuma linha de etapa.
func ResumirFunil(funil *entity.Funil, etapas []*entity.Etapa, negociacoes []*entity.Negociacao, vinculos []*entity.NegociacaoProduto) *FunilResumo {
	totais := make(map[string]decimal.Decimal)
	for _, v := range vinculos {
		totais[v.NegociacaoID] = totais[v.NegociacaoID].Add(v.ValorSnapshot)
	}

	resumo := &FunilResumo{FunilID: funil.ID, Nome: funil.Nome}
	porEtapa := make(map[string]int) // etapa -> índice em resumo.Etapas
	for _, e := range etapas {
		if e.FunilID != funil.ID {
			continue
		}
		porEtapa[e.ID] = len(resumo.Etapas)
		resumo.Etapas = append(resumo.Etapas, EtapaResumo{EtapaID: e.ID, Nome: e.Nome, Ordem: e.Ordem})
	}

	for _, n := range negociacoes {
		if n.FunilID != funil.ID {
			continue
		}
		valor := totais[n.ID]
		if i, ok := porEtapa[n.EtapaID]; ok {
			resumo.Etapas[i].Quantidade++
			resumo.Etapas[i].Valor = resumo.Etapas[i].Valor.Add(valor)
		}
		switch n.Status {
		case entity.NegociacaoGanha:
			resumo.Ganhas++
			resumo.ValorGanho = resumo.ValorGanho.Add(valor)
		case entity.NegociacaoPerdida:
			resumo.Perdidas++
		default:
			resumo.Abertas++
			resumo.ValorAberto = resumo.ValorAberto.Add(valor)
		}
	}

	if fechadas := resumo.Ganhas + resumo.Perdidas; fechadas > 0 {
		resumo.TaxaConversao = decimal.NewFromInt(int64(resumo.Ganhas)).
			Div(decimal.NewFromInt(int64(fechadas))).Round(4)
	}
	return resumo
}
