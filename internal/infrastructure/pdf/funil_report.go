// Package pdf gera o relatório de funil em PDF usando Maroto v2.
//
// Layout da página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + Funil  │  Data de geração                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABELA: Etapa | Negociações | Valor                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAIS: Abertas / Ganhas / Perdidas / Taxa de conversão    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/vendaflow/crmdesk/internal/application/report"
)

var (
	corPrimaria = &props.Color{Red: 13, Green: 71, Blue: 161}
	corCinza    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// FunilReportGenerator gera o PDF de resumo de funil.
type FunilReportGenerator struct{}

// NewFunilReportGenerator constrói o gerador.
func NewFunilReportGenerator() *FunilReportGenerator { return &FunilReportGenerator{} }

// Generate monta o PDF e devolve seus bytes.
func (g *FunilReportGenerator) Generate(empresa string, resumo *report.FunilResumo, geradoEm time.Time) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Relatório de Funil", true).
		WithAuthor(empresa, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(empresa, resumo, geradoEm))
	m.AddRows(line.NewRow(1, props.Line{Color: corPrimaria, Thickness: 0.5}))
	m.AddRows(tabelaEtapasHeader())
	for _, etapa := range resumo.Etapas {
		m.AddRows(etapaRow(etapa))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: corCinza, Thickness: 0.3}))
	m.AddRows(totaisRows(resumo)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar relatório do funil %s: %w", resumo.FunilID, err)
	}
	return doc.GetBytes(), nil
}

func headerRow(empresa string, resumo *report.FunilResumo, geradoEm time.Time) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New(empresa, props.Text{Style: fontstyle.Bold, Size: 13, Color: corPrimaria}),
			text.New("Funil: "+resumo.Nome, props.Text{Size: 10, Top: 7}),
		),
		col.New(4).Add(
			text.New("Gerado em", props.Text{Size: 8, Align: align.Right, Color: corCinza}),
			text.New(geradoEm.Format("02/01/2006 15:04"), props.Text{Size: 9, Align: align.Right, Top: 4}),
		),
	)
}

func tabelaEtapasHeader() core.Row {
	return row.New(7).Add(
		col.New(6).Add(text.New("Etapa", props.Text{Style: fontstyle.Bold, Size: 9, Color: corPrimaria})),
		col.New(3).Add(text.New("Negociações", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: corPrimaria})),
		col.New(3).Add(text.New("Valor", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: corPrimaria})),
	)
}

func etapaRow(etapa report.EtapaResumo) core.Row {
	return row.New(6).Add(
		col.New(6).Add(text.New(etapa.Nome, props.Text{Size: 9})),
		col.New(3).Add(text.New(fmt.Sprintf("%d", etapa.Quantidade), props.Text{Size: 9, Align: align.Right})),
		col.New(3).Add(text.New(formatarValor(etapa.Valor), props.Text{Size: 9, Align: align.Right})),
	)
}

func totaisRows(resumo *report.FunilResumo) []core.Row {
	taxa := resumo.TaxaConversao.Mul(decimal.NewFromInt(100)).Round(1)
	return []core.Row{
		totalRow("Abertas", fmt.Sprintf("%d", resumo.Abertas), formatarValor(resumo.ValorAberto)),
		totalRow("Ganhas", fmt.Sprintf("%d", resumo.Ganhas), formatarValor(resumo.ValorGanho)),
		totalRow("Perdidas", fmt.Sprintf("%d", resumo.Perdidas), ""),
		row.New(8).Add(
			col.New(9).Add(text.New("Taxa de conversão", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 2})),
			col.New(3).Add(text.New(taxa.StringFixed(1)+"%", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 2, Color: corPrimaria})),
		),
	}
}

func totalRow(rotulo, quantidade, valor string) core.Row {
	return row.New(6).Add(
		col.New(6).Add(text.New(rotulo, props.Text{Size: 9, Color: corCinza})),
		col.New(3).Add(text.New(quantidade, props.Text{Size: 9, Align: align.Right})),
		col.New(3).Add(text.New(valor, props.Text{Size: 9, Align: align.Right})),
	)
}

func formatarValor(v decimal.Decimal) string {
	return "R$ " + v.StringFixed(2)
}
