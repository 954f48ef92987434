package filter

import (
	"time"

	"github.com/vendaflow/crmdesk/internal/domain/entity"
)

// NegociacaoOpts são os filtros da visão de negociações (kanban e listagem).
type NegociacaoOpts struct {
	FunilID       string
	EtapaID       string
	Status        string // aberta | ganha | perdida
	ResponsavelID string
	Periodo       Periodo
	Agora         time.Time
}

// Negociacoes aplica os filtros sobre a coleção, sem mutar a entrada.
func Negociacoes(negociacoes []*entity.Negociacao, opts NegociacaoOpts) []*entity.Negociacao {
	agora := opts.Agora
	if agora.IsZero() {
		agora = time.Now()
	}
	out := make([]*entity.Negociacao, 0, len(negociacoes))
	for _, n := range negociacoes {
		if opts.FunilID != "" && n.FunilID != opts.FunilID {
			continue
		}
		if opts.EtapaID != "" && n.EtapaID != opts.EtapaID {
			continue
		}
		if opts.Status != "" && n.Status != opts.Status {
			continue
		}
		if opts.ResponsavelID != "" && n.ResponsavelID != opts.ResponsavelID {
			continue
		}
		if !opts.Periodo.Contem(n.CriadoEm, agora) {
			continue
		}
		out = append(out, n)
	}
	return out
}

// PorEtapa agrupa as negociações por etapa (colunas do kanban).
func PorEtapa(negociacoes []*entity.Negociacao) map[string][]*entity.Negociacao {
	out := make(map[string][]*entity.Negociacao)
	for _, n := range negociacoes {
		out[n.EtapaID] = append(out[n.EtapaID], n)
	}
	return out
}
