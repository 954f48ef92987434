package filter

import (
	"sort"
	"time"

	"github.com/vendaflow/crmdesk/internal/domain/entity"
)

// LeadOpts são os filtros da visão de leads. Campos zerados não filtram.
type LeadOpts struct {
	Busca         string // substring sobre nome, email, whatsapp e campanha
	Avaliacao     int    // 1..5; 0 = todas
	ResponsavelID string
	Status        string
	Campanha      string
	Periodo       Periodo
	Agora         time.Time // referência do período; zero = time.Now()
}

// Leads aplica os filtros sobre a coleção. Leads soft-deletados nunca
// aparecem, independentemente dos demais filtros.
//
// Uma busca não vazia tem prioridade e ignora os filtros de avaliação,
// responsável, status e campanha (comportamento herdado da interface; está
// em aberto se é UX intencional, então foi preservado como documentado).
// O período é aplicado nos dois ramos.
func Leads(leads []*entity.Lead, opts LeadOpts) []*entity.Lead {
	agora := opts.Agora
	if agora.IsZero() {
		agora = time.Now()
	}
	out := make([]*entity.Lead, 0, len(leads))
	for _, l := range leads {
		if l.Deletado {
			continue
		}
		if !opts.Periodo.Contem(l.CriadoEm, agora) {
			continue
		}
		if opts.Busca != "" {
			if contem(l.NomeCompleto, opts.Busca) || contem(l.Email, opts.Busca) ||
				contem(l.Whatsapp, opts.Busca) || contem(l.Campanha, opts.Busca) {
				out = append(out, l)
			}
			continue
		}
		if opts.Avaliacao != 0 && l.Avaliacao != opts.Avaliacao {
			continue
		}
		if opts.ResponsavelID != "" && l.ResponsavelID != opts.ResponsavelID {
			continue
		}
		if opts.Status != "" && l.Status != opts.Status {
			continue
		}
		if opts.Campanha != "" && l.Campanha != opts.Campanha {
			continue
		}
		out = append(out, l)
	}
	return out
}

// OrdenarLeadsPorCriacao ordena do mais recente para o mais antigo, sem
// mutar a entrada.
func OrdenarLeadsPorCriacao(leads []*entity.Lead) []*entity.Lead {
	out := append([]*entity.Lead(nil), leads...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CriadoEm.After(out[j].CriadoEm) })
	return out
}
