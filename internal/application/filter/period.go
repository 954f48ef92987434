package filter

import "time"

// Intervalos nomeados de período.
const (
	PeriodoHoje   = "hoje"
	Periodo7Dias  = "7d"
	Periodo30Dias = "30d"
	PeriodoTotal  = "total"
)

// Periodo é um filtro de data: um intervalo nomeado ou uma faixa explícita
// [Inicio, Fim] inclusiva. Na faixa explícita o horário de Fim é forçado
// para o fim do dia (23:59:59.999...), então um registro criado às 15h do
// dia final entra no resultado.
type Periodo struct {
	Intervalo string    // hoje | 7d | 30d | total; vazio = faixa explícita
	Inicio    time.Time // usado apenas na faixa explícita
	Fim       time.Time // idem
}

// Contem informa se t cai dentro do período, relativo a agora.
// Período zero (sem intervalo e sem faixa) equivale a total.
func (p Periodo) Contem(t, agora time.Time) bool {
	switch p.Intervalo {
	case PeriodoHoje:
		return !t.Before(inicioDoDia(agora)) && !t.After(agora)
	case Periodo7Dias:
		return !t.Before(agora.AddDate(0, 0, -7))
	case Periodo30Dias:
		return !t.Before(agora.AddDate(0, 0, -30))
	case PeriodoTotal:
		return true
	}
	if p.Inicio.IsZero() && p.Fim.IsZero() {
		return true
	}
	if !p.Inicio.IsZero() && t.Before(inicioDoDia(p.Inicio)) {
		return false
	}
	if !p.Fim.IsZero() && t.After(fimDoDia(p.Fim)) {
		return false
	}
	return true
}

func inicioDoDia(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func fimDoDia(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
