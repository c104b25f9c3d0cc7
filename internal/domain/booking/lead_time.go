package booking

import (
	"time"

	"github.com/Williamhssilva/agendapro/internal/timezone"
)

// Piso de antecedência: nenhuma configuração derruba abaixo de 2h.
// Política anti-abuso deliberada.
const LeadTimeFloorMinutes = 120

func EffectiveLeadMinutes(configured int) int {
	if configured < LeadTimeFloorMinutes {
		return LeadTimeFloorMinutes
	}
	return configured
}

// MinStartMinFor calcula o primeiro minuto-do-dia permitido para a data
// pedida. Zero quando a data não é hoje (no fuso local): a antecedência
// só filtra o dia corrente.
func MinStartMinFor(date, now time.Time, loc *time.Location, configuredLead int) int {
	if !timezone.SameLocalDay(date, now, loc) {
		return 0
	}

	threshold := now.Add(time.Duration(EffectiveLeadMinutes(configuredLead)) * time.Minute)

	// Limite rolou para o dia seguinte → hoje inteiro bloqueado.
	if !timezone.SameLocalDay(threshold, date, loc) {
		return 24 * 60
	}

	minStart := MinuteOfDay(threshold, loc)
	if threshold.In(loc).Second() > 0 || threshold.In(loc).Nanosecond() > 0 {
		minStart++
	}
	return minStart
}

// MeetsLeadTime valida a antecedência de um início pretendido, avaliada
// no momento do commit (sempre há intervalo entre listar e submeter).
// Início no passado nunca passa.
func MeetsLeadTime(start, now time.Time, loc *time.Location, configuredLead int) bool {
	if start.Before(now) {
		return false
	}
	if !timezone.SameLocalDay(start, now, loc) {
		return true
	}
	threshold := now.Add(time.Duration(EffectiveLeadMinutes(configuredLead)) * time.Minute)
	return !start.Before(threshold)
}
