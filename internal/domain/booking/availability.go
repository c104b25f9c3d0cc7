package booking

import (
	"time"

	"github.com/Williamhssilva/agendapro/internal/schedule"
)

type AvailabilityInput struct {
	EstablishmentID uint
	ProfessionalID  uint
	ServiceID       uint
	Date            time.Time
}

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Interval é um intervalo ocupado em minutos desde a meia-noite do
// dia local. Agendamentos já vêm filtrados pelo bucket do dia, então
// comparar minutos-do-dia equivale a comparar instantes.
type Interval struct {
	StartMin int
	EndMin   int
}

// Overlaps em intervalos semiabertos [início, fim). Início exatamente
// igual é sempre conflito, mesmo que a aritmética de duração dissesse
// o contrário (protege contra duração zero e degenerados).
func (i Interval) Overlaps(other Interval) bool {
	if i.StartMin == other.StartMin {
		return true
	}
	return i.StartMin < other.EndMin && i.EndMin > other.StartMin
}

// SlotParams parametriza a geração de horários de um dia já resolvido.
type SlotParams struct {
	Window      DayWindow
	DurationMin int
	BufferMin   int

	// Intervalos ocupados por agendamentos pending/confirmed do dia.
	Busy []Interval

	// Primeiro início permitido (antecedência mínima). Zero quando a
	// data não é hoje.
	MinStartMin int
}

// BuildSlots gera os horários livres do dia em ordem crescente.
//
// Caminha de Window.StartMin em passos de duração+buffer enquanto o
// fim do candidato couber no expediente. Candidato dentro do almoço
// pula direto para o fim do almoço em vez de avançar passo a passo.
func BuildSlots(p SlotParams) []TimeSlot {
	if p.DurationMin <= 0 {
		return nil
	}

	step := p.DurationMin + p.BufferMin
	slots := []TimeSlot{}

	cur := p.Window.StartMin
	for cur+p.DurationMin <= p.Window.EndMin {
		end := cur + p.DurationMin

		// Início exatamente no começo do almoço também pula: o caso já
		// cairia no ramo de sobreposição abaixo e avançaria passo a passo
		// até o mesmo resultado, o salto só encurta o caminho.
		if p.Window.HasLunch && cur >= p.Window.LunchStartMin && cur < p.Window.LunchEndMin {
			// almoço cobre o resto do dia → nada mais a gerar
			if p.Window.LunchEndMin+p.DurationMin > p.Window.EndMin {
				break
			}
			cur = p.Window.LunchEndMin
			continue
		}

		if p.Window.HasLunch && cur < p.Window.LunchEndMin && end > p.Window.LunchStartMin {
			cur += step
			continue
		}

		if cur < p.MinStartMin {
			cur += step
			continue
		}

		candidate := Interval{StartMin: cur, EndMin: end}
		conflict := false
		for _, b := range p.Busy {
			if candidate.Overlaps(b) {
				conflict = true
				break
			}
		}

		if !conflict {
			slots = append(slots, TimeSlot{
				Start: schedule.FormatHM(cur),
				End:   schedule.FormatHM(end),
			})
		}

		cur += step
	}

	return slots
}

// MinuteOfDay converte um instante para minutos desde a meia-noite do
// dia local. Assume que t já está no fuso do estabelecimento.
func MinuteOfDay(t time.Time, loc *time.Location) int {
	t = t.In(loc)
	return t.Hour()*60 + t.Minute()
}

// BusyFromAppointments projeta agendamentos do dia em intervalos de
// minutos-do-dia, ignorando os que não ocupam slot e o próprio id
// (caso de reagendamento).
func BusyFromAppointments(
	appointments []AppointmentSlot,
	loc *time.Location,
	excludeID uint,
) []Interval {

	busy := make([]Interval, 0, len(appointments))
	for _, ap := range appointments {
		if ap.ID == excludeID {
			continue
		}
		if !Status(ap.Status).Occupies() {
			continue
		}
		start := MinuteOfDay(ap.StartTime, loc)
		busy = append(busy, Interval{
			StartMin: start,
			EndMin:   start + ap.DurationMin,
		})
	}
	return busy
}

// AppointmentSlot é a projeção mínima de um agendamento para o cálculo
// de disponibilidade.
type AppointmentSlot struct {
	ID          uint
	StartTime   time.Time
	DurationMin int
	Status      string
}
