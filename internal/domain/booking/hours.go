package booking

import (
	"github.com/Williamhssilva/agendapro/internal/schedule"
)

// DayWindow é o intervalo efetivo de atendimento de um dia,
// em minutos desde a meia-noite local.
type DayWindow struct {
	StartMin int
	EndMin   int

	HasLunch      bool
	LunchStartMin int
	LunchEndMin   int
}

// ResolveDayWindow interseciona o horário do estabelecimento com o do
// profissional para um dia da semana. Retorna false quando o dia está
// fechado.
//
// Regras:
//   - Estabelecimento com entrada aberto=false fecha o dia para todos,
//     mesmo que o profissional se declare aberto. A loja fechada é veto.
//   - Entrada ausente não contribui limite (o profissional herda o
//     horário da loja por padrão).
//   - Quando ambos contribuem, vale a interseção (max início, min fim).
//   - Interseção degenerada (início ≥ fim) fecha o dia em vez de errar.
func ResolveDayWindow(estab, prof schedule.WeeklyHours, wd schedule.Weekday) (DayWindow, bool) {
	estabDay, estabHas := estab.Day(wd)
	profDay, profHas := prof.Day(wd)

	if estabHas && !estabDay.Open {
		return DayWindow{}, false
	}

	estabContributes := estabHas && estabDay.Open
	profContributes := profHas && profDay.Open

	var win DayWindow

	switch {
	case estabContributes && profContributes:
		win.StartMin = max(estabDay.StartMin(), profDay.StartMin())
		win.EndMin = min(estabDay.EndMin(), profDay.EndMin())
	case estabContributes:
		win.StartMin = estabDay.StartMin()
		win.EndMin = estabDay.EndMin()
	case profContributes:
		win.StartMin = profDay.StartMin()
		win.EndMin = profDay.EndMin()
	default:
		return DayWindow{}, false
	}

	if win.StartMin >= win.EndMin {
		return DayWindow{}, false
	}

	// Almoço: vale o do profissional quando ele tem entrada própria,
	// senão o da loja.
	switch {
	case profContributes && profDay.HasLunch():
		win.HasLunch = true
		win.LunchStartMin, _ = schedule.ParseHM(profDay.LunchStart)
		win.LunchEndMin, _ = schedule.ParseHM(profDay.LunchEnd)
	case estabContributes && estabDay.HasLunch():
		win.HasLunch = true
		win.LunchStartMin, _ = schedule.ParseHM(estabDay.LunchStart)
		win.LunchEndMin, _ = schedule.ParseHM(estabDay.LunchEnd)
	}

	return win, true
}

// Contains verifica se [startMin, endMin) cabe no expediente sem tocar o almoço.
func (w DayWindow) Contains(startMin, endMin int) bool {
	if startMin < w.StartMin || endMin > w.EndMin {
		return false
	}
	if w.HasLunch && startMin < w.LunchEndMin && endMin > w.LunchStartMin {
		return false
	}
	return true
}
