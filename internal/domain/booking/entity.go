package booking

import (
	"time"

	"github.com/Williamhssilva/agendapro/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Transition aplica uma mudança de status respeitando a tabela de
// transições e carimba o timestamp correspondente. Não precisa de
// lock: pending e confirmed ocupam o slot da mesma forma, e liberar
// (cancelar/concluir) não exige revalidar os demais agendamentos.
func Transition(ap *models.Appointment, to Status, now time.Time) error {
	from := Status(ap.Status)

	if !CanTransition(from, to) {
		return InvalidTransitionError{From: from, To: to}
	}

	ap.Status = string(to)
	switch to {
	case StatusConfirmed:
		ap.ConfirmedAt = &now
	case StatusCompleted:
		ap.CompletedAt = &now
	case StatusCanceled:
		ap.CanceledAt = &now
	}

	return nil
}

func Cancel(ap *models.Appointment, now time.Time) error {
	return Transition(ap, StatusCanceled, now)
}

func Complete(ap *models.Appointment, now time.Time) error {
	return Transition(ap, StatusCompleted, now)
}
