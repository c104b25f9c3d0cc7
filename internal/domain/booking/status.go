package booking

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCanceled  Status = "canceled"
)

func IsStatus(s string) bool {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCanceled:
		return true
	}
	return false
}

// Occupies diz se o status bloqueia o horário. Só pending e confirmed
// contam para conflito; cancelado/concluído liberam o slot imediatamente.
func (s Status) Occupies() bool {
	return s == StatusPending || s == StatusConfirmed
}

// ===============================
// Transições
// ===============================

// pending → confirmed|canceled; confirmed → completed|canceled.
// completed e canceled são terminais.
var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCanceled},
	StatusConfirmed: {StatusCompleted, StatusCanceled},
}

func CanTransition(from, to Status) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// InitialStatus: staff autenticado confirma direto, público fica pendente.
func InitialStatus(isStaff bool) Status {
	if isStaff {
		return StatusConfirmed
	}
	return StatusPending
}
