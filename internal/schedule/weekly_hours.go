package schedule

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ===============================
// Weekday
// ===============================

type Weekday string

const (
	Sunday    Weekday = "domingo"
	Monday    Weekday = "segunda"
	Tuesday   Weekday = "terca"
	Wednesday Weekday = "quarta"
	Thursday  Weekday = "quinta"
	Friday    Weekday = "sexta"
	Saturday  Weekday = "sabado"
)

var weekdays = [7]Weekday{
	Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday,
}

// FromTime converte time.Weekday para a chave persistida.
func FromTime(wd time.Weekday) Weekday {
	return weekdays[int(wd)]
}

func IsWeekday(s string) bool {
	for _, wd := range weekdays {
		if string(wd) == s {
			return true
		}
	}
	return false
}

// ===============================
// DaySchedule
// ===============================

// DaySchedule é a configuração de um dia da semana.
// Horários em "HH:MM". Campos de almoço são opcionais.
type DaySchedule struct {
	Open       bool   `json:"aberto"`
	Start      string `json:"inicio,omitempty"`
	End        string `json:"fim,omitempty"`
	LunchStart string `json:"almoco_inicio,omitempty"`
	LunchEnd   string `json:"almoco_fim,omitempty"`
}

// StartMin / EndMin em minutos desde meia-noite. Só fazem sentido com Open=true.
func (d DaySchedule) StartMin() int { m, _ := ParseHM(d.Start); return m }
func (d DaySchedule) EndMin() int   { m, _ := ParseHM(d.End); return m }

func (d DaySchedule) HasLunch() bool {
	return d.LunchStart != "" && d.LunchEnd != ""
}

func (d DaySchedule) Validate() error {
	if !d.Open {
		return nil
	}

	start, err := ParseHM(d.Start)
	if err != nil {
		return fmt.Errorf("inicio: %w", err)
	}
	end, err := ParseHM(d.End)
	if err != nil {
		return fmt.Errorf("fim: %w", err)
	}
	if start >= end {
		return fmt.Errorf("inicio %q deve ser antes de fim %q", d.Start, d.End)
	}

	if d.LunchStart == "" && d.LunchEnd == "" {
		return nil
	}
	if d.LunchStart == "" || d.LunchEnd == "" {
		return fmt.Errorf("almoco incompleto: inicio e fim são obrigatórios juntos")
	}

	ls, err := ParseHM(d.LunchStart)
	if err != nil {
		return fmt.Errorf("almoco_inicio: %w", err)
	}
	le, err := ParseHM(d.LunchEnd)
	if err != nil {
		return fmt.Errorf("almoco_fim: %w", err)
	}
	if ls >= le {
		return fmt.Errorf("almoco_inicio %q deve ser antes de almoco_fim %q", d.LunchStart, d.LunchEnd)
	}
	if ls < start || le > end {
		return fmt.Errorf("almoço %q–%q fora do expediente %q–%q", d.LunchStart, d.LunchEnd, d.Start, d.End)
	}

	return nil
}

// ===============================
// WeeklyHours
// ===============================

// WeeklyHours é o mapa tipado dia-da-semana → configuração.
// Substitui o blob JSON opaco: o parse valida na escrita, não a cada leitura.
type WeeklyHours map[Weekday]DaySchedule

// Day retorna a configuração do dia e se ela existe no mapa.
// Dia ausente não é "fechado": é "não contribui" (herda do estabelecimento).
func (w WeeklyHours) Day(wd Weekday) (DaySchedule, bool) {
	if w == nil {
		return DaySchedule{}, false
	}
	d, ok := w[wd]
	return d, ok
}

func (w WeeklyHours) Validate() error {
	for wd, d := range w {
		if !IsWeekday(string(wd)) {
			return fmt.Errorf("dia da semana desconhecido: %q", wd)
		}
		if err := d.Validate(); err != nil {
			return fmt.Errorf("%s: %w", wd, err)
		}
	}
	return nil
}

// Parse decodifica e valida o JSON persistido.
func Parse(raw []byte) (WeeklyHours, error) {
	var w WeeklyHours
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, fmt.Errorf("weekly hours: %w", err)
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return w, nil
}

// ===============================
// gorm (jsonb)
// ===============================

func (w WeeklyHours) Value() (driver.Value, error) {
	if w == nil {
		return nil, nil
	}
	b, err := json.Marshal(w)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan trata JSON malformado como mapa vazio (dia ausente), nunca como erro:
// configuração quebrada não pode derrubar a listagem de horários.
func (w *WeeklyHours) Scan(src any) error {
	if src == nil {
		*w = nil
		return nil
	}

	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("weekly hours: tipo inesperado %T", src)
	}

	parsed, err := Parse(raw)
	if err != nil {
		*w = WeeklyHours{}
		return nil
	}

	*w = parsed
	return nil
}

// ===============================
// HH:MM
// ===============================

// ParseHM converte "HH:MM" em minutos desde meia-noite.
func ParseHM(hm string) (int, error) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, fmt.Errorf("horário inválido %q", hm)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatHM converte minutos desde meia-noite em "HH:MM".
func FormatHM(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}
