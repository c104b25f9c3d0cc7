package models

import (
	"time"

	"github.com/Williamhssilva/agendapro/internal/schedule"
)

type Establishment struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:100;not null" json:"name"`
	Slug string `gorm:"size:100;uniqueIndex;not null" json:"slug"`

	Phone   string `gorm:"size:20" json:"phone"`
	Address string `gorm:"size:255" json:"address"`

	Timezone string `gorm:"size:64;default:'America/Sao_Paulo'" json:"timezone"`

	// Antecedência mínima configurada. O piso de 120min é aplicado
	// na avaliação, nunca na escrita.
	MinLeadMinutes    int `gorm:"default:120" json:"min_lead_minutes"`
	SlotBufferMinutes int `gorm:"default:0" json:"slot_buffer_minutes"`

	WeeklyHours schedule.WeeklyHours `gorm:"type:jsonb" json:"weekly_hours"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
