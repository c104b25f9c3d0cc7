package models

import (
	"time"

	"github.com/Williamhssilva/agendapro/internal/schedule"
)

type Professional struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	EstablishmentID uint          `gorm:"index" json:"establishment_id"`
	Establishment   Establishment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Name      string `gorm:"size:100;not null" json:"name"`
	Email     string `gorm:"size:100" json:"email"`
	Phone     string `gorm:"size:20" json:"phone"`
	Specialty string `gorm:"size:100" json:"specialty"`

	Active bool `gorm:"default:true" json:"active"`

	// Nulo ou dia ausente ⇒ herda o horário do estabelecimento.
	WeeklyHours schedule.WeeklyHours `gorm:"type:jsonb" json:"weekly_hours"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
