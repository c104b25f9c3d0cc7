package dto

import (
	"time"

	"github.com/Williamhssilva/agendapro/internal/models"
)

// ===============================
// Listagens de agenda
// ===============================

type AppointmentListItem struct {
	ID               uint      `json:"id"`
	PublicID         string    `json:"public_id"`
	StartTime        time.Time `json:"start_time"`
	EndTime          time.Time `json:"end_time"`
	DurationMin      int       `json:"duration_min"`
	Status           string    `json:"status"`
	Notes            string    `json:"notes,omitempty"`
	ProfessionalID   uint      `json:"professional_id"`
	ProfessionalName string    `json:"professional_name"`
	ServiceID        uint      `json:"service_id"`
	ServiceName      string    `json:"service_name"`
	ClientID         uint      `json:"client_id"`
	ClientName       string    `json:"client_name"`
	ClientPhone      string    `json:"client_phone"`
}

func ToAppointmentListItem(ap models.Appointment) AppointmentListItem {
	return AppointmentListItem{
		ID:               ap.ID,
		PublicID:         ap.PublicID.String(),
		StartTime:        ap.StartTime,
		EndTime:          ap.EndTime,
		DurationMin:      ap.DurationMin,
		Status:           ap.Status,
		Notes:            ap.Notes,
		ProfessionalID:   ap.ProfessionalID,
		ProfessionalName: ap.Professional.Name,
		ServiceID:        ap.ServiceID,
		ServiceName:      ap.Service.Name,
		ClientID:         ap.ClientID,
		ClientName:       ap.Client.Name,
		ClientPhone:      ap.Client.Phone,
	}
}

func ToAppointmentList(aps []models.Appointment) []AppointmentListItem {
	out := make([]AppointmentListItem, 0, len(aps))
	for _, ap := range aps {
		out = append(out, ToAppointmentListItem(ap))
	}
	return out
}
