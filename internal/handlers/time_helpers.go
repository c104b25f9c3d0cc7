package handlers

import (
	"time"

	"github.com/Williamhssilva/agendapro/internal/models"
	"github.com/Williamhssilva/agendapro/internal/timezone"
)

// resolve o fuso oficial do estabelecimento
func locationFromEstablishment(estab *models.Establishment) *time.Location {
	if estab != nil {
		return timezone.Location(estab.Timezone)
	}
	return timezone.Location("")
}

func parseDateInEstablishment(estab *models.Establishment, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		locationFromEstablishment(estab),
	)
}
