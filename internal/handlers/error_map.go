package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/Williamhssilva/agendapro/internal/domain/booking"
	"github.com/Williamhssilva/agendapro/internal/httperr"
)

// writeBookingError traduz a taxonomia do núcleo para HTTP.
//
// Conflito de negócio e exaustão de concorrência respondem 409 com
// códigos distintos: o primeiro é rotina, o segundo é contenção e
// merece log de alerta.
func writeBookingError(c *gin.Context, log *zap.Logger, err error) {
	switch {
	case domain.IsValidation(err):
		httperr.BadRequest(c, "invalid_request", err.Error())

	case domain.IsNotFound(err):
		httperr.NotFound(c, "not_found", err.Error())

	case domain.IsInvalidTransition(err):
		httperr.BadRequest(c, "invalid_state", err.Error())

	case domain.IsConflict(err):
		httperr.Conflict(c, "time_conflict", "Conflito de horário.")

	case domain.IsConcurrency(err):
		log.Warn("booking concurrency exhausted", zap.Error(err))
		httperr.Conflict(c, "concurrency_conflict", "Muitas tentativas simultâneas, tente novamente.")

	default:
		log.Error("booking operation failed", zap.Error(err))
		httperr.Internal(c, "internal_error", "Erro interno.")
	}
}
