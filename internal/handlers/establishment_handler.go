package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Williamhssilva/agendapro/internal/httperr"
	"github.com/Williamhssilva/agendapro/internal/middleware"
	"github.com/Williamhssilva/agendapro/internal/models"
	"github.com/Williamhssilva/agendapro/internal/schedule"
	"github.com/Williamhssilva/agendapro/internal/timezone"
)

type EstablishmentHandler struct {
	db *gorm.DB
}

func NewEstablishmentHandler(db *gorm.DB) *EstablishmentHandler {
	return &EstablishmentHandler{db: db}
}

type UpdateEstablishmentRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`

	Timezone          *string `json:"timezone"`
	MinLeadMinutes    *int    `json:"min_lead_minutes"`
	SlotBufferMinutes *int    `json:"slot_buffer_minutes"`

	WeeklyHours *schedule.WeeklyHours `json:"weekly_hours"`
}

func (h *EstablishmentHandler) GetMeEstablishment(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)

	var estab models.Establishment
	if err := h.db.First(&estab, establishmentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "establishment_not_found", "Estabelecimento não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_establishment", "Erro ao buscar dados do estabelecimento.")
		return
	}

	c.JSON(http.StatusOK, estab)
}

func (h *EstablishmentHandler) UpdateMeEstablishment(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)

	var estab models.Establishment
	if err := h.db.First(&estab, establishmentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "establishment_not_found", "Estabelecimento não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_establishment", "Erro ao buscar dados do estabelecimento.")
		return
	}

	var req UpdateEstablishmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	if req.Name != nil {
		estab.Name = *req.Name
	}
	if req.Phone != nil {
		estab.Phone = *req.Phone
	}
	if req.Address != nil {
		estab.Address = *req.Address
	}

	if req.Timezone != nil {
		if !timezone.IsValid(*req.Timezone) {
			httperr.BadRequest(c, "invalid_timezone", "Timezone IANA inválido.")
			return
		}
		estab.Timezone = *req.Timezone
	}

	if req.MinLeadMinutes != nil {
		if *req.MinLeadMinutes < 0 {
			httperr.BadRequest(c, "invalid_min_lead", "Antecedência mínima deve ser zero ou positiva (em minutos).")
			return
		}
		// grava o que foi pedido; o piso de 120min é aplicado na avaliação
		estab.MinLeadMinutes = *req.MinLeadMinutes
	}

	if req.SlotBufferMinutes != nil {
		if *req.SlotBufferMinutes < 0 {
			httperr.BadRequest(c, "invalid_slot_buffer", "Intervalo entre atendimentos deve ser zero ou positivo.")
			return
		}
		estab.SlotBufferMinutes = *req.SlotBufferMinutes
	}

	if req.WeeklyHours != nil {
		if err := req.WeeklyHours.Validate(); err != nil {
			httperr.BadRequest(c, "invalid_weekly_hours", err.Error())
			return
		}
		estab.WeeklyHours = *req.WeeklyHours
	}

	if err := h.db.Save(&estab).Error; err != nil {
		httperr.Internal(c, "failed_to_update_establishment", "Erro ao salvar as configurações do estabelecimento.")
		return
	}

	c.JSON(http.StatusOK, estab)
}
