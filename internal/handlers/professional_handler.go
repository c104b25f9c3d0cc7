package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Williamhssilva/agendapro/internal/httperr"
	"github.com/Williamhssilva/agendapro/internal/middleware"
	"github.com/Williamhssilva/agendapro/internal/models"
	"github.com/Williamhssilva/agendapro/internal/schedule"
)

type ProfessionalHandler struct {
	db *gorm.DB
}

func NewProfessionalHandler(db *gorm.DB) *ProfessionalHandler {
	return &ProfessionalHandler{db: db}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateProfessionalRequest struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Specialty string `json:"specialty"`
}

type UpdateProfessionalRequest struct {
	Name      *string `json:"name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Specialty *string `json:"specialty"`
	Active    *bool   `json:"active"`
}

// ======================================================
// CRUD
// ======================================================

func (h *ProfessionalHandler) List(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)

	var pros []models.Professional
	if err := h.db.
		Where("establishment_id = ?", establishmentID).
		Order("id ASC").
		Find(&pros).Error; err != nil {

		httperr.Internal(c, "failed_to_list_professionals", "Erro ao listar profissionais.")
		return
	}

	c.JSON(http.StatusOK, pros)
}

func (h *ProfessionalHandler) Create(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)

	var req CreateProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	pro := models.Professional{
		EstablishmentID: establishmentID,
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Specialty:       req.Specialty,
		Active:          true,
	}

	if err := h.db.Create(&pro).Error; err != nil {
		httperr.Internal(c, "failed_to_create_professional", "Erro ao criar profissional.")
		return
	}

	c.JSON(http.StatusCreated, pro)
}

func (h *ProfessionalHandler) Update(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)
	id := c.Param("id")

	var pro models.Professional
	if err := h.db.
		Where("id = ? AND establishment_id = ?", id, establishmentID).
		First(&pro).Error; err != nil {

		httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
		return
	}

	var req UpdateProfessionalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.Name != nil {
		pro.Name = *req.Name
	}
	if req.Email != nil {
		pro.Email = *req.Email
	}
	if req.Phone != nil {
		pro.Phone = *req.Phone
	}
	if req.Specialty != nil {
		pro.Specialty = *req.Specialty
	}
	if req.Active != nil {
		// desativar esconde das listagens públicas, nunca apaga histórico
		pro.Active = *req.Active
	}

	if err := h.db.Save(&pro).Error; err != nil {
		httperr.Internal(c, "failed_to_update_professional", "Erro ao atualizar profissional.")
		return
	}

	c.JSON(http.StatusOK, pro)
}

// ======================================================
// HORÁRIO SEMANAL
// ======================================================

func (h *ProfessionalHandler) GetWeeklyHours(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)
	id := c.Param("id")

	var pro models.Professional
	if err := h.db.
		Where("id = ? AND establishment_id = ?", id, establishmentID).
		First(&pro).Error; err != nil {

		httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"weekly_hours": pro.WeeklyHours})
}

func (h *ProfessionalHandler) UpdateWeeklyHours(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)
	id := c.Param("id")

	var pro models.Professional
	if err := h.db.
		Where("id = ? AND establishment_id = ?", id, establishmentID).
		First(&pro).Error; err != nil {

		httperr.NotFound(c, "professional_not_found", "Profissional não encontrado.")
		return
	}

	var req schedule.WeeklyHours
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if err := req.Validate(); err != nil {
		httperr.BadRequest(c, "invalid_weekly_hours", err.Error())
		return
	}

	pro.WeeklyHours = req
	if err := h.db.Save(&pro).Error; err != nil {
		httperr.Internal(c, "failed_to_update_weekly_hours", "Erro ao salvar horário semanal.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"weekly_hours": pro.WeeklyHours})
}
