package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	domain "github.com/Williamhssilva/agendapro/internal/domain/booking"
	"github.com/Williamhssilva/agendapro/internal/httperr"
	"github.com/Williamhssilva/agendapro/internal/models"
	ucBooking "github.com/Williamhssilva/agendapro/internal/usecase/booking"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db           *gorm.DB
	availability *ucBooking.GetAvailability
	create       *ucBooking.Create
	log          *zap.Logger
}

func NewPublicHandler(
	db *gorm.DB,
	availability *ucBooking.GetAvailability,
	create *ucBooking.Create,
	log *zap.Logger,
) *PublicHandler {
	return &PublicHandler{
		db:           db,
		availability: availability,
		create:       create,
		log:          log,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateAppointmentRequest struct {
	ProfessionalID uint   `json:"professional_id" binding:"required"`
	ServiceID      uint   `json:"service_id" binding:"required"`
	ClientName     string `json:"client_name" binding:"required"`
	ClientPhone    string `json:"client_phone" binding:"required"`
	ClientEmail    string `json:"client_email"`
	Date           string `json:"date" binding:"required"` // YYYY-MM-DD
	Time           string `json:"time" binding:"required"` // HH:mm
	Notes          string `json:"notes"`
}

func (h *PublicHandler) findBySlug(c *gin.Context) (*models.Establishment, bool) {
	slug := c.Param("slug")

	var estab models.Establishment
	if err := h.db.Where("slug = ?", slug).First(&estab).Error; err != nil {
		httperr.NotFound(c, "establishment_not_found", "Estabelecimento não encontrado.")
		return nil, false
	}
	return &estab, true
}

////////////////////////////////////////////////////////
// SERVICES
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	estab, ok := h.findBySlug(c)
	if !ok {
		return
	}

	category := strings.TrimSpace(strings.ToLower(c.Query("category")))
	query := strings.TrimSpace(strings.ToLower(c.Query("query")))

	q := h.db.Where("establishment_id = ? AND active = true", estab.ID)

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"establishment": gin.H{
			"id":      estab.ID,
			"name":    estab.Name,
			"slug":    estab.Slug,
			"phone":   estab.Phone,
			"address": estab.Address,
		},
		"services": services,
	})
}

////////////////////////////////////////////////////////
// PROFESSIONALS
////////////////////////////////////////////////////////

func (h *PublicHandler) ListProfessionals(c *gin.Context) {
	estab, ok := h.findBySlug(c)
	if !ok {
		return
	}

	var pros []models.Professional
	if err := h.db.
		Select("id", "name", "specialty").
		Where("establishment_id = ? AND active = true", estab.ID).
		Order("id ASC").
		Find(&pros).Error; err != nil {

		httperr.Internal(c, "failed_to_list_professionals", "Erro ao listar profissionais.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"professionals": pros})
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	estab, ok := h.findBySlug(c)
	if !ok {
		return
	}

	dateStr := c.Query("date")
	professionalIDStr := c.Query("professional_id")
	serviceIDStr := c.Query("service_id")

	if dateStr == "" || professionalIDStr == "" || serviceIDStr == "" {
		httperr.BadRequest(c, "missing_params", "Data, profissional e serviço são obrigatórios.")
		return
	}

	professionalID, err := strconv.ParseUint(professionalIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_professional_id", "Profissional inválido.")
		return
	}

	serviceID, err := strconv.ParseUint(serviceIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Serviço inválido.")
		return
	}

	date, err := parseDateInEstablishment(estab, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	slots, err := h.availability.Execute(
		c.Request.Context(),
		domain.AvailabilityInput{
			EstablishmentID: estab.ID,
			ProfessionalID:  uint(professionalID),
			ServiceID:       uint(serviceID),
			Date:            date,
		},
	)
	if err != nil {
		writeBookingError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}

////////////////////////////////////////////////////////
// CREATE APPOINTMENT (PUBLIC)
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	estab, ok := h.findBySlug(c)
	if !ok {
		return
	}

	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.create.Execute(
		c.Request.Context(),
		ucBooking.CreateInput{
			EstablishmentID: estab.ID,
			ProfessionalID:  req.ProfessionalID,
			ServiceID:       req.ServiceID,
			ClientName:      req.ClientName,
			ClientPhone:     req.ClientPhone,
			ClientEmail:     req.ClientEmail,
			Date:            req.Date,
			Time:            req.Time,
			Notes:           req.Notes,
			IsStaff:         false,
		},
	)
	if err != nil {
		writeBookingError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"public_id":  ap.PublicID,
		"status":     ap.Status,
		"start_time": ap.StartTime,
		"end_time":   ap.EndTime,
	})
}
