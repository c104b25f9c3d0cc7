package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	domain "github.com/Williamhssilva/agendapro/internal/domain/booking"
	"github.com/Williamhssilva/agendapro/internal/httperr"
	"github.com/Williamhssilva/agendapro/internal/httpresp"
	"github.com/Williamhssilva/agendapro/internal/middleware"
	"github.com/Williamhssilva/agendapro/internal/models"
	ucBooking "github.com/Williamhssilva/agendapro/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	db           *gorm.DB
	create       *ucBooking.Create
	reschedule   *ucBooking.Reschedule
	setStatus    *ucBooking.SetStatus
	listByDate   *ucBooking.ListByDate
	listByMonth  *ucBooking.ListByMonth
	availability *ucBooking.GetAvailability
	log          *zap.Logger
}

func NewBookingHandler(
	db *gorm.DB,
	create *ucBooking.Create,
	reschedule *ucBooking.Reschedule,
	setStatus *ucBooking.SetStatus,
	listByDate *ucBooking.ListByDate,
	listByMonth *ucBooking.ListByMonth,
	availability *ucBooking.GetAvailability,
	log *zap.Logger,
) *BookingHandler {
	return &BookingHandler{
		db:           db,
		create:       create,
		reschedule:   reschedule,
		setStatus:    setStatus,
		listByDate:   listByDate,
		listByMonth:  listByMonth,
		availability: availability,
		log:          log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ProfessionalID uint   `json:"professional_id" binding:"required"`
	ServiceID      uint   `json:"service_id" binding:"required"`
	ClientName     string `json:"client_name" binding:"required"`
	ClientPhone    string `json:"client_phone" binding:"required"`
	ClientEmail    string `json:"client_email"`
	Date           string `json:"date" binding:"required"` // YYYY-MM-DD
	Time           string `json:"time" binding:"required"` // HH:mm
	Notes          string `json:"notes"`
}

type RescheduleAppointmentRequest struct {
	ProfessionalID uint   `json:"professional_id"`
	Date           string `json:"date" binding:"required"`
	Time           string `json:"time" binding:"required"`
}

type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// CREATE (STAFF)
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucBooking.CreateInput{
		EstablishmentID: establishmentID,
		ProfessionalID:  req.ProfessionalID,
		ServiceID:       req.ServiceID,
		ClientName:      req.ClientName,
		ClientPhone:     req.ClientPhone,
		ClientEmail:     req.ClientEmail,
		Date:            req.Date,
		Time:            req.Time,
		Notes:           req.Notes,
		IsStaff:         true,
		UserID:          &userID,
	})
	if err != nil {
		writeBookingError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// ======================================================
// RESCHEDULE
// ======================================================

func (h *BookingHandler) Reschedule(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)

	appointmentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var req RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.reschedule.Execute(c.Request.Context(), ucBooking.RescheduleInput{
		EstablishmentID:   establishmentID,
		AppointmentID:     uint(appointmentID),
		NewProfessionalID: req.ProfessionalID,
		NewDate:           req.Date,
		NewTime:           req.Time,
		UserID:            &userID,
	})
	if err != nil {
		writeBookingError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

// ======================================================
// STATUS
// ======================================================

func (h *BookingHandler) applyStatus(c *gin.Context, status string) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)

	appointmentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	ap, err := h.setStatus.Execute(c.Request.Context(), ucBooking.SetStatusInput{
		EstablishmentID: establishmentID,
		AppointmentID:   uint(appointmentID),
		Status:          status,
		UserID:          &userID,
	})
	if err != nil {
		writeBookingError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *BookingHandler) Confirm(c *gin.Context) {
	h.applyStatus(c, string(domain.StatusConfirmed))
}

func (h *BookingHandler) Complete(c *gin.Context) {
	h.applyStatus(c, string(domain.StatusCompleted))
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	h.applyStatus(c, string(domain.StatusCanceled))
}

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}
	h.applyStatus(c, req.Status)
}

// ======================================================
// AVAILABILITY (STAFF)
// ======================================================

func (h *BookingHandler) Availability(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)

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

	var estab models.Establishment
	if err := h.db.First(&estab, establishmentID).Error; err != nil {
		httperr.Internal(c, "establishment_not_found", "Estabelecimento não encontrado.")
		return
	}

	date, err := parseDateInEstablishment(&estab, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	slots, err := h.availability.Execute(
		c.Request.Context(),
		domain.AvailabilityInput{
			EstablishmentID: establishmentID,
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

// ======================================================
// LIST
// ======================================================

func (h *BookingHandler) ListByDate(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	var professionalID uint
	if p := c.Query("professional_id"); p != "" {
		v, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_professional_id", "Profissional inválido.")
			return
		}
		professionalID = uint(v)
	}

	items, err := h.listByDate.Execute(c.Request.Context(), ucBooking.ListByDateInput{
		EstablishmentID: establishmentID,
		ProfessionalID:  professionalID,
		Date:            dateStr,
	})
	if err != nil {
		writeBookingError(c, h.log, err)
		return
	}

	httpresp.List(c, items)
}

func (h *BookingHandler) ListByMonth(c *gin.Context) {
	establishmentID := c.MustGet(middleware.ContextEstablishmentID).(uint)

	yearStr := c.Query("year")
	monthStr := c.Query("month")
	if yearStr == "" || monthStr == "" {
		httperr.BadRequest(c, "missing_year_or_month", "Ano e mês são obrigatórios.")
		return
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_year", "Ano inválido.")
		return
	}
	month, err := strconv.Atoi(monthStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_month", "Mês inválido.")
		return
	}

	var professionalID uint
	if p := c.Query("professional_id"); p != "" {
		v, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_professional_id", "Profissional inválido.")
			return
		}
		professionalID = uint(v)
	}

	items, err := h.listByMonth.Execute(c.Request.Context(), ucBooking.ListByMonthInput{
		EstablishmentID: establishmentID,
		ProfessionalID:  professionalID,
		Year:            year,
		Month:           month,
	})
	if err != nil {
		writeBookingError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":         year,
		"month":        month,
		"appointments": items,
	})
}
