package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vgpsi/clinic-scheduler/internal/clock"
	"github.com/vgpsi/clinic-scheduler/internal/httperr"
	"github.com/vgpsi/clinic-scheduler/internal/httpresp"
	ucAppointment "github.com/vgpsi/clinic-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC       *ucAppointment.Create
	rescheduleUC   *ucAppointment.Reschedule
	cancelUC       *ucAppointment.Cancel
	completeUC     *ucAppointment.Complete
	listByDateUC   *ucAppointment.ListByDate
	listByMonthUC  *ucAppointment.ListByMonth
	availabilityUC *ucAppointment.GetAvailability
}

func NewAppointmentHandler(
	createUC *ucAppointment.Create,
	rescheduleUC *ucAppointment.Reschedule,
	cancelUC *ucAppointment.Cancel,
	completeUC *ucAppointment.Complete,
	listByDateUC *ucAppointment.ListByDate,
	listByMonthUC *ucAppointment.ListByMonth,
	availabilityUC *ucAppointment.GetAvailability,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC:       createUC,
		rescheduleUC:   rescheduleUC,
		cancelUC:       cancelUC,
		completeUC:     completeUC,
		listByDateUC:   listByDateUC,
		listByMonthUC:  listByMonthUC,
		availabilityUC: availabilityUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	PatientID          string `json:"patient_id" binding:"required"`
	ConsultationTypeID string `json:"consultation_type_id" binding:"required"`
	Date               string `json:"date" binding:"required"`
	Time               string `json:"time" binding:"required"`
}

type RescheduleAppointmentRequest struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	created, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateInput{
		PatientID:          req.PatientID,
		ConsultationTypeID: req.ConsultationTypeID,
		Date:               req.Date,
		Time:               req.Time,
	})
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}

	httpresp.Created(c, created)
}

// ======================================================
// RESCHEDULE
// ======================================================

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	id := c.Param("id")

	var req RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.rescheduleUC.Execute(c.Request.Context(), id, req.Date, req.Time)
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}

	c.JSON(200, ap)
}

// ======================================================
// CANCEL
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	ap, err := h.cancelUC.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}

	c.JSON(200, ap)
}

// ======================================================
// COMPLETE (FORA DO MODO CONSULTA)
// ======================================================

func (h *AppointmentHandler) Complete(c *gin.Context) {
	ap, err := h.completeUC.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}

	c.JSON(200, ap)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}
	if !clock.ValidDate(date) {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	items, err := h.listByDateUC.Execute(c.Request.Context(), date)
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}

	httpresp.List(c, items)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	year, month, ok := yearMonthParams(c)
	if !ok {
		return
	}

	items, err := h.listByMonthUC.Execute(c.Request.Context(), year, month)
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}

	c.JSON(200, gin.H{
		"year":         year,
		"month":        month,
		"appointments": items,
	})
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *AppointmentHandler) AvailabilityByDate(c *gin.Context) {
	date := c.Query("date")
	if date == "" || !clock.ValidDate(date) {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	day, err := h.availabilityUC.Day(c.Request.Context(), date)
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}

	c.JSON(200, day)
}

func (h *AppointmentHandler) AvailabilityByMonth(c *gin.Context) {
	year, month, ok := yearMonthParams(c)
	if !ok {
		return
	}

	days, err := h.availabilityUC.Month(c.Request.Context(), year, month)
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}

	c.JSON(200, gin.H{
		"year":  year,
		"month": month,
		"days":  days,
	})
}

// ======================================================
// HELPERS
// ======================================================

func yearMonthParams(c *gin.Context) (int, int, bool) {
	yearStr := c.Query("year")
	monthStr := c.Query("month")

	if yearStr == "" || monthStr == "" {
		httperr.BadRequest(c, "missing_year_or_month", "Ano e mês são obrigatórios.")
		return 0, 0, false
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Ano inválido.")
		return 0, 0, false
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Mês inválido.")
		return 0, 0, false
	}

	return year, month, true
}
