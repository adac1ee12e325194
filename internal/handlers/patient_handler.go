package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vgpsi/clinic-scheduler/internal/httperr"
	"github.com/vgpsi/clinic-scheduler/internal/httpresp"
	"github.com/vgpsi/clinic-scheduler/internal/models"
	ucNotes "github.com/vgpsi/clinic-scheduler/internal/usecase/notes"
	ucPatient "github.com/vgpsi/clinic-scheduler/internal/usecase/patient"
)

// ======================================================
// HANDLER
// ======================================================

type PatientHandler struct {
	listUC          *ucPatient.List
	createUC        *ucPatient.Create
	updateUC        *ucPatient.Update
	saveAnamnesisUC *ucPatient.SaveAnamnesis
	listNotesUC     *ucNotes.ListByPatient
}

func NewPatientHandler(
	listUC *ucPatient.List,
	createUC *ucPatient.Create,
	updateUC *ucPatient.Update,
	saveAnamnesisUC *ucPatient.SaveAnamnesis,
	listNotesUC *ucNotes.ListByPatient,
) *PatientHandler {
	return &PatientHandler{
		listUC:          listUC,
		createUC:        createUC,
		updateUC:        updateUC,
		saveAnamnesisUC: saveAnamnesisUC,
		listNotesUC:     listNotesUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreatePatientRequest struct {
	Name        string `json:"name" binding:"required"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	DateOfBirth string `json:"date_of_birth"`
}

type UpdatePatientRequest struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	DateOfBirth string `json:"date_of_birth"`
	Address     string `json:"address"`
	Occupation  string `json:"occupation"`
	IsActive    *bool  `json:"is_active"`
}

// ======================================================
// PACIENTES
// ======================================================

func (h *PatientHandler) List(c *gin.Context) {
	patients, err := h.listUC.Execute(c.Request.Context())
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}
	httpresp.List(c, patients)
}

func (h *PatientHandler) Create(c *gin.Context) {
	var req CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	p, err := h.createUC.Execute(c.Request.Context(), ucPatient.CreateInput{
		Name:        req.Name,
		Phone:       req.Phone,
		Email:       req.Email,
		DateOfBirth: req.DateOfBirth,
	})
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}

	httpresp.Created(c, p)
}

func (h *PatientHandler) Update(c *gin.Context) {
	var req UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	p, err := h.updateUC.Execute(c.Request.Context(), ucPatient.UpdateInput{
		ID:          c.Param("id"),
		Name:        req.Name,
		Phone:       req.Phone,
		Email:       req.Email,
		DateOfBirth: req.DateOfBirth,
		Address:     req.Address,
		Occupation:  req.Occupation,
		IsActive:    req.IsActive,
	})
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}

	c.JSON(200, p)
}

// ======================================================
// ANAMNESE
// ======================================================

func (h *PatientHandler) SaveAnamnesis(c *gin.Context) {
	var form models.Anamnesis
	if err := c.ShouldBindJSON(&form); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	p, err := h.saveAnamnesisUC.Execute(c.Request.Context(), c.Param("id"), form)
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// ======================================================
// ANOTAÇÕES DO PACIENTE
// ======================================================

func (h *PatientHandler) ListNotes(c *gin.Context) {
	notes, err := h.listNotesUC.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}
	httpresp.List(c, notes)
}
