package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vgpsi/clinic-scheduler/internal/httperr"
	"github.com/vgpsi/clinic-scheduler/internal/httpresp"
	ucNotes "github.com/vgpsi/clinic-scheduler/internal/usecase/notes"
	ucSession "github.com/vgpsi/clinic-scheduler/internal/usecase/session"
)

// ======================================================
// HANDLER
// ======================================================

// SessionHandler expõe o modo consulta: uma única sessão viva por vez,
// controlada pelo Controller.
type SessionHandler struct {
	controller *ucSession.Controller
	saveNoteUC *ucNotes.Save
	editNoteUC *ucNotes.Edit
}

func NewSessionHandler(controller *ucSession.Controller, saveNoteUC *ucNotes.Save, editNoteUC *ucNotes.Edit) *SessionHandler {
	return &SessionHandler{
		controller: controller,
		saveNoteUC: saveNoteUC,
		editNoteUC: editNoteUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type OpenSessionRequest struct {
	PatientID string `json:"patient_id" binding:"required"`
}

type ConfirmPaymentRequest struct {
	Method string `json:"method"` // vazio assume Pix
}

type CloseReceiptRequest struct {
	Generate bool `json:"generate"`
}

type SaveSessionNoteRequest struct {
	PatientID  string `json:"patient_id" binding:"required"`
	Content    string `json:"content" binding:"required"`
	Evaluation string `json:"evaluation"`
}

type EditSessionNoteRequest struct {
	Content string `json:"content" binding:"required"`

	// Avaliação ausente mantém a original; string vazia limpa.
	Evaluation *string `json:"evaluation"`
}

// ======================================================
// CICLO DA SESSÃO
// ======================================================

func (h *SessionHandler) Open(c *gin.Context) {
	var req OpenSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if err := h.controller.Open(c.Request.Context(), req.PatientID); err != nil {
		httperr.WriteBusiness(c, err)
		return
	}

	h.writeState(c)
}

func (h *SessionHandler) Start(c *gin.Context) {
	if err := h.controller.Start(c.Request.Context()); err != nil {
		httperr.WriteBusiness(c, err)
		return
	}
	h.writeState(c)
}

func (h *SessionHandler) End(c *gin.Context) {
	if err := h.controller.End(c.Request.Context()); err != nil {
		httperr.WriteBusiness(c, err)
		return
	}
	h.writeState(c)
}

func (h *SessionHandler) Finalize(c *gin.Context) {
	if err := h.controller.RequestFinalize(c.Request.Context()); err != nil {
		httperr.WriteBusiness(c, err)
		return
	}
	h.writeState(c)
}

func (h *SessionHandler) ConfirmPayment(c *gin.Context) {
	var req ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}
	if req.Method == "" {
		req.Method = "Pix"
	}

	receipt, err := h.controller.ConfirmPayment(c.Request.Context(), req.Method)
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}

	_, charge, _ := h.controller.Receipt()

	c.JSON(http.StatusOK, gin.H{
		"state":   h.controller.State(),
		"receipt": receipt,
		"charge":  charge,
	})
}

func (h *SessionHandler) CloseReceipt(c *gin.Context) {
	var req CloseReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if err := h.controller.CloseReceipt(c.Request.Context(), req.Generate); err != nil {
		httperr.WriteBusiness(c, err)
		return
	}
	h.writeState(c)
}

// Close sai do modo consulta de qualquer estado. Nunca falha.
func (h *SessionHandler) Close(c *gin.Context) {
	h.controller.Close(c.Request.Context())
	h.writeState(c)
}

func (h *SessionHandler) State(c *gin.Context) {
	h.writeState(c)
}

func (h *SessionHandler) Completeness(c *gin.Context) {
	comp, err := h.controller.Completeness(c.Request.Context())
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}
	c.JSON(http.StatusOK, comp)
}

// ======================================================
// ANOTAÇÕES
// ======================================================

// SaveNote grava a anotação da sessão e, quando há consulta aberta para o
// mesmo paciente, vincula a anotação a ela.
func (h *SessionHandler) SaveNote(c *gin.Context) {
	var req SaveSessionNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	appointmentID := ""
	if ap, ok := h.controller.TodayAppointment(); ok && ap.PatientID == req.PatientID {
		appointmentID = ap.ID
	}

	note, err := h.saveNoteUC.Execute(c.Request.Context(), ucNotes.SaveInput{
		PatientID:     req.PatientID,
		Content:       req.Content,
		Evaluation:    req.Evaluation,
		AppointmentID: appointmentID,
	})
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}

	httpresp.Created(c, note)
}

func (h *SessionHandler) EditNote(c *gin.Context) {
	var req EditSessionNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	note, err := h.editNoteUC.Execute(c.Request.Context(), ucNotes.EditInput{
		NoteID:     c.Param("id"),
		Content:    req.Content,
		Evaluation: req.Evaluation,
	})
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}

	c.JSON(200, note)
}

// ======================================================
// HELPERS
// ======================================================

func (h *SessionHandler) writeState(c *gin.Context) {
	out := gin.H{
		"state":           h.controller.State(),
		"elapsed_seconds": int(h.controller.Elapsed().Seconds()),
	}
	if ap, ok := h.controller.TodayAppointment(); ok {
		out["appointment"] = ap
	}
	c.JSON(http.StatusOK, out)
}
