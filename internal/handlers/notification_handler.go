package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vgpsi/clinic-scheduler/internal/httperr"
	"github.com/vgpsi/clinic-scheduler/internal/notifylog"
	ucAppointment "github.com/vgpsi/clinic-scheduler/internal/usecase/appointment"
	ucNotification "github.com/vgpsi/clinic-scheduler/internal/usecase/notification"
)

// ======================================================
// HANDLER
// ======================================================

type NotificationHandler struct {
	seq            *ucNotification.Sequencer
	markReminderUC *ucAppointment.MarkReminderSent
	log            notifylog.Log
}

func NewNotificationHandler(
	seq *ucNotification.Sequencer,
	markReminderUC *ucAppointment.MarkReminderSent,
	log notifylog.Log,
) *NotificationHandler {
	return &NotificationHandler{
		seq:            seq,
		markReminderUC: markReminderUC,
		log:            log,
	}
}

// ======================================================
// SEQUÊNCIA PÓS-LOGIN
// ======================================================

func (h *NotificationHandler) Start(c *gin.Context) {
	notice, err := h.seq.Start(c.Request.Context())
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}
	h.writeNotice(c, notice)
}

func (h *NotificationHandler) Current(c *gin.Context) {
	h.writeNotice(c, h.seq.Current())
}

func (h *NotificationHandler) Dismiss(c *gin.Context) {
	notice, err := h.seq.Dismiss(c.Request.Context())
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}
	h.writeNotice(c, notice)
}

// ======================================================
// LEMBRETES
// ======================================================

func (h *NotificationHandler) MarkReminderSent(c *gin.Context) {
	ap, err := h.markReminderUC.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.WriteBusiness(c, err)
		return
	}
	c.JSON(http.StatusOK, ap)
}

// ======================================================
// HISTÓRICO
// ======================================================

func (h *NotificationHandler) ListLog(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	entries, err := h.log.Recent(c.Request.Context(), limit)
	if err != nil {
		httperr.Internal(c, "notification_log_failed", "Erro ao listar notificações.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": entries})
}

// ======================================================
// HELPERS
// ======================================================

func (h *NotificationHandler) writeNotice(c *gin.Context, notice *ucNotification.Notice) {
	if notice == nil {
		c.JSON(http.StatusOK, gin.H{"done": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"done": false, "notice": notice})
}
