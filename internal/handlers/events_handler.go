package handlers

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/vgpsi/clinic-scheduler/internal/httperr"
	"github.com/vgpsi/clinic-scheduler/internal/store"
)

// ======================================================
// HANDLER
// ======================================================

// EventsHandler transmite o feed de mudanças das coleções por SSE. O
// cliente recarrega a coleção nomeada em cada evento.
type EventsHandler struct {
	store store.Store
}

func NewEventsHandler(st store.Store) *EventsHandler {
	return &EventsHandler{store: st}
}

func (h *EventsHandler) Stream(c *gin.Context) {
	ctx := c.Request.Context()

	changes, closeSub, err := h.store.Subscribe(ctx)
	if err != nil {
		httperr.Internal(c, "subscribe_failed", "Erro ao assinar o feed de mudanças.")
		return
	}
	defer closeSub()

	c.Stream(func(w io.Writer) bool {
		select {
		case col, ok := <-changes:
			if !ok {
				return false
			}
			c.SSEvent("collection", col)
			return true
		case <-ctx.Done():
			return false
		}
	})
}
