package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vgpsi/clinic-scheduler/internal/models"
)

func TestHasConflict(t *testing.T) {
	apps := []models.Appointment{
		{ID: "a", Date: "2026-09-02", Time: "09:00", Status: string(StatusScheduled)},
		{ID: "b", Date: "2026-09-02", Time: "10:00", Status: string(StatusCanceled)},
	}

	assert.True(t, HasConflict(apps, "2026-09-02", "09:00", ""))
	assert.False(t, HasConflict(apps, "2026-09-02", "09:30", ""))
	assert.False(t, HasConflict(apps, "2026-09-03", "09:00", ""))

	// slot de consulta cancelada volta a ficar livre
	assert.False(t, HasConflict(apps, "2026-09-02", "10:00", ""))

	// reagendamento não conflita consigo mesmo
	assert.False(t, HasConflict(apps, "2026-09-02", "09:00", "a"))
}

func TestDomainActions(t *testing.T) {
	ap := &models.Appointment{ID: "a", Status: string(StatusScheduled)}

	assert.NoError(t, Cancel(ap))
	assert.Equal(t, string(StatusCanceled), ap.Status)

	// cancelada não pode ser concluída nem cancelada de novo
	assert.Error(t, Complete(ap))
	assert.Error(t, Cancel(ap))

	ap2 := &models.Appointment{ID: "b", Status: string(StatusScheduled)}
	assert.NoError(t, Complete(ap2))
	assert.Equal(t, string(StatusCompleted), ap2.Status)

	// lembrete é idempotente e independe do status
	MarkReminderSent(ap2)
	MarkReminderSent(ap2)
	assert.True(t, ap2.ReminderSent)
}
