package appointment

import (
	"context"

	"github.com/vgpsi/clinic-scheduler/internal/audit"
	"github.com/vgpsi/clinic-scheduler/internal/domain/schedule"
	"github.com/vgpsi/clinic-scheduler/internal/httperr"
	"github.com/vgpsi/clinic-scheduler/internal/models"
	"github.com/vgpsi/clinic-scheduler/internal/notifylog"
	"github.com/vgpsi/clinic-scheduler/internal/store"
)

type MarkReminderSent struct {
	store store.Store
	log   notifylog.Log
	audit audit.Recorder
}

func NewMarkReminderSent(store store.Store, log notifylog.Log, audit audit.Recorder) *MarkReminderSent {
	return &MarkReminderSent{store: store, log: log, audit: audit}
}

// Execute flips the reminder flag and appends the notification log entry.
// The flag set is idempotent and independent of appointment status.
func (uc *MarkReminderSent) Execute(ctx context.Context, appointmentID string) (*models.Appointment, error) {

	apps, err := uc.store.Appointments(ctx)
	if err != nil {
		return nil, err
	}

	ap := store.FindAppointment(apps, appointmentID)
	if ap == nil {
		return nil, httperr.ErrValidation("appointment_not_found", "Consulta não encontrada.")
	}

	alreadySent := ap.ReminderSent
	schedule.MarkReminderSent(ap)

	if err := uc.store.ReplaceAppointments(ctx, apps); err != nil {
		return nil, err
	}

	if !alreadySent {
		entry := models.NotificationLog{
			PatientName: ap.PatientName,
			Type:        "sms",
			Status:      "sent",
			Details:     "Enviado via Verificação Diária.",
		}
		if err := uc.log.Append(ctx, entry); err != nil {
			return nil, err
		}

		uc.audit.Dispatch(audit.Event{
			Action:   "reminder_sent",
			Entity:   "appointment",
			EntityID: ap.ID,
			Metadata: map[string]any{"patient": ap.PatientName},
		})
	}

	out := *ap
	return &out, nil
}
