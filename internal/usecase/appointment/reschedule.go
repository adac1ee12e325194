package appointment

import (
	"context"

	"github.com/vgpsi/clinic-scheduler/internal/audit"
	"github.com/vgpsi/clinic-scheduler/internal/clock"
	"github.com/vgpsi/clinic-scheduler/internal/domain/schedule"
	"github.com/vgpsi/clinic-scheduler/internal/httperr"
	"github.com/vgpsi/clinic-scheduler/internal/models"
	"github.com/vgpsi/clinic-scheduler/internal/store"
)

type Reschedule struct {
	store store.Store
	audit audit.Recorder
	clock clock.Clock
}

func NewReschedule(store store.Store, audit audit.Recorder, clock clock.Clock) *Reschedule {
	return &Reschedule{store: store, audit: audit, clock: clock}
}

// Execute moves a scheduled appointment to a new slot. Patient,
// consultation type and the snapshotted price are carried over untouched.
func (uc *Reschedule) Execute(ctx context.Context, appointmentID, newDate, newTime string) (*models.Appointment, error) {

	if !clock.ValidDate(newDate) || !clock.ValidTime(newTime) {
		return nil, httperr.ErrValidation("invalid_date_or_time", "Data ou hora inválida.")
	}

	apps, err := uc.store.Appointments(ctx)
	if err != nil {
		return nil, err
	}

	ap := store.FindAppointment(apps, appointmentID)
	if ap == nil {
		return nil, httperr.ErrValidation("appointment_not_found", "Consulta não encontrada.")
	}

	if ap.Status != string(schedule.StatusScheduled) {
		return nil, httperr.ErrState("invalid_state", "Somente consultas agendadas podem ser reagendadas.")
	}

	if err := validateSlotTiming(uc.clock, newDate, newTime); err != nil {
		return nil, err
	}

	// The appointment's own slot never conflicts with itself.
	if schedule.HasConflict(apps, newDate, newTime, ap.ID) {
		return nil, httperr.ErrConflict("time_conflict", "Horário já ocupado.")
	}

	ap.Date = newDate
	ap.Time = newTime

	if err := uc.store.ReplaceAppointments(ctx, apps); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_rescheduled",
		Entity:   "appointment",
		EntityID: ap.ID,
		Metadata: map[string]any{"date": newDate, "time": newTime},
	})

	out := *ap
	return &out, nil
}
