package appointment

import (
	"context"

	"github.com/vgpsi/clinic-scheduler/internal/audit"
	"github.com/vgpsi/clinic-scheduler/internal/domain/schedule"
	"github.com/vgpsi/clinic-scheduler/internal/httperr"
	"github.com/vgpsi/clinic-scheduler/internal/models"
	"github.com/vgpsi/clinic-scheduler/internal/store"
)

type Cancel struct {
	store store.Store
	audit audit.Recorder
}

func NewCancel(store store.Store, audit audit.Recorder) *Cancel {
	return &Cancel{store: store, audit: audit}
}

func (uc *Cancel) Execute(ctx context.Context, appointmentID string) (*models.Appointment, error) {

	apps, err := uc.store.Appointments(ctx)
	if err != nil {
		return nil, err
	}

	ap := store.FindAppointment(apps, appointmentID)
	if ap == nil {
		return nil, httperr.ErrValidation("appointment_not_found", "Consulta não encontrada.")
	}

	if err := schedule.Cancel(ap); err != nil {
		return nil, err
	}

	if err := uc.store.ReplaceAppointments(ctx, apps); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_canceled",
		Entity:   "appointment",
		EntityID: ap.ID,
	})

	out := *ap
	return &out, nil
}
