package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vgpsi/clinic-scheduler/internal/audit"
	"github.com/vgpsi/clinic-scheduler/internal/clock"
	"github.com/vgpsi/clinic-scheduler/internal/domain/schedule"
	"github.com/vgpsi/clinic-scheduler/internal/httperr"
	"github.com/vgpsi/clinic-scheduler/internal/models"
	"github.com/vgpsi/clinic-scheduler/internal/store"
)

// ======================================================
// INPUT
// ======================================================

type CreateInput struct {
	PatientID          string
	Date               string
	Time               string
	ConsultationTypeID string
}

// ======================================================
// USE CASE
// ======================================================

type Create struct {
	store store.Store
	audit audit.Recorder
	clock clock.Clock
}

func NewCreate(store store.Store, audit audit.Recorder, clock clock.Clock) *Create {
	return &Create{store: store, audit: audit, clock: clock}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *Create) Execute(ctx context.Context, in CreateInput) (*models.Appointment, error) {

	if !clock.ValidDate(in.Date) || !clock.ValidTime(in.Time) {
		return nil, httperr.ErrValidation("invalid_date_or_time", "Data ou hora inválida.")
	}

	patients, err := uc.store.Patients(ctx)
	if err != nil {
		return nil, err
	}
	patient := store.FindPatient(patients, in.PatientID)
	if patient == nil {
		return nil, httperr.ErrValidation("patient_not_found", "Paciente não encontrado.")
	}

	types, err := uc.store.ConsultationTypes(ctx)
	if err != nil {
		return nil, err
	}
	ct := store.FindConsultationType(types, in.ConsultationTypeID)
	if ct == nil {
		return nil, httperr.ErrValidation("consultation_type_not_found", "Tipo de consulta não encontrado.")
	}

	if err := validateSlotTiming(uc.clock, in.Date, in.Time); err != nil {
		return nil, err
	}

	apps, err := uc.store.Appointments(ctx)
	if err != nil {
		return nil, err
	}

	if schedule.HasConflict(apps, in.Date, in.Time, "") {
		return nil, httperr.ErrConflict("time_conflict", "Horário já ocupado.")
	}

	ap := models.Appointment{
		ID:          uuid.NewString(),
		PatientID:   patient.ID,
		PatientName: patient.Name,
		Date:        in.Date,
		Time:        in.Time,
		Status:      string(schedule.InitialStatus()),

		ConsultationTypeID: ct.ID,
		Price:              ct.Price, // snapshot; immune to later price edits

		ReminderSent: false,
		CreatedAt:    uc.clock.Now().Format(time.RFC3339),
	}

	next := append(apps, ap)
	if err := uc.store.ReplaceAppointments(ctx, next); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: ap.ID,
		Metadata: map[string]any{"patient": ap.PatientName, "date": ap.Date, "time": ap.Time},
	})

	return &ap, nil
}

// validateSlotTiming rejects past dates, past times on today and
// holiday-blocked days.
func validateSlotTiming(c clock.Clock, date, hm string) error {
	today := clock.Today(c)

	if date < today {
		return httperr.ErrTemporal("past_date", "A data não pode ser anterior a hoje.")
	}

	if date == today {
		now := c.Now()
		if clock.MinuteOfDay(hm) < now.Hour()*60+now.Minute() {
			return httperr.ErrTemporal("past_time", "O horário não pode ser anterior ao atual.")
		}
	}

	if name, ok := schedule.HolidayName(date); ok {
		return httperr.ErrValidation("holiday_blocked", "Feriado: "+name+".")
	}

	return nil
}
