package appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/vgpsi/clinic-scheduler/internal/audit"
	"github.com/vgpsi/clinic-scheduler/internal/domain/schedule"
	"github.com/vgpsi/clinic-scheduler/internal/httperr"
	"github.com/vgpsi/clinic-scheduler/internal/ledger"
	"github.com/vgpsi/clinic-scheduler/internal/models"
	"github.com/vgpsi/clinic-scheduler/internal/store"
)

// Complete is the administrative completion path, used from the agenda
// when a consultation is settled without the session flow. It emits the
// matching income transaction itself; the lifecycle never writes ledger
// entries on its own.
type Complete struct {
	store  store.Store
	ledger ledger.Ledger
	audit  audit.Recorder
}

func NewComplete(store store.Store, ledger ledger.Ledger, audit audit.Recorder) *Complete {
	return &Complete{store: store, ledger: ledger, audit: audit}
}

func (uc *Complete) Execute(ctx context.Context, appointmentID string) (*models.Appointment, error) {

	apps, err := uc.store.Appointments(ctx)
	if err != nil {
		return nil, err
	}

	ap := store.FindAppointment(apps, appointmentID)
	if ap == nil {
		return nil, httperr.ErrValidation("appointment_not_found", "Consulta não encontrada.")
	}

	if err := schedule.Complete(ap); err != nil {
		return nil, err
	}

	// Lançamento antes do status: uma falha aqui deixa a consulta agendada
	// e a conclusão pode ser repetida.
	tx := models.Transaction{
		ID:          uuid.NewString(),
		Description: "Consulta - " + ap.PatientName,
		Amount:      ap.Price,
		Type:        models.TransactionIncome,
		Date:        ap.Date,
		PatientID:   ap.PatientID,
	}
	if err := uc.ledger.Append(ctx, tx); err != nil {
		return nil, err
	}

	if err := uc.store.ReplaceAppointments(ctx, apps); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_completed",
		Entity:   "appointment",
		EntityID: ap.ID,
		Metadata: map[string]any{"amount": ap.Price},
	})

	out := *ap
	return &out, nil
}
