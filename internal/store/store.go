package store

import (
	"context"

	"github.com/vgpsi/clinic-scheduler/internal/models"
)

// Collection names, used as storage keys and change-channel payloads.
const (
	ColAppointments      = "appointments"
	ColPatients          = "patients"
	ColNotes             = "notes"
	ColConsultationTypes = "consultation_types"
	ColAccount           = "account"
)

// Store is the persistence contract for the entity collections: each one
// reads and replaces as a whole, so every mutation is expressed as
// "read current set, derive next set, replace atomically".
type Store interface {
	Appointments(ctx context.Context) ([]models.Appointment, error)
	ReplaceAppointments(ctx context.Context, apps []models.Appointment) error

	Patients(ctx context.Context) ([]models.Patient, error)
	ReplacePatients(ctx context.Context, patients []models.Patient) error

	Notes(ctx context.Context) ([]models.SessionNote, error)
	ReplaceNotes(ctx context.Context, notes []models.SessionNote) error

	ConsultationTypes(ctx context.Context) ([]models.ConsultationType, error)
	ReplaceConsultationTypes(ctx context.Context, types []models.ConsultationType) error

	Account(ctx context.Context) (*models.Account, error)
	SaveAccount(ctx context.Context, acc *models.Account) error

	// Subscribe delivers the name of each collection as it is replaced.
	Subscribe(ctx context.Context) (<-chan string, func() error, error)
}

// FindPatient resolves a patient in a snapshot. Returns nil when absent.
func FindPatient(patients []models.Patient, id string) *models.Patient {
	for i := range patients {
		if patients[i].ID == id {
			return &patients[i]
		}
	}
	return nil
}

// FindConsultationType resolves a consultation type in a snapshot.
func FindConsultationType(types []models.ConsultationType, id string) *models.ConsultationType {
	for i := range types {
		if types[i].ID == id {
			return &types[i]
		}
	}
	return nil
}

// FindAppointment resolves an appointment in a snapshot.
func FindAppointment(apps []models.Appointment, id string) *models.Appointment {
	for i := range apps {
		if apps[i].ID == id {
			return &apps[i]
		}
	}
	return nil
}
