package patient

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/vgpsi/clinic-scheduler/internal/audit"
	"github.com/vgpsi/clinic-scheduler/internal/clock"
	"github.com/vgpsi/clinic-scheduler/internal/domain/anamnesis"
	"github.com/vgpsi/clinic-scheduler/internal/httperr"
	"github.com/vgpsi/clinic-scheduler/internal/models"
	"github.com/vgpsi/clinic-scheduler/internal/store"
)

type List struct {
	Store store.Store
}

func (uc *List) Execute(ctx context.Context) ([]models.Patient, error) {
	all, err := uc.Store.Patients(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all, nil
}

type Create struct {
	Store store.Store
	Audit audit.Recorder
	Clock clock.Clock
}

type CreateInput struct {
	Name        string
	Phone       string
	Email       string
	DateOfBirth string // "2006-01-02", opcional
}

func (uc *Create) Execute(ctx context.Context, in CreateInput) (*models.Patient, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, httperr.ErrValidation("missing_name", "Informe o nome do paciente.")
	}
	if in.DateOfBirth != "" && !clock.ValidDate(in.DateOfBirth) {
		return nil, httperr.ErrValidation("invalid_birth_date", "Data de nascimento inválida. Use o formato AAAA-MM-DD.")
	}

	all, err := uc.Store.Patients(ctx)
	if err != nil {
		return nil, err
	}

	p := models.Patient{
		ID:          uuid.NewString(),
		Name:        name,
		Phone:       strings.TrimSpace(in.Phone),
		Email:       strings.TrimSpace(in.Email),
		DateOfBirth: in.DateOfBirth,
		IsActive:    true,
		JoinDate:    clock.Today(uc.Clock),
	}
	all = append(all, p)

	if err := uc.Store.ReplacePatients(ctx, all); err != nil {
		return nil, err
	}

	uc.Audit.Dispatch(audit.Event{
		Action:   "patient_created",
		Entity:   "patient",
		EntityID: p.ID,
		Metadata: map[string]any{"name": p.Name},
	})

	return &p, nil
}

type Update struct {
	Store store.Store
	Audit audit.Recorder
}

type UpdateInput struct {
	ID          string
	Name        string
	Phone       string
	Email       string
	DateOfBirth string
	Address     string
	Occupation  string
	IsActive    *bool
}

func (uc *Update) Execute(ctx context.Context, in UpdateInput) (*models.Patient, error) {
	if in.DateOfBirth != "" && !clock.ValidDate(in.DateOfBirth) {
		return nil, httperr.ErrValidation("invalid_birth_date", "Data de nascimento inválida. Use o formato AAAA-MM-DD.")
	}

	all, err := uc.Store.Patients(ctx)
	if err != nil {
		return nil, err
	}

	var updated *models.Patient
	for i := range all {
		if all[i].ID != in.ID {
			continue
		}
		if name := strings.TrimSpace(in.Name); name != "" {
			all[i].Name = name
		}
		if in.Phone != "" {
			all[i].Phone = strings.TrimSpace(in.Phone)
		}
		if in.Email != "" {
			all[i].Email = strings.TrimSpace(in.Email)
		}
		if in.DateOfBirth != "" {
			all[i].DateOfBirth = in.DateOfBirth
		}
		if in.Address != "" {
			all[i].Address = strings.TrimSpace(in.Address)
		}
		if in.Occupation != "" {
			all[i].Occupation = strings.TrimSpace(in.Occupation)
		}
		if in.IsActive != nil {
			all[i].IsActive = *in.IsActive
		}
		updated = &all[i]
		break
	}
	if updated == nil {
		return nil, httperr.ErrValidation("patient_not_found", "Paciente não encontrado.")
	}

	if err := uc.Store.ReplacePatients(ctx, all); err != nil {
		return nil, err
	}

	uc.Audit.Dispatch(audit.Event{
		Action:   "patient_updated",
		Entity:   "patient",
		EntityID: updated.ID,
	})

	out := *updated
	return &out, nil
}

// SaveAnamnesis substitui a ficha de anamnese do paciente. O uso de
// substâncias passa pela normalização antes de persistir: marcar "nenhuma"
// limpa as demais opções.
type SaveAnamnesis struct {
	Store store.Store
	Audit audit.Recorder
}

func (uc *SaveAnamnesis) Execute(ctx context.Context, patientID string, form models.Anamnesis) (*models.Patient, error) {
	all, err := uc.Store.Patients(ctx)
	if err != nil {
		return nil, err
	}

	form = anamnesis.NormalizeSubstanceUse(form)

	var updated *models.Patient
	for i := range all {
		if all[i].ID == patientID {
			all[i].Anamnesis = &form
			updated = &all[i]
			break
		}
	}
	if updated == nil {
		return nil, httperr.ErrValidation("patient_not_found", "Paciente não encontrado.")
	}

	if err := uc.Store.ReplacePatients(ctx, all); err != nil {
		return nil, err
	}

	uc.Audit.Dispatch(audit.Event{
		Action:   "anamnesis_saved",
		Entity:   "patient",
		EntityID: updated.ID,
		Metadata: map[string]any{"complete": anamnesis.IsComplete(&form)},
	})

	out := *updated
	return &out, nil
}
