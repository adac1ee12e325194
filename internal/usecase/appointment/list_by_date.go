package appointment

import (
	"context"
	"sort"

	"github.com/vgpsi/clinic-scheduler/internal/dto"
	"github.com/vgpsi/clinic-scheduler/internal/store"
)

type ListByDate struct {
	store store.Store
}

func NewListByDate(store store.Store) *ListByDate {
	return &ListByDate{store: store}
}

func (uc *ListByDate) Execute(ctx context.Context, date string) ([]dto.AppointmentListDTO, error) {

	apps, err := uc.store.Appointments(ctx)
	if err != nil {
		return nil, err
	}

	types, err := uc.store.ConsultationTypes(ctx)
	if err != nil {
		return nil, err
	}

	typeNames := make(map[string]string, len(types))
	for _, ct := range types {
		typeNames[ct.ID] = ct.Name
	}

	out := make([]dto.AppointmentListDTO, 0)
	for _, ap := range apps {
		if ap.Date != date {
			continue
		}
		out = append(out, dto.AppointmentListDTO{
			ID:                   ap.ID,
			Date:                 ap.Date,
			Time:                 ap.Time,
			Status:               ap.Status,
			PatientName:          ap.PatientName,
			ConsultationTypeName: typeNames[ap.ConsultationTypeID],
			Price:                ap.Price,
			ReminderSent:         ap.ReminderSent,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Time < out[j].Time
	})

	return out, nil
}
