package appointment

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/vgpsi/clinic-scheduler/internal/dto"
	"github.com/vgpsi/clinic-scheduler/internal/store"
)

type ListByMonth struct {
	store store.Store
}

func NewListByMonth(store store.Store) *ListByMonth {
	return &ListByMonth{store: store}
}

func (uc *ListByMonth) Execute(ctx context.Context, year, month int) ([]dto.AppointmentListDTO, error) {

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

	prefix := fmt.Sprintf("%04d-%02d-", year, month)

	out := make([]dto.AppointmentListDTO, 0)
	for _, ap := range apps {
		if !strings.HasPrefix(ap.Date, prefix) {
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
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Time < out[j].Time
	})

	return out, nil
}
