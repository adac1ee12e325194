package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/vgpsi/clinic-scheduler/internal/clock"
	"github.com/vgpsi/clinic-scheduler/internal/domain/schedule"
	"github.com/vgpsi/clinic-scheduler/internal/store"
)

type GetAvailability struct {
	store  store.Store
	window schedule.Window
	clock  clock.Clock
}

func NewGetAvailability(store store.Store, window schedule.Window, clock clock.Clock) *GetAvailability {
	return &GetAvailability{store: store, window: window, clock: clock}
}

// Day computes the availability of a single calendar day.
func (uc *GetAvailability) Day(ctx context.Context, date string) (schedule.DayAvailability, error) {
	apps, err := uc.store.Appointments(ctx)
	if err != nil {
		return schedule.DayAvailability{}, err
	}
	return schedule.Availability(apps, date, uc.window, uc.clock), nil
}

// Month computes one entry per day, feeding the booking calendar grid.
func (uc *GetAvailability) Month(ctx context.Context, year, month int) ([]schedule.DayAvailability, error) {
	apps, err := uc.store.Appointments(ctx)
	if err != nil {
		return nil, err
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	days := first.AddDate(0, 1, -1).Day()

	out := make([]schedule.DayAvailability, 0, days)
	for d := 1; d <= days; d++ {
		date := fmt.Sprintf("%04d-%02d-%02d", year, month, d)
		out = append(out, schedule.Availability(apps, date, uc.window, uc.clock))
	}
	return out, nil
}
