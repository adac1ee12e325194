package schedule

import (
	"fmt"

	"github.com/vgpsi/clinic-scheduler/internal/clock"
	"github.com/vgpsi/clinic-scheduler/internal/models"
)

// Window describes the clinic's daily booking grid.
type Window struct {
	DayStart       string // 15:04
	DayEnd         string // 15:04
	SlotMinutes    int
	OverbookFactor float64
}

// Slots generates the day's fixed-size time increments inside the working
// window. Their count is the nominal daily capacity.
func (w Window) Slots() []string {
	start := clock.MinuteOfDay(w.DayStart)
	end := clock.MinuteOfDay(w.DayEnd)
	if start < 0 || end < 0 || w.SlotMinutes <= 0 {
		return nil
	}

	var slots []string
	for cur := start; cur+w.SlotMinutes <= end; cur += w.SlotMinutes {
		slots = append(slots, minuteToHM(cur))
	}
	return slots
}

func (w Window) Capacity() int {
	return len(w.Slots())
}

type DayAvailability struct {
	Date           string `json:"date"`
	IsPast         bool   `json:"is_past"`
	IsHoliday      bool   `json:"is_holiday"`
	HolidayName    string `json:"holiday_name,omitempty"`
	IsFull         bool   `json:"is_full"`
	AvailableCount int    `json:"available_count"`
	TakenCount     int    `json:"taken_count"`
}

// Availability computes the booking state of a calendar day from an
// appointment-set snapshot. Pure function, no side effects.
//
// "Full" intentionally triggers only past 1.5x the nominal capacity (the
// overbook factor): the grid is a suggestion, not a hard cap.
func Availability(apps []models.Appointment, date string, w Window, c clock.Clock) DayAvailability {
	taken := 0
	for _, ap := range apps {
		if ap.Date == date && ap.Status == string(StatusScheduled) {
			taken++
		}
	}

	total := w.Capacity()
	factor := w.OverbookFactor
	if factor <= 0 {
		factor = 1.5
	}

	available := total - taken
	if available < 0 {
		available = 0
	}

	// A window with no slots never opens, whatever the factor.
	full := total == 0 || float64(taken) >= float64(total)*factor

	name, holiday := HolidayName(date)

	return DayAvailability{
		Date:           date,
		IsPast:         date < clock.Today(c), // fixed-width ISO dates compare as strings
		IsHoliday:      holiday,
		HolidayName:    name,
		IsFull:         full,
		AvailableCount: available,
		TakenCount:     taken,
	}
}

func minuteToHM(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
