package schedule

import "github.com/vgpsi/clinic-scheduler/internal/models"

// HasConflict reports whether another scheduled appointment already holds
// the (date, time) slot. excludeID carves out the appointment being
// rescheduled so it never conflicts with itself.
func HasConflict(apps []models.Appointment, date, hm, excludeID string) bool {
	for _, ap := range apps {
		if ap.Status != string(StatusScheduled) {
			continue
		}
		if ap.Date == date && ap.Time == hm && ap.ID != excludeID {
			return true
		}
	}
	return false
}
