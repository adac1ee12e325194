package schedule

import "github.com/vgpsi/clinic-scheduler/internal/models"

// ===============================
// Domain Actions
// ===============================

func Cancel(ap *models.Appointment) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCanceled)
	return nil
}

func Complete(ap *models.Appointment) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	return nil
}

// MarkReminderSent is idempotent and independent of status.
func MarkReminderSent(ap *models.Appointment) {
	ap.ReminderSent = true
}
