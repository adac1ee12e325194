package schedule

import "github.com/vgpsi/clinic-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCanceled  Status = "canceled"
)

// ===============================
// Validations
// ===============================

// CanCancel define se uma consulta pode ser cancelada
func CanCancel(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrState("invalid_state", "A consulta não está mais agendada.")
	}
	return nil
}

// CanComplete define se uma consulta pode ser concluída
func CanComplete(current Status) error {
	if current != StatusScheduled {
		return httperr.ErrState("invalid_state", "A consulta não está mais agendada.")
	}
	return nil
}

func InitialStatus() Status {
	return StatusScheduled
}
