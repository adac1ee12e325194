package models

// Evaluation levels recorded alongside a session note, worst to best.
const (
	EvaluationPessimo = "pessimo"
	EvaluationRuim    = "ruim"
	EvaluationBom     = "bom"
	EvaluationOtimo   = "otimo"
	EvaluationNone    = ""
)

func ValidEvaluation(e string) bool {
	switch e {
	case EvaluationPessimo, EvaluationRuim, EvaluationBom, EvaluationOtimo:
		return true
	}
	return false
}

type SessionNote struct {
	ID        string `json:"id"`
	PatientID string `json:"patient_id"`
	Date      string `json:"date"` // RFC3339
	Content   string `json:"content"`

	// Links the note to the appointment it documents. Empty for notes
	// written outside a consultation.
	AppointmentID string `json:"appointment_id,omitempty"`

	Evaluation string `json:"evaluation,omitempty"`
}
