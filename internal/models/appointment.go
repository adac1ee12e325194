package models

type Appointment struct {
	ID string `json:"id"`

	PatientID string `json:"patient_id"`
	// Snapshot taken at creation, never refreshed from the patient record.
	PatientName string `json:"patient_name"`

	Date string `json:"date"` // 2006-01-02, clinic local zone
	Time string `json:"time"` // 15:04

	Status string `json:"status"`

	ConsultationTypeID string `json:"consultation_type_id"`
	// Snapshot of the consultation type price at booking time. Later price
	// changes to the type must not alter booked appointments.
	Price float64 `json:"price"`

	ReminderSent bool `json:"reminder_sent"`

	CreatedAt string `json:"created_at"`
}
