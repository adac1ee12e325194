package dto

type AppointmentListDTO struct {
	ID                   string  `json:"id"`
	Date                 string  `json:"date"`
	Time                 string  `json:"time"`
	Status               string  `json:"status"`
	PatientName          string  `json:"patient_name"`
	ConsultationTypeName string  `json:"consultation_type_name"`
	Price                float64 `json:"price"`
	ReminderSent         bool    `json:"reminder_sent"`
}
