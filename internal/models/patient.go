package models

type EmergencyContact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type Patient struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	JoinDate    string `json:"join_date"`
	DateOfBirth string `json:"date_of_birth"` // 2006-01-02
	Address     string `json:"address"`
	Occupation  string `json:"occupation"`

	EmergencyContact EmergencyContact `json:"emergency_contact"`

	Anamnesis *Anamnesis `json:"anamnesis,omitempty"`

	IsActive bool `json:"is_active"`
}
