package models

import "time"

const (
	TransactionIncome  = "income"
	TransactionExpense = "expense"
)

// Transaction is a financial ledger entry. The scheduling core only ever
// appends income rows; reporting belongs to the financial module.
type Transaction struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	Description string  `gorm:"size:255;not null" json:"description"`
	Amount      float64 `json:"amount"`
	Type        string  `gorm:"size:10;not null" json:"type"`
	Date        string  `gorm:"size:10;not null" json:"date"`

	PatientID string `gorm:"size:36" json:"patient_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
