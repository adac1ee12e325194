package ledger

import (
	"context"

	"gorm.io/gorm"

	"github.com/vgpsi/clinic-scheduler/internal/models"
)

// Ledger is the financial module's append-only boundary. The scheduling
// core never reads back what it wrote.
type Ledger interface {
	Append(ctx context.Context, tx models.Transaction) error
}

type GormLedger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *GormLedger {
	return &GormLedger{db: db}
}

func (l *GormLedger) Append(ctx context.Context, tx models.Transaction) error {
	return l.db.WithContext(ctx).Create(&tx).Error
}
