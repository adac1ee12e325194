package notifylog

import (
	"context"

	"gorm.io/gorm"

	"github.com/vgpsi/clinic-scheduler/internal/models"
)

type Log interface {
	Append(ctx context.Context, entry models.NotificationLog) error
	Recent(ctx context.Context, limit int) ([]models.NotificationLog, error)
}

type GormLog struct {
	db *gorm.DB
}

func New(db *gorm.DB) *GormLog {
	return &GormLog{db: db}
}

func (l *GormLog) Append(ctx context.Context, entry models.NotificationLog) error {
	return l.db.WithContext(ctx).Create(&entry).Error
}

func (l *GormLog) Recent(ctx context.Context, limit int) ([]models.NotificationLog, error) {
	var out []models.NotificationLog
	err := l.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}
