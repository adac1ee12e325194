package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/vgpsi/clinic-scheduler/internal/models"
)

const (
	keyPrefix     = "clinic:"
	changeChannel = "clinic:changes"
)

// Redis persists each collection as a single JSON value under one key and
// publishes the collection name on every replace.
type Redis struct {
	rdb *redis.Client
}

func NewClient(addr, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return rdb, nil
}

func NewRedis(rdb *redis.Client) *Redis {
	return &Redis{rdb: rdb}
}

func getAll[T any](ctx context.Context, rdb *redis.Client, col string) ([]T, error) {
	raw, err := rdb.Get(ctx, keyPrefix+col).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", col, err)
	}

	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", col, err)
	}
	return out, nil
}

func (s *Redis) replaceAll(ctx context.Context, col string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", col, err)
	}

	if err := s.rdb.Set(ctx, keyPrefix+col, raw, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", col, err)
	}

	// Change notifications are best effort; the data is already durable.
	_ = s.rdb.Publish(ctx, changeChannel, col).Err()
	return nil
}

func (s *Redis) Appointments(ctx context.Context) ([]models.Appointment, error) {
	return getAll[models.Appointment](ctx, s.rdb, ColAppointments)
}

func (s *Redis) ReplaceAppointments(ctx context.Context, apps []models.Appointment) error {
	return s.replaceAll(ctx, ColAppointments, apps)
}

func (s *Redis) Patients(ctx context.Context) ([]models.Patient, error) {
	return getAll[models.Patient](ctx, s.rdb, ColPatients)
}

func (s *Redis) ReplacePatients(ctx context.Context, patients []models.Patient) error {
	return s.replaceAll(ctx, ColPatients, patients)
}

func (s *Redis) Notes(ctx context.Context) ([]models.SessionNote, error) {
	return getAll[models.SessionNote](ctx, s.rdb, ColNotes)
}

func (s *Redis) ReplaceNotes(ctx context.Context, notes []models.SessionNote) error {
	return s.replaceAll(ctx, ColNotes, notes)
}

func (s *Redis) ConsultationTypes(ctx context.Context) ([]models.ConsultationType, error) {
	return getAll[models.ConsultationType](ctx, s.rdb, ColConsultationTypes)
}

func (s *Redis) ReplaceConsultationTypes(ctx context.Context, types []models.ConsultationType) error {
	return s.replaceAll(ctx, ColConsultationTypes, types)
}

func (s *Redis) Account(ctx context.Context) (*models.Account, error) {
	raw, err := s.rdb.Get(ctx, keyPrefix+ColAccount).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}

	var acc models.Account
	if err := json.Unmarshal(raw, &acc); err != nil {
		return nil, fmt.Errorf("decode account: %w", err)
	}
	return &acc, nil
}

func (s *Redis) SaveAccount(ctx context.Context, acc *models.Account) error {
	raw, err := json.Marshal(acc)
	if err != nil {
		return fmt.Errorf("encode account: %w", err)
	}

	if err := s.rdb.Set(ctx, keyPrefix+ColAccount, raw, 0).Err(); err != nil {
		return fmt.Errorf("set account: %w", err)
	}

	_ = s.rdb.Publish(ctx, changeChannel, ColAccount).Err()
	return nil
}

func (s *Redis) Subscribe(ctx context.Context) (<-chan string, func() error, error) {
	sub := s.rdb.Subscribe(ctx, changeChannel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, nil, fmt.Errorf("subscribe: %w", err)
	}

	out := make(chan string)
	go func() {
		defer close(out)
		for msg := range sub.Channel() {
			select {
			case out <- msg.Payload:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, sub.Close, nil
}
