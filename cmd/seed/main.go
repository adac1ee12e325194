package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vgpsi/clinic-scheduler/internal/clock"
	"github.com/vgpsi/clinic-scheduler/internal/config"
	"github.com/vgpsi/clinic-scheduler/internal/db"
	"github.com/vgpsi/clinic-scheduler/internal/models"
	"github.com/vgpsi/clinic-scheduler/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	rdb, err := store.NewClient(cfg.RedisAddr, cfg.RedisPass)
	if err != nil {
		log.Fatalf("connect redis: %v", err)
	}
	st := store.NewRedis(rdb)

	pool, err := db.ConnectPostgres(ctx, cfg.DBUrl)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	gofakeit.Seed(time.Now().UnixNano())

	types, err := seedConsultationTypes(ctx, st)
	if err != nil {
		log.Fatalf("seed consultation types: %v", err)
	}

	patients, err := seedPatients(ctx, st, 25)
	if err != nil {
		log.Fatalf("seed patients: %v", err)
	}

	if err := seedAppointments(ctx, st, patients, types, 40); err != nil {
		log.Fatalf("seed appointments: %v", err)
	}

	if err := seedTransactions(ctx, pool, patients, 15); err != nil {
		log.Fatalf("seed transactions: %v", err)
	}

	log.Println("seed complete")
}

func seedConsultationTypes(ctx context.Context, st store.Store) ([]models.ConsultationType, error) {
	log.Println("seeding consultation types")

	types := []models.ConsultationType{
		{ID: uuid.NewString(), Name: "Sessão de Psicoterapia", Price: 150},
		{ID: uuid.NewString(), Name: "Primeira Consulta", Price: 180},
		{ID: uuid.NewString(), Name: "Supervisão", Price: 200},
	}
	if err := st.ReplaceConsultationTypes(ctx, types); err != nil {
		return nil, err
	}

	log.Println("consultation types seeded")
	return types, nil
}

func seedPatients(ctx context.Context, st store.Store, count int) ([]models.Patient, error) {
	log.Printf("seeding %d patients", count)

	patients := make([]models.Patient, 0, count)
	for i := 0; i < count; i++ {
		birth := gofakeit.DateRange(
			time.Date(1955, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2005, 12, 31, 0, 0, 0, 0, time.UTC),
		)

		p := models.Patient{
			ID:          uuid.NewString(),
			Name:        gofakeit.Name(),
			Email:       gofakeit.Email(),
			Phone:       gofakeit.Phone(),
			JoinDate:    time.Now().AddDate(0, -gofakeit.Number(0, 24), 0).Format(clock.DateLayout),
			DateOfBirth: birth.Format(clock.DateLayout),
			Address:     gofakeit.Street(),
			Occupation:  gofakeit.JobTitle(),
			IsActive:    true,
		}
		p.EmergencyContact = models.EmergencyContact{
			Name:  gofakeit.Name(),
			Phone: gofakeit.Phone(),
		}
		patients = append(patients, p)
	}

	if err := st.ReplacePatients(ctx, patients); err != nil {
		return nil, err
	}

	log.Println("patients seeded")
	return patients, nil
}

func seedAppointments(
	ctx context.Context,
	st store.Store,
	patients []models.Patient,
	types []models.ConsultationType,
	count int,
) error {
	log.Printf("seeding %d appointments", count)

	// grade de 30 em 30 minutos dentro da janela padrão
	var slots []string
	for h := 8; h < 19; h++ {
		slots = append(slots, fmt.Sprintf("%02d:00", h), fmt.Sprintf("%02d:30", h))
	}

	used := map[string]bool{}
	apps := make([]models.Appointment, 0, count)

	for i := 0; i < count; i++ {
		p := patients[gofakeit.Number(0, len(patients)-1)]
		ct := types[gofakeit.Number(0, len(types)-1)]

		// próximos 14 dias, sem repetir horário
		var date, hm string
		for tries := 0; tries < 50; tries++ {
			date = time.Now().AddDate(0, 0, gofakeit.Number(0, 13)).Format(clock.DateLayout)
			hm = slots[gofakeit.Number(0, len(slots)-1)]
			if !used[date+" "+hm] {
				break
			}
		}
		if used[date+" "+hm] {
			continue
		}
		used[date+" "+hm] = true

		apps = append(apps, models.Appointment{
			ID:                 uuid.NewString(),
			PatientID:          p.ID,
			PatientName:        p.Name,
			Date:               date,
			Time:               hm,
			Status:             "scheduled",
			ConsultationTypeID: ct.ID,
			Price:              ct.Price,
			CreatedAt:          time.Now().Format(time.RFC3339),
		})
	}

	if err := st.ReplaceAppointments(ctx, apps); err != nil {
		return err
	}

	log.Printf("appointments seeded: %d", len(apps))
	return nil
}

func seedTransactions(ctx context.Context, pool *pgxpool.Pool, patients []models.Patient, count int) error {
	log.Printf("seeding %d transactions", count)

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for i := 0; i < count; i++ {
		p := patients[gofakeit.Number(0, len(patients)-1)]
		date := time.Now().AddDate(0, 0, -gofakeit.Number(1, 60)).Format(clock.DateLayout)
		amount := float64(gofakeit.Number(120, 220))

		_, err := tx.Exec(ctx, `
			INSERT INTO transactions (id, description, amount, type, date, patient_id, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, now())
		`, uuid.NewString(), "Consulta - "+p.Name+" (Pix)", amount, models.TransactionIncome, date, p.ID)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	log.Println("transactions seeded")
	return nil
}
