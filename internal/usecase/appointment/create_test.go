package appointment

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vgpsi/clinic-scheduler/internal/httperr"
	"github.com/vgpsi/clinic-scheduler/internal/models"
)

func TestCreateSchedulesAndSnapshotsPrice(t *testing.T) {
	st := newTestStore(t)
	rec := &recorderStub{}
	uc := NewCreate(st, rec, fixedClock("2026-09-01 10:00"))
	ctx := context.Background()

	_, ct := seedBase(t, st)

	ap, err := uc.Execute(ctx, CreateInput{
		PatientID:          "p1",
		ConsultationTypeID: "ct1",
		Date:               "2026-09-02",
		Time:               "09:00",
	})
	require.NoError(t, err)

	assert.Equal(t, "scheduled", ap.Status)
	assert.Equal(t, "Ana Lima", ap.PatientName)
	assert.Equal(t, ct.Price, ap.Price)
	assert.Contains(t, rec.actions(), "appointment_created")

	// preço do tipo muda depois; a consulta mantém o congelado
	ct.Price = 999
	require.NoError(t, st.ReplaceConsultationTypes(ctx, []models.ConsultationType{ct}))

	apps, err := st.Appointments(ctx)
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, 150.0, apps[0].Price)
}

func TestCreateRejectsPastDateWithoutMutating(t *testing.T) {
	st := newTestStore(t)
	rec := &recorderStub{}
	uc := NewCreate(st, rec, fixedClock("2026-09-10 10:00"))
	ctx := context.Background()

	seedBase(t, st)

	_, err := uc.Execute(ctx, CreateInput{
		PatientID:          "p1",
		ConsultationTypeID: "ct1",
		Date:               "2026-09-09",
		Time:               "09:00",
	})
	require.Error(t, err)
	assert.True(t, httperr.IsKind(err, httperr.KindTemporal))
	assert.True(t, httperr.IsBusiness(err, "past_date"))

	apps, err := st.Appointments(ctx)
	require.NoError(t, err)
	assert.Empty(t, apps)
	assert.Empty(t, rec.events)
}

func TestCreateRejectsPastTimeToday(t *testing.T) {
	st := newTestStore(t)
	uc := NewCreate(st, &recorderStub{}, fixedClock("2026-09-10 14:30"))
	ctx := context.Background()

	seedBase(t, st)

	_, err := uc.Execute(ctx, CreateInput{
		PatientID:          "p1",
		ConsultationTypeID: "ct1",
		Date:               "2026-09-10",
		Time:               "14:00",
	})
	assert.True(t, httperr.IsBusiness(err, "past_time"))

	// mesmo horário do relógio ainda vale
	_, err = uc.Execute(ctx, CreateInput{
		PatientID:          "p1",
		ConsultationTypeID: "ct1",
		Date:               "2026-09-10",
		Time:               "14:30",
	})
	assert.NoError(t, err)
}

func TestCreateRejectsHoliday(t *testing.T) {
	st := newTestStore(t)
	uc := NewCreate(st, &recorderStub{}, fixedClock("2026-09-01 10:00"))

	seedBase(t, st)

	_, err := uc.Execute(context.Background(), CreateInput{
		PatientID:          "p1",
		ConsultationTypeID: "ct1",
		Date:               "2026-12-25",
		Time:               "09:00",
	})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "holiday_blocked"))
}

func TestCreateRejectsOccupiedSlot(t *testing.T) {
	st := newTestStore(t)
	uc := NewCreate(st, &recorderStub{}, fixedClock("2026-09-01 10:00"))
	ctx := context.Background()

	seedBase(t, st)

	in := CreateInput{PatientID: "p1", ConsultationTypeID: "ct1", Date: "2026-09-02", Time: "09:00"}
	_, err := uc.Execute(ctx, in)
	require.NoError(t, err)

	_, err = uc.Execute(ctx, in)
	require.Error(t, err)
	assert.True(t, httperr.IsKind(err, httperr.KindConflict))
	assert.True(t, httperr.IsBusiness(err, "time_conflict"))
}

func TestCreateUnknownReferences(t *testing.T) {
	st := newTestStore(t)
	uc := NewCreate(st, &recorderStub{}, fixedClock("2026-09-01 10:00"))
	ctx := context.Background()

	seedBase(t, st)

	_, err := uc.Execute(ctx, CreateInput{PatientID: "ghost", ConsultationTypeID: "ct1", Date: "2026-09-02", Time: "09:00"})
	assert.True(t, httperr.IsBusiness(err, "patient_not_found"))

	_, err = uc.Execute(ctx, CreateInput{PatientID: "p1", ConsultationTypeID: "ghost", Date: "2026-09-02", Time: "09:00"})
	assert.True(t, httperr.IsBusiness(err, "consultation_type_not_found"))

	_, err = uc.Execute(ctx, CreateInput{PatientID: "p1", ConsultationTypeID: "ct1", Date: "02/09/2026", Time: "09:00"})
	assert.True(t, httperr.IsBusiness(err, "invalid_date_or_time"))
}

// Criações e reagendamentos aleatórios nunca produzem dois agendamentos
// ativos no mesmo horário.
func TestRandomizedSlotUniqueness(t *testing.T) {
	st := newTestStore(t)
	rec := &recorderStub{}
	ck := fixedClock("2026-09-01 08:00")
	createUC := NewCreate(st, rec, ck)
	rescheduleUC := NewReschedule(st, rec, ck)
	ctx := context.Background()

	seedBase(t, st)

	rng := rand.New(rand.NewSource(42))
	dates := []string{"2026-09-02", "2026-09-03", "2026-09-04"}

	var created []string
	for i := 0; i < 120; i++ {
		date := dates[rng.Intn(len(dates))]
		hm := fmt.Sprintf("%02d:%02d", 8+rng.Intn(10), 30*rng.Intn(2))

		if len(created) > 0 && rng.Intn(3) == 0 {
			_, _ = rescheduleUC.Execute(ctx, created[rng.Intn(len(created))], date, hm)
			continue
		}

		ap, err := createUC.Execute(ctx, CreateInput{
			PatientID:          "p1",
			ConsultationTypeID: "ct1",
			Date:               date,
			Time:               hm,
		})
		if err == nil {
			created = append(created, ap.ID)
		}
	}

	apps, err := st.Appointments(ctx)
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, ap := range apps {
		if ap.Status != "scheduled" {
			continue
		}
		key := ap.Date + " " + ap.Time
		assert.False(t, seen[key], "horário duplicado: %s", key)
		seen[key] = true
	}
}
