package store

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vgpsi/clinic-scheduler/internal/models"
)

func newTestStore(t *testing.T) *Redis {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedis(rdb)
}

func TestEmptyCollectionsAreNil(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	apps, err := st.Appointments(ctx)
	require.NoError(t, err)
	assert.Nil(t, apps)

	acc, err := st.Account(ctx)
	require.NoError(t, err)
	assert.Nil(t, acc)
}

func TestReplaceAndReadBack(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	in := []models.Appointment{
		{ID: "a1", PatientID: "p1", PatientName: "Ana", Date: "2026-09-02", Time: "09:00", Status: "scheduled", Price: 150},
		{ID: "a2", PatientID: "p2", PatientName: "Bruno", Date: "2026-09-02", Time: "10:00", Status: "canceled", Price: 180},
	}
	require.NoError(t, st.ReplaceAppointments(ctx, in))

	out, err := st.Appointments(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	// replace substitui o conjunto inteiro
	require.NoError(t, st.ReplaceAppointments(ctx, in[:1]))
	out, err = st.Appointments(ctx)
	require.NoError(t, err)
	assert.Len(t, out, 1)
}

func TestAccountRoundTrip(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	acc := &models.Account{Name: "Dra. Vera", PasswordHash: "x", PasswordChanged: true}
	require.NoError(t, st.SaveAccount(ctx, acc))

	got, err := st.Account(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Dra. Vera", got.Name)
	assert.True(t, got.PasswordChanged)
}

func TestSubscribeDeliversCollectionNames(t *testing.T) {
	st := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, closeSub, err := st.Subscribe(ctx)
	require.NoError(t, err)
	defer closeSub()

	require.NoError(t, st.ReplacePatients(ctx, []models.Patient{{ID: "p1", Name: "Ana"}}))

	select {
	case col := <-ch:
		assert.Equal(t, ColPatients, col)
	case <-time.After(2 * time.Second):
		t.Fatal("nenhuma notificação de mudança recebida")
	}
}

func TestFindHelpers(t *testing.T) {
	patients := []models.Patient{{ID: "p1"}, {ID: "p2"}}
	assert.Equal(t, "p2", FindPatient(patients, "p2").ID)
	assert.Nil(t, FindPatient(patients, "p9"))

	types := []models.ConsultationType{{ID: "t1", Price: 150}}
	assert.NotNil(t, FindConsultationType(types, "t1"))
	assert.Nil(t, FindConsultationType(types, "zz"))

	apps := []models.Appointment{{ID: "a1"}}
	assert.NotNil(t, FindAppointment(apps, "a1"))
	assert.Nil(t, FindAppointment(apps, "a2"))
}
