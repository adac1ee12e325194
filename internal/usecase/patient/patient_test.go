package patient

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vgpsi/clinic-scheduler/internal/audit"
	"github.com/vgpsi/clinic-scheduler/internal/clock"
	"github.com/vgpsi/clinic-scheduler/internal/httperr"
	"github.com/vgpsi/clinic-scheduler/internal/models"
	"github.com/vgpsi/clinic-scheduler/internal/store"
)

type recorderStub struct {
	events []audit.Event
}

func (r *recorderStub) Dispatch(ev audit.Event) {
	r.events = append(r.events, ev)
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return store.NewRedis(rdb)
}

func testClock() clock.Clock {
	tm, _ := time.Parse(clock.DateLayout, "2026-09-02")
	return clock.Fixed{T: tm}
}

func TestCreateAndListSortedByName(t *testing.T) {
	st := newTestStore(t)
	createUC := &Create{Store: st, Audit: &recorderStub{}, Clock: testClock()}
	listUC := &List{Store: st}
	ctx := context.Background()

	_, err := createUC.Execute(ctx, CreateInput{Name: "Carla"})
	require.NoError(t, err)
	p, err := createUC.Execute(ctx, CreateInput{Name: "  Ana  ", DateOfBirth: "1990-05-10"})
	require.NoError(t, err)

	assert.Equal(t, "Ana", p.Name)
	assert.Equal(t, "2026-09-02", p.JoinDate)
	assert.True(t, p.IsActive)

	all, err := listUC.Execute(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Ana", all[0].Name)
	assert.Equal(t, "Carla", all[1].Name)
}

func TestCreateValidation(t *testing.T) {
	st := newTestStore(t)
	uc := &Create{Store: st, Audit: &recorderStub{}, Clock: testClock()}
	ctx := context.Background()

	_, err := uc.Execute(ctx, CreateInput{Name: "   "})
	assert.True(t, httperr.IsBusiness(err, "missing_name"))

	_, err = uc.Execute(ctx, CreateInput{Name: "Ana", DateOfBirth: "10/05/1990"})
	assert.True(t, httperr.IsBusiness(err, "invalid_birth_date"))
}

func TestUpdatePartialFields(t *testing.T) {
	st := newTestStore(t)
	createUC := &Create{Store: st, Audit: &recorderStub{}, Clock: testClock()}
	updateUC := &Update{Store: st, Audit: &recorderStub{}}
	ctx := context.Background()

	p, err := createUC.Execute(ctx, CreateInput{Name: "Ana", Phone: "11 99999-0000"})
	require.NoError(t, err)

	inactive := false
	updated, err := updateUC.Execute(ctx, UpdateInput{
		ID:         p.ID,
		Occupation: "arquiteta",
		IsActive:   &inactive,
	})
	require.NoError(t, err)

	assert.Equal(t, "Ana", updated.Name)
	assert.Equal(t, "11 99999-0000", updated.Phone)
	assert.Equal(t, "arquiteta", updated.Occupation)
	assert.False(t, updated.IsActive)

	_, err = updateUC.Execute(ctx, UpdateInput{ID: "ghost", Name: "X"})
	assert.True(t, httperr.IsBusiness(err, "patient_not_found"))
}

func TestSaveAnamnesisNormalizesSubstanceUse(t *testing.T) {
	st := newTestStore(t)
	createUC := &Create{Store: st, Audit: &recorderStub{}, Clock: testClock()}
	saveUC := &SaveAnamnesis{Store: st, Audit: &recorderStub{}}
	ctx := context.Background()

	p, err := createUC.Execute(ctx, CreateInput{Name: "Ana"})
	require.NoError(t, err)

	form := models.Anamnesis{
		MainReason:          "insônia",
		SubstanceUseNone:    true,
		SubstanceUseAlcohol: true,
	}

	updated, err := saveUC.Execute(ctx, p.ID, form)
	require.NoError(t, err)
	require.NotNil(t, updated.Anamnesis)

	// "nenhuma" vence e limpa as demais marcações
	assert.True(t, updated.Anamnesis.SubstanceUseNone)
	assert.False(t, updated.Anamnesis.SubstanceUseAlcohol)
	assert.Equal(t, "insônia", updated.Anamnesis.MainReason)

	// persiste no conjunto
	all, err := st.Patients(ctx)
	require.NoError(t, err)
	require.NotNil(t, all[0].Anamnesis)
	assert.True(t, all[0].Anamnesis.SubstanceUseNone)
}
