package notes

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
	tm, _ := time.Parse(time.RFC3339, "2026-09-02T10:30:00-03:00")
	return clock.Fixed{T: tm}
}

func evalPtr(v string) *string {
	return &v
}

func seedPatient(t *testing.T, st store.Store) {
	t.Helper()
	require.NoError(t, st.ReplacePatients(context.Background(), []models.Patient{
		{ID: "p1", Name: "Ana Lima", IsActive: true},
	}))
}

func TestSaveRequiresEvaluation(t *testing.T) {
	st := newTestStore(t)
	seedPatient(t, st)
	uc := &Save{Store: st, Audit: &recorderStub{}, Clock: testClock()}
	ctx := context.Background()

	// sem avaliação o salvamento é bloqueado
	_, err := uc.Execute(ctx, SaveInput{PatientID: "p1", Content: "sessão difícil"})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "evaluation_required"))

	notes, _ := st.Notes(ctx)
	assert.Empty(t, notes)

	// avaliação fora da escala também
	_, err = uc.Execute(ctx, SaveInput{PatientID: "p1", Content: "sessão difícil", Evaluation: "maravilhoso"})
	assert.True(t, httperr.IsBusiness(err, "evaluation_required"))

	note, err := uc.Execute(ctx, SaveInput{
		PatientID:     "p1",
		Content:       "sessão difícil",
		Evaluation:    models.EvaluationRuim,
		AppointmentID: "ap1",
	})
	require.NoError(t, err)
	assert.Equal(t, "ap1", note.AppointmentID)
	assert.Equal(t, models.EvaluationRuim, note.Evaluation)
}

func TestSaveRejectsEmptyContentAndUnknownPatient(t *testing.T) {
	st := newTestStore(t)
	seedPatient(t, st)
	uc := &Save{Store: st, Audit: &recorderStub{}, Clock: testClock()}
	ctx := context.Background()

	_, err := uc.Execute(ctx, SaveInput{PatientID: "p1", Content: "   ", Evaluation: models.EvaluationBom})
	assert.True(t, httperr.IsBusiness(err, "empty_note"))

	_, err = uc.Execute(ctx, SaveInput{PatientID: "ghost", Content: "x", Evaluation: models.EvaluationBom})
	assert.True(t, httperr.IsBusiness(err, "patient_not_found"))
}

func TestEditDoesNotReopenEvaluationGate(t *testing.T) {
	st := newTestStore(t)
	seedPatient(t, st)
	saveUC := &Save{Store: st, Audit: &recorderStub{}, Clock: testClock()}
	editUC := &Edit{Store: st, Audit: &recorderStub{}}
	ctx := context.Background()

	note, err := saveUC.Execute(ctx, SaveInput{
		PatientID:     "p1",
		Content:       "primeira versão",
		Evaluation:    models.EvaluationBom,
		AppointmentID: "ap1",
	})
	require.NoError(t, err)

	// editar sem avaliação mantém a original
	edited, err := editUC.Execute(ctx, EditInput{NoteID: note.ID, Content: "versão corrigida"})
	require.NoError(t, err)
	assert.Equal(t, "versão corrigida", edited.Content)
	assert.Equal(t, models.EvaluationBom, edited.Evaluation)
	// paciente e consulta de origem não mudam
	assert.Equal(t, "p1", edited.PatientID)
	assert.Equal(t, "ap1", edited.AppointmentID)

	// avaliação informada precisa estar na escala
	_, err = editUC.Execute(ctx, EditInput{NoteID: note.ID, Content: "x", Evaluation: evalPtr("excelente")})
	assert.True(t, httperr.IsBusiness(err, "invalid_evaluation"))

	edited, err = editUC.Execute(ctx, EditInput{NoteID: note.ID, Content: "x", Evaluation: evalPtr(models.EvaluationOtimo)})
	require.NoError(t, err)
	assert.Equal(t, models.EvaluationOtimo, edited.Evaluation)
}

func TestEditClearsEvaluationWhenExplicitlyEmpty(t *testing.T) {
	st := newTestStore(t)
	seedPatient(t, st)
	saveUC := &Save{Store: st, Audit: &recorderStub{}, Clock: testClock()}
	editUC := &Edit{Store: st, Audit: &recorderStub{}}
	ctx := context.Background()

	note, err := saveUC.Execute(ctx, SaveInput{
		PatientID:  "p1",
		Content:    "primeira versão",
		Evaluation: models.EvaluationBom,
	})
	require.NoError(t, err)

	// vazio explícito limpa a avaliação; omitida ela seria mantida
	edited, err := editUC.Execute(ctx, EditInput{NoteID: note.ID, Content: "sem avaliação", Evaluation: evalPtr("")})
	require.NoError(t, err)
	assert.Equal(t, models.EvaluationNone, edited.Evaluation)

	saved, err := st.Notes(ctx)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, models.EvaluationNone, saved[0].Evaluation)
}

func TestEditUnknownNote(t *testing.T) {
	st := newTestStore(t)
	uc := &Edit{Store: st, Audit: &recorderStub{}}

	_, err := uc.Execute(context.Background(), EditInput{NoteID: "ghost", Content: "x"})
	assert.True(t, httperr.IsBusiness(err, "note_not_found"))
}

func TestListByPatientNewestFirst(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.ReplaceNotes(ctx, []models.SessionNote{
		{ID: "n1", PatientID: "p1", Date: "2026-09-01T10:00:00-03:00"},
		{ID: "n2", PatientID: "p1", Date: "2026-09-02T10:00:00-03:00"},
		{ID: "n3", PatientID: "p2", Date: "2026-09-03T10:00:00-03:00"},
	}))

	uc := &ListByPatient{Store: st}
	out, err := uc.Execute(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "n2", out[0].ID)
	assert.Equal(t, "n1", out[1].ID)
}
