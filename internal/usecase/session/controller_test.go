package session

import (
	"context"
	"errors"
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

type ledgerStub struct {
	txs      []models.Transaction
	failNext bool
}

func (l *ledgerStub) Append(_ context.Context, tx models.Transaction) error {
	if l.failNext {
		l.failNext = false
		return errors.New("ledger indisponível")
	}
	l.txs = append(l.txs, tx)
	return nil
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return store.NewRedis(rdb)
}

func testClock() clock.Clock {
	tm, _ := time.Parse("2006-01-02 15:04", "2026-09-02 10:00")
	return clock.Fixed{T: tm}
}

// seedSession grava paciente, tipo e a consulta de hoje.
func seedSession(t *testing.T, st store.Store, anamnesisComplete, noteLinked bool) models.Appointment {
	t.Helper()
	ctx := context.Background()

	p := models.Patient{ID: "p1", Name: "Ana Lima", IsActive: true}
	if anamnesisComplete {
		p.Anamnesis = &models.Anamnesis{MainReason: "ansiedade"}
	}
	require.NoError(t, st.ReplacePatients(ctx, []models.Patient{p}))

	ap := models.Appointment{
		ID:          "ap1",
		PatientID:   "p1",
		PatientName: "Ana Lima",
		Date:        "2026-09-02",
		Time:        "10:00",
		Status:      "scheduled",
		Price:       150,
	}
	require.NoError(t, st.ReplaceAppointments(ctx, []models.Appointment{ap}))

	if noteLinked {
		require.NoError(t, st.ReplaceNotes(ctx, []models.SessionNote{
			{ID: "n1", PatientID: "p1", Content: "sessão produtiva", AppointmentID: "ap1", Evaluation: models.EvaluationBom},
		}))
	}

	return ap
}

func newController(st store.Store, lg *ledgerStub) *Controller {
	c := NewController(st, lg, &recorderStub{}, testClock(), nil)
	c.SetTick(time.Hour) // o cronômetro não avança durante os testes
	return c
}

func TestStartRequiresTodaysScheduledAppointment(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.ReplacePatients(ctx, []models.Patient{{ID: "p1", Name: "Ana", IsActive: true}}))

	c := newController(st, &ledgerStub{})
	require.NoError(t, c.Open(ctx, "p1"))

	err := c.Start(ctx)
	assert.True(t, httperr.IsBusiness(err, "no_todays_appointment"))
	assert.Equal(t, StateIdle, c.State())
}

func TestOpenUnknownPatient(t *testing.T) {
	st := newTestStore(t)
	c := newController(st, &ledgerStub{})

	err := c.Open(context.Background(), "ghost")
	assert.True(t, httperr.IsBusiness(err, "patient_not_found"))
}

func TestFinalizeGateListsWhatIsMissing(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	seedSession(t, st, false, false)

	c := newController(st, &ledgerStub{})
	require.NoError(t, c.Open(ctx, "p1"))
	require.NoError(t, c.Start(ctx))
	require.NoError(t, c.End(ctx))

	err := c.RequestFinalize(ctx)
	require.Error(t, err)
	assert.True(t, httperr.IsKind(err, httperr.KindGate))
	assert.Contains(t, err.Error(), "anamnese")
	assert.Contains(t, err.Error(), "anotação da sessão de hoje")

	// a sessão continua encerrada, aguardando a documentação
	assert.Equal(t, StateEnded, c.State())
}

func TestFinalizeGatePartialMissing(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	seedSession(t, st, true, false)

	c := newController(st, &ledgerStub{})
	require.NoError(t, c.Open(ctx, "p1"))
	require.NoError(t, c.Start(ctx))
	require.NoError(t, c.End(ctx))

	err := c.RequestFinalize(ctx)
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "anamnese,")
	assert.Contains(t, err.Error(), "anotação da sessão de hoje")
}

func TestFullPipelineAppendsExactlyOneTransaction(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	lg := &ledgerStub{}
	seedSession(t, st, true, true)

	c := newController(st, lg)
	require.NoError(t, c.Open(ctx, "p1"))
	require.NoError(t, c.Start(ctx))
	assert.Equal(t, StateActive, c.State())
	require.NoError(t, c.End(ctx))
	require.NoError(t, c.RequestFinalize(ctx))
	assert.Equal(t, StateAwaitingPayment, c.State())

	receipt, err := c.ConfirmPayment(ctx, "Pix")
	require.NoError(t, err)
	assert.Equal(t, StateReceiptOffered, c.State())

	assert.Equal(t, "Ana Lima", receipt.PatientName)
	assert.Equal(t, 150.0, receipt.Amount)
	assert.Equal(t, "Pix", receipt.Method)
	assert.Equal(t, "2026-09-02", receipt.Date)

	require.Len(t, lg.txs, 1)
	assert.Equal(t, "Consulta - Ana Lima (Pix)", lg.txs[0].Description)
	assert.Equal(t, 150.0, lg.txs[0].Amount)
	assert.Equal(t, models.TransactionIncome, lg.txs[0].Type)

	apps, err := st.Appointments(ctx)
	require.NoError(t, err)
	assert.Equal(t, "completed", apps[0].Status)

	// recusar ou imprimir o recibo encerra igual
	require.NoError(t, c.CloseReceipt(ctx, false))
	assert.Equal(t, StateIdle, c.State())
	assert.Len(t, lg.txs, 1)
}

func TestConfirmPaymentLedgerFailureLeavesRetryOpen(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	lg := &ledgerStub{}
	seedSession(t, st, true, true)

	c := newController(st, lg)
	require.NoError(t, c.Open(ctx, "p1"))
	require.NoError(t, c.Start(ctx))
	require.NoError(t, c.End(ctx))
	require.NoError(t, c.RequestFinalize(ctx))

	lg.failNext = true
	_, err := c.ConfirmPayment(ctx, "Pix")
	require.Error(t, err)

	// nada aplicado pela metade: sem receita, consulta agendada, sessão
	// ainda aguardando pagamento
	assert.Empty(t, lg.txs)
	apps, err := st.Appointments(ctx)
	require.NoError(t, err)
	assert.Equal(t, "scheduled", apps[0].Status)
	assert.Equal(t, StateAwaitingPayment, c.State())

	// repetir a confirmação fecha a consulta com uma única receita
	receipt, err := c.ConfirmPayment(ctx, "Pix")
	require.NoError(t, err)
	assert.Equal(t, "Ana Lima", receipt.PatientName)
	require.Len(t, lg.txs, 1)

	apps, err = st.Appointments(ctx)
	require.NoError(t, err)
	assert.Equal(t, "completed", apps[0].Status)
}

func TestConfirmPaymentOnlyWhenAwaiting(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	seedSession(t, st, true, true)

	c := newController(st, &ledgerStub{})
	require.NoError(t, c.Open(ctx, "p1"))

	_, err := c.ConfirmPayment(ctx, "Pix")
	assert.True(t, httperr.IsKind(err, httperr.KindState))

	_, err = c.ConfirmPayment(ctx, "")
	assert.True(t, httperr.IsBusiness(err, "missing_payment_method"))
}

func TestCloseIsSafeFromAnyState(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	seedSession(t, st, true, true)

	c := newController(st, &ledgerStub{})

	// fechado sem nem abrir
	c.Close(ctx)
	assert.Equal(t, StateIdle, c.State())

	require.NoError(t, c.Open(ctx, "p1"))
	require.NoError(t, c.Start(ctx))

	c.Close(ctx)
	assert.Equal(t, StateIdle, c.State())
	assert.Equal(t, time.Duration(0), c.Elapsed())

	// fechar de novo continua seguro
	c.Close(ctx)
	assert.Equal(t, StateIdle, c.State())
}

func TestCompletenessSnapshot(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()
	seedSession(t, st, true, false)

	c := newController(st, &ledgerStub{})
	require.NoError(t, c.Open(ctx, "p1"))

	comp, err := c.Completeness(ctx)
	require.NoError(t, err)
	assert.True(t, comp.AnamnesisComplete)
	assert.False(t, comp.TodayNoteSaved)
}
