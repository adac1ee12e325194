package appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"

	"github.com/vgpsi/clinic-scheduler/internal/audit"
	"github.com/vgpsi/clinic-scheduler/internal/clock"
	"github.com/vgpsi/clinic-scheduler/internal/domain/schedule"
	"github.com/vgpsi/clinic-scheduler/internal/models"
	"github.com/vgpsi/clinic-scheduler/internal/store"
)

// recorderStub captura eventos de auditoria sem dispatcher assíncrono.
type recorderStub struct {
	events []audit.Event
}

func (r *recorderStub) Dispatch(ev audit.Event) {
	r.events = append(r.events, ev)
}

func (r *recorderStub) actions() []string {
	out := make([]string, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Action)
	}
	return out
}

// ledgerStub acumula transações em memória. Com failNext ligado, a
// próxima gravação falha uma única vez.
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

// notifyStub acumula entradas do histórico de notificações.
type notifyStub struct {
	entries []models.NotificationLog
}

func (n *notifyStub) Append(_ context.Context, entry models.NotificationLog) error {
	n.entries = append(n.entries, entry)
	return nil
}

func (n *notifyStub) Recent(_ context.Context, limit int) ([]models.NotificationLog, error) {
	if limit > len(n.entries) {
		limit = len(n.entries)
	}
	return n.entries[:limit], nil
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return store.NewRedis(rdb)
}

func testWindow() schedule.Window {
	return schedule.Window{DayStart: "08:00", DayEnd: "19:00", SlotMinutes: 30, OverbookFactor: 1.5}
}

func fixedClock(value string) clock.Clock {
	tm, _ := time.Parse("2006-01-02 15:04", value)
	return clock.Fixed{T: tm}
}

func seedBase(t *testing.T, st store.Store) (models.Patient, models.ConsultationType) {
	t.Helper()
	ctx := context.Background()

	p := models.Patient{ID: "p1", Name: "Ana Lima", IsActive: true}
	require.NoError(t, st.ReplacePatients(ctx, []models.Patient{p}))

	ct := models.ConsultationType{ID: "ct1", Name: "Sessão de Psicoterapia", Price: 150}
	require.NoError(t, st.ReplaceConsultationTypes(ctx, []models.ConsultationType{ct}))

	return p, ct
}
