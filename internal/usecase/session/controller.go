package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vgpsi/clinic-scheduler/internal/audit"
	"github.com/vgpsi/clinic-scheduler/internal/clock"
	"github.com/vgpsi/clinic-scheduler/internal/domain/anamnesis"
	"github.com/vgpsi/clinic-scheduler/internal/domain/schedule"
	"github.com/vgpsi/clinic-scheduler/internal/httperr"
	"github.com/vgpsi/clinic-scheduler/internal/ledger"
	"github.com/vgpsi/clinic-scheduler/internal/models"
	"github.com/vgpsi/clinic-scheduler/internal/payments"
	"github.com/vgpsi/clinic-scheduler/internal/store"
)

// State of the live consultation session.
type State string

const (
	StateIdle            State = "idle"
	StateActive          State = "active"
	StateEnded           State = "ended"
	StateAwaitingPayment State = "awaiting_payment"
	StateReceiptOffered  State = "receipt_offered"
)

type Receipt struct {
	PatientName string  `json:"patient_name"`
	Amount      float64 `json:"amount"`
	Method      string  `json:"method"`
	Date        string  `json:"date"`
}

type Completeness struct {
	AnamnesisComplete bool `json:"anamnesis_complete"`
	TodayNoteSaved    bool `json:"today_note_saved"`
}

// Controller drives the single live consultation: open a patient record in
// consultation mode, run the timer, gate documentation and walk the
// finalize -> payment -> receipt pipeline. Never persisted; one per login.
type Controller struct {
	store   store.Store
	ledger  ledger.Ledger
	audit   audit.Recorder
	clock   clock.Clock
	charger payments.Charger // optional, nil disables Pix charges

	tick time.Duration

	mu          sync.Mutex
	state       State
	patientID   string
	appointment *models.Appointment // today's scheduled appointment, if any
	timer       *Timer
	receipt     *Receipt
	charge      *payments.PixCharge
}

func NewController(
	st store.Store,
	lg ledger.Ledger,
	ad audit.Recorder,
	ck clock.Clock,
	charger payments.Charger,
) *Controller {
	return &Controller{
		store:   st,
		ledger:  lg,
		audit:   ad,
		clock:   ck,
		charger: charger,
		tick:    time.Second,
		state:   StateIdle,
	}
}

// SetTick adjusts the timer granularity. Test hook.
func (c *Controller) SetTick(d time.Duration) {
	c.tick = d
}

// Open binds the session to a patient and resolves today's appointment.
// Any previous session is closed first; opening is always a safe reset.
func (c *Controller) Open(ctx context.Context, patientID string) error {
	patients, err := c.store.Patients(ctx)
	if err != nil {
		return err
	}
	if store.FindPatient(patients, patientID) == nil {
		return httperr.ErrValidation("patient_not_found", "Paciente não encontrado.")
	}

	today, err := c.todayAppointment(ctx, patientID)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.releaseTimerLocked()
	c.state = StateIdle
	c.patientID = patientID
	c.appointment = today
	c.receipt = nil
	c.charge = nil
	return nil
}

// Start begins the consultation. Only valid when today's appointment
// exists for the opened patient and is still scheduled.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.patientID == "" {
		return httperr.ErrState("no_session", "Nenhum paciente aberto em modo consulta.")
	}
	if c.state != StateIdle {
		return httperr.ErrState("invalid_state", "A consulta já foi iniciada.")
	}
	if c.appointment == nil || c.appointment.Status != string(schedule.StatusScheduled) {
		return httperr.ErrState("no_todays_appointment", "Não há consulta agendada para hoje.")
	}

	c.timer = StartTimer(c.tick)
	c.state = StateActive

	c.audit.Dispatch(audit.Event{
		Action:   "consultation_started",
		Entity:   "appointment",
		EntityID: c.appointment.ID,
	})
	return nil
}

// End stops the timer. The appointment status is untouched here.
func (c *Controller) End(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateActive {
		return httperr.ErrState("invalid_state", "Não há consulta em andamento.")
	}

	c.releaseTimerLocked()
	c.state = StateEnded
	return nil
}

// RequestFinalize moves an ended session towards payment once the
// documentation gate passes. On failure the session stays Ended and the
// error enumerates what is missing.
func (c *Controller) RequestFinalize(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateEnded {
		c.mu.Unlock()
		return httperr.ErrState("invalid_state", "Encerre a consulta antes de finalizar.")
	}
	ap := c.appointment
	patientID := c.patientID
	c.mu.Unlock()

	if ap == nil {
		return httperr.ErrState("no_todays_appointment", "Não há consulta agendada para hoje.")
	}
	if ap.Status == string(schedule.StatusCompleted) {
		return httperr.ErrState("invalid_state", "A consulta de hoje já foi finalizada.")
	}

	comp, err := c.completeness(ctx, patientID, ap.ID)
	if err != nil {
		return err
	}

	var missing []string
	if !comp.AnamnesisComplete {
		missing = append(missing, "anamnese")
	}
	if !comp.TodayNoteSaved {
		missing = append(missing, "anotação da sessão de hoje")
	}
	if len(missing) > 0 {
		return httperr.ErrGate(
			"incomplete_documentation",
			"Pendências antes de finalizar: "+strings.Join(missing, ", ")+".",
		)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateEnded {
		return httperr.ErrState("invalid_state", "Encerre a consulta antes de finalizar.")
	}
	c.state = StateAwaitingPayment
	return nil
}

// ConfirmPayment closes out the appointment: marks it completed, appends
// exactly one income transaction at the snapshotted price and prepares
// the receipt offer. Once awaiting payment there is no cancel path; the
// only choice left is whether to print the receipt.
func (c *Controller) ConfirmPayment(ctx context.Context, method string) (*Receipt, error) {
	method = strings.TrimSpace(method)
	if method == "" {
		return nil, httperr.ErrValidation("missing_payment_method", "Informe a forma de pagamento.")
	}

	c.mu.Lock()
	if c.state != StateAwaitingPayment {
		c.mu.Unlock()
		return nil, httperr.ErrState("invalid_state", "A sessão não está aguardando pagamento.")
	}
	ap := c.appointment
	c.mu.Unlock()

	apps, err := c.store.Appointments(ctx)
	if err != nil {
		return nil, err
	}
	cur := store.FindAppointment(apps, ap.ID)
	if cur == nil {
		return nil, httperr.ErrValidation("appointment_not_found", "Consulta não encontrada.")
	}

	if err := schedule.Complete(cur); err != nil {
		return nil, err
	}

	// O lançamento entra antes do status: se falhar, a consulta permanece
	// agendada no repositório e a confirmação pode ser repetida.
	tx := models.Transaction{
		ID:          uuid.NewString(),
		Description: "Consulta - " + cur.PatientName + " (" + method + ")",
		Amount:      cur.Price,
		Type:        models.TransactionIncome,
		Date:        cur.Date,
		PatientID:   cur.PatientID,
	}
	if err := c.ledger.Append(ctx, tx); err != nil {
		return nil, err
	}
	if err := c.store.ReplaceAppointments(ctx, apps); err != nil {
		return nil, err
	}

	var charge *payments.PixCharge
	if c.charger != nil && strings.EqualFold(method, "pix") {
		charge, err = c.charger.CreatePix(ctx, cur.Price, tx.Description)
		if err != nil {
			// A aplicação não depende da cobrança online: o recebimento já
			// foi confirmado pela profissional.
			c.audit.Dispatch(audit.Event{
				Action:   "pix_charge_failed",
				Entity:   "appointment",
				EntityID: cur.ID,
				Metadata: map[string]any{"error": err.Error()},
			})
			charge = nil
		}
	}

	receipt := &Receipt{
		PatientName: cur.PatientName,
		Amount:      cur.Price,
		Method:      method,
		Date:        cur.Date,
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.releaseTimerLocked()
	c.appointment = cur
	c.receipt = receipt
	c.charge = charge
	c.state = StateReceiptOffered

	c.audit.Dispatch(audit.Event{
		Action:   "consultation_finalized",
		Entity:   "appointment",
		EntityID: cur.ID,
		Metadata: map[string]any{"amount": cur.Price, "method": method},
	})

	return receipt, nil
}

// CloseReceipt ends the session whether the receipt was printed or
// declined; both choices return to Idle.
func (c *Controller) CloseReceipt(ctx context.Context, generated bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateReceiptOffered {
		return httperr.ErrState("invalid_state", "Não há recibo em oferta.")
	}

	action := "receipt_declined"
	if generated {
		action = "receipt_generated"
	}
	if c.appointment != nil {
		c.audit.Dispatch(audit.Event{
			Action:   action,
			Entity:   "appointment",
			EntityID: c.appointment.ID,
		})
	}

	c.resetLocked()
	return nil
}

// Close abandons the session from any state: navigation away must always
// be a safe, idempotent exit, and it must never leak the timer.
func (c *Controller) Close(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer == nil {
		return 0
	}
	return c.timer.Elapsed()
}

func (c *Controller) Receipt() (*Receipt, *payments.PixCharge, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.receipt == nil {
		return nil, nil, false
	}
	return c.receipt, c.charge, true
}

// TodayAppointment exposes the appointment the session resolved, if any.
func (c *Controller) TodayAppointment() (*models.Appointment, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.appointment == nil {
		return nil, false
	}
	out := *c.appointment
	return &out, true
}

// Completeness reports the documentation snapshot for the open session.
func (c *Controller) Completeness(ctx context.Context) (Completeness, error) {
	c.mu.Lock()
	patientID := c.patientID
	ap := c.appointment
	c.mu.Unlock()

	if patientID == "" {
		return Completeness{}, httperr.ErrState("no_session", "Nenhum paciente aberto em modo consulta.")
	}

	apID := ""
	if ap != nil {
		apID = ap.ID
	}
	return c.completeness(ctx, patientID, apID)
}

func (c *Controller) completeness(ctx context.Context, patientID, appointmentID string) (Completeness, error) {
	patients, err := c.store.Patients(ctx)
	if err != nil {
		return Completeness{}, err
	}
	patient := store.FindPatient(patients, patientID)
	if patient == nil {
		return Completeness{}, httperr.ErrValidation("patient_not_found", "Paciente não encontrado.")
	}

	notes, err := c.store.Notes(ctx)
	if err != nil {
		return Completeness{}, err
	}

	noteSaved := false
	if appointmentID != "" {
		for _, n := range notes {
			if n.AppointmentID == appointmentID {
				noteSaved = true
				break
			}
		}
	}

	return Completeness{
		AnamnesisComplete: anamnesis.IsComplete(patient.Anamnesis),
		TodayNoteSaved:    noteSaved,
	}, nil
}

// todayAppointment resolves the patient's scheduled appointment for the
// current date. At most one exists per patient per day.
func (c *Controller) todayAppointment(ctx context.Context, patientID string) (*models.Appointment, error) {
	apps, err := c.store.Appointments(ctx)
	if err != nil {
		return nil, err
	}

	today := clock.Today(c.clock)
	for i := range apps {
		ap := apps[i]
		if ap.PatientID == patientID && ap.Date == today && ap.Status == string(schedule.StatusScheduled) {
			out := ap
			return &out, nil
		}
	}
	return nil, nil
}

func (c *Controller) releaseTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Controller) resetLocked() {
	c.releaseTimerLocked()
	c.state = StateIdle
	c.patientID = ""
	c.appointment = nil
	c.receipt = nil
	c.charge = nil
}
