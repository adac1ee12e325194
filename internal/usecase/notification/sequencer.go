package notification

import (
	"context"
	"sort"
	"sync"

	"github.com/vgpsi/clinic-scheduler/internal/clock"
	"github.com/vgpsi/clinic-scheduler/internal/domain/schedule"
	"github.com/vgpsi/clinic-scheduler/internal/dto"
	"github.com/vgpsi/clinic-scheduler/internal/models"
	"github.com/vgpsi/clinic-scheduler/internal/store"
)

// Step identifica cada aviso da sequência pós-login.
type Step string

const (
	StepOnboarding Step = "onboarding"
	StepBirthdays  Step = "birthdays"
	StepReminders  Step = "reminders"
	StepAgenda     Step = "agenda"
)

type Birthday struct {
	PatientID   string `json:"patient_id"`
	PatientName string `json:"patient_name"`
	DateOfBirth string `json:"date_of_birth"`
}

// Notice é o aviso atualmente em exibição. Payload varia por etapa.
type Notice struct {
	Step      Step                     `json:"step"`
	Birthdays []Birthday               `json:"birthdays,omitempty"`
	Reminders []dto.AppointmentListDTO `json:"reminders,omitempty"`
	Agenda    []dto.AppointmentListDTO `json:"agenda,omitempty"`
}

// stepOrder fixa a ordem da sequência pós-login.
var stepOrder = []Step{StepOnboarding, StepBirthdays, StepReminders, StepAgenda}

// Sequencer percorre os avisos pós-login em ordem fixa: onboarding,
// aniversários, lembretes de amanhã e agenda de hoje. Cada etapa é avaliada
// contra os dados vivos no momento em que entra em exibição: dispensar um
// aviso invoca o predicado da etapa seguinte. Etapas sem conteúdo são
// puladas e a cadeia não reinicia até o próximo login.
type Sequencer struct {
	store store.Store
	clock clock.Clock

	mu      sync.Mutex
	started bool
	index   int
	current *Notice
}

func NewSequencer(st store.Store, ck clock.Clock) *Sequencer {
	return &Sequencer{store: st, clock: ck}
}

// Start inicia a sequência do login atual e devolve o primeiro aviso com
// conteúdo. Chamadas repetidas no mesmo login não voltam ao começo.
func (s *Sequencer) Start(ctx context.Context) (*Notice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return s.current, nil
	}
	s.started = true
	s.index = 0
	return s.advanceLocked(ctx)
}

// Current devolve o aviso em exibição, ou nil quando a cadeia terminou.
func (s *Sequencer) Current() *Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Dismiss descarta o aviso atual e avalia as etapas seguintes contra os
// dados atuais. Seguro chamar com a cadeia já esgotada.
func (s *Sequencer) Dismiss(ctx context.Context) (*Notice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started || s.index >= len(stepOrder) {
		return nil, nil
	}
	s.index++
	return s.advanceLocked(ctx)
}

// Reset descarta a cadeia. Chamado no logout para que o próximo login
// construa uma sequência nova.
func (s *Sequencer) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started = false
	s.index = 0
	s.current = nil
}

// advanceLocked avança até a primeira etapa cujo predicado produz conteúdo
// e a deixa em exibição.
func (s *Sequencer) advanceLocked(ctx context.Context) (*Notice, error) {
	for ; s.index < len(stepOrder); s.index++ {
		notice, err := s.evaluate(ctx, stepOrder[s.index])
		if err != nil {
			return nil, err
		}
		if notice != nil {
			s.current = notice
			return notice, nil
		}
	}
	s.current = nil
	return nil, nil
}

func (s *Sequencer) evaluate(ctx context.Context, step Step) (*Notice, error) {
	switch step {
	case StepOnboarding:
		account, err := s.store.Account(ctx)
		if err != nil {
			return nil, err
		}
		if needsOnboarding(account) {
			return &Notice{Step: StepOnboarding}, nil
		}

	case StepBirthdays:
		patients, err := s.store.Patients(ctx)
		if err != nil {
			return nil, err
		}
		if bd := todayBirthdays(patients, clock.Today(s.clock)); len(bd) > 0 {
			return &Notice{Step: StepBirthdays, Birthdays: bd}, nil
		}

	case StepReminders:
		apps, typeNames, err := s.loadAgendaData(ctx)
		if err != nil {
			return nil, err
		}
		if rem := pendingReminders(apps, typeNames, clock.Tomorrow(s.clock)); len(rem) > 0 {
			return &Notice{Step: StepReminders, Reminders: rem}, nil
		}

	case StepAgenda:
		apps, typeNames, err := s.loadAgendaData(ctx)
		if err != nil {
			return nil, err
		}
		if agenda := todayAgenda(apps, typeNames, clock.Today(s.clock)); len(agenda) > 0 {
			return &Notice{Step: StepAgenda, Agenda: agenda}, nil
		}
	}
	return nil, nil
}

func (s *Sequencer) loadAgendaData(ctx context.Context) ([]models.Appointment, map[string]string, error) {
	apps, err := s.store.Appointments(ctx)
	if err != nil {
		return nil, nil, err
	}
	types, err := s.store.ConsultationTypes(ctx)
	if err != nil {
		return nil, nil, err
	}
	typeNames := make(map[string]string, len(types))
	for _, t := range types {
		typeNames[t.ID] = t.Name
	}
	return apps, typeNames, nil
}

// needsOnboarding sinaliza a conta recém-criada: senha padrão ainda em uso
// ou perfil sem foto.
func needsOnboarding(account *models.Account) bool {
	if account == nil {
		return true
	}
	return !account.PasswordChanged || account.ProfileImageKey == ""
}

func todayBirthdays(patients []models.Patient, today string) []Birthday {
	if len(today) < 10 {
		return nil
	}
	monthDay := today[5:10]

	var out []Birthday
	for _, p := range patients {
		if !p.IsActive || len(p.DateOfBirth) < 10 {
			continue
		}
		if p.DateOfBirth[5:10] == monthDay {
			out = append(out, Birthday{
				PatientID:   p.ID,
				PatientName: p.Name,
				DateOfBirth: p.DateOfBirth,
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PatientName < out[j].PatientName })
	return out
}

// pendingReminders lista as consultas agendadas de amanhã que ainda não
// receberam lembrete, em ordem de horário.
func pendingReminders(apps []models.Appointment, typeNames map[string]string, tomorrow string) []dto.AppointmentListDTO {
	var out []dto.AppointmentListDTO
	for _, ap := range apps {
		if ap.Date != tomorrow || ap.Status != string(schedule.StatusScheduled) || ap.ReminderSent {
			continue
		}
		out = append(out, toListDTO(ap, typeNames))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out
}

func todayAgenda(apps []models.Appointment, typeNames map[string]string, today string) []dto.AppointmentListDTO {
	var out []dto.AppointmentListDTO
	for _, ap := range apps {
		if ap.Date != today || ap.Status != string(schedule.StatusScheduled) {
			continue
		}
		out = append(out, toListDTO(ap, typeNames))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out
}

func toListDTO(ap models.Appointment, typeNames map[string]string) dto.AppointmentListDTO {
	return dto.AppointmentListDTO{
		ID:                   ap.ID,
		Date:                 ap.Date,
		Time:                 ap.Time,
		Status:               ap.Status,
		PatientName:          ap.PatientName,
		ConsultationTypeName: typeNames[ap.ConsultationTypeID],
		Price:                ap.Price,
		ReminderSent:         ap.ReminderSent,
	}
}
