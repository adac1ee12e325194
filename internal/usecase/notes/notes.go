package notes

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/vgpsi/clinic-scheduler/internal/audit"
	"github.com/vgpsi/clinic-scheduler/internal/clock"
	"github.com/vgpsi/clinic-scheduler/internal/httperr"
	"github.com/vgpsi/clinic-scheduler/internal/models"
	"github.com/vgpsi/clinic-scheduler/internal/store"
)

// Save grava uma nova anotação de sessão. A avaliação do encontro é
// obrigatória no primeiro salvamento; a edição posterior não reabre essa
// exigência.
type Save struct {
	Store store.Store
	Audit audit.Recorder
	Clock clock.Clock
}

type SaveInput struct {
	PatientID     string
	Content       string
	Evaluation    string
	AppointmentID string // vazio quando a anotação não nasce de uma consulta
}

func (uc *Save) Execute(ctx context.Context, in SaveInput) (*models.SessionNote, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, httperr.ErrValidation("empty_note", "A anotação não pode ser vazia.")
	}

	if !models.ValidEvaluation(in.Evaluation) {
		return nil, httperr.ErrValidation("evaluation_required", "Avalie a sessão antes de salvar a anotação.")
	}

	patients, err := uc.Store.Patients(ctx)
	if err != nil {
		return nil, err
	}
	if store.FindPatient(patients, in.PatientID) == nil {
		return nil, httperr.ErrValidation("patient_not_found", "Paciente não encontrado.")
	}

	all, err := uc.Store.Notes(ctx)
	if err != nil {
		return nil, err
	}

	note := models.SessionNote{
		ID:            uuid.NewString(),
		PatientID:     in.PatientID,
		Date:          uc.Clock.Now().Format("2006-01-02T15:04:05Z07:00"),
		Content:       content,
		AppointmentID: in.AppointmentID,
		Evaluation:    in.Evaluation,
	}
	all = append(all, note)

	if err := uc.Store.ReplaceNotes(ctx, all); err != nil {
		return nil, err
	}

	uc.Audit.Dispatch(audit.Event{
		Action:   "note_saved",
		Entity:   "session_note",
		EntityID: note.ID,
		Metadata: map[string]any{"patient_id": note.PatientID, "evaluation": note.Evaluation},
	})

	return &note, nil
}

// Edit altera o conteúdo de uma anotação existente. Paciente e consulta de
// origem são imutáveis; a avaliação pode ser mantida, trocada ou limpa.
type Edit struct {
	Store store.Store
	Audit audit.Recorder
}

type EditInput struct {
	NoteID  string
	Content string

	// Evaluation nil mantém a avaliação original; vazio a limpa
	// explicitamente; qualquer outro valor precisa ser um dos quatro níveis.
	Evaluation *string
}

func (uc *Edit) Execute(ctx context.Context, in EditInput) (*models.SessionNote, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" {
		return nil, httperr.ErrValidation("empty_note", "A anotação não pode ser vazia.")
	}

	if in.Evaluation != nil && *in.Evaluation != "" && !models.ValidEvaluation(*in.Evaluation) {
		return nil, httperr.ErrValidation("invalid_evaluation", "Avaliação inválida.")
	}

	all, err := uc.Store.Notes(ctx)
	if err != nil {
		return nil, err
	}

	var edited *models.SessionNote
	for i := range all {
		if all[i].ID == in.NoteID {
			all[i].Content = content
			if in.Evaluation != nil {
				all[i].Evaluation = *in.Evaluation
			}
			edited = &all[i]
			break
		}
	}
	if edited == nil {
		return nil, httperr.ErrValidation("note_not_found", "Anotação não encontrada.")
	}

	if err := uc.Store.ReplaceNotes(ctx, all); err != nil {
		return nil, err
	}

	uc.Audit.Dispatch(audit.Event{
		Action:   "note_edited",
		Entity:   "session_note",
		EntityID: edited.ID,
	})

	out := *edited
	return &out, nil
}

// ListByPatient devolve as anotações de um paciente, mais recentes primeiro.
type ListByPatient struct {
	Store store.Store
}

func (uc *ListByPatient) Execute(ctx context.Context, patientID string) ([]models.SessionNote, error) {
	all, err := uc.Store.Notes(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.SessionNote, 0)
	for _, n := range all {
		if n.PatientID == patientID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}
