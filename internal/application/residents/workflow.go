package residents

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Residentes-api/internal/application/realtime"
	"github.com/jhoicas/Residentes-api/internal/domain"
	"github.com/jhoicas/Residentes-api/internal/domain/entity"
	"github.com/jhoicas/Residentes-api/internal/domain/resident"
)

// State estado final de un envío del formulario.
type State string

const (
	StateInvalid State = "invalid"
	StateReview  State = "review"
	StateSaved   State = "saved"
	StateFailed  State = "failed"
)

// MsgSaveFailed mensaje genérico ante un fallo de escritura.
const MsgSaveFailed = "No se pudo guardar el residente. Intenta de nuevo."

// Submission envío del formulario. ID vacío = alta; con ID = edición.
// En edición con cambios, Confirm=false devuelve la revisión sin escribir.
type Submission struct {
	ID      string
	Form    resident.Form
	Confirm bool
}

// Outcome resultado del envío.
type Outcome struct {
	State    State
	Errors   *domain.ValidationError
	Changes  []resident.Change
	Resident *entity.Resident // guardado (saved) o propuesto (review)
	Original *entity.Resident // registro previo a la edición, para revertir
	Message  string
}

// FirstInvalid primer campo inválido en orden de formulario.
func (o *Outcome) FirstInvalid() string {
	return o.Errors.First()
}

// Submit valida, calcula la edad y guarda. Solo devuelve error si el residente a editar no existe.
func (s *Service) Submit(ctx context.Context, sub Submission) (*Outcome, error) {
	now := s.now()

	var original *entity.Resident
	base := entity.Resident{}
	if sub.ID != "" {
		if !validID(sub.ID) {
			return nil, domain.ErrNotFound
		}
		existing, err := s.repo.GetByID(ctx, sub.ID)
		if err != nil {
			s.log.Error().Err(err).Str("resident_id", sub.ID).Msg("leer residente a editar")
			return &Outcome{State: StateFailed, Message: MsgSaveFailed}, nil
		}
		if existing == nil {
			return nil, domain.ErrNotFound
		}
		s.withAge(existing, now)
		original = existing
		base = *existing
	}

	merged := s.rules.Apply(base, sub.Form, now)
	if verr := s.rules.Validate(&merged, now); verr != nil {
		return &Outcome{State: StateInvalid, Errors: verr, Original: original}, nil
	}

	if original == nil {
		return s.create(ctx, merged, now), nil
	}

	changes := resident.Diff(original, &merged)
	if len(changes) == 0 {
		return &Outcome{State: StateSaved, Resident: original, Original: original}, nil
	}
	if !sub.Confirm {
		return &Outcome{State: StateReview, Changes: changes, Resident: &merged, Original: original}, nil
	}

	merged.UpdatedAt = now
	if err := s.repo.Update(ctx, &merged); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		s.metrics.IncWrite("update", "error")
		s.log.Error().Err(err).Str("resident_id", merged.ID).Msg("actualizar residente")
		return &Outcome{State: StateFailed, Message: MsgSaveFailed, Original: original}, nil
	}
	s.metrics.IncWrite("update", "ok")
	s.publish(ctx, realtime.EventUpdated, merged.ID)
	return &Outcome{State: StateSaved, Changes: changes, Resident: &merged, Original: original}, nil
}

func (s *Service) create(ctx context.Context, r entity.Resident, now time.Time) *Outcome {
	r.ID = uuid.New().String()
	r.CreatedAt = now
	r.UpdatedAt = now
	if err := s.repo.Create(ctx, &r); err != nil {
		s.metrics.IncWrite("create", "error")
		s.log.Error().Err(err).Msg("crear residente")
		return &Outcome{State: StateFailed, Message: MsgSaveFailed}
	}
	s.metrics.IncWrite("create", "ok")
	s.publish(ctx, realtime.EventCreated, r.ID)
	return &Outcome{State: StateSaved, Resident: &r}
}
