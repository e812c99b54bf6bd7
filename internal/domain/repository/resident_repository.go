package repository

import (
	"context"

	"github.com/jhoicas/Residentes-api/internal/domain/entity"
)

// ResidentRepository puerto del almacén de residentes.
// Update reescribe la fila completa: la última escritura gana.
type ResidentRepository interface {
	Create(ctx context.Context, r *entity.Resident) error
	GetByID(ctx context.Context, id string) (*entity.Resident, error)
	ListAll(ctx context.Context, newestFirst bool) ([]entity.Resident, error)
	Update(ctx context.Context, r *entity.Resident) error
	Delete(ctx context.Context, id string) error
}
