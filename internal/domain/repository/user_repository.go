package repository

import (
	"context"

	"github.com/jhoicas/Residentes-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User y su registro de rol (DIP).
// Get* devuelven nil, nil si no existe.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}
