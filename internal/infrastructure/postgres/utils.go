package postgres

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Residentes-api/internal/domain/resident"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

// isUUID las columnas id son uuid: un texto con otro formato haría fallar la consulta con 22P02.
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// dateParam convierte YYYY-MM-DD en time.Time para columnas DATE.
func dateParam(s string) (time.Time, error) {
	return resident.ParseBirthdate(s)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(resident.DateLayout)
}
