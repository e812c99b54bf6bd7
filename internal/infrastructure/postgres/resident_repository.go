package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Residentes-api/internal/domain"
	"github.com/jhoicas/Residentes-api/internal/domain/entity"
	"github.com/jhoicas/Residentes-api/internal/domain/repository"
)

var _ repository.ResidentRepository = (*ResidentRepo)(nil)

// ResidentRepo implementación del puerto ResidentRepository sobre PostgreSQL.
// La edad no se lee ni se escribe: la calcula la capa de aplicación.
type ResidentRepo struct {
	db Querier
}

// NewResidentRepository construye el adaptador de persistencia para residentes.
func NewResidentRepository(db Querier) *ResidentRepo {
	return &ResidentRepo{db: db}
}

const residentColumns = `id, first_name, middle_name, last_name, suffix, birthdate, gender, civil_status,
	address, phone, email, profile_picture, clearance_cert, residency_cert, indigency_cert,
	created_at, updated_at`

// Create inserta el residente; ID y fechas vienen asignados por la capa de aplicación.
func (r *ResidentRepo) Create(ctx context.Context, res *entity.Resident) error {
	birth, err := dateParam(res.Birthdate)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO residents (` + residentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err = r.db.Exec(ctx, query,
		res.ID, res.FirstName, res.MiddleName, res.LastName, res.Suffix, birth,
		string(res.Gender), string(res.CivilStatus), res.Address, res.Phone, res.Email,
		res.Documents.ProfilePicture, res.Documents.Clearance, res.Documents.Residency, res.Documents.Indigency,
		res.CreatedAt, res.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert resident: %w", err)
	}
	return nil
}

// GetByID obtiene un residente; nil, nil si no existe.
func (r *ResidentRepo) GetByID(ctx context.Context, id string) (*entity.Resident, error) {
	if !isUUID(id) {
		return nil, nil
	}
	res, err := scanResident(r.db.QueryRow(ctx, `SELECT `+residentColumns+` FROM residents WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get resident by id: %w", err)
	}
	return res, nil
}

// ListAll devuelve el padrón completo ordenado por created_at.
func (r *ResidentRepo) ListAll(ctx context.Context, newestFirst bool) ([]entity.Resident, error) {
	dir := "ASC"
	if newestFirst {
		dir = "DESC"
	}
	rows, err := r.db.Query(ctx, `SELECT `+residentColumns+` FROM residents ORDER BY created_at `+dir+`, id`)
	if err != nil {
		return nil, fmt.Errorf("list residents: %w", err)
	}
	defer rows.Close()

	list := make([]entity.Resident, 0)
	for rows.Next() {
		res, err := scanResident(rows)
		if err != nil {
			return nil, fmt.Errorf("scan resident: %w", err)
		}
		list = append(list, *res)
	}
	return list, rows.Err()
}

// Update reescribe todas las columnas editables. Sin control de versión: la última escritura gana.
func (r *ResidentRepo) Update(ctx context.Context, res *entity.Resident) error {
	if !isUUID(res.ID) {
		return domain.ErrNotFound
	}
	birth, err := dateParam(res.Birthdate)
	if err != nil {
		return err
	}
	query := `
		UPDATE residents SET
			first_name = $2, middle_name = $3, last_name = $4, suffix = $5, birthdate = $6,
			gender = $7, civil_status = $8, address = $9, phone = $10, email = $11,
			profile_picture = $12, clearance_cert = $13, residency_cert = $14, indigency_cert = $15,
			updated_at = $16
		WHERE id = $1`
	tag, err := r.db.Exec(ctx, query,
		res.ID, res.FirstName, res.MiddleName, res.LastName, res.Suffix, birth,
		string(res.Gender), string(res.CivilStatus), res.Address, res.Phone, res.Email,
		res.Documents.ProfilePicture, res.Documents.Clearance, res.Documents.Residency, res.Documents.Indigency,
		res.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update resident: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un residente; ErrNotFound si no existía.
func (r *ResidentRepo) Delete(ctx context.Context, id string) error {
	if !isUUID(id) {
		return domain.ErrNotFound
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM residents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete resident: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanResident(row pgx.Row) (*entity.Resident, error) {
	var (
		res         entity.Resident
		birth       time.Time
		gender      string
		civilStatus string
	)
	err := row.Scan(
		&res.ID, &res.FirstName, &res.MiddleName, &res.LastName, &res.Suffix, &birth,
		&gender, &civilStatus, &res.Address, &res.Phone, &res.Email,
		&res.Documents.ProfilePicture, &res.Documents.Clearance, &res.Documents.Residency, &res.Documents.Indigency,
		&res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	res.Birthdate = formatDate(birth)
	res.Gender = entity.Gender(gender)
	res.CivilStatus = entity.CivilStatus(civilStatus)
	return &res, nil
}
