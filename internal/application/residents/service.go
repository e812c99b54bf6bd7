// Package residents casos de uso del padrón: listado, detalle, estadísticas,
// flujo de edición, documentos y borrado.
package residents

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Residentes-api/internal/application/dto"
	"github.com/jhoicas/Residentes-api/internal/application/realtime"
	"github.com/jhoicas/Residentes-api/internal/domain"
	"github.com/jhoicas/Residentes-api/internal/domain/entity"
	"github.com/jhoicas/Residentes-api/internal/domain/repository"
	"github.com/jhoicas/Residentes-api/internal/domain/resident"
	"github.com/jhoicas/Residentes-api/internal/domain/roster"
	"github.com/jhoicas/Residentes-api/pkg/logger"
	"github.com/jhoicas/Residentes-api/pkg/metrics"
)

// Service casos de uso del padrón. La edad se recalcula con el reloj inyectado en cada lectura.
type Service struct {
	repo     repository.ResidentRepository
	broker   realtime.Broker
	rules    resident.Rules
	pageSize int
	metrics  *metrics.RosterMetrics
	log      *logger.Logger
	now      func() time.Time
}

// Config parámetros del servicio.
type Config struct {
	Rules    resident.Rules
	PageSize int
}

// NewService construye el servicio. broker y m pueden ser nil.
func NewService(repo repository.ResidentRepository, broker realtime.Broker, cfg Config, m *metrics.RosterMetrics, log *logger.Logger) *Service {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 5
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:     repo,
		broker:   broker,
		rules:    cfg.Rules,
		pageSize: cfg.PageSize,
		metrics:  m,
		log:      log.Component("residents"),
		now:      time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// SubRegions sub-regiones configuradas, en orden.
func (s *Service) SubRegions() []string {
	return append([]string(nil), s.rules.SubRegions...)
}

// All padrón completo, más recientes primero, con edades recalculadas.
func (s *Service) All(ctx context.Context) ([]entity.Resident, error) {
	list, err := s.repo.ListAll(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	now := s.now()
	for i := range list {
		s.withAge(&list[i], now)
	}
	return list, nil
}

// List filtra, ordena y pagina el padrón. includeDocuments=false para la vista de user.
func (s *Service) List(ctx context.Context, q dto.ListResidentsQuery, includeDocuments bool) (*dto.ResidentPageResponse, error) {
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	params := roster.Params{
		Search:      q.Q,
		Gender:      entity.Gender(q.Gender),
		CivilStatus: entity.CivilStatus(q.CivilStatus),
		SubRegion:   q.SubRegion,
		Sort:        roster.ParseSortOrder(q.Sort),
	}
	key := roster.FilterKey(params)
	size := q.PageSize
	if size <= 0 {
		size = s.pageSize
	}
	page := roster.Paginate(roster.Query(all, params), roster.ResolvePage(q.Page, q.FilterKey, key), size)

	out := &dto.ResidentPageResponse{
		Items: make([]dto.ResidentResponse, 0, len(page.Items)),
		PageResponse: dto.PageResponse{
			Page:       page.Page,
			PageSize:   page.PageSize,
			Total:      page.Total,
			TotalPages: page.TotalPages,
			FilterKey:  key,
		},
	}
	for i := range page.Items {
		out.Items = append(out.Items, *ToResidentResponse(&page.Items[i], includeDocuments))
	}
	return out, nil
}

// Get residente por ID con edad recalculada; ErrNotFound si no existe.
func (s *Service) Get(ctx context.Context, id string) (*entity.Resident, error) {
	if !validID(id) {
		return nil, domain.ErrNotFound
	}
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	s.withAge(r, s.now())
	return r, nil
}

// Delete elimina un residente; exige confirmación explícita.
func (s *Service) Delete(ctx context.Context, id string, confirm bool) error {
	if !confirm {
		return domain.ErrConfirmationNeeded
	}
	if !validID(id) {
		return domain.ErrNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		s.metrics.IncWrite("delete", "error")
		s.log.Error().Err(err).Str("resident_id", id).Msg("eliminar residente")
		return fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	s.metrics.IncWrite("delete", "ok")
	s.publish(ctx, realtime.EventDeleted, id)
	return nil
}

// UploadDocument valida (tipo por contenido, tamaño) y guarda un documento del residente.
// Si se rechaza, el documento anterior queda intacto.
func (s *Service) UploadDocument(ctx context.Context, id, kindName string, data []byte) (*dto.DocumentUploadResponse, error) {
	kind, err := resident.ParseDocumentKind(kindName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	encoded, err := s.rules.Documents.Encode(kind, data)
	if err != nil {
		verr := domain.NewValidationError()
		verr.Add(string(kind), err.Error())
		return nil, verr
	}
	r, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	r.Documents.Set(kind, encoded)
	r.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, r); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		s.metrics.IncWrite("update", "error")
		s.log.Error().Err(err).Str("resident_id", id).Str("kind", string(kind)).Msg("guardar documento")
		return nil, fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	s.metrics.IncWrite("update", "ok")
	s.publish(ctx, realtime.EventUpdated, id)

	mimeType, raw, _ := resident.DecodeDataURL(encoded)
	return &dto.DocumentUploadResponse{Kind: string(kind), MimeType: mimeType, Size: resident.HumanSize(int64(len(raw)))}, nil
}

// FormatField formato en vivo de un campo y su mensaje de error (vacío si el valor ya es válido).
func (s *Service) FormatField(in dto.FieldRequest) dto.FieldResponse {
	now := s.now()
	fv := s.rules.FormatField(in.Field, in.Value, now)
	out := dto.FieldResponse{Field: fv.Field, Value: fv.Value, Age: fv.Age}

	var form resident.Form
	setFormField(&form, in.Field, fv.Value)
	candidate := s.rules.Apply(entity.Resident{}, form, now)
	if verr := s.rules.Validate(&candidate, now); verr != nil {
		out.Error = verr.Fields[in.Field]
	}
	return out
}

func setFormField(f *resident.Form, field, value string) {
	switch field {
	case resident.FieldFirstName:
		f.FirstName = value
	case resident.FieldMiddleName:
		f.MiddleName = value
	case resident.FieldLastName:
		f.LastName = value
	case resident.FieldSuffix:
		f.Suffix = value
	case resident.FieldBirthdate:
		f.Birthdate = value
	case resident.FieldGender:
		f.Gender = value
	case resident.FieldCivilStatus:
		f.CivilStatus = value
	case resident.FieldAddress:
		f.Address = value
	case resident.FieldPhone:
		f.Phone = value
	case resident.FieldEmail:
		f.Email = value
	}
}

// validID los ids del padrón son UUID; otro formato no puede existir.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func (s *Service) withAge(r *entity.Resident, now time.Time) {
	r.Age = 0
	if age, err := resident.AgeAt(r.Birthdate, now); err == nil {
		r.Age = age
	}
}

func (s *Service) publish(ctx context.Context, eventType, id string) {
	ev := realtime.Event{Type: eventType, ResidentID: id, At: s.now()}
	if err := realtime.PublishChange(ctx, s.broker, ev); err != nil {
		s.log.Warn().Err(err).Str("resident_id", id).Msg("publicar cambio")
	}
}
