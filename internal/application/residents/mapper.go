package residents

import (
	"github.com/jhoicas/Residentes-api/internal/application/dto"
	"github.com/jhoicas/Residentes-api/internal/domain/entity"
	"github.com/jhoicas/Residentes-api/internal/domain/resident"
)

// FormFromRequest convierte el cuerpo JSON en el formulario de dominio.
func FormFromRequest(in dto.ResidentRequest) resident.Form {
	return resident.Form{
		FirstName:   in.FirstName,
		MiddleName:  in.MiddleName,
		LastName:    in.LastName,
		Suffix:      in.Suffix,
		Birthdate:   in.Birthdate,
		Gender:      in.Gender,
		CivilStatus: in.CivilStatus,
		Address:     in.Address,
		Phone:       in.Phone,
		Email:       in.Email,
		Documents: map[entity.DocumentKind]*string{
			entity.DocProfilePicture: in.Documents.ProfilePicture,
			entity.DocClearance:      in.Documents.Clearance,
			entity.DocResidency:      in.Documents.Residency,
			entity.DocIndigency:      in.Documents.Indigency,
		},
	}
}

// ToResidentResponse DTO de salida. Sin includeDocuments solo se expone la foto de perfil.
func ToResidentResponse(r *entity.Resident, includeDocuments bool) *dto.ResidentResponse {
	if r == nil {
		return nil
	}
	out := &dto.ResidentResponse{
		ID:          r.ID,
		FirstName:   r.FirstName,
		MiddleName:  r.MiddleName,
		LastName:    r.LastName,
		Suffix:      r.Suffix,
		FullName:    r.FullName(),
		Birthdate:   r.Birthdate,
		Age:         r.Age,
		Gender:      string(r.Gender),
		CivilStatus: string(r.CivilStatus),
		Address:     r.Address,
		SubRegion:   resident.SubRegionOf(r.Address),
		Phone:       r.Phone,
		Email:       r.Email,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	docs := &dto.DocumentsDTO{ProfilePicture: strPtr(r.Documents.ProfilePicture)}
	if includeDocuments {
		docs.Clearance = strPtr(r.Documents.Clearance)
		docs.Residency = strPtr(r.Documents.Residency)
		docs.Indigency = strPtr(r.Documents.Indigency)
	}
	out.Documents = docs
	return out
}

// ToSubmitResponse DTO del resultado del flujo de edición.
func ToSubmitResponse(o *Outcome) *dto.SubmitResponse {
	out := &dto.SubmitResponse{
		State:    string(o.State),
		Message:  o.Message,
		Resident: ToResidentResponse(o.Resident, true),
		Original: ToResidentResponse(o.Original, true),
	}
	if !o.Errors.Empty() {
		out.Fields = o.Errors.Fields
		out.FirstInvalid = o.FirstInvalid()
	}
	for _, c := range o.Changes {
		out.Changes = append(out.Changes, dto.ChangeDTO{Field: c.Field, Old: c.Old, New: c.New})
	}
	return out
}

func strPtr(s string) *string {
	return &s
}
