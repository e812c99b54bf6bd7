package dto

// Vistas de página que el cliente renderiza.
const (
	ViewHome           = "home"
	ViewLogin          = "login"
	ViewRegister       = "register"
	ViewResetPassword  = "reset_password"
	ViewAdminDashboard = "admin_dashboard"
	ViewUserDashboard  = "user_dashboard"
	ViewResident       = "resident_detail"
	ViewNotFound       = "not_found"
	ViewAbout          = "about"
	ViewContact        = "contact"
)

// PageView modelo común de las páginas. Solo se rellenan los campos de cada vista.
type PageView struct {
	View       string                `json:"view"`
	Title      string                `json:"title"`
	Nickname   string                `json:"nickname,omitempty"`
	Role       string                `json:"role,omitempty"`
	Roster     *ResidentPageResponse `json:"roster,omitempty"`
	Stats      *StatsResponse        `json:"stats,omitempty"`
	SubRegions []string              `json:"sub_regions,omitempty"`
	Resident   *ResidentResponse     `json:"resident,omitempty"`
	Message    string                `json:"message,omitempty"`
	Contact    *ContactInfo          `json:"contact,omitempty"`
	Token      string                `json:"token,omitempty"` // reset_password: se reenvía a /api/auth/password-reset/confirm
}

// ContactInfo datos de la página de contacto.
type ContactInfo struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}
