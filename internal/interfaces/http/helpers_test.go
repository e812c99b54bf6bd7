package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Residentes-api/internal/application/access"
	"github.com/jhoicas/Residentes-api/internal/application/auth"
	"github.com/jhoicas/Residentes-api/internal/application/dto"
	"github.com/jhoicas/Residentes-api/internal/application/residents"
	"github.com/jhoicas/Residentes-api/internal/domain"
	"github.com/jhoicas/Residentes-api/internal/domain/entity"
	"github.com/jhoicas/Residentes-api/internal/domain/resident"
	"github.com/jhoicas/Residentes-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/Residentes-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Residentes-api/pkg/jwt"
	"github.com/jhoicas/Residentes-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "padron-test"
	adminID       = "00000000-0000-0000-0000-000000000001"
	userID        = "00000000-0000-0000-0000-000000000002"
	adminPassword = "clave-admin-123"
)

var hoy = time.Date(2024, 6, 14, 10, 0, 0, 0, time.UTC)

// castID rechaza ids que no son UUID como lo hace la columna uuid de PostgreSQL.
func castID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return &pgconn.PgError{Code: "22P02", Message: "invalid input syntax for type uuid: \"" + id + "\""}
	}
	return nil
}

type memUsers struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func (m *memUsers) Create(_ context.Context, u *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := castID(id); err != nil {
		return nil, err
	}
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUsers) UpdatePassword(_ context.Context, id, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

type memResidents struct {
	mu   sync.Mutex
	rows map[string]entity.Resident
}

func (m *memResidents) Create(_ context.Context, r *entity.Resident) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[r.ID] = *r
	return nil
}

func (m *memResidents) GetByID(_ context.Context, id string) (*entity.Resident, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := castID(id); err != nil {
		return nil, err
	}
	r, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (m *memResidents) ListAll(_ context.Context, newestFirst bool) ([]entity.Resident, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]entity.Resident, 0, len(m.rows))
	for _, r := range m.rows {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if newestFirst {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (m *memResidents) Update(_ context.Context, r *entity.Resident) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := castID(r.ID); err != nil {
		return err
	}
	if _, ok := m.rows[r.ID]; !ok {
		return domain.ErrNotFound
	}
	m.rows[r.ID] = *r
	return nil
}

func (m *memResidents) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := castID(id); err != nil {
		return err
	}
	if _, ok := m.rows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

type fakeRenderer struct{}

func (fakeRenderer) RosterReport(context.Context, []entity.Resident, *dto.StatsResponse, time.Time) ([]byte, error) {
	return []byte("%PDF-reporte"), nil
}

func (fakeRenderer) ResidentProfile(context.Context, *entity.Resident, time.Time) ([]byte, error) {
	return []byte("%PDF-ficha"), nil
}

func (fakeRenderer) RosterSheet(context.Context, []entity.Resident, time.Time) ([]byte, error) {
	return []byte("PK-xlsx"), nil
}

type testServer struct {
	app       *fiber.App
	users     *memUsers
	residents *memResidents
}

// newTestServer monta el router completo sobre almacenes en memoria con un admin y un user.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.MinCost)
	require.NoError(t, err)

	users := &memUsers{users: map[string]*entity.User{
		adminID: {ID: adminID, Email: "admin@barangay.local", PasswordHash: string(hash), Nickname: "Jefa", Role: entity.RoleAdmin},
		userID:  {ID: userID, Email: "vecino@barangay.local", PasswordHash: string(hash), Nickname: "Vecino", Role: entity.RoleUser},
	}}
	store := &memResidents{rows: map[string]entity.Resident{}}

	authUC := auth.NewAuthUseCase(users, memory.NewLimiter(100, time.Minute), memory.NewRevocationStore(), nil, auth.Config{
		Secret:     testJWTSecret,
		Expiration: time.Hour,
		Issuer:     testIssuer,
	}, logger.Nop())
	guard := access.NewGuard(authUC, users, logger.Nop())

	hub := memory.NewHub()
	svc := residents.NewService(store, hub, residents.Config{
		PageSize: 5,
		Rules: resident.Rules{
			NameMaxLength: 15,
			SubRegions:    []string{"Barangay 1", "Barangay 2", "Barangay 3", "Barangay 4"},
			Documents:     resident.DefaultDocumentPolicy(1 << 20),
		},
	}, nil, logger.Nop()).WithClock(func() time.Time { return hoy })

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:    authUC,
		Guard:     guard,
		Residents: svc,
		Exporter:  residents.NewExporter(svc, fakeRenderer{}, fakeRenderer{}),
		Broker:    hub,
		Site:      apphttp.SiteInfo{Name: "Barangay San Isidro", ContactEmail: "support@bris.com", ContactPhone: "(123) 456-7890"},
		Log:       logger.Nop(),
	})
	return &testServer{app: app, users: users, residents: store}
}

// tokenFor genera un token de sesión para el usuario indicado.
func tokenFor(t *testing.T, id string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, id, pkgjwt.PurposeSession, testIssuer, time.Hour)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return tok.Value
}

// do lanza la petición con el token como Bearer (si no está vacío) y body JSON opcional.
func (s *testServer) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// page lanza un GET de página con la cookie de sesión.
func (s *testServer) page(t *testing.T, path, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: apphttp.SessionCookie, Value: token})
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}
