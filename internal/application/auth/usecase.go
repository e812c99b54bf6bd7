package auth

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Residentes-api/internal/application/dto"
	"github.com/jhoicas/Residentes-api/internal/domain"
	"github.com/jhoicas/Residentes-api/internal/domain/entity"
	"github.com/jhoicas/Residentes-api/internal/domain/repository"
	"github.com/jhoicas/Residentes-api/internal/domain/resident"
	"github.com/jhoicas/Residentes-api/pkg/jwt"
	"github.com/jhoicas/Residentes-api/pkg/logger"
)

const minPasswordLength = 8

// Config parámetros de emisión de tokens.
type Config struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
	ResetTTL   time.Duration
	BaseURL    string // enlaces de restablecimiento
}

// Session sesión válida resuelta desde un token.
type Session struct {
	UserID    string
	TokenID   string
	ExpiresAt time.Time
}

// AuthUseCase registro, inicio/cierre de sesión y restablecimiento de contraseña.
type AuthUseCase struct {
	users       repository.UserRepository
	limiter     RateLimiter
	revocations RevocationStore
	mailer      Mailer
	cfg         Config
	log         *logger.Logger
	now         func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth. limiter y mailer pueden ser nil.
func NewAuthUseCase(users repository.UserRepository, limiter RateLimiter, revocations RevocationStore, mailer Mailer, cfg Config, log *logger.Logger) *AuthUseCase {
	if cfg.ResetTTL <= 0 {
		cfg.ResetTTL = 30 * time.Minute
	}
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{
		users:       users,
		limiter:     limiter,
		revocations: revocations,
		mailer:      mailer,
		cfg:         cfg,
		log:         log.Component("auth"),
		now:         time.Now,
	}
}

// RegisterUser crea una cuenta con rol user. El apodo se guarda con la primera letra en mayúscula.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	email := normalizeEmail(in.Email)
	if len(in.Password) < minPasswordLength {
		return nil, domain.ErrWeakPassword
	}
	existing, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Nickname:     resident.Capitalize(in.Nickname),
		Role:         entity.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	uc.log.Info().Str("user_id", user.ID).Msg("usuario registrado")
	return ToUserResponse(user), nil
}

// Login verifica email/password y emite un token de sesión. Los intentos se limitan
// por IP y por email; el error de credenciales no distingue email inexistente de password incorrecto.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest, clientIP string) (*dto.LoginResponse, error) {
	email := normalizeEmail(in.Email)
	for _, key := range []string{"login:ip:" + clientIP, "login:email:" + email} {
		if err := uc.allow(ctx, key); err != nil {
			return nil, err
		}
	}

	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.cfg.Secret, user.ID, jwt.PurposeSession, uc.cfg.Issuer, uc.cfg.Expiration)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token.Value,
		ExpiresAt: token.ExpiresAt,
		User:      *ToUserResponse(user),
	}, nil
}

func (uc *AuthUseCase) allow(ctx context.Context, key string) error {
	if uc.limiter == nil {
		return nil
	}
	ok, err := uc.limiter.Allow(ctx, key)
	if err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("limitador no disponible, se permite el intento")
		return nil
	}
	if !ok {
		return domain.ErrRateLimited
	}
	return nil
}

// Authenticate valida un token de sesión y comprueba que no haya sido revocado.
func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (*Session, error) {
	claims, err := jwt.Parse(uc.cfg.Secret, token, jwt.PurposeSession)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	revoked, err := uc.isRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	if revoked {
		return nil, domain.ErrUnauthorized
	}
	s := &Session{UserID: claims.UserID, TokenID: claims.ID}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	return s, nil
}

// Logout revoca el token hasta su expiración. Un token ya inválido no es error.
func (uc *AuthUseCase) Logout(ctx context.Context, token string) error {
	claims, err := jwt.Parse(uc.cfg.Secret, token, jwt.PurposeSession)
	if err != nil {
		return nil
	}
	return uc.revoke(ctx, claims)
}

// Me devuelve el usuario de la sesión.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return ToUserResponse(user), nil
}

// RequestPasswordReset envía un enlace de restablecimiento si el email existe.
// El resultado no revela si la cuenta existe; los fallos solo se registran.
func (uc *AuthUseCase) RequestPasswordReset(ctx context.Context, email string) {
	email = normalizeEmail(email)
	if err := uc.allow(ctx, "reset:email:"+email); err != nil {
		uc.log.Warn().Msg("restablecimiento limitado")
		return
	}
	user, err := uc.users.GetByEmail(ctx, email)
	if err != nil {
		uc.log.Error().Err(err).Msg("buscar usuario para restablecimiento")
		return
	}
	if user == nil {
		return
	}
	token, err := jwt.Generate(uc.cfg.Secret, user.ID, jwt.PurposeReset, uc.cfg.Issuer, uc.cfg.ResetTTL)
	if err != nil {
		uc.log.Error().Err(err).Msg("generar token de restablecimiento")
		return
	}
	link := strings.TrimRight(uc.cfg.BaseURL, "/") + "/auth/reset?token=" + url.QueryEscape(token.Value)
	if uc.mailer == nil {
		uc.log.Info().Str("user_id", user.ID).Str("link", link).Msg("enlace de restablecimiento (sin SMTP)")
		return
	}
	if err := uc.mailer.SendPasswordReset(ctx, user.Email, link); err != nil {
		uc.log.Error().Err(err).Str("user_id", user.ID).Msg("enviar correo de restablecimiento")
	}
}

// ConfirmPasswordReset cambia la contraseña con un token de restablecimiento de un solo uso.
func (uc *AuthUseCase) ConfirmPasswordReset(ctx context.Context, in dto.PasswordResetConfirmRequest) error {
	if len(in.Password) < minPasswordLength {
		return domain.ErrWeakPassword
	}
	claims, err := jwt.Parse(uc.cfg.Secret, in.Token, jwt.PurposeReset)
	if err != nil {
		return domain.ErrUnauthorized
	}
	revoked, err := uc.isRevoked(ctx, claims.ID)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	if revoked {
		return domain.ErrUnauthorized
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := uc.users.UpdatePassword(ctx, claims.UserID, string(hash)); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUnauthorized
		}
		return fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	return uc.revoke(ctx, claims)
}

func (uc *AuthUseCase) isRevoked(ctx context.Context, tokenID string) (bool, error) {
	if uc.revocations == nil {
		return false, nil
	}
	return uc.revocations.IsRevoked(ctx, tokenID)
}

func (uc *AuthUseCase) revoke(ctx context.Context, claims *jwt.Claims) error {
	if uc.revocations == nil {
		return nil
	}
	ttl := claims.Remaining(uc.now())
	if ttl <= 0 {
		return nil
	}
	if err := uc.revocations.Revoke(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	return nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ToUserResponse convierte la entidad en su DTO (sin hash).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Nickname:  u.Nickname,
		Role:      u.Role.String(),
		CreatedAt: u.CreatedAt,
	}
}
