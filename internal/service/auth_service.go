package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/noah-isme/mergington-activities-api/internal/models"
	"github.com/noah-isme/mergington-activities-api/internal/repository"
	appErrors "github.com/noah-isme/mergington-activities-api/pkg/errors"
)

// dummyHash is verified for unknown usernames so both paths cost the same.
const dummyHash = "$argon2id$v=19$m=65536,t=3,p=4$c29tZXNhbHRzb21lc2FsdA$qpMPz3ePMLG1Ofx0sS1kCdDQbWkVMhNZ2Uu+bX0fFZ4"

type teacherStore interface {
	FindByUsername(ctx context.Context, username string) (*models.Teacher, error)
}

// PasswordVerifier checks a password against a stored hash.
type PasswordVerifier interface {
	Verify(password, hash string) bool
}

// AuthConfig defines configuration for token issuance.
type AuthConfig struct {
	AccessTokenSecret string
	AccessTokenExpiry time.Duration
	Issuer            string
}

// AuthService authenticates teachers and issues access tokens.
type AuthService struct {
	teachers  teacherStore
	verifier  PasswordVerifier
	validator *validator.Validate
	metrics   *MetricsService
	audit     *AuditService
	logger    *zap.Logger
	config    AuthConfig
	now       func() time.Time
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(teachers teacherStore, verifier PasswordVerifier, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if config.AccessTokenExpiry <= 0 {
		config.AccessTokenExpiry = 8 * time.Hour
	}
	return &AuthService{teachers: teachers, verifier: verifier, validator: validate, logger: logger, config: config, now: time.Now}
}

// WithMetrics attaches login counters.
func (s *AuthService) WithMetrics(metrics *MetricsService) *AuthService {
	s.metrics = metrics
	return s
}

// WithAudit records successful logins.
func (s *AuthService) WithAudit(audit *AuditService) *AuthService {
	s.audit = audit
	return s
}

// Authenticate verifies credentials and returns the teacher principal.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*models.Principal, error) {
	teacher, err := s.teachers.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrTeacherNotFound) {
			s.verifier.Verify(password, dummyHash)
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid username or password")
		}
		return nil, mapStoreError(err, "")
	}
	if !s.verifier.Verify(password, teacher.PasswordHash) {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid username or password")
	}
	return teacher.Principal(), nil
}

// Login authenticates a teacher and returns a signed access token.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "username and password are required")
	}

	principal, err := s.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		s.metrics.RecordLogin(false)
		if appErrors.Is(err, appErrors.ErrUnauthorized) {
			s.logger.Info("login rejected", zap.String("username", req.Username), zap.String("ip", req.IP))
		}
		return nil, err
	}

	issuedAt := s.now().UTC()
	token, err := s.generateAccessToken(principal, issuedAt)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create access token")
	}

	s.metrics.RecordLogin(true)
	if s.audit != nil {
		s.audit.Record(principal, models.AuditActionLogin, "auth", principal.Username, []byte(`{"status":"success"}`))
	}

	return &models.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.config.AccessTokenExpiry.Seconds()),
		IssuedAt:    issuedAt,
		Teacher:     *principal,
	}, nil
}

// ValidateToken parses and validates an access token returning the claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	opts := []jwt.ParserOption{jwt.WithTimeFunc(s.now)}
	if s.config.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.config.Issuer))
	}
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.AccessTokenSecret), nil
	}, opts...)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}

	return claims, nil
}

func (s *AuthService) generateAccessToken(principal *models.Principal, issuedAt time.Time) (string, error) {
	claims := &models.JWTClaims{
		Username:    principal.Username,
		DisplayName: principal.DisplayName,
		Role:        principal.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   principal.Username,
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.config.AccessTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.AccessTokenSecret))
}
