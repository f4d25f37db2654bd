package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/mergington-activities-api/internal/models"
	"github.com/noah-isme/mergington-activities-api/internal/repository"
	appErrors "github.com/noah-isme/mergington-activities-api/pkg/errors"
)

type stubVerifier struct {
	calls  []string
	accept map[string]string
}

func (v *stubVerifier) Verify(password, hash string) bool {
	v.calls = append(v.calls, hash)
	return v.accept[hash] == password
}

type mockTeacherStore struct {
	teachers map[string]models.Teacher
	err      error
}

func (m *mockTeacherStore) FindByUsername(_ context.Context, username string) (*models.Teacher, error) {
	if m.err != nil {
		return nil, m.err
	}
	t, ok := m.teachers[username]
	if !ok {
		return nil, repository.ErrTeacherNotFound
	}
	return &t, nil
}

func newTestAuthService() (*AuthService, *stubVerifier) {
	verifier := &stubVerifier{accept: map[string]string{"hash-chen": "chess456"}}
	store := &mockTeacherStore{teachers: map[string]models.Teacher{
		"mchen": {Username: "mchen", DisplayName: "Mr. Chen", PasswordHash: "hash-chen", Role: models.RoleTeacher},
	}}
	svc := NewAuthService(store, verifier, nil, zap.NewNop(), AuthConfig{
		AccessTokenSecret: "secret",
		AccessTokenExpiry: time.Hour,
		Issuer:            "mergington-activities",
	})
	return svc, verifier
}

func TestAuthServiceAuthenticate(t *testing.T) {
	svc, verifier := newTestAuthService()
	ctx := context.Background()

	principal, err := svc.Authenticate(ctx, "mchen", "chess456")
	require.NoError(t, err)
	assert.Equal(t, &models.Principal{Username: "mchen", DisplayName: "Mr. Chen", Role: models.RoleTeacher}, principal)

	_, err = svc.Authenticate(ctx, "mchen", "wrong")
	assert.True(t, appErrors.Is(err, appErrors.ErrUnauthorized))

	verifier.calls = nil
	_, err = svc.Authenticate(ctx, "nobody", "chess456")
	assert.True(t, appErrors.Is(err, appErrors.ErrUnauthorized))
	assert.Equal(t, []string{dummyHash}, verifier.calls)
}

func TestAuthServiceAuthenticateStoreDown(t *testing.T) {
	svc := NewAuthService(&mockTeacherStore{err: fmt.Errorf("find: %w: %w", repository.ErrStoreUnavailable, errors.New("timeout"))},
		&stubVerifier{}, nil, nil, AuthConfig{AccessTokenSecret: "secret"})

	_, err := svc.Authenticate(context.Background(), "mchen", "chess456")
	assert.True(t, appErrors.Is(err, appErrors.ErrStoreUnavailable))
}

func TestAuthServiceLoginAndValidate(t *testing.T) {
	svc, _ := newTestAuthService()
	svc.WithMetrics(NewMetricsService())

	resp, err := svc.Login(context.Background(), models.LoginRequest{Username: "mchen", Password: "chess456"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	assert.Equal(t, "mchen", resp.Teacher.Username)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "mchen", claims.Username)
	assert.Equal(t, models.RoleTeacher, claims.Role)
	assert.Equal(t, "Mr. Chen", claims.Principal().DisplayName)
}

func TestAuthServiceLoginValidation(t *testing.T) {
	svc, _ := newTestAuthService()

	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "mchen"})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))

	_, err = svc.Login(context.Background(), models.LoginRequest{Username: "mchen", Password: "nope"})
	assert.True(t, appErrors.Is(err, appErrors.ErrUnauthorized))
}

func TestAuthServiceValidateTokenRejects(t *testing.T) {
	svc, _ := newTestAuthService()

	_, err := svc.ValidateToken("not-a-token")
	assert.True(t, appErrors.Is(err, appErrors.ErrUnauthorized))

	resp, err := svc.Login(context.Background(), models.LoginRequest{Username: "mchen", Password: "chess456"})
	require.NoError(t, err)

	other := NewAuthService(&mockTeacherStore{}, &stubVerifier{}, nil, nil, AuthConfig{AccessTokenSecret: "different", Issuer: "mergington-activities"})
	_, err = other.ValidateToken(resp.AccessToken)
	assert.True(t, appErrors.Is(err, appErrors.ErrUnauthorized))

	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = svc.ValidateToken(resp.AccessToken)
	assert.True(t, appErrors.Is(err, appErrors.ErrUnauthorized))
}

func TestAuthServiceRejectsForeignAlgorithm(t *testing.T) {
	svc, _ := newTestAuthService()

	claims := &models.JWTClaims{
		Username: "mchen",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "mergington-activities",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.True(t, appErrors.Is(err, appErrors.ErrUnauthorized))
}
