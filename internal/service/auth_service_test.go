package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/registrar-labs/course-registry-api/internal/models"
	"github.com/registrar-labs/course-registry-api/pkg/config"
	appErrors "github.com/registrar-labs/course-registry-api/pkg/errors"
)

func newAuthFixture() *AuthService {
	return NewAuthService(config.JWTConfig{
		Secret:     "test-secret",
		Expiration: time.Hour,
		Issuer:     "course-registry",
	}, zap.NewNop())
}

func TestAuthServiceIssueAndValidate(t *testing.T) {
	svc := newAuthFixture()

	token, err := svc.IssueToken("registrar", []string{models.ScopeManageCourses})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.True(t, claims.HasScope(models.ScopeManageCourses))
	assert.False(t, claims.HasScope(models.ScopeManageStudents))

	subject, err := claims.GetSubject()
	require.NoError(t, err)
	assert.Equal(t, "registrar", subject)
}

func TestAuthServiceRejectsTamperedToken(t *testing.T) {
	svc := newAuthFixture()

	token, err := svc.IssueToken("registrar", nil)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token + "x")
	require.Error(t, err)
	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErr.Code)
}

func TestAuthServiceRejectsExpiredToken(t *testing.T) {
	expired := NewAuthService(config.JWTConfig{
		Secret:     "test-secret",
		Expiration: -time.Minute,
		Issuer:     "course-registry",
	}, zap.NewNop())

	token, err := expired.IssueToken("registrar", nil)
	require.NoError(t, err)

	_, err = newAuthFixture().ValidateToken(token)
	require.Error(t, err)
}

func TestAuthServiceRejectsForeignIssuer(t *testing.T) {
	other := NewAuthService(config.JWTConfig{
		Secret:     "test-secret",
		Expiration: time.Hour,
		Issuer:     "someone-else",
	}, zap.NewNop())

	token, err := other.IssueToken("registrar", nil)
	require.NoError(t, err)

	_, err = newAuthFixture().ValidateToken(token)
	require.Error(t, err)
}
