package authenticating

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/dealership-sales-api/internal/config"
	"github.com/vfg2006/dealership-sales-api/internal/domain"
	"github.com/vfg2006/dealership-sales-api/pkg/apiErrors"
)

func newTestService(now time.Time) *Service {
	service := NewService(config.Auth{Secret: "segredo-de-teste", TokenTTL: time.Hour}).(*Service)
	service.now = func() time.Time { return now }
	return service
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	var domainErr *domain.Error
	require.True(t, errors.As(err, &domainErr), "esperava *domain.Error, recebeu %v", err)
	assert.Equal(t, code, domainErr.Code)
}

func TestService_GenerateAndValidateToken(t *testing.T) {
	now := time.Now()
	service := newTestService(now)

	token, err := service.GenerateToken(domain.TokenSubject{
		UserID:    "u-1",
		Name:      "Maria",
		Email:     "maria@example.com",
		Role:      domain.RoleSeller,
		CompanyID: "c1",
		UnitID:    "un1",
	})
	require.NoError(t, err)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, domain.AuthContext{UserID: "u-1", Role: domain.RoleSeller, CompanyID: "c1", UnitID: "un1"}, claims.AuthContext())
	assert.Equal(t, "Maria", claims.UserName)
}

func TestService_ValidateToken_Expirado(t *testing.T) {
	issued := time.Now().Add(-2 * time.Hour)
	token, err := newTestService(issued).GenerateToken(domain.TokenSubject{UserID: "u-1", Role: domain.RoleAdmin})
	require.NoError(t, err)

	_, err = newTestService(time.Now()).ValidateToken(token)
	assertCode(t, err, apiErrors.ErrExpiredToken)
	assert.True(t, IsTokenError(err))
}

func TestService_ValidateToken_AssinaturaInvalida(t *testing.T) {
	other := NewService(config.Auth{Secret: "outro-segredo"})
	token, err := other.GenerateToken(domain.TokenSubject{UserID: "u-1", Role: domain.RoleAdmin})
	require.NoError(t, err)

	_, err = newTestService(time.Now()).ValidateToken(token)
	assertCode(t, err, apiErrors.ErrInvalidToken)
}

func TestService_ValidateToken_MetodoNaoHMAC(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, domain.Claims{UserID: "u-1", UserRole: domain.RoleAdmin})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newTestService(time.Now()).ValidateToken(signed)
	assertCode(t, err, apiErrors.ErrInvalidToken)
}

func TestService_ValidateToken_EscopoIncompleto(t *testing.T) {
	service := newTestService(time.Now())

	claims := domain.Claims{
		UserID:   "u-1",
		UserRole: domain.RoleManager,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("segredo-de-teste"))
	require.NoError(t, err)

	_, err = service.ValidateToken(signed)
	assertCode(t, err, apiErrors.ErrInvalidToken)
}

func TestService_GenerateToken_Validacao(t *testing.T) {
	service := newTestService(time.Now())

	_, err := service.GenerateToken(domain.TokenSubject{Role: domain.RoleAdmin})
	assertCode(t, err, apiErrors.ErrMissingRequiredData)

	_, err = service.GenerateToken(domain.TokenSubject{UserID: "u-1", Role: "ROOT"})
	assertCode(t, err, apiErrors.ErrInvalidFormat)

	_, err = service.GenerateToken(domain.TokenSubject{UserID: "u-1", Role: domain.RoleSeller, CompanyID: "c1"})
	assertCode(t, err, apiErrors.ErrMissingRequiredData)
}
