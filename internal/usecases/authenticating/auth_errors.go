package authenticating

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vfg2006/dealership-sales-api/internal/domain"
	"github.com/vfg2006/dealership-sales-api/pkg/apiErrors"
)

var (
	ErrInvalidToken = errors.New("token inválido")
	ErrExpiredToken = errors.New("token expirado")
)

// tokenError converte a falha do jwt no erro de domínio com o código da API
func tokenError(err error) *domain.Error {
	if errors.Is(err, jwt.ErrTokenExpired) {
		return domain.NewError(ErrExpiredToken, apiErrors.ErrExpiredToken, "sessão expirada, faça login novamente")
	}
	return domain.NewError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
}

// IsTokenError verifica se o erro veio da validação do token
func IsTokenError(err error) bool {
	return errors.Is(err, ErrInvalidToken) || errors.Is(err, ErrExpiredToken)
}
