package authenticating

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/dealership-sales-api/internal/config"
	"github.com/vfg2006/dealership-sales-api/internal/domain"
	"github.com/vfg2006/dealership-sales-api/pkg/apiErrors"
)

// O login acontece no provedor de identidade; aqui só emitimos e validamos tokens
type Authenticator interface {
	GenerateToken(subject domain.TokenSubject) (string, error)
	ValidateToken(tokenString string) (*domain.Claims, error)
}

type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewService(cfg config.Auth) Authenticator {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Service{
		secret: []byte(cfg.Secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (s *Service) GenerateToken(subject domain.TokenSubject) (string, error) {
	if strings.TrimSpace(subject.UserID) == "" {
		return "", domain.NewError(domain.ErrValidation, apiErrors.ErrMissingRequiredData, "usuário é obrigatório")
	}
	if err := subject.Validate(); err != nil {
		return "", err
	}

	now := s.now()
	claims := domain.Claims{
		UserID:        subject.UserID,
		UserName:      subject.Name,
		UserEmail:     subject.Email,
		UserRole:      subject.Role,
		UserCompanyID: subject.CompanyID,
		UserUnitID:    subject.UnitID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		logrus.WithError(err).Error("Erro ao assinar token")
		return "", fmt.Errorf("erro ao assinar token: %w", err)
	}
	return signed, nil
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, tokenError(err)
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, domain.NewError(ErrInvalidToken, apiErrors.ErrInvalidToken, "token inválido")
	}
	if err := claims.AuthContext().Validate(); err != nil {
		return nil, domain.NewError(ErrInvalidToken, apiErrors.ErrInvalidToken, domain.ReasonOf(err))
	}
	return claims, nil
}
