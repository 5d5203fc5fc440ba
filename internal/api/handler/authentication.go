package handler

import (
	"net/http"

	"github.com/vfg2006/dealership-sales-api/internal/domain"
	"github.com/vfg2006/dealership-sales-api/internal/usecases/authenticating"
	"github.com/vfg2006/dealership-sales-api/pkg/log"
	"github.com/vfg2006/dealership-sales-api/pkg/middleware"
)

type tokenResponse struct {
	Token string `json:"token"`
}

type meResponse struct {
	UserID    string      `json:"user_id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	CompanyID string      `json:"company_id,omitempty"`
	UnitID    string      `json:"unit_id,omitempty"`
}

// IssueToken emite um token para outro usuário; usado pela integração com o provedor de identidade
func IssueToken(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var subject domain.TokenSubject
		if !decodeBody(w, r, &subject) {
			return
		}

		token, err := service.GenerateToken(subject)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}

		logger.WithFields(log.Fields{
			"user_id": subject.UserID,
			"role":    subject.Role,
		}).Info("auth: token emitido")

		writeJSON(w, http.StatusCreated, tokenResponse{Token: token})
	}
}

func GetMe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			authFromRequest(w, r)
			return
		}

		writeJSON(w, http.StatusOK, meResponse{
			UserID:    claims.UserID,
			Name:      claims.UserName,
			Email:     claims.UserEmail,
			Role:      claims.UserRole,
			CompanyID: claims.UserCompanyID,
			UnitID:    claims.UserUnitID,
		})
	}
}
