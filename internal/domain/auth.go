package domain

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vfg2006/dealership-sales-api/pkg/apiErrors"
)

type Role string

const (
	RoleAdmin   Role = "ADMIN"   // Operador da rede, vê custos
	RoleManager Role = "MANAGER" // Gerente de uma empresa
	RoleSeller  Role = "SELLER"  // Vendedor de uma unidade
)

type Claims struct {
	UserID        string
	UserName      string
	UserEmail     string
	UserRole      Role
	UserCompanyID string
	UserUnitID    string
	jwt.RegisteredClaims
}

// AuthContext é quem está chamando a operação e em qual escopo
type AuthContext struct {
	UserID    string
	Role      Role
	CompanyID string
	UnitID    string
}

func (c *Claims) AuthContext() AuthContext {
	return AuthContext{
		UserID:    c.UserID,
		Role:      c.UserRole,
		CompanyID: c.UserCompanyID,
		UnitID:    c.UserUnitID,
	}
}

func (a AuthContext) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// Require falha com ErrForbidden quando o papel não está entre os permitidos
func (a AuthContext) Require(roles ...Role) error {
	for _, role := range roles {
		if a.Role == role {
			return nil
		}
	}
	return NewError(ErrForbidden, apiErrors.ErrInsufficientPrivilege, fmt.Sprintf("papel %q sem permissão para esta operação", a.Role))
}

// CanAccessCompany verifica o escopo de empresa. Admin enxerga todas.
func (a AuthContext) CanAccessCompany(companyID string) bool {
	if a.IsAdmin() {
		return true
	}
	return a.CompanyID != "" && a.CompanyID == companyID
}

// CanAccessSale verifica o escopo de empresa e, para vendedores, de unidade
func (a AuthContext) CanAccessSale(sale *Sale) bool {
	if !a.CanAccessCompany(sale.CompanyID) {
		return false
	}
	if a.Role == RoleSeller {
		return a.UnitID != "" && a.UnitID == sale.UnitID
	}
	return true
}

func OutOfScope(id string) *Error {
	return NewErrorWithID(ErrForbidden, apiErrors.ErrOutOfScope, id, "registro fora do escopo do usuário")
}

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleSeller:
		return true
	}
	return false
}

// Validate exige o escopo que cada papel pressupõe
func (a AuthContext) Validate() error {
	switch {
	case !a.Role.IsValid():
		return NewError(ErrValidation, apiErrors.ErrInvalidFormat, fmt.Sprintf("papel inválido: %q", a.Role))
	case a.Role != RoleAdmin && a.CompanyID == "":
		return NewError(ErrValidation, apiErrors.ErrMissingRequiredData, "empresa obrigatória para o papel "+string(a.Role))
	case a.Role == RoleSeller && a.UnitID == "":
		return NewError(ErrValidation, apiErrors.ErrMissingRequiredData, "unidade obrigatória para vendedor")
	}
	return nil
}

// TokenSubject são os dados do usuário gravados no token
type TokenSubject struct {
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	CompanyID string `json:"company_id"`
	UnitID    string `json:"unit_id"`
}

func (s TokenSubject) Validate() error {
	return AuthContext{UserID: s.UserID, Role: s.Role, CompanyID: s.CompanyID, UnitID: s.UnitID}.Validate()
}
