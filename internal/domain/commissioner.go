package domain

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"

	"github.com/vfg2006/dealership-sales-api/pkg/apiErrors"
)

type PixKeyType string

const (
	PixKeyPhone  PixKeyType = "PHONE"
	PixKeyCPF    PixKeyType = "CPF"
	PixKeyEmail  PixKeyType = "EMAIL"
	PixKeyRandom PixKeyType = "RANDOM"
)

// PixKey é a identidade de pagamento do comissionado. Cada variante carrega
// exatamente o dado exigido pelo seu tipo.
type PixKey interface {
	Type() PixKeyType
	Value() string
	Validate() error
}

type PhoneKey struct{ Phone string }
type CPFKey struct{ CPF string }
type EmailKey struct{ Email string }
type RandomKey struct{ Key string }

var (
	phonePattern  = regexp.MustCompile(`^(\+?55)?\d{10,11}$`)
	randomPattern = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
)

func (k PhoneKey) Type() PixKeyType { return PixKeyPhone }
func (k PhoneKey) Value() string    { return k.Phone }
func (k PhoneKey) Validate() error {
	phone, ok := normalizePhone(k.Phone)
	if !ok || !phonePattern.MatchString(phone) {
		return invalidPixKey(k, "telefone deve conter DDD e número")
	}
	return nil
}

func (k CPFKey) Type() PixKeyType { return PixKeyCPF }
func (k CPFKey) Value() string    { return k.CPF }
func (k CPFKey) Validate() error {
	if !validCPF(k.CPF) {
		return invalidPixKey(k, "CPF inválido")
	}
	return nil
}

func (k EmailKey) Type() PixKeyType { return PixKeyEmail }
func (k EmailKey) Value() string    { return k.Email }
func (k EmailKey) Validate() error {
	if _, err := mail.ParseAddress(k.Email); err != nil || strings.Contains(k.Email, " ") {
		return invalidPixKey(k, "e-mail inválido")
	}
	return nil
}

func (k RandomKey) Type() PixKeyType { return PixKeyRandom }
func (k RandomKey) Value() string    { return k.Key }
func (k RandomKey) Validate() error {
	if !randomPattern.MatchString(k.Key) {
		return invalidPixKey(k, "chave aleatória deve ser um UUID")
	}
	return nil
}

// NewPixKey monta a variante correspondente ao tipo informado
func NewPixKey(keyType PixKeyType, value string) (PixKey, error) {
	value = strings.TrimSpace(value)

	var key PixKey
	switch PixKeyType(strings.ToUpper(string(keyType))) {
	case PixKeyPhone:
		if phone, ok := normalizePhone(value); ok {
			value = phone
		}
		key = PhoneKey{Phone: value}
	case PixKeyCPF:
		key = CPFKey{CPF: value}
	case PixKeyEmail:
		key = EmailKey{Email: strings.ToLower(value)}
	case PixKeyRandom:
		key = RandomKey{Key: strings.ToLower(value)}
	default:
		return nil, NewError(ErrValidation, apiErrors.ErrInvalidPixKey, fmt.Sprintf("tipo de chave PIX desconhecido: %s", keyType))
	}

	if err := key.Validate(); err != nil {
		return nil, err
	}

	return key, nil
}

func invalidPixKey(key PixKey, reason string) error {
	return NewError(ErrValidation, apiErrors.ErrInvalidPixKey, fmt.Sprintf("chave PIX %s: %s", key.Type(), reason))
}

// normalizePhone remove a formatação usual do telefone; qualquer outro caractere invalida o valor
func normalizePhone(s string) (string, bool) {
	var b strings.Builder
	for _, r := range s {
		switch {
		case (r >= '0' && r <= '9') || r == '+':
			b.WriteRune(r)
		case r == ' ' || r == '(' || r == ')' || r == '-' || r == '.':
		default:
			return "", false
		}
	}
	return b.String(), true
}

func validCPF(raw string) bool {
	digits := make([]int, 0, 11)
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			digits = append(digits, int(r-'0'))
		case r == '.' || r == '-':
		default:
			return false
		}
	}
	if len(digits) != 11 {
		return false
	}

	allEqual := true
	for _, d := range digits[1:] {
		if d != digits[0] {
			allEqual = false
			break
		}
	}
	if allEqual {
		return false
	}

	for _, size := range []int{9, 10} {
		sum := 0
		for i := 0; i < size; i++ {
			sum += digits[i] * (size + 1 - i)
		}
		check := (sum * 10) % 11
		if check == 10 {
			check = 0
		}
		if check != digits[size] {
			return false
		}
	}

	return true
}

type Commissioner struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	Name      string `json:"name"`
	Enabled   bool   `json:"enabled"`
	PixKey    PixKey `json:"-"`
}

// CommissionerResponse é a visão serializável do comissionado
type CommissionerResponse struct {
	ID         string     `json:"id"`
	CompanyID  string     `json:"company_id"`
	Name       string     `json:"name"`
	Enabled    bool       `json:"enabled"`
	PixKeyType PixKeyType `json:"pix_key_type"`
	PixKey     string     `json:"pix_key"`
}

func (c *Commissioner) Response() *CommissionerResponse {
	resp := &CommissionerResponse{
		ID:        c.ID,
		CompanyID: c.CompanyID,
		Name:      c.Name,
		Enabled:   c.Enabled,
	}
	if c.PixKey != nil {
		resp.PixKeyType = c.PixKey.Type()
		resp.PixKey = c.PixKey.Value()
	}
	return resp
}

type CreateCommissionerRequest struct {
	CompanyID  string     `json:"company_id"`
	Name       string     `json:"name"`
	PixKeyType PixKeyType `json:"pix_key_type"`
	PixKey     string     `json:"pix_key"`
}
