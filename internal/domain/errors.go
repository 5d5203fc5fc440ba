package domain

import (
	"errors"
	"fmt"
)

// Tipos de erro do motor de vendas. Todo *Error carrega um deles em Kind.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrForbidden  = errors.New("forbidden")
	ErrUpstream   = errors.New("upstream error")
)

// Error é um erro com contexto adicional para as operações de venda
type Error struct {
	Kind    error  // Tipo do erro (ErrValidation, ErrNotFound, ...)
	Code    string // Código de erro para API
	ID      string // ID do registro envolvido (quando aplicável)
	Details string // Detalhes adicionais
}

func (e *Error) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Details)
	}
	return e.Kind.Error()
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// Message retorna apenas a parte legível do erro, sem o tipo
func (e *Error) Message() string {
	if e.Details != "" {
		return e.Details
	}
	return e.Kind.Error()
}

func NewError(kind error, code string, details string) *Error {
	return &Error{
		Kind:    kind,
		Code:    code,
		Details: details,
	}
}

func NewErrorWithID(kind error, code string, id string, details string) *Error {
	return &Error{
		Kind:    kind,
		Code:    code,
		ID:      id,
		Details: details,
	}
}

// IsValidation verifica se o erro é de validação de entrada
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsNotFound verifica se o erro indica registro inexistente
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict verifica se o erro indica conflito de estado
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// ReasonOf extrai a mensagem legível de qualquer erro, usada nas falhas de lote
func ReasonOf(err error) string {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Message()
	}
	return err.Error()
}
