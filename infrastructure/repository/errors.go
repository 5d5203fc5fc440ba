// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	stderrors "errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/pkg/errors"
)

const pqForeignKeyViolation = "23503"

// ErrReferenced indica que o registro não pode ser removido por estar referenciado
var ErrReferenced = stderrors.New("registro referenciado por outra tabela")

// dbError anota falhas do driver com o código do postgres
func dbError(err error, action string) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == pqForeignKeyViolation {
			return errors.Wrapf(ErrReferenced, "%s: %s", action, pqErr.Constraint)
		}
		return fmt.Errorf("erro no banco de dados ao %s: %w (código: %s)", action, pqErr, pqErr.Code)
	}

	return errors.Wrapf(err, "erro ao %s", action)
}
