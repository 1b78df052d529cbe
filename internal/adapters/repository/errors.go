package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/jsamuelsen/quotevault/internal/domain"
)

// translate maps gorm failures onto the domain taxonomy.
func translate(err error, entity, id string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.NewNotFoundError(entity, id)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.NewConflictError(entity, "already exists")
	default:
		return fmt.Errorf("%s %s: %w", entity, id,
			domain.NewUnavailableError("database", err.Error()))
	}
}
