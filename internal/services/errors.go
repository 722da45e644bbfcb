package services

import (
	"errors"
	"fmt"

	"productselector/internal/apperror"
	"productselector/internal/repositories"
)

// storageError converts a repository failure into the error returned to callers.
// A nil notFound or conflict leaves that case to the generic wrap.
func storageError(err error, action string, notFound, conflict *apperror.Error) error {
	switch {
	case notFound != nil && errors.Is(err, repositories.ErrNotFound):
		return notFound
	case conflict != nil && errors.Is(err, repositories.ErrDuplicate):
		return conflict
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}
