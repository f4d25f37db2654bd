package service

import (
	"errors"

	"github.com/noah-isme/mergington-activities-api/internal/repository"
	appErrors "github.com/noah-isme/mergington-activities-api/pkg/errors"
)

// mapStoreError translates store outcomes into API errors.
func mapStoreError(err error, activity string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrActivityNotFound):
		return appErrors.Clone(appErrors.ErrActivityNotFound, "activity "+activity+" not found")
	case errors.Is(err, repository.ErrAlreadyRegistered):
		return appErrors.ErrAlreadyRegistered
	case errors.Is(err, repository.ErrCapacityExceeded):
		return appErrors.ErrCapacityExceeded
	case errors.Is(err, repository.ErrNotRegistered):
		return appErrors.ErrNotRegistered
	case errors.Is(err, repository.ErrStoreUnavailable):
		return appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, appErrors.ErrStoreUnavailable.Message)
	default:
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "activity store failed")
	}
}

// resultCode labels an outcome for metrics.
func resultCode(err error) string {
	if err == nil {
		return "ok"
	}
	return appErrors.FromError(err).Code
}
