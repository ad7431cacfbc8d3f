package usecase

import (
	"errors"

	"recruiter-pipeline-backend/internal/domain"
	"recruiter-pipeline-backend/pkg/apperror"
	"recruiter-pipeline-backend/pkg/validation"
)

// translateStoreError maps domain and store failures onto API errors.
// ErrNotFound never says whether the record exists under another owner.
func translateStoreError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return apperror.NotFound("Application not found")
	case errors.Is(err, domain.ErrStoreTimeout):
		return apperror.Timeout(err)
	default:
		// includes ErrInvalidAggregation, which only a programming error can produce
		return apperror.Internal(err)
	}
}

func validationError(err error) error {
	return apperror.Validation(validation.FormatValidationErrors(err))
}

func requireOwner(ownerID string) error {
	if ownerID == "" {
		return apperror.Unauthorized("User not authenticated")
	}
	return nil
}
