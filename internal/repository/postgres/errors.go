package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"recruiter-pipeline-backend/internal/domain"
	"recruiter-pipeline-backend/pkg/metrics"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// query_canceled, raised when statement_timeout fires
const pgQueryCanceled = "57014"

// mapError translates driver errors into the store error taxonomy
func mapError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	if isTimeout(err) {
		return &domain.StoreError{Op: op, Err: fmt.Errorf("%w: %v", domain.ErrStoreTimeout, err)}
	}
	return &domain.StoreError{Op: op, Err: err}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgQueryCanceled
}

func observe(op string, start time.Time, err *error) {
	result := "ok"
	switch {
	case *err == nil:
	case errors.Is(*err, domain.ErrNotFound):
		result = "not_found"
	case errors.Is(*err, domain.ErrStoreTimeout):
		result = "timeout"
	default:
		result = "error"
	}
	metrics.ObserveStore(op, result, start)
}
