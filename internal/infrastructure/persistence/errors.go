package persistence

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/opsuite/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// PostgreSQL error codes this layer cares about.
const (
	pgUniqueViolation      = "23505"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

// translateError maps driver-level errors to domain errors. Serialization
// failures and deadlocks become TRANSIENT_CONFLICT so callers know the
// operation is safe to retry.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return shared.NewDomainError(shared.CodeAlreadyExists, "record already exists: "+pgErr.ConstraintName)
		case pgSerializationFailure, pgDeadlockDetected:
			return shared.NewDomainError(shared.CodeTransientConflict, "concurrent update conflict, retry the operation")
		}
	}
	return err
}
