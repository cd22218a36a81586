package pgsql

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/SscSPs/job_tracker_app/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapPgError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
		status int
	}{
		{"no rows", pgx.ErrNoRows, apperrors.ErrNotFound, http.StatusNotFound},
		{"unique violation", &pgconn.PgError{Code: pgUniqueViolation}, apperrors.ErrDuplicate, http.StatusConflict},
		{"foreign key", &pgconn.PgError{Code: pgForeignKeyViolation}, apperrors.ErrNotFound, http.StatusNotFound},
		{"serialization failure", &pgconn.PgError{Code: pgSerializationFailure}, apperrors.ErrConflict, http.StatusConflict},
		{"deadlock", fmt.Errorf("exec: %w", &pgconn.PgError{Code: pgDeadlockDetected}), apperrors.ErrConflict, http.StatusConflict},
		{"lock not available", &pgconn.PgError{Code: pgLockNotAvailable}, apperrors.ErrConflict, http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapPgError(tt.err, "op")
			assert.ErrorIs(t, got, tt.target)
			assert.Equal(t, tt.status, apperrors.HTTPStatus(got))
		})
	}
}

func TestMapPgErrorPassThrough(t *testing.T) {
	assert.NoError(t, mapPgError(nil, "op"))

	appErr := apperrors.NewValidationError("bad")
	assert.Same(t, appErr, mapPgError(appErr, "op"))

	other := errors.New("connection reset")
	got := mapPgError(other, "op")
	assert.ErrorIs(t, got, other)
	assert.ErrorIs(t, got, apperrors.ErrInternal)
	assert.Equal(t, http.StatusInternalServerError, apperrors.HTTPStatus(got))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\% off\_now`, escapeLike("50% off_now"))
}
