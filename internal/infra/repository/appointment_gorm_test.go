package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/workshop-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/workshop-scheduler/internal/httperr"
)

func TestTranslate(t *testing.T) {
	duplicate := &pgconn.PgError{Code: "23505", ConstraintName: "idx_appointments_active_slot"}

	tests := []struct {
		name     string
		err      error
		conflict error
		want     error
	}{
		{"nil", nil, nil, nil},
		{"not found", gorm.ErrRecordNotFound, nil, domain.ErrNotFound},
		{"wrapped not found", fmt.Errorf("query: %w", gorm.ErrRecordNotFound), nil, domain.ErrNotFound},
		{"pg unique violation", duplicate, domain.ErrSlotAlreadyBooked, domain.ErrSlotAlreadyBooked},
		{"gorm duplicated key", gorm.ErrDuplicatedKey, domain.ErrAlreadyReviewed, domain.ErrAlreadyReviewed},
		{"unique violation without conflict", duplicate, nil, httperr.ErrStoreUnavailable},
		{"other pg error", &pgconn.PgError{Code: "57P01"}, domain.ErrSlotAlreadyBooked, httperr.ErrStoreUnavailable},
		{"connection", errors.New("dial tcp: connection refused"), nil, httperr.ErrStoreUnavailable},
		{"context", context.DeadlineExceeded, nil, httperr.ErrStoreUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translate("op", tt.err, tt.conflict)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}
}

func TestTranslate_StoreErrorKeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := translate("list appointments", cause, nil)

	var se *httperr.StoreError
	assert.ErrorAs(t, err, &se)
	assert.Equal(t, "list appointments", se.Op)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, domain.ErrSlotAlreadyBooked)
}
