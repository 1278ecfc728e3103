package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("create booking: %w", CapacityExceeded(3))

	assert.Equal(t, KindCapacityExceeded, KindOf(err))
	appErr, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, 3, appErr.Remaining)
	assert.True(t, errors.Is(err, &Error{Kind: KindCapacityExceeded}))
	assert.False(t, errors.Is(err, &Error{Kind: KindNotFound}))
}

func TestKindOfForeignError(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
}

func TestFromDB(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"record not found", gorm.ErrRecordNotFound, KindNotFound},
		{"foreign key", gorm.ErrForeignKeyViolated, KindNotFound},
		{"duplicate", gorm.ErrDuplicatedKey, KindConflict},
		{"check constraint", gorm.ErrCheckConstraintViolated, KindInvalidInput},
		{"anything else", errors.New("connection reset"), KindStorageUnavailable},
		{"already classified", InvalidInput("bad"), KindInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(FromDB(tt.err, "session")))
		})
	}

	assert.NoError(t, FromDB(nil, "session"))
}

func TestFromDBDelete(t *testing.T) {
	err := FromDBDelete(gorm.ErrForeignKeyViolated, "cinema")
	assert.Equal(t, KindConflict, KindOf(err))
	assert.Contains(t, err.Error(), "cinema is still referenced")
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, HTTPStatus(KindNotFound))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(KindInvalidInput))
	assert.Equal(t, http.StatusConflict, HTTPStatus(KindInvalidTransition))
	assert.Equal(t, http.StatusConflict, HTTPStatus(KindCapacityExceeded))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(KindUnauthorized))
	assert.Equal(t, http.StatusServiceUnavailable, HTTPStatus(KindStorageUnavailable))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(KindInternal))
}

func TestInvalidTransitionMessage(t *testing.T) {
	err := InvalidTransition("completed", "cancel")
	assert.Equal(t, "cannot cancel a booking that is completed", err.Error())
}
