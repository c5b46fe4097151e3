package booking

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingErrorMatching(t *testing.T) {
	err := fmt.Errorf("handler: %w", notFound("student", "s1", errors.New("record not found")))

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrSlotUnavailable)
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, KindStorageFailure, KindOf(errors.New("plain")))

	var be *BookingError
	assert.True(t, errors.As(err, &be))
	assert.Equal(t, "student", be.Entity)
	assert.True(t, be.ClientError())
	assert.False(t, storageFailure("x", nil).ClientError())
	assert.Contains(t, be.Error(), "student s1 not found")
}
