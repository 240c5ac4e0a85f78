package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	SlotID string `json:"slotId" validate:"required"`
	Status string `json:"status" validate:"required,oneof=pending approved denied"`
}

func TestStruct_OK(t *testing.T) {
	assert.NoError(t, Struct(sample{SlotID: "s1", Status: "approved"}))
}

func TestStruct_FieldErrors(t *testing.T) {
	err := Struct(sample{Status: "cancelled"})

	var verr *Error
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Fields, 2)

	assert.Equal(t, FieldError{Field: "slotId", Message: "is required"}, verr.Fields[0])
	assert.Equal(t, "status", verr.Fields[1].Field)
	assert.Equal(t, "must be one of: pending, approved, denied", verr.Fields[1].Message)
	assert.Contains(t, err.Error(), "slotId is required")
}
