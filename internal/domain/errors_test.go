package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	var v ValidationError
	assert.True(t, v.Empty())
	assert.NoError(t, v.OrNil())

	v.Add("phone", CodeRequired)
	v.Add("name", CodeRequired)
	v.Add("phone", CodeInvalidNumber) // el primero gana

	err := v.OrNil()
	assert.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.Equal(t, CodeRequired, v.Fields["phone"])
	assert.Equal(t, "entrada inválida (name: required, phone: required)", err.Error())

	var ve *ValidationError
	assert.True(t, errors.As(fmt.Errorf("crear cliente: %w", err), &ve))
	assert.Len(t, ve.Fields, 2)
}
