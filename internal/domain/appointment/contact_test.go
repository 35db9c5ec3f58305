package appointment

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

func TestContactValidate(t *testing.T) {
	assert.NoError(t, Contact{Name: "Anna", Phone: "12 34 56 78"}.Validate())
	assert.NoError(t, Contact{Name: "Anna", Phone: "12345678", Email: "a@b.dk"}.Validate())

	err := Contact{Phone: "1", Email: "nope"}.Validate()
	var be httperr.BusinessError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, httperr.KindValidation, be.Kind)
	assert.Equal(t, "required", be.Fields["customer_name"])
	assert.Equal(t, "invalid", be.Fields["customer_phone"])
	assert.Equal(t, "invalid", be.Fields["customer_email"])
}

func TestContactNormalized(t *testing.T) {
	c := Contact{Name: " Anna ", Phone: " 123 ", Email: " a@b.dk"}.Normalized()
	assert.Equal(t, Contact{Name: "Anna", Phone: "123", Email: "a@b.dk"}, c)
}
