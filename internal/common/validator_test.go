package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidator(t *testing.T) {
	v := NewValidator()
	assert.True(t, v.Valid())

	v.Check(true, "ok", "should not be recorded")
	assert.True(t, v.Valid())

	v.Check(false, "title", "must be provided")
	assert.False(t, v.Valid())
	assert.Equal(t, "must be provided", v.Errors["title"])

	// first error for a field wins
	v.AddError("title", "a second message")
	assert.Equal(t, "must be provided", v.Errors["title"])

	err := v.ValidationError()
	var validationErr ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Equal(t, map[string]string{"title": "must be provided"}, validationErr.Errors)
}
