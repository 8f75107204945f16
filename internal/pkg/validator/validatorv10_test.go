package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type shoutInput struct {
	Word  string `json:"word" validate:"shout=loud"`
	Other string `json:"other" validate:"required"`
	Skip  string `json:"skip" validate:"omitempty,shout=soft"`
}

func newTestValidator(t *testing.T) *V10Validator {
	t.Helper()

	v, err := NewV10Validator()
	require.NoError(t, err)

	require.NoError(t, v.RegisterRule("shout", func(param, value string) (bool, string) {
		if value == strings.ToUpper(value) && value != "" {
			return true, ""
		}
		return false, "must be " + param + " upper case"
	}))

	return v
}

func TestV10Validator_RegisterRule(t *testing.T) {
	v := newTestValidator(t)

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, v.Validate(shoutInput{Word: "HEY", Other: "x"}))
	})

	t.Run("rule message and json keys", func(t *testing.T) {
		err := v.Validate(shoutInput{Word: "hey"})

		var verr V10ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "must be loud upper case", verr.Values()["word"])
		assert.Contains(t, verr.Values(), "other")
		assert.NotContains(t, verr.Values(), "skip")
	})

	t.Run("rule runs on empty string", func(t *testing.T) {
		err := v.Validate(shoutInput{Other: "x"})

		var verr V10ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "must be loud upper case", verr["word"])
	})
}

func TestV10ValidationError_Error(t *testing.T) {
	assert.Equal(t, "validation error", V10ValidationError{}.Error())
	assert.Equal(t, `{"a":"b"}`, V10ValidationError{"a": "b"}.Error())
}
