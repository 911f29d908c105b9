package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Rate int    `yaml:"rate" validate:"gt=0"`
	Mode string `yaml:"mode,omitempty" validate:"oneof=a b"`
	Size int    `validate:"gte=2"`
}

func TestStruct_Valid(t *testing.T) {
	t.Parallel()

	require.NoError(t, Struct(sample{Rate: 1, Mode: "a", Size: 2}))
}

func TestStruct_ReadableMessages(t *testing.T) {
	t.Parallel()

	err := Struct(sample{Rate: 0, Mode: "c", Size: 1})
	require.ErrorIs(t, err, ErrInvalid)
	assert.Contains(t, err.Error(), "rate must be greater than 0 (got 0)")
	assert.Contains(t, err.Error(), `mode must be one of [a b] (got "c")`)
	assert.Contains(t, err.Error(), "Size must be at least 2 (got 1)")
}
