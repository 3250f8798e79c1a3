package docstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckFanOut(t *testing.T) {
	assert.NoError(t, CheckFanOut(nil))
	assert.NoError(t, CheckFanOut(make([]string, MaxInValues)))

	err := CheckFanOut(make([]string, MaxInValues+1))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFanOutExceeded)
}
