package ptr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointer_ReturnsAddressableCopyOfValue(t *testing.T) {
	p := Pointer(42)
	require := assert.New(t)
	require.NotNil(p)
	require.Equal(42, *p)
}

func TestValue_DereferencesNonNilPointer(t *testing.T) {
	n := 7
	assert.Equal(t, 7, Value(&n))
}

func TestValue_NilPointerYieldsZeroValue(t *testing.T) {
	var p *string
	assert.Equal(t, "", Value(p))
}

func TestClone_NilPointerReturnsNil(t *testing.T) {
	var p *int
	assert.Nil(t, Clone(p))
}

func TestClone_ReturnsDistinctPointerToEqualValue(t *testing.T) {
	n := 5
	c := Clone(&n)

	require := assert.New(t)
	require.NotNil(c)
	require.Equal(n, *c)
	require.NotSame(&n, c)
}
