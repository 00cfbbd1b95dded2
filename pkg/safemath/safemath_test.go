package safemath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckedArithmetic(t *testing.T) {
	sum, err := CheckedAddU64(math.MaxUint64-1, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), sum)

	_, err = CheckedAddU64(math.MaxUint64, 1)
	assert.Equal(t, ErrOverflow, err)

	diff, err := CheckedSubU64(10, 10)
	require.NoError(t, err)
	assert.Zero(t, diff)

	_, err = CheckedSubU64(10, 11)
	assert.Equal(t, ErrUnderflow, err)

	_, err = CheckedMulU64(math.MaxUint64/2+1, 2)
	assert.Equal(t, ErrOverflow, err)

	_, err = CheckedAddU32(math.MaxUint32, 1)
	assert.Equal(t, ErrOverflow, err)

	_, err = CheckedMulU32(math.MaxUint32/2+1, 2)
	assert.Equal(t, ErrOverflow, err)

	_, err = CheckedAddU8(math.MaxUint8, 1)
	assert.Equal(t, ErrOverflow, err)

	_, err = CheckedSubU8(0, 1)
	assert.Equal(t, ErrUnderflow, err)
}

func TestMulDiv(t *testing.T) {
	// The intermediate product overflows 64 bits but the quotient fits.
	v, err := MulDivFloor(math.MaxUint64, 3, 6)
	require.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64/2), v)

	floor, err := MulDivFloor(7, 3, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), floor)

	ceil, err := MulDivCeil(7, 3, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(11), ceil)

	exact, err := MulDivCeil(10, 4, 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(20), exact)

	_, err = MulDivFloor(1, 1, 0)
	assert.Equal(t, ErrDivisionByZero, err)

	_, err = MulDivFloor(math.MaxUint64, 2, 1)
	assert.Equal(t, ErrOverflow, err)
}
