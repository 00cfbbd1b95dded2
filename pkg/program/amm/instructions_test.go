package amm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fili8-labs/onchain/pkg/testutil"
)

func TestInitializeInstruction_OptionalAuthority(t *testing.T) {
	authority := testutil.NewKey(t)

	args := &InitializeInstructionArgs{Seed: 42, Authority: authority, Fee: 300}
	data := args.Marshal()
	require.Len(t, data, 1+8+1+32+2)
	assert.Equal(t, uint8(CommandInitialize), data[0])
	assert.Equal(t, uint8(1), data[9])

	var decoded InitializeInstructionArgs
	require.NoError(t, decoded.Unmarshal(data))
	assert.Equal(t, *args, decoded)

	// Absent authority collapses to the one-byte tag.
	args = &InitializeInstructionArgs{Seed: 42, Fee: 300}
	data = args.Marshal()
	require.Len(t, data, 1+8+1+2)
	assert.Equal(t, uint8(0), data[9])

	decoded = InitializeInstructionArgs{}
	require.NoError(t, decoded.Unmarshal(data))
	assert.Nil(t, decoded.Authority)
	assert.EqualValues(t, 300, decoded.Fee)
}

func TestSwapInstruction_Wire(t *testing.T) {
	args := &SwapInstructionArgs{IsX: true, Amount: 5_000, Min: 4_500}
	data := args.Marshal()

	require.Len(t, data, 18)
	assert.Equal(t, uint8(CommandSwap), data[0])
	assert.Equal(t, uint8(1), data[1])
	assert.Equal(t, []byte{0x88, 0x13}, data[2:4]) // 5000 little-endian

	var decoded SwapInstructionArgs
	require.NoError(t, decoded.Unmarshal(data))
	assert.Equal(t, *args, decoded)

	var wrong DepositInstructionArgs
	assert.Equal(t, ErrInvalidInstructionData, wrong.Unmarshal(data))
	assert.Equal(t, ErrInvalidInstructionData, decoded.Unmarshal(data[:17]))
}
