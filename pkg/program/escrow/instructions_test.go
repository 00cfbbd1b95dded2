package escrow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeInstruction_Wire(t *testing.T) {
	args := &MakeInstructionArgs{Seed: 7, Receive: 100, Deposit: 50}
	data := args.Marshal()

	require.Len(t, data, 25)
	assert.Equal(t, uint8(CommandMake), data[0])
	assert.Equal(t, uint8(7), data[1]) // seed little-endian

	var decoded MakeInstructionArgs
	require.NoError(t, decoded.Unmarshal(data))
	assert.Equal(t, *args, decoded)

	assert.Equal(t, ErrInvalidInstructionData, decoded.Unmarshal(data[:24]))
}

func TestOpcodeOnlyInstructions(t *testing.T) {
	take := &TakeInstructionArgs{}
	assert.Equal(t, []byte{uint8(CommandTake)}, take.Marshal())
	require.NoError(t, take.Unmarshal([]byte{uint8(CommandTake)}))

	refund := &RefundInstructionArgs{}
	assert.Equal(t, []byte{uint8(CommandRefund)}, refund.Marshal())
	assert.Equal(t, ErrInvalidInstructionData, refund.Unmarshal(take.Marshal()))
}
