package marketplace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeInstruction_Wire(t *testing.T) {
	args := &InitializeInstructionArgs{Name: "degen-mart", Fee: 500}
	data := args.Marshal()

	require.Len(t, data, 1+4+10+2)
	assert.Equal(t, uint8(CommandInitialize), data[0])
	assert.Equal(t, uint8(10), data[1]) // name length little-endian
	assert.Equal(t, "degen-mart", string(data[5:15]))

	var decoded InitializeInstructionArgs
	require.NoError(t, decoded.Unmarshal(data))
	assert.Equal(t, *args, decoded)

	var wrong ListInstructionArgs
	assert.Equal(t, ErrInvalidInstructionData, wrong.Unmarshal(data))

	// Name length prefix exceeding the payload is rejected.
	var malformed InitializeInstructionArgs
	err := malformed.Unmarshal([]byte{uint8(CommandInitialize), 0xff, 0xff, 0xff, 0xff, 'a', 'b'})
	assert.Equal(t, ErrInvalidInstructionData, err)
}

func TestListInstruction_Wire(t *testing.T) {
	args := &ListInstructionArgs{Price: 1_000_000}
	data := args.Marshal()

	require.Len(t, data, 9)
	assert.Equal(t, uint8(CommandList), data[0])

	var decoded ListInstructionArgs
	require.NoError(t, decoded.Unmarshal(data))
	assert.Equal(t, *args, decoded)

	delist := &DelistInstructionArgs{}
	assert.Equal(t, []byte{uint8(CommandDelist)}, delist.Marshal())
	purchase := &PurchaseInstructionArgs{}
	assert.Equal(t, ErrInvalidInstructionData, purchase.Unmarshal(delist.Marshal()))
}
