package binary

import (
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedWidthHelpers(t *testing.T) {
	data := make([]byte, 32)

	var offset int
	PutUint16(data, 0x1234, &offset)
	PutUint32(data, 0xdeadbeef, &offset)
	PutUint64(data, 42, &offset)
	PutInt64(data, -7, &offset)
	PutBool(data, true, &offset)
	require.Equal(t, 23, offset)

	// Little-endian layout.
	assert.Equal(t, []byte{0x34, 0x12}, data[:2])
	assert.Equal(t, []byte{0xef, 0xbe, 0xad, 0xde}, data[2:6])

	var (
		u16 uint16
		u32 uint32
		u64 uint64
		i64 int64
		b   bool
	)
	offset = 0
	require.True(t, GetUint16(data, &u16, &offset))
	require.True(t, GetUint32(data, &u32, &offset))
	require.True(t, GetUint64(data, &u64, &offset))
	require.True(t, GetInt64(data, &i64, &offset))
	require.True(t, GetBool(data, &b, &offset))

	assert.EqualValues(t, 0x1234, u16)
	assert.EqualValues(t, 0xdeadbeef, u32)
	assert.EqualValues(t, 42, u64)
	assert.EqualValues(t, -7, i64)
	assert.True(t, b)
}

func TestStringAndOptionHelpers(t *testing.T) {
	data := make([]byte, 128)

	key := ed25519.PublicKey(make([]byte, ed25519.PublicKeySize))
	key[0] = 0xff
	amount := uint64(1_000_000)

	var offset int
	PutString(data, "hello", &offset)
	PutOptionalKey(data, key, &offset)
	PutOptionalKey(data, nil, &offset)
	PutOptionalUint64(data, &amount, &offset)
	PutOptionalUint64(data, nil, &offset)
	PutOptionalString(data, nil, &offset)
	written := offset

	var (
		s       string
		someKey ed25519.PublicKey
		noneKey ed25519.PublicKey
		someU64 *uint64
		noneU64 *uint64
		noneStr *string
	)
	offset = 0
	require.True(t, GetString(data, &s, &offset))
	require.True(t, GetOptionalKey(data, &someKey, &offset))
	require.True(t, GetOptionalKey(data, &noneKey, &offset))
	require.True(t, GetOptionalUint64(data, &someU64, &offset))
	require.True(t, GetOptionalUint64(data, &noneU64, &offset))
	require.True(t, GetOptionalString(data, &noneStr, &offset))
	require.Equal(t, written, offset)

	assert.Equal(t, "hello", s)
	assert.Equal(t, key, someKey)
	assert.Nil(t, noneKey)
	require.NotNil(t, someU64)
	assert.Equal(t, amount, *someU64)
	assert.Nil(t, noneU64)
	assert.Nil(t, noneStr)
}

func TestGetHelpers_Bounds(t *testing.T) {
	var offset int

	var u64 uint64
	offset = 0
	assert.False(t, GetUint64([]byte{1, 2, 3}, &u64, &offset))

	var key ed25519.PublicKey
	offset = 0
	assert.False(t, GetKey(make([]byte, 31), &key, &offset))

	// A length prefix larger than the remaining payload.
	var s string
	offset = 0
	assert.False(t, GetString([]byte{0xff, 0xff, 0xff, 0xff, 'a', 'b', 'c', 'd'}, &s, &offset))

	// A sane prefix but truncated bytes.
	offset = 0
	assert.False(t, GetString([]byte{5, 0, 0, 0, 'h', 'i'}, &s, &offset))

	// Option tags with missing payloads.
	var optU64 *uint64
	offset = 0
	assert.False(t, GetOptionalUint64([]byte{1, 42}, &optU64, &offset))

	var optKey ed25519.PublicKey
	offset = 0
	assert.False(t, GetCOptionKey([]byte{1, 0, 0, 0}, &optKey, &offset))

	var u8 uint8
	offset = 0
	assert.False(t, GetUint8(nil, &u8, &offset))
}

func TestCOptionHelpers(t *testing.T) {
	data := make([]byte, 96)

	key := ed25519.PublicKey(make([]byte, ed25519.PublicKeySize))
	key[5] = 7
	reserve := uint64(2_039_280)

	var offset int
	PutCOptionKey(data, key, &offset)
	PutCOptionKey(data, nil, &offset)
	PutCOptionUint64(data, &reserve, &offset)
	require.Equal(t, (4+32)*2+4+8, offset)

	var (
		someKey ed25519.PublicKey
		noneKey ed25519.PublicKey
		someU64 *uint64
	)
	offset = 0
	require.True(t, GetCOptionKey(data, &someKey, &offset))
	require.True(t, GetCOptionKey(data, &noneKey, &offset))
	require.True(t, GetCOptionUint64(data, &someU64, &offset))

	assert.Equal(t, key, someKey)
	assert.Nil(t, noneKey)
	require.NotNil(t, someU64)
	assert.Equal(t, reserve, *someU64)
}
