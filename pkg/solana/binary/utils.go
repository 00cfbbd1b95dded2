// Package binary implements the offset-based little-endian codec helpers
// shared by every account and instruction layout in this module. Fixed-width
// integers are little-endian, strings are 4-byte length prefixed, options are
// a 1-byte tag followed by the payload when the tag is 1.
//
// Put helpers assume the caller allocated the exact encoded size. Get
// helpers read from untrusted bytes and report whether the read stayed in
// bounds; on a false return the destination and offset are unspecified.
package binary

import (
	"crypto/ed25519"
	"encoding/binary"
)

func PutDiscriminator(dst []byte, v []byte, offset *int) {
	copy(dst[*offset:], v)
	*offset += 8
}

func GetDiscriminator(src []byte, dst *[]byte, offset *int) bool {
	if len(src)-*offset < 8 {
		return false
	}
	*dst = make([]byte, 8)
	copy(*dst, src[*offset:])
	*offset += 8
	return true
}

func PutKey(dst []byte, src ed25519.PublicKey, offset *int) {
	copy(dst[*offset:], src)
	*offset += ed25519.PublicKeySize
}

func GetKey(src []byte, dst *ed25519.PublicKey, offset *int) bool {
	if len(src)-*offset < ed25519.PublicKeySize {
		return false
	}
	*dst = make([]byte, ed25519.PublicKeySize)
	copy(*dst, src[*offset:])
	*offset += ed25519.PublicKeySize
	return true
}

func PutUint8(dst []byte, v uint8, offset *int) {
	dst[*offset] = v
	*offset += 1
}

func GetUint8(src []byte, dst *uint8, offset *int) bool {
	if len(src)-*offset < 1 {
		return false
	}
	*dst = src[*offset]
	*offset += 1
	return true
}

func PutUint16(dst []byte, v uint16, offset *int) {
	binary.LittleEndian.PutUint16(dst[*offset:], v)
	*offset += 2
}

func GetUint16(src []byte, dst *uint16, offset *int) bool {
	if len(src)-*offset < 2 {
		return false
	}
	*dst = binary.LittleEndian.Uint16(src[*offset:])
	*offset += 2
	return true
}

func PutUint32(dst []byte, v uint32, offset *int) {
	binary.LittleEndian.PutUint32(dst[*offset:], v)
	*offset += 4
}

func GetUint32(src []byte, dst *uint32, offset *int) bool {
	if len(src)-*offset < 4 {
		return false
	}
	*dst = binary.LittleEndian.Uint32(src[*offset:])
	*offset += 4
	return true
}

func PutUint64(dst []byte, v uint64, offset *int) {
	binary.LittleEndian.PutUint64(dst[*offset:], v)
	*offset += 8
}

func GetUint64(src []byte, dst *uint64, offset *int) bool {
	if len(src)-*offset < 8 {
		return false
	}
	*dst = binary.LittleEndian.Uint64(src[*offset:])
	*offset += 8
	return true
}

func PutInt64(dst []byte, v int64, offset *int) {
	binary.LittleEndian.PutUint64(dst[*offset:], uint64(v))
	*offset += 8
}

func GetInt64(src []byte, dst *int64, offset *int) bool {
	if len(src)-*offset < 8 {
		return false
	}
	*dst = int64(binary.LittleEndian.Uint64(src[*offset:]))
	*offset += 8
	return true
}

func PutBool(dst []byte, v bool, offset *int) {
	if v {
		dst[*offset] = 1
	} else {
		dst[*offset] = 0
	}
	*offset += 1
}

func GetBool(src []byte, dst *bool, offset *int) bool {
	if len(src)-*offset < 1 {
		return false
	}
	*dst = src[*offset] == 1
	*offset += 1
	return true
}

func PutString(dst []byte, src string, offset *int) {
	PutUint32(dst, uint32(len(src)), offset)
	copy(dst[*offset:], src)
	*offset += len(src)
}

func GetString(src []byte, dst *string, offset *int) bool {
	var length uint32
	if !GetUint32(src, &length, offset) {
		return false
	}
	if uint64(length) > uint64(len(src)-*offset) {
		return false
	}
	*dst = string(src[*offset : *offset+int(length)])
	*offset += int(length)
	return true
}

// Option helpers use a 1-byte discriminant; tag 0 carries no payload bytes.

func PutOptionalKey(dst []byte, src ed25519.PublicKey, offset *int) {
	if len(src) > 0 {
		dst[*offset] = 1
		*offset += 1
		PutKey(dst, src, offset)
		return
	}
	dst[*offset] = 0
	*offset += 1
}

func GetOptionalKey(src []byte, dst *ed25519.PublicKey, offset *int) bool {
	if len(src)-*offset < 1 {
		return false
	}
	tag := src[*offset]
	*offset += 1
	if tag == 1 {
		return GetKey(src, dst, offset)
	}
	*dst = nil
	return true
}

func PutOptionalInt64(dst []byte, v *int64, offset *int) {
	if v != nil {
		dst[*offset] = 1
		*offset += 1
		PutInt64(dst, *v, offset)
		return
	}
	dst[*offset] = 0
	*offset += 1
}

func GetOptionalInt64(src []byte, dst **int64, offset *int) bool {
	if len(src)-*offset < 1 {
		return false
	}
	tag := src[*offset]
	*offset += 1
	if tag == 1 {
		var v int64
		if !GetInt64(src, &v, offset) {
			return false
		}
		*dst = &v
		return true
	}
	*dst = nil
	return true
}

func PutOptionalUint16(dst []byte, v *uint16, offset *int) {
	if v != nil {
		dst[*offset] = 1
		*offset += 1
		PutUint16(dst, *v, offset)
		return
	}
	dst[*offset] = 0
	*offset += 1
}

func GetOptionalUint16(src []byte, dst **uint16, offset *int) bool {
	if len(src)-*offset < 1 {
		return false
	}
	tag := src[*offset]
	*offset += 1
	if tag == 1 {
		var v uint16
		if !GetUint16(src, &v, offset) {
			return false
		}
		*dst = &v
		return true
	}
	*dst = nil
	return true
}

func PutOptionalUint64(dst []byte, v *uint64, offset *int) {
	if v != nil {
		dst[*offset] = 1
		*offset += 1
		PutUint64(dst, *v, offset)
		return
	}
	dst[*offset] = 0
	*offset += 1
}

func GetOptionalUint64(src []byte, dst **uint64, offset *int) bool {
	if len(src)-*offset < 1 {
		return false
	}
	tag := src[*offset]
	*offset += 1
	if tag == 1 {
		var v uint64
		if !GetUint64(src, &v, offset) {
			return false
		}
		*dst = &v
		return true
	}
	*dst = nil
	return true
}

// SPL token account layouts predate the 1-byte option convention and use a
// 4-byte COption tag instead.

const coptionSize = 4

func PutCOptionKey(dst []byte, src ed25519.PublicKey, offset *int) {
	if len(src) > 0 {
		dst[*offset] = 1
		copy(dst[*offset+coptionSize:], src)
	}
	*offset += coptionSize + ed25519.PublicKeySize
}

func GetCOptionKey(src []byte, dst *ed25519.PublicKey, offset *int) bool {
	if len(src)-*offset < coptionSize+ed25519.PublicKeySize {
		return false
	}
	if src[*offset] == 1 {
		*dst = make([]byte, ed25519.PublicKeySize)
		copy(*dst, src[*offset+coptionSize:])
	}
	*offset += coptionSize + ed25519.PublicKeySize
	return true
}

func PutCOptionUint64(dst []byte, v *uint64, offset *int) {
	if v != nil {
		dst[*offset] = 1
		binary.LittleEndian.PutUint64(dst[*offset+coptionSize:], *v)
	}
	*offset += coptionSize + 8
}

func GetCOptionUint64(src []byte, dst **uint64, offset *int) bool {
	if len(src)-*offset < coptionSize+8 {
		return false
	}
	if src[*offset] == 1 {
		v := binary.LittleEndian.Uint64(src[*offset+coptionSize:])
		*dst = &v
	}
	*offset += coptionSize + 8
	return true
}

func PutOptionalString(dst []byte, v *string, offset *int) {
	if v != nil {
		dst[*offset] = 1
		*offset += 1
		PutString(dst, *v, offset)
		return
	}
	dst[*offset] = 0
	*offset += 1
}

func GetOptionalString(src []byte, dst **string, offset *int) bool {
	if len(src)-*offset < 1 {
		return false
	}
	tag := src[*offset]
	*offset += 1
	if tag == 1 {
		var v string
		if !GetString(src, &v, offset) {
			return false
		}
		*dst = &v
		return true
	}
	*dst = nil
	return true
}
