// Package pointer provides small constructors for optional values. Update
// instructions model "leave unchanged" as nil and "set" as a pointer, so
// call sites read as pointer.String("new name") rather than temp variables.
package pointer

// String returns a pointer to the provided string value
func String(value string) *string {
	return &value
}

// Uint16 returns a pointer to the provided uint16 value
func Uint16(value uint16) *uint16 {
	return &value
}

// Uint64 returns a pointer to the provided uint64 value
func Uint64(value uint64) *uint64 {
	return &value
}

// Int64 returns a pointer to the provided int64 value
func Int64(value int64) *int64 {
	return &value
}

// Bool returns a pointer to the provided bool value
func Bool(value bool) *bool {
	return &value
}
