package hexstruct

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"sort"
)

// Standard conversion functions for fixed-width fields. Each checks
// that the captured window has the width it needs and fails with its
// own error otherwise. Integer and float converters carry the
// endianness in their name; there is no implicit default.

func fixedWidth(name string, want int, b []byte) error {
	if len(b) != want {
		return fmt.Errorf("%s: expected %d bytes, got %d", name, want, len(b))
	}
	return nil
}

// U8 converts a 1-byte window to uint8.
func U8(b []byte) (any, error) {
	if err := fixedWidth("u8", 1, b); err != nil {
		return nil, err
	}
	return b[0], nil
}

// U16LE converts a 2-byte window to uint16, little-endian.
func U16LE(b []byte) (any, error) {
	if err := fixedWidth("u16le", 2, b); err != nil {
		return nil, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// U16BE converts a 2-byte window to uint16, big-endian.
func U16BE(b []byte) (any, error) {
	if err := fixedWidth("u16be", 2, b); err != nil {
		return nil, err
	}
	return binary.BigEndian.Uint16(b), nil
}

// U32LE converts a 4-byte window to uint32, little-endian.
func U32LE(b []byte) (any, error) {
	if err := fixedWidth("u32le", 4, b); err != nil {
		return nil, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// U32BE converts a 4-byte window to uint32, big-endian.
func U32BE(b []byte) (any, error) {
	if err := fixedWidth("u32be", 4, b); err != nil {
		return nil, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// U64LE converts an 8-byte window to uint64, little-endian.
func U64LE(b []byte) (any, error) {
	if err := fixedWidth("u64le", 8, b); err != nil {
		return nil, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// U64BE converts an 8-byte window to uint64, big-endian.
func U64BE(b []byte) (any, error) {
	if err := fixedWidth("u64be", 8, b); err != nil {
		return nil, err
	}
	return binary.BigEndian.Uint64(b), nil
}

// S8 converts a 1-byte window to int8.
func S8(b []byte) (any, error) {
	if err := fixedWidth("s8", 1, b); err != nil {
		return nil, err
	}
	return int8(b[0]), nil
}

// S16LE converts a 2-byte window to int16, little-endian.
func S16LE(b []byte) (any, error) {
	if err := fixedWidth("s16le", 2, b); err != nil {
		return nil, err
	}
	return int16(binary.LittleEndian.Uint16(b)), nil
}

// S16BE converts a 2-byte window to int16, big-endian.
func S16BE(b []byte) (any, error) {
	if err := fixedWidth("s16be", 2, b); err != nil {
		return nil, err
	}
	return int16(binary.BigEndian.Uint16(b)), nil
}

// S32LE converts a 4-byte window to int32, little-endian.
func S32LE(b []byte) (any, error) {
	if err := fixedWidth("s32le", 4, b); err != nil {
		return nil, err
	}
	return int32(binary.LittleEndian.Uint32(b)), nil
}

// S32BE converts a 4-byte window to int32, big-endian.
func S32BE(b []byte) (any, error) {
	if err := fixedWidth("s32be", 4, b); err != nil {
		return nil, err
	}
	return int32(binary.BigEndian.Uint32(b)), nil
}

// S64LE converts an 8-byte window to int64, little-endian.
func S64LE(b []byte) (any, error) {
	if err := fixedWidth("s64le", 8, b); err != nil {
		return nil, err
	}
	return int64(binary.LittleEndian.Uint64(b)), nil
}

// S64BE converts an 8-byte window to int64, big-endian.
func S64BE(b []byte) (any, error) {
	if err := fixedWidth("s64be", 8, b); err != nil {
		return nil, err
	}
	return int64(binary.BigEndian.Uint64(b)), nil
}

// F32LE converts a 4-byte window to float32, little-endian.
func F32LE(b []byte) (any, error) {
	if err := fixedWidth("f32le", 4, b); err != nil {
		return nil, err
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(b)), nil
}

// F32BE converts a 4-byte window to float32, big-endian.
func F32BE(b []byte) (any, error) {
	if err := fixedWidth("f32be", 4, b); err != nil {
		return nil, err
	}
	return math.Float32frombits(binary.BigEndian.Uint32(b)), nil
}

// F64LE converts an 8-byte window to float64, little-endian.
func F64LE(b []byte) (any, error) {
	if err := fixedWidth("f64le", 8, b); err != nil {
		return nil, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(b)), nil
}

// F64BE converts an 8-byte window to float64, big-endian.
func F64BE(b []byte) (any, error) {
	if err := fixedWidth("f64be", 8, b); err != nil {
		return nil, err
	}
	return math.Float64frombits(binary.BigEndian.Uint64(b)), nil
}

// RawBytes returns the window unchanged as []byte. Any width.
func RawBytes(b []byte) (any, error) {
	return b, nil
}

// Hex returns the window as a lowercase hex string. Any width.
func Hex(b []byte) (any, error) {
	return hex.EncodeToString(b), nil
}

// UTF8 returns the window as a string. Any width; no validation is
// performed beyond what string conversion gives.
func UTF8(b []byte) (any, error) {
	return string(b), nil
}

// converters maps layout-file type names to conversion functions.
var converters = map[string]ConvertFunc{
	"u8":    U8,
	"u16le": U16LE,
	"u16be": U16BE,
	"u32le": U32LE,
	"u32be": U32BE,
	"u64le": U64LE,
	"u64be": U64BE,
	"s8":    S8,
	"s16le": S16LE,
	"s16be": S16BE,
	"s32le": S32LE,
	"s32be": S32BE,
	"s64le": S64LE,
	"s64be": S64BE,
	"f32le": F32LE,
	"f32be": F32BE,
	"f64le": F64LE,
	"f64be": F64BE,
	"bytes": RawBytes,
	"hex":   Hex,
	"utf8":  UTF8,
}

// Converter looks up a conversion function by its layout-file type
// name, e.g. "u32le" or "hex".
func Converter(name string) (ConvertFunc, bool) {
	fn, ok := converters[name]
	return fn, ok
}

// ConverterNames returns the known type names, sorted. Used by the CLI
// for help output and error messages.
func ConverterNames() []string {
	names := make([]string, 0, len(converters))
	for name := range converters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
