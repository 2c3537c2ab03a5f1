// Package pattern compiles byte-pattern text into an immutable segment list.
//
// A pattern describes a fixed-width byte layout: literal bytes that must
// match exactly, wildcard positions that consume bytes without checking,
// and mixed bytes where one nibble is literal and the other is wildcard.
//
// # Grammars
//
// Two surface grammars compile to the same segment model:
//
//   - Hex strings: pairs of hex digits, with "_" as a wildcard nibble.
//     "AABB" matches the bytes 0xAA 0xBB, "__" matches any byte, and
//     "A_" matches any byte whose high nibble is 0xA. Whitespace is
//     ignored and may be used to group bytes for readability.
//   - Token lists: Tokens(Lit(0x01), Any) builds the same model from
//     byte values and wildcard markers, at whole-byte granularity.
//
// Text builds a literal pattern from the raw bytes of a string, which is
// convenient for ASCII magic numbers such as "HEX" or "%PDF".
//
// # Compile Once, Match Many
//
// A compiled Pattern is immutable and safe for concurrent use. The total
// byte width is fixed at compile time and never depends on input data.
// Matching against byte streams is implemented by the hexstruct package.
package pattern
