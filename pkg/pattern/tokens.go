package pattern

// Token is one element of the array-literal grammar: either a literal
// byte value or a whole-byte wildcard marker. Build tokens with Lit and
// Any.
type Token struct {
	value byte
	wild  bool
}

// Lit returns a token matching exactly the byte b.
func Lit(b byte) Token {
	return Token{value: b}
}

// Any is the wildcard token: it consumes one byte without comparison.
var Any = Token{wild: true}

// Tokens compiles a token list into a Pattern. Unlike the hex-string
// grammar, token lists operate at whole-byte granularity only, so the
// result never contains mixed segments. Tokens cannot fail: the token
// type admits no malformed input.
func Tokens(toks ...Token) Pattern {
	var b builder
	for _, t := range toks {
		if t.wild {
			b.wildcard()
		} else {
			b.literal(t.value)
		}
	}
	return b.pattern()
}

// Bytes compiles a byte slice into an all-literal Pattern.
func Bytes(bs []byte) Pattern {
	var b builder
	for _, v := range bs {
		b.literal(v)
	}
	return b.pattern()
}

// Text compiles the raw bytes of s into an all-literal Pattern. Useful
// for ASCII magic values, e.g. Text("HEX") matches 0x48 0x45 0x58.
func Text(s string) Pattern {
	return Bytes([]byte(s))
}
