package bmscore

const base36Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// base36Digit decodes one uppercase base-36 digit. Lowercase is
// deliberately rejected, matching BMS editors that treat case as
// significant rather than folding it.
func base36Digit(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 10, true
	default:
		return 0, false
	}
}

// base36Pair decodes a two-character base-36 token "xx" into an
// index in [0, 1295].
func base36Pair(a, b byte) (int, bool) {
	da, ok := base36Digit(a)
	if !ok {
		return 0, false
	}
	db, ok := base36Digit(b)
	if !ok {
		return 0, false
	}
	return da*36 + db, true
}

// base36Encode renders an index in [0, 1295] as its two-character
// base-36 token, for diagnostics.
func base36Encode(idx int) string {
	if idx < 0 || idx >= indexCap {
		return "??"
	}
	return string([]byte{base36Alphabet[idx/36], base36Alphabet[idx%36]})
}
