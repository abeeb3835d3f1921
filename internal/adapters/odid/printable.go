package odid

import (
	"encoding/hex"
	"strings"
)

// decodePrintable recovers an identifier or description string from a
// NUL-padded field. The bytes are trimmed of trailing NULs and reduced to
// printable ASCII; if too little of the field is printable the raw bytes
// are surfaced as upper-case hex so the identity is not silently lost.
func decodePrintable(b []byte) string {
	trimmed := strings.TrimRight(string(b), "\x00")

	var sb strings.Builder
	for _, ch := range []byte(trimmed) {
		if ch >= 0x20 && ch <= 0x7E {
			sb.WriteByte(ch)
		}
	}
	printable := sb.String()

	min := 6
	if half := len(trimmed) / 2; half > min {
		min = half
	}
	if len(printable) >= min {
		return strings.TrimRight(printable, " ")
	}
	return strings.ToUpper(hex.EncodeToString(b))
}

// significantChars counts the characters of an identifier that carry
// information: NULs, ASCII zeros, spaces and dashes are padding or
// formatting and do not count.
func significantChars(id string) int {
	n := 0
	for _, ch := range id {
		switch ch {
		case 0, '0', ' ', '-':
		default:
			n++
		}
	}
	return n
}
