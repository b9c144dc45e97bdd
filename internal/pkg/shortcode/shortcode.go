package shortcode

import (
	"crypto/rand"
)

// Crockford base32, no I/L/O/U to keep codes unambiguous when read aloud
// or printed on a booking slip.
const alphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

const Length = 10

// New returns an opaque booking code, e.g. "7Q2MZK04XA".
func New() string {
	buf := make([]byte, Length)
	if _, err := rand.Read(buf); err != nil {
		panic("shortcode: crypto/rand unavailable: " + err.Error())
	}
	for i, b := range buf {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}
	return string(buf)
}

// Valid reports whether s looks like a code produced by New.
func Valid(s string) bool {
	if len(s) != Length {
		return false
	}
	for i := 0; i < len(s); i++ {
		found := false
		for j := 0; j < len(alphabet); j++ {
			if s[i] == alphabet[j] {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
