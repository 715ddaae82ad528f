package hexconv

// Invalid marks non-hex characters in Halfbyte.
const Invalid = 0xFF

// Halfbyte maps an ASCII character to its hexadecimal value, or Invalid.
var Halfbyte = func() (table [256]byte) {
	for i := range table {
		table[i] = Invalid
	}

	for c := byte('0'); c <= '9'; c++ {
		table[c] = c - '0'
	}

	for c := byte('a'); c <= 'f'; c++ {
		table[c] = c - 'a' + 10
		table[c-'a'+'A'] = c - 'a' + 10
	}

	return table
}()

// Parse converts a string of at most maxDigits hex digits into a number. ok is false
// for an empty string, a non-hex character or too many digits.
func Parse(str string, maxDigits int) (value uint64, ok bool) {
	if len(str) == 0 || len(str) > maxDigits {
		return 0, false
	}

	for i := 0; i < len(str); i++ {
		half := Halfbyte[str[i]]
		if half == Invalid {
			return 0, false
		}

		value = (value << 4) | uint64(half)
	}

	return value, true
}
