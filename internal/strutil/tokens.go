package strutil

import (
	"iter"
	"strings"

	"github.com/indigo-web/utils/strcomp"
)

// Tokens walks over elements of a comma-separated list, as in Connection or
// Transfer-Encoding values. Elements are stripped of whitespaces, empty ones are skipped.
func Tokens(value string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for len(value) > 0 {
			var token string
			token, value, _ = strings.Cut(value, ",")
			if token = StripWS(token); len(token) == 0 {
				continue
			}

			if !yield(token) {
				return
			}
		}
	}
}

// HasToken reports whether the comma-separated list contains the token, compared
// case-insensitively.
func HasToken(value, token string) bool {
	for t := range Tokens(value) {
		if strcomp.EqualFold(t, token) {
			return true
		}
	}

	return false
}

// LastToken returns the last non-empty element of the comma-separated list.
func LastToken(value string) (last string) {
	for t := range Tokens(value) {
		last = t
	}

	return last
}

// tchar as of RFC 9110, 5.6.2
var tchars = func() (table [256]bool) {
	for c := '0'; c <= '9'; c++ {
		table[c] = true
	}

	for c := 'a'; c <= 'z'; c++ {
		table[c] = true
		table[c-'a'+'A'] = true
	}

	for _, c := range "!#$%&'*+-.^_`|~" {
		table[c] = true
	}

	return table
}()

// IsToken reports whether the string is a non-empty sequence of tchars.
func IsToken(str string) bool {
	if len(str) == 0 {
		return false
	}

	for i := 0; i < len(str); i++ {
		if !tchars[str[i]] {
			return false
		}
	}

	return true
}

// IsFieldValue reports whether the string has no control characters other than HTAB,
// which is what RFC 9110, 5.5 allows in a field value.
func IsFieldValue(str string) bool {
	for i := 0; i < len(str); i++ {
		if c := str[i]; (c < ' ' && c != '\t') || c == 0x7f {
			return false
		}
	}

	return true
}
