package strutil

func LStripWS(str string) string {
	for i := 0; i < len(str); i++ {
		switch str[i] {
		case ' ', '\t':
		default:
			return str[i:]
		}
	}

	return ""
}

func RStripWS(str string) string {
	for i := len(str); i > 0; i-- {
		switch str[i-1] {
		case ' ', '\t':
		default:
			return str[:i]
		}
	}

	return ""
}

// StripWS strips optional whitespaces (SP and HTAB) from both sides.
func StripWS(str string) string {
	return RStripWS(LStripWS(str))
}

// CutWS splits the string around the first run of whitespaces. found is false if there
// are no whitespaces at all.
func CutWS(str string) (before, after string, found bool) {
	for i := 0; i < len(str); i++ {
		switch str[i] {
		case ' ', '\t':
			return str[:i], LStripWS(str[i:]), true
		}
	}

	return str, "", false
}
