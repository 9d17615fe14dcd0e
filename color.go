package xlsheet

import "strings"

// IsValidColor reports whether s is a 6-digit hex RGB color such as
// "1F4E79". The empty string means "no color" and is always valid.
func IsValidColor(s string) bool {
	if s == "" {
		return true
	}
	if len(s) != 6 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isHexDigit(s[i]) {
			return false
		}
	}
	return true
}

func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

// checkColor validates and upper-cases a color for the named field.
func checkColor(field, s string) (string, error) {
	if !IsValidColor(s) {
		return "", invalid(field, s, ErrInvalidColor)
	}
	return strings.ToUpper(s), nil
}

// normalizeColor turns a color read back from a package ("FF1F4E79",
// "#1f4e79") into the model's form. Anything unrecognized becomes "".
func normalizeColor(s string) string {
	s = strings.ToUpper(strings.TrimPrefix(s, "#"))
	if len(s) == 8 {
		s = s[2:]
	}
	if len(s) != 6 || !IsValidColor(s) {
		return ""
	}
	return s
}
