package validator

import (
	"errors"
	"fmt"
	"strings"
)

// dateTokens maps PHP-style date format characters to Go reference layout
// elements. Only tokens that round-trip through time.Parse and Time.Format are
// listed; anything else makes the format invalid.
var dateTokens = map[rune]string{
	'd': "02",      // day of month, leading zero
	'j': "2",       // day of month
	'D': "Mon",     // short weekday
	'l': "Monday",  // full weekday
	'm': "01",      // month, leading zero
	'n': "1",       // month
	'M': "Jan",     // short month name
	'F': "January", // full month name
	'Y': "2006",
	'y': "06",
	'H': "15",
	'h': "03",
	'g': "3",
	'i': "04",
	's': "05",
	'a': "pm",
	'A': "PM",
	'v': "000",
	'u': "000000",
	'T': "MST",
	'P': "-07:00",
	'O': "-0700",
}

// layoutFromFormat converts a PHP-style date format such as "Y-m-d H:i" into a
// Go layout. A backslash escapes the next character. Literal characters are
// copied as-is except digits and letters, which would be read back as layout
// elements by the time package.
func layoutFromFormat(format string) (string, error) {
	if format == "" {
		return "", errors.New("empty date format")
	}

	var b strings.Builder
	escaped := false
	for _, r := range format {
		if escaped {
			if err := writeLiteral(&b, r); err != nil {
				return "", err
			}
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		if elem, ok := dateTokens[r]; ok {
			if (r == 'v' || r == 'u') && !endsWithSeparator(&b) {
				return "", fmt.Errorf("fraction %q must follow \".\" or \",\"", r)
			}
			if mergesWithUnderscore(&b, elem) {
				return "", fmt.Errorf("%q cannot follow \"_\" in a date layout", r)
			}
			b.WriteString(elem)
			continue
		}
		if isLetter(r) {
			return "", fmt.Errorf("unsupported date format character %q", r)
		}
		if err := writeLiteral(&b, r); err != nil {
			return "", err
		}
	}
	if escaped {
		return "", fmt.Errorf("dangling escape in date format %q", format)
	}

	return b.String(), nil
}

func writeLiteral(b *strings.Builder, r rune) error {
	if isLetter(r) || (r >= '0' && r <= '9') {
		return fmt.Errorf("literal %q cannot be expressed in a date layout", r)
	}
	b.WriteRune(r)
	return nil
}

// endsWithSeparator reports whether the layout so far ends with a fractional
// seconds separator; the time package only reads "000" as a fraction after one.
func endsWithSeparator(b *strings.Builder) bool {
	s := b.String()
	return strings.HasSuffix(s, ".") || strings.HasSuffix(s, ",")
}

// mergesWithUnderscore reports whether elem would be read together with a
// preceding underscore as the "_2" or "__2" padded day elements. "_2006" is
// still a literal underscore followed by the year.
func mergesWithUnderscore(b *strings.Builder, elem string) bool {
	s := b.String()
	if !strings.HasSuffix(s, "_") || !strings.HasPrefix(elem, "2") {
		return false
	}
	return elem != "2006" || strings.HasSuffix(s, "__")
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
