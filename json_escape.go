package zipkin

import "unicode/utf8"

// For JSON-escaping; see appendEscaped below.
const _hex = "0123456789abcdef"

// jsonEscapedSize returns the number of bytes s occupies once JSON-escaped,
// excluding the surrounding quotes. It mirrors appendEscaped branch for
// branch; the two must never disagree on a single byte or the size and write
// passes drift apart.
func jsonEscapedSize(s string) int {
	n := 0
	for i := 0; i < len(s); {
		if b := s[i]; b < utf8.RuneSelf {
			i++
			if 0x20 <= b && b != '\\' && b != '"' {
				n++
				continue
			}
			switch b {
			case '\\', '"', '\n', '\r', '\t':
				n += 2
			default:
				// \u00XX for the remaining control characters.
				n += 6
			}
			continue
		}
		c, size := utf8.DecodeRuneInString(s[i:])
		if c == utf8.RuneError && size == 1 {
			n += 6 // \ufffd
			i++
			continue
		}
		n += size
		i += size
	}
	return n
}

// appendEscaped JSON-escapes s and appends it to dst. Unlike the standard
// library's escaping function, it doesn't attempt to protect the user from
// browser vulnerabilities or JSONP-related problems.
func appendEscaped(dst []byte, s string) []byte {
	for i := 0; i < len(s); {
		if b := s[i]; b < utf8.RuneSelf {
			i++
			if 0x20 <= b && b != '\\' && b != '"' {
				dst = append(dst, b)
				continue
			}
			switch b {
			case '\\', '"':
				dst = append(dst, '\\', b)
			case '\n':
				dst = append(dst, '\\', 'n')
			case '\r':
				dst = append(dst, '\\', 'r')
			case '\t':
				dst = append(dst, '\\', 't')
			default:
				// Encode bytes < 0x20, except for the escape sequences above.
				dst = append(dst, `\u00`...)
				dst = append(dst, _hex[b>>4], _hex[b&0xF])
			}
			continue
		}
		c, size := utf8.DecodeRuneInString(s[i:])
		if c == utf8.RuneError && size == 1 {
			dst = append(dst, `\ufffd`...)
			i++
			continue
		}
		dst = append(dst, s[i:i+size]...)
		i += size
	}
	return dst
}
