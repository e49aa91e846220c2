package contact

import "strings"

const upperhex = "0123456789ABCDEF"

// EncodeComponent percent-encodes s the way mail clients and browsers decode mailto
// parameters: UTF-8 bytes are escaped except A-Z a-z 0-9 and - _ . ! ~ * ' ( ).
// Spaces become %20.
func EncodeComponent(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 3)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&0x0f])
	}
	return b.String()
}

func unreserved(c byte) bool {
	switch {
	case 'A' <= c && c <= 'Z', 'a' <= c && c <= 'z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}

// NormalizeLineEndings converts every line break (LF, lone CR or CRLF) to CRLF.
// Existing CRLF pairs are kept as they are so repeated calls give the same result.
func NormalizeLineEndings(s string) string {
	return lineBreaks.Replace(s)
}

var lineBreaks = strings.NewReplacer("\r\n", "\r\n", "\r", "\r\n", "\n", "\r\n")
