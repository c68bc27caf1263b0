// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package surt

import "strings"

const upperhex = "0123456789ABCDEF"

// shouldEscape reports whether b must be percent-escaped in canonical
// output. The set mirrors archival SURT practice: alphanumerics and almost
// all printable punctuation pass through, while space, '%', '#', controls
// and non-ASCII bytes are escaped.
func shouldEscape(b byte) bool {
	if b <= ' ' || b >= 0x7F {
		return true
	}
	return b == '%' || b == '#'
}

// escapeOnce percent-escapes s in a single pass, emitting uppercase hex
// digits. Existing escape sequences are not recognized; their '%' is
// escaped again (callers unescape first, see minimalEscape).
func escapeOnce(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if shouldEscape(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 2*n)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if shouldEscape(c) {
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&0xF])
		} else {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// unescapeOnce decodes every valid %XX sequence in s once. Stray or
// truncated '%' sequences are kept verbatim. Decoding is byte-wise and
// total: no UTF-8 validity is required of the input or the result.
func unescapeOnce(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '%' && i+2 < len(s) {
			hi, ok1 := unhex(s[i+1])
			lo, ok2 := unhex(s[i+2])
			if ok1 && ok2 {
				b.WriteByte(hi<<4 | lo)
				i += 2
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}

// unescapeRepeatedly decodes percent-escapes until a fixpoint is reached,
// so doubly- and triply-encoded inputs collapse to their plain form.
func unescapeRepeatedly(s string) string {
	for {
		un := unescapeOnce(s)
		if un == s {
			return s
		}
		s = un
	}
}

// minimalEscape fully unescapes s and re-escapes it exactly once, yielding
// the canonical escaping: unreserved characters appear literally, unsafe
// bytes as uppercase %XX.
func minimalEscape(s string) string {
	return escapeOnce(unescapeRepeatedly(s))
}

func unhex(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
