// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package surt

import (
	"fmt"
	"math/big"
	"net/netip"
	"regexp"
	"strconv"
	"strings"
)

var (
	reDecimalIP = regexp.MustCompile(`^([1-9][0-9]*)(\.[0-9]+)?(\.[0-9]+)?(\.[0-9]+)?$`)
	reOctalIP   = regexp.MustCompile(`^(0[0-7]*)(\.[0-7]+)?(\.[0-7]+)?(\.[0-7]+)?$`)
	// reIPv4 recognizes a complete dotted-quad-shaped host. Anchored at both
	// ends: a domain that merely ends in four numeric labels is not an IP.
	reIPv4 = regexp.MustCompile(`^(?:\d{1,3}\.){3}\d{1,3}$`)
)

// attemptIPFormats canonicalizes the many numeric host spellings found in
// crawl data to dotted-quad form: whole decimal numbers ("3279880203"),
// numbers above 2^32 (low 32 bits win, matching wayback liveweb records),
// partial dotted decimals with carry ("10.0.258"), and octal quads
// ("017.0.0.1"). Returns false when the host is not a numeric IP spelling.
func attemptIPFormats(host string) (string, bool) {
	if host == "" {
		return "", false
	}

	if v, err := strconv.ParseUint(host, 10, 32); err == nil {
		return formatIPv4(uint32(v)), true
	}
	if n, ok := new(big.Int).SetString(host, 10); ok && n.Sign() >= 0 {
		if n.BitLen() > 128 {
			return "", false
		}
		low := new(big.Int).And(n, big.NewInt(0).SetUint64(0xffffffff))
		return formatIPv4(uint32(low.Uint64())), true
	}

	if reDecimalIP.MatchString(host) {
		coerced, ok := coerceIP(host)
		if !ok {
			return "", false
		}
		if addr, err := netip.ParseAddr(coerced); err == nil {
			return addr.String(), true
		}
		return "", false
	}

	if reOctalIP.MatchString(host) {
		parts := strings.Split(host, ".")
		dec := make([]string, len(parts))
		for i, p := range parts {
			v, err := strconv.ParseUint(p, 8, 32)
			if err != nil {
				return "", false
			}
			dec[i] = strconv.FormatUint(v, 10)
		}
		if addr, err := netip.ParseAddr(strings.Join(dec, ".")); err == nil {
			return addr.String(), true
		}
	}

	return "", false
}

// coerceIP re-reads a partial dotted-decimal spelling as a big-endian byte
// string: every part becomes two hex digits (four when it overflows a
// byte), and the concatenation is re-chunked into decimal octets. This is
// how "10.0.258" becomes "10.0.1.2".
func coerceIP(host string) (string, bool) {
	var hexdigits []byte
	for _, part := range strings.Split(host, ".") {
		v, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			return "", false
		}
		h := strings.ToUpper(strconv.FormatUint(v, 16))
		if v > 255 || v < 16 {
			h = "0" + h
		}
		hexdigits = append(hexdigits, h...)
	}

	var parts []string
	for i := 0; i < len(hexdigits); i += 2 {
		end := i + 2
		if end > len(hexdigits) {
			end = len(hexdigits)
		}
		v, err := strconv.ParseUint(string(hexdigits[i:end]), 16, 32)
		if err != nil {
			return "", false
		}
		parts = append(parts, strconv.FormatUint(v, 10))
	}
	return strings.Join(parts, "."), true
}

func formatIPv4(v uint32) string {
	return fmt.Sprintf("%d.%d.%d.%d", byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

// isIPv4Literal reports whether host looks like a complete dotted quad.
// Used by the reorderer to keep IP literals in natural order.
func isIPv4Literal(host string) bool {
	return reIPv4.MatchString(host)
}
