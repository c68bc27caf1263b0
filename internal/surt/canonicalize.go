// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package surt

import (
	"net/netip"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/net/idna"
)

var reWWWPrefix = regexp.MustCompile(`^www\d*\.`)

// defaultPorts maps schemes to their well-known default port for the
// strip_default_port option. Read-only shared state.
var defaultPorts = map[string]int{
	"http":  80,
	"https": 443,
	"ftp":   21,
	"ws":    80,
	"wss":   443,
}

// Canonicalize applies the configured normalization rules to a decomposed
// URL. It is a total function: unrecognized or inapplicable normalizations
// are skipped, and no input can make it fail. The two passes mirror the
// lineage of the rules: escape/host/path normalization first, then the
// archival cleanup toggles.
func Canonicalize(u *HandyURL, opts *Options) *HandyURL {
	u = normalizeEscapes(u, opts)
	u = applyArchivalRules(u, opts)
	return u
}

// normalizeEscapes handles fragment dropping, percent-escape
// normalization, host IDNA/IP canonicalization and path dot-segment
// normalization.
func normalizeEscapes(u *HandyURL, opts *Options) *HandyURL {
	if opts.Bool("strip_fragment") {
		u.Fragment = ""
		u.HasFragment = false
	}

	if u.HasUser {
		u.User = minimalEscape(u.User)
	}
	if u.HasPass {
		u.Pass = minimalEscape(u.Pass)
	}
	if u.HasQuery {
		u.Query = minimalEscape(u.Query)
	}

	if u.Host != "" {
		u.Host = canonicalHost(u.Host)
	}

	path := u.Path
	hasPath := u.HasPath
	if hasPath {
		path = unescapeRepeatedly(path)
	}
	if u.Host != "" {
		// An authority URL always has a canonical path, "/" at minimum.
		if !hasPath {
			path = "/"
			hasPath = true
		}
		path = normalizePath(path)
	}
	if hasPath {
		u.Path = escapeOnce(path)
		u.HasPath = true
	}

	return u
}

// canonicalHost normalizes one host: bracketed IPv6 literals are rewritten
// to their canonical textual form; everything else is fully unescaped,
// IDNA-mapped to ASCII when non-ASCII, cleaned of stray dots, recognized
// numeric spellings are coerced to dotted quads, and the rest is
// lowercased and re-escaped.
func canonicalHost(host string) string {
	if strings.HasPrefix(host, "[") && strings.HasSuffix(host, "]") {
		if addr, err := netip.ParseAddr(host[1 : len(host)-1]); err == nil {
			return "[" + addr.String() + "]"
		}
		return host
	}

	h := unescapeRepeatedly(host)
	if !isASCII(h) {
		if ascii, err := idna.Lookup.ToASCII(h); err == nil {
			h = ascii
		}
	}
	h = strings.ReplaceAll(h, "..", ".")
	h = strings.Trim(h, ".")
	if ip, ok := attemptIPFormats(h); ok {
		return ip
	}
	return escapeOnce(strings.ToLower(h))
}

// normalizePath resolves "." and ".." segments and collapses duplicate
// slashes, keeping a trailing slash (an empty final segment) intact. A
// ".." at the root is kept rather than resolved, matching archival
// canonicalizers.
func normalizePath(p string) string {
	segs := strings.Split(p, "/")
	kept := make([]string, 0, len(segs))
	for i, s := range segs {
		switch {
		case i == 0:
		case s == ".":
		case s == "..":
			if len(kept) > 0 {
				kept = kept[:len(kept)-1]
			} else {
				kept = append(kept, s)
			}
		default:
			kept = append(kept, s)
		}
	}

	var b strings.Builder
	b.WriteByte('/')
	if n := len(kept); n > 0 {
		for _, s := range kept[:n-1] {
			if s != "" {
				b.WriteString(s)
				b.WriteByte('/')
			}
		}
		b.WriteString(kept[n-1])
	}
	return b.String()
}

// applyArchivalRules applies the IA-lineage cleanup toggles: host
// lowercasing and www massage, userinfo and default-port stripping, path
// and query case folding, session-id removal, trailing-slash policy, query
// sorting and empty-query stripping.
func applyArchivalRules(u *HandyURL, opts *Options) *HandyURL {
	// Hosts are case-insensitive by definition; fold unconditionally.
	u.Host = strings.ToLower(u.Host)

	if opts.Bool("strip_www") && u.Host != "" && u.Scheme != "dns" {
		u.Host = massageHost(u.Host)
	}

	if opts.Bool("strip_userinfo") {
		u.User, u.HasUser = "", false
		u.Pass, u.HasPass = "", false
	} else if opts.Bool("auth_strip_pass") {
		u.Pass, u.HasPass = "", false
	}

	if opts.Bool("strip_default_port") && u.Port != "" {
		if def, ok := defaultPorts[u.Scheme]; ok {
			if n, err := strconv.Atoi(u.Port); err == nil && n == def {
				u.Port = ""
			}
		}
	}

	if u.HasPath {
		path := u.Path
		if opts.Bool("path_strip_empty") && path == "/" {
			u.Path, u.HasPath = "", false
		} else {
			if opts.Bool("path_lowercase") {
				path = strings.ToLower(path)
			}
			if opts.Bool("path_strip_session_id") {
				path = stripPathSessionID(path)
			}
			switch {
			case opts.Bool("path_strip_empty") && path == "/":
				u.Path, u.HasPath = "", false
			default:
				if !opts.Bool("trailing_slash") && len(path) > 1 && strings.HasSuffix(path, "/") {
					path = path[:len(path)-1]
				}
				u.Path = path
			}
		}
	}

	switch {
	case opts.Bool("strip_query"):
		u.Query, u.HasQuery = "", false
		u.lastDelim = ""
	case u.HasQuery:
		q := u.Query
		if q != "" {
			if opts.Bool("query_strip_session_id") {
				q = stripQuerySessionID(q)
			}
			if opts.Bool("query_lowercase") {
				q = strings.ToLower(q)
			}
			if opts.Bool("sort_query_params") {
				q = sortQueryParams(q)
			}
		}
		if q == "" && opts.Bool("query_strip_empty") {
			u.Query, u.HasQuery = "", false
		} else {
			u.Query = q
		}
	default:
		u.lastDelim = ""
	}

	return u
}

// sortQueryParams orders query parameters byte-wise by key, then value;
// parameters that compare equal keep their original order. Separators and
// the shape of each parameter are preserved exactly.
func sortQueryParams(q string) string {
	if len(q) <= 1 {
		return q
	}
	args := strings.Split(q, "&")
	type param struct {
		key      string
		value    string
		hasValue bool
	}
	params := make([]param, len(args))
	for i, a := range args {
		if k, v, ok := strings.Cut(a, "="); ok {
			params[i] = param{key: k, value: v, hasValue: true}
		} else {
			params[i] = param{key: a}
		}
	}

	slices.SortStableFunc(params, func(a, b param) int {
		if c := strings.Compare(a.key, b.key); c != 0 {
			return c
		}
		// A bare key sorts before the same key with any value.
		if a.hasValue != b.hasValue {
			if !a.hasValue {
				return -1
			}
			return 1
		}
		return strings.Compare(a.value, b.value)
	})

	var b strings.Builder
	b.Grow(len(q))
	for i, p := range params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(p.key)
		if p.hasValue {
			b.WriteByte('=')
			b.WriteString(p.value)
		}
	}
	return b.String()
}

// massageHost strips one leading www label, including numbered variants
// like www2. Only a whole label counts: "www2foo.com" is left alone.
func massageHost(host string) string {
	if loc := reWWWPrefix.FindStringIndex(host); loc != nil {
		return host[loc[1]:]
	}
	return host
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
