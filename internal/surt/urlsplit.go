// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package surt

import (
	"regexp"
	"strconv"
	"strings"
)

// reSplit is the RFC 2396 appendix-B style splitter. Submatch indices:
// 2 = scheme, 5 = netloc, 6 = path, 7 = ?query, 8 = query, 10 = fragment.
var reSplit = regexp.MustCompile(
	`^(([a-zA-Z][a-zA-Z0-9+.-]*):)?((//([^/?#]*))?([^?#]*)(\?([^#]*))?)?(#(.*))?$`)

// splitResult holds the raw five-way split before netloc decomposition.
// Empty string plus the matching has* flag distinguishes "present but
// empty" from "absent"; that difference is visible in the output (a bare
// "#" or "?" survives plain-URL reassembly).
type splitResult struct {
	scheme       string
	netloc       string
	hasNetloc    bool
	hasAuthority bool
	path         string
	hasPath      bool
	query        string
	hasQuery     bool
	fragment     string
	hasFragment  bool
}

func splitURL(url string) (splitResult, error) {
	m := reSplit.FindStringSubmatch(url)
	if m == nil {
		return splitResult{}, parseError(ErrMalformedInput, url)
	}

	var sp splitResult
	sp.scheme = m[2]
	sp.hasAuthority = m[4] != ""
	if m[5] != "" {
		sp.netloc = m[5]
		sp.hasNetloc = true
	}
	sp.path = m[6]
	sp.hasPath = sp.path != ""
	if m[7] != "" {
		q := strings.TrimPrefix(m[7], "?")
		if q != "" {
			sp.query = q
			sp.hasQuery = true
		}
	}
	if m[9] != "" {
		sp.fragment = m[10]
		sp.hasFragment = true
	}

	// Scheme-relative recovery: http(s) URLs with a collapsed or missing
	// "//" carry the host in the first path segment.
	if strings.HasPrefix(sp.scheme, "http") && !sp.hasNetloc && sp.hasPath {
		p := strings.TrimLeft(sp.path, "/")
		if host, rest, ok := strings.Cut(p, "/"); ok {
			sp.netloc = host
			sp.path = "/" + rest
		} else {
			sp.netloc = p
			sp.path = "/"
		}
		sp.hasNetloc = sp.netloc != ""
		sp.hasAuthority = true
		sp.hasPath = true
	}

	return sp, nil
}

// netloc is the decomposed authority section.
type netloc struct {
	user    string
	hasUser bool
	pass    string
	hasPass bool
	host    string
	port    string
}

// splitNetloc decomposes an authority string into userinfo, host and port.
// The port is validated as an integer in 1..65535; a bare trailing colon is
// tolerated and dropped (seen in crawl data). Bracketed IPv6 literals keep
// their brackets so later stages can tell them apart from domain hosts.
func splitNetloc(s string) (netloc, error) {
	var nl netloc

	hostport := s
	if i := strings.LastIndex(s, "@"); i >= 0 {
		userinfo := s[:i]
		hostport = s[i+1:]
		nl.hasUser = true
		if user, pass, ok := strings.Cut(userinfo, ":"); ok {
			nl.user = user
			nl.pass = pass
			nl.hasPass = true
		} else {
			nl.user = userinfo
		}
	}

	if strings.HasPrefix(hostport, "[") {
		end := strings.Index(hostport, "]")
		if end < 0 {
			return nl, parseError(ErrMalformedInput, s)
		}
		nl.host = hostport[:end+1]
		rest := hostport[end+1:]
		switch {
		case rest == "":
		case strings.HasPrefix(rest, ":"):
			port, err := parsePort(rest[1:], s)
			if err != nil {
				return nl, err
			}
			nl.port = port
		default:
			return nl, parseError(ErrMalformedInput, s)
		}
		return nl, nil
	}

	if i := strings.LastIndex(hostport, ":"); i >= 0 {
		port, err := parsePort(hostport[i+1:], s)
		if err != nil {
			return nl, err
		}
		nl.host = hostport[:i]
		nl.port = port
	} else {
		nl.host = hostport
	}

	return nl, nil
}

func parsePort(s, input string) (string, error) {
	if s == "" {
		return "", nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 65535 {
		return "", parseError(ErrInvalidPort, input)
	}
	return s, nil
}
