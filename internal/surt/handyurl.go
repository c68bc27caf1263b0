// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package surt

import (
	"regexp"
	"strings"

	"golang.org/x/net/publicsuffix"
)

var (
	reHasScheme  = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*:`)
	reMultiProto = regexp.MustCompile(`^(https?://)+`)
	reWhitespace = regexp.MustCompile(`[\n\r\t]`)
)

// HandyURL is the decomposed form of one URL, owned by a single transform
// invocation. Optional components use the paired Has* flag where the empty
// string is a meaningful value; Host and Port treat "" as absent.
type HandyURL struct {
	Scheme string

	User    string
	HasUser bool
	Pass    string
	HasPass bool

	Host string
	Port string

	Path    string
	HasPath bool

	Query    string
	HasQuery bool

	Fragment    string
	HasFragment bool

	// lastDelim preserves a bare trailing "?" through plain-URL
	// reassembly; the canonicalizer clears it when the query is gone.
	lastDelim string
}

// Parse decomposes a raw URL string. It is deliberately forgiving about
// crawl-data noise (surrounding whitespace, embedded tabs and newlines,
// stuttered "http://http://" prefixes) but strict about structure: a
// missing scheme, an authority without a host, an unterminated IPv6
// bracket or an out-of-range port are structured failures, never partial
// results.
func Parse(raw string) (*HandyURL, error) {
	url := strings.TrimSpace(raw)
	url = reWhitespace.ReplaceAllString(url, "")
	if url == "" {
		return nil, parseError(ErrMalformedInput, raw)
	}
	if !reHasScheme.MatchString(url) {
		return nil, parseError(ErrMissingScheme, raw)
	}

	// "http://https://host" and friends: keep only the innermost scheme.
	if loc := reMultiProto.FindStringSubmatchIndex(url); loc != nil {
		url = url[loc[2]:]
	}

	sp, err := splitURL(url)
	if err != nil {
		return nil, err
	}

	var nl netloc
	if sp.hasNetloc {
		nl, err = splitNetloc(sp.netloc)
		if err != nil {
			return nil, err
		}
	}
	if sp.hasAuthority && nl.host == "" {
		return nil, parseError(ErrEmptyHost, raw)
	}

	u := &HandyURL{
		Scheme:      strings.ToLower(sp.scheme),
		User:        nl.user,
		HasUser:     nl.hasUser,
		Pass:        nl.pass,
		HasPass:     nl.hasPass,
		Host:        nl.host,
		Port:        nl.port,
		Path:        sp.path,
		HasPath:     sp.hasPath,
		Query:       sp.query,
		HasQuery:    sp.hasQuery,
		Fragment:    sp.fragment,
		HasFragment: sp.hasFragment,
	}
	if !sp.hasQuery && strings.HasSuffix(url, "?") {
		u.lastDelim = "?"
	}
	return u, nil
}

// hostToSURT reorders a host into its sort-friendly form: domain labels
// reversed and joined with commas. IP literals have no label hierarchy and
// stay in natural order unless reverseIP explicitly asks for the classic
// reversed-quad behaviour. Bracketed IPv6 literals are never reordered.
func hostToSURT(host string, reverseIP bool) string {
	if strings.HasPrefix(host, "[") {
		return host
	}
	if !reverseIP && isIPv4Literal(host) {
		return host
	}
	labels := strings.Split(host, ".")
	for i, j := 0, len(labels)-1; i < j; i, j = i+1, j-1 {
		labels[i], labels[j] = labels[j], labels[i]
	}
	return strings.Join(labels, ",")
}

// String reassembles the URL under the given options. With the "surt"
// toggle (the default) the host comes out label-reversed and terminated by
// ")", which bounds the authority for prefix-range queries over sorted
// keys; with it off the original URL shape is reproduced. The output is a
// pure function of the receiver and the option set.
func (u *HandyURL) String(opts *Options) (string, error) {
	host := u.Host
	if opts.Bool("public_suffix") && host != "" {
		if reg, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
			host = reg
		}
	}
	if opts.Bool("surt") && host != "" {
		host = hostToSURT(host, opts.Bool("reverse_ipaddr"))
	}

	var b strings.Builder

	switch {
	case opts.Bool("with_scheme"):
		if u.Scheme == "" {
			return "", parseError(ErrMissingScheme, u.Path)
		}
		b.WriteString(u.Scheme)
		b.WriteByte(':')
		if host != "" {
			if u.Scheme != "dns" {
				b.WriteString("//")
			}
			if opts.Bool("surt") {
				b.WriteByte('(')
			}
		}
	case host == "":
		if u.Scheme == "" {
			return "", parseError(ErrMissingScheme, u.Path)
		}
		b.WriteString(u.Scheme)
		b.WriteByte(':')
	}

	if host != "" {
		if u.HasUser {
			b.WriteString(u.User)
			if u.HasPass {
				b.WriteByte(':')
				b.WriteString(u.Pass)
			}
			b.WriteByte('@')
		}
		b.WriteString(host)
		if u.Port != "" {
			b.WriteByte(':')
			b.WriteString(u.Port)
		}
		if opts.Bool("surt") {
			if opts.Bool("trailing_comma") {
				b.WriteByte(',')
			}
			b.WriteByte(')')
		}
	}

	if u.HasPath {
		b.WriteString(u.Path)
	} else if u.HasQuery || u.HasFragment {
		b.WriteByte('/')
	}

	if u.HasQuery {
		b.WriteByte('?')
		b.WriteString(u.Query)
	}
	if u.HasFragment {
		b.WriteByte('#')
		b.WriteString(u.Fragment)
	}
	b.WriteString(u.lastDelim)

	return b.String(), nil
}
