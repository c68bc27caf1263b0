// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package surt canonicalizes URLs and renders them in Sort-friendly URI
// Reordering Transform form, where host labels are reversed and
// comma-joined so that URLs from the same registered domain sort
// adjacently:
//
//	http://www.example.com/page?b=2&a=1  →  com,example)/page?b=2&a=1
//
// The pipeline is Parse → Canonicalize → String; Surt runs all three.
// Behavior is driven entirely by an Options set, see NewOptions and
// IAOptions for the two built-in profiles.
package surt

import "strings"

// Surt transforms a URL into its canonical sort-friendly form using the
// default options.
func Surt(rawURL string) (string, error) {
	return SurtWithOptions(rawURL, nil)
}

// SurtWithOptions transforms a URL using the supplied options; nil means
// defaults. ARC file header pseudo-URLs (filedesc:) are returned verbatim,
// they name archive members rather than network resources.
func SurtWithOptions(rawURL string, opts *Options) (string, error) {
	if strings.HasPrefix(rawURL, "filedesc") {
		return rawURL, nil
	}
	if opts == nil {
		opts = NewOptions()
	}

	u, err := Parse(rawURL)
	if err != nil {
		return "", err
	}
	u = Canonicalize(u, opts)
	return u.String(opts)
}

// Result carries the outcome of one transform. Exactly one of Output and
// Err is meaningful: a successful transform has Err == nil, a failed one
// has Output == "".
type Result struct {
	Output string
	Err    error
}

// Ok reports whether the transform succeeded.
func (r Result) Ok() bool { return r.Err == nil }

// Transform is the Result-returning form of Surt, for callers that batch
// transforms and want per-item outcomes instead of early returns.
func Transform(rawURL string) Result {
	return TransformWithOptions(rawURL, nil)
}

// TransformWithOptions is the Result-returning form of SurtWithOptions.
func TransformWithOptions(rawURL string, opts *Options) Result {
	out, err := SurtWithOptions(rawURL, opts)
	if err != nil {
		return Result{Err: err}
	}
	return Result{Output: out}
}
