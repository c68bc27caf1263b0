// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package surt

import (
	"errors"
	"fmt"
)

// Decomposition failure kinds. Every failure the engine can produce wraps
// exactly one of these sentinels; canonicalization and reordering are total
// and never fail on their own.
var (
	// ErrMissingScheme is returned when the input carries no scheme token.
	ErrMissingScheme = errors.New("missing scheme")
	// ErrEmptyHost is returned when an authority form yields no host.
	ErrEmptyHost = errors.New("empty host")
	// ErrInvalidPort is returned when the port is not an integer in 1..65535.
	ErrInvalidPort = errors.New("invalid port")
	// ErrMalformedInput is the catch-all for byte sequences that cannot be
	// tokenized into URL components (unterminated bracket, empty input, ...).
	ErrMalformedInput = errors.New("malformed input")
)

// ParseError ties a failure kind to the input fragment that caused it.
type ParseError struct {
	Kind  error
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%v: %q", e.Kind, e.Input)
}

func (e *ParseError) Unwrap() error { return e.Kind }

func parseError(kind error, input string) error {
	// Cap the echoed fragment so a pathological input cannot blow up logs.
	if len(input) > 128 {
		input = input[:128] + "..."
	}
	return &ParseError{Kind: kind, Input: input}
}
