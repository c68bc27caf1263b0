// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package api

import (
	"errors"

	"github.com/ManuGH/surtd/internal/surt"
)

// errorKind maps a transform error to its stable wire identifier.
func errorKind(err error) string {
	switch {
	case errors.Is(err, surt.ErrMissingScheme):
		return "missing_scheme"
	case errors.Is(err, surt.ErrEmptyHost):
		return "empty_host"
	case errors.Is(err, surt.ErrInvalidPort):
		return "invalid_port"
	case errors.Is(err, surt.ErrMalformedInput):
		return "malformed_input"
	default:
		return "internal"
	}
}

// apiError is the wire form of a failed operation.
type apiError struct {
	Kind   string `json:"kind"`
	Input  string `json:"input,omitempty"`
	Detail string `json:"detail,omitempty"`
}

func transformError(err error) apiError {
	e := apiError{Kind: errorKind(err)}
	var pe *surt.ParseError
	if errors.As(err, &pe) {
		e.Input = pe.Input
	}
	return e
}
