// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package surt

// Options is a set of named boolean toggles controlling optional
// normalization and reordering behaviour. An Options value is created with
// engine defaults, mutated only through Set, and read-only during a
// transform: the engine never writes to it, so a single Options may be
// shared by any number of concurrent transforms. Mutation is not
// synchronized internally; callers must not call Set concurrently with a
// transform that reads the same Options (single-writer discipline).
type Options struct {
	m map[string]bool
}

// optionDefaults is the full recognized-option table with engine defaults.
// The first block is the stable caller contract; the second block carries
// implementation-defined extensions inherited from Internet Archive SURT
// conventions. Read-only after init.
var optionDefaults = map[string]bool{
	// Contract options.
	"strip_www":          false, // drop a leading www (or wwwNN) host label
	"strip_default_port": false, // drop the port when it matches the scheme default
	"strip_fragment":     true,  // drop the #fragment
	"strip_query":        false, // drop the ?query entirely
	"strip_userinfo":     true,  // drop user:pass entirely
	"sort_query_params":  false, // byte-wise sort of query parameters
	"with_scheme":        false, // keep the scheme as an output prefix
	"trailing_slash":     false, // keep a trailing slash on non-root paths

	// Extensions.
	"surt":                   true,  // emit SURT form; plain URL reassembly when false
	"trailing_comma":         false, // append "," after the last host label
	"reverse_ipaddr":         false, // reverse dotted-quad hosts like domain labels
	"public_suffix":          false, // reduce the host to its registered domain
	"auth_strip_pass":        true,  // drop only the password when userinfo is kept
	"path_lowercase":         true,
	"path_strip_session_id":  true,
	"path_strip_empty":       false,
	"query_lowercase":        true,
	"query_strip_session_id": true,
	"query_strip_empty":      true,
}

// NewOptions returns an Options populated with engine defaults only.
func NewOptions() *Options {
	return &Options{m: make(map[string]bool)}
}

// IAOptions returns the Internet-Archive-compatible profile: identical to
// the engine defaults except that www stripping, default-port stripping,
// query sorting and IP-address reversal are switched on. Output under this
// profile matches the classic IA SURT library byte for byte.
func IAOptions() *Options {
	o := NewOptions()
	o.Set("strip_www", true)
	o.Set("strip_default_port", true)
	o.Set("sort_query_params", true)
	o.Set("reverse_ipaddr", true)
	return o
}

// Set stores one named toggle. Unknown names are accepted and stored but
// have no effect on any transform; this policy is fixed (see Known for
// detecting misspelled names before they become silent no-ops).
func (o *Options) Set(name string, value bool) {
	o.m[name] = value
}

// Get returns the explicitly-set value of an option and whether it was set.
// Engine defaults are not reported here; use Bool for effective values.
func (o *Options) Get(name string) (value, ok bool) {
	value, ok = o.m[name]
	return value, ok
}

// GetOr returns the explicitly-set value of an option, or the given
// fallback when the option was never set.
func (o *Options) GetOr(name string, or bool) bool {
	if v, ok := o.m[name]; ok {
		return v
	}
	return or
}

// Bool returns the effective value of an option: the explicitly-set value
// if any, the engine default otherwise, false for unknown names.
func (o *Options) Bool(name string) bool {
	if v, ok := o.m[name]; ok {
		return v
	}
	return optionDefaults[name]
}

// Clone returns an independent copy of the option set.
func (o *Options) Clone() *Options {
	c := NewOptions()
	for k, v := range o.m {
		c.m[k] = v
	}
	return c
}

// Names returns all recognized option names, for callers that want to
// validate input before Set.
func Names() []string {
	names := make([]string, 0, len(optionDefaults))
	for k := range optionDefaults {
		names = append(names, k)
	}
	return names
}

// Known reports whether name is a recognized option.
func Known(name string) bool {
	_, ok := optionDefaults[name]
	return ok
}
