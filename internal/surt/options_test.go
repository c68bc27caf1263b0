// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package surt

import "testing"

func TestOptionsDefaults(t *testing.T) {
	o := NewOptions()

	// Nothing is explicitly set on a fresh option set.
	if _, ok := o.Get("strip_fragment"); ok {
		t.Error("fresh Options reports strip_fragment as set")
	}

	// Bool falls through to engine defaults.
	if !o.Bool("strip_fragment") {
		t.Error("strip_fragment default = false, want true")
	}
	if o.Bool("strip_www") {
		t.Error("strip_www default = true, want false")
	}
	if o.Bool("reverse_ipaddr") {
		t.Error("reverse_ipaddr default = true, want false")
	}
	if !o.Bool("surt") {
		t.Error("surt default = false, want true")
	}
	if o.Bool("no_such_option") {
		t.Error("unknown option defaults to true")
	}
}

func TestOptionsSetGet(t *testing.T) {
	o := NewOptions()
	o.Set("strip_fragment", false)

	if v, ok := o.Get("strip_fragment"); !ok || v {
		t.Errorf("Get after Set = (%v, %v)", v, ok)
	}
	if o.Bool("strip_fragment") {
		t.Error("explicit false not honored over default true")
	}
	if o.GetOr("strip_www", true) != true {
		t.Error("GetOr ignores fallback for unset option")
	}
	if o.GetOr("strip_fragment", true) != false {
		t.Error("GetOr ignores explicit value")
	}
}

func TestOptionsClone(t *testing.T) {
	o := NewOptions()
	o.Set("trailing_comma", true)

	c := o.Clone()
	c.Set("trailing_comma", false)
	c.Set("strip_www", true)

	if !o.Bool("trailing_comma") {
		t.Error("mutating the clone changed the original")
	}
	if o.Bool("strip_www") {
		t.Error("clone shares storage with the original")
	}
}

func TestIAOptionsProfile(t *testing.T) {
	o := IAOptions()
	for _, name := range []string{"strip_www", "strip_default_port", "sort_query_params", "reverse_ipaddr"} {
		if !o.Bool(name) {
			t.Errorf("IAOptions: %s = false, want true", name)
		}
	}
	// The rest of the profile matches engine defaults.
	if !o.Bool("strip_fragment") || o.Bool("with_scheme") {
		t.Error("IAOptions diverges from engine defaults outside its four toggles")
	}
}

func TestKnownAndNames(t *testing.T) {
	if !Known("strip_www") || Known("strip_wwww") {
		t.Error("Known misclassifies option names")
	}
	names := Names()
	if len(names) != len(optionDefaults) {
		t.Errorf("Names() returned %d names, want %d", len(names), len(optionDefaults))
	}
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if !Known(n) {
			t.Errorf("Names() includes unknown option %q", n)
		}
		if seen[n] {
			t.Errorf("Names() repeats %q", n)
		}
		seen[n] = true
	}
}
