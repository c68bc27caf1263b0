// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package surt

import "testing"

func TestAttemptIPFormats(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"www.foo.com", "", false},
		{"127.0.0.1", "127.0.0.1", true},
		{"017.0.0.1", "15.0.0.1", true},
		{"168.188.99.26", "168.188.99.26", true},
		// Dotted-decimal parts above 255 carry into the next octet.
		{"10.0.258", "10.0.1.2", true},
		{"1.2.3.256", "", false},
		// Whole decimal numbers are 32-bit addresses.
		{"3279880203", "195.127.0.11", true},
		// Liveweb proxy ARC records carry hostnames above 2^32; the low
		// 32 bits win.
		{"39024579298", "22.11.210.226", true},
		{"", "", false},
		{"example", "", false},
		{"256.256.256.256", "", false},
	}
	for _, tc := range cases {
		got, ok := attemptIPFormats(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("attemptIPFormats(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestIsIPv4Literal(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"192.168.1.254", true},
		{"1.2.3.4", true},
		{"1.2.3", false},
		{"example.com", false},
		// A domain ending in numeric labels is not an address.
		{"x.1.2.3.4", false},
		{"1.2.3.4.", false},
	}
	for _, tc := range cases {
		if got := isIPv4Literal(tc.in); got != tc.want {
			t.Errorf("isIPv4Literal(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
