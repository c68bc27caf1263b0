// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package surt

import "testing"

func TestNormalizePath(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"/", "/"},
		{"/a/b/c", "/a/b/c"},
		{"/a/./b", "/a/b"},
		{"/a/../b", "/b"},
		{"/a/b/../../c", "/c"},
		{"/../a", "/../a"},
		{"//a///b//", "/a/b/"},
		{"/a/b/", "/a/b/"},
		{"/a/b/..", "/a"},
		{"/a/b/.", "/a/b"},
	}
	for _, tc := range cases {
		if got := normalizePath(tc.in); got != tc.want {
			t.Errorf("normalizePath(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMassageHost(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"www.example.com", "example.com"},
		{"www2.example.com", "example.com"},
		{"www12.example.com", "example.com"},
		{"example.com", "example.com"},
		{"wwwx.example.com", "wwwx.example.com"},
		{"www2foo.example.com", "www2foo.example.com"},
		// Only a leading label counts.
		{"foo.www.example.com", "foo.www.example.com"},
		{"www.com", "com"},
	}
	for _, tc := range cases {
		if got := massageHost(tc.in); got != tc.want {
			t.Errorf("massageHost(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSortQueryParams(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"a", "a"},
		{"b&a", "a&b"},
		{"a=2&b&a=1", "a=1&a=2&b"},
		// Bare key sorts before the same key with a value; equal
		// parameters keep input order.
		{"a=1&a&a=1", "a&a=1&a=1"},
		{"z=1&y=2&x=3", "x=3&y=2&z=1"},
		{"&b=1", "&b=1"},
		{"b=1&", "&b=1"},
	}
	for _, tc := range cases {
		if got := sortQueryParams(tc.in); got != tc.want {
			t.Errorf("sortQueryParams(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCanonicalHost(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"WWW.Example.COM", "www.example.com"},
		{"example..com", "example.com"},
		{".example.com.", "example.com"},
		{"www%2eexample.com", "www.example.com"},
		{"bücher.ch", "xn--bcher-kva.ch"},
		{"3279880203", "195.127.0.11"},
		{"017.0.0.1", "15.0.0.1"},
		{"10.0.258", "10.0.1.2"},
		{"[2001:DB8:0:0:0:0:0:1]", "[2001:db8::1]"},
		{"[not-an-ip]", "[not-an-ip]"},
	}
	for _, tc := range cases {
		if got := canonicalHost(tc.in); got != tc.want {
			t.Errorf("canonicalHost(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCanonicalizeIDNHost(t *testing.T) {
	got, err := Surt("http://bücher.ch/Straße")
	if err != nil {
		t.Fatal(err)
	}
	// Host goes through IDNA, the path stays percent-escaped bytes.
	if want := "ch,xn--bcher-kva)/stra%c3%9fe"; got != want {
		t.Errorf("Surt = %q, want %q", got, want)
	}
}

func TestCanonicalizeQueryToggles(t *testing.T) {
	base := "http://example.com/p?B=2&A=1"

	cases := []struct {
		name  string
		set   map[string]bool
		want  string
	}{
		{"defaults lowercase only", nil, "com,example)/p?b=2&a=1"},
		{"strip query", map[string]bool{"strip_query": true}, "com,example)/p"},
		{"sorted", map[string]bool{"sort_query_params": true}, "com,example)/p?a=1&b=2"},
		{"case kept", map[string]bool{"query_lowercase": false}, "com,example)/p?B=2&A=1"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			opts := NewOptions()
			for k, v := range tc.set {
				opts.Set(k, v)
			}
			got, err := SurtWithOptions(base, opts)
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestCanonicalizeEmptyQuery(t *testing.T) {
	// An empty query is dropped by default and kept on request.
	got, err := Surt("http://example.com/p?")
	if err != nil {
		t.Fatal(err)
	}
	if want := "com,example)/p"; got != want {
		t.Errorf("default: got %q, want %q", got, want)
	}

	opts := NewOptions()
	opts.Set("query_strip_empty", false)
	got, err = SurtWithOptions("http://example.com/p?", opts)
	if err != nil {
		t.Fatal(err)
	}
	if want := "com,example)/p?"; got != want {
		t.Errorf("query_strip_empty=false: got %q, want %q", got, want)
	}
}

func TestCanonicalizePathToggles(t *testing.T) {
	cases := []struct {
		name string
		in   string
		set  map[string]bool
		want string
	}{
		{"trailing slash kept", "http://example.com/goo/", map[string]bool{"trailing_slash": true}, "com,example)/goo/"},
		{"root survives trailing strip", "http://example.com/", nil, "com,example)/"},
		{"case kept", "http://example.com/Goo", map[string]bool{"path_lowercase": false}, "com,example)/Goo"},
		{"empty path dropped", "http://example.com/", map[string]bool{"path_strip_empty": true}, "com,example)"},
		{"userinfo kept without password", "http://user:pw@example.com/", map[string]bool{"strip_userinfo": false}, "com,example)/"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			opts := NewOptions()
			for k, v := range tc.set {
				opts.Set(k, v)
			}
			got, err := SurtWithOptions(tc.in, opts)
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

// Escape and host normalization cases from GoogleURLCanonicalizerTest.java,
// checked at the first canonicalization stage so the archival toggles do not
// interfere.
func TestNormalizeEscapes(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"http://host/%25%32%35", "http://host/%25"},
		{"http://host/%25%32%35%25%32%35", "http://host/%25%25"},
		{"http://host/%2525252525252525", "http://host/%25"},
		{"http://host/asdf%25%32%35asd", "http://host/asdf%25asd"},
		{"http://host/%%%25%32%35asd%%", "http://host/%25%25%25asd%25%25"},
		{"http://www.google.com/", "http://www.google.com/"},
		{
			"http://%31%36%38%2e%31%38%38%2e%39%39%2e%32%36/%2E%73%65%63%75%72%65/%77%77%77%2E%65%62%61%79%2E%63%6F%6D/",
			"http://168.188.99.26/.secure/www.ebay.com/",
		},
		{
			"http://195.127.0.11/uploads/%20%20%20%20/.verify/.eBaysecure=updateuserdataxplimnbqmn-xplmvalidateinfoswqpcmlx=hgplmcx/",
			"http://195.127.0.11/uploads/%20%20%20%20/.verify/.eBaysecure=updateuserdataxplimnbqmn-xplmvalidateinfoswqpcmlx=hgplmcx/",
		},
		{
			"http://host%23.com/%257Ea%2521b%2540c%2523d%2524e%25f%255E00%252611%252A22%252833%252944_55%252B",
			"http://host%23.com/~a!b@c%23d$e%25f^00&11*22(33)44_55+",
		},
		{"http://3279880203/blah", "http://195.127.0.11/blah"},
		{"http://www.google.com/blah/..", "http://www.google.com/"},
		{"http://www.evil.com/blah#frag", "http://www.evil.com/blah"},
		{"http://www.GOOgle.com/", "http://www.google.com/"},
		{"http://www.google.com.../", "http://www.google.com/"},
		{"http://www.google.com/foo\tbar\rbaz\n2", "http://www.google.com/foobarbaz2"},
		{"http://www.google.com/q?r?", "http://www.google.com/q?r?"},
		{"http://www.google.com/q?r?s", "http://www.google.com/q?r?s"},
		{"http://evil.com/foo#bar#baz", "http://evil.com/foo"},
		{"http://evil.com/foo;", "http://evil.com/foo;"},
		{"http://evil.com/foo?bar;", "http://evil.com/foo?bar;"},
		{"http://.com/", "http://%01%C2%80.com/"},
		{"http://www.t%EF%BF%BD%04.82.net/", "http://www.t%EF%BF%BD%04.82.net/"},
		{"http://notrailingslash.com", "http://notrailingslash.com/"},
		{"http://www.gotaport.com:1234/", "http://www.gotaport.com:1234/"},
		{"  http://www.google.com/  ", "http://www.google.com/"},
		{"http:// leadingspace.com/", "http://%20leadingspace.com/"},
		{"http://%20leadingspace.com/", "http://%20leadingspace.com/"},
		{"https://www.securesite.com/", "https://www.securesite.com/"},
		{"http://host.com/ab%23cd", "http://host.com/ab%23cd"},
		{"http://host.com//twoslashes?more//slashes", "http://host.com/twoslashes?more//slashes"},
		{"mailto:foo@example.com", "mailto:foo@example.com"},
	}

	opts := plainOptions()
	for _, tc := range cases {
		u, err := Parse(tc.in)
		if err != nil {
			t.Errorf("Parse(%q) error: %v", tc.in, err)
			continue
		}
		got, err := normalizeEscapes(u, opts).String(opts)
		if err != nil {
			t.Errorf("String(%q) error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("normalizeEscapes(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCanonicalizeDefaultPorts(t *testing.T) {
	opts := NewOptions()
	opts.Set("strip_default_port", true)

	cases := []struct {
		in   string
		want string
	}{
		{"http://example.com:80/", "com,example)/"},
		{"https://example.com:443/", "com,example)/"},
		{"ftp://example.com:21/", "com,example)/"},
		{"http://example.com:8080/", "com,example:8080)/"},
		// 443 is not http's default.
		{"http://example.com:443/", "com,example:443)/"},
	}
	for _, tc := range cases {
		got, err := SurtWithOptions(tc.in, opts)
		if err != nil {
			t.Fatalf("SurtWithOptions(%q) error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("SurtWithOptions(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
