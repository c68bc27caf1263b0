// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// SPDX-License-Identifier: MIT

// Command surt is a line filter: URLs in, sort-friendly keys out.
//
//	surt http://www.example.com/page
//	cat urls.txt | surt -profile ia -o trailing_comma=true
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ManuGH/surtd/internal/surt"
)

// optionFlags collects repeated -o name=bool flags.
type optionFlags map[string]bool

func (o optionFlags) String() string {
	parts := make([]string, 0, len(o))
	for k, v := range o {
		parts = append(parts, fmt.Sprintf("%s=%t", k, v))
	}
	return strings.Join(parts, ",")
}

func (o optionFlags) Set(raw string) error {
	name, value, ok := strings.Cut(raw, "=")
	if !ok {
		return fmt.Errorf("want name=bool, got %q", raw)
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("invalid bool in %q: %w", raw, err)
	}
	if !surt.Known(name) {
		return fmt.Errorf("unknown option %q", name)
	}
	o[name] = b
	return nil
}

func main() {
	profile := flag.String("profile", "default", `option profile: "default" or "ia"`)
	overrides := optionFlags{}
	flag.Var(overrides, "o", "option override name=bool (repeatable)")
	flag.Parse()

	var opts *surt.Options
	switch *profile {
	case "default":
		opts = surt.NewOptions()
	case "ia":
		opts = surt.IAOptions()
	default:
		fmt.Fprintf(os.Stderr, "surt: unknown profile %q\n", *profile)
		os.Exit(2)
	}
	for name, value := range overrides {
		opts.Set(name, value)
	}

	failed := false
	emit := func(rawURL string) {
		out, err := surt.SurtWithOptions(rawURL, opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "surt: %v\n", err)
			failed = true
			return
		}
		fmt.Println(out)
	}

	if flag.NArg() > 0 {
		for _, arg := range flag.Args() {
			emit(arg)
		}
	} else {
		sc := bufio.NewScanner(os.Stdin)
		sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
		for sc.Scan() {
			line := strings.TrimSpace(sc.Text())
			if line == "" {
				continue
			}
			emit(line)
		}
		if err := sc.Err(); err != nil {
			fmt.Fprintf(os.Stderr, "surt: read stdin: %v\n", err)
			os.Exit(1)
		}
	}

	if failed {
		os.Exit(1)
	}
}
