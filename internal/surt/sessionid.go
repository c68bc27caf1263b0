// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package surt

import "regexp"

// Session-id spellings that embed per-visitor state into otherwise
// identical URLs. Stripping them is what lets captures of the same page
// land on the same SURT key.
var (
	rePathSessionID = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^(.*/)(\((?:[a-z]\([0-9a-z]{24}\))+\)/)([^?]+\.aspx.*)$`),
		regexp.MustCompile(`(?i)^(.*/)(\([0-9a-z]{24}\)/)([^?]+\.aspx.*)$`),
	}

	reQuerySessionID = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^(.*)(?:jsessionid=[0-9a-zA-Z]{32})(?:&(.*))?$`),
		regexp.MustCompile(`(?i)^(.*)(?:phpsessid=[0-9a-zA-Z]{32})(?:&(.*))?$`),
		regexp.MustCompile(`(?i)^(.*)(?:sid=[0-9a-zA-Z]{32})(?:&(.*))?$`),
		regexp.MustCompile(`(?i)^(.*)(?:ASPSESSIONID[a-zA-Z]{8}=[a-zA-Z]{24})(?:&(.*))?$`),
		regexp.MustCompile(`(?i)^(.*)(?:cfid=[^&]+&cftoken=[^&]+)(?:&(.*))?$`),
	}
)

// stripPathSessionID removes ASP.NET cookieless session segments like
// "/(S(...))/" from the path.
func stripPathSessionID(path string) string {
	for _, re := range rePathSessionID {
		if m := re.FindStringSubmatch(path); m != nil && m[1] != "" && m[3] != "" {
			path = m[1] + m[3]
		}
	}
	return path
}

// stripQuerySessionID removes well-known session parameters from the query
// string, preserving surrounding parameters.
func stripQuerySessionID(query string) string {
	for _, re := range reQuerySessionID {
		if m := re.FindStringSubmatch(query); m != nil {
			query = m[1] + m[2]
		}
	}
	return query
}
