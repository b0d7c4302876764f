// Copyright (c) 2026 DreckTrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package query parses list-valued URL query parameters.
package query

import (
	"strings"
)

// StringSlice parses a single comma-separated query string
// into a trimmed slice of strings.
func StringSlice(val string) []string {
	if val == "" {
		return nil
	}
	var res []string
	for _, v := range strings.Split(val, ",") {
		clean := strings.TrimSpace(v)
		if clean != "" {
			res = append(res, clean)
		}
	}
	return res
}

// Strings reads a list-valued query parameter. A single occurrence is split on
// commas (`?id=a,b` yields [a b]); repeated occurrences are taken whole, so
// `?id=a,b&id=c` yields [a,b c] and identifiers may contain commas.
func Strings(vals []string) []string {
	if len(vals) == 1 {
		return StringSlice(vals[0])
	}

	var res []string
	for _, v := range vals {
		if clean := strings.TrimSpace(v); clean != "" {
			res = append(res, clean)
		}
	}
	return res
}
