// This file is part of cliparse.
//
// Copyright (C) 2024-2025  Emilio Garza
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package cliparse

import (
	"regexp"
	"strconv"
	"strings"
)

// 1: leading dashes
// 2: body
var isOptionRegex = regexp.MustCompile(`^(--?)(.+)$`)

// tokenParts - an option shaped token split into prefix and body.
type tokenParts struct {
	Prefix string // "-" or "--"
	Body   string // token without the prefix
}

// splitOptionToken - Check if the given string is option shaped (starts with
// - or --) and split it. The terminator "--" and the lonesome dash "-" are
// not options; the terminator is the caller's responsibility and the dash is
// a common positional value (stdin by convention).
//
// Whether the body actually resolves to a declared option is the
// interpreter's job: resolution order and the resemblance heuristic need the
// command specification.
func splitOptionToken(s string) (tokenParts, bool) {
	switch s {
	case "--", "-":
		return tokenParts{}, false
	}
	match := isOptionRegex.FindStringSubmatch(s)
	if len(match) == 0 {
		return tokenParts{}, false
	}
	return tokenParts{Prefix: match[1], Body: match[2]}, true
}

// commonPrefixLen - length of the common prefix of two strings.
func commonPrefixLen(a, b string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}

// looksLikeNumber - tells if an option shaped token is probably a numeric
// value, for example "-1" or "-0.5".
func looksLikeNumber(s string) bool {
	_, err := strconv.ParseFloat(strings.TrimPrefix(s, "-"), 64)
	return err == nil
}
