// This file is part of cliparse.
//
// Copyright (C) 2024-2025  Emilio Garza
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package arity - value ranges for argument consumption and positional indexes.
//
// A Range describes how many tokens an argument may and must consume, or which
// positional slots it covers. The accepted literal forms are:
//
//	"1"      exactly one
//	"0..1"   zero or one
//	"2..4"   two to four
//	"*"      zero or more (unbounded)
//	"1..*"   one or more (unbounded)
package arity

import (
	"fmt"
	"strconv"
	"strings"
)

// Range - min/max pair. Max is ignored when Unbounded is set.
type Range struct {
	Min       int
	Max       int
	Unbounded bool
}

// Fixed - a range that covers exactly n.
func Fixed(n int) Range {
	return Range{Min: n, Max: n}
}

// Between - a bounded min..max range.
func Between(min, max int) Range {
	return Range{Min: min, Max: max}
}

// AtLeast - an unbounded range starting at min.
func AtLeast(min int) Range {
	return Range{Min: min, Unbounded: true}
}

// Any - the "*" range, zero or more.
func Any() Range {
	return Range{Unbounded: true}
}

// Parse - builds a Range from its literal form.
// Malformed input is a definition error and is reported at build time.
func Parse(s string) (Range, error) {
	wrap := func() (Range, error) {
		return Range{}, fmt.Errorf("invalid range '%s'", s)
	}
	if s == "" {
		return wrap()
	}
	if s == "*" {
		return Any(), nil
	}
	if !strings.Contains(s, "..") {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return wrap()
		}
		return Fixed(n), nil
	}
	parts := strings.SplitN(s, "..", 2)
	min, err := strconv.Atoi(parts[0])
	if err != nil || min < 0 {
		return wrap()
	}
	if parts[1] == "*" {
		return AtLeast(min), nil
	}
	max, err := strconv.Atoi(parts[1])
	if err != nil || max < min {
		return wrap()
	}
	return Between(min, max), nil
}

// MustParse - Parse that panics on malformed input.
// Definition errors are programmer errors, not user errors.
func MustParse(s string) Range {
	r, err := Parse(s)
	if err != nil {
		panic(err.Error())
	}
	return r
}

// Contains - tells if i falls within the range.
func (r Range) Contains(i int) bool {
	if i < r.Min {
		return false
	}
	return r.Unbounded || i <= r.Max
}

// Satisfied - tells if n consumed values meet the minimum.
func (r Range) Satisfied(n int) bool {
	return n >= r.Min
}

// Full - tells if n consumed values already hit the maximum.
func (r Range) Full(n int) bool {
	return !r.Unbounded && n >= r.Max
}

func (r Range) String() string {
	if r.Unbounded {
		if r.Min == 0 {
			return "*"
		}
		return fmt.Sprintf("%d..*", r.Min)
	}
	if r.Min == r.Max {
		return strconv.Itoa(r.Min)
	}
	return fmt.Sprintf("%d..%d", r.Min, r.Max)
}
