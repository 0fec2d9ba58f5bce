// This file is part of cliparse.
//
// Copyright (C) 2024-2025  Emilio Garza
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package cliparse

import (
	"github.com/emiliogarza/cliparse/internal/arity"
	"github.com/emiliogarza/cliparse/internal/option"
)

// Positional parameters.
//
// Positionals are claimed by slot: a position cursor starts at 0 and every
// claimed token advances it. A positional covers the cursor when its index
// range (Index modifier, any slot by default) contains it and its value arity
// isn't full yet. Overlapping ranges are resolved by conversion: a typed
// positional declines a token its converters reject, handing it to the next
// range.

func (p *Parser) declarePositional(opt *option.Option, label string, fns ...ModifyFn) {
	opt.SetPositional(label, arity.Any())
	p.programTree.AddChildPositional(label, opt)
	for _, fn := range fns {
		fn(p, opt)
	}
}

// StringPositional - declares a single string positional and returns the
// target.
func (p *Parser) StringPositional(label, def string, fns ...ModifyFn) *string {
	p.StringPositionalVar(&def, label, def, fns...)
	return &def
}

// StringPositionalVar - declares a single string positional bound to the
// target.
func (p *Parser) StringPositionalVar(data *string, label, def string, fns ...ModifyFn) {
	*data = def
	p.declarePositional(option.New(label, option.StringType, data), label, fns...)
}

// IntPositional - declares a single int positional and returns the target.
func (p *Parser) IntPositional(label string, def int, fns ...ModifyFn) *int {
	p.IntPositionalVar(&def, label, def, fns...)
	return &def
}

// IntPositionalVar - declares a single int positional bound to the target.
func (p *Parser) IntPositionalVar(data *int, label string, def int, fns ...ModifyFn) {
	*data = def
	p.declarePositional(option.New(label, option.IntType, data), label, fns...)
}

// Float64Positional - declares a single float64 positional and returns the
// target.
func (p *Parser) Float64Positional(label string, def float64, fns ...ModifyFn) *float64 {
	p.Float64PositionalVar(&def, label, def, fns...)
	return &def
}

// Float64PositionalVar - declares a single float64 positional bound to the
// target.
func (p *Parser) Float64PositionalVar(data *float64, label string, def float64, fns ...ModifyFn) {
	*data = def
	p.declarePositional(option.New(label, option.Float64Type, data), label, fns...)
}

// StringSlicePositional - declares a multi valued string positional and
// returns the target.
func (p *Parser) StringSlicePositional(label string, fns ...ModifyFn) *[]string {
	data := []string{}
	p.StringSlicePositionalVar(&data, label, fns...)
	return &data
}

// StringSlicePositionalVar - declares a multi valued string positional bound
// to the target.
func (p *Parser) StringSlicePositionalVar(data *[]string, label string, fns ...ModifyFn) {
	p.declarePositional(option.New(label, option.StringRepeatType, data), label, fns...)
}

// IntSlicePositional - declares a multi valued int positional and returns the
// target.
func (p *Parser) IntSlicePositional(label string, fns ...ModifyFn) *[]int {
	data := []int{}
	p.IntSlicePositionalVar(&data, label, fns...)
	return &data
}

// IntSlicePositionalVar - declares a multi valued int positional bound to the
// target.
func (p *Parser) IntSlicePositionalVar(data *[]int, label string, fns ...ModifyFn) {
	p.declarePositional(option.New(label, option.IntRepeatType, data), label, fns...)
}

// Float64SlicePositional - declares a multi valued float64 positional and
// returns the target.
func (p *Parser) Float64SlicePositional(label string, fns ...ModifyFn) *[]float64 {
	data := []float64{}
	p.Float64SlicePositionalVar(&data, label, fns...)
	return &data
}

// Float64SlicePositionalVar - declares a multi valued float64 positional
// bound to the target.
func (p *Parser) Float64SlicePositionalVar(data *[]float64, label string, fns ...ModifyFn) {
	p.declarePositional(option.New(label, option.Float64RepeatType, data), label, fns...)
}
