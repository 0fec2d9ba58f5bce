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

	"github.com/emiliogarza/cliparse/internal/arity"
	"github.com/emiliogarza/cliparse/internal/option"
)

// Converter - converts one raw token into a typed value.
// Converters form an ordered chain per argument, first one to succeed wins.
type Converter = option.Converter

// ModifyFn - declaration modifier, the Alias("..."), Required(), etc.
// functions below.
type ModifyFn func(parent *Parser, opt *option.Option)

// Alias - adds aliases to an option.
func (p *Parser) Alias(alias ...string) ModifyFn {
	return func(parent *Parser, opt *option.Option) {
		opt.SetAlias(alias...)
		for _, a := range alias {
			parent.programTree.AddChildOption(a, opt)
		}
	}
}

// Description - sets the description used in help output.
func (p *Parser) Description(msg string) ModifyFn {
	return func(parent *Parser, opt *option.Option) {
		opt.SetDescription(msg)
	}
}

// ArgName - sets the name of the value placeholder in help output.
// For example `--flag <my_arg>` instead of `--flag <string>`.
func (p *Parser) ArgName(name string) ModifyFn {
	return func(parent *Parser, opt *option.Option) {
		opt.SetHelpArgName(name)
	}
}

// Required - marks an option as required; an optional msg overrides the
// error text.
func (p *Parser) Required(msg ...string) ModifyFn {
	var errTxt string
	if len(msg) >= 1 {
		errTxt = msg[0]
	}
	return func(parent *Parser, opt *option.Option) {
		opt.SetRequired(errTxt)
	}
}

// Arity - how many value tokens a match may and must consume.
// Accepts "1", "0..1", "2..4", "*" and "1..*". A malformed range is a
// definition error and panics.
func (p *Parser) Arity(spec string) ModifyFn {
	r := arity.MustParse(spec)
	return func(parent *Parser, opt *option.Option) {
		opt.SetArity(r)
	}
}

// Index - which positional slots a positional parameter covers, same range
// syntax as Arity. Ignored on named options.
func (p *Parser) Index(spec string) ModifyFn {
	r := arity.MustParse(spec)
	return func(parent *Parser, opt *option.Option) {
		opt.SetIndex(r)
	}
}

// Split - regex splitting each raw value into elements before conversion.
// `opt.Split(",")` turns `--list a,b` into two elements.
func (p *Parser) Split(pattern string) ModifyFn {
	re := regexp.MustCompile(pattern)
	return func(parent *Parser, opt *option.Option) {
		opt.SetSplitter(re)
	}
}

// Replace - repeated matches of a multi valued target drop the previously
// accumulated values instead of appending.
func (p *Parser) Replace() ModifyFn {
	return func(parent *Parser, opt *option.Option) {
		opt.SetPolicy(option.Replace)
	}
}

// ConvertWith - puts a custom converter at the front of the chain.
func (p *Parser) ConvertWith(c Converter) ModifyFn {
	return func(parent *Parser, opt *option.Option) {
		opt.PrependConverter(c)
	}
}

// MapKeysToLower - map keys are lowercased as they are stored.
func (p *Parser) MapKeysToLower() ModifyFn {
	return func(parent *Parser, opt *option.Option) {
		opt.MapKeysToLower = true
	}
}

// HelpMarker - matching this option exempts the parse from required field
// and positional arity validation, --help style.
func (p *Parser) HelpMarker() ModifyFn {
	return func(parent *Parser, opt *option.Option) {
		opt.IsUsageHelp = true
	}
}

// VersionMarker - like HelpMarker, for --version style options.
func (p *Parser) VersionMarker() ModifyFn {
	return func(parent *Parser, opt *option.Option) {
		opt.IsVersionHelp = true
	}
}

func (p *Parser) declare(opt *option.Option, fns ...ModifyFn) {
	p.programTree.AddChildOption(opt.Name, opt)
	for _, fn := range fns {
		fn(p, opt)
	}
}

// Bool - declares a bool flag and returns the target.
func (p *Parser) Bool(name string, def bool, fns ...ModifyFn) *bool {
	p.BoolVar(&def, name, def, fns...)
	return &def
}

// BoolVar - declares a bool flag bound to the given target.
func (p *Parser) BoolVar(data *bool, name string, def bool, fns ...ModifyFn) {
	*data = def
	p.declare(option.New(name, option.BoolType, data), fns...)
}

// String - declares a string option and returns the target.
func (p *Parser) String(name, def string, fns ...ModifyFn) *string {
	p.StringVar(&def, name, def, fns...)
	return &def
}

// StringVar - declares a string option bound to the given target.
func (p *Parser) StringVar(data *string, name, def string, fns ...ModifyFn) {
	*data = def
	p.declare(option.New(name, option.StringType, data), fns...)
}

// Int - declares an int option and returns the target.
func (p *Parser) Int(name string, def int, fns ...ModifyFn) *int {
	p.IntVar(&def, name, def, fns...)
	return &def
}

// IntVar - declares an int option bound to the given target.
func (p *Parser) IntVar(data *int, name string, def int, fns ...ModifyFn) {
	*data = def
	p.declare(option.New(name, option.IntType, data), fns...)
}

// Float64 - declares a float64 option and returns the target.
func (p *Parser) Float64(name string, def float64, fns ...ModifyFn) *float64 {
	p.Float64Var(&def, name, def, fns...)
	return &def
}

// Float64Var - declares a float64 option bound to the given target.
func (p *Parser) Float64Var(data *float64, name string, def float64, fns ...ModifyFn) {
	*data = def
	p.declare(option.New(name, option.Float64Type, data), fns...)
}

// StringSlice - declares a repeatable string option and returns the target.
// Each match consumes tokens per the declared arity, 1 by default.
func (p *Parser) StringSlice(name string, fns ...ModifyFn) *[]string {
	data := []string{}
	p.StringSliceVar(&data, name, fns...)
	return &data
}

// StringSliceVar - declares a repeatable string option bound to the target.
func (p *Parser) StringSliceVar(data *[]string, name string, fns ...ModifyFn) {
	p.declare(option.New(name, option.StringRepeatType, data), fns...)
}

// IntSlice - declares a repeatable int option and returns the target.
func (p *Parser) IntSlice(name string, fns ...ModifyFn) *[]int {
	data := []int{}
	p.IntSliceVar(&data, name, fns...)
	return &data
}

// IntSliceVar - declares a repeatable int option bound to the target.
func (p *Parser) IntSliceVar(data *[]int, name string, fns ...ModifyFn) {
	p.declare(option.New(name, option.IntRepeatType, data), fns...)
}

// Float64Slice - declares a repeatable float64 option and returns the target.
func (p *Parser) Float64Slice(name string, fns ...ModifyFn) *[]float64 {
	data := []float64{}
	p.Float64SliceVar(&data, name, fns...)
	return &data
}

// Float64SliceVar - declares a repeatable float64 option bound to the target.
func (p *Parser) Float64SliceVar(data *[]float64, name string, fns ...ModifyFn) {
	p.declare(option.New(name, option.Float64RepeatType, data), fns...)
}

// StringMap - declares a map option taking key=value entries and returns the
// target.
func (p *Parser) StringMap(name string, fns ...ModifyFn) *map[string]string {
	data := map[string]string{}
	p.StringMapVar(&data, name, fns...)
	return &data
}

// StringMapVar - declares a map option bound to the target.
// The target map is allocated if nil.
func (p *Parser) StringMapVar(data *map[string]string, name string, fns ...ModifyFn) {
	if *data == nil {
		*data = map[string]string{}
	}
	p.declare(option.New(name, option.StringMapType, data), fns...)
}
