// This file is part of cliparse.
//
// Copyright (C) 2024-2025  Emilio Garza
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package option - internal argument descriptor and its save path.
//
// An Option describes either a named option or a positional parameter.
// Descriptors are built once through the user facing declaration API and are
// immutable afterwards; the only mutable part is the per parse matched state
// which is reset to the captured original default at the start of every parse.
package option

import (
	"errors"
	"fmt"
	"io"
	"log"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/emiliogarza/cliparse/internal/arity"
	"github.com/emiliogarza/cliparse/text"
)

// Logger instance set to `io.Discard` by default.
// Enable debug logging by setting: `Logger.SetOutput(os.Stderr)`.
var Logger = log.New(io.Discard, "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile)

var ErrorMissingRequiredOption = errors.New("")
var ErrorConversion = errors.New("")
var ErrorMalformedKeyValue = errors.New("")
var ErrorMissingPositional = errors.New("")

// ParameterError - a raw value failed type conversion.
// Matches ErrorConversion with errors.Is; the converter's error is the cause.
type ParameterError struct {
	Name  string // display name of the argument
	Value string // raw value that failed to convert
	Err   error
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf(text.ErrorConvertValue, e.Name, e.Value, e.Err)
}

func (e *ParameterError) Unwrap() error { return e.Err }

func (e *ParameterError) Is(target error) bool { return target == ErrorConversion }

// Kind - named option or positional parameter.
type Kind int

const (
	OptionKind Kind = iota
	PositionalKind
)

// Type - Indicates the value type of the argument.
type Type int

// Argument value types.
const (
	BoolType Type = iota

	StringType
	IntType
	Float64Type

	StringRepeatType
	IntRepeatType
	Float64RepeatType

	StringMapType
)

// Policy - what repeated matches do to a multi valued target.
type Policy int

const (
	Append Policy = iota
	Replace
)

// Converter - converts one raw token into a typed value.
// Converters run as an ordered chain, first one to succeed wins.
type Converter func(value string) (interface{}, error)

// Binding - explicit get/set capability bound to the target model.
// The engine never touches reflection; each supported target type has a
// concrete binding below.
type Binding interface {
	Get() interface{}
	Set(value interface{}) error
}

type boolBinding struct{ p *bool }

func (b *boolBinding) Get() interface{} { return *b.p }
func (b *boolBinding) Set(v interface{}) error {
	x, ok := v.(bool)
	if !ok {
		return fmt.Errorf("bool binding can't hold %T", v)
	}
	*b.p = x
	return nil
}

type stringBinding struct{ p *string }

func (b *stringBinding) Get() interface{} { return *b.p }
func (b *stringBinding) Set(v interface{}) error {
	x, ok := v.(string)
	if !ok {
		return fmt.Errorf("string binding can't hold %T", v)
	}
	*b.p = x
	return nil
}

type intBinding struct{ p *int }

func (b *intBinding) Get() interface{} { return *b.p }
func (b *intBinding) Set(v interface{}) error {
	x, ok := v.(int)
	if !ok {
		return fmt.Errorf("int binding can't hold %T", v)
	}
	*b.p = x
	return nil
}

type float64Binding struct{ p *float64 }

func (b *float64Binding) Get() interface{} { return *b.p }
func (b *float64Binding) Set(v interface{}) error {
	x, ok := v.(float64)
	if !ok {
		return fmt.Errorf("float64 binding can't hold %T", v)
	}
	*b.p = x
	return nil
}

type stringSliceBinding struct{ p *[]string }

func (b *stringSliceBinding) Get() interface{} { return *b.p }
func (b *stringSliceBinding) Set(v interface{}) error {
	x, ok := v.([]string)
	if !ok {
		return fmt.Errorf("[]string binding can't hold %T", v)
	}
	*b.p = x
	return nil
}

type intSliceBinding struct{ p *[]int }

func (b *intSliceBinding) Get() interface{} { return *b.p }
func (b *intSliceBinding) Set(v interface{}) error {
	x, ok := v.([]int)
	if !ok {
		return fmt.Errorf("[]int binding can't hold %T", v)
	}
	*b.p = x
	return nil
}

type float64SliceBinding struct{ p *[]float64 }

func (b *float64SliceBinding) Get() interface{} { return *b.p }
func (b *float64SliceBinding) Set(v interface{}) error {
	x, ok := v.([]float64)
	if !ok {
		return fmt.Errorf("[]float64 binding can't hold %T", v)
	}
	*b.p = x
	return nil
}

type stringMapBinding struct{ p *map[string]string }

func (b *stringMapBinding) Get() interface{} { return *b.p }
func (b *stringMapBinding) Set(v interface{}) error {
	x, ok := v.(map[string]string)
	if !ok {
		return fmt.Errorf("map[string]string binding can't hold %T", v)
	}
	*b.p = x
	return nil
}

// Option - main descriptor object.
type Option struct {
	Kind    Kind
	Name    string
	Aliases []string
	Label   string // Positional label used in messages and help
	OptType Type

	Arity arity.Range // How many value tokens a match may/must consume
	Index arity.Range // Positional only: which positional slots it covers

	Splitter       *regexp.Regexp // Splits each raw value into elements, nil = none
	Required       bool
	RequiredErr    string // Error message override for the required check
	IsUsageHelp    bool   // Matching exempts required-field validation (--help style)
	IsVersionHelp  bool   // Matching exempts required-field validation (--version style)
	Policy         Policy
	MapKeysToLower bool

	// Converters - ordered chain, first applicable wins. Always non empty
	// after New; custom converters are prepended via PrependConverter.
	Converters []Converter

	// Per parse matched state.
	Called     bool
	UsedAlias  string
	RawValues  []string // raw tokens consumed on the current parse
	matches    int      // times the option was matched on the current parse
	valueCount int      // values stored on the current parse

	// Help
	Description  string
	HelpArgName  string
	DefaultStr   string
	HelpSynopsis string

	binding  Binding
	defValue interface{} // original default captured at build time
	toggle   bool        // toggle-boolean-flags mode
}

// New - Returns a new option descriptor bound to data.
// data must be a pointer matching optType, anything else is a definition
// error and panics.
func New(name string, optType Type, data interface{}) *Option {
	opt := &Option{
		Name:    name,
		OptType: optType,
		Aliases: []string{name},
		Arity:   arity.Fixed(1),
		Index:   arity.Any(),
	}
	switch optType {
	case BoolType:
		opt.binding = &boolBinding{p: data.(*bool)}
		opt.Arity = arity.Fixed(0)
		opt.DefaultStr = fmt.Sprintf("%t", *data.(*bool))
		opt.Converters = []Converter{convertBool}
	case StringType:
		opt.HelpArgName = "string"
		opt.binding = &stringBinding{p: data.(*string)}
		opt.DefaultStr = fmt.Sprintf("%q", *data.(*string))
		opt.Converters = []Converter{convertString}
	case IntType:
		opt.HelpArgName = "int"
		opt.binding = &intBinding{p: data.(*int)}
		opt.DefaultStr = fmt.Sprintf("%d", *data.(*int))
		opt.Converters = []Converter{convertInt}
	case Float64Type:
		opt.HelpArgName = "float64"
		opt.binding = &float64Binding{p: data.(*float64)}
		opt.DefaultStr = fmt.Sprintf("%f", *data.(*float64))
		opt.Converters = []Converter{convertFloat64}
	case StringRepeatType:
		opt.HelpArgName = "string"
		opt.binding = &stringSliceBinding{p: data.(*[]string)}
		opt.DefaultStr = "[]"
		opt.Converters = []Converter{convertString}
	case IntRepeatType:
		opt.HelpArgName = "int"
		opt.binding = &intSliceBinding{p: data.(*[]int)}
		opt.DefaultStr = "[]"
		opt.Converters = []Converter{convertInt}
	case Float64RepeatType:
		opt.HelpArgName = "float64"
		opt.binding = &float64SliceBinding{p: data.(*[]float64)}
		opt.DefaultStr = "[]"
		opt.Converters = []Converter{convertFloat64}
	case StringMapType:
		opt.HelpArgName = "key=value"
		opt.binding = &stringMapBinding{p: data.(*map[string]string)}
		opt.DefaultStr = "{}"
		opt.Converters = []Converter{convertString}
	default:
		panic(fmt.Sprintf("unsupported option type %d for '%s'", optType, name))
	}
	opt.CaptureDefault()
	opt.Synopsis()
	return opt
}

func convertString(value string) (interface{}, error) { return value, nil }

func convertBool(value string) (interface{}, error) {
	switch strings.ToLower(value) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return nil, fmt.Errorf("not a boolean: '%s'", value)
}

func convertInt(value string) (interface{}, error) {
	i, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("not an integer: '%s'", value)
	}
	return i, nil
}

func convertFloat64(value string) (interface{}, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("not a number: '%s'", value)
	}
	return f, nil
}

// MultiValued - tells if the target accumulates multiple values.
func (opt *Option) MultiValued() bool {
	switch opt.OptType {
	case StringRepeatType, IntRepeatType, Float64RepeatType, StringMapType:
		return true
	}
	return false
}

// MapValued - tells if values are parsed as key=value entries.
func (opt *Option) MapValued() bool {
	return opt.OptType == StringMapType
}

// IsBoolFlag - tells if a bare appearance is enough to set the option.
func (opt *Option) IsBoolFlag() bool {
	return opt.OptType == BoolType
}

// DisplayName - name used in user facing messages.
// Prefers the alias the user typed, falls back to the declared name or the
// positional label.
func (opt *Option) DisplayName() string {
	if opt.UsedAlias != "" {
		return opt.UsedAlias
	}
	if opt.Kind == PositionalKind && opt.Label != "" {
		return opt.Label
	}
	return opt.Name
}

// CaptureDefault - records the current bound value as the original default.
// Containers are copied so that defaulted slices and maps round trip across
// repeated parses.
func (opt *Option) CaptureDefault() {
	opt.defValue = copyValue(opt.binding.Get())
}

// ResetToDefault - restores the original default and clears per parse state.
func (opt *Option) ResetToDefault() {
	opt.Called = false
	opt.UsedAlias = ""
	opt.RawValues = nil
	opt.matches = 0
	opt.valueCount = 0
	// Set can't fail here, the default came from the same binding.
	_ = opt.binding.Set(copyValue(opt.defValue))
}

func copyValue(v interface{}) interface{} {
	switch x := v.(type) {
	case []string:
		c := make([]string, len(x))
		copy(c, x)
		return c
	case []int:
		c := make([]int, len(x))
		copy(c, x)
		return c
	case []float64:
		c := make([]float64, len(x))
		copy(c, x)
		return c
	case map[string]string:
		c := make(map[string]string, len(x))
		for k, e := range x {
			c[k] = e
		}
		return c
	}
	return v
}

// Value - Get the current bound value.
func (opt *Option) Value() interface{} {
	return opt.binding.Get()
}

// ValueCount - number of values stored on the current parse.
func (opt *Option) ValueCount() int {
	return opt.valueCount
}

// SetAlias - Adds aliases to an option.
func (opt *Option) SetAlias(alias ...string) *Option {
	opt.Aliases = append(opt.Aliases, alias...)
	opt.Synopsis()
	return opt
}

// SetDescription - Updates the Description.
func (opt *Option) SetDescription(s string) *Option {
	opt.Description = s
	return opt
}

// SetHelpArgName - Updates the HelpArgName.
func (opt *Option) SetHelpArgName(s string) *Option {
	opt.HelpArgName = s
	opt.Synopsis()
	return opt
}

// SetDefaultStr - Updates the DefaultStr.
func (opt *Option) SetDefaultStr(s string) *Option {
	opt.DefaultStr = s
	return opt
}

// SetRequired - Marks an option as required.
func (opt *Option) SetRequired(msg string) *Option {
	opt.Required = true
	opt.RequiredErr = msg
	return opt
}

// SetArity - Updates the value arity.
func (opt *Option) SetArity(r arity.Range) *Option {
	opt.Arity = r
	opt.Synopsis()
	return opt
}

// SetIndex - Updates the positional index range.
func (opt *Option) SetIndex(r arity.Range) *Option {
	opt.Index = r
	return opt
}

// SetLabel - Updates the positional label.
func (opt *Option) SetLabel(s string) *Option {
	opt.Label = s
	return opt
}

// SetPositional - Turns the descriptor into a positional parameter.
// Positionals are optional by default; use SetArity to demand a minimum.
func (opt *Option) SetPositional(label string, index arity.Range) *Option {
	opt.Kind = PositionalKind
	opt.Label = label
	opt.Index = index
	if opt.MultiValued() {
		opt.Arity = arity.Any()
	} else {
		opt.Arity = arity.Between(0, 1)
	}
	opt.Synopsis()
	return opt
}

// SetSplitter - Sets the regex used to split each raw value into elements.
// Ignored for single valued targets.
func (opt *Option) SetSplitter(re *regexp.Regexp) *Option {
	opt.Splitter = re
	return opt
}

// SetPolicy - Sets the append/replace policy for repeated matches.
func (opt *Option) SetPolicy(p Policy) *Option {
	opt.Policy = p
	return opt
}

// SetToggle - boolean flags toggle the prior value instead of setting true.
func (opt *Option) SetToggle(toggle bool) *Option {
	opt.toggle = toggle
	return opt
}

// PrependConverter - puts a custom converter at the front of the chain.
func (opt *Option) PrependConverter(c Converter) *Option {
	opt.Converters = append([]Converter{c}, opt.Converters...)
	return opt
}

// SetCalled - Marks the option as called and records the alias used to call it.
func (opt *Option) SetCalled(usedAlias string) *Option {
	opt.Called = true
	opt.UsedAlias = usedAlias
	return opt
}

// StartMatch - Bumps the match count and applies the replace policy.
// A Replace policy target drops the previously accumulated values when it is
// matched again.
func (opt *Option) StartMatch() {
	opt.matches++
	if opt.matches > 1 && opt.MultiValued() && opt.Policy == Replace {
		opt.clearContainer()
	}
}

func (opt *Option) clearContainer() {
	switch opt.OptType {
	case StringRepeatType:
		_ = opt.binding.Set([]string{})
	case IntRepeatType:
		_ = opt.binding.Set([]int{})
	case Float64RepeatType:
		_ = opt.binding.Set([]float64{})
	case StringMapType:
		_ = opt.binding.Set(map[string]string{})
	}
	opt.valueCount = 0
}

// Convert - runs the raw value through the converter chain, first success wins.
func (opt *Option) Convert(value string) (interface{}, error) {
	var lastErr error
	for _, c := range opt.Converters {
		v, err := c(value)
		if err == nil {
			return v, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

// Save - Saves raw values into the option.
// A bare call (no values) only makes sense for bool flags: it sets true, or
// toggles the prior value when toggle mode is on.
func (opt *Option) Save(values ...string) error {
	Logger.Printf("name: %s, optType: %d, values: %v\n", opt.Name, opt.OptType, values)
	if len(values) == 0 {
		if opt.OptType == BoolType {
			if opt.toggle {
				return opt.binding.Set(!opt.binding.Get().(bool))
			}
			return opt.binding.Set(true)
		}
		return nil
	}
	for _, value := range values {
		err := opt.saveOne(value)
		if err != nil {
			return err
		}
	}
	return nil
}

func (opt *Option) saveOne(value string) error {
	opt.RawValues = append(opt.RawValues, value)

	if opt.MapValued() {
		return opt.saveMapEntry(value)
	}

	elements := []string{value}
	if opt.MultiValued() && opt.Splitter != nil {
		elements = opt.Splitter.Split(value, -1)
	}

	for _, e := range elements {
		converted, err := opt.Convert(e)
		if err != nil {
			return &ParameterError{Name: opt.DisplayName(), Value: e, Err: err}
		}
		err = opt.store(converted)
		if err != nil {
			return err
		}
		opt.valueCount++
	}
	return nil
}

func (opt *Option) saveMapEntry(value string) error {
	key, v, found := strings.Cut(value, "=")
	if !found || key == "" {
		return fmt.Errorf("%w"+text.ErrorArgumentIsNotKeyValue, ErrorMalformedKeyValue, value, opt.DisplayName())
	}
	if opt.MapKeysToLower {
		key = strings.ToLower(key)
	}
	converted, err := opt.Convert(v)
	if err != nil {
		return &ParameterError{Name: opt.DisplayName(), Value: v, Err: err}
	}
	m := opt.binding.Get().(map[string]string)
	m[key] = converted.(string)
	opt.valueCount++
	return opt.binding.Set(m)
}

func (opt *Option) store(converted interface{}) error {
	switch opt.OptType {
	case StringRepeatType:
		return opt.binding.Set(append(opt.binding.Get().([]string), converted.(string)))
	case IntRepeatType:
		return opt.binding.Set(append(opt.binding.Get().([]int), converted.(int)))
	case Float64RepeatType:
		return opt.binding.Set(append(opt.binding.Get().([]float64), converted.(float64)))
	}
	return opt.binding.Set(converted)
}

// CheckRequired - Returns an error if a required option wasn't called.
func (opt *Option) CheckRequired() error {
	if opt.Required && !opt.Called {
		if opt.RequiredErr != "" {
			return fmt.Errorf("%w%s", ErrorMissingRequiredOption, opt.RequiredErr)
		}
		return fmt.Errorf("%w"+text.ErrorMissingRequiredOption, ErrorMissingRequiredOption, opt.DisplayName())
	}
	return nil
}

// CheckPositionalArity - Returns an error if a positional ended the parse
// below its minimum arity.
func (opt *Option) CheckPositionalArity() error {
	if opt.Kind != PositionalKind {
		return nil
	}
	if opt.valueCount < opt.Arity.Min {
		return fmt.Errorf("%w"+text.ErrorMissingPositional, ErrorMissingPositional, opt.DisplayName())
	}
	return nil
}

// Synopsis - regenerates the help synopsis.
func (opt *Option) Synopsis() {
	if opt.Kind == PositionalKind {
		label := opt.Label
		if label == "" {
			label = "arg"
		}
		opt.HelpSynopsis = "<" + label + ">"
		if opt.MultiValued() {
			opt.HelpSynopsis += "..."
		}
		return
	}
	aliases := []string{}
	for _, e := range opt.Aliases {
		if len(e) > 1 {
			e = "--" + e
		} else {
			e = "-" + e
		}
		aliases = append(aliases, e)
	}
	opt.HelpSynopsis = strings.Join(aliases, "|")
	if opt.OptType != BoolType {
		opt.HelpSynopsis += fmt.Sprintf(" <%s>", opt.HelpArgName)
	}
	if opt.Arity.Unbounded || opt.Arity.Max > 1 {
		opt.HelpSynopsis += "..."
	}
}

// Sort - sorts a list of options by name.
func Sort(list []*Option) {
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})
}

// SortByIndex - sorts positionals by the start of their index range.
// The sort is stable so declaration order breaks ties.
func SortByIndex(list []*Option) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Index.Min < list[j].Index.Min
	})
}
