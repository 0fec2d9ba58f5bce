// This file is part of cliparse.
//
// Copyright (C) 2024-2025  Emilio Garza
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package option

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"testing"

	"github.com/emiliogarza/cliparse/internal/arity"
)

func TestSave(t *testing.T) {
	t.Run("bool bare call sets true", func(t *testing.T) {
		b := false
		opt := New("flag", BoolType, &b)
		if err := opt.Save(); err != nil {
			t.Fatal(err)
		}
		if !b {
			t.Errorf("wrong value: %v", b)
		}
	})
	t.Run("bool toggle flips the prior value", func(t *testing.T) {
		b := true
		opt := New("flag", BoolType, &b).SetToggle(true)
		if err := opt.Save(); err != nil {
			t.Fatal(err)
		}
		if b {
			t.Errorf("wrong value: %v", b)
		}
	})
	t.Run("bool explicit literal", func(t *testing.T) {
		b := true
		opt := New("flag", BoolType, &b).SetToggle(true)
		if err := opt.Save("true"); err != nil {
			t.Fatal(err)
		}
		if !b {
			t.Errorf("explicit literal went through the toggle: %v", b)
		}
	})
	t.Run("string", func(t *testing.T) {
		s := "default"
		opt := New("opt", StringType, &s)
		if err := opt.Save("hello"); err != nil {
			t.Fatal(err)
		}
		if s != "hello" {
			t.Errorf("wrong value: %s", s)
		}
	})
	t.Run("int", func(t *testing.T) {
		i := 0
		opt := New("opt", IntType, &i)
		if err := opt.Save("123"); err != nil {
			t.Fatal(err)
		}
		if i != 123 {
			t.Errorf("wrong value: %d", i)
		}
	})
	t.Run("int conversion error", func(t *testing.T) {
		i := 0
		opt := New("opt", IntType, &i)
		err := opt.Save("hello")
		if !errors.Is(err, ErrorConversion) {
			t.Errorf("wrong error: %v", err)
		}
		var pErr *ParameterError
		if !errors.As(err, &pErr) {
			t.Fatalf("wrong error type: %T", err)
		}
		if pErr.Name != "opt" || pErr.Value != "hello" {
			t.Errorf("wrong detail: %v, %v", pErr.Name, pErr.Value)
		}
	})
	t.Run("float64", func(t *testing.T) {
		f := 0.0
		opt := New("opt", Float64Type, &f)
		if err := opt.Save("3.14"); err != nil {
			t.Fatal(err)
		}
		if f != 3.14 {
			t.Errorf("wrong value: %f", f)
		}
	})
	t.Run("string slice appends", func(t *testing.T) {
		ss := []string{}
		opt := New("opt", StringRepeatType, &ss)
		if err := opt.Save("a", "b"); err != nil {
			t.Fatal(err)
		}
		if err := opt.Save("c"); err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(ss, []string{"a", "b", "c"}) {
			t.Errorf("wrong value: %v", ss)
		}
		if opt.ValueCount() != 3 {
			t.Errorf("wrong count: %d", opt.ValueCount())
		}
	})
	t.Run("int slice with splitter", func(t *testing.T) {
		ii := []int{}
		opt := New("opt", IntRepeatType, &ii).SetSplitter(regexp.MustCompile(","))
		if err := opt.Save("1,2,3"); err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(ii, []int{1, 2, 3}) {
			t.Errorf("wrong value: %v", ii)
		}
	})
	t.Run("map entry", func(t *testing.T) {
		m := map[string]string{}
		opt := New("opt", StringMapType, &m)
		if err := opt.Save("k=v", "x=1=2"); err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(m, map[string]string{"k": "v", "x": "1=2"}) {
			t.Errorf("wrong value: %v", m)
		}
	})
	t.Run("map entry without separator", func(t *testing.T) {
		m := map[string]string{}
		opt := New("opt", StringMapType, &m)
		err := opt.Save("novalue")
		if !errors.Is(err, ErrorMalformedKeyValue) {
			t.Errorf("wrong error: %v", err)
		}
	})
	t.Run("map entry with empty key", func(t *testing.T) {
		m := map[string]string{}
		opt := New("opt", StringMapType, &m)
		err := opt.Save("=value")
		if !errors.Is(err, ErrorMalformedKeyValue) {
			t.Errorf("wrong error: %v", err)
		}
	})
	t.Run("map keys to lower", func(t *testing.T) {
		m := map[string]string{}
		opt := New("opt", StringMapType, &m)
		opt.MapKeysToLower = true
		if err := opt.Save("KEY=v"); err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(m, map[string]string{"key": "v"}) {
			t.Errorf("wrong value: %v", m)
		}
	})
}

func TestResetToDefault(t *testing.T) {
	t.Run("scalar", func(t *testing.T) {
		s := "default"
		opt := New("opt", StringType, &s)
		_ = opt.Save("changed")
		opt.SetCalled("opt")
		opt.ResetToDefault()
		if s != "default" || opt.Called || opt.RawValues != nil || opt.ValueCount() != 0 {
			t.Errorf("state leaked: %v %v %v", s, opt.Called, opt.RawValues)
		}
	})
	t.Run("slice default round trips", func(t *testing.T) {
		ss := []string{"a"}
		opt := New("opt", StringRepeatType, &ss)
		_ = opt.Save("b")
		opt.ResetToDefault()
		if !reflect.DeepEqual(ss, []string{"a"}) {
			t.Errorf("wrong value: %v", ss)
		}
		_ = opt.Save("c")
		opt.ResetToDefault()
		if !reflect.DeepEqual(ss, []string{"a"}) {
			t.Errorf("default mutated: %v", ss)
		}
	})
	t.Run("map default round trips", func(t *testing.T) {
		m := map[string]string{"k": "v"}
		opt := New("opt", StringMapType, &m)
		_ = opt.Save("x=y")
		opt.ResetToDefault()
		if !reflect.DeepEqual(m, map[string]string{"k": "v"}) {
			t.Errorf("wrong value: %v", m)
		}
	})
}

func TestPolicy(t *testing.T) {
	t.Run("append is the default", func(t *testing.T) {
		ss := []string{}
		opt := New("opt", StringRepeatType, &ss)
		opt.StartMatch()
		_ = opt.Save("a")
		opt.StartMatch()
		_ = opt.Save("b")
		if !reflect.DeepEqual(ss, []string{"a", "b"}) {
			t.Errorf("wrong value: %v", ss)
		}
	})
	t.Run("replace drops the prior values", func(t *testing.T) {
		ss := []string{}
		opt := New("opt", StringRepeatType, &ss).SetPolicy(Replace)
		opt.StartMatch()
		_ = opt.Save("a", "b")
		opt.StartMatch()
		_ = opt.Save("c")
		if !reflect.DeepEqual(ss, []string{"c"}) {
			t.Errorf("wrong value: %v", ss)
		}
	})
}

func TestConverterChain(t *testing.T) {
	i := 0
	opt := New("opt", IntType, &i).PrependConverter(func(value string) (interface{}, error) {
		if value == "max" {
			return 100, nil
		}
		return nil, fmt.Errorf("not max")
	})
	if err := opt.Save("max"); err != nil {
		t.Fatal(err)
	}
	if i != 100 {
		t.Errorf("wrong value: %d", i)
	}
	// First converter fails, chain falls through to the built in one.
	if err := opt.Save("7"); err != nil {
		t.Fatal(err)
	}
	if i != 7 {
		t.Errorf("wrong value: %d", i)
	}
}

func TestChecks(t *testing.T) {
	t.Run("required not called", func(t *testing.T) {
		s := ""
		opt := New("opt", StringType, &s).SetRequired("")
		if err := opt.CheckRequired(); !errors.Is(err, ErrorMissingRequiredOption) {
			t.Errorf("wrong error: %v", err)
		}
	})
	t.Run("required custom message", func(t *testing.T) {
		s := ""
		opt := New("opt", StringType, &s).SetRequired("add --opt")
		err := opt.CheckRequired()
		if err == nil || err.Error() != "add --opt" {
			t.Errorf("wrong error: %v", err)
		}
	})
	t.Run("required called", func(t *testing.T) {
		s := ""
		opt := New("opt", StringType, &s).SetRequired("")
		opt.SetCalled("opt")
		if err := opt.CheckRequired(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
	t.Run("positional below arity minimum", func(t *testing.T) {
		ss := []string{}
		opt := New("files", StringRepeatType, &ss).SetPositional("FILE", arity.Any())
		opt.SetArity(arity.AtLeast(1))
		if err := opt.CheckPositionalArity(); !errors.Is(err, ErrorMissingPositional) {
			t.Errorf("wrong error: %v", err)
		}
		_ = opt.Save("f")
		if err := opt.CheckPositionalArity(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestDisplayName(t *testing.T) {
	s := ""
	opt := New("option", StringType, &s).SetAlias("o")
	if opt.DisplayName() != "option" {
		t.Errorf("wrong value: %s", opt.DisplayName())
	}
	opt.SetCalled("o")
	if opt.DisplayName() != "o" {
		t.Errorf("wrong value: %s", opt.DisplayName())
	}
	p := ""
	pos := New("pos", StringType, &p).SetPositional("FILE", arity.Any())
	if pos.DisplayName() != "FILE" {
		t.Errorf("wrong value: %s", pos.DisplayName())
	}
}

func TestSynopsis(t *testing.T) {
	tests := []struct {
		name     string
		opt      func() *Option
		expected string
	}{
		{"bool", func() *Option {
			b := false
			return New("flag", BoolType, &b).SetAlias("f")
		}, "--flag|-f"},
		{"string", func() *Option {
			s := ""
			return New("opt", StringType, &s)
		}, "--opt <string>"},
		{"repeat", func() *Option {
			ss := []string{}
			return New("list", StringRepeatType, &ss).SetArity(arity.AtLeast(1))
		}, "--list <string>..."},
		{"positional", func() *Option {
			s := ""
			return New("file", StringType, &s).SetPositional("FILE", arity.Any())
		}, "<FILE>"},
		{"positional multi", func() *Option {
			ss := []string{}
			return New("files", StringRepeatType, &ss).SetPositional("FILE", arity.Any())
		}, "<FILE>..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opt := tt.opt()
			if opt.HelpSynopsis != tt.expected {
				t.Errorf("wrong value: got '%s', want '%s'", opt.HelpSynopsis, tt.expected)
			}
		})
	}
}

func TestSortByIndex(t *testing.T) {
	a, b, c := "", "", ""
	optA := New("a", StringType, &a).SetPositional("A", arity.Between(2, 4))
	optB := New("b", StringType, &b).SetPositional("B", arity.Fixed(0))
	optC := New("c", StringType, &c).SetPositional("C", arity.Between(2, 3))
	list := []*Option{optA, optB, optC}
	SortByIndex(list)
	got := []string{list[0].Name, list[1].Name, list[2].Name}
	// Stable: a declared before c keeps the tie order at index 2.
	if !reflect.DeepEqual(got, []string{"b", "a", "c"}) {
		t.Errorf("wrong order: %v", got)
	}
}
