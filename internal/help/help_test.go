// This file is part of cliparse.
//
// Copyright (C) 2024-2025  Emilio Garza
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package help

import (
	"strings"
	"testing"

	"github.com/emiliogarza/cliparse/internal/arity"
	"github.com/emiliogarza/cliparse/internal/option"
)

func TestName(t *testing.T) {
	tests := []struct {
		testName    string
		script      string
		name        string
		description string
		expected    string
	}{
		{"name only", "", "prog", "", "NAME:\n    prog\n"},
		{"with description", "", "prog", "does things", "NAME:\n    prog - does things\n"},
		{"script and command", "prog", "cmd", "", "NAME:\n    prog cmd\n"},
	}
	for _, tt := range tests {
		t.Run(tt.testName, func(t *testing.T) {
			if got := Name(tt.script, tt.name, tt.description); got != tt.expected {
				t.Errorf("wrong output:\ngot:  %q\nwant: %q", got, tt.expected)
			}
		})
	}
}

func TestVersion(t *testing.T) {
	got := Version("prog", "1.0.0")
	if got != "VERSION:\n    prog 1.0.0\n" {
		t.Errorf("wrong output: %q", got)
	}
}

func TestSynopsis(t *testing.T) {
	req := ""
	optional := false
	reqOpt := option.New("output", option.StringType, &req).SetRequired("")
	boolOpt := option.New("verbose", option.BoolType, &optional)
	files := []string{}
	pos := option.New("files", option.StringRepeatType, &files).SetPositional("FILE", arity.Any())

	got := Synopsis("prog", "", "", []*option.Option{reqOpt, boolOpt}, []*option.Option{pos}, []string{"cmd"})
	for _, want := range []string{
		"SYNOPSIS:",
		"--output <string>",
		"[--verbose]",
		"<FILE>...",
		"<command> [<args>]",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
	// Required options come before optional ones.
	if strings.Index(got, "--output") > strings.Index(got, "--verbose") {
		t.Errorf("wrong order:\n%s", got)
	}
}

func TestCommandList(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		if got := CommandList(map[string]string{}); got != "" {
			t.Errorf("wrong output: %q", got)
		}
	})
	t.Run("sorted and padded", func(t *testing.T) {
		got := CommandList(map[string]string{
			"b-long-command": "second",
			"a":              "first",
		})
		expected := "COMMANDS:\n" +
			"    a                 first\n" +
			"    b-long-command    second\n"
		if got != expected {
			t.Errorf("wrong output:\ngot:  %q\nwant: %q", got, expected)
		}
	})
}

func TestOptionList(t *testing.T) {
	s := "default"
	str := option.New("output", option.StringType, &s).SetDescription("where to write")
	req := 0
	reqOpt := option.New("level", option.IntType, &req).SetRequired("")

	got := OptionList([]*option.Option{str, reqOpt})
	for _, want := range []string{
		"OPTIONS:",
		"--output <string>",
		"where to write",
		`(default: "default")`,
		"--level <int>",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in:\n%s", want, got)
		}
	}
	// Required options never show a default.
	if strings.Contains(got, "(default: 0)") {
		t.Errorf("required option shows a default:\n%s", got)
	}
}

func TestOptionListWraps(t *testing.T) {
	s := ""
	long := option.New("opt", option.StringType, &s).
		SetDescription(strings.Repeat("word ", 30))
	got := OptionList([]*option.Option{long})
	for _, line := range strings.Split(got, "\n") {
		if len(line) > Width+10 {
			t.Errorf("line too long (%d): %q", len(line), line)
		}
	}
}

func TestArgumentList(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		if got := ArgumentList(nil, nil, nil); got != "" {
			t.Errorf("wrong output: %q", got)
		}
	})
	t.Run("positionals and extra entries", func(t *testing.T) {
		files := []string{}
		pos := option.New("files", option.StringRepeatType, &files).SetPositional("FILE", arity.Any())
		pos.SetDescription("input files")
		got := ArgumentList([]*option.Option{pos}, []string{"@<filename>"}, map[string]string{
			"@<filename>": "read arguments from a file",
		})
		for _, want := range []string{"ARGUMENTS:", "<FILE>...", "input files", "@<filename>", "read arguments from a file"} {
			if !strings.Contains(got, want) {
				t.Errorf("missing %q in:\n%s", want, got)
			}
		}
	})
}
