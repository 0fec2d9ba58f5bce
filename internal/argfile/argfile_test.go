// This file is part of cliparse.
//
// Copyright (C) 2024-2025  Emilio Garza
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package argfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	err := os.WriteFile(path, []byte(content), 0o600)
	if err != nil {
		t.Fatal(err)
	}
	return path
}

func TestExpand(t *testing.T) {
	dir := t.TempDir()
	args := writeFile(t, dir, "args", "--verbose --output out.txt\npositional\n")

	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{"no at-files", []string{"--verbose", "file"}, []string{"--verbose", "file"}},
		{"bare at is literal", []string{"@"}, []string{"@"}},
		{"at-file expands in place", []string{"pre", "@" + args, "post"},
			[]string{"pre", "--verbose", "--output", "out.txt", "positional", "post"}},
		{"escaped at-file is literal minus one at", []string{"@@" + args}, []string{"@" + args}},
		{"unreadable file stays literal", []string{"@" + filepath.Join(dir, "missing")},
			[]string{"@" + filepath.Join(dir, "missing")}},
		{"directory stays literal", []string{"@" + dir}, []string{"@" + dir}},
		{"sibling reuse expands twice", []string{"@" + args, "@" + args},
			[]string{"--verbose", "--output", "out.txt", "positional", "--verbose", "--output", "out.txt", "positional"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New()
			got := e.Expand(tt.input)
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("wrong expansion (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExpandNested(t *testing.T) {
	dir := t.TempDir()
	inner := writeFile(t, dir, "inner", "--from-inner\n")
	outer := writeFile(t, dir, "outer", "--from-outer @"+inner+"\n")

	e := New()
	got := e.Expand([]string{"@" + outer})
	expected := []string{"--from-outer", "--from-inner"}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("wrong expansion (-want +got):\n%s", diff)
	}
}

func TestExpandCycle(t *testing.T) {
	dir := t.TempDir()
	aPath := filepath.Join(dir, "a")
	bPath := filepath.Join(dir, "b")
	writeFile(t, dir, "a", "--a @"+bPath+"\n")
	writeFile(t, dir, "b", "--b @"+aPath+"\n")

	e := New()
	got := e.Expand([]string{"@" + aPath})
	// The back reference is kept literal instead of recursing forever.
	expected := []string{"--a", "--b", "@" + aPath}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Errorf("wrong expansion (-want +got):\n%s", diff)
	}
}

func TestExpandIdempotent(t *testing.T) {
	dir := t.TempDir()
	args := writeFile(t, dir, "args", "--verbose value\n")

	e := New()
	once := e.Expand([]string{"@" + args, "rest"})
	twice := e.Expand(once)
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("expansion not idempotent (-once +twice):\n%s", diff)
	}
}

func TestTokenizeClassic(t *testing.T) {
	tests := []struct {
		name     string
		expander Expander
		content  string
		expected []string
	}{
		{"whitespace split", Expander{Comment: '#'}, "a  b\tc\nd", []string{"a", "b", "c", "d"}},
		{"blank lines skipped", Expander{Comment: '#'}, "\n\na\n\n", []string{"a"}},
		{"comment discards rest of line", Expander{Comment: '#'}, "a # b c\nd", []string{"a", "d"}},
		{"comment only at token boundary", Expander{Comment: '#'}, "a#b c", []string{"a#b", "c"}},
		{"custom comment char", Expander{Comment: ';'}, "a ; b\n# not a comment", []string{"a", "#", "not", "a", "comment"}},
		{"comments disabled", Expander{}, "a # b", []string{"a", "#", "b"}},
		{"quoted run is one token", Expander{Comment: '#'}, `a "b c" d`, []string{"a", `"b c"`, "d"}},
		{"quoted run trimmed", Expander{Comment: '#', TrimQuotes: true}, `a "b c" d`, []string{"a", "b c", "d"}},
		{"escapes inside quotes", Expander{Comment: '#', TrimQuotes: true}, `"a\"b" "c\\d" "e\ f"`, []string{`a"b`, `c\d`, "e f"}},
		{"unbalanced quote falls back", Expander{Comment: '#'}, `a "bc`, []string{"a", `"bc`}},
		{"windows line endings", Expander{Comment: '#'}, "a\r\nb\r\n", []string{"a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.expander.tokenize(tt.content)
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("wrong tokens (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTokenizeSimplified(t *testing.T) {
	tests := []struct {
		name     string
		expander Expander
		content  string
		expected []string
	}{
		{"one token per line", Expander{Comment: '#', Simplified: true},
			"a b\n  c d  \n", []string{"a b", "c d"}},
		{"comment lines skipped", Expander{Comment: '#', Simplified: true},
			"a\n# comment\nb\n", []string{"a", "b"}},
		{"comments disabled keeps line", Expander{Simplified: true},
			"a\n# kept\n", []string{"a", "# kept"}},
		{"blank lines skipped", Expander{Comment: '#', Simplified: true},
			"\n\na\n\n", []string{"a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.expander.tokenize(tt.content)
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("wrong tokens (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSimplifiedOverride(t *testing.T) {
	tests := []struct {
		value    string
		expected bool
	}{
		{"", true},
		{"true", true},
		{"TRUE", true},
		{"false", false},
		{"anything", false},
	}
	for _, tt := range tests {
		if got := SimplifiedOverride(tt.value); got != tt.expected {
			t.Errorf("SimplifiedOverride(%q) = %v, want %v", tt.value, got, tt.expected)
		}
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`"value"`, "value"},
		{`value`, "value"},
		{`"value`, `"value`},
		{`value"`, `value"`},
		{`""`, ""},
		{`"`, `"`},
		{`"a\"b"`, `a\"b`}, // outer quotes stripped, escapes kept as written
		{`"a"b"`, `"a"b"`}, // embedded quote leaves it untouched
		{`"ab\"`, `"ab\"`}, // escaped closing quote is not a closing quote
	}
	for _, tt := range tests {
		if got := Unquote(tt.input); got != tt.expected {
			t.Errorf("Unquote(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
