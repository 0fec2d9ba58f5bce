// This file is part of cliparse.
//
// Copyright (C) 2024-2025  Emilio Garza
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package argfile - expands @file tokens into the live token stream.
//
// A token expands iff it starts with '@' and the remainder names a readable
// file. Exactly "@" never expands, "@@x" unescapes to the literal "@x" and is
// not examined as a filename. Unreadable files and include cycles are never
// errors: the token is kept literal and a trace diagnostic is logged.
package argfile

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// Logger instance set to `io.Discard` by default.
// Enable trace logging by setting: `Logger.SetOutput(os.Stderr)`.
var Logger = log.New(io.Discard, "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile)

// Filesystem - read capability consumed by the expander.
// The core never touches the disk through anything else.
type Filesystem interface {
	Exists(path string) bool
	ReadFile(path string) ([]byte, error)
}

// OS - Filesystem backed by the real filesystem.
// Relative paths resolve against the process working directory.
type OS struct{}

func (OS) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func (OS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Expander - argument file expansion settings.
type Expander struct {
	FS         Filesystem
	Comment    rune // Comment character, 0 disables comments
	Simplified bool // One token per line instead of shell-like tokenization
	TrimQuotes bool // Strip balanced double quotes around classic tokens
}

// New - Returns an Expander with the default settings: real filesystem,
// '#' comments, classic tokenization.
func New() *Expander {
	return &Expander{FS: OS{}, Comment: '#'}
}

// SimplifiedOverride - interprets the user facing override string for the
// simplified mode flag, the form used by the process wide environment
// override. Matching is case insensitive and an empty override means true.
func SimplifiedOverride(value string) bool {
	return value == "" || strings.EqualFold(value, "true")
}

// Expand - expands at-file tokens in place, recursively.
// Sibling tokens keep their order; tokens read from a file are re-scanned for
// further at-files subject to the per chain cycle guard.
func (e *Expander) Expand(args []string) []string {
	out := make([]string, 0, len(args))
	visited := map[string]bool{}
	for _, arg := range args {
		out = append(out, e.expandToken(arg, visited)...)
	}
	return out
}

func (e *Expander) expandToken(token string, visited map[string]bool) []string {
	if !strings.HasPrefix(token, "@") || token == "@" {
		return []string{token}
	}
	if strings.HasPrefix(token, "@@") {
		// Escaped: "@@x" becomes the literal "@x" without touching the filesystem.
		return []string{token[1:]}
	}
	path := token[1:]
	if !e.FS.Exists(path) {
		Logger.Printf("keeping literal '%s': file not readable\n", token)
		return []string{token}
	}
	canonical := canonicalPath(path)
	if visited[canonical] {
		Logger.Printf("keeping literal '%s': already expanded on this chain\n", token)
		return []string{token}
	}
	content, err := e.FS.ReadFile(path)
	if err != nil {
		Logger.Printf("keeping literal '%s': %s\n", token, err)
		return []string{token}
	}
	visited[canonical] = true
	defer delete(visited, canonical)

	out := []string{}
	for _, t := range e.tokenize(string(content)) {
		out = append(out, e.expandToken(t, visited)...)
	}
	return out
}

func canonicalPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}

func (e *Expander) tokenize(content string) []string {
	if e.Simplified {
		return e.tokenizeSimplified(content)
	}
	tokens := []string{}
	for _, line := range strings.Split(content, "\n") {
		tokens = append(tokens, e.tokenizeLine(strings.TrimSuffix(line, "\r"))...)
	}
	return tokens
}

// tokenizeSimplified - one token per non blank, non comment, trimmed line.
func (e *Expander) tokenizeSimplified(content string) []string {
	tokens := []string{}
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" {
			continue
		}
		if e.Comment != 0 && []rune(line)[0] == e.Comment {
			continue
		}
		tokens = append(tokens, line)
	}
	return tokens
}

// tokenizeLine - classic shell-like tokenization of a single line.
// Unquoted whitespace delimited runs are tokens. A double quoted run forms
// one token; inside it a backslash escapes '\', '"' and whitespace. Stray
// backslashes pass through literally. The comment character discards the rest
// of the line when it is the first non whitespace character at a token
// boundary.
func (e *Expander) tokenizeLine(line string) []string {
	tokens := []string{}
	r := []rune(line)
	i := 0
	for i < len(r) {
		for i < len(r) && unicode.IsSpace(r[i]) {
			i++
		}
		if i >= len(r) {
			break
		}
		if e.Comment != 0 && r[i] == e.Comment {
			break
		}
		if r[i] == '"' {
			start := i
			i++
			var inner strings.Builder
			closed := false
			for i < len(r) {
				c := r[i]
				if c == '\\' && i+1 < len(r) && (r[i+1] == '\\' || r[i+1] == '"' || unicode.IsSpace(r[i+1])) {
					inner.WriteRune(r[i+1])
					i += 2
					continue
				}
				if c == '"' {
					closed = true
					i++
					break
				}
				inner.WriteRune(c)
				i++
			}
			if closed {
				if e.TrimQuotes {
					tokens = append(tokens, inner.String())
				} else {
					tokens = append(tokens, string(r[start:i]))
				}
				continue
			}
			// Unbalanced quote: fall back to an unquoted scan from the quote.
			i = start
		}
		var b strings.Builder
		for i < len(r) && !unicode.IsSpace(r[i]) {
			b.WriteRune(r[i])
			i++
		}
		tokens = append(tokens, b.String())
	}
	return tokens
}

// Unquote - strips one matching pair of unescaped double quotes around s.
// Unbalanced or embedded quotes leave the value untouched.
func Unquote(s string) string {
	r := []rune(s)
	if len(r) < 2 || r[0] != '"' || r[len(r)-1] != '"' {
		return s
	}
	if r[len(r)-2] == '\\' {
		return s
	}
	inner := r[1 : len(r)-1]
	for j := 0; j < len(inner); j++ {
		if inner[j] == '\\' {
			j++
			continue
		}
		if inner[j] == '"' {
			return s
		}
	}
	return string(inner)
}
