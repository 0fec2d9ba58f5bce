// This file is part of cliparse.
//
// Copyright (C) 2024-2025  Emilio Garza
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package help - renders the help sections from the declared specification.
// The interpreter never consults this package; it only consumes the model.
package help

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/mitchellh/go-wordwrap"

	"github.com/emiliogarza/cliparse/internal/option"
	"github.com/emiliogarza/cliparse/text"
)

// Padding -
var Padding = 4

// Width - wrap column for descriptions.
var Width = 80

// Name -
func Name(scriptName, name, description string) string {
	out := scriptName
	if name != "" {
		if out != "" {
			out += " "
		}
		out += name
	}
	if description != "" {
		out += fmt.Sprintf(" - %s", description)
	}
	return fmt.Sprintf("%s:\n%s%s\n", text.HelpNameHeader, strings.Repeat(" ", Padding), out)
}

// Version -
func Version(name, version string) string {
	return fmt.Sprintf("%s:\n%s%s %s\n", text.HelpVersionHeader, strings.Repeat(" ", Padding), name, version)
}

// Synopsis - Return a default synopsis.
func Synopsis(scriptName, name, synopsisArgs string, options []*option.Option, positionals []*option.Option, commands []string) string {
	scriptName = strings.Repeat(" ", Padding) + scriptName
	if name != "" {
		scriptName += " " + name
	}
	normalOptions := []*option.Option{}
	requiredOptions := []*option.Option{}
	for _, opt := range options {
		if opt.Required {
			requiredOptions = append(requiredOptions, opt)
		} else {
			normalOptions = append(normalOptions, opt)
		}
	}
	option.Sort(normalOptions)
	option.Sort(requiredOptions)
	optSynopsis := func(opt *option.Option) string {
		if opt.Required {
			return opt.HelpSynopsis
		}
		return "[" + opt.HelpSynopsis + "]"
	}

	var out string
	line := scriptName
	add := func(syn string) {
		if len(line)+len(syn) > Width {
			out += line + "\n"
			line = fmt.Sprintf("%s %s", strings.Repeat(" ", len(scriptName)), syn)
		} else {
			line += fmt.Sprintf(" %s", syn)
		}
	}
	for _, opt := range append(requiredOptions, normalOptions...) {
		add(optSynopsis(opt))
	}
	for _, pos := range positionals {
		add(pos.HelpSynopsis)
	}
	if len(commands) > 0 {
		add("<command> [<args>]")
	}
	if synopsisArgs != "" {
		add(synopsisArgs)
	}
	out += line
	return fmt.Sprintf("%s:\n%s\n", text.HelpSynopsisHeader, out)
}

// CommandList -
// commandMap => name: description
func CommandList(commandMap map[string]string) string {
	if len(commandMap) <= 0 {
		return ""
	}
	names := []string{}
	for name := range commandMap {
		names = append(names, name)
	}
	sort.Strings(names)
	factor := longestStringLen(names)
	out := ""
	for _, command := range names {
		out += fmt.Sprintf("%s%s%s%s\n",
			strings.Repeat(" ", Padding), pad(command, factor), strings.Repeat(" ", Padding),
			wrapTo(commandMap[command], Padding+factor+Padding))
	}
	return fmt.Sprintf("%s:\n%s", text.HelpCommandsHeader, out)
}

// longestStringLen - Given a slice of strings it returns the length of the longest string in the slice.
func longestStringLen(s []string) int {
	i := 0
	for _, e := range s {
		if len(e) > i {
			i = len(e)
		}
	}
	return i
}

// pad - Given a string and a padding factor it will return the string padded with spaces.
func pad(s string, factor int) string {
	return fmt.Sprintf("%-"+strconv.Itoa(factor)+"s", s)
}

// wrapTo - wraps s at Width and indents continuation lines to the given column.
func wrapTo(s string, indent int) string {
	w := Width - indent
	if w < 20 {
		w = 20
	}
	wrapped := wordwrap.WrapString(s, uint(w))
	return strings.ReplaceAll(wrapped, "\n", "\n"+strings.Repeat(" ", indent))
}

// OptionList - Return a formatted list of options and their descriptions.
func OptionList(options []*option.Option) string {
	normalOptions := []*option.Option{}
	requiredOptions := []*option.Option{}
	factor := 0
	for _, opt := range options {
		if l := len(opt.HelpSynopsis); l > factor {
			factor = l
		}
		if opt.Required {
			requiredOptions = append(requiredOptions, opt)
		} else {
			normalOptions = append(normalOptions, opt)
		}
	}
	option.Sort(normalOptions)
	option.Sort(requiredOptions)

	helpString := func(opt *option.Option) string {
		indent := Padding + factor + Padding
		txt := strings.Repeat(" ", Padding) + pad(opt.HelpSynopsis, factor) + strings.Repeat(" ", Padding)
		if opt.Description != "" {
			txt += wrapTo(opt.Description, indent) + " "
		}
		if !opt.Required {
			txt += fmt.Sprintf("(default: %s)", opt.DefaultStr)
		}
		return strings.TrimRight(txt, " ") + "\n\n"
	}

	out := ""
	if len(requiredOptions) > 0 || len(normalOptions) > 0 {
		out += fmt.Sprintf("%s:\n", text.HelpOptionsHeader)
		for _, opt := range requiredOptions {
			out += helpString(opt)
		}
		for _, opt := range normalOptions {
			out += helpString(opt)
		}
	}
	return out
}

// ArgumentList - Return a formatted list of positionals and extra entries.
// extra => label: description, for things like the @file entry.
func ArgumentList(positionals []*option.Option, extraLabels []string, extra map[string]string) string {
	if len(positionals) == 0 && len(extra) == 0 {
		return ""
	}
	factor := 0
	for _, pos := range positionals {
		if l := len(pos.HelpSynopsis); l > factor {
			factor = l
		}
	}
	for _, label := range extraLabels {
		if l := len(label); l > factor {
			factor = l
		}
	}
	indent := Padding + factor + Padding
	out := fmt.Sprintf("%s:\n", text.HelpArgumentsHeader)
	for _, pos := range positionals {
		txt := strings.Repeat(" ", Padding) + pad(pos.HelpSynopsis, factor) + strings.Repeat(" ", Padding)
		txt += wrapTo(pos.Description, indent)
		out += strings.TrimRight(txt, " ") + "\n"
	}
	for _, label := range extraLabels {
		txt := strings.Repeat(" ", Padding) + pad(label, factor) + strings.Repeat(" ", Padding)
		txt += wrapTo(extra[label], indent)
		out += strings.TrimRight(txt, " ") + "\n"
	}
	return out
}
