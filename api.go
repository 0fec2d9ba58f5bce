// This file is part of cliparse.
//
// Copyright (C) 2024-2025  Emilio Garza
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package cliparse

import (
	"fmt"
	"strings"

	"github.com/agext/levenshtein"

	"github.com/emiliogarza/cliparse/internal/argfile"
	"github.com/emiliogarza/cliparse/internal/option"
)

// treeConfig - per command specification parser configuration.
// Read once at the start of each parse, never re-read mid parse.
type treeConfig struct {
	separator  rune   // name/value separator within one token
	terminator string // end of options delimiter

	expandAtFiles     bool
	commentChar       rune // 0 disables comments in argument files
	simplifiedAtFiles bool
	trimQuotes        bool

	posixClustering       bool
	unmatchedAllowed      bool
	unmatchedAsPositional bool
	stopAtUnmatched       bool
	stopAtPositional      bool
	overwrittenAllowed    bool
	toggleBoolFlags       bool

	caseInsensitiveOptions  bool
	caseInsensitiveCommands bool
	collectErrors           bool
}

func defaultTreeConfig() treeConfig {
	return treeConfig{
		separator:     '=',
		terminator:    "--",
		expandAtFiles: true,
		commentChar:   '#',
	}
}

// cmdTree - a command specification node.
// This is the structure that gets built during option and command definition
// and walked by the interpreter.
type cmdTree struct {
	Name         string
	Description  string
	Version      string
	SynopsisArgs string

	Parent *cmdTree
	Level  int

	ChildCommands map[string]*cmdTree
	commandOrder  []string

	options     []*option.Option // named options in declaration order
	positionals []*option.Option // positionals in declaration order

	// names tracks every declared name/alias/label, as declared, to catch
	// duplicate definitions early.
	names map[string]*option.Option

	// Lookup maps rebuilt by build() honoring the case mode.
	optionMap  map[string]*option.Option
	commandMap map[string]*cmdTree
	posOrder   []*option.Option // positionals sorted by index range start

	commandFn CommandFn
	cfg       treeConfig
	fs        argfile.Filesystem

	atFileLabel       string
	atFileDescription string
}

func newCmdTree(name string) *cmdTree {
	return &cmdTree{
		Name:          name,
		ChildCommands: map[string]*cmdTree{},
		names:         map[string]*option.Option{},
		cfg:           defaultTreeConfig(),
		fs:            argfile.OS{},
	}
}

// AddChildOption - registers a named option and its primary name.
// Duplicate names are a definition error and panic.
func (t *cmdTree) AddChildOption(name string, opt *option.Option) {
	if name == "" {
		panic("option/alias name can't be empty")
	}
	if v, ok := t.names[name]; ok {
		panic(fmt.Sprintf("option/alias '%s' is already defined in option '%s'", name, v.Name))
	}
	t.names[name] = opt
	if name == opt.Name {
		t.options = append(t.options, opt)
	}
}

// AddChildPositional - registers a positional parameter.
func (t *cmdTree) AddChildPositional(label string, opt *option.Option) {
	if label == "" {
		panic("positional label can't be empty")
	}
	if v, ok := t.names[label]; ok {
		panic(fmt.Sprintf("argument '%s' is already defined in '%s'", label, v.Name))
	}
	t.names[label] = opt
	t.positionals = append(t.positionals, opt)
}

// AddChildCommand - registers a subcommand.
func (t *cmdTree) AddChildCommand(name string, cmd *cmdTree) {
	if name == "" {
		panic("command name can't be empty")
	}
	if v, ok := t.ChildCommands[name]; ok {
		panic(fmt.Sprintf("command '%s' is already defined in command '%s'", name, v.Name))
	}
	t.ChildCommands[name] = cmd
	t.commandOrder = append(t.commandOrder, name)
}

// build - produces the validated lookup state for a parse.
// Idempotent; called at the start of every parse so that configuration
// changes between parses are honored. Definition errors panic here.
func (t *cmdTree) build() {
	t.optionMap = map[string]*option.Option{}
	for _, opt := range t.options {
		opt.SetToggle(t.cfg.toggleBoolFlags)
		for _, alias := range opt.Aliases {
			key := alias
			if t.cfg.caseInsensitiveOptions {
				key = strings.ToLower(alias)
			}
			if prev, ok := t.optionMap[key]; ok {
				panic(fmt.Sprintf("option name collision: '%s' held by both '%s' and '%s'", key, prev.Name, opt.Name))
			}
			t.optionMap[key] = opt
		}
	}

	t.commandMap = map[string]*cmdTree{}
	for name, cmd := range t.ChildCommands {
		key := name
		if t.cfg.caseInsensitiveCommands {
			key = strings.ToLower(name)
		}
		if prev, ok := t.commandMap[key]; ok {
			panic(fmt.Sprintf("command name collision: '%s' held by both '%s' and '%s'", key, prev.Name, cmd.Name))
		}
		t.commandMap[key] = cmd
	}

	t.posOrder = make([]*option.Option, len(t.positionals))
	copy(t.posOrder, t.positionals)
	option.SortByIndex(t.posOrder)
	t.validatePositionalCoverage()
}

// validatePositionalCoverage - declared index ranges must cover 0 upward
// without unreachable gaps. Checked at build time, not per parse token.
func (t *cmdTree) validatePositionalCoverage() {
	if len(t.posOrder) == 0 {
		return
	}
	covered := 0
	for _, pos := range t.posOrder {
		if pos.Index.Min > covered {
			panic(fmt.Sprintf("positional '%s' starts at index %d leaving index %d unreachable", pos.DisplayName(), pos.Index.Min, covered))
		}
		if pos.Index.Unbounded {
			return
		}
		if pos.Index.Max+1 > covered {
			covered = pos.Index.Max + 1
		}
	}
}

// resetParseState - restores every argument to its original default.
// Matched state never leaks across parses of a reused specification.
func (t *cmdTree) resetParseState() {
	for _, opt := range t.options {
		opt.ResetToDefault()
	}
	for _, pos := range t.positionals {
		pos.ResetToDefault()
	}
}

func (t *cmdTree) lookupOption(name string) *option.Option {
	if t.cfg.caseInsensitiveOptions {
		name = strings.ToLower(name)
	}
	return t.optionMap[name]
}

func (t *cmdTree) lookupCommand(name string) *cmdTree {
	if t.cfg.caseInsensitiveCommands {
		name = strings.ToLower(name)
	}
	return t.commandMap[name]
}

func dashedName(name string) string {
	if len(name) == 1 {
		return "-" + name
	}
	return "--" + name
}

// resemblesOption - decides whether an unrecognized option shaped token is an
// error/unmatched option or a silent positional. The heuristic compares the
// token against declared names by longest common prefix; a token that parses
// as a number only resembles an option when a declared name gets closer than
// the bare dash.
func (t *cmdTree) resemblesOption(token string) bool {
	if !strings.HasPrefix(token, "-") || token == "-" {
		return false
	}
	if len(t.optionMap) == 0 {
		return false
	}
	longest := 0
	for name := range t.optionMap {
		if l := commonPrefixLen(token, dashedName(name)); l > longest {
			longest = l
		}
	}
	if looksLikeNumber(token) {
		return longest > 1
	}
	return true
}

// suggestOption - closest declared name for "did you mean" messages.
func (t *cmdTree) suggestOption(token string) string {
	given := strings.TrimLeft(token, "-")
	if idx := strings.IndexRune(given, t.cfg.separator); idx > 0 {
		given = given[:idx]
	}
	best := ""
	bestDist := 3 // suggestions further than 2 edits away aren't helpful
	for name := range t.optionMap {
		if d := levenshtein.Distance(given, name, nil); d < bestDist {
			best, bestDist = name, d
		}
	}
	return best
}

// markerMatched - tells if a usage/version marker option was matched, which
// exempts required-field validation for the parse.
func (t *cmdTree) markerMatched() bool {
	for _, opt := range t.options {
		if opt.Called && (opt.IsUsageHelp || opt.IsVersionHelp) {
			return true
		}
	}
	return false
}

// Mixin merge.
//
// Mixin arguments append in declaration order and go through the same
// duplicate validation as directly declared arguments. An attribute already
// set non-default on the owner is never overwritten; if left default, the
// first merged mixin that sets it wins.
func (t *cmdTree) mergeMixin(m *cmdTree) {
	for _, opt := range m.options {
		for _, alias := range opt.Aliases {
			t.AddChildOption(alias, opt)
		}
	}
	for _, pos := range m.positionals {
		t.AddChildPositional(pos.Name, pos)
	}
	if t.Version == "" && m.Version != "" {
		t.Version = m.Version
	}
	if t.Description == "" && m.Description != "" {
		t.Description = m.Description
	}
	if t.SynopsisArgs == "" && m.SynopsisArgs != "" {
		t.SynopsisArgs = m.SynopsisArgs
	}
	if t.cfg.separator == '=' && m.cfg.separator != '=' {
		t.cfg.separator = m.cfg.separator
	}
}

// Result - outcome of one parse at one command level.
type Result struct {
	// Name of the command specification the tokens were resolved against.
	Name string

	// Options and Positionals hold the argument descriptors that matched,
	// in match order.
	Options     []*option.Option
	Positionals []*option.Option

	// Unmatched tokens, in stream order.
	Unmatched []string

	// Expanded token list after argument file expansion.
	Expanded []string

	// Errors collected in collect-errors mode. Empty otherwise: the first
	// error aborts the parse and is returned from Parse directly.
	Errors []error

	// Sub is the next link of the per level result chain when a subcommand
	// was dispatched.
	Sub *Result
}

func (r *Result) recordOption(opt *option.Option) {
	for _, o := range r.Options {
		if o == opt {
			return
		}
	}
	r.Options = append(r.Options, opt)
}

func (r *Result) recordPositional(opt *option.Option) {
	for _, o := range r.Positionals {
		if o == opt {
			return
		}
	}
	r.Positionals = append(r.Positionals, opt)
}

// Final - the deepest result of the subcommand chain.
func (r *Result) Final() *Result {
	n := r
	for n.Sub != nil {
		n = n.Sub
	}
	return n
}

// CommandChain - names of the dispatched command levels, root first.
func (r *Result) CommandChain() []string {
	chain := []string{}
	for n := r; n != nil; n = n.Sub {
		chain = append(chain, n.Name)
	}
	return chain
}

// Arg - a single resolved argument in a result.
type Arg struct {
	Name   string
	Raw    []string
	Value  interface{}
	Called bool
}

// Args - flattened view of the matched arguments at this level, options
// first, then positionals, in match order. Meant for the help/exit-code
// layers that render results.
func (r *Result) Args() []Arg {
	out := []Arg{}
	for _, o := range r.Options {
		out = append(out, Arg{Name: o.Name, Raw: o.RawValues, Value: o.Value(), Called: o.Called})
	}
	for _, p := range r.Positionals {
		out = append(out, Arg{Name: p.DisplayName(), Raw: p.RawValues, Value: p.Value(), Called: p.Called})
	}
	return out
}
