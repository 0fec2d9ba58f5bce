// This file is part of cliparse.
//
// Copyright (C) 2024-2025  Emilio Garza
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package cliparse

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/emiliogarza/cliparse/internal/argfile"
	"github.com/emiliogarza/cliparse/internal/option"
)

// Logger instance set to `io.Discard` by default.
// Enable debug logging by setting: `Logger.SetOutput(os.Stderr)`.
var Logger = log.New(io.Discard, "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile)

// Writer - sink for user facing warnings (overwrite downgraded to a warning,
// unknown options in unmatched-allowed mode, help output from Dispatch). The
// engine never prints anywhere else.
var Writer io.Writer = os.Stderr

// Parser - the user facing object used to declare a command specification and
// run the interpreter over a token stream.
type Parser struct {
	programTree *cmdTree

	// finalNode - command specification the last Parse call bottomed out
	// at. Called/CalledAs/Value queries start here and walk up.
	finalNode *cmdTree
}

// CommandFn - command callback set with SetCommandFn and run by Dispatch.
// args receives the unmatched tokens of the dispatched command level.
type CommandFn func(ctx context.Context, opt *Parser, args []string) error

// Filesystem - read capability used by the argument file preprocessor.
// Swap it with SetFilesystem to parse without touching the disk.
type Filesystem = argfile.Filesystem

// simplifiedAtFilesEnv - process wide override for simplified argument file
// mode. When the variable is set it wins over Config; present but empty or
// any casing of "true" turns the mode on, anything else turns it off.
const simplifiedAtFilesEnv = "CLIPARSE_SIMPLIFIED_ATFILES"

// Config - process wide settings that have to be in place before any
// declaration happens. Everything else is a Set* method.
type Config struct {
	// SimplifiedAtFiles - argument files are one token per line instead of
	// shell-like tokenization. The CLIPARSE_SIMPLIFIED_ATFILES environment
	// variable, when set, overrides this field at construction.
	SimplifiedAtFiles bool

	// TrimQuotes - strip balanced double quotes around values.
	TrimQuotes bool

	// AtFileLabel and AtFileDescription override the argument file entry
	// in the help output.
	AtFileLabel       string
	AtFileDescription string
}

// New - Returns an empty parser ready for declarations.
func New() *Parser {
	return NewWithConfig(Config{})
}

// NewWithConfig - Like New but with the process wide settings applied.
func NewWithConfig(cfg Config) *Parser {
	t := newCmdTree(filepath.Base(os.Args[0]))
	t.cfg.simplifiedAtFiles = cfg.SimplifiedAtFiles
	t.cfg.trimQuotes = cfg.TrimQuotes
	t.atFileLabel = cfg.AtFileLabel
	t.atFileDescription = cfg.AtFileDescription
	if v, ok := os.LookupEnv(simplifiedAtFilesEnv); ok {
		t.cfg.simplifiedAtFiles = argfile.SimplifiedOverride(v)
	}
	return &Parser{programTree: t}
}

// NewMixin - Returns a reusable declaration fragment.
// A mixin is never parsed directly; merge it into real parsers with AddMixin.
func NewMixin() *Parser {
	return &Parser{programTree: newCmdTree("mixin")}
}

// Self - Sets the name and description used in help and messages.
// An empty name keeps the current one (the program name by default).
func (p *Parser) Self(name string, description string) *Parser {
	if name != "" {
		p.programTree.Name = name
	}
	p.programTree.Description = description
	return p
}

// SetVersion - version string reported by a version marker option.
func (p *Parser) SetVersion(version string) *Parser {
	p.programTree.Version = version
	return p
}

// SetSynopsisArgs - trailing args hint shown in the help synopsis.
func (p *Parser) SetSynopsisArgs(s string) *Parser {
	p.programTree.SynopsisArgs = s
	return p
}

// NewCommand - declares a subcommand. The child starts with a copy of the
// parent's parser configuration.
func (p *Parser) NewCommand(name string, description string) *Parser {
	t := p.programTree
	cmd := newCmdTree(name)
	cmd.Description = description
	cmd.Parent = t
	cmd.Level = t.Level + 1
	cmd.cfg = t.cfg
	cmd.fs = t.fs
	t.AddChildCommand(name, cmd)
	return &Parser{programTree: cmd}
}

// AddMixin - merges a mixin fragment into this parser.
// Mixin arguments append in declaration order; attributes already set on this
// parser win, otherwise the first mixin that sets one wins.
func (p *Parser) AddMixin(m *Parser) *Parser {
	p.programTree.mergeMixin(m.programTree)
	return p
}

// SetCommandFn - callback run by Dispatch when this command is the deepest
// one matched.
func (p *Parser) SetCommandFn(fn CommandFn) *Parser {
	p.programTree.commandFn = fn
	return p
}

// SetFilesystem - replaces the filesystem the argument file preprocessor
// reads through.
func (p *Parser) SetFilesystem(fs Filesystem) *Parser {
	p.programTree.fs = fs
	return p
}

// SetSeparator - rune separating name and value within one token, '=' by
// default.
func (p *Parser) SetSeparator(r rune) *Parser {
	p.programTree.cfg.separator = r
	return p
}

// SetTerminator - end of options token, "--" by default.
func (p *Parser) SetTerminator(s string) *Parser {
	p.programTree.cfg.terminator = s
	return p
}

// SetExpandAtFiles - toggles argument file expansion, on by default.
func (p *Parser) SetExpandAtFiles(enabled bool) *Parser {
	p.programTree.cfg.expandAtFiles = enabled
	return p
}

// SetAtFileCommentChar - comment character inside argument files, '#' by
// default, 0 disables comments.
func (p *Parser) SetAtFileCommentChar(r rune) *Parser {
	p.programTree.cfg.commentChar = r
	return p
}

// SetSimplifiedAtFiles - argument files are one token per line.
func (p *Parser) SetSimplifiedAtFiles(enabled bool) *Parser {
	p.programTree.cfg.simplifiedAtFiles = enabled
	return p
}

// SetTrimQuotes - strip balanced double quotes around values.
func (p *Parser) SetTrimQuotes(enabled bool) *Parser {
	p.programTree.cfg.trimQuotes = enabled
	return p
}

// SetClustering - POSIX style single dash clustering: `-rvo=out` reads as
// `-r -v -o=out`.
func (p *Parser) SetClustering(enabled bool) *Parser {
	p.programTree.cfg.posixClustering = enabled
	return p
}

// SetUnmatchedAllowed - unknown options and unexpected arguments are
// collected in Result.Unmatched instead of failing the parse.
func (p *Parser) SetUnmatchedAllowed(enabled bool) *Parser {
	p.programTree.cfg.unmatchedAllowed = enabled
	return p
}

// SetUnmatchedAsPositional - tokens resembling unknown options are offered to
// the positionals before the unmatched policy applies.
func (p *Parser) SetUnmatchedAsPositional(enabled bool) *Parser {
	p.programTree.cfg.unmatchedAsPositional = enabled
	return p
}

// SetStopAtUnmatched - the first unmatched token stops interpretation; it and
// everything after it land in Result.Unmatched.
func (p *Parser) SetStopAtUnmatched(enabled bool) *Parser {
	p.programTree.cfg.stopAtUnmatched = enabled
	return p
}

// SetStopAtPositional - the first positional ends option recognition, like an
// implicit terminator.
func (p *Parser) SetStopAtPositional(enabled bool) *Parser {
	p.programTree.cfg.stopAtPositional = enabled
	return p
}

// SetOverwrittenAllowed - repeating a single valued option keeps the newest
// value and prints a warning to Writer instead of failing.
func (p *Parser) SetOverwrittenAllowed(enabled bool) *Parser {
	p.programTree.cfg.overwrittenAllowed = enabled
	return p
}

// SetToggleBoolFlags - a bare flag toggles the prior value instead of setting
// true. Explicit `--flag=false` literals bypass the toggle either way.
func (p *Parser) SetToggleBoolFlags(enabled bool) *Parser {
	p.programTree.cfg.toggleBoolFlags = enabled
	return p
}

// SetCaseInsensitiveOptions - option names match case insensitively.
// Names that collide under lowercasing panic at parse build time.
func (p *Parser) SetCaseInsensitiveOptions(enabled bool) *Parser {
	p.programTree.cfg.caseInsensitiveOptions = enabled
	return p
}

// SetCaseInsensitiveCommands - subcommand names match case insensitively.
func (p *Parser) SetCaseInsensitiveCommands(enabled bool) *Parser {
	p.programTree.cfg.caseInsensitiveCommands = enabled
	return p
}

// SetCollectErrors - gather every parse error in Result.Errors and keep going
// instead of aborting on the first one. Parse still returns the errors,
// joined.
func (p *Parser) SetCollectErrors(enabled bool) *Parser {
	p.programTree.cfg.collectErrors = enabled
	return p
}

// Parse - expands argument files, interprets the token stream against the
// declared specification and binds the resolved values.
//
// Pass `nil` to parse an empty stream, or `os.Args[1:]` for the real one.
func (p *Parser) Parse(args []string) (*Result, error) {
	if args == nil {
		args = []string{}
	}
	t := p.programTree
	expanded := args
	if t.cfg.expandAtFiles {
		e := &argfile.Expander{
			FS:         t.fs,
			Comment:    t.cfg.commentChar,
			Simplified: t.cfg.simplifiedAtFiles,
			TrimQuotes: t.cfg.trimQuotes,
		}
		expanded = e.Expand(args)
	}
	res, final, err := runParse(t, expanded)
	res.Expanded = expanded
	p.finalNode = final
	return res, err
}

// Dispatch - parses args and runs the command function of the deepest command
// matched. A matched command without a function prints its help and returns
// ErrorHelpCalled.
func (p *Parser) Dispatch(ctx context.Context, args []string) error {
	res, err := p.Parse(args)
	if err != nil {
		return err
	}
	node := p.finalNode
	if node.commandFn == nil {
		fmt.Fprint(Writer, helpFor(node))
		return ErrorHelpCalled
	}
	return node.commandFn(ctx, &Parser{programTree: node, finalNode: node}, res.Final().Unmatched)
}

// option - find a declared argument by name, alias or positional label,
// starting at the last parsed command level and walking up.
func (p *Parser) option(name string) *option.Option {
	node := p.finalNode
	if node == nil {
		node = p.programTree
	}
	for ; node != nil; node = node.Parent {
		if opt, ok := node.names[name]; ok {
			return opt
		}
	}
	return nil
}

// Called - tells if the argument was matched on the last parse.
func (p *Parser) Called(name string) bool {
	if opt := p.option(name); opt != nil {
		return opt.Called
	}
	return false
}

// CalledAs - the alias the argument was matched with, "" if it wasn't.
func (p *Parser) CalledAs(name string) string {
	if opt := p.option(name); opt != nil {
		return opt.UsedAlias
	}
	return ""
}

// Value - the current bound value of the argument, nil for unknown names.
func (p *Parser) Value(name string) interface{} {
	if opt := p.option(name); opt != nil {
		return opt.Value()
	}
	return nil
}
