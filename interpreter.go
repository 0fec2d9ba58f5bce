// This file is part of cliparse.
//
// Copyright (C) 2024-2025  Emilio Garza
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package cliparse

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/emiliogarza/cliparse/internal/argfile"
	"github.com/emiliogarza/cliparse/internal/option"
	"github.com/emiliogarza/cliparse/internal/sliceiterator"
	"github.com/emiliogarza/cliparse/text"
)

// parser - single use interpreter state for one command level.
type parser struct {
	tree   *cmdTree
	iter   *sliceiterator.Iterator
	result *Result

	optionsEnded bool // terminator seen, everything left is positional
	posCursor    int  // next positional slot to fill

	fatal error // first error in abort mode, nil in collect-errors mode

	// Set when a subcommand token was found; the caller recurses.
	subCmd  *cmdTree
	subArgs []string
}

// runParse - interprets args against tree and recurses into subcommands.
// Returns the per level result, the deepest command specification reached and
// the combined error.
func runParse(tree *cmdTree, args []string) (*Result, *cmdTree, error) {
	tree.build()
	tree.resetParseState()

	res := &Result{Name: tree.Name}
	p := &parser{tree: tree, iter: sliceiterator.New(&args), result: res}
	p.run()

	if p.fatal == nil && !tree.markerMatched() {
		for _, opt := range tree.options {
			if err := opt.CheckRequired(); err != nil {
				p.fail(err)
			}
		}
		for _, pos := range tree.posOrder {
			if err := pos.CheckPositionalArity(); err != nil {
				p.fail(err)
			}
		}
	}

	err := p.fatal
	if err == nil && len(res.Errors) > 0 {
		err = errors.Join(res.Errors...)
	}

	final := tree
	if p.subCmd != nil {
		subRes, subFinal, subErr := runParse(p.subCmd, p.subArgs)
		res.Sub = subRes
		final = subFinal
		if subErr != nil {
			if err != nil {
				err = errors.Join(err, subErr)
			} else {
				err = subErr
			}
		}
	}
	return res, final, err
}

// fail - records an error. In collect-errors mode the parse keeps going,
// otherwise the first error aborts.
func (p *parser) fail(err error) {
	if p.tree.cfg.collectErrors {
		p.result.Errors = append(p.result.Errors, err)
		return
	}
	if p.fatal == nil {
		p.fatal = err
	}
}

func (p *parser) run() {
	for p.fatal == nil && p.iter.Next() {
		token := p.iter.Value()
		Logger.Printf("level: %d, token: %s\n", p.tree.Level, token)

		if !p.optionsEnded {
			if token == p.tree.cfg.terminator {
				p.optionsEnded = true
				continue
			}
			if parts, ok := splitOptionToken(token); ok {
				p.handleOptionToken(token, parts)
				continue
			}
			// Subcommands only match before the first positional claim.
			if p.posCursor == 0 {
				if cmd := p.tree.lookupCommand(token); cmd != nil {
					p.subCmd = cmd
					p.subArgs = p.iter.Rest()
					return
				}
			}
		}

		claimed, convErr := p.consumePositional(token)
		if claimed {
			continue
		}
		p.unexpectedToken(token, convErr)
	}
}

// handleOptionToken - resolution order for an option shaped token:
// exact body match, then separator split match, then POSIX clustering.
// When both the exact and the split reading resolve, the longer unsplit name
// wins and the tie is logged.
func (p *parser) handleOptionToken(token string, parts tokenParts) {
	tree := p.tree
	body := parts.Body

	exact := tree.lookupOption(body)

	var splitOpt *option.Option
	var splitName, splitValue string
	if idx := strings.IndexRune(body, tree.cfg.separator); idx > 0 {
		splitName = body[:idx]
		splitValue = body[idx+utf8.RuneLen(tree.cfg.separator):]
		splitOpt = tree.lookupOption(splitName)
	}

	switch {
	case exact != nil && splitOpt != nil && exact != splitOpt:
		Logger.Printf("token '%s' resolves to both '%s' and '%s', using the longer name '%s'\n",
			token, exact.Name, splitOpt.Name, exact.Name)
		p.applyOption(exact, body, nil)
	case exact != nil:
		p.applyOption(exact, body, nil)
	case splitOpt != nil:
		p.applyOption(splitOpt, splitName, &splitValue)
	case tree.cfg.posixClustering && parts.Prefix == "-" && len(body) > 1:
		if !p.handleCluster(body) {
			p.unknownOption(token)
		}
	default:
		p.unknownOption(token)
	}
}

// applyOption - marks the match and consumes value tokens up to the arity
// maximum. attached is the value packed into the same token, if any; it
// counts toward the arity.
func (p *parser) applyOption(opt *option.Option, usedAlias string, attached *string) {
	cfg := p.tree.cfg

	if opt.Called && !opt.MultiValued() {
		newValue := ""
		if attached != nil {
			newValue = *attached
		} else if v, ok := p.iter.PeekNextValue(); ok {
			newValue = v
		}
		if cfg.overwrittenAllowed {
			fmt.Fprintf(Writer, text.WarningOnOverwrite+"\n", opt.DisplayName(), newValue)
		} else {
			p.fail(fmt.Errorf("%w"+text.ErrorOverwrittenValue, ErrorOverwrittenOption, opt.DisplayName(), newValue))
			if p.fatal != nil {
				return
			}
		}
	}

	opt.StartMatch()
	opt.SetCalled(usedAlias)
	p.result.recordOption(opt)

	count := 0
	if attached != nil {
		if !p.saveValue(opt, *attached) {
			return
		}
		count++
	}

	for !opt.Arity.Full(count) {
		next, ok := p.iter.PeekNextValue()
		if !ok || next == cfg.terminator {
			break
		}
		if p.tree.resemblesOption(next) {
			break
		}
		// Beyond the minimum consumption is speculative: a value that
		// wouldn't convert is left for the positionals.
		if count >= opt.Arity.Min && !p.peekConvertible(opt, next) {
			break
		}
		p.iter.Next()
		if !p.saveValue(opt, next) {
			return
		}
		count++
	}

	if count == 0 && attached == nil && opt.IsBoolFlag() {
		// Bare flag: set true, or toggle in toggle mode.
		_ = opt.Save()
		return
	}

	if count < opt.Arity.Min {
		if next, ok := p.iter.PeekNextValue(); ok && strings.HasPrefix(next, "-") {
			p.fail(fmt.Errorf("%w"+text.ErrorArgumentWithDash, ErrorMissingArgument, opt.DisplayName()))
			return
		}
		p.fail(fmt.Errorf("%w"+text.ErrorMissingArgument, ErrorMissingArgument, opt.DisplayName()))
	}
}

// saveValue - stores one raw value. Returns false when the parse must stop.
func (p *parser) saveValue(opt *option.Option, raw string) bool {
	if p.tree.cfg.trimQuotes {
		raw = argfile.Unquote(raw)
	}
	if err := opt.Save(raw); err != nil {
		p.fail(err)
		return p.fatal == nil
	}
	return true
}

// peekConvertible - tells if a candidate value would be accepted without
// consuming or storing it.
func (p *parser) peekConvertible(opt *option.Option, raw string) bool {
	if p.tree.cfg.trimQuotes {
		raw = argfile.Unquote(raw)
	}
	if opt.MapValued() {
		key, _, found := strings.Cut(raw, "=")
		return found && key != ""
	}
	elements := []string{raw}
	if opt.MultiValued() && opt.Splitter != nil {
		elements = opt.Splitter.Split(raw, -1)
	}
	for _, e := range elements {
		if _, err := opt.Convert(e); err != nil {
			return false
		}
	}
	return true
}

type clusterStep struct {
	opt       *option.Option
	usedAlias string
	attached  *string
}

// planCluster - validates a single dash cluster without side effects.
// Every letter has to resolve to a declared single letter option; the first
// value taking letter ends the cluster and the rest of the token, minus an
// optional separator, becomes its attached value.
func (p *parser) planCluster(body string) ([]clusterStep, bool) {
	tree := p.tree
	sep := tree.cfg.separator
	steps := []clusterStep{}
	runes := []rune(body)
	for i := 0; i < len(runes); i++ {
		c := string(runes[i])
		opt := tree.lookupOption(c)
		if opt == nil {
			return nil, false
		}
		flagLike := !opt.Arity.Unbounded && opt.Arity.Max == 0
		if flagLike {
			if i+1 < len(runes) && runes[i+1] == sep {
				// -v=false style explicit literal
				v := string(runes[i+2:])
				steps = append(steps, clusterStep{opt, c, &v})
				return steps, true
			}
			steps = append(steps, clusterStep{opt, c, nil})
			continue
		}
		if i+1 < len(runes) {
			rest := string(runes[i+1:])
			if runes[i+1] == sep {
				rest = string(runes[i+2:])
			}
			steps = append(steps, clusterStep{opt, c, &rest})
		} else {
			steps = append(steps, clusterStep{opt, c, nil})
		}
		return steps, true
	}
	return steps, true
}

func (p *parser) handleCluster(body string) bool {
	steps, ok := p.planCluster(body)
	if !ok {
		return false
	}
	for _, s := range steps {
		p.applyOption(s.opt, s.usedAlias, s.attached)
		if p.fatal != nil {
			break
		}
	}
	return true
}

// unknownOption - an option shaped token that resolved to nothing.
// A token that doesn't resemble any declared option (for example a negative
// number) silently falls through to the positionals; one that does follows
// the unmatched policy, or fails with a suggestion.
func (p *parser) unknownOption(token string) {
	cfg := p.tree.cfg

	if !p.tree.resemblesOption(token) {
		claimed, convErr := p.consumePositional(token)
		if claimed {
			return
		}
		p.unexpectedToken(token, convErr)
		return
	}

	if cfg.unmatchedAsPositional {
		if claimed, _ := p.consumePositional(token); claimed {
			return
		}
	}
	if cfg.unmatchedAllowed {
		fmt.Fprintf(Writer, text.WarningOnUnknown+"\n", token)
		p.result.Unmatched = append(p.result.Unmatched, token)
		if cfg.stopAtUnmatched {
			p.drainToUnmatched()
		}
		return
	}
	if s := p.tree.suggestOption(token); s != "" {
		p.fail(fmt.Errorf("%w"+text.MessageOnUnknownSuggestion, ErrorUnknownOption, token, s))
		return
	}
	p.fail(fmt.Errorf("%w"+text.MessageOnUnknown, ErrorUnknownOption, token))
}

// consumePositional - offers the token to the positionals covering the
// current slot, in index order. A positional whose conversion rejects the
// token declines it so an overlapping later range can claim it. Returns the
// first conversion error for the unclaimed case. A claim ends option
// recognition in stop-at-positional mode no matter which path offered the
// token.
func (p *parser) consumePositional(token string) (bool, error) {
	raw := token
	if p.tree.cfg.trimQuotes {
		raw = argfile.Unquote(raw)
	}
	var convErr error
	for _, pos := range p.tree.posOrder {
		if !pos.Index.Contains(p.posCursor) {
			continue
		}
		if pos.Arity.Full(pos.ValueCount()) {
			continue
		}
		if !p.peekConvertible(pos, token) {
			if convErr == nil {
				_, err := pos.Convert(raw)
				convErr = &option.ParameterError{Name: pos.DisplayName(), Value: raw, Err: err}
			}
			continue
		}
		if !pos.Called {
			pos.StartMatch()
			pos.SetCalled(pos.DisplayName())
		}
		if err := pos.Save(raw); err != nil {
			p.fail(err)
			return true, nil
		}
		p.result.recordPositional(pos)
		p.posCursor++
		if p.tree.cfg.stopAtPositional {
			p.optionsEnded = true
		}
		return true, nil
	}
	return false, convErr
}

// unexpectedToken - a token no option and no positional would take.
func (p *parser) unexpectedToken(token string, convErr error) {
	cfg := p.tree.cfg
	if cfg.unmatchedAllowed {
		p.result.Unmatched = append(p.result.Unmatched, token)
		if cfg.stopAtUnmatched {
			p.drainToUnmatched()
		}
		return
	}
	if convErr != nil {
		p.fail(convErr)
		return
	}
	p.fail(fmt.Errorf("%w"+text.MessageOnUnexpected, ErrorUnexpectedArgument, token))
}

func (p *parser) drainToUnmatched() {
	for p.iter.Next() {
		p.result.Unmatched = append(p.result.Unmatched, p.iter.Value())
	}
}
