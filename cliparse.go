// This file is part of cliparse.
//
// Copyright (C) 2024-2025  Emilio Garza
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

/*
Package cliparse - command line argument resolution engine.

Given a declared specification of options and positional parameters and the
raw token sequence supplied by a user it produces fully resolved, type
converted values bound to the caller's variables.

Usage

	opt := cliparse.New()

	var verbose bool
	var output string
	var level int
	opt.BoolVar(&verbose, "verbose", false, opt.Alias("v"))
	opt.StringVar(&output, "output", "out.txt", opt.Alias("o"))
	opt.IntVar(&level, "level", 0, opt.Arity("0..1"))

	var files []string
	opt.StringSlicePositionalVar(&files, "FILE")

	result, err := opt.Parse(os.Args[1:])

Features

  - Long (`--opt`) and short (`-o`) options, attached (`--opt=value`) and
    separate (`--opt value`) values, configurable separator.
  - POSIX style short option clustering: `-rvo=out` means `-r -v -o=out`.
  - Arity ranges ("1", "0..1", "2..4", "*", "1..*") for options and
    positionals, with split regexes for packing several values in one token.
  - Positional parameters matched by index ranges, including overlapping
    ranges where a typed positional greedily claims tokens until a value
    stops converting.
  - Argument files: `@file` tokens are expanded in place before
    interpretation, with comments, quoting, nesting and cycle detection.
  - Subcommands, reusable mixin fragments, case insensitive matching,
    collect-errors mode and a configurable unmatched/overwrite policy.

Definition errors (duplicate names, malformed ranges, positional index gaps)
panic at build time: the programmer has to fix those, they are not user
errors.
*/
package cliparse
