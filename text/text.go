// This file is part of cliparse.
//
// Copyright (C) 2024-2025  Emilio Garza
//
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package text - user facing strings.
//
// Centralized so that projects embedding the parser can override the wording
// (or translate it) before calling Parse.
package text

// ErrorMissingArgument holds the text for missing argument error.
// It has a string placeholder '%s' for the name of the option missing the argument.
var ErrorMissingArgument = "missing argument for option '%s'"

// ErrorArgumentWithDash holds the text for missing argument error in cases
// where the next argument looks like an option (starts with '-').
var ErrorArgumentWithDash = "missing argument for option '%s'\n" +
	"If passing arguments that start with '-' use --option=-argument"

// ErrorMissingPositional - a positional parameter didn't receive its minimum
// number of values.
var ErrorMissingPositional = "missing required value for positional '%s'"

// ErrorConvertValue - a raw value failed type conversion.
// Placeholders: option name, raw value, cause.
var ErrorConvertValue = "invalid value for '%s': cannot convert '%s': %s"

// ErrorArgumentIsNotKeyValue - a map valued option received an entry without
// a key/value separator.
var ErrorArgumentIsNotKeyValue = "argument '%s' for option '%s' should be of type 'key=value'"

// ErrorOverwrittenValue - a single valued option was given more than once.
var ErrorOverwrittenValue = "option '%s' was already given a value, second value '%s' not allowed"

// WarningOnOverwrite - printed to the warning writer when overwriting is allowed.
var WarningOnOverwrite = "WARNING: option '%s' value overwritten with '%s'"

// MessageOnUnknown - unknown option message.
var MessageOnUnknown = "unknown option '%s'"

// MessageOnUnknownSuggestion - unknown option message with a close match.
var MessageOnUnknownSuggestion = "unknown option '%s', did you mean '%s'?"

// MessageOnUnexpected - a token matched no option and no positional.
var MessageOnUnexpected = "unexpected argument '%s'"

// WarningOnUnknown - unknown option warning.
var WarningOnUnknown = "WARNING: unknown option '%s'"

// ErrorMissingRequiredOption - a required option was not given.
var ErrorMissingRequiredOption = "missing required option '%s'"

// Help section headers.
var HelpNameHeader = "NAME"
var HelpSynopsisHeader = "SYNOPSIS"
var HelpCommandsHeader = "COMMANDS"
var HelpArgumentsHeader = "ARGUMENTS"
var HelpOptionsHeader = "OPTIONS"
var HelpVersionHeader = "VERSION"

// HelpAtFileLabel - default label for the at-file usage entry.
var HelpAtFileLabel = "@<filename>"

// HelpAtFileDescription - default description for the at-file usage entry.
var HelpAtFileDescription = "Read arguments from the given file, one use of '@' expands, '@@' escapes."
