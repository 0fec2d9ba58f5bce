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

	"github.com/emiliogarza/cliparse/internal/option"
)

// ErrorHelpCalled - Indicates the help has been handled.
var ErrorHelpCalled = errors.New("help called")

// ErrorMissingArgument - An option didn't receive its minimum number of values.
var ErrorMissingArgument = errors.New("")

// ErrorUnknownOption - A token resembling an option matched no declared option.
var ErrorUnknownOption = errors.New("")

// ErrorUnexpectedArgument - A token matched no option and no positional.
var ErrorUnexpectedArgument = errors.New("")

// ErrorOverwrittenOption - A single valued option was given more than once.
var ErrorOverwrittenOption = errors.New("")

// Sentinels surfaced from the argument model so callers can use errors.Is
// without importing internal packages.
var (
	ErrorConversion            = option.ErrorConversion
	ErrorMalformedKeyValue     = option.ErrorMalformedKeyValue
	ErrorMissingRequiredOption = option.ErrorMissingRequiredOption
	ErrorMissingPositional     = option.ErrorMissingPositional
)

// ParameterError - conversion failure detail: argument name, raw value and
// the converter's error. Matches ErrorConversion with errors.Is.
type ParameterError = option.ParameterError
