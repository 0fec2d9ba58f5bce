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

	"github.com/emiliogarza/cliparse/internal/help"
	"github.com/emiliogarza/cliparse/internal/option"
	"github.com/emiliogarza/cliparse/text"
)

// HelpSection - Indicates what portion of the help to return.
type HelpSection int

// Help output sections.
const (
	helpDefaultName HelpSection = iota
	HelpName
	HelpSynopsis
	HelpCommandList
	HelpArgumentList
	HelpOptionList
)

func commandPath(n *cmdTree) string {
	if n.Parent != nil {
		return fmt.Sprintf("%s %s", commandPath(n.Parent), n.Name)
	}
	return n.Name
}

// Help - Default help string composed of all available sections, or only the
// given ones.
func (p *Parser) Help(sections ...HelpSection) string {
	return helpOutput(p.programTree, sections...)
}

// helpFor - full help for a node, used by Dispatch for commands without a
// command function.
func helpFor(node *cmdTree) string {
	return helpOutput(node)
}

func helpOutput(node *cmdTree, sections ...HelpSection) string {
	if len(sections) == 0 {
		sections = []HelpSection{helpDefaultName, HelpSynopsis, HelpCommandList, HelpArgumentList, HelpOptionList}
	}
	helpTxt := ""

	scriptName := commandPath(node)

	positionals := make([]*option.Option, len(node.positionals))
	copy(positionals, node.positionals)
	option.SortByIndex(positionals)

	for _, section := range sections {
		switch section {
		// The default name section only renders when there is something to
		// say; the explicit HelpName always renders.
		case helpDefaultName:
			if node.Parent != nil || node.Description != "" {
				helpTxt += help.Name("", scriptName, node.Description)
				helpTxt += "\n"
			}
		case HelpName:
			helpTxt += help.Name("", scriptName, node.Description)
			helpTxt += "\n"
		case HelpSynopsis:
			commands := []string{}
			for _, name := range node.commandOrder {
				commands = append(commands, name)
			}
			helpTxt += help.Synopsis("", scriptName, node.SynopsisArgs, node.options, positionals, commands)
			helpTxt += "\n"
		case HelpCommandList:
			m := make(map[string]string)
			for _, name := range node.commandOrder {
				m[name] = node.ChildCommands[name].Description
			}
			commands := help.CommandList(m)
			if commands != "" {
				helpTxt += commands
				helpTxt += "\n"
			}
		case HelpArgumentList:
			extraLabels := []string{}
			extra := map[string]string{}
			if node.cfg.expandAtFiles {
				label := node.atFileLabel
				if label == "" {
					label = text.HelpAtFileLabel
				}
				description := node.atFileDescription
				if description == "" {
					description = text.HelpAtFileDescription
				}
				extraLabels = append(extraLabels, label)
				extra[label] = description
			}
			arguments := help.ArgumentList(positionals, extraLabels, extra)
			if arguments != "" {
				helpTxt += arguments
				helpTxt += "\n"
			}
		case HelpOptionList:
			helpTxt += help.OptionList(node.options)
		}
	}

	return helpTxt
}
