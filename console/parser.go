/*
pdp8 console: command-line tokenizer and prefix-matched dispatch.

	Copyright (c) 2024, Richard Cornwell

	Permission is hereby granted, free of charge, to any person obtaining a
	copy of this software and associated documentation files (the "Software"),
	to deal in the Software without restriction, including without limitation
	the rights to use, copy, modify, merge, publish, distribute, sublicense,
	and/or sell copies of the Software, and to permit persons to whom the
	Software is furnished to do so, subject to the following conditions:

	The above copyright notice and this permission notice shall be included in
	all copies or substantial portions of the Software.

	THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
	IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
	FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.  IN NO EVENT SHALL
	RICHARD CORNWELL BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
	IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
	CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
*/

// Package console implements the operator command surface spec.md §6
// summarizes: continue/run, si, examine, deposit, sacc/slink/sswt,
// shregs, bp/bc/bl, load, assign, trace, log, quit - case-insensitive,
// prefix-matched, the way the teacher's command/parser package dispatches
// "attach"/"detach"/"set"/"show" against S/370 unit-record devices.
package console

import (
	"errors"
	"strings"
)

type cmd struct {
	name    string
	min     int
	process func(*Console, []string) error
}

var cmdTable = []cmd{
	{name: "assign", min: 2, process: (*Console).cmdAssign},
	{name: "bc", min: 2, process: (*Console).cmdBreakClear},
	{name: "bl", min: 2, process: (*Console).cmdBreakList},
	{name: "bp", min: 2, process: (*Console).cmdBreakSet},
	{name: "continue", min: 1, process: (*Console).cmdContinue},
	{name: "deposit", min: 1, process: (*Console).cmdDeposit},
	{name: "examine", min: 1, process: (*Console).cmdExamine},
	{name: "load", min: 1, process: (*Console).cmdLoad},
	{name: "log", min: 3, process: (*Console).cmdLog},
	{name: "quit", min: 1, process: (*Console).cmdQuit},
	{name: "run", min: 3, process: (*Console).cmdRun},
	{name: "sacc", min: 2, process: (*Console).cmdSetAcc},
	{name: "shregs", min: 2, process: (*Console).cmdShowRegs},
	{name: "si", min: 2, process: (*Console).cmdStep},
	{name: "slink", min: 2, process: (*Console).cmdSetLink},
	{name: "sswt", min: 2, process: (*Console).cmdSetSwitch},
	{name: "trace", min: 1, process: (*Console).cmdTrace},
}

var errAmbiguous = errors.New("ambiguous command")
var errUnknown = errors.New("unknown command")

// matchCommand reports whether command is a non-empty prefix of name.
// The per-command minimum length is applied by matchList: "c" selects
// "continue" (min 1), but "r" does not select "run" (min 3) even though
// no other command starts with "r".
func matchCommand(name, command string) bool {
	if len(command) == 0 || len(command) > len(name) {
		return false
	}
	return strings.HasPrefix(name, command)
}

func matchList(command string) []cmd {
	var out []cmd
	for _, c := range cmdTable {
		if matchCommand(c.name, command) && len(command) >= c.min {
			out = append(out, c)
		}
	}
	return out
}

// Execute parses and dispatches one command line. quit reports whether
// the command was "quit".
func (c *Console) Execute(line string) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	name := strings.ToLower(fields[0])
	args := fields[1:]

	matches := matchList(name)
	switch len(matches) {
	case 0:
		return false, errUnknown
	case 1:
		if matches[0].name == "quit" {
			return true, matches[0].process(c, args)
		}
		return false, matches[0].process(c, args)
	default:
		return false, errAmbiguous
	}
}
