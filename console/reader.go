/*
pdp8 console: interactive command reader.

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

package console

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/peterh/liner"
)

// commandNames feeds the completer; kept separate from cmdTable so the
// completer doesn't need a Console receiver.
func commandNames() []string {
	names := make([]string, len(cmdTable))
	for i, c := range cmdTable {
		names[i] = c.name
	}
	return names
}

// Run drives the interactive prompt loop, reading commands from the
// terminal until "quit", EOF, or a Ctrl-C abort.
func (c *Console) Run() {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	names := commandNames()
	line.SetCompleter(func(partial string) []string {
		var out []string
		for _, n := range names {
			if len(partial) <= len(n) && n[:len(partial)] == partial {
				out = append(out, n)
			}
		}
		return out
	})

	for {
		prompt := fmt.Sprintf("PC=%05o> ", c.M.IF|c.M.PC)
		command, err := line.Prompt(prompt)
		if err == nil {
			line.AppendHistory(command)
			quit, err := c.Execute(command)
			if err != nil {
				fmt.Fprintln(c.Out, "Error: "+err.Error())
				c.Out.Flush()
			}
			if quit {
				return
			}
			continue
		}

		if errors.Is(err, liner.ErrPromptAborted) {
			return
		}
		slog.Error("error reading line: " + err.Error())
		return
	}
}
