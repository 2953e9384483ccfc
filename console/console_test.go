package console

/*
pdp8 console: command dispatch and handler tests.

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

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/sigfpe8/pdp8/emu/cpu"
)

func newTestConsole() (*Console, *bytes.Buffer) {
	var buf bytes.Buffer
	m := cpu.New(4, nil)
	c := New(m, bufio.NewWriter(&buf))
	return c, &buf
}

func TestExecuteUnknownCommand(t *testing.T) {
	c, _ := newTestConsole()
	_, err := c.Execute("frobnicate")
	if err != errUnknown {
		t.Errorf("Execute(unknown) error = %v, want errUnknown", err)
	}
}

// No two entries in the real cmdTable share a prefix long enough to
// clear both their min thresholds at once, so ambiguity never arises
// from the shipped command set. Exercise the errAmbiguous branch
// directly by registering a conflicting pair alongside "si".
func TestExecuteAmbiguousCommand(t *testing.T) {
	saved := cmdTable
	defer func() { cmdTable = saved }()
	cmdTable = append(append([]cmd{}, saved...), cmd{name: "sick", min: 1, process: (*Console).cmdStep})

	c, _ := newTestConsole()
	_, err := c.Execute("si")
	if err != errAmbiguous {
		t.Errorf("Execute(\"si\") error = %v, want errAmbiguous", err)
	}
}

func TestExecuteBlankLine(t *testing.T) {
	c, _ := newTestConsole()
	quit, err := c.Execute("   ")
	if quit || err != nil {
		t.Errorf("Execute(blank) = (%v, %v), want (false, nil)", quit, err)
	}
}

func TestExecutePrefixMatch(t *testing.T) {
	c, _ := newTestConsole()
	if _, err := c.Execute("sacc 1234"); err != nil {
		t.Fatalf("Execute(\"sacc 1234\"): %v", err)
	}
	if c.M.AC() != 01234 {
		t.Errorf("AC = %04o, want 01234", c.M.AC())
	}
}

func TestSetAccAndLinkAndSwitch(t *testing.T) {
	c, _ := newTestConsole()
	if _, err := c.Execute("sacc 7777"); err != nil {
		t.Fatalf("sacc: %v", err)
	}
	if c.M.AC() != 07777 {
		t.Errorf("AC = %04o, want 07777", c.M.AC())
	}

	if _, err := c.Execute("slink 1"); err != nil {
		t.Fatalf("slink: %v", err)
	}
	if c.M.L() != 1 {
		t.Errorf("L = %d, want 1", c.M.L())
	}

	if _, err := c.Execute("slink 2"); err == nil {
		t.Errorf("slink 2 should be rejected, link is 0 or 1")
	}

	if _, err := c.Execute("sswt 4000"); err != nil {
		t.Fatalf("sswt: %v", err)
	}
	if c.M.SR != 04000 {
		t.Errorf("SR = %04o, want 04000", c.M.SR)
	}
}

func TestShowRegsWritesToOutput(t *testing.T) {
	c, buf := newTestConsole()
	if _, err := c.Execute("shregs"); err != nil {
		t.Fatalf("shregs: %v", err)
	}
	if !strings.Contains(buf.String(), "AC=") {
		t.Errorf("shregs output = %q, want it to contain \"AC=\"", buf.String())
	}
}

func TestBreakpointSetListClear(t *testing.T) {
	c, buf := newTestConsole()
	if _, err := c.Execute("bp 200"); err != nil {
		t.Fatalf("bp: %v", err)
	}
	if !strings.Contains(buf.String(), "Breakpoint 1") {
		t.Errorf("bp output = %q, want it to mention \"Breakpoint 1\"", buf.String())
	}
	buf.Reset()

	if _, err := c.Execute("bl"); err != nil {
		t.Fatalf("bl: %v", err)
	}
	if !strings.Contains(buf.String(), "00200") {
		t.Errorf("bl output = %q, want it to list address 00200", buf.String())
	}

	if _, err := c.Execute("bc 1"); err != nil {
		t.Fatalf("bc: %v", err)
	}
	if got := c.M.ListBreakpoints(); len(got) != 0 {
		t.Errorf("ListBreakpoints after bc = %v, want empty", got)
	}
}

func TestStepAdvancesPC(t *testing.T) {
	c, buf := newTestConsole()
	c.M.Mem.Write(0, 07000) // NOP, so "si" doesn't halt the machine
	if _, err := c.Execute("si"); err != nil {
		t.Fatalf("si: %v", err)
	}
	if c.M.PC != 1 {
		t.Errorf("PC after si = %04o, want 1", c.M.PC)
	}
	if !strings.Contains(buf.String(), "PC=") {
		t.Errorf("si output = %q, want it to contain \"PC=\"", buf.String())
	}
}

func TestExamineListsWordsAndAdvances(t *testing.T) {
	c, buf := newTestConsole()
	c.M.Mem.Write(0100, 07402) // HLT, single-word disassembly
	if _, err := c.Execute("examine 100 2"); err != nil {
		t.Fatalf("examine: %v", err)
	}
	if !strings.Contains(buf.String(), "00100") {
		t.Errorf("examine output = %q, want it to show address 00100", buf.String())
	}
	if !strings.Contains(buf.String(), "00101") {
		t.Errorf("examine output = %q, want it to advance to address 00101", buf.String())
	}
}

func TestAssignUnknownDeviceRejected(t *testing.T) {
	c, _ := newTestConsole()
	_, err := c.Execute("assign 77 /tmp/does-not-matter")
	if err == nil {
		t.Errorf("assign to an unknown device should fail")
	}
}

func TestQuitReportsQuit(t *testing.T) {
	c, _ := newTestConsole()
	quit, err := c.Execute("quit")
	if err != nil || !quit {
		t.Errorf("Execute(\"quit\") = (%v, %v), want (true, nil)", quit, err)
	}
}

func TestTraceToggle(t *testing.T) {
	dir := t.TempDir()
	c, _ := newTestConsole()
	if _, err := c.Execute("trace 1 " + dir + "/trace.txt"); err != nil {
		t.Fatalf("trace on: %v", err)
	}
	if !c.M.Trace {
		t.Errorf("trace 1 did not enable tracing")
	}
	if _, err := c.Execute("trace 0"); err != nil {
		t.Fatalf("trace off: %v", err)
	}
	if c.M.Trace {
		t.Errorf("trace 0 did not disable tracing")
	}
}
