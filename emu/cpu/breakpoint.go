/*
   pdp8: breakpoint table (HLT substitution), spec.md §3/§9.

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
   ROBERT M SUPNIK BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
   IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
   CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.

*/

package cpu

import "fmt"

// SetBreakpoint installs a breakpoint at addr: the original word is saved
// and addr is overwritten with HLT. Returns the 1-based breakpoint number
// used by "bc"/"bl". Setting a breakpoint already active at addr is a
// no-op that returns the existing number.
func (m *Machine) SetBreakpoint(addr uint16) (int, error) {
	for i := range m.Breakpoints {
		if m.Breakpoints[i].Active && m.Breakpoints[i].Addr == addr {
			return i + 1, nil
		}
	}
	for i := range m.Breakpoints {
		if !m.Breakpoints[i].Active {
			m.Breakpoints[i] = Breakpoint{Addr: addr, Orig: m.Mem.Read(addr), Active: true}
			m.Mem.Write(addr, Halt)
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("breakpoint table full (max %d)", MaxBreakpoints)
}

// ClearBreakpoint removes breakpoint n (1-based), restoring the word it
// shadowed.
func (m *Machine) ClearBreakpoint(n int) error {
	if n < 1 || n > MaxBreakpoints || !m.Breakpoints[n-1].Active {
		return fmt.Errorf("no such breakpoint: %d", n)
	}
	bp := &m.Breakpoints[n-1]
	m.Mem.Write(bp.Addr, bp.Orig)
	bp.Active = false
	return nil
}

// ListBreakpoints returns the active breakpoints, in table order.
func (m *Machine) ListBreakpoints() []Breakpoint {
	var list []Breakpoint
	for _, bp := range m.Breakpoints {
		if bp.Active {
			list = append(list, bp)
		}
	}
	return list
}

// checkBreakpoint marks m.BPNum when the just-fetched word is the forced
// HLT at an active breakpoint's address, so Step's post-instruction
// housekeeping knows to restore the shadowed word once it has run. The
// m.IR == Halt guard matters once the word has already been restored: a
// later fetch of the same address (now holding the real instruction
// again) must not re-trigger the restore/rewind housekeeping, or the PC
// advance from that real instruction would be clobbered.
func (m *Machine) checkBreakpoint() {
	for i := range m.Breakpoints {
		if m.Breakpoints[i].Active && m.Breakpoints[i].Addr == m.MA && m.IR == Halt {
			m.BPNum = i + 1
			return
		}
	}
}
