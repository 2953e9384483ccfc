/*
pdp8 Optional device hooks used by the interpreter's keyboard-idle handling

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
package device

import "time"

// Poller is implemented by devices that want a non-blocking poll every
// KEYB_DELAY instructions (spec.md §4.1). Only the keyboard implements
// this today. c is the owning machine, so a character that arrived since
// the last poll can raise the device's interrupt request immediately,
// the same way the reference reader loop does on every successful read.
type Poller interface {
	Poll(c CPU)
}

// ReadyForcer is implemented by devices whose ready flag is forced on
// the same KEYB_DELAY cadence (spec.md §4.1: "force the printer flag").
type ReadyForcer interface {
	ForceReady(c CPU)
}

// BlockingReader is implemented by the keyboard to support the
// idle-loop-detected blocking read (spec.md §4.1) and the JMP-to-self
// heuristic's timed read (spec.md §9 open question b). The read must
// still honor device-level interrupt semantics: a character delivered
// this way is visible on the device's next real flag-test instruction.
type BlockingReader interface {
	BlockingRead(timeout time.Duration, c CPU) bool
}
