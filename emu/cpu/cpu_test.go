package cpu

/*
   pdp8: fetch/decode/execute and interrupt-delivery tests.

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

import (
	"testing"
	"time"

	D "github.com/sigfpe8/pdp8/emu/device"
)

func newTestMachine() *Machine {
	return New(4, nil)
}

// ISZ on 07777 wraps to 0 and skips the next instruction.
func TestISZWrap(t *testing.T) {
	m := newTestMachine()
	m.Mem.Write(0200, 02210)  // ISZ 0210
	m.Mem.Write(0210, 07777)
	m.Mem.Write(0201, 07000) // would-be skipped instruction (NOP-ish)
	m.Mem.Write(0202, 07402) // HLT, landing spot if skip occurred
	m.PC = 0200

	m.Step()
	if got := m.Mem.Read(0210); got != 0 {
		t.Errorf("ISZ wrap: memory = %04o, want 0", got)
	}
	if m.PC != 0202 {
		t.Errorf("ISZ wrap: PC = %04o, want 0202 (skip taken)", m.PC)
	}
}

// ISZ on a non-wrapping value does not skip.
func TestISZNoWrap(t *testing.T) {
	m := newTestMachine()
	m.Mem.Write(0200, 02210)
	m.Mem.Write(0210, 00001)
	m.PC = 0200

	m.Step()
	if got := m.Mem.Read(0210); got != 2 {
		t.Errorf("ISZ: memory = %04o, want 2", got)
	}
	if m.PC != 0201 {
		t.Errorf("ISZ: PC = %04o, want 0201 (no skip)", m.PC)
	}
}

// TAD sets L on carry out of bit 0 and wraps AC to 12 bits.
func TestTADCarry(t *testing.T) {
	m := newTestMachine()
	m.Mem.Write(0200, 01210) // TAD 0210
	m.Mem.Write(0210, 00001)
	m.SetAC(07777)
	m.SetL(0)
	m.PC = 0200

	m.Step()
	if m.AC() != 0 {
		t.Errorf("TAD carry: AC = %04o, want 0", m.AC())
	}
	if m.L() != 1 {
		t.Errorf("TAD carry: L = %d, want 1", m.L())
	}
}

// TAD without carry leaves L untouched (toggle is XOR of carry bit).
func TestTADNoCarry(t *testing.T) {
	m := newTestMachine()
	m.Mem.Write(0200, 01210)
	m.Mem.Write(0210, 00001)
	m.SetAC(00001)
	m.SetL(1)
	m.PC = 0200

	m.Step()
	if m.AC() != 2 {
		t.Errorf("TAD: AC = %04o, want 2", m.AC())
	}
	if m.L() != 1 {
		t.Errorf("TAD: L changed to %d, want unchanged 1", m.L())
	}
}

// An indirect reference through 0010-0017 auto-increments the pointer
// before it is used, then DCA deposits AC and clears it.
func TestAutoIndexIndirectDCA(t *testing.T) {
	m := newTestMachine()
	m.Mem.Write(00010, 00500) // auto-index register, pre-increment value
	m.Mem.Write(00501, 01111) // stale value at the post-increment target
	m.Mem.Write(0200, 03410)  // DCA I 0010
	m.SetAC(04321)
	m.PC = 0200

	m.Step()

	if got := m.Mem.Read(00010); got != 00501 {
		t.Errorf("auto-index register = %04o, want 00501 (incremented)", got)
	}
	if got := m.Mem.Read(00501); got != 04321 {
		t.Errorf("DCA target = %04o, want 04321", got)
	}
	if m.AC() != 0 {
		t.Errorf("AC after DCA = %04o, want 0", m.AC())
	}
}

// A non-indirect reference to 0010-0017 does not auto-increment.
func TestAutoIndexOnlyAppliesToIndirect(t *testing.T) {
	m := newTestMachine()
	m.Mem.Write(00010, 00500)
	m.Mem.Write(0200, 01010) // TAD 0010 (direct, not indirect)
	m.PC = 0200

	m.Step()
	if got := m.Mem.Read(00010); got != 00500 {
		t.Errorf("direct reference to 0010 incremented it: got %04o, want 00500", got)
	}
}

// JMS stores the return address at the target and resumes at target+1.
func TestJMSReturnAddress(t *testing.T) {
	m := newTestMachine()
	m.Mem.Write(0200, 04300) // JMS 0300
	m.PC = 0200

	m.Step()

	if got := m.Mem.Read(0300); got != 0201 {
		t.Errorf("JMS saved return address = %04o, want 0201", got)
	}
	if m.PC != 0301 {
		t.Errorf("JMS: PC = %04o, want 0301", m.PC)
	}
}

// Interrupt delivery: PC saved to location 0, execution jumps to
// location 1, IEN is cleared, and IF/DF are stashed into SF.
func TestInterruptVectorDelivery(t *testing.T) {
	m := newTestMachine()
	m.Mem.Write(0200, 07000) // NOP (group 1, no micro-ops set)
	m.PC = 0200
	m.IEN = true
	m.IF = 020000 // field 2
	m.DF = 030000 // field 3
	m.Bus.Raise(D.DevKeyboard)

	m.Step()

	if got := m.Mem.Read(0); got != 0201 {
		t.Errorf("interrupt: saved PC at location 0 = %04o, want 0201", got)
	}
	if m.IF != 0 || m.PC != 1 {
		t.Errorf("interrupt: IF=%o PC=%04o, want IF=0 PC=0001", m.IF, m.PC)
	}
	if m.IEN {
		t.Errorf("interrupt: IEN still set after delivery")
	}
	if m.DF != 0 {
		t.Errorf("interrupt: DF=%o, want 0", m.DF)
	}
	wantSF := uint16(020000>>9) | uint16(030000>>12)
	if m.SF != wantSF {
		t.Errorf("interrupt: SF=%o, want %o", m.SF, wantSF)
	}
}

// An interrupt request raised with IEN clear is not serviced.
func TestInterruptNotServicedWhenDisabled(t *testing.T) {
	m := newTestMachine()
	m.Mem.Write(0200, 07000)
	m.PC = 0200
	m.IEN = false
	m.Bus.Raise(D.DevKeyboard)

	m.Step()

	if m.PC != 0201 {
		t.Errorf("interrupt serviced despite IEN=0: PC = %04o", m.PC)
	}
}

// ION takes effect one instruction after it is issued, not immediately.
func TestIONOneInstructionDelay(t *testing.T) {
	m := newTestMachine()
	m.Mem.Write(0200, 06001) // ION
	m.Mem.Write(0201, 07000) // NOP
	m.PC = 0200
	m.Bus.Raise(D.DevKeyboard)

	m.Step() // executes ION; IEN must still be false right after
	if m.IEN {
		t.Errorf("IEN set immediately after ION, want delayed by one instruction")
	}
	m.Step() // NOP; ION's delay now resolves, then the pending interrupt fires
	if !m.IEN {
		// Once the interrupt fires IEN is cleared again by serviceInterrupt,
		// so observe via the side effect instead: PC should be in the vector.
	}
	if m.PC != 1 {
		t.Errorf("interrupt not delivered after ION's one-instruction delay: PC = %04o", m.PC)
	}
}

// fakeBlockingKeyboard is a minimal device.Device + device.BlockingReader
// used to exercise the idle-loop JMP-to-self heuristic without the real
// terminal-backed keyboard.
type fakeBlockingKeyboard struct {
	reads int
}

func (k *fakeBlockingKeyboard) IOT(fn uint8, c D.CPU) {}
func (k *fakeBlockingKeyboard) Reset()                {}
func (k *fakeBlockingKeyboard) Shutdown()             {}
func (k *fakeBlockingKeyboard) Debug(string) error    { return nil }
func (k *fakeBlockingKeyboard) BlockingRead(timeout time.Duration, c D.CPU) bool {
	k.reads++
	return false
}

// A JMP targeting THISPC-2, with an OPR-group-2 skip at THISPC-1,
// triggers the bounded blocking keyboard read instead of spinning.
func TestIdleLoopKeyboardWait(t *testing.T) {
	m := newTestMachine()
	fake := &fakeBlockingKeyboard{}
	m.Devices.Register(D.DevKeyboard, fake)

	m.Mem.Write(0100, 07000) // loop target, arbitrary content
	m.Mem.Write(0101, 07410) // group-2 skip test word (07400 family)
	m.Mem.Write(0102, 05100) // JMP 0100 (= ThisPC-2, ThisPC being 0102)
	m.PC = 0102

	m.Step()

	if fake.reads == 0 {
		t.Errorf("idle loop at JMP .-2 did not trigger a blocking keyboard read")
	}
}

// A JMP that does not target THISPC-2 never triggers the idle-loop read.
func TestIdleLoopNotTriggeredForOrdinaryJump(t *testing.T) {
	m := newTestMachine()
	fake := &fakeBlockingKeyboard{}
	m.Devices.Register(D.DevKeyboard, fake)

	m.Mem.Write(0101, 07410)
	m.Mem.Write(0102, 05110) // JMP 0110, not a self-loop
	m.PC = 0102

	m.Step()

	if fake.reads != 0 {
		t.Errorf("idle loop triggered for an ordinary jump")
	}
}

// Regression test for the breakpoint auto-restore/rewind bug: hitting a
// breakpoint must leave the real instruction readable in memory and must
// re-execute it (not skip it) on the next step, rather than permanently
// converting the address into a HLT trap.
func TestBreakpointRestoresAndRewindsPC(t *testing.T) {
	m := newTestMachine()
	m.Mem.Write(0200, 01210) // TAD 0210
	m.Mem.Write(0210, 00005)
	m.SetAC(1)
	m.PC = 0200

	if _, err := m.SetBreakpoint(0200); err != nil {
		t.Fatalf("SetBreakpoint: %v", err)
	}

	// Stepping onto the breakpointed address executes the forced HLT and
	// runs the post-instruction restore/rewind housekeeping.
	m.Step()

	if got := m.Mem.Read(0200); got != 01210 {
		t.Fatalf("breakpoint did not restore original word: got %04o, want 01210", got)
	}
	if m.PC != 0200 {
		t.Fatalf("breakpoint did not rewind PC: got %04o, want 0200", m.PC)
	}
	if m.Running {
		t.Fatalf("forced HLT did not stop the machine")
	}

	// Resuming must now execute the real TAD rather than skip over it.
	m.Running = true
	m.Step()
	if m.AC() != 6 {
		t.Errorf("breakpointed instruction not re-executed after resume: AC = %04o, want 6", m.AC())
	}
	if m.PC != 0201 {
		t.Errorf("PC after resumed TAD = %04o, want 0201", m.PC)
	}
}

// Clearing a breakpoint also restores the shadowed word.
func TestBreakpointClearRestoresWord(t *testing.T) {
	m := newTestMachine()
	m.Mem.Write(0300, 07000)
	n, err := m.SetBreakpoint(0300)
	if err != nil {
		t.Fatalf("SetBreakpoint: %v", err)
	}
	if got := m.Mem.Read(0300); got != Halt {
		t.Fatalf("SetBreakpoint did not install HLT: got %04o", got)
	}
	if err := m.ClearBreakpoint(n); err != nil {
		t.Fatalf("ClearBreakpoint: %v", err)
	}
	if got := m.Mem.Read(0300); got != 07000 {
		t.Errorf("ClearBreakpoint did not restore word: got %04o, want 07000", got)
	}
}

// Run executes until RUN clears (HLT in group 2) and reports the count.
func TestRunStopsOnHalt(t *testing.T) {
	m := newTestMachine()
	m.Mem.Write(0200, 07000) // NOP
	m.Mem.Write(0201, 07402) // HLT

	n := m.Run(0200, 0)
	if n != 2 {
		t.Errorf("Run executed %d instructions, want 2", n)
	}
	if m.Running {
		t.Errorf("Run returned with Running still true")
	}
}

// Run honors a bounded instruction count even without a HLT.
func TestRunBoundedCount(t *testing.T) {
	m := newTestMachine()
	m.Mem.Write(0200, 07000)
	m.Mem.Write(0201, 07000)
	m.Mem.Write(0202, 07000)

	n := m.Run(0200, 2)
	if n != 2 {
		t.Errorf("Run(count=2) executed %d instructions, want 2", n)
	}
}
