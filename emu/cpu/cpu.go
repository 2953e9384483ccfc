/*
   pdp8: main fetch/decode/execute loop and interrupt delivery.

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

import (
	"fmt"
	"time"

	D "github.com/sigfpe8/pdp8/emu/device"
	op "github.com/sigfpe8/pdp8/emu/opcodemap"
	"github.com/sigfpe8/pdp8/emu/memory"
)

// idleReadTimeout bounds the JMP-to-self-minus-two blocking read.
const idleReadTimeout = 500 * time.Millisecond

// Run sets PC=startAddr, RUN=1, and loops until RUN clears or count
// (if non-zero) instructions have executed. It returns the number of
// instructions actually executed.
func (m *Machine) Run(startAddr uint16, count int) int {
	m.PC = startAddr & memory.WordMask
	m.Running = true
	m.instrLeft = count

	executed := 0
	for m.Running {
		m.Step()
		executed++
	}
	return executed
}

// Step executes exactly one instruction, including the housekeeping and
// interrupt-service steps that follow it (spec.md §4.1). It is also what
// the console's "si" single-step command calls directly.
func (m *Machine) Step() {
	// 1. Pending ION takes effect one instruction after it was issued.
	if m.IONDelay {
		m.IONDelay = false
		m.IEN = true
	}

	// 2. Fetch.
	m.MA = m.IF | m.PC
	m.IR = m.Mem.Read(m.MA)
	m.MB = m.IR
	m.ThisPC = m.IF | m.PC
	m.PC = (m.PC & memory.FieldMask) | ((m.PC + 1) & memory.WordMask)
	m.checkBreakpoint()

	// 3. Decode/execute.
	opcode := int((m.IR & op.OpMask) >> op.OpShift)
	switch {
	case opcode <= op.OpJMP:
		m.execMRI(opcode)
	case opcode == op.OpIOT:
		m.execIOT()
	default:
		m.execOPR()
	}

	// 4. Post-instruction housekeeping.
	if m.BPNum != 0 {
		bp := &m.Breakpoints[m.BPNum-1]
		m.Mem.Write(bp.Addr, bp.Orig)
		m.PC = bp.Addr & memory.WordMask
		m.BPNum = 0
	}
	if m.Trace && m.TraceWriter != nil {
		m.writeTrace()
	}
	if m.Stop {
		m.Stop = false
		m.Running = false
	}
	if m.instrLeft > 0 {
		m.instrLeft--
		if m.instrLeft == 0 {
			m.Running = false
		}
	}

	m.icount++
	if m.icount%KeybDelay == 0 {
		m.pollKeyboard()
	}

	if m.Bus.Pending() && m.IEN && !m.IONDelay && !m.CIFDelay {
		m.serviceInterrupt()
	}
}

// serviceInterrupt implements spec.md §4.3.
func (m *Machine) serviceInterrupt() {
	m.Mem.Write(0, m.PC&memory.WordMask)
	m.PC = 1
	m.IEN = false
	m.SF = (m.IF >> 9) | (m.DF >> 12)
	m.IF = 0
	m.DF = 0
}

// pollKeyboard runs the periodic KEYB_DELAY poll: a non-blocking check
// of the keyboard device and a forced printer-ready flag.
func (m *Machine) pollKeyboard() {
	if dev, ok := m.Devices.Lookup(D.DevKeyboard).(D.Poller); ok {
		dev.Poll(m)
	}
	if dev, ok := m.Devices.Lookup(D.DevPrinter).(D.ReadyForcer); ok {
		dev.ForceReady(m)
	}
}

// idleLoopCheck implements the idle-loop detector (spec.md §4.1): a JMP
// that targets THISPC-2, where the word at THISPC-1 is any OPR-group-2
// skip, is treated as a software KSF/JMP .-1 poll loop and triggers a
// bounded blocking keyboard read instead of spinning.
func (m *Machine) idleLoopCheck() {
	target := m.IF | ((m.ThisPC - 2) & memory.WordMask)
	if m.PC != target {
		return
	}
	prevAddr := m.IF | ((m.ThisPC - 1) & memory.WordMask)
	prev := m.Mem.Read(prevAddr)
	if prev&07400 != 07400 {
		return
	}
	if dev, ok := m.Devices.Lookup(D.DevKeyboard).(D.BlockingReader); ok {
		dev.BlockingRead(idleReadTimeout, m)
	}
}

// writeTrace emits one free-form trace line: PC, word, L, AC, IF, DF, IB,
// MA, IEN, IREQ. The line carries no mnemonic or operands; cpu does not
// import the disassembler, keeping package layering one-directional.
func (m *Machine) writeTrace() {
	fmt.Fprintf(m.TraceWriter,
		"%04o %04o L=%d AC=%04o IF=%o DF=%o IB=%o MA=%04o IEN=%v IREQ=%016x\n",
		m.ThisPC, m.IR, m.L(), m.AC(), m.IF>>12, m.DF>>12, m.IB>>12, m.MA,
		m.IEN, m.Bus.Snapshot())
}
