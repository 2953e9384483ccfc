/*
   pdp8: processor state.

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

// Package cpu implements the PDP-8 fetch/decode/execute loop, the
// effective-address unit, interrupt delivery, and the IOT dispatch for
// device 0 and the memory-extension family.
//
// Design note: the reference implementation (and the teacher repo it is
// modeled on) exposes the processor as package-level globals. Here all of
// it is bundled into Machine, constructed by New and passed by reference,
// so a process can host more than one simulated machine - used by the
// test suite, where every test builds its own Machine instead of sharing
// one mutable CPU.
package cpu

import (
	"context"
	"io"
	"log/slog"

	D "github.com/sigfpe8/pdp8/emu/device"
	"github.com/sigfpe8/pdp8/emu/intrbus"
	"github.com/sigfpe8/pdp8/emu/memory"
)

// KeybDelay is the instruction interval at which the interpreter polls
// the keyboard device and forces the printer's ready flag (spec.md §4.1).
const KeybDelay = 1000

// MaxBreakpoints bounds the breakpoint table (spec.md §3).
const MaxBreakpoints = 10

// Halt is the instruction word (07402, HLT with CLA/OSR clear) the
// breakpoint engine substitutes at a breakpointed address.
const Halt uint16 = 07402

// Breakpoint records one entry of the fixed-size breakpoint table: the
// address being watched and the word that was there before HLT was
// substituted in.
type Breakpoint struct {
	Addr   uint16
	Orig   uint16
	Active bool
}

// Machine bundles every piece of simulated state: registers, memory,
// the interrupt bus, the device table, and run-control flags.
type Machine struct {
	// Architectural registers.
	acc uint16 // Accumulator, 12 bits.
	l   uint16 // Link, 0 or 1.
	MQ  uint16
	SC  uint16
	PC  uint16
	SR  uint16
	IR  uint16
	MA  uint16
	MB  uint16

	// Memory-extension registers, stored left-justified at bits 12-14.
	IF uint16
	DF uint16
	IB uint16
	SF uint16 // bits 3-5 = saved IF>>9, bits 0-2 = saved DF>>12.

	// Flip-flops.
	Running   bool
	Stop      bool
	IEN       bool
	IONDelay  bool
	CIFDelay  bool

	// Shadow diagnostic fields.
	ThisPC uint16
	BPNum  int // 1-based index into Breakpoints of a just-consumed HLT, 0 = none.

	Bus     intrbus.Bus
	Devices D.Table
	Mem     *memory.Memory

	Breakpoints [MaxBreakpoints]Breakpoint

	Trace       bool
	TraceWriter io.Writer

	Log *slog.Logger

	instrLeft int    // Remaining instruction count for bounded Run; 0 = unbounded.
	icount    uint64 // Total instructions executed, for the KEYB_DELAY cadence.
}

// New creates a Machine with kwords*1024 words of memory (clamped and
// rounded per memory.New) and all registers zeroed.
func New(kwords int, log *slog.Logger) *Machine {
	if log == nil {
		log = slog.Default()
	}
	mem := memory.New(kwords)
	mem.Fill(Halt)
	return &Machine{
		Mem: mem,
		SF:  0,
		Log: log,
	}
}

// AC returns the 12-bit accumulator (device.CPU).
func (m *Machine) AC() uint16 { return m.acc }

// SetAC sets the accumulator, masking to 12 bits (device.CPU).
func (m *Machine) SetAC(v uint16) { m.acc = v & memory.WordMask }

// L returns the link bit (0 or 1).
func (m *Machine) L() uint16 { return m.l }

// SetL sets the link bit to v&1.
func (m *Machine) SetL(v uint16) { m.l = v & 1 }

// Skip arms a skip of the next instruction by advancing PC within the
// current field (device.CPU).
func (m *Machine) Skip() {
	m.PC = (m.PC & memory.FieldMask) | ((m.PC + 1) & memory.WordMask)
}

// Raise sets dev's interrupt request bit (device.CPU).
func (m *Machine) Raise(dev uint8) { m.Bus.Raise(dev) }

// Lower clears dev's interrupt request bit (device.CPU).
func (m *Machine) Lower(dev uint8) { m.Bus.Lower(dev) }

// Shutdown releases any host resources held by attached devices and
// flushes any pending coalesced log line.
func (m *Machine) Shutdown() {
	m.Devices.Shutdown()
	if f, ok := m.Log.Handler().(interface {
		Flush(context.Context) error
	}); ok {
		_ = f.Flush(context.Background())
	}
}
