/*
   pdp8: memory-reference opcodes and effective-address unit.

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
	op "github.com/sigfpe8/pdp8/emu/opcodemap"
	"github.com/sigfpe8/pdp8/emu/memory"
)

// autoIndexLow/autoIndexHigh bound the per-field auto-increment
// registers at 0010-0017.
const (
	autoIndexLow  = 00010
	autoIndexHigh = 00017
)

// effectiveAddress resolves a memory-reference instruction's operand to
// a physical address, performing the 0010-0017 auto-increment on
// indirect references (spec.md §4.2).
func (m *Machine) effectiveAddress() uint16 {
	var ma uint16
	if m.IR&op.PageBit != 0 {
		ma = m.IF | (m.ThisPC & memory.PageMask) | (m.IR & op.OffsetMask)
	} else {
		ma = m.IF | (m.IR & op.OffsetMask)
	}

	if m.IR&op.IndirectBit != 0 {
		inField := ma & 07770
		if inField == autoIndexLow {
			m.Mem.Write(ma, (m.Mem.Read(ma)+1)&memory.WordMask)
		}
		ma = m.DF | m.Mem.Read(ma)
	}

	return ma
}

// execMRI executes one memory-reference instruction (opcodes 0-5).
func (m *Machine) execMRI(opcode int) {
	switch opcode {
	case op.OpAND:
		ma := m.effectiveAddress()
		m.SetAC(m.AC() & m.Mem.Read(ma))

	case op.OpTAD:
		ma := m.effectiveAddress()
		sum := uint32(m.AC()) + uint32(m.Mem.Read(ma))
		m.SetL(m.L() ^ uint16((sum>>12)&1))
		m.SetAC(uint16(sum))

	case op.OpISZ:
		ma := m.effectiveAddress()
		v := (m.Mem.Read(ma) + 1) & memory.WordMask
		m.Mem.Write(ma, v)
		if v == 0 {
			m.Skip()
		}

	case op.OpDCA:
		ma := m.effectiveAddress()
		m.Mem.Write(ma, m.AC())
		m.SetAC(0)

	case op.OpJMS:
		m.commitField()
		ma := m.effectiveAddress()
		m.Mem.Write(ma, m.PC&memory.WordMask)
		m.PC = m.IF | ((ma + 1) & memory.WordMask)

	case op.OpJMP:
		m.commitField()
		ma := m.effectiveAddress()
		m.PC = m.IF | (ma & memory.WordMask)
		m.idleLoopCheck()
	}
}

// commitField commits IB into IF and clears the pending CIF/CDI delay,
// as JMP and JMS both do before computing their own effective address
// (spec.md §4.2, §4.3).
func (m *Machine) commitField() {
	m.IF = m.IB
	m.CIFDelay = false
}
