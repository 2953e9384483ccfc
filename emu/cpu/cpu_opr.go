/*
   pdp8: operate group (opcode 7) - groups 1, 2 and EAE group 3.

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

// execOPR executes one operate instruction, dispatching on bit 8
// (group 1 vs 2/3) and bit 0 (group 2 vs group 3/EAE).
func (m *Machine) execOPR() {
	if m.IR&00400 == 0 {
		m.oprGroup1()
		return
	}
	if m.IR&00001 == 0 {
		m.oprGroup2()
		return
	}
	m.oprGroup3()
}

// oprGroup1 runs CLA, CLL, CMA, CML, IAC in that fixed order. The rotate
// stage then runs unconditionally for whichever of RAL/RAR is set: once
// if RT (bit 10) is clear, twice if it is set. If RT is set but neither
// RAL nor RAR is, bit 10 instead means byte swap. With both RAL and RAR
// set (undefined on real hardware), each pass rotates left then right:
// RAL, RAR without RT, and RAL, RAR, RAL, RAR with it.
func (m *Machine) oprGroup1() {
	ir := m.IR

	if ir&op.G1CLA != 0 {
		m.SetAC(0)
	}
	if ir&op.G1CLL != 0 {
		m.SetL(0)
	}
	if ir&op.G1CMA != 0 {
		m.SetAC(^m.AC() & memory.WordMask)
	}
	if ir&op.G1CML != 0 {
		m.SetL(m.L() ^ 1)
	}
	if ir&op.G1IAC != 0 {
		sum := uint32(m.AC()) + 1
		m.SetL(m.L() ^ uint16((sum>>12)&1))
		m.SetAC(uint16(sum))
	}

	if ir&op.G1RT != 0 {
		if ir&op.G1RAL != 0 {
			m.rotateLeft()
		}
		if ir&op.G1RAR != 0 {
			m.rotateRight()
		}
	}
	if ir&op.G1RAL != 0 {
		m.rotateLeft()
	}
	if ir&op.G1RAR != 0 {
		m.rotateRight()
	}
	if ir&op.G1BSW != 0 && ir&op.G1RAR == 0 && ir&op.G1RAL == 0 {
		ac := m.AC()
		m.SetAC(((ac & 00077) << 6) | ((ac & 07700) >> 6))
	}
}

// rotateLeft rotates L:AC left one bit through the link.
func (m *Machine) rotateLeft() {
	v := (uint32(m.AC()) << 1) | uint32(m.L())
	m.SetL(uint16((v >> 12) & 1))
	m.SetAC(uint16(v & uint32(memory.WordMask)))
}

// rotateRight rotates L:AC right one bit through the link.
func (m *Machine) rotateRight() {
	v := uint32(m.AC()) | (uint32(m.L()) << 12)
	m.SetL(uint16(v & 1))
	m.SetAC(uint16((v >> 1) & uint32(memory.WordMask)))
}

// oprGroup2 evaluates the skip mask (normal or reverse sense), then
// applies CLA, OSR and HLT.
func (m *Machine) oprGroup2() {
	ir := m.IR

	var skip bool
	if ir&op.G2RSS == 0 {
		// Normal sense: skip if any selected condition holds.
		if ir&op.G2SMA != 0 && m.AC()&04000 != 0 {
			skip = true
		}
		if ir&op.G2SZA != 0 && m.AC() == 0 {
			skip = true
		}
		if ir&op.G2SNL != 0 && m.L() != 0 {
			skip = true
		}
	} else {
		// Reverse sense: start from skip, clear it if any complementary
		// condition holds. SKP (RSS alone) skips unconditionally.
		skip = true
		if ir&op.G2SPA != 0 && m.AC()&04000 != 0 {
			skip = false
		}
		if ir&op.G2SNA != 0 && m.AC() == 0 {
			skip = false
		}
		if ir&op.G2SZL != 0 && m.L() != 0 {
			skip = false
		}
	}
	if skip {
		m.Skip()
	}

	if ir&op.G1CLA != 0 {
		m.SetAC(0)
	}
	if ir&op.G2OSR != 0 {
		m.SetAC(m.AC() | m.SR)
	}
	if ir&op.G2HLT != 0 {
		m.Running = false
	}
}

// oprGroup3 is the extended arithmetic element: sequence 1 (CLA), then
// sequence 2 (MQA/SCA/MQL/SWP, selected by bits 5-7), then sequence 3
// (NOP/SCL/MUY/DVI/NMI/SHL/ASR/LSR, selected by bits 8-10). Every
// sequence-3 selection, including NOP and NMI, fetches the in-line
// operand word following the instruction and advances PC past it.
func (m *Machine) oprGroup3() {
	ir := m.IR

	if ir&op.G3CLA != 0 {
		m.SetAC(0)
	}

	switch (ir >> 4) & 07 {
	case 1: // MQL = 7421
		m.MQ = m.AC()
	case 2: // SCA = 7441
		m.SetAC(m.AC() | m.SC)
	case 4: // MQA = 7501
		m.SetAC(m.AC() | m.MQ)
	case 5: // SWP = 7521
		m.MQ, m.acc = m.acc, m.MQ
	}

	operand := m.fetchOperand()

	switch (ir >> 1) & 07 {
	case 0: // NOP = 7401
	case 1: // SCL = 7403
		m.SC = ^operand & 037
	case 2: // MUY = 7405: AC:MQ = operand * MQ.
		product := uint32(operand) * uint32(m.MQ)
		m.acc = uint16((product >> 12) & uint32(memory.WordMask))
		m.MQ = uint16(product & uint32(memory.WordMask))
	case 3: // DVI = 7407: quotient to MQ, remainder to AC.
		dividend := (uint32(m.acc) << 12) | uint32(m.MQ)
		m.SetL(0)
		if operand != 0 {
			m.MQ = uint16((dividend / uint32(operand)) & uint32(memory.WordMask))
			m.acc = uint16(dividend % uint32(operand))
		}
	case 4: // NMI = 7411: normalize AC:MQ left until bit 23 differs from bit 22.
		m.normalize()
	case 5: // SHL = 7413
		m.shiftLeft(int(operand) + 1)
	case 6: // ASR = 7415
		m.shiftRightArith(int(operand) + 1)
	case 7: // LSR = 7417
		m.shiftRightLogical(int(operand) + 1)
	}
}

// fetchOperand reads the in-line operand word following the EAE
// instruction and advances PC past it.
func (m *Machine) fetchOperand() uint16 {
	addr := m.IF | m.PC
	v := m.Mem.Read(addr)
	m.PC = (m.PC & memory.FieldMask) | ((m.PC + 1) & memory.WordMask)
	return v
}

// acmq returns the 24-bit concatenation of AC and MQ.
func (m *Machine) acmq() uint32 {
	return (uint32(m.acc) << 12) | uint32(m.MQ)
}

func (m *Machine) setACMQ(v uint32) {
	m.acc = uint16((v >> 12) & uint32(memory.WordMask))
	m.MQ = uint16(v & uint32(memory.WordMask))
}

// shiftLeft shifts AC:MQ left by count bits in one step; L takes bit 12
// of the shifted 24-bit-plus result (the bit just above the new MQ).
func (m *Machine) shiftLeft(count int) {
	v := uint64(m.acmq()) << uint(count)
	m.SetL(uint16((v >> 12) & 1))
	m.acc = uint16((v >> 12) & uint64(memory.WordMask))
	m.MQ = uint16(v & uint64(memory.WordMask))
}

// shiftRightArith shifts AC:MQ right by count bits (capped at 24, twice
// the word width), sign-extending bit 23 before the shift.
func (m *Machine) shiftRightArith(count int) {
	if count > 24 {
		count = 24
	}
	v := int64(m.acmq())
	if v&0x800000 != 0 {
		v |= ^int64(0xffffff)
	}
	v >>= uint(count)
	uv := uint64(v)
	m.acc = uint16((uv >> 12) & uint64(memory.WordMask))
	m.MQ = uint16(uv & uint64(memory.WordMask))
}

// shiftRightLogical shifts AC:MQ right by count bits with zero fill.
func (m *Machine) shiftRightLogical(count int) {
	v := uint64(m.acmq()) >> uint(count)
	m.acc = uint16((v >> 12) & uint64(memory.WordMask))
	m.MQ = uint16(v & uint64(memory.WordMask))
}

// normalize shifts AC:MQ left until bit 23 differs from bit 22, or SC
// (reused as a shift counter here) reaches its limit.
func (m *Machine) normalize() {
	v := m.acmq()
	count := 0
	for count < 24 {
		bit23 := (v >> 23) & 1
		bit22 := (v >> 22) & 1
		if bit23 != bit22 {
			break
		}
		v = (v << 1) & 0xffffff
		count++
	}
	m.setACMQ(v)
	m.SC = uint16(count) & 037
}
