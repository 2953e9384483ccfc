/*
   pdp8: IOT dispatch - device 0 self-IOT, memory-extension family, and the
   device table for everything else.

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
	D "github.com/sigfpe8/pdp8/emu/device"
)

// memExtMask/memExtValue detect device numbers 20-27 octal (bits
// 3-8 of IR equal 6200 octal when masked with 07700).
const (
	memExtMask  = 07700
	memExtValue = 06200
)

// execIOT decodes device (bits 3-8) and function (bits 0-2) and
// dispatches either to the CPU's own device 0, the memory-extension
// family, or the device table.
func (m *Machine) execIOT() {
	devNum := uint8((m.IR >> 3) & 077)
	fn := uint8(m.IR & 07)

	switch {
	case m.IR&memExtMask == memExtValue:
		m.execMemExt()
	case devNum == uint8(D.DevCPU):
		m.execDev0(fn)
	default:
		if !m.Devices.Dispatch(devNum, fn, m) {
			m.Log.Warn("invalid instruction", "pc", m.ThisPC, "ir", m.IR)
		}
	}
}

// execDev0 implements the CPU's self-IOT functions (spec.md §4.5).
func (m *Machine) execDev0(fn uint8) {
	switch fn {
	case 0: // SKON
		if m.IEN {
			m.Skip()
		}
		m.IEN = false
		m.IONDelay = false
	case 1: // ION
		m.IONDelay = true
	case 2: // IOF
		m.IEN = false
		m.IONDelay = false
	case 3: // SRQ
		if m.Bus.Pending() {
			m.Skip()
		}
	case 4: // GTF
		v := (m.L() << 11)
		if m.IEN {
			v |= 1 << 7
		}
		v |= m.SF & 077
		m.SetAC(v)
	case 5: // RTF
		m.SetL((m.AC() >> 11) & 1)
		m.SF = m.AC() & 077
		if m.AC()&0200 != 0 {
			m.IONDelay = true
		} else {
			m.IONDelay = false
		}
	case 6: // SGT: stub, never skips (no EAE-present sense switch modeled).
	case 7: // CAF: stub, clears nothing extra beyond what ION/IOF already do.
	}
}

// execMemExt implements CDF/CIF/CDI/RDF/RIF/RIB/RMF (spec.md §4.5).
func (m *Machine) execMemExt() {
	field := (m.IR & 00070) << (12 - 3)
	fn := m.IR & 7

	switch fn {
	case 1: // CDF
		if m.Mem.FieldValid(field) {
			m.DF = field
		}
	case 2: // CIF
		if m.Mem.FieldValid(field) {
			m.IB = field
			m.CIFDelay = true
		}
	case 3: // CDI
		if m.Mem.FieldValid(field) {
			m.DF = field
			m.IB = field
			m.CIFDelay = true
		}
	case 4:
		switch (m.IR & 00070) >> 3 {
		case 1: // RDF
			m.SetAC((m.AC() & 07707) | (m.DF >> 9))
		case 2: // RIF
			m.SetAC((m.AC() & 07707) | (m.IF >> 9))
		case 3: // RIB
			m.SetAC((m.AC() & 07600) | m.SF)
		case 4: // RMF
			m.IB = (m.SF & 070) << 9
			m.DF = (m.SF & 7) << 12
		}
	}
}
