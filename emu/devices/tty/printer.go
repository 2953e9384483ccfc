/*
pdp8 ASR-33 printer / low-speed paper-tape punch device (unit 4).

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
package tty

import (
	"io"
	"os"
	"sync"

	D "github.com/sigfpe8/pdp8/emu/device"
)

// Printer implements device 4's SPF/TSF/TCF/TPC/TLS functions. Unlike the
// reference implementation, whose TSF unconditionally skips, this one
// tracks a real ready flag: TCF clears it, and a write, SPF or the
// KEYB_DELAY poll (ForceReady) sets it again, so TSF skips except between
// a TCF and the next of those (spec.md §9 open question a).
type Printer struct {
	mu   sync.Mutex
	flag bool
	out  io.Writer
}

// NewPrinter creates a printer writing to os.Stdout.
func NewPrinter() *Printer {
	return &Printer{out: os.Stdout, flag: true}
}

func (p *Printer) Reset() {
	p.mu.Lock()
	p.flag = true
	p.mu.Unlock()
}

func (p *Printer) Shutdown() {}

func (p *Printer) Debug(string) error { return nil }

// ForceReady runs on the KEYB_DELAY cadence (spec.md §4.1): it sets the
// ready flag and, on the transition from not-ready to ready, raises the
// device's interrupt request exactly as a real write completion would.
func (p *Printer) ForceReady(c D.CPU) {
	p.mu.Lock()
	was := p.flag
	p.flag = true
	p.mu.Unlock()
	if !was && c != nil {
		c.Raise(D.DevPrinter)
	}
}

// write performs a synchronous output write. Since the write is already
// complete by the time it returns, the flag is set (not cleared) and the
// interrupt request raised, matching the "writing marks the flag" rule.
func (p *Printer) write(c D.CPU, ch byte) {
	if p.out != nil {
		_, _ = p.out.Write([]byte{ch})
	}
	p.mu.Lock()
	p.flag = true
	p.mu.Unlock()
	c.Raise(D.DevPrinter)
}

// IOT implements SPF (0), TSF (1), TCF (2), TPC (4) and TLS (6).
func (p *Printer) IOT(fn uint8, c D.CPU) {
	switch fn {
	case 0: // SPF: force the flag set.
		p.mu.Lock()
		p.flag = true
		p.mu.Unlock()
		c.Raise(D.DevPrinter)
	case 1: // TSF: skip if the printer is ready.
		p.mu.Lock()
		ready := p.flag
		p.mu.Unlock()
		if ready {
			c.Skip()
		}
	case 2: // TCF: clear the flag.
		p.mu.Lock()
		p.flag = false
		p.mu.Unlock()
		c.Lower(D.DevPrinter)
	case 4: // TPC: print AC's low 7 bits.
		p.write(c, byte(c.AC()&0177))
	case 6: // TLS: same as TPC.
		p.write(c, byte(c.AC()&0177))
	}
}
