/*
pdp8 High-speed paper-tape punch device (unit 2).

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
package papertape

import (
	"fmt"
	"os"

	D "github.com/sigfpe8/pdp8/emu/device"
)

// Punch implements device 2's PSF/PCF/PPC/PLS functions (spec.md §4.5).
type Punch struct {
	f    *os.File
	flag bool
}

func NewPunch() *Punch { return &Punch{flag: true} }

// Attach opens path for writing (truncating any existing contents).
func (p *Punch) Attach(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("paper tape punch: %w", err)
	}
	if p.f != nil {
		_ = p.f.Close()
	}
	p.f = f
	p.flag = true
	return nil
}

func (p *Punch) Detach() error {
	if p.f == nil {
		return nil
	}
	err := p.f.Close()
	p.f = nil
	return err
}

func (p *Punch) Reset() { p.flag = true }

func (p *Punch) Shutdown() { _ = p.Detach() }

func (p *Punch) Debug(string) error { return nil }

func (p *Punch) write(c D.CPU, ch byte) {
	p.flag = false
	if p.f != nil {
		if _, err := p.f.Write([]byte{ch}); err == nil {
			p.flag = true
		}
	}
	if p.flag {
		c.Raise(D.DevPunch)
	} else {
		c.Lower(D.DevPunch)
	}
}

// IOT implements PSF (1), PCF (2), PPC (4) and PLS (6).
func (p *Punch) IOT(fn uint8, c D.CPU) {
	switch fn {
	case 1: // PSF
		if p.flag {
			c.Skip()
		}
	case 2: // PCF
		p.flag = false
		c.Lower(D.DevPunch)
	case 4: // PPC
		p.write(c, byte(c.AC()&0377))
	case 6: // PLS: clear then write.
		p.flag = false
		p.write(c, byte(c.AC()&0377))
	}
}
