/*
pdp8 Memory-parity / automatic-restart stub device (unit 10).

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

// Package parity implements device 10 (MP8/I memory parity, KP8/I
// automatic restart): SMP always skips because no parity error is ever
// modeled, SPL never skips, CMP is a no-op.
package parity

import D "github.com/sigfpe8/pdp8/emu/device"

type Device struct{}

func New() *Device { return &Device{} }

func (d *Device) Reset()              {}
func (d *Device) Shutdown()           {}
func (d *Device) Debug(string) error  { return nil }

// IOT implements SMP (1), SPL (2) and CMP (4).
func (d *Device) IOT(fn uint8, c D.CPU) {
	switch fn {
	case 1: // SMP: skip if parity error flag = 0, i.e. always.
		c.Skip()
	case 2: // SPL: skip if power low; never true here.
	case 4: // CMP: clear memory parity flag; nothing to clear.
	}
}
