/*
pdp8 RX01 floppy interface registration stub (unit 75, octal).

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

// Package rx01 is a minimal stand-in for an RX01 floppy interface: it
// occupies device 75 (octal) and answers every function as "not ready",
// demonstrating the device table's registration hook without attempting
// to model seek/sector timing or disk image formats.
package rx01

import D "github.com/sigfpe8/pdp8/emu/device"

// DevNum is the conventional RX01 IOT device number.
const DevNum uint8 = 075

type Device struct{}

func New() *Device { return &Device{} }

func (d *Device) Reset()             {}
func (d *Device) Shutdown()          {}
func (d *Device) Debug(string) error { return nil }

// IOT answers every function code as not-ready: load-command never
// signals completion, so a program polling the done flag spins rather
// than mis-reading stale data from an unimplemented controller.
func (d *Device) IOT(fn uint8, c D.CPU) {
	switch fn {
	case 1: // Skip on transfer-done: never done.
	default:
		// Load command / read status / etc: accepted, no effect.
	}
}
