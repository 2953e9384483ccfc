/*
 * pdp8 - Interrupt request bus
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package intrbus implements the PDP-8 interrupt-request bitmap: a single
// 64-bit word, one bit per device number, raised by a device on an
// event and lowered by the device; interrupt entry does not clear any
// request bit. The interpreter polls Pending between instructions.
package intrbus

// Bus is the device-indexed interrupt request bitmap (spec's IREQ). It
// carries no enable/delay state of its own: IEN, ION_delay and CIF_delay
// are processor flip-flops owned by cpu.Machine, since they gate whether
// a pending request is actually serviced, not whether it is pending.
type Bus struct {
	ireq uint64
}

// Raise sets the request bit for device dev (0-63).
func (b *Bus) Raise(dev uint8) {
	b.ireq |= 1 << (dev & 63)
}

// Lower clears the request bit for device dev.
func (b *Bus) Lower(dev uint8) {
	b.ireq &^= 1 << (dev & 63)
}

// Pending reports whether any device currently has a request raised.
func (b *Bus) Pending() bool {
	return b.ireq != 0
}

// Raised reports whether device dev's request bit is currently set.
func (b *Bus) Raised(dev uint8) bool {
	return b.ireq&(1<<(dev&63)) != 0
}

// Snapshot returns the raw 64-bit bitmap, used by the trace record.
func (b *Bus) Snapshot() uint64 {
	return b.ireq
}
