/*
pdp8 Device table and IOT dispatch interface

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
package device

// CPU is the narrow capability surface a Device needs from the processor
// to execute an IOT function. Defining it here, rather than importing
// cpu.Machine directly, is what lets emu/cpu import emu/device for
// dispatch without a cycle back - the same role the teacher's
// emu/sys_channel plays between emu/cpu and emu/device for the 370's
// channel-program model.
type CPU interface {
	AC() uint16
	SetAC(uint16)
	Skip()                // Arm a next-instruction skip.
	Raise(dev uint8)       // Raise this device's interrupt request.
	Lower(dev uint8)       // Lower this device's interrupt request.
}

// Device is implemented by every peripheral registered in a Table. IOT
// performs one 3-bit IOT function code (bits 0-2 of the instruction) for
// the device; device 0 never reaches a Device (the interpreter handles
// the CPU self-IOT inline).
type Device interface {
	IOT(fn uint8, c CPU)
	Reset()
	Shutdown()
	Debug(opt string) error
}

// Attacher is implemented by devices that read or write a host file
// (paper-tape reader and punch, and the keyboard as a low-speed reader).
// Mirrors the shape of the teacher's
// command.Command.Attach/Detach pair, narrowed to what "assign <dev>
// <file>" needs.
type Attacher interface {
	Attach(path string) error
	Detach() error
}

// Device numbers named in spec.md §4.5.
const (
	DevCPU       uint8 = 0  // CPU self-IOT, handled inline by the interpreter.
	DevReader    uint8 = 1  // High-speed paper-tape reader.
	DevPunch     uint8 = 2  // High-speed paper-tape punch.
	DevKeyboard  uint8 = 3  // ASR-33 keyboard / low-speed reader.
	DevPrinter   uint8 = 4  // ASR-33 printer / low-speed punch.
	DevParity    uint8 = 010 // Memory-parity / power-fail stub.
	DevMemExtLo  uint8 = 020 // First memory-extension device number.
	DevMemExtHi  uint8 = 027 // Last memory-extension device number.
)

// NumDevices is the size of the 6-bit device number space.
const NumDevices = 64

// Table dispatches IR's device/function fields to a registered Device.
// Unknown or unregistered device numbers are the caller's responsibility
// to log (cpu package logs "invalid instruction" per spec §4.5/§7).
type Table struct {
	devs [NumDevices]Device
}

// Register installs dev at device number num, replacing any previous
// registration. Memory-extension (20-27) and the CPU's own device 0 are
// never registered here; they are handled inline by the interpreter.
func (t *Table) Register(num uint8, dev Device) {
	t.devs[num&(NumDevices-1)] = dev
}

// Lookup returns the device registered at num, or nil.
func (t *Table) Lookup(num uint8) Device {
	return t.devs[num&(NumDevices-1)]
}

// Dispatch calls IOT on the device registered at num with function fn. It
// reports whether a device was present to handle the call.
func (t *Table) Dispatch(num, fn uint8, c CPU) bool {
	dev := t.Lookup(num)
	if dev == nil {
		return false
	}
	dev.IOT(fn, c)
	return true
}

// Reset calls Reset on every registered device.
func (t *Table) Reset() {
	for _, dev := range t.devs {
		if dev != nil {
			dev.Reset()
		}
	}
}

// Shutdown calls Shutdown on every registered device, releasing any open
// files.
func (t *Table) Shutdown() {
	for _, dev := range t.devs {
		if dev != nil {
			dev.Shutdown()
		}
	}
}
