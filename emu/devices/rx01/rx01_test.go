package rx01

/*
pdp8 RX01 registration stub device tests

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

import "testing"

type fakeCPU struct {
	skipped bool
}

func (c *fakeCPU) AC() uint16      { return 0 }
func (c *fakeCPU) SetAC(uint16)    {}
func (c *fakeCPU) Skip()           { c.skipped = true }
func (c *fakeCPU) Raise(dev uint8) {}
func (c *fakeCPU) Lower(dev uint8) {}

func TestDeviceNumber(t *testing.T) {
	if DevNum != 075 {
		t.Errorf("DevNum = %o, want 075", DevNum)
	}
}

func TestSkipOnDoneNeverFires(t *testing.T) {
	d := New()
	c := &fakeCPU{}
	d.IOT(1, c)
	if c.skipped {
		t.Errorf("RX01 stub signaled transfer-done, want never ready")
	}
}

func TestOtherFunctionsAreAcceptedNoop(t *testing.T) {
	d := New()
	c := &fakeCPU{}
	d.IOT(0, c)
	d.IOT(2, c)
	d.IOT(4, c)
	if c.skipped {
		t.Errorf("an unhandled function code unexpectedly skipped")
	}
}
