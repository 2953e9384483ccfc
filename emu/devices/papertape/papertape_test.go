package papertape

/*
pdp8 paper-tape reader/punch device tests

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

import (
	"os"
	"path/filepath"
	"testing"

	D "github.com/sigfpe8/pdp8/emu/device"
)

type fakeCPU struct {
	ac      uint16
	skipped bool
	raised  map[uint8]bool
}

func newFakeCPU() *fakeCPU { return &fakeCPU{raised: make(map[uint8]bool)} }

func (c *fakeCPU) AC() uint16      { return c.ac }
func (c *fakeCPU) SetAC(v uint16)  { c.ac = v }
func (c *fakeCPU) Skip()           { c.skipped = true }
func (c *fakeCPU) Raise(dev uint8) { c.raised[dev] = true }
func (c *fakeCPU) Lower(dev uint8) { c.raised[dev] = false }

func TestReaderWithoutAttachmentNeverSetsFlag(t *testing.T) {
	r := NewReader()
	c := newFakeCPU()

	r.IOT(4, c) // RFC
	r.IOT(1, c) // RSF
	if c.skipped {
		t.Errorf("RSF skipped with no tape attached")
	}
	if c.raised[D.DevReader] {
		t.Errorf("reader raised an interrupt with no tape attached")
	}
}

func TestReaderAttachFetchAndReadBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tape.rim")
	if err := os.WriteFile(path, []byte("AB"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	r := NewReader()
	if err := r.Attach(path); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	defer r.Detach()

	c := newFakeCPU()
	r.IOT(4, c) // RFC: fetch first byte

	if !c.raised[D.DevReader] {
		t.Errorf("reader did not raise its interrupt request after a successful fetch")
	}
	r.IOT(1, c) // RSF
	if !c.skipped {
		t.Errorf("RSF did not skip after RFC latched a byte")
	}
	c.skipped = false

	r.IOT(2, c) // RRB
	if c.AC() != uint16('A') {
		t.Errorf("RRB: AC = %c, want 'A'", c.AC())
	}

	r.IOT(1, c) // RSF after RRB clears the flag
	if c.skipped {
		t.Errorf("RSF skipped after RRB cleared the flag")
	}
}

func TestReaderDetachReportsNotAttached(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tape.rim")
	if err := os.WriteFile(path, []byte("AB"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	r := NewReader()
	if err := r.Attach(path); err != nil {
		t.Fatalf("Attach: %v", err)
	}
	if err := r.Detach(); err != nil {
		t.Fatalf("Detach: %v", err)
	}

	c := newFakeCPU()
	r.IOT(4, c)
	if c.raised[D.DevReader] {
		t.Errorf("fetch with no file raised an interrupt")
	}
}

func TestPunchAttachWritesBytes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.bin")

	p := NewPunch()
	if err := p.Attach(path); err != nil {
		t.Fatalf("Attach: %v", err)
	}

	c := newFakeCPU()
	c.SetAC('Q')
	p.IOT(4, c) // PPC
	if !c.raised[D.DevPunch] {
		t.Errorf("punch did not raise its interrupt after a successful write")
	}

	if err := p.Detach(); err != nil {
		t.Fatalf("Detach: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "Q" {
		t.Errorf("punched data = %q, want %q", data, "Q")
	}
}

func TestPunchStartsReady(t *testing.T) {
	p := NewPunch()
	c := newFakeCPU()
	p.IOT(1, c) // PSF
	if !c.skipped {
		t.Errorf("PSF did not skip on an unattached, freshly-created punch")
	}
}

func TestPunchPCFClearsFlag(t *testing.T) {
	p := NewPunch()
	c := newFakeCPU()
	p.IOT(2, c) // PCF
	p.IOT(1, c) // PSF
	if c.skipped {
		t.Errorf("PSF skipped after PCF cleared the flag")
	}
	if c.raised[D.DevPunch] {
		t.Errorf("PCF left the interrupt request raised")
	}
}
