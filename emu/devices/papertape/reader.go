/*
pdp8 High-speed paper-tape reader device (unit 1).

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
	"errors"
	"fmt"
	"io"
	"os"

	D "github.com/sigfpe8/pdp8/emu/device"
)

// ErrNotAttached names the reader's "no file assigned" condition. Reader's
// IOT handling does not return it: a fetch with no tape file assigned
// leaves the flag clear and lowers the interrupt request.
var ErrNotAttached = errors.New("paper tape reader: no file assigned")

// Reader implements device 1's RSF/RRB/RFC functions (spec.md §4.5). A
// fetch (RFC) is a synchronous file read: the simulator never yields for
// paper-tape I/O (spec.md §5).
type Reader struct {
	f      *os.File
	flag   bool
	buffer byte
	eot    bool
}

func NewReader() *Reader { return &Reader{eot: true} }

// Attach opens path for reading and arms the reader (device.Attacher).
func (r *Reader) Attach(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("paper tape reader: %w", err)
	}
	if r.f != nil {
		_ = r.f.Close()
	}
	r.f = f
	r.eot = false
	r.flag = false
	r.buffer = 0
	return nil
}

// Detach closes the tape file, if any (device.Attacher).
func (r *Reader) Detach() error {
	if r.f == nil {
		return nil
	}
	err := r.f.Close()
	r.f = nil
	r.eot = true
	r.flag = false
	return err
}

func (r *Reader) Reset() {
	r.flag = false
	r.buffer = 0
}

func (r *Reader) Shutdown() { _ = r.Detach() }

func (r *Reader) Debug(string) error { return nil }

// fetch reads one byte from the tape, translating LF to CR (papertape.c),
// and latches flag/buffer; it raises or lowers the interrupt request to
// match.
func (r *Reader) fetch(c D.CPU) {
	r.flag = false
	if r.f == nil || r.eot {
		c.Lower(D.DevReader)
		return
	}
	var b [1]byte
	n, err := r.f.Read(b[:])
	if n == 1 {
		ch := b[0]
		if ch == '\n' {
			ch = '\r'
		}
		r.buffer = ch
		r.flag = true
		c.Raise(D.DevReader)
		return
	}
	if errors.Is(err, io.EOF) {
		r.eot = true
	}
	c.Lower(D.DevReader)
}

// IOT implements RSF (1), RRB (2) and RFC (4); RFC|RRB (6) both reads the
// buffered byte into AC and starts the next fetch.
func (r *Reader) IOT(fn uint8, c D.CPU) {
	switch fn {
	case 1: // RSF
		if r.flag {
			c.Skip()
		}
	case 2: // RRB
		c.SetAC(c.AC() | uint16(r.buffer))
		r.flag = false
	case 4: // RFC
		r.fetch(c)
	case 6: // RFC|RRB
		c.SetAC(c.AC() | uint16(r.buffer))
		r.flag = false
		r.fetch(c)
	}
}
