/*
pdp8 ASR-33 keyboard / low-speed paper-tape reader device (unit 3).

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
	"bufio"
	"fmt"
	"os"
	"sync"
	"syscall"
	"time"

	"golang.org/x/term"

	D "github.com/sigfpe8/pdp8/emu/device"
)

// ctrlC is the byte a raw-mode terminal delivers for Ctrl-C; the host
// program owns the run/stop decision, so the keyboard just surfaces it
// as an ordinary character and lets the console act on it.
const ctrlC = 0x03

// Keyboard implements device 3's KCF/KSF/KCC/KRB functions. Host stdin is
// read from a background goroutine once in raw mode, the same way a
// terminal-attached peripheral elsewhere in this tree feeds its MMIO
// device: the interpreter stays single-threaded, only the OS read
// blocks off of it.
type Keyboard struct {
	mu   sync.Mutex
	flag bool
	buf  byte

	ch     chan byte
	stopCh chan struct{}
	done   chan struct{}

	fd       int
	oldState *term.State
	raw      bool

	tapeFile   *os.File
	tapeStopCh chan struct{}
	tapeDone   chan struct{}
}

// NewKeyboard creates an unattached keyboard device. Reset puts the
// terminal in raw mode; Shutdown restores it.
func NewKeyboard() *Keyboard {
	return &Keyboard{ch: make(chan byte, 16)}
}

// Reset restores KCF's cleared state and (re)starts the stdin reader if
// it is not already running. Non-interactive stdin (tests, pipes) is not
// an error: the keyboard just never raises its flag.
func (k *Keyboard) Reset() {
	k.mu.Lock()
	k.flag = false
	k.buf = 0
	k.mu.Unlock()

	if k.raw {
		return
	}
	k.fd = int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(k.fd)
	if err != nil {
		return
	}
	if err := syscall.SetNonblock(k.fd, true); err != nil {
		_ = term.Restore(k.fd, oldState)
		return
	}
	k.oldState = oldState
	k.raw = true
	k.stopCh = make(chan struct{})
	k.done = make(chan struct{})
	go k.readLoop()
}

func (k *Keyboard) readLoop() {
	defer close(k.done)
	buf := make([]byte, 1)
	for {
		select {
		case <-k.stopCh:
			return
		default:
		}
		n, err := syscall.Read(k.fd, buf)
		if n > 0 {
			b := buf[0]
			if b == '\r' {
				b = '\n'
			}
			select {
			case k.ch <- b:
			case <-k.stopCh:
				return
			}
			continue
		}
		if err != nil && err != syscall.EAGAIN && err != syscall.EWOULDBLOCK {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// Shutdown stops the reader goroutine and restores the terminal.
func (k *Keyboard) Shutdown() {
	if !k.raw {
		return
	}
	close(k.stopCh)
	<-k.done
	_ = term.Restore(k.fd, k.oldState)
	k.raw = false
}

// Debug is a no-op; the keyboard has no debug-printable internal state
// beyond the flag, which "examine" can already show through IOT.
func (k *Keyboard) Debug(string) error { return nil }

// Attach redirects keyboard input away from the terminal to path,
// replaying its bytes as if typed - the low-speed paper-tape-reader role
// device 3 plays (spec.md §4.5, "assign <dev> <file>" for device 3).
func (k *Keyboard) Attach(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("keyboard/low-speed reader: %w", err)
	}
	k.Detach()
	k.tapeFile = f
	k.tapeStopCh = make(chan struct{})
	k.tapeDone = make(chan struct{})
	go k.tapeLoop(f)
	return nil
}

// Detach stops replaying any attached tape file and closes it.
func (k *Keyboard) Detach() error {
	if k.tapeFile == nil {
		return nil
	}
	close(k.tapeStopCh)
	<-k.tapeDone
	err := k.tapeFile.Close()
	k.tapeFile = nil
	return err
}

func (k *Keyboard) tapeLoop(f *os.File) {
	defer close(k.tapeDone)
	br := bufio.NewReader(f)
	for {
		b, err := br.ReadByte()
		if err != nil {
			return
		}
		select {
		case k.ch <- b:
		case <-k.tapeStopCh:
			return
		}
	}
}

// drain pulls any buffered bytes off the channel without blocking and
// latches the most recent one, raising the device's interrupt request
// the instant a character becomes available (matches the reference
// reader: the flag and the interrupt request are set together).
func (k *Keyboard) drain(c D.CPU) {
	for {
		select {
		case b := <-k.ch:
			k.mu.Lock()
			k.buf = b
			k.flag = true
			k.mu.Unlock()
			if c != nil {
				c.Raise(D.DevKeyboard)
			}
		default:
			return
		}
	}
}

// Poll runs on the KEYB_DELAY cadence (spec.md §4.1).
func (k *Keyboard) Poll(c D.CPU) {
	k.drain(c)
}

// BlockingRead waits up to timeout for one character, used by the
// idle-loop JMP-to-self heuristic so the host sleeps instead of the
// simulator spinning (spec.md §9 open question b).
func (k *Keyboard) BlockingRead(timeout time.Duration, c D.CPU) bool {
	select {
	case b := <-k.ch:
		k.mu.Lock()
		k.buf = b
		k.flag = true
		k.mu.Unlock()
		if c != nil {
			c.Raise(D.DevKeyboard)
		}
		return true
	case <-time.After(timeout):
		k.drain(c)
		return false
	}
}

// IOT implements KCF (0), KSF (1), KCC (2) and KRB (6).
func (k *Keyboard) IOT(fn uint8, c D.CPU) {
	k.drain(c)

	k.mu.Lock()
	defer k.mu.Unlock()

	switch fn {
	case 0: // KCF: clear flag, do not start the reader.
		k.flag = false
		c.Lower(D.DevKeyboard)
	case 1: // KSF: skip if the keyboard flag is set.
		if k.flag {
			c.Skip()
		}
	case 2: // KCC: clear AC and the keyboard flag.
		c.SetAC(0)
		k.flag = false
		c.Lower(D.DevKeyboard)
	case 6: // KRB: clear AC, load the buffered character, clear the flag.
		v := uint16(0)
		if k.flag {
			v = uint16(k.buf) | 0200
		}
		c.SetAC(v)
		k.flag = false
		c.Lower(D.DevKeyboard)
	}
}
