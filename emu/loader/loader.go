/*
pdp8 binary-tape loaders: RIM, BIN and TXT formats.

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

// Package loader implements the three binary-tape formats spec.md §4.7
// names: RIM (leader/trailer framed, address-marked), BIN (RIM plus an
// auto-advancing cursor) and TXT (plain octal-address/octal-word text).
// A load error reports what went wrong but leaves whatever was deposited
// before the error in memory - spec.md §7's "no rollback" policy.
package loader

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Writer is the memory surface a loader deposits words into.
type Writer interface {
	Write(addr, value uint16)
}

const (
	leaderTrailer byte = 0200 // High bit set: leader/trailer filler byte.
	addressMark   byte = 0100 // Marks the first byte of an address word.
	ctrlZ         byte = 0232 // BIN stream EOF marker.
)

// RIM reads a RIM-format tape: two-byte (hi,lo) words, an address-marked
// word sets the deposit cursor and the single data word that follows it
// is written there. Unlike BIN, the cursor does not auto-advance across
// data words: every datum needs its own preceding address marker.
func RIM(w Writer, r io.Reader) error {
	br := bufio.NewReader(r)
	var cursor uint16
	haveCursor := false

	for {
		hi, lo, isAddr, err := readWord(br)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		word := (uint16(hi) << 6) | uint16(lo)
		if isAddr {
			cursor = word & 07777
			haveCursor = true
			continue
		}
		if !haveCursor {
			return fmt.Errorf("RIM: data word before any address marker")
		}
		w.Write(cursor, word)
		haveCursor = false
	}
}

// BIN reads the same address-marked wire format as RIM, but unlike RIM
// the cursor auto-advances across consecutive data words following a
// single address marker - only the first datum after a marker needs one.
// The stream also terminates cleanly on a Ctrl-Z (0x9A) byte, in
// addition to end of input; like RIM, it skips leader/trailer bytes.
func BIN(w Writer, r io.Reader) error {
	br := bufio.NewReader(r)
	var cursor uint16
	haveCursor := false

	for {
		b, err := br.ReadByte()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if b == ctrlZ {
			return nil
		}
		if b == leaderTrailer {
			continue
		}
		if err := br.UnreadByte(); err != nil {
			return err
		}
		hi, lo, isAddr, err := readWord(br)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		word := (uint16(hi) << 6) | uint16(lo)
		if isAddr {
			cursor = word & 07777
			haveCursor = true
			continue
		}
		if !haveCursor {
			return fmt.Errorf("BIN: data word before any address marker")
		}
		w.Write(cursor, word)
		cursor = (cursor + 1) & 07777
	}
}

// readWord skips leader/trailer filler bytes, then reads the two bytes of
// one transmitted word, reporting whether the first byte's 0x40 bit marks
// it as an address word.
func readWord(br *bufio.Reader) (hi, lo byte, isAddr bool, err error) {
	for {
		hi, err = br.ReadByte()
		if err != nil {
			return 0, 0, false, err
		}
		if hi == leaderTrailer {
			continue
		}
		break
	}
	isAddr = hi&addressMark != 0
	hi &^= addressMark | leaderTrailer
	lo, err = br.ReadByte()
	if err != nil {
		return 0, 0, false, err
	}
	return hi, lo, isAddr, nil
}

// TXT loads one "<octal-addr> <octal-word>" pair per line; '/' introduces
// a comment, blank lines are skipped.
func TXT(w Writer, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if i := strings.IndexByte(line, '/'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return fmt.Errorf("TXT line %d: want \"<addr> <word>\", got %q", lineNo, line)
		}
		addr, err := strconv.ParseUint(fields[0], 8, 32)
		if err != nil {
			return fmt.Errorf("TXT line %d: bad address %q: %w", lineNo, fields[0], err)
		}
		if addr > 077777 {
			return fmt.Errorf("TXT line %d: address %q out of range", lineNo, fields[0])
		}
		word, err := strconv.ParseUint(fields[1], 8, 32)
		if err != nil {
			return fmt.Errorf("TXT line %d: bad word %q: %w", lineNo, fields[1], err)
		}
		if word > 07777 {
			return fmt.Errorf("TXT line %d: word %q out of range", lineNo, fields[1])
		}
		w.Write(uint16(addr), uint16(word))
	}
	return scanner.Err()
}
