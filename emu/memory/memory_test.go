package memory

/*
 * pdp8  - Low level memory
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

import (
	"testing"
)

// Size is clamped to [4,32] and rounded down to a multiple of 4.
func TestNewSize(t *testing.T) {
	cases := []struct {
		in, wantKwords int
	}{
		{0, 4}, {1, 4}, {4, 4}, {5, 4}, {8, 8}, {30, 28}, {32, 32}, {99, 32},
	}
	for _, c := range cases {
		m := New(c.in)
		if m.kwords != c.wantKwords {
			t.Errorf("New(%d) kwords = %d, want %d", c.in, m.kwords, c.wantKwords)
		}
		if m.Words() != c.wantKwords*1024 {
			t.Errorf("New(%d) Words() = %d, want %d", c.in, m.Words(), c.wantKwords*1024)
		}
		if m.Fields() != c.wantKwords/4 {
			t.Errorf("New(%d) Fields() = %d, want %d", c.in, m.Fields(), c.wantKwords/4)
		}
	}
}

func TestReadWriteMasks(t *testing.T) {
	m := New(8)
	m.Write(0100, 0177777)
	if got := m.Read(0100); got != WordMask {
		t.Errorf("Read after overflowing Write = %04o, want %04o", got, WordMask)
	}
}

func TestFill(t *testing.T) {
	m := New(4)
	m.Fill(07402)
	for addr := 0; addr < m.Words(); addr += 377 {
		if got := m.Read(uint16(addr)); got != 07402 {
			t.Fatalf("Read(%04o) after Fill = %04o, want 07402", addr, got)
		}
	}
}

func TestFieldValid(t *testing.T) {
	m := New(8) // 2 fields: 0 and 1.
	if !m.FieldValid(0) {
		t.Errorf("field 0 should be valid")
	}
	if !m.FieldValid(1 << FieldShift) {
		t.Errorf("field 1 should be valid")
	}
	if m.FieldValid(2 << FieldShift) {
		t.Errorf("field 2 should be invalid for an 8K machine")
	}
}

func TestDecompose(t *testing.T) {
	addr := uint16(012345)
	_, page, offset := Decompose(addr)
	if page != (addr & PageMask) {
		t.Errorf("page decomposition wrong: %04o", page)
	}
	if offset != (addr & OffMask) {
		t.Errorf("offset decomposition wrong: %04o", offset)
	}
}
