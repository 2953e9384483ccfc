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

// Package memory implements the PDP-8 12-bit word store, addressed by a
// 15-bit physical address (field << 12 | offset).
package memory

const (
	WordMask  uint16 = 07777  // 12-bit word mask.
	FieldMask uint16 = 070000 // Field bits of an address, positions 12-14.
	PageMask  uint16 = 07600  // Page bits of an address, positions 7-11.
	OffMask   uint16 = 00177  // In-page offset, positions 0-6.

	FieldShift = 12
	PageShift  = 7

	minKwords = 4
	maxKwords = 32
)

// Memory holds the flat word store for one machine. It is owned by a
// cpu.Machine rather than kept as a package-level global, so more than one
// simulated machine can exist in the same process (tests create several).
type Memory struct {
	mp      []uint16 // mp[field<<12|offset]
	kwords  int      // Size selected at creation, in units of 1024 words.
	nfields int       // Number of 4K fields = kwords/4.
}

// New allocates a memory store sized to kwords*1024 words. kwords is
// clamped to the supported range [4,32] and rounded down to a multiple
// of 4, matching the PDP-8/I's 4K-field increments.
func New(kwords int) *Memory {
	if kwords < minKwords {
		kwords = minKwords
	}
	if kwords > maxKwords {
		kwords = maxKwords
	}
	kwords -= kwords % 4

	m := &Memory{
		kwords:  kwords,
		nfields: kwords / 4,
	}
	m.mp = make([]uint16, kwords*1024)
	return m
}

// Words returns the total word count (kwords*1024).
func (m *Memory) Words() int {
	return len(m.mp)
}

// Fields returns the number of 4K fields configured.
func (m *Memory) Fields() int {
	return m.nfields
}

// FieldValid reports whether field (already shifted into bits 12-14, as
// IF/DF/IB are stored) addresses a configured field. CDF/CIF/CDI to an
// out-of-range field is silently ignored per spec, never a trap.
func (m *Memory) FieldValid(field uint16) bool {
	return int(field>>FieldShift) < m.nfields
}

// Read returns the word at physical address addr (field<<12|offset),
// masked into range. Reads past the configured size wrap within the
// installed memory rather than panicking, mirroring the C original's flat
// indexing into a fixed-size array sized to the same fields.
func (m *Memory) Read(addr uint16) uint16 {
	return m.mp[int(addr)%len(m.mp)] & WordMask
}

// Write stores value (masked to 12 bits) at physical address addr.
func (m *Memory) Write(addr, value uint16) {
	m.mp[int(addr)%len(m.mp)] = value & WordMask
}

// Fill sets every word to value (masked to 12 bits). Machine construction
// uses this to preset memory to HLT, matching the reference CPU's
// power-up state, so a program that runs off the end of its own code
// halts instead of executing whatever zero decodes to (AND 0).
func (m *Memory) Fill(value uint16) {
	value &= WordMask
	for i := range m.mp {
		m.mp[i] = value
	}
}

// Decompose splits a physical address into field, page and in-page offset.
func Decompose(addr uint16) (field, page, offset uint16) {
	return addr & FieldMask, addr & PageMask, addr & OffMask
}
