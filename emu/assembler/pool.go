/*
pdp8 assembler: current-page and page-zero literal pools.

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

package assembler

import "errors"

// pageWords is the number of words in one PDP-8 page (bits 0-6 of an
// in-field address).
const pageWords = 0200

// literalPool hands out words counting down from the top of a page,
// deduplicating by value, per spec.md §4.6.
type literalPool struct {
	base   uint16 // field | page-start address
	next   int    // next free in-page offset, counting down from pageWords-1
	values map[uint16]uint16
}

func newLiteralPool(base uint16) *literalPool {
	return &literalPool{base: base, next: pageWords - 1, values: map[uint16]uint16{}}
}

var errPoolFull = errors.New("literal pool exhausted on page")

// intern returns the address holding value, allocating a new word
// counting down from the page top if value hasn't been seen yet on this
// page.
func (p *literalPool) intern(value uint16) (uint16, error) {
	if addr, ok := p.values[value]; ok {
		return addr, nil
	}
	if p.next < 0 {
		return 0, errPoolFull
	}
	addr := p.base + uint16(p.next)
	p.values[value] = addr
	p.next--
	return addr, nil
}
