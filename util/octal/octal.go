/*
 * pdp8 - Octal formatting and parsing helpers
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

// Package octal formats and parses the 4-digit zero-padded octal numbers
// the console and trace output use throughout (PC, AC, MA, memory words):
// the PDP-8's native radix, the way the teacher's util/hex package serves
// the 370's native hex radix.
package octal

import (
	"errors"
	"strconv"
	"strings"
)

// ErrTooBig is returned by Parse12 when the value overflows 12 bits.
var ErrTooBig = errors.New("octal number too big")

// Word4 formats v as a 4-digit zero-padded octal number (a 12-bit word
// or address offset).
func Word4(v uint16) string {
	return pad(strconv.FormatUint(uint64(v&07777), 8), 4)
}

// Word5 formats v as a 5-digit zero-padded octal number (a full 15-bit
// physical address, field+offset).
func Word5(v uint16) string {
	return pad(strconv.FormatUint(uint64(v), 8), 5)
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

// Parse12 parses s as octal and range-checks it to 12 bits, the way the
// console's "octal_args" helper does for sacc/sswt/deposit/examine
// arguments.
func Parse12(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return 0, err
	}
	if v > 07777 {
		return 0, ErrTooBig
	}
	return uint16(v), nil
}

// Parse15 parses s as octal and range-checks it to a 15-bit physical
// address (used for examine/deposit/breakpoint addresses, which may name
// any field).
func Parse15(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return 0, err
	}
	if v > 077777 {
		return 0, ErrTooBig
	}
	return uint16(v), nil
}
