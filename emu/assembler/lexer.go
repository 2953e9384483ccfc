/*
pdp8 assembler: tokenizer for the two-pass MACRO-8 subset.

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

// Package assembler implements the two-pass MACRO-8 subset (spec.md §4.6):
// identifiers, radix-sensitive numbers, current-page and page-zero literal
// pools, and the inline (console deposit) entry point that runs pass 2
// only.
package assembler

import (
	"strconv"
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokNumber
	tokChar
	tokPunct
)

type token struct {
	kind  tokenKind
	text  string // Untruncated word text (ident) or the punctuation rune.
	value uint16 // Resolved value for tokNumber/tokChar.
}

// lexer scans one logical line (already split on ';' and with a '/'
// comment stripped) into tokens.
type lexer struct {
	src  []rune
	pos  int
	toks []token
	tpos int
}

func newLexer(line string, radix int) *lexer {
	l := &lexer{src: []rune(line)}
	l.scan(radix)
	return l
}

func (l *lexer) peekRune() rune {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *lexer) scan(radix int) {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case unicode.IsSpace(c):
			l.pos++
		case c == '"':
			l.pos++
			ch := l.peekRune()
			l.pos++
			l.toks = append(l.toks, token{kind: tokChar, value: uint16(ch) | 0200})
		case unicode.IsLetter(c):
			start := l.pos
			for l.pos < len(l.src) && (unicode.IsLetter(l.src[l.pos]) || unicode.IsDigit(l.src[l.pos])) {
				l.pos++
			}
			word := strings.ToUpper(string(l.src[start:l.pos]))
			l.toks = append(l.toks, token{kind: tokIdent, text: word})
		case unicode.IsDigit(c):
			start := l.pos
			for l.pos < len(l.src) && (unicode.IsDigit(l.src[l.pos]) || unicode.IsLetter(l.src[l.pos])) {
				l.pos++
			}
			digits := string(l.src[start:l.pos])
			v, err := strconv.ParseUint(digits, radix, 32)
			if err != nil {
				v = 0
			}
			l.toks = append(l.toks, token{kind: tokNumber, text: digits, value: uint16(v) & 07777})
		case strings.ContainsRune("+-!&()[]=,*.", c):
			l.toks = append(l.toks, token{kind: tokPunct, text: string(c)})
			l.pos++
		default:
			l.pos++
		}
	}
}

func (l *lexer) peek() token {
	if l.tpos >= len(l.toks) {
		return token{kind: tokEOF}
	}
	return l.toks[l.tpos]
}

func (l *lexer) next() token {
	t := l.peek()
	if l.tpos < len(l.toks) {
		l.tpos++
	}
	return t
}

func (l *lexer) atEOF() bool {
	return l.tpos >= len(l.toks)
}

// symbolName truncates an identifier to the 6 characters MACRO-8 keeps
// for a user symbol; recognized mnemonics and pseudo-ops are matched
// against the untruncated word before this ever applies.
func symbolName(word string) string {
	if len(word) > 6 {
		return word[:6]
	}
	return word
}

// splitStatements strips a '/' comment to end of physical line, then
// splits on ';', the two line terminators spec.md §4.6 names besides a
// real newline.
func splitStatements(physicalLine string) []string {
	if i := strings.IndexByte(physicalLine, '/'); i >= 0 {
		physicalLine = physicalLine[:i]
	}
	return strings.Split(physicalLine, ";")
}
