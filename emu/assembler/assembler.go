/*
pdp8 assembler: two-pass driver, expression grammar and statement forms.

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

import (
	"fmt"
	"strings"
	"unicode"

	op "github.com/sigfpe8/pdp8/emu/opcodemap"
)

// Writer is the memory surface the assembler deposits words into.
// *memory.Memory satisfies it directly.
type Writer interface {
	Write(addr, value uint16)
	Read(addr uint16) uint16
}

const (
	wordMask  = 07777
	fieldMask = 070000
	pageMask  = 07600
)

// Assembler holds the symbol table, radix and literal pools across one or
// more source assemblies, so the console's "deposit" dialog can keep
// reusing symbols already defined by a prior "load".
type Assembler struct {
	mem   Writer
	sym   map[string]uint16
	radix int

	loc   uint16
	field uint16

	page0Pool *literalPool
	curPool   *literalPool
	curPage   uint16

	pass int // 1 = symbols only, 2 = code emission.

	g1ByName map[string]uint16
	g2ByName map[string]uint16
	g3TwoByName map[string]uint16
	g3ThreeByName map[string]uint16
}

// New creates an Assembler writing into mem, with PC defaulting to 0200
// octal (the conventional MACRO-8 program origin) and radix 8.
func New(mem Writer) *Assembler {
	a := &Assembler{
		mem:       mem,
		sym:       map[string]uint16{},
		radix:     8,
		loc:       0200,
		page0Pool: newLiteralPool(0),
	}
	a.buildOprTables()
	a.enterPage()
	return a
}

func (a *Assembler) buildOprTables() {
	a.g1ByName = map[string]uint16{}
	for _, e := range op.G1Names {
		a.g1ByName[e.Name] = e.Bit
	}
	a.g2ByName = map[string]uint16{}
	for _, e := range op.G2Names {
		a.g2ByName[e.Name] = e.Bit
	}
	a.g3TwoByName = map[string]uint16{}
	for i, n := range op.G3SeqTwo {
		if n != "" {
			a.g3TwoByName[n] = uint16(i) << 4
		}
	}
	a.g3ThreeByName = map[string]uint16{}
	for i, n := range op.G3SeqThree {
		a.g3ThreeByName[n] = uint16(i) << 1
	}
}

// PC returns the current location counter.
func (a *Assembler) PC() uint16 { return a.field | a.loc }

// Symbol looks up a previously defined symbol by name (case-insensitive).
func (a *Assembler) Symbol(name string) (uint16, bool) {
	v, ok := a.sym[strings.ToUpper(name)]
	return v, ok
}

func (a *Assembler) enterPage() {
	page := a.loc & pageMask
	if a.curPool != nil && a.curPage == page {
		return
	}
	a.curPage = page
	a.curPool = newLiteralPool(a.field | page)
}

// AssembleSource runs both passes of src (a complete program, as loaded
// by the console's "load" command for a .asm8 file). Pass 1 only needs to
// settle symbol values and walk the literal pools identically to pass 2;
// pass 2 performs the actual deposits.
func (a *Assembler) AssembleSource(src string) error {
	start := a.loc
	startField := a.field

	a.pass = 1
	if err := a.run(src); err != nil {
		return err
	}

	a.loc, a.field = start, startField
	a.page0Pool = newLiteralPool(0)
	a.curPool = nil
	a.enterPage()

	a.pass = 2
	return a.run(src)
}

// AssembleInline runs pass 2 only, starting at addr, for the console's
// "deposit" dialog (spec.md §4.6). Forward references are not resolved in
// this mode: an undefined symbol is an error rather than silently
// resolving to 0, since there is no prior pass to have defined it.
func (a *Assembler) AssembleInline(addr uint16, src string) (uint16, error) {
	a.loc = addr & 07777
	a.field = addr & fieldMask
	a.enterPage()
	a.pass = 2
	if err := a.run(src); err != nil {
		return a.PC(), err
	}
	return a.PC(), nil
}

func (a *Assembler) run(src string) error {
	for lineNo, physical := range strings.Split(src, "\n") {
		for _, stmt := range splitStatements(physical) {
			stmt = strings.TrimSpace(stmt)
			if stmt == "" {
				continue
			}
			if err := a.statement(stmt); err != nil {
				return fmt.Errorf("line %d: %w", lineNo+1, err)
			}
		}
	}
	return nil
}

// statement parses and (in pass 2) emits one logical-line statement:
// location-counter set, symbol definition, one or more labels, a
// pseudo-op, or an instruction/data word.
func (a *Assembler) statement(stmt string) error {
	lx := newLexer(stmt, a.radix)

	// "* expr" sets the location counter.
	if t := lx.peek(); t.kind == tokPunct && t.text == "*" {
		lx.next()
		v, err := a.expr(lx)
		if err != nil {
			return err
		}
		a.loc = v & 07777
		a.enterPage()
		return nil
	}

	// Consume any number of "SYMB," labels before the real statement.
	for {
		t := lx.peek()
		if t.kind != tokIdent {
			break
		}
		save := lx.tpos
		name := t.text
		lx.next()
		nt := lx.peek()
		if nt.kind == tokPunct && nt.text == "=" {
			lx.next()
			v, err := a.expr(lx)
			if err != nil {
				return err
			}
			if a.pass == 1 {
				a.sym[symbolName(name)] = v
			}
			return nil
		}
		if nt.kind == tokPunct && nt.text == "," {
			lx.next()
			if a.pass == 1 {
				a.sym[symbolName(name)] = a.PC()
			}
			continue
		}
		lx.tpos = save
		break
	}

	if lx.atEOF() {
		return nil
	}

	// Pseudo-ops.
	if t := lx.peek(); t.kind == tokIdent {
		if id, ok := op.PseudoOps[t.text]; ok {
			lx.next()
			return a.pseudo(id, lx)
		}
	}

	// Memory-reference instruction.
	if t := lx.peek(); t.kind == tokIdent {
		if opcode, ok := op.MRIOpcode(t.text); ok {
			lx.next()
			return a.mri(opcode, lx)
		}
	}

	// Operate-group instruction: first identifier names a group-1,
	// group-2 or EAE mnemonic; every later identifier on the line must
	// belong to the same group and is OR'd into the same word. A leading
	// CLA takes the group of the mnemonic after it.
	if t := lx.peek(); t.kind == tokIdent {
		if word, ok := a.oprWord(lx); ok {
			a.deposit(word)
			return nil
		}
	}

	// Otherwise: a plain expression, deposited as a data word.
	v, err := a.expr(lx)
	if err != nil {
		return err
	}
	a.deposit(v)
	return nil
}

func (a *Assembler) pseudo(id int, lx *lexer) error {
	switch id {
	case op.PseudoDecimal:
		a.radix = 10
	case op.PseudoOctal:
		a.radix = 8
	case op.PseudoField:
		v, err := a.expr(lx)
		if err != nil {
			return err
		}
		a.field = (v & 7) << 12
		a.loc = 0
		a.enterPage()
	case op.PseudoPage:
		v, err := a.expr(lx)
		if err != nil {
			return err
		}
		a.loc = (v & 037) * pageWords
		a.enterPage()
	case op.PseudoText:
		return a.text(lx)
	default:
		// DUBL, FLTG, DEFINE, EXPUNGE, FIXTAB, CONTINUE, PAUSE: recognized
		// and parsed, no code-generation effect (spec.md §4.6).
	}
	return nil
}

// text implements the TEXT pseudo-op: a delimiter rune, then characters
// up to the next occurrence of that delimiter, one ASCII code per word,
// the last word's code OR'd with 0200 to mark the terminator - the same
// "high bit marks the end" convention the char-literal token already
// uses.
func (a *Assembler) text(lx *lexer) error {
	// The lexer has already consumed the whole line, so walk the source
	// past the "LABEL," identifiers and the TEXT keyword itself.
	pos := 0
	for words := (lx.tpos + 1) / 2; words > 0; words-- {
		for pos < len(lx.src) && !unicode.IsLetter(lx.src[pos]) {
			pos++
		}
		for pos < len(lx.src) && (unicode.IsLetter(lx.src[pos]) || unicode.IsDigit(lx.src[pos])) {
			pos++
		}
	}
	for pos < len(lx.src) && unicode.IsSpace(lx.src[pos]) {
		pos++
	}
	if pos >= len(lx.src) {
		return fmt.Errorf("TEXT requires a delimiter")
	}
	delim := lx.src[pos]
	rest := string(lx.src[pos+1:])
	end := strings.IndexRune(rest, delim)
	if end < 0 {
		return fmt.Errorf("TEXT string missing closing delimiter")
	}
	chars := []rune(rest[:end])
	for i, c := range chars {
		v := uint16(c) & 0177
		if i == len(chars)-1 {
			v |= 0200
		}
		a.deposit(v)
	}
	lx.pos += 1 + end + 1
	return nil
}

func (a *Assembler) mri(opcode int, lx *lexer) error {
	word := uint16(opcode) << op.OpShift
	if t := lx.peek(); t.kind == tokIdent && t.text == "I" {
		lx.next()
		word |= op.IndirectBit
	}
	v, err := a.expr(lx)
	if err != nil {
		return err
	}
	if v&^0177 == 0 {
		// Fits in 7 bits: page-zero reference, page bit clear.
		word |= v & 0177
	} else {
		word |= op.PageBit | (v & 0177)
	}
	a.deposit(word)
	return nil
}

// oprWord recognizes a line made entirely of operate-group mnemonics and
// returns the OR of their bits. It backtracks (leaving lx untouched) if
// the first identifier isn't a recognized mnemonic.
func (a *Assembler) oprWord(lx *lexer) (uint16, bool) {
	save := lx.tpos
	t := lx.next()
	var word uint16
	var group int // 1, 2 or 3.
	switch {
	case has(a.g1ByName, t.text):
		word, group = 07000|a.g1ByName[t.text], 1
	case has(a.g2ByName, t.text):
		word, group = 07000|00400|a.g2ByName[t.text], 2
	case has(a.g3TwoByName, t.text) || has(a.g3ThreeByName, t.text):
		word, group = 07000|00401|a.g3TwoByName[t.text]|a.g3ThreeByName[t.text], 3
	default:
		lx.tpos = save
		return 0, false
	}
	for {
		nt := lx.peek()
		if nt.kind != tokIdent {
			break
		}
		if group == 1 && word == 07000|op.G1CLA && !has(a.g1ByName, nt.text) {
			// CLA is common to all three groups; the next mnemonic picks one.
			switch {
			case has(a.g2ByName, nt.text):
				word, group = 07000|00400|op.G1CLA, 2
			case has(a.g3TwoByName, nt.text) || has(a.g3ThreeByName, nt.text):
				word, group = 07000|00401|op.G3CLA, 3
			}
		}
		switch group {
		case 1:
			if !has(a.g1ByName, nt.text) {
				return 0, false
			}
			word |= a.g1ByName[nt.text]
		case 2:
			if !has(a.g2ByName, nt.text) {
				return 0, false
			}
			word |= a.g2ByName[nt.text]
		case 3:
			if has(a.g3TwoByName, nt.text) {
				word |= a.g3TwoByName[nt.text]
			} else if has(a.g3ThreeByName, nt.text) {
				word |= a.g3ThreeByName[nt.text]
			} else {
				return 0, false
			}
		}
		lx.next()
	}
	return word, true
}

func has(m map[string]uint16, name string) bool {
	_, ok := m[name]
	return ok
}

func (a *Assembler) deposit(v uint16) {
	if a.pass == 2 {
		a.mem.Write(a.field|a.loc, v)
	}
	a.loc = (a.loc + 1) & 07777
	a.enterPage()
}

// expr implements "elem (op elem)*", all arithmetic modulo 4096.
func (a *Assembler) expr(lx *lexer) (uint16, error) {
	v, err := a.elem(lx)
	if err != nil {
		return 0, err
	}
	for {
		t := lx.peek()
		if t.kind != tokPunct || !strings.ContainsRune("+-!&", rune(t.text[0])) {
			return v & wordMask, nil
		}
		lx.next()
		rhs, err := a.elem(lx)
		if err != nil {
			return 0, err
		}
		switch t.text {
		case "+":
			v += rhs
		case "-":
			v -= rhs
		case "!":
			v |= rhs
		case "&":
			v &= rhs
		}
	}
}

func (a *Assembler) elem(lx *lexer) (uint16, error) {
	t := lx.peek()
	switch {
	case t.kind == tokPunct && t.text == "(":
		lx.next()
		v, err := a.expr(lx)
		if err != nil {
			return 0, err
		}
		if err := a.expect(lx, ")"); err != nil {
			return 0, err
		}
		addr, err := a.curPool.intern(v & wordMask)
		if err == nil && a.pass == 2 {
			a.mem.Write(addr, v&wordMask)
		}
		return addr, err
	case t.kind == tokPunct && t.text == "[":
		lx.next()
		v, err := a.expr(lx)
		if err != nil {
			return 0, err
		}
		if err := a.expect(lx, "]"); err != nil {
			return 0, err
		}
		addr, err := a.page0Pool.intern(v & wordMask)
		if err == nil && a.pass == 2 {
			a.mem.Write(addr, v&wordMask)
		}
		return addr, err
	case t.kind == tokPunct && t.text == ".":
		lx.next()
		return a.PC() & wordMask, nil
	case t.kind == tokPunct && t.text == "-":
		lx.next()
		v, err := a.elem(lx)
		if err != nil {
			return 0, err
		}
		return (-v) & wordMask, nil
	case t.kind == tokNumber:
		lx.next()
		return t.value, nil
	case t.kind == tokChar:
		lx.next()
		return t.value, nil
	case t.kind == tokIdent:
		lx.next()
		name := symbolName(t.text)
		if v, ok := a.sym[name]; ok {
			return v, nil
		}
		if a.pass == 2 {
			return 0, fmt.Errorf("undefined symbol: %s", t.text)
		}
		return 0, nil
	default:
		return 0, fmt.Errorf("unexpected token in expression")
	}
}

func (a *Assembler) expect(lx *lexer, punct string) error {
	t := lx.next()
	if t.kind != tokPunct || t.text != punct {
		return fmt.Errorf("expected %q", punct)
	}
	return nil
}
