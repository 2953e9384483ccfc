/*
pdp8 disassembler: one instruction word to its mnemonic text.

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

// Package disassembler renders a 12-bit instruction word as MACRO-8
// mnemonic text, sharing the opcode tables the assembler uses so the
// round-trip law in spec.md §8 holds: the disassembler never invents a
// second notion of what a mnemonic's bits are.
package disassembler

import (
	"fmt"
	"strings"

	op "github.com/sigfpe8/pdp8/emu/opcodemap"
	"github.com/sigfpe8/pdp8/emu/memory"
	"github.com/sigfpe8/pdp8/util/octal"
)

// Line is one disassembled instruction: its mnemonic text, and the
// in-line operand word count consumed beyond the instruction word itself
// (1 for every EAE group-3 sequence-3 selection, 0 otherwise).
type Line struct {
	Text    string
	Operand int
}

// One decodes the word at addr, reading at most one extra in-line
// operand word from mem for an EAE instruction (spec.md §4.4: "every
// sequence-3 selection... consumes one in-line operand word").
func One(mem *memory.Memory, addr, word uint16) Line {
	opcode := int((word & op.OpMask) >> op.OpShift)

	switch {
	case opcode <= op.OpJMP:
		return Line{Text: mri(opcode, word)}
	case opcode == op.OpIOT:
		return Line{Text: iot(word)}
	default:
		return opr(mem, addr, word)
	}
}

func mri(opcode int, word uint16) string {
	name := op.MRIName[opcode]
	indirect := ""
	if word&op.IndirectBit != 0 {
		indirect = "I "
	}
	return fmt.Sprintf("%s %s%s", name, indirect, octal.Word4(word&0177))
}

func iot(word uint16) string {
	if name, ok := op.IOTName[word]; ok {
		return name
	}
	return fmt.Sprintf("IOT %s", octal.Word4(word&00777))
}

func opr(mem *memory.Memory, addr, word uint16) Line {
	if word&00400 == 0 {
		return Line{Text: oprGroup1(word)}
	}
	if word&00001 == 0 {
		return Line{Text: oprGroup2(word)}
	}

	var parts []string
	if word&op.G3CLA != 0 {
		parts = append(parts, "CLA")
	}
	if n := op.G3SeqTwo[(word>>4)&07]; n != "" {
		parts = append(parts, n)
	}
	parts = append(parts, op.G3SeqThree[(word>>1)&07])
	if len(parts) == 0 {
		parts = append(parts, "NOP")
	}
	text := strings.Join(parts, " ")
	operand := mem.Read(addr + 1)
	return Line{Text: fmt.Sprintf("%s %s", text, octal.Word4(operand)), Operand: 1}
}

// oprGroup1 prints CLA/CLL/CMA/CML/IAC (independent bits, safe to OR
// together) followed by the single rotate/swap selector - RAR, RAL, RTR,
// RTL or BSW are mutually exclusive encodings of the RAR, RAL and RT bits, so
// they can't be found by independently testing each one's mask against
// the word the way the flag bits can.
func oprGroup1(word uint16) string {
	var parts []string
	for _, e := range []struct {
		Name string
		Bit  uint16
	}{{"CLA", op.G1CLA}, {"CLL", op.G1CLL}, {"CMA", op.G1CMA}, {"CML", op.G1CML}, {"IAC", op.G1IAC}} {
		if word&e.Bit != 0 {
			parts = append(parts, e.Name)
		}
	}
	switch {
	case word&op.G1RT != 0 && word&op.G1RAR != 0:
		parts = append(parts, "RTR")
	case word&op.G1RT != 0 && word&op.G1RAL != 0:
		parts = append(parts, "RTL")
	case word&op.G1RAR != 0:
		parts = append(parts, "RAR")
	case word&op.G1RAL != 0:
		parts = append(parts, "RAL")
	case word&op.G1RT != 0:
		parts = append(parts, "BSW")
	}
	if len(parts) == 0 {
		return "NOP"
	}
	return strings.Join(parts, " ")
}

// oprGroup2 prints the skip-test mnemonics in the sense RSS selects
// (normal: SMA/SZA/SNL; reversed: SPA/SNA/SZL, or bare SKP if RSS is the
// only skip bit set), then CLA/OSR/HLT.
func oprGroup2(word uint16) string {
	var parts []string
	reversed := word&op.G2RSS != 0
	names := map[uint16]string{op.G2SMA: "SMA", op.G2SZA: "SZA", op.G2SNL: "SNL"}
	if reversed {
		names = map[uint16]string{op.G2SMA: "SPA", op.G2SZA: "SNA", op.G2SNL: "SZL"}
	}
	any := false
	for _, bit := range []uint16{op.G2SMA, op.G2SZA, op.G2SNL} {
		if word&bit != 0 {
			parts = append(parts, names[bit])
			any = true
		}
	}
	if reversed && !any {
		parts = append(parts, "SKP")
	}
	if word&op.G1CLA != 0 {
		parts = append(parts, "CLA")
	}
	if word&op.G2OSR != 0 {
		parts = append(parts, "OSR")
	}
	if word&op.G2HLT != 0 {
		parts = append(parts, "HLT")
	}
	if len(parts) == 0 {
		return "NOP"
	}
	return strings.Join(parts, " ")
}
