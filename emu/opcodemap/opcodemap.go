/*
	   PDP-8 opcode tables

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

// Package opcodemap holds the opcode/mnemonic tables shared by the
// assembler and the disassembler, so the two stay in lock-step the way
// spec.md's round-trip law (§8) requires.
package opcodemap

// Opcode occupies bits 9-11 of every PDP-8 instruction word.
const (
	OpAND = 0
	OpTAD = 1
	OpISZ = 2
	OpDCA = 3
	OpJMS = 4
	OpJMP = 5
	OpIOT = 6
	OpOPR = 7

	OpShift = 9
	OpMask  = 07000

	IndirectBit = 00400
	PageBit     = 00200
	OffsetMask  = 00177
)

// Memory-reference mnemonics, indexed by opcode 0-5.
var MRIName = [6]string{"AND", "TAD", "ISZ", "DCA", "JMS", "JMP"}

// MRIOpcode resolves a mnemonic to its opcode; ok is false for anything
// else (including IOT/OPR, which the assembler parses separately).
func MRIOpcode(name string) (op int, ok bool) {
	for i, n := range MRIName {
		if n == name {
			return i, true
		}
	}
	return 0, false
}

// Group-1 OPR (bit 8 = 0) micro-op bits, executed in this fixed order:
// CLA, CLL, CMA, CML, IAC, then one rotate/swap stage.
const (
	G1CLA = 00200
	G1CLL = 00100
	G1CMA = 00040
	G1CML = 00020
	G1RAR = 00010
	G1RAL = 00004
	G1RT  = 00002 // Rotate twice / byte-swap selector.
	G1IAC = 00001
	G1BSW = 00002 // Byte swap: RAR=RAL=0, RT=1.
)

// Group-1 mnemonics, used by the assembler (OR together any named on the
// line). The disassembler decodes the rotate/swap field with its own
// switch instead of testing these entries.
var G1Names = []struct {
	Name string
	Bit  uint16
}{
	{"CLA", G1CLA},
	{"CLL", G1CLL},
	{"CMA", G1CMA},
	{"CML", G1CML},
	{"IAC", G1IAC},
	{"RAR", G1RAR},
	{"RAL", G1RAL},
	{"RTR", G1RAR | G1RT},
	{"RTL", G1RAL | G1RT},
	{"BSW", G1RT},
}

// Group-2 OPR (bit 8 = 1, bit 0 = 0) bits.
const (
	G2SMA = 00100
	G2SZA = 00040
	G2SNL = 00020
	G2RSS = 00010
	G2OSR = 00004
	G2HLT = 00002
	G2SPA = 00100 // Alias under RSS: complementary sense.
	G2SNA = 00040
	G2SZL = 00020
)

var G2Names = []struct {
	Name string
	Bit  uint16
}{
	{"SMA", G2SMA},
	{"SZA", G2SZA},
	{"SNL", G2SNL},
	{"RSS", G2RSS},
	{"CLA", G1CLA},
	{"OSR", G2OSR},
	{"HLT", G2HLT},
}

// Group-3 OPR (bit 8 = 1, bit 0 = 1), EAE. Sequence 2 is selected by bits
// 5-7 (IR>>4 & 7); sequence 3 by bits 8-10 (IR>>1 & 7).
const G3CLA = 00200

// G3SeqTwo indexes by (IR>>4)&7: NOP, MQL, SCA, NOP, MQA, SWP, NOP, NOP.
var G3SeqTwo = [8]string{"", "MQL", "SCA", "", "MQA", "SWP", "", ""}

// G3SeqThree indexes by (IR>>1)&7: NOP, SCL, MUY, DVI, NMI, SHL, ASR, LSR.
var G3SeqThree = [8]string{"NOP", "SCL", "MUY", "DVI", "NMI", "SHL", "ASR", "LSR"}

// IOT device/function mnemonics used purely for disassembly listings;
// the interpreter itself decodes device/function numerically (cpu_iot.go).
var IOTName = map[uint16]string{
	06000: "SKON", 06001: "ION", 06002: "IOF", 06003: "SRQ",
	06004: "GTF", 06005: "RTF", 06006: "SGT", 06007: "CAF",
	06201: "CDF", 06202: "CIF", 06203: "CDI",
	06214: "RDF", 06224: "RIF", 06234: "RIB", 06244: "RMF",
	06011: "RSF", 06012: "RRB", 06014: "RFC", 06016: "RRB RFC",
	06021: "PSF", 06022: "PCF", 06024: "PPC", 06026: "PLS",
	06030: "KCF", 06031: "KSF", 06032: "KCC", 06036: "KRB",
	06041: "TSF", 06042: "TCF", 06044: "TPC", 06046: "TLS",
	06100: "SMP", 06104: "SPL", 06144: "CMP",
}

// Pseudo-operations recognized by the assembler. DECIMAL and OCTAL change
// the radix, FIELD and PAGE move the location counter and TEXT deposits
// characters; the rest are recognized and parsed (per spec.md §4.6)
// without emitting anything.
const (
	PseudoDecimal = iota
	PseudoOctal
	PseudoField
	PseudoPage
	PseudoText
	PseudoDubl
	PseudoFltg
	PseudoDefine
	PseudoExpunge
	PseudoFixtab
	PseudoContinue
	PseudoPause
)

var PseudoOps = map[string]int{
	"DECIMAL":  PseudoDecimal,
	"OCTAL":    PseudoOctal,
	"FIELD":    PseudoField,
	"PAGE":     PseudoPage,
	"TEXT":     PseudoText,
	"DUBL":     PseudoDubl,
	"FLTG":     PseudoFltg,
	"DEFINE":   PseudoDefine,
	"EXPUNGE":  PseudoExpunge,
	"FIXTAB":   PseudoFixtab,
	"CONTINUE": PseudoContinue,
	"PAUSE":    PseudoPause,
}
