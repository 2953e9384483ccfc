package assembler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sigfpe8/pdp8/emu/memory"
)

func TestAssembleSourceBasic(t *testing.T) {
	mem := memory.New(4)
	a := New(mem)
	a.loc = 0200

	src := `
CLA CLL
TAD FOO
HLT
FOO, 0042
`
	require.NoError(t, a.AssembleSource(src))

	assert.EqualValues(t, 07300, mem.Read(0200), "CLA CLL")
	assert.EqualValues(t, 01203, mem.Read(0201), "TAD FOO (FOO=0203)")
	assert.EqualValues(t, 07402, mem.Read(0202), "HLT")
	assert.EqualValues(t, 0042, mem.Read(0203), "FOO word")
}

func TestAssembleSourceIndirectAndPageZero(t *testing.T) {
	mem := memory.New(4)
	a := New(mem)
	a.loc = 0200

	require.NoError(t, a.AssembleSource("DCA I 010\nHLT\n"))
	assert.EqualValues(t, 03410, mem.Read(0200))
}

func TestAssembleInlineRequiresDefinedSymbols(t *testing.T) {
	mem := memory.New(4)
	a := New(mem)

	_, err := a.AssembleInline(0300, "TAD NOPE\n")
	assert.Error(t, err, "undefined symbol should fail in inline (pass-2-only) mode")
}

func TestAssembleInlineUsesPriorSymbols(t *testing.T) {
	mem := memory.New(4)
	a := New(mem)
	a.loc = 0200
	require.NoError(t, a.AssembleSource("FOO, 0123\n"))

	next, err := a.AssembleInline(0300, "TAD FOO\nHLT\n")
	require.NoError(t, err)
	assert.EqualValues(t, 0302, next)
	assert.EqualValues(t, 01200, mem.Read(0300), "TAD FOO (FOO=0200)")
}

func TestCurrentPageLiteral(t *testing.T) {
	mem := memory.New(4)
	a := New(mem)
	a.loc = 0200

	require.NoError(t, a.AssembleSource("TAD (1234)\nHLT\n"))

	// Literal lands at the top of page 1 (0377), offset 0177 within page.
	tad := mem.Read(0200)
	require.EqualValues(t, 01000, tad&07000, "not a TAD")
	litAddr := uint16(0200&07600) | (tad & 0177)
	assert.EqualValues(t, 01234, mem.Read(litAddr))
}
