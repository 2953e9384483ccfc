package loader

import (
	"strings"
	"testing"

	"github.com/sigfpe8/pdp8/emu/memory"
)

func word(addr bool, w uint16) []byte {
	hi := byte((w >> 6) & 077)
	if addr {
		hi |= addressMark
	}
	lo := byte(w & 077)
	return []byte{hi, lo}
}

func TestRIMRequiresMarkerPerWord(t *testing.T) {
	mem := memory.New(4)
	var data []byte
	data = append(data, leaderTrailer, leaderTrailer)
	data = append(data, word(true, 0200)...)
	data = append(data, word(false, 07300)...)
	data = append(data, word(true, 0201)...)
	data = append(data, word(false, 07402)...)
	data = append(data, leaderTrailer)

	if err := RIM(mem, strings.NewReader(string(data))); err != nil {
		t.Fatalf("RIM: %v", err)
	}
	if got := mem.Read(0200); got != 07300 {
		t.Errorf("mem[0200] = %04o, want 07300", got)
	}
	if got := mem.Read(0201); got != 07402 {
		t.Errorf("mem[0201] = %04o, want 07402", got)
	}
}

func TestRIMRejectsDataWithoutMarker(t *testing.T) {
	mem := memory.New(4)
	var data []byte
	data = append(data, word(false, 01234)...)
	if err := RIM(mem, strings.NewReader(string(data))); err == nil {
		t.Fatal("expected error for data word with no preceding address marker")
	}
}

func TestBINAutoAdvancesCursor(t *testing.T) {
	mem := memory.New(4)
	var data []byte
	data = append(data, word(true, 0200)...)
	data = append(data, word(false, 07300)...)
	data = append(data, word(false, 01206)...)
	data = append(data, word(false, 07402)...)
	data = append(data, ctrlZ)

	if err := BIN(mem, strings.NewReader(string(data))); err != nil {
		t.Fatalf("BIN: %v", err)
	}
	if got := mem.Read(0200); got != 07300 {
		t.Errorf("mem[0200] = %04o, want 07300", got)
	}
	if got := mem.Read(0201); got != 01206 {
		t.Errorf("mem[0201] = %04o, want 01206", got)
	}
	if got := mem.Read(0202); got != 07402 {
		t.Errorf("mem[0202] = %04o, want 07402", got)
	}
}

func TestTXT(t *testing.T) {
	mem := memory.New(4)
	src := "0200 07300 / comment\n0201 01206\n\n0202 07402\n"
	if err := TXT(mem, strings.NewReader(src)); err != nil {
		t.Fatalf("TXT: %v", err)
	}
	if got := mem.Read(0201); got != 01206 {
		t.Errorf("mem[0201] = %04o, want 01206", got)
	}
}

func TestTXTRejectsOutOfRangeWord(t *testing.T) {
	mem := memory.New(4)
	if err := TXT(mem, strings.NewReader("0200 17777\n")); err == nil {
		t.Fatal("expected range error for a 13-bit word")
	}
}
