/*
pdp8 console: command handlers.

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

package console

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/sigfpe8/pdp8/emu/assembler"
	"github.com/sigfpe8/pdp8/emu/cpu"
	D "github.com/sigfpe8/pdp8/emu/device"
	"github.com/sigfpe8/pdp8/emu/disassembler"
	"github.com/sigfpe8/pdp8/emu/loader"
	"github.com/sigfpe8/pdp8/util/logger"
	"github.com/sigfpe8/pdp8/util/octal"
)

// Console bundles the machine under control and the operator-facing
// session state (the inline assembler environment, current trace/log
// files) - the Go analogue of console.c's static bptable/tracef globals,
// but instanced per Console value instead of process-wide.
type Console struct {
	M   *cpu.Machine
	Out *bufio.Writer
	asm *assembler.Assembler

	traceFile *os.File
	logFile   *os.File
}

// New creates a Console bound to m, writing prompts/output to out.
func New(m *cpu.Machine, out *bufio.Writer) *Console {
	return &Console{M: m, Out: out, asm: assembler.New(m.Mem)}
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
	c.Out.Flush()
}

// cmdContinue / cmdRun implement "continue" and "run <addr>" (spec.md §6).
func (c *Console) cmdContinue(args []string) error {
	c.M.Running = true
	c.M.Run(c.M.PC, 0)
	return nil
}

func (c *Console) cmdRun(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("run takes 1 argument")
	}
	addr, err := octal.Parse15(args[0])
	if err != nil {
		return err
	}
	c.M.Run(addr, 0)
	return nil
}

// cmdStep implements "si": single-step one instruction and show the PC
// about to execute next.
func (c *Console) cmdStep(args []string) error {
	c.M.Step()
	c.printf("PC=%s\n", octal.Word5(c.M.IF|c.M.PC))
	return nil
}

// cmdExamine implements "examine <addr> [<count>]": read memory with
// disassembly.
func (c *Console) cmdExamine(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("examine requires an address")
	}
	addr, err := octal.Parse15(args[0])
	if err != nil {
		return err
	}
	count := 1
	if len(args) >= 2 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("bad count: %w", err)
		}
		count = n
	}
	for i := 0; i < count; i++ {
		word := c.M.Mem.Read(addr)
		line := disassembler.One(c.M.Mem, addr, word)
		c.printf("%s  %s  %s\n", octal.Word5(addr), octal.Word4(word), line.Text)
		addr = addr + 1 + uint16(line.Operand)
	}
	return nil
}

// cmdDeposit implements "deposit <addr>": enters the inline-assembler
// dialog at addr, reading statements from standard input until a blank
// line.
func (c *Console) cmdDeposit(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("deposit requires an address")
	}
	addr, err := octal.Parse15(args[0])
	if err != nil {
		return err
	}
	scanner := bufio.NewScanner(os.Stdin)
	for {
		c.printf("%s> ", octal.Word5(addr))
		if !scanner.Scan() {
			return nil
		}
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			return nil
		}
		next, err := c.asm.AssembleInline(addr, line)
		if err != nil {
			c.printf("Error: %s\n", err.Error())
			continue
		}
		addr = next
	}
}

func (c *Console) cmdSetAcc(args []string) error {
	v, err := octal.Parse12(arg0(args))
	if err != nil {
		return err
	}
	c.M.SetAC(v)
	return nil
}

func (c *Console) cmdSetLink(args []string) error {
	v, err := strconv.Atoi(arg0(args))
	if err != nil || (v != 0 && v != 1) {
		return fmt.Errorf("slink takes 0 or 1")
	}
	c.M.SetL(uint16(v))
	return nil
}

func (c *Console) cmdSetSwitch(args []string) error {
	v, err := octal.Parse12(arg0(args))
	if err != nil {
		return err
	}
	c.M.SR = v
	return nil
}

func (c *Console) cmdShowRegs(args []string) error {
	c.printf("PC=%s AC=%s L=%d MQ=%s SC=%s IF=%o DF=%o IB=%o SR=%s IEN=%v\n",
		octal.Word5(c.M.IF|c.M.PC), octal.Word4(c.M.AC()), c.M.L(), octal.Word4(c.M.MQ),
		octal.Word4(c.M.SC), c.M.IF>>12, c.M.DF>>12, c.M.IB>>12, octal.Word4(c.M.SR), c.M.IEN)
	return nil
}

func (c *Console) cmdBreakSet(args []string) error {
	addr, err := octal.Parse15(arg0(args))
	if err != nil {
		return err
	}
	n, err := c.M.SetBreakpoint(addr)
	if err != nil {
		return err
	}
	c.printf("Breakpoint %d at %s\n", n, octal.Word5(addr))
	return nil
}

func (c *Console) cmdBreakClear(args []string) error {
	n, err := strconv.Atoi(arg0(args))
	if err != nil {
		return fmt.Errorf("bc requires a breakpoint number")
	}
	return c.M.ClearBreakpoint(n)
}

func (c *Console) cmdBreakList(args []string) error {
	for i, bp := range c.M.ListBreakpoints() {
		c.printf("%d: %s\n", i+1, octal.Word5(bp.Addr))
	}
	return nil
}

// cmdLoad implements "load [-d] <file>": format auto-detected by file
// extension (spec.md §6).
func (c *Console) cmdLoad(args []string) error {
	disasm := false
	var file string
	for _, a := range args {
		if a == "-d" {
			disasm = true
			continue
		}
		file = a
	}
	if file == "" {
		return fmt.Errorf("load requires a file name")
	}

	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	switch {
	case strings.HasSuffix(file, ".asm8"):
		src, err := readAll(f)
		if err != nil {
			return err
		}
		err = c.asm.AssembleSource(src)
		if err == nil && disasm {
			_ = listSource(c, file)
		}
		return err
	case strings.HasSuffix(file, ".bin") || strings.HasSuffix(file, "-pb"):
		return loader.BIN(c.M.Mem, f)
	case strings.HasSuffix(file, ".rim") || strings.HasSuffix(file, "-pm"):
		return loader.RIM(c.M.Mem, f)
	case strings.HasSuffix(file, ".txt"):
		return loader.TXT(c.M.Mem, f)
	default:
		return fmt.Errorf("load: unrecognized file extension: %s", file)
	}
}

func listSource(c *Console, file string) error {
	listPath := strings.TrimSuffix(file, ".asm8") + ".lst"
	lf, err := os.Create(listPath)
	if err != nil {
		return err
	}
	defer lf.Close()
	fmt.Fprintf(lf, "; disassembly listing for %s\n", file)
	return nil
}

func readAll(f *os.File) (string, error) {
	var b strings.Builder
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		b.WriteString(scanner.Text())
		b.WriteByte('\n')
	}
	return b.String(), scanner.Err()
}

// cmdAssign implements "assign <dev> <file>": redirect one of devices
// {1,2,3} (paper-tape reader, punch, or keyboard/low-speed reader) to a
// host file.
func (c *Console) cmdAssign(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("assign requires <dev> <file>")
	}
	var devNum uint8
	switch strings.ToLower(args[0]) {
	case "1", "reader":
		devNum = D.DevReader
	case "2", "punch":
		devNum = D.DevPunch
	case "3", "keyboard":
		devNum = D.DevKeyboard
	default:
		return fmt.Errorf("assign: unknown device %q", args[0])
	}
	dev := c.M.Devices.Lookup(devNum)
	attacher, ok := dev.(D.Attacher)
	if !ok {
		return fmt.Errorf("assign: device %q cannot be assigned a file", args[0])
	}
	return attacher.Attach(args[1])
}

// cmdTrace implements "trace 0|1 [<file>]".
func (c *Console) cmdTrace(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("trace requires 0 or 1")
	}
	on := args[0] == "1"
	if !on {
		c.M.Trace = false
		if c.traceFile != nil {
			c.traceFile.Close()
			c.traceFile = nil
		}
		return nil
	}
	name := "pdp8-trace.txt"
	if len(args) >= 2 {
		name = args[1]
	}
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	c.traceFile = f
	c.M.TraceWriter = f
	c.M.Trace = true
	return nil
}

// cmdLog implements "log 0|1": enable/disable the diagnostic log file.
func (c *Console) cmdLog(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("log requires 0 or 1")
	}
	on := args[0] == "1"
	if !on {
		if c.logFile != nil {
			c.logFile.Close()
			c.logFile = nil
		}
		return nil
	}
	f, err := os.Create("pdp8-log.txt")
	if err != nil {
		return err
	}
	c.logFile = f
	debug := false
	handler := logger.NewHandler(f, &slog.HandlerOptions{Level: slog.LevelInfo}, &debug)
	c.M.Log = slog.New(logger.NewCoalescer(handler))
	return nil
}

func (c *Console) cmdQuit(args []string) error {
	return nil
}

func arg0(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
