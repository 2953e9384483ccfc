/*
 * pdp8 - Main process.
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

package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"

	getopt "github.com/pborman/getopt/v2"

	"github.com/sigfpe8/pdp8/console"
	"github.com/sigfpe8/pdp8/emu/cpu"
	D "github.com/sigfpe8/pdp8/emu/device"
	"github.com/sigfpe8/pdp8/emu/devices/papertape"
	"github.com/sigfpe8/pdp8/emu/devices/parity"
	"github.com/sigfpe8/pdp8/emu/devices/rx01"
	"github.com/sigfpe8/pdp8/emu/devices/tty"
	"github.com/sigfpe8/pdp8/util/logger"
)

func main() {
	optMem := getopt.IntLong("mem", 'm', 4, "Memory size in kwords (4-32, multiple of 4)")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	kwords := *optMem
	if kwords < 4 || kwords > 32 || kwords%4 != 0 {
		fmt.Fprintf(os.Stderr, "pdp8: -m must be between 4 and 32 and a multiple of 4\n")
		getopt.Usage()
		os.Exit(1)
	}

	debug := false
	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelInfo)
	handler := logger.NewHandler(os.Stderr, &slog.HandlerOptions{Level: programLevel}, &debug)
	log := slog.New(logger.NewCoalescer(handler))

	m := cpu.New(kwords, log)

	reader := papertape.NewReader()
	punch := papertape.NewPunch()
	keyboard := tty.NewKeyboard()
	printer := tty.NewPrinter()

	m.Devices.Register(D.DevReader, reader)
	m.Devices.Register(D.DevPunch, punch)
	m.Devices.Register(D.DevKeyboard, keyboard)
	m.Devices.Register(D.DevPrinter, printer)
	m.Devices.Register(D.DevParity, parity.New())
	m.Devices.Register(rx01.DevNum, rx01.New())
	m.Devices.Reset()

	defer m.Devices.Shutdown()
	defer m.Shutdown()

	out := bufio.NewWriter(os.Stdout)
	c := console.New(m, out)
	c.Run()
}
