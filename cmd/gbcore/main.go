// Command gbcore drives the core loop described in spec.md §2: CPU.Tick
// feeds its M-cycle cost (×4 for T-cycles) into PPU.Tick, completed frames
// are published to a double buffer, and serial-port writes stream to
// stdout — the channel Blargg-style test ROMs use to report PASS/FAIL.
//
// Grounded on cmd/cpurunner/main.go's flag surface and serial-capture loop
// (FabianRolfMatthiasNoll-GameBoyEmulator), with the trace line reformatted
// around decode.Instruction.String() and an -interactive single-step mode
// added in the raw-terminal style of
// IntuitionAmiga-IntuitionEngine/terminal_host.go's term.MakeRaw/Restore use.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/mjansson/gbcore/internal/bus"
	"github.com/mjansson/gbcore/internal/cpu"
	"github.com/mjansson/gbcore/internal/decode"
	"github.com/mjansson/gbcore/internal/display"
)

func main() {
	romPath := flag.String("rom", "", "path to a flat Game Boy ROM image")
	steps := flag.Int("steps", 5_000_000, "maximum CPU instructions to execute")
	trace := flag.Bool("trace", false, "print one disassembled line per executed instruction")
	until := flag.String("until", "", "stop once this substring appears in the serial stream (case-insensitive)")
	interactive := flag.Bool("interactive", false, "single-step under an interactive raw-terminal debugger")
	flag.Parse()

	if *romPath == "" {
		log.Fatal("-rom is required")
	}
	rom, err := os.ReadFile(*romPath)
	if err != nil {
		log.Fatalf("read rom: %v", err)
	}

	b := bus.New(rom)
	var serial strings.Builder
	b.SetSerialSink(func(line string) {
		fmt.Print(line)
		serial.WriteString(line)
	})

	c := cpu.New(b)
	swap := display.NewSwapchain()
	var frame display.Frame

	dbg := (*debugger)(nil)
	if *interactive {
		dbg = newDebugger()
		defer dbg.restore()
	}

	for i := 0; i < *steps; i++ {
		if *trace || dbg != nil {
			printTrace(b, c)
		}
		if dbg != nil {
			dbg.awaitStep()
		}

		mCycles := c.Tick()
		b.TickPPU(&frame, int(mCycles)*4)

		if b.PPU().FrameReady {
			committed := frame
			swap.Publish(func(fb *display.Frame) { *fb = committed })
			b.PPU().FrameReady = false
		}

		if *until != "" && strings.Contains(strings.ToLower(serial.String()), strings.ToLower(*until)) {
			fmt.Printf("\ndetected %q in serial output after %d instructions\n", *until, i+1)
			return
		}
		if c.Stopped {
			fmt.Println("\nSTOP executed; halting the driver loop")
			return
		}
	}
}

func printTrace(b *bus.Bus, c *cpu.CPU) {
	buf := b.Fetch4(c.PC)
	inst, err := decode.Decode(buf[:], c.PC)
	if err != nil {
		fmt.Printf("PC=%04X <illegal opcode %#02x>\n", c.PC, buf[0])
		return
	}
	fmt.Printf("PC=%04X  %-20s A=%02X F=%02X B=%02X C=%02X D=%02X E=%02X H=%02X L=%02X SP=%04X IME=%t\n",
		c.PC, inst.String(), c.A, c.F, c.B, c.C, c.D, c.E, c.H, c.L, c.SP, c.IME)
}

// debugger pauses the driver loop before each instruction until the user
// presses a key on a raw-mode stdin, mirroring terminal_host.go's approach
// to reading single bytes without line buffering or local echo.
type debugger struct {
	oldState *term.State
	reader   *bufio.Reader
}

func newDebugger() *debugger {
	d := &debugger{reader: bufio.NewReader(os.Stdin)}
	if state, err := term.MakeRaw(int(os.Stdin.Fd())); err == nil {
		d.oldState = state
	} else {
		fmt.Fprintf(os.Stderr, "interactive mode: failed to set raw terminal mode: %v\n", err)
	}
	return d
}

func (d *debugger) awaitStep() {
	fmt.Print("\r\n[step: any key, q to quit]")
	b, err := d.reader.ReadByte()
	if err != nil {
		return
	}
	if b == 'q' || b == 'Q' {
		d.restore()
		os.Exit(0)
	}
}

func (d *debugger) restore() {
	if d.oldState != nil {
		_ = term.Restore(int(os.Stdin.Fd()), d.oldState)
		d.oldState = nil
	}
}
