// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

package cpu

import (
	"fmt"

	"github.com/nescore/nescore/hardware/cpu/execution"
	"github.com/nescore/nescore/hardware/cpu/opcode"
	"github.com/nescore/nescore/hardware/cpu/registers"
	"github.com/nescore/nescore/hardware/instance"
	"github.com/nescore/nescore/hardware/memory/bus"
	"github.com/nescore/nescore/hardware/memory/memorymap"
	"github.com/nescore/nescore/logger"
)

// CPU implements the 2A03's 6502-derivative core: no decimal mode, an
// undocumented-opcode matrix the real silicon happens to decode, and the
// OAM-DMA stall this chip shares with no other 6502 variant.
type CPU struct {
	instance *instance.Instance
	bus      *bus.Bus

	A      *registers.Register
	X      *registers.Register
	Y      *registers.Register
	SP     *registers.StackPointer
	PC     *registers.ProgramCounter
	Status registers.StatusRegister

	// LastResult describes the most recently completed instruction, for
	// debuggers and disassemblers.
	LastResult execution.Result

	// execution state for the instruction currently in flight. program is
	// the micro-op sequence buildProgram assembled for the opcode fetched
	// at the start of this instruction (or the synthetic interrupt-service
	// sequence); funcIdx is the index of the next entry TickPhi2 will run.
	// cyclesBase is the number of cycles already spent getting here before
	// program's first entry runs: 1 for a real opcode (the fetch cycle),
	// 0 for an interrupt-service sequence (which has no separate fetch).
	//
	// address/operand/boundaryCrossed/triggeredBug are scratch the
	// micro-ops read and write as they go; lo/hi/zp/ptr hold fetched
	// operand bytes a later micro-op in the same program still needs. See
	// microcode.go for the programs themselves.
	def             opcode.Definition
	program         []microOp
	funcIdx         int
	cyclesBase      int
	pendingResult   execution.Result
	trace           []execution.BusAccess
	address         uint16
	operand         uint8
	boundaryCrossed bool
	triggeredBug    execution.Bug
	lo, hi          uint8
	zp, ptr         uint8

	// interrupt lines. nmiLine/irqLine are the raw level the mapper or
	// APU currently drives; nmiPending is the edge latch (NMI is
	// edge-triggered - a single high-to-low transition queues one
	// service no matter how long the line then stays low); IRQ is
	// level-sensed fresh every poll.
	nmiLine    bool
	nmiPrev    bool
	nmiPending bool
	irqLine    bool

	// polled is set once per instruction, at the PHI1 boundary before the
	// opcode fetch, and consumed by TickPhi2. This is what makes the
	// "branch with IRQ pending" quirk possible: a taken branch re-polls
	// on its extra cycle, a not-taken one does not.
	pollNMI bool
	pollIRQ bool

	dmaCyclesRemaining int
	dmaPage            uint8
	dmaOffset          uint16
	dmaOddCycle        bool
	dmaValueLatch      uint8
	dmaWrite           func(value uint8)

	halted bool
}

// NewCPU creates a CPU wired to the given bus. Registers are left at their
// zero values; call ResetCold before stepping.
func NewCPU(ins *instance.Instance, b *bus.Bus) *CPU {
	return &CPU{
		instance: ins,
		bus:      b,
		A:        registers.NewRegister(0, "A"),
		X:        registers.NewRegister(0, "X"),
		Y:        registers.NewRegister(0, "Y"),
		SP:       registers.NewStackPointer(0xFD),
		PC:       registers.NewProgramCounter(0),
		Status:   registers.NewStatusRegister(),
	}
}

func (c *CPU) String() string {
	return fmt.Sprintf("PC=%s A=%s X=%s Y=%s %s %s", c.PC, c.A, c.X, c.Y, c.SP, c.Status)
}

// ResetCold loads the reset vector and sets the registers to their
// documented post-reset state. If the instance prefers randomised state,
// A/X/Y start from the random source instead of zero.
func (c *CPU) ResetCold() {
	c.A.Load(0)
	c.X.Load(0)
	c.Y.Load(0)
	if c.instance != nil && c.instance.Prefs.RandomState.Get().(bool) {
		c.A.Load(c.instance.Random.Uint8())
		c.X.Load(c.instance.Random.Uint8())
		c.Y.Load(c.instance.Random.Uint8())
	}
	c.SP.Load(0xFD)
	c.Status.Reset()
	c.Status.InterruptDisable = true
	c.halted = false
	c.program = nil
	c.funcIdx = 0
	c.nmiPending = false
	c.nmiPrev = false
	c.loadVector(memorymap.VectorReset)
}

// ResetWarm performs the reduced reset sequence a real 6502 runs when RES
// is asserted after power-on: the stack pointer drops by three without
// writing (the reset sequence fakes three pushes with writes disabled) and
// the interrupt-disable flag is forced set, but A/X/Y and the rest of the
// flags are left untouched.
func (c *CPU) ResetWarm() {
	c.SP.Load(c.SP.Value() - 3)
	c.Status.InterruptDisable = true
	c.halted = false
	c.program = nil
	c.funcIdx = 0
	c.loadVector(memorymap.VectorReset)
}

func (c *CPU) loadVector(vector uint16) {
	lo := c.bus.Read(vector)
	hi := c.bus.Read(vector + 1)
	c.PC.Load(uint16(lo) | uint16(hi)<<8)
}

// Halted reports whether the CPU has executed a JAM opcode and is waiting
// for a reset.
func (c *CPU) Halted() bool {
	return c.halted
}

// NMIRaise asserts the NMI line. The edge is latched immediately; the
// pending interrupt is serviced at the next instruction boundary.
func (c *CPU) NMIRaise() {
	if !c.nmiLine {
		c.nmiPending = true
	}
	c.nmiLine = true
	c.nmiPrev = true
}

// NMIClear deasserts the NMI line. Because NMI is edge-triggered this does
// not cancel an already-latched pending service.
func (c *CPU) NMIClear() {
	c.nmiLine = false
}

// IRQRaise asserts the IRQ line (wired-OR from the APU frame counter, DMC,
// and mapper IRQ sources).
func (c *CPU) IRQRaise() {
	c.irqLine = true
}

// IRQClear deasserts the IRQ line.
func (c *CPU) IRQClear() {
	c.irqLine = false
}

// BeginDMA starts an OAM DMA transfer from the given page. write is called
// once per byte transferred (the PPU wires this to OAMDATA). The transfer
// stalls the CPU for 513 cycles, or 514 if it starts on an odd CPU cycle.
func (c *CPU) BeginDMA(pageByte uint8, oddCycle bool, write func(value uint8)) {
	c.dmaPage = pageByte
	c.dmaOffset = 0
	c.dmaWrite = write
	c.dmaOddCycle = oddCycle
	c.dmaCyclesRemaining = 513
	if oddCycle {
		c.dmaCyclesRemaining++
	}
}

func (c *CPU) dmaActive() bool {
	return c.dmaCyclesRemaining > 0
}

// tickDMA consumes one CPU cycle of an in-flight OAM DMA transfer. DMA
// alternates a read from the source page and a write to OAMDATA every
// other cycle once the initial alignment stall has elapsed.
func (c *CPU) tickDMA() {
	stall := 513
	if c.dmaOddCycle {
		stall++
	}
	elapsed := stall - c.dmaCyclesRemaining
	c.dmaCyclesRemaining--

	align := stall - 512
	if elapsed < align {
		return // initial stall cycle(s)
	}
	cycleInTransfer := elapsed - align
	if cycleInTransfer%2 == 0 {
		addr := uint16(c.dmaPage)<<8 | c.dmaOffset
		c.dmaValueLatch = c.bus.Read(addr)
	} else {
		c.dmaWrite(c.dmaValueLatch)
		c.dmaOffset++
	}
}

// TickPhi1 runs the half of the CPU cycle where interrupt lines are
// sampled. NMI is latched on the falling edge; IRQ is level-sensed, so it
// is re-evaluated every cycle and only actually taken if Status.
// InterruptDisable is clear at the following instruction boundary.
//
// Polling happens during the current instruction's last micro-op - one
// tick before the fetch that would otherwise start the next instruction -
// mirroring the real CPU's interrupt-polling point.
func (c *CPU) TickPhi1() {
	if c.dmaActive() {
		return
	}
	if c.nmiLine && !c.nmiPrev {
		c.nmiPending = true
	}
	c.nmiPrev = c.nmiLine

	if c.program != nil && c.funcIdx == len(c.program)-1 {
		c.pollNMI = c.nmiPending
		c.pollIRQ = c.irqLine && !c.Status.InterruptDisable
	}
}

// TickPhi2 runs the half of the CPU cycle where bus activity happens. If no
// instruction is in flight, this either starts one (fetching the opcode
// byte, or entering a pending interrupt's service sequence, and building
// its micro-op program) or, for the handful of cases with no further
// cycles to run (JAM, an unimplemented opcode), finishes it immediately.
// Otherwise it runs exactly the next queued micro-op - one bus half-cycle
// - and finishes the instruction once the program is exhausted.
func (c *CPU) TickPhi2() {
	if c.dmaActive() {
		c.tickDMA()
		return
	}
	if c.halted {
		return
	}

	if c.program == nil {
		if c.startNext() {
			return
		}
		return
	}

	c.program[c.funcIdx](c)
	c.funcIdx++
	if c.funcIdx >= len(c.program) {
		c.finishInstruction()
	}
}

// Step decodes and fully executes exactly one instruction (or interrupt
// service sequence), ignoring the scheduler's cycle pacing, and returns the
// number of cycles it took. This is the entry point used by the
// single-instruction test harness, which only cares about the CPU's state
// - and bus trace - before and after one opcode, not about real-time bus
// pacing. It runs the same micro-op program TickPhi2 would, just without
// waiting a tick between entries.
func (c *CPU) Step() int {
	if c.halted {
		return 1
	}

	finalised := false
	switch {
	case c.nmiPending:
		c.nmiPending = false
		c.beginInterrupt(opcode.NMI)
	case c.irqLine && !c.Status.InterruptDisable:
		c.beginInterrupt(opcode.IRQ)
	default:
		finalised = c.beginOpcode()
	}
	if finalised {
		return c.LastResult.Cycles
	}
	for c.funcIdx < len(c.program) {
		c.program[c.funcIdx](c)
		c.funcIdx++
	}
	c.finishInstruction()
	return c.LastResult.Cycles
}

// startNext begins the next unit of work - a pending interrupt's service
// sequence, or the next opcode - building its micro-op program. It returns
// true if that unit of work was already finalised on the spot (a JAM
// opcode, or one with no operations entry) rather than left running.
func (c *CPU) startNext() bool {
	if c.pollNMI {
		c.nmiPending = false
		c.pollNMI = false
		c.beginInterrupt(opcode.NMI)
		return false
	}
	if c.pollIRQ {
		c.pollIRQ = false
		c.beginInterrupt(opcode.IRQ)
		return false
	}
	return c.beginOpcode()
}

// beginOpcode fetches the next opcode byte, decodes it, and builds its
// micro-op program. It returns true if the instruction was finalised
// immediately instead (JAM, or a mnemonic with no operations entry), in
// which case no program is left running.
func (c *CPU) beginOpcode() bool {
	c.trace = c.trace[:0]
	startAddr := c.PC.Address()
	opByte := c.read(c.PC.Address())
	c.PC.Add(1)
	def := opcode.Table[opByte]
	c.def = def
	c.boundaryCrossed = false
	c.triggeredBug = execution.NoBug
	c.cyclesBase = 1
	c.pendingResult = execution.Result{Address: startAddr, Defn: def, ByteCount: def.Bytes}

	if def.Jam {
		logger.Logf(logger.Allow, "cpu", "JAM opcode %#02x encountered, halting", opByte)
		c.halted = true
		c.finaliseWithCycles(def.Cycles)
		return true
	}

	c.program = buildProgram(c, def)
	if c.program == nil {
		logger.Logf(logger.Allow, "cpu", "unimplemented opcode %#02x (%s)", opByte, def.Mnemonic)
		c.finaliseWithCycles(def.Cycles)
		return true
	}

	c.funcIdx = 0
	return false
}

// beginInterrupt starts the synthetic 7-cycle BRK-shaped sequence shared by
// NMI and IRQ. A hardware interrupt pushes the status register with the B
// flag clear; servicing an NMI while a BRK sequence is already pushing its
// return address redirects the vector fetch to the NMI vector without
// otherwise disturbing the sequence (the NMI hijack) - see
// buildInterruptProgram in microcode.go, which decides the vector as late
// as possible, immediately before fetching it.
func (c *CPU) beginInterrupt(kind opcode.InterruptKind) {
	c.trace = c.trace[:0]
	def := opcode.Interrupt(kind)
	c.def = def
	c.boundaryCrossed = false
	c.triggeredBug = execution.NoBug
	c.cyclesBase = 0
	c.pendingResult = execution.Result{Address: c.PC.Address(), Defn: def, ByteCount: 0}
	c.program = buildInterruptProgram(kind)
	c.funcIdx = 0
}

// finaliseWithCycles closes out pendingResult for the handful of cases
// (JAM, an unimplemented mnemonic) that complete without running a
// micro-op program.
func (c *CPU) finaliseWithCycles(cycles int) {
	c.pendingResult.Cycles = cycles
	c.pendingResult.Final = true
	c.pendingResult.Trace = append([]execution.BusAccess(nil), c.trace...)
	c.LastResult = c.pendingResult
	c.program = nil
	c.funcIdx = 0
}

// finishInstruction closes out pendingResult once program has run to
// completion, and clears the in-flight state so the next TickPhi2/Step call
// starts a new instruction.
func (c *CPU) finishInstruction() {
	c.pendingResult.Cycles = c.cyclesBase + len(c.program)
	c.pendingResult.PageFault = c.boundaryCrossed && c.def.Mode != opcode.Relative && c.def.PageSensitive
	c.pendingResult.CPUBug = c.triggeredBug
	c.pendingResult.Final = true
	c.pendingResult.Trace = append([]execution.BusAccess(nil), c.trace...)
	c.LastResult = c.pendingResult
	c.program = nil
	c.funcIdx = 0
}

func (c *CPU) push(v uint8) {
	c.write(c.SP.Push(), v)
}

func (c *CPU) pull() uint8 {
	return c.read(c.SP.Pull())
}

// read performs one bus read and records it in the in-flight instruction's
// trace.
func (c *CPU) read(addr uint16) uint8 {
	v := c.bus.Read(addr)
	c.trace = append(c.trace, execution.BusAccess{Address: addr, Value: v})
	return v
}

// write performs one bus write and records it in the in-flight
// instruction's trace.
func (c *CPU) write(addr uint16, v uint8) {
	c.bus.Write(addr, v)
	c.trace = append(c.trace, execution.BusAccess{Address: addr, Value: v, Write: true})
}

func (c *CPU) setZN(v uint8) {
	c.Status.Zero = v == 0
	c.Status.Sign = v&0x80 != 0
}
