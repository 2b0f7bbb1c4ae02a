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

package cpu_test

import (
	"testing"

	"github.com/nescore/nescore/hardware/cpu"
	"github.com/nescore/nescore/hardware/cpu/execution"
	"github.com/nescore/nescore/hardware/memory/bus"
	"github.com/nescore/nescore/hardware/memory/memorymap"
	"github.com/nescore/nescore/hardware/memory/ram"
	"github.com/nescore/nescore/test"
)

// newFlatCPU wires a CPU to a bus backed entirely by flat RAM, for tests
// that only care about instruction semantics and don't need a real memory
// map.
func newFlatCPU(t *testing.T) (*cpu.CPU, *ram.RAM) {
	t.Helper()
	r := ram.New(0x10000)
	b := bus.New(0x10000)
	b.SetMirroredHandlers(0x0000, 0xFFFF, 0x10000, ram.Read, ram.Write, r)
	c := cpu.NewCPU(nil, b)
	return c, r
}

func load(r *ram.RAM, addr uint16, program ...uint8) {
	for i, v := range program {
		r.Poke(addr+uint16(i), v)
	}
}

func setResetVector(r *ram.RAM, addr uint16) {
	r.Poke(memorymap.VectorReset, uint8(addr))
	r.Poke(memorymap.VectorReset+1, uint8(addr>>8))
}

func TestLoadImmediateAndTransfer(t *testing.T) {
	c, r := newFlatCPU(t)
	setResetVector(r, 0x8000)
	load(r, 0x8000,
		0xA9, 0x42, // LDA #$42
		0xAA,       // TAX
	)
	c.ResetCold()

	cycles := c.Step()
	test.Equate(t, cycles, 2)
	test.Equate(t, c.A.Value(), uint8(0x42))

	c.Step()
	test.Equate(t, c.X.Value(), uint8(0x42))
}

func TestZeroAndNegativeFlags(t *testing.T) {
	c, r := newFlatCPU(t)
	setResetVector(r, 0x8000)
	load(r, 0x8000,
		0xA9, 0x00, // LDA #$00
	)
	c.ResetCold()
	c.Step()
	test.Equate(t, c.Status.Zero, true)
	test.Equate(t, c.Status.Sign, false)

	load(r, 0x8002, 0xA9, 0x80) // LDA #$80
	c.Step()
	test.Equate(t, c.Status.Zero, false)
	test.Equate(t, c.Status.Sign, true)
}

func TestStoreAndLoadAbsolute(t *testing.T) {
	c, r := newFlatCPU(t)
	setResetVector(r, 0x8000)
	load(r, 0x8000,
		0xA9, 0x7B, // LDA #$7B
		0x8D, 0x00, 0x03, // STA $0300
		0xAD, 0x00, 0x03, // LDA $0300 (clobber A first isn't needed, check roundtrip)
	)
	c.ResetCold()
	c.Step()
	c.Step()
	test.Equate(t, r.Peek(0x0300), uint8(0x7B))
	c.Step()
	test.Equate(t, c.A.Value(), uint8(0x7B))
}

func TestBranchTakenAddsCycle(t *testing.T) {
	c, r := newFlatCPU(t)
	setResetVector(r, 0x8000)
	load(r, 0x8000,
		0xA9, 0x00, // LDA #$00 -> sets zero flag
		0xF0, 0x02, // BEQ +2
	)
	c.ResetCold()
	c.Step()
	cycles := c.Step()
	test.Equate(t, cycles, 3)
	test.Equate(t, c.PC.Address(), uint16(0x8006))
}

func TestJSRAndRTS(t *testing.T) {
	c, r := newFlatCPU(t)
	setResetVector(r, 0x8000)
	load(r, 0x8000,
		0x20, 0x00, 0x90, // JSR $9000
	)
	load(r, 0x9000,
		0x60, // RTS
	)
	c.ResetCold()
	c.Step()
	test.Equate(t, c.PC.Address(), uint16(0x9000))
	c.Step()
	test.Equate(t, c.PC.Address(), uint16(0x8003))
}

func TestADCCarryAndOverflow(t *testing.T) {
	c, r := newFlatCPU(t)
	setResetVector(r, 0x8000)
	load(r, 0x8000,
		0xA9, 0x7F, // LDA #$7F
		0x69, 0x01, // ADC #$01 -> overflow into negative
	)
	c.ResetCold()
	c.Step()
	c.Step()
	test.Equate(t, c.A.Value(), uint8(0x80))
	test.Equate(t, c.Status.Overflow, true)
	test.Equate(t, c.Status.Carry, false)
}

func TestNMIServicedAtInstructionBoundary(t *testing.T) {
	c, r := newFlatCPU(t)
	setResetVector(r, 0x8000)
	load(r, 0x8000, 0xEA) // NOP
	r.Poke(memorymap.VectorNMI, 0x00)
	r.Poke(memorymap.VectorNMI+1, 0x90)
	c.ResetCold()

	c.NMIRaise()
	cycles := c.Step()
	test.Equate(t, cycles, 7)
	test.Equate(t, c.PC.Address(), uint16(0x9000))
}

// TestJMPIndirectPageWrapBug exercises the indirect-JMP page-wrap quirk:
// the pointer's high byte is always fetched from the same page as its low
// byte, even when the low byte sits at the very end of the page.
func TestJMPIndirectPageWrapBug(t *testing.T) {
	c, r := newFlatCPU(t)
	setResetVector(r, 0x8000)
	load(r, 0x8000,
		0x6C, 0xFF, 0x02, // JMP ($02FF)
	)
	r.Poke(0x02FF, 0x34) // target low byte
	r.Poke(0x0300, 0xAB) // correctly-carried high byte: must NOT be read
	r.Poke(0x0200, 0x12) // high byte is actually fetched from here (wraps within the page)
	c.ResetCold()
	c.Step()

	test.Equate(t, c.PC.Address(), uint16(0x1234))
	test.Equate(t, c.LastResult.CPUBug, execution.JmpIndirectPageWrap)
}

// TestNMIHijacksBRKVector exercises the documented BRK/IRQ/NMI vector
// hijack: if NMI is pending when a BRK (or IRQ) sequence reaches its vector
// fetch, that fetch is redirected to the NMI vector instead.
func TestNMIHijacksBRKVector(t *testing.T) {
	c, r := newFlatCPU(t)
	setResetVector(r, 0x8000)
	load(r, 0x8000, 0x00, 0x00) // BRK (plus its padding signature byte)
	r.Poke(memorymap.VectorIRQ, 0x00)
	r.Poke(memorymap.VectorIRQ+1, 0x80)
	r.Poke(memorymap.VectorNMI, 0x00)
	r.Poke(memorymap.VectorNMI+1, 0x90)
	c.ResetCold()

	tick := func(n int) {
		for i := 0; i < n; i++ {
			c.TickPhi1()
			c.TickPhi2()
		}
	}

	// opcode fetch, signature read, push PCH, push PCL, push P: the BRK
	// sequence is now one cycle short of its vector fetch.
	tick(5)
	c.NMIRaise()
	tick(2) // vector low and high bytes
	cycles := c.LastResult.Cycles
	test.Equate(t, cycles, 7)
	test.Equate(t, c.PC.Address(), uint16(0x9000))

	pushedStatus := r.Peek(0x01FB)
	test.Equate(t, pushedStatus&0x10 != 0, true) // B flag set in the pushed copy
}

func TestJAMHaltsCPU(t *testing.T) {
	c, r := newFlatCPU(t)
	setResetVector(r, 0x8000)
	load(r, 0x8000, 0x02) // JAM
	c.ResetCold()
	c.Step()
	test.Equate(t, c.Halted(), true)
}

func TestXAAMasksAccumulatorWithMagicConstantAndOperand(t *testing.T) {
	c, r := newFlatCPU(t)
	setResetVector(r, 0x8000)
	load(r, 0x8000,
		0xA9, 0xFF, // LDA #$FF
		0xA2, 0x0F, // LDX #$0F
		0x8B, 0x3C, // XAA #$3C
	)
	c.ResetCold()
	c.Step()
	c.Step()
	c.Step()

	// (0xFF | 0xEE) & 0x0F & 0x3C == 0x0C
	test.Equate(t, c.A.Value(), uint8(0x0C))
}

func TestLASLoadsAccumulatorXAndStackPointerFromMemoryAndStack(t *testing.T) {
	c, r := newFlatCPU(t)
	setResetVector(r, 0x8000)
	load(r, 0x8000,
		0xA2, 0x3C, // LDX #$3C
		0x9A,       // TXS
		0xA0, 0x00, // LDY #$00
		0xBB, 0x00, 0x03, // LAS $0300,Y
	)
	r.Poke(0x0300, 0xFF)
	c.ResetCold()
	c.Step()
	c.Step()
	c.Step()
	c.Step()

	test.Equate(t, c.A.Value(), uint8(0x3C))
	test.Equate(t, c.X.Value(), uint8(0x3C))
	test.Equate(t, c.SP.Value(), uint8(0x3C))
}

func TestSHYStoresYAndedWithHighBytePlusOneWhenNoPageCross(t *testing.T) {
	c, r := newFlatCPU(t)
	setResetVector(r, 0x8000)
	load(r, 0x8000,
		0xA0, 0xFF, // LDY #$FF
		0xA2, 0x00, // LDX #$00
		0x9C, 0x00, 0x03, // SHY $0300,X
	)
	c.ResetCold()
	c.Step()
	c.Step()
	c.Step()

	test.Equate(t, r.Peek(0x0300), uint8(0x04))
}

// TestSHXPageCrossCorruptsWriteAddress exercises the chosen unstable-store
// variant (SPEC_FULL.md / spec.md section 4.1): when indexing carries into
// a new page, the corrupted high byte replaces the write address's own high
// byte rather than the correctly-carried one, so the byte actually lands at
// a different address than naive effective-address arithmetic would pick.
func TestSHXPageCrossCorruptsWriteAddress(t *testing.T) {
	c, r := newFlatCPU(t)
	setResetVector(r, 0x8000)
	load(r, 0x8000,
		0xA2, 0x0B, // LDX #$0B
		0xA0, 0x05, // LDY #$05
		0x9E, 0xFE, 0x03, // SHX $03FE,Y  (carries to $0403)
	)
	r.Poke(0x0403, 0xAB) // sentinel: must NOT be touched by the corrupted store
	c.ResetCold()
	c.Step()
	c.Step()
	c.Step()

	// base high byte recovered as 0x03, v = X & (0x03+1) = 0x0B & 0x04 = 0x00
	// corrupted address = ($0403 &^ $FF00) | (v << 8) = $0003
	test.Equate(t, r.Peek(0x0003), uint8(0x00))
	test.Equate(t, r.Peek(0x0403), uint8(0xAB))
}

func TestAHXStoresAccumulatorAndXAndedWithHighBytePlusOne(t *testing.T) {
	c, r := newFlatCPU(t)
	setResetVector(r, 0x8000)
	load(r, 0x8000,
		0xA9, 0xFF, // LDA #$FF
		0xA2, 0xFF, // LDX #$FF
		0xA0, 0x00, // LDY #$00
		0x9F, 0x00, 0x03, // AHX $0300,Y
	)
	c.ResetCold()
	c.Step()
	c.Step()
	c.Step()
	c.Step()

	test.Equate(t, r.Peek(0x0300), uint8(0x04))
}

func TestTASLoadsStackPointerThenStoresItAndedWithHighBytePlusOne(t *testing.T) {
	c, r := newFlatCPU(t)
	setResetVector(r, 0x8000)
	load(r, 0x8000,
		0xA9, 0x3C, // LDA #$3C
		0xA2, 0xFF, // LDX #$FF
		0xA0, 0x00, // LDY #$00
		0x9B, 0x00, 0x03, // TAS $0300,Y
	)
	c.ResetCold()
	c.Step()
	c.Step()
	c.Step()
	c.Step()

	test.Equate(t, c.SP.Value(), uint8(0x3C))
	test.Equate(t, r.Peek(0x0300), uint8(0x04))
}
