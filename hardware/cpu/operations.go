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

// operations maps mnemonics to their effect. Addressing has already been
// resolved into c.address/c.operand by the time one of these runs; each
// function only needs to know what the instruction does, not how its
// operand was found. Mnemonics with their own cycle shape (JMP, JSR, RTS,
// RTI, BRK, the branches) and the read-modify-write family are not listed
// here - they are built directly as micro-op sequences in microcode.go,
// the latter via rmwTransform/rmwSecondary below.
var operations map[string]func(c *CPU)

func init() {
	operations = map[string]func(c *CPU){
		"ADC": opADC,
		"SBC": opSBC,
		"AND": opAND,
		"ORA": opORA,
		"EOR": opEOR,
		"CMP": opCMP,
		"CPX": opCPX,
		"CPY": opCPY,
		"BIT": opBIT,

		"ASL": opASL,
		"LSR": opLSR,
		"ROL": opROL,
		"ROR": opROR,
		"INX": opINX,
		"INY": opINY,
		"DEX": opDEX,
		"DEY": opDEY,

		"LDA": opLDA,
		"LDX": opLDX,
		"LDY": opLDY,
		"STA": opSTA,
		"STX": opSTX,
		"STY": opSTY,

		"TAX": opTAX,
		"TAY": opTAY,
		"TXA": opTXA,
		"TYA": opTYA,
		"TSX": opTSX,
		"TXS": opTXS,

		"PHA": opPHA,
		"PHP": opPHP,
		"PLA": opPLA,
		"PLP": opPLP,

		"CLC": func(c *CPU) { c.Status.Carry = false },
		"SEC": func(c *CPU) { c.Status.Carry = true },
		"CLI": func(c *CPU) { c.Status.InterruptDisable = false },
		"SEI": func(c *CPU) { c.Status.InterruptDisable = true },
		"CLV": func(c *CPU) { c.Status.Overflow = false },
		"CLD": func(c *CPU) { c.Status.DecimalMode = false },
		"SED": func(c *CPU) { c.Status.DecimalMode = true },
		"NOP": func(c *CPU) {},

		// undocumented combinations: mostly an official read or load paired
		// with another official effect on the same cycle. The
		// read-modify-write combinations (DCP/ISC/SLO/RLA/SRE/RRA) run
		// through rmwApply instead - see rmwTransform/rmwSecondary below.
		"LAX": func(c *CPU) { opLDA(c); c.X.Load(c.A.Value()) },
		"SAX": func(c *CPU) { c.write(c.address, c.A.Value()&c.X.Value()) },
		"ANC": func(c *CPU) { opAND(c); c.Status.Carry = c.Status.Sign },
		"ALR": opALR,
		"ARR": opARR,
		"AXS": opAXS,
		"XAA": opXAA,
		"LAS": opLAS,

		// the SH* family (store-unstable, spec.md §4.1): the stored value
		// is reg ANDed with one more than the un-carried base address's
		// high byte; a page-crossing index additionally corrupts the
		// write address's own high byte to that same value.
		"SHX": func(c *CPU) { opSHStore(c, c.X.Value()) },
		"SHY": func(c *CPU) { opSHStore(c, c.Y.Value()) },
		"AHX": func(c *CPU) { opSHStore(c, c.A.Value()&c.X.Value()) },
		"TAS": opTAS,
	}
}

func opADC(c *CPU) {
	v := c.readOperand()
	carry, overflow := c.A.Add(v, c.Status.Carry)
	c.Status.Carry = carry
	c.Status.Overflow = overflow
	c.setZN(c.A.Value())
}

func opSBC(c *CPU) {
	v := c.readOperand()
	carry, overflow := c.A.Subtract(v, c.Status.Carry)
	c.Status.Carry = carry
	c.Status.Overflow = overflow
	c.setZN(c.A.Value())
}

func opAND(c *CPU) {
	c.A.AND(c.readOperand())
	c.setZN(c.A.Value())
}

func opORA(c *CPU) {
	c.A.ORA(c.readOperand())
	c.setZN(c.A.Value())
}

func opEOR(c *CPU) {
	c.A.EOR(c.readOperand())
	c.setZN(c.A.Value())
}

func compare(c *CPU, reg uint8) {
	v := c.readOperand()
	result := reg - v
	c.Status.Carry = reg >= v
	c.setZN(result)
}

func opCMP(c *CPU) { compare(c, c.A.Value()) }
func opCPX(c *CPU) { compare(c, c.X.Value()) }
func opCPY(c *CPU) { compare(c, c.Y.Value()) }

func opBIT(c *CPU) {
	v := c.readOperand()
	c.Status.Zero = c.A.Value()&v == 0
	c.Status.Sign = v&0x80 != 0
	c.Status.Overflow = v&0x40 != 0
}

// readOperand returns the operand byte the addressing micro-op already
// fetched into c.operand.
func (c *CPU) readOperand() uint8 {
	return c.operand
}

// opASL/opLSR/opROL/opROR are the accumulator-only (2-cycle, Accumulator
// addressing mode) shift/rotate forms; the memory read-modify-write forms
// are transformASL/transformLSR/transformROL/transformROR below, applied
// through rmwApply after an explicit dummy write.
func opASL(c *CPU) {
	carry := c.A.ASL()
	c.Status.Carry = carry
	c.setZN(c.A.Value())
}

func opLSR(c *CPU) {
	carry := c.A.LSR()
	c.Status.Carry = carry
	c.setZN(c.A.Value())
}

func opROL(c *CPU) {
	carry := c.A.ROL(c.Status.Carry)
	c.Status.Carry = carry
	c.setZN(c.A.Value())
}

func opROR(c *CPU) {
	carry := c.A.ROR(c.Status.Carry)
	c.Status.Carry = carry
	c.setZN(c.A.Value())
}

// transformASL/transformLSR/transformROL/transformROR/transformINC/
// transformDEC compute a read-modify-write instruction's new byte and set
// flags, without touching the bus themselves - rmwApply writes the result
// after an explicit dummy write of the original byte (spec.md §8 boundary
// case 10; mapper094's SelectBank write handler reacting to the dummy
// write before the real one is the concrete consequence of skipping it).
func transformASL(c *CPU, v uint8) uint8 {
	c.Status.Carry = v&0x80 != 0
	v <<= 1
	c.setZN(v)
	return v
}

func transformLSR(c *CPU, v uint8) uint8 {
	c.Status.Carry = v&0x01 != 0
	v >>= 1
	c.setZN(v)
	return v
}

func transformROL(c *CPU, v uint8) uint8 {
	carry := v&0x80 != 0
	v <<= 1
	if c.Status.Carry {
		v |= 0x01
	}
	c.Status.Carry = carry
	c.setZN(v)
	return v
}

func transformROR(c *CPU, v uint8) uint8 {
	carry := v&0x01 != 0
	v >>= 1
	if c.Status.Carry {
		v |= 0x80
	}
	c.Status.Carry = carry
	c.setZN(v)
	return v
}

func transformINC(c *CPU, v uint8) uint8 { v++; c.setZN(v); return v }
func transformDEC(c *CPU, v uint8) uint8 { v--; c.setZN(v); return v }

// secondarySLO/secondaryRLA/secondarySRE/secondaryRRA/secondaryDCP/
// secondaryISC apply the illegal read-modify-write opcodes' second,
// accumulator-facing effect. They take the already-transformed byte, not
// the stale pre-transform operand.
func secondarySLO(c *CPU, v uint8) { c.A.ORA(v); c.setZN(c.A.Value()) }
func secondaryRLA(c *CPU, v uint8) { c.A.AND(v); c.setZN(c.A.Value()) }
func secondarySRE(c *CPU, v uint8) { c.A.EOR(v); c.setZN(c.A.Value()) }

func secondaryRRA(c *CPU, v uint8) {
	carry, overflow := c.A.Add(v, c.Status.Carry)
	c.Status.Carry = carry
	c.Status.Overflow = overflow
	c.setZN(c.A.Value())
}

func secondaryDCP(c *CPU, v uint8) {
	result := c.A.Value() - v
	c.Status.Carry = c.A.Value() >= v
	c.setZN(result)
}

func secondaryISC(c *CPU, v uint8) {
	carry, overflow := c.A.Subtract(v, c.Status.Carry)
	c.Status.Carry = carry
	c.Status.Overflow = overflow
	c.setZN(c.A.Value())
}

// rmwTransform and rmwSecondary drive every read-modify-write mnemonic,
// real and illegal alike, through the same shape: transform the operand,
// write it back, then (for the illegal combinations) fold it into A.
var rmwTransform = map[string]func(c *CPU, v uint8) uint8{
	"ASL": transformASL, "LSR": transformLSR, "ROL": transformROL, "ROR": transformROR,
	"INC": transformINC, "DEC": transformDEC,
	"SLO": transformASL, "RLA": transformROL, "SRE": transformLSR, "RRA": transformROR,
	"ISC": transformINC, "DCP": transformDEC,
}

var rmwSecondary = map[string]func(c *CPU, v uint8){
	"SLO": secondarySLO, "RLA": secondaryRLA, "SRE": secondarySRE, "RRA": secondaryRRA,
	"ISC": secondaryISC, "DCP": secondaryDCP,
}

// rmwApply performs a read-modify-write instruction's modify-and-store
// step. The caller has already performed the dummy write of the
// unmodified operand as its own micro-op.
func rmwApply(c *CPU, mnemonic string) {
	newVal := rmwTransform[mnemonic](c, c.operand)
	c.write(c.address, newVal)
	if secondary, ok := rmwSecondary[mnemonic]; ok {
		secondary(c, newVal)
	}
}

func opINX(c *CPU) { c.X.Load(c.X.Value() + 1); c.setZN(c.X.Value()) }
func opINY(c *CPU) { c.Y.Load(c.Y.Value() + 1); c.setZN(c.Y.Value()) }
func opDEX(c *CPU) { c.X.Load(c.X.Value() - 1); c.setZN(c.X.Value()) }
func opDEY(c *CPU) { c.Y.Load(c.Y.Value() - 1); c.setZN(c.Y.Value()) }

func opLDA(c *CPU) { c.A.Load(c.operand); c.setZN(c.A.Value()) }
func opLDX(c *CPU) { c.X.Load(c.operand); c.setZN(c.X.Value()) }
func opLDY(c *CPU) { c.Y.Load(c.operand); c.setZN(c.Y.Value()) }

func opSTA(c *CPU) { c.write(c.address, c.A.Value()) }
func opSTX(c *CPU) { c.write(c.address, c.X.Value()) }
func opSTY(c *CPU) { c.write(c.address, c.Y.Value()) }

func opTAX(c *CPU) { c.X.Load(c.A.Value()); c.setZN(c.X.Value()) }
func opTAY(c *CPU) { c.Y.Load(c.A.Value()); c.setZN(c.Y.Value()) }
func opTXA(c *CPU) { c.A.Load(c.X.Value()); c.setZN(c.A.Value()) }
func opTYA(c *CPU) { c.A.Load(c.Y.Value()); c.setZN(c.A.Value()) }
func opTSX(c *CPU) { c.X.Load(c.SP.Value()); c.setZN(c.X.Value()) }
func opTXS(c *CPU) { c.SP.Load(c.X.Value()) }

func opPHA(c *CPU) { c.push(c.A.Value()) }
func opPLA(c *CPU) { c.A.Load(c.pull()); c.setZN(c.A.Value()) }

func opPHP(c *CPU) {
	sr := c.Status
	sr.Break = true
	c.push(sr.Value())
}

func opPLP(c *CPU) {
	v := c.pull()
	c.Status.FromValue(v)
	c.Status.Break = false
}

// opAXS (also known as SBX) ANDs A with X, then subtracts the operand from
// that without involving the carry flag, storing the result in X.
func opAXS(c *CPU) {
	v := c.readOperand()
	r := c.A.Value() & c.X.Value()
	result := r - v
	c.Status.Carry = r >= v
	c.X.Load(result)
	c.setZN(result)
}

// opXAA (also known as ANE) is one of the genuinely unstable undocumented
// opcodes: real silicon ORs A with a chip-specific "magic" constant before
// ANDing with X and the operand. 0xEE is the best-documented value and
// the one spec.md names.
func opXAA(c *CPU) {
	const magic = 0xEE
	c.A.Load((c.A.Value() | magic) & c.X.Value() & c.readOperand())
	c.setZN(c.A.Value())
}

// opLAS ANDs the memory operand with the stack pointer, loading the
// result into A, X and S all at once.
func opLAS(c *CPU) {
	v := c.readOperand() & c.SP.Value()
	c.A.Load(v)
	c.X.Load(v)
	c.SP.Load(v)
	c.setZN(v)
}

// opALR (also known as ASR) ANDs A with the operand, then logical-shifts A
// right by one - always on the accumulator itself, never through memory,
// regardless of Immediate addressing mode's c.address/c.operand meaning.
func opALR(c *CPU) {
	c.A.AND(c.readOperand())
	carry := c.A.LSR()
	c.Status.Carry = carry
	c.setZN(c.A.Value())
}

// opARR ANDs A with the operand, then rotates A right through carry -
// again always on the accumulator. Its flags are not the standard ROR
// flags: C is bit 6 of the result, V is bit 6 XOR bit 5.
func opARR(c *CPU) {
	c.A.AND(c.readOperand())
	v := c.A.Value() >> 1
	if c.Status.Carry {
		v |= 0x80
	}
	c.A.Load(v)
	c.Status.Carry = v&0x40 != 0
	c.Status.Overflow = (v&0x40 != 0) != (v&0x20 != 0)
	c.setZN(v)
}

// opSHStore implements the store side of the SH* family (SHX/SHY/AHX):
// reg ANDed with one more than the high byte of the address's
// pre-index-carry page. If indexing crossed a page boundary, that
// corrupted byte also replaces the actual write address's high byte
// instead of the correctly-carried one - the well-known "high byte
// corruption" quirk spec.md names as the implemented variant.
func opSHStore(c *CPU, reg uint8) {
	baseHigh := uint8(c.address >> 8)
	if c.boundaryCrossed {
		baseHigh--
	}
	v := reg & (baseHigh + 1)

	addr := c.address
	if c.boundaryCrossed {
		addr = (addr &^ 0xFF00) | uint16(v)<<8
	}
	c.write(addr, v)
}

// opTAS (also known as SHS) first loads S with A&X, then performs the
// same unstable store as SHX/SHY/AHX using the new S value as reg.
func opTAS(c *CPU) {
	c.SP.Load(c.A.Value() & c.X.Value())
	opSHStore(c, c.SP.Value())
}
