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

// This file builds the per-instruction micro-op program: the opcode byte
// having already been fetched, buildProgram assembles a []microOp, one
// entry per remaining cycle, each doing at most one bus half-cycle's worth
// of work. TickPhi2 runs one entry per tick; Step runs the whole program
// back to back. Either way the same functions execute in the same order,
// so the bus trace is identical whichever driver is used.
//
// A handful of addressing modes (AbsoluteX/Y read, IndirectY read, and the
// branches) cannot decide at build time whether their extra cycle is
// needed, because that decision depends on a byte a later micro-op in the
// same program hasn't fetched yet. Rather than build every possible shape
// up front and pick one, these use a subtractive process: the program is
// built at its maximum length, and the micro-op that learns the outcome
// truncates c.program to cut the now-unneeded tail short.
package cpu

import (
	"github.com/nescore/nescore/hardware/cpu/execution"
	"github.com/nescore/nescore/hardware/cpu/opcode"
	"github.com/nescore/nescore/hardware/memory/memorymap"
)

// microOp is one cycle's worth of work on an in-flight instruction.
type microOp func(c *CPU)

type indexReg int

const (
	registerX indexReg = iota
	registerY
)

func (c *CPU) indexValue(r indexReg) uint8 {
	if r == registerX {
		return c.X.Value()
	}
	return c.Y.Value()
}

// storeMnemonics holds every mnemonic whose addressing-mode builder should
// skip the final operand read (the value comes from a register, not
// memory) and instead perform a single write as its last cycle.
var storeMnemonics = map[string]bool{
	"STA": true, "STX": true, "STY": true, "SAX": true,
	"SHX": true, "SHY": true, "AHX": true, "TAS": true,
}

// rmwMnemonics holds every mnemonic whose addressing-mode builder should
// read the operand, perform a dummy write of the unmodified byte, then
// apply rmwApply to transform and write it back.
var rmwMnemonics = map[string]bool{
	"ASL": true, "LSR": true, "ROL": true, "ROR": true, "INC": true, "DEC": true,
	"SLO": true, "RLA": true, "SRE": true, "RRA": true, "ISC": true, "DCP": true,
}

// branchConditions maps each branch mnemonic to the flag test that decides
// whether it is taken.
var branchConditions = map[string]func(c *CPU) bool{
	"BCC": func(c *CPU) bool { return !c.Status.Carry },
	"BCS": func(c *CPU) bool { return c.Status.Carry },
	"BEQ": func(c *CPU) bool { return c.Status.Zero },
	"BNE": func(c *CPU) bool { return !c.Status.Zero },
	"BMI": func(c *CPU) bool { return c.Status.Sign },
	"BPL": func(c *CPU) bool { return !c.Status.Sign },
	"BVC": func(c *CPU) bool { return !c.Status.Overflow },
	"BVS": func(c *CPU) bool { return c.Status.Overflow },
}

// buildProgram assembles the micro-op sequence for the cycles remaining
// after def's opcode byte has already been fetched. Mnemonics with their
// own cycle shape are dispatched first; everything else is built generically
// from its addressing mode.
func buildProgram(c *CPU, def opcode.Definition) []microOp {
	op := operations[def.Mnemonic]

	switch def.Mnemonic {
	case "JMP":
		if def.Mode == opcode.Indirect {
			return buildJMPIndirect()
		}
		return buildJMPAbsolute()
	case "JSR":
		return buildJSR()
	case "RTS":
		return buildRTS()
	case "RTI":
		return buildRTI()
	case "BRK":
		return buildBRK()
	case "PHA", "PHP":
		return buildPush(op)
	case "PLA", "PLP":
		return buildPull(op)
	}

	if cond, ok := branchConditions[def.Mnemonic]; ok {
		return buildBranch(c, cond)
	}

	if op == nil && !rmwMnemonics[def.Mnemonic] {
		return nil
	}

	switch def.Mode {
	case opcode.Implied, opcode.Accumulator:
		return buildImplied(op)
	case opcode.Immediate:
		return buildImmediate(op)
	case opcode.ZeroPage:
		return buildZeroPage(c, def, op)
	case opcode.ZeroPageX:
		return buildZeroPageIndexed(c, def, op, registerX)
	case opcode.ZeroPageY:
		return buildZeroPageIndexed(c, def, op, registerY)
	case opcode.Absolute:
		return buildAbsolute(c, def, op)
	case opcode.AbsoluteX:
		return buildAbsoluteIndexed(c, def, op, registerX)
	case opcode.AbsoluteY:
		return buildAbsoluteIndexed(c, def, op, registerY)
	case opcode.IndirectX:
		return buildIndirectX(c, def, op)
	case opcode.IndirectY:
		return buildIndirectY(c, def, op)
	}
	return nil
}

// buildImplied covers the 2-cycle implied and accumulator-mode
// instructions: a single cycle both reads (the dummy PC read every implied
// instruction performs) and applies the effect.
func buildImplied(op func(c *CPU)) []microOp {
	return []microOp{
		func(c *CPU) {
			c.read(c.PC.Address())
			op(c)
		},
	}
}

// buildImmediate covers the 2-cycle immediate mode: one cycle fetches the
// operand byte and applies the effect in the same micro-op (real hardware
// does both in the same cycle too - there's nothing left to do afterwards).
func buildImmediate(op func(c *CPU)) []microOp {
	return []microOp{
		func(c *CPU) {
			c.operand = c.fetchByte()
			op(c)
		},
	}
}

func buildZeroPage(c *CPU, def opcode.Definition, op func(c *CPU)) []microOp {
	mnemonic := def.Mnemonic
	switch {
	case storeMnemonics[mnemonic]:
		return []microOp{
			func(c *CPU) { c.address = uint16(c.fetchByte()) },
			func(c *CPU) { op(c) },
		}
	case rmwMnemonics[mnemonic]:
		return []microOp{
			func(c *CPU) { c.address = uint16(c.fetchByte()) },
			func(c *CPU) { c.operand = c.read(c.address) },
			func(c *CPU) { c.write(c.address, c.operand) },
			func(c *CPU) { rmwApply(c, mnemonic) },
		}
	default:
		return []microOp{
			func(c *CPU) { c.address = uint16(c.fetchByte()) },
			func(c *CPU) {
				c.operand = c.read(c.address)
				op(c)
			},
		}
	}
}

func buildZeroPageIndexed(c *CPU, def opcode.Definition, op func(c *CPU), reg indexReg) []microOp {
	mnemonic := def.Mnemonic
	fetchZP := func(c *CPU) { c.zp = c.fetchByte() }
	addIndex := func(c *CPU) {
		c.read(uint16(c.zp)) // dummy read at unindexed zero-page address
		idx := c.indexValue(reg)
		if uint16(c.zp)+uint16(idx) > 0xFF {
			c.triggeredBug = execution.ZeroPageIndexWrap
		}
		c.address = uint16(c.zp + idx)
	}

	switch {
	case storeMnemonics[mnemonic]:
		return []microOp{
			fetchZP,
			addIndex,
			func(c *CPU) { op(c) },
		}
	case rmwMnemonics[mnemonic]:
		return []microOp{
			fetchZP,
			addIndex,
			func(c *CPU) { c.operand = c.read(c.address) },
			func(c *CPU) { c.write(c.address, c.operand) },
			func(c *CPU) { rmwApply(c, mnemonic) },
		}
	default:
		return []microOp{
			fetchZP,
			addIndex,
			func(c *CPU) {
				c.operand = c.read(c.address)
				op(c)
			},
		}
	}
}

func buildAbsolute(c *CPU, def opcode.Definition, op func(c *CPU)) []microOp {
	mnemonic := def.Mnemonic
	fetchLo := func(c *CPU) { c.lo = c.fetchByte() }
	fetchHi := func(c *CPU) { c.hi = c.fetchByte(); c.address = uint16(c.lo) | uint16(c.hi)<<8 }

	switch {
	case storeMnemonics[mnemonic]:
		return []microOp{
			fetchLo,
			fetchHi,
			func(c *CPU) { op(c) },
		}
	case rmwMnemonics[mnemonic]:
		return []microOp{
			fetchLo,
			fetchHi,
			func(c *CPU) { c.operand = c.read(c.address) },
			func(c *CPU) { c.write(c.address, c.operand) },
			func(c *CPU) { rmwApply(c, mnemonic) },
		}
	default:
		return []microOp{
			fetchLo,
			fetchHi,
			func(c *CPU) {
				c.operand = c.read(c.address)
				op(c)
			},
		}
	}
}

// buildAbsoluteIndexed covers AbsoluteX/AbsoluteY. Reads take 4 cycles with
// an extra one only on a page crossing, decided - via truncation - once
// the high byte is known; RMW and store variants are always the slow, fixed
// length with an unconditional dummy read at the uncorrected address.
func buildAbsoluteIndexed(c *CPU, def opcode.Definition, op func(c *CPU), reg indexReg) []microOp {
	mnemonic := def.Mnemonic
	fetchLo := func(c *CPU) { c.lo = c.fetchByte() }
	fetchHi := func(c *CPU) { c.hi = c.fetchByte() }
	computeAddress := func(c *CPU) uint16 {
		base := uint16(c.lo) | uint16(c.hi)<<8
		idx := c.indexValue(reg)
		addr := base + uint16(idx)
		c.boundaryCrossed = base&0xFF00 != addr&0xFF00
		return addr
	}
	uncorrected := func(c *CPU) uint16 {
		return (uint16(c.hi) << 8) | uint16(uint8(c.lo)+c.indexValue(reg))
	}

	switch {
	case storeMnemonics[mnemonic]:
		return []microOp{
			fetchLo,
			fetchHi,
			func(c *CPU) {
				c.read(uncorrected(c)) // dummy read, always performed
				c.address = computeAddress(c)
			},
			func(c *CPU) { op(c) },
		}
	case rmwMnemonics[mnemonic]:
		return []microOp{
			fetchLo,
			fetchHi,
			func(c *CPU) {
				c.read(uncorrected(c)) // dummy read, always performed
				c.address = computeAddress(c)
			},
			func(c *CPU) { c.operand = c.read(c.address) },
			func(c *CPU) { c.write(c.address, c.operand) },
			func(c *CPU) { rmwApply(c, mnemonic) },
		}
	default:
		return []microOp{
			fetchLo,
			fetchHi,
			func(c *CPU) {
				c.address = computeAddress(c)
				if !c.boundaryCrossed {
					c.operand = c.read(c.address)
					op(c)
					c.program = c.program[:c.funcIdx+1]
					return
				}
				c.read(uncorrected(c)) // dummy read at the uncorrected address
			},
			func(c *CPU) {
				c.operand = c.read(c.address)
				op(c)
			},
		}
	}
}

// buildIndirectX covers (zp,X): always 6/8 cycles, no page-cross case
// exists since the pointer lookup itself is confined to page zero.
func buildIndirectX(c *CPU, def opcode.Definition, op func(c *CPU)) []microOp {
	mnemonic := def.Mnemonic
	fetchZP := func(c *CPU) { c.zp = c.fetchByte() }
	addIndex := func(c *CPU) {
		c.read(uint16(c.zp)) // dummy read during the index add
		if uint16(c.zp)+uint16(c.X.Value()) > 0xFF {
			c.triggeredBug = execution.ZeroPageIndexWrap
		}
		c.ptr = c.zp + c.X.Value()
	}
	fetchPtrLo := func(c *CPU) { c.lo = c.read(uint16(c.ptr)) }
	fetchPtrHi := func(c *CPU) {
		c.hi = c.read(uint16(c.ptr + 1))
		c.address = uint16(c.lo) | uint16(c.hi)<<8
	}

	switch {
	case storeMnemonics[mnemonic]:
		return []microOp{
			fetchZP, addIndex, fetchPtrLo, fetchPtrHi,
			func(c *CPU) { op(c) },
		}
	case rmwMnemonics[mnemonic]:
		return []microOp{
			fetchZP, addIndex, fetchPtrLo, fetchPtrHi,
			func(c *CPU) { c.operand = c.read(c.address) },
			func(c *CPU) { c.write(c.address, c.operand) },
			func(c *CPU) { rmwApply(c, mnemonic) },
		}
	default:
		return []microOp{
			fetchZP, addIndex, fetchPtrLo, fetchPtrHi,
			func(c *CPU) {
				c.operand = c.read(c.address)
				op(c)
			},
		}
	}
}

// buildIndirectY covers (zp),Y. As with AbsoluteX/Y, reads are the only
// shape whose length depends on the page crossing decided once Y has been
// added to the fetched pointer.
func buildIndirectY(c *CPU, def opcode.Definition, op func(c *CPU)) []microOp {
	mnemonic := def.Mnemonic
	fetchZP := func(c *CPU) { c.zp = c.fetchByte() }
	readPtrLo := func(c *CPU) { c.lo = c.read(uint16(c.zp)) }
	readPtrHi := func(c *CPU) { c.hi = c.read(uint16(c.zp + 1)) }
	computeAddress := func(c *CPU) uint16 {
		base := uint16(c.lo) | uint16(c.hi)<<8
		addr := base + uint16(c.Y.Value())
		c.boundaryCrossed = base&0xFF00 != addr&0xFF00
		return addr
	}
	uncorrected := func(c *CPU) uint16 {
		return (uint16(c.hi) << 8) | uint16(c.lo+c.Y.Value())
	}

	switch {
	case storeMnemonics[mnemonic]:
		return []microOp{
			fetchZP, readPtrLo, readPtrHi,
			func(c *CPU) {
				c.read(uncorrected(c)) // dummy read, always performed
				c.address = computeAddress(c)
			},
			func(c *CPU) { op(c) },
		}
	case rmwMnemonics[mnemonic]:
		return []microOp{
			fetchZP, readPtrLo, readPtrHi,
			func(c *CPU) {
				c.read(uncorrected(c)) // dummy read, always performed
				c.address = computeAddress(c)
			},
			func(c *CPU) { c.operand = c.read(c.address) },
			func(c *CPU) { c.write(c.address, c.operand) },
			func(c *CPU) { rmwApply(c, mnemonic) },
		}
	default:
		return []microOp{
			fetchZP, readPtrLo, readPtrHi,
			func(c *CPU) {
				c.address = computeAddress(c)
				if !c.boundaryCrossed {
					c.operand = c.read(c.address)
					op(c)
					c.program = c.program[:c.funcIdx+1]
					return
				}
				c.read(uncorrected(c)) // dummy read at the uncorrected address
			},
			func(c *CPU) {
				c.operand = c.read(c.address)
				op(c)
			},
		}
	}
}

// buildJMPAbsolute covers both plain JMP nnnn (3 cycles).
func buildJMPAbsolute() []microOp {
	return []microOp{
		func(c *CPU) { c.lo = c.fetchByte() },
		func(c *CPU) {
			c.hi = c.fetchByte()
			c.PC.Load(uint16(c.lo) | uint16(c.hi)<<8)
		},
	}
}

// buildJMPIndirect covers JMP (nnnn) (5 cycles), including the page-wrap
// bug: the indirect pointer's high byte is fetched from (ptr&0xFF00)|
// ((ptr+1)&0x00FF), never carrying into the next page.
func buildJMPIndirect() []microOp {
	return []microOp{
		func(c *CPU) { c.lo = c.fetchByte() },
		func(c *CPU) { c.hi = c.fetchByte() },
		func(c *CPU) {
			ptr := uint16(c.lo) | uint16(c.hi)<<8
			if ptr&0x00FF == 0x00FF {
				c.triggeredBug = execution.JmpIndirectPageWrap
			}
			c.ptr = uint8(ptr)
			c.lo = c.read(ptr)
		},
		func(c *CPU) {
			ptr := uint16(c.hi)<<8 | uint16(c.ptr)
			hiAddr := (ptr & 0xFF00) | ((ptr + 1) & 0x00FF)
			c.hi = c.read(hiAddr)
			c.PC.Load(uint16(c.lo) | uint16(c.hi)<<8)
		},
	}
}

// buildJSR covers JSR nnnn (6 cycles): fetch the low byte, an internal
// dummy cycle at the stack pointer, push the return address high-then-low,
// then fetch the high byte and jump. The pushed return address is simply
// PC as it stands after the low-byte fetch - pointing at the not-yet-read
// high operand byte - which is exactly address+2 from the opcode.
func buildJSR() []microOp {
	return []microOp{
		func(c *CPU) { c.lo = c.fetchByte() },
		func(c *CPU) { c.read(c.SP.Address()) }, // internal dummy read, SP untouched
		func(c *CPU) { c.push(uint8(c.PC.Address() >> 8)) },
		func(c *CPU) { c.push(uint8(c.PC.Address())) },
		func(c *CPU) {
			c.hi = c.fetchByte()
			c.PC.Load(uint16(c.lo) | uint16(c.hi)<<8)
		},
	}
}

// buildRTS covers RTS (6 cycles): two internal dummy cycles, pull the
// return address low-then-high, then load PC and advance past the JSR's
// operand in one final internal cycle.
func buildRTS() []microOp {
	return []microOp{
		func(c *CPU) { c.read(c.PC.Address()) },
		func(c *CPU) { c.read(c.SP.Address()) },
		func(c *CPU) { c.lo = c.pull() },
		func(c *CPU) { c.hi = c.pull() },
		func(c *CPU) {
			c.PC.Load(uint16(c.lo) | uint16(c.hi)<<8)
			c.PC.Add(1)
		},
	}
}

// buildRTI covers RTI (6 cycles): two internal dummy cycles, pull status,
// then pull the return address low-then-high and load PC directly (RTI,
// unlike RTS, does not advance past its own operand - there wasn't one).
func buildRTI() []microOp {
	return []microOp{
		func(c *CPU) { c.read(c.PC.Address()) },
		func(c *CPU) { c.read(c.SP.Address()) },
		func(c *CPU) {
			v := c.pull()
			c.Status.FromValue(v)
			c.Status.Break = false
		},
		func(c *CPU) { c.lo = c.pull() },
		func(c *CPU) {
			c.hi = c.pull()
			c.PC.Load(uint16(c.lo) | uint16(c.hi)<<8)
		},
	}
}

// buildBRK covers software BRK (7 cycles): read and discard the signature
// byte following the opcode, push PC and status with Break set, then fetch
// the vector - deciding as late as possible whether a pending NMI hijacks
// the vector fetch, exactly as the interrupt-service sequence does.
func buildBRK() []microOp {
	return []microOp{
		func(c *CPU) { c.read(c.PC.Address()); c.PC.Add(1) },
		func(c *CPU) { c.push(uint8(c.PC.Address() >> 8)) },
		func(c *CPU) { c.push(uint8(c.PC.Address())) },
		func(c *CPU) {
			sr := c.Status
			sr.Break = true
			c.push(sr.Value())
			c.Status.InterruptDisable = true
		},
		func(c *CPU) {
			vector := memorymap.VectorIRQ
			if c.nmiPending {
				vector = memorymap.VectorNMI
				c.nmiPending = false
			}
			c.address = vector
			c.lo = c.read(vector)
		},
		func(c *CPU) {
			hi := c.read(c.address + 1)
			c.PC.Load(uint16(c.lo) | uint16(hi)<<8)
		},
	}
}

// buildPush covers PHA/PHP (3 cycles): a dummy PC read, then the push.
func buildPush(op func(c *CPU)) []microOp {
	return []microOp{
		func(c *CPU) { c.read(c.PC.Address()) },
		func(c *CPU) { op(c) },
	}
}

// buildPull covers PLA/PLP (4 cycles): a dummy PC read, a dummy read at
// the pre-increment stack address, then the pull and apply.
func buildPull(op func(c *CPU)) []microOp {
	return []microOp{
		func(c *CPU) { c.read(c.PC.Address()) },
		func(c *CPU) { c.read(c.SP.Address()) },
		func(c *CPU) { op(c) },
	}
}

// buildBranch covers every Bxx mnemonic, 2/3/4 cycles via the subtractive
// process described at the top of this file: the offset-fetch cycle
// truncates immediately if the branch isn't taken; the PC-update cycle
// performs a dummy read at PC (the byte after the offset) and truncates
// unless the target lies in another page, in which case one more cycle
// performs a dummy read at the target before committing it to PC.
func buildBranch(c *CPU, cond func(c *CPU) bool) []microOp {
	return []microOp{
		func(c *CPU) {
			c.operand = c.fetchByte()
			if !cond(c) {
				c.program = c.program[:c.funcIdx+1]
			}
		},
		func(c *CPU) {
			base := c.PC.Address()
			c.read(base) // dummy read of the byte after the offset
			target := base + uint16(int8(c.operand))
			c.address = target
			c.boundaryCrossed = base&0xFF00 != target&0xFF00
			if !c.boundaryCrossed {
				c.PC.Load(target)
				c.program = c.program[:c.funcIdx+1]
			}
		},
		func(c *CPU) {
			c.read(c.address) // dummy read at the page-fixed target
			c.PC.Load(c.address)
		},
	}
}

// buildInterruptProgram assembles the self-contained 7-cycle NMI/IRQ
// service sequence: two internal dummy cycles (standing in for the
// aborted instruction fetch and its follow-up), then the same push and
// vector-fetch shape as BRK, except the pushed status has Break clear and
// kind itself (rather than a possible mid-sequence hijack) picks IRQ vs
// NMI - except that servicing an IRQ while an NMI has since been latched
// still redirects to the NMI vector, matching real hardware's BRK/IRQ/NMI
// vector-fetch hijack.
func buildInterruptProgram(kind opcode.InterruptKind) []microOp {
	return []microOp{
		func(c *CPU) { c.read(c.PC.Address()) },
		func(c *CPU) { c.read(c.PC.Address()) },
		func(c *CPU) { c.push(uint8(c.PC.Address() >> 8)) },
		func(c *CPU) { c.push(uint8(c.PC.Address())) },
		func(c *CPU) {
			sr := c.Status
			sr.Break = false
			c.push(sr.Value())
			c.Status.InterruptDisable = true
		},
		func(c *CPU) {
			vector := memorymap.VectorIRQ
			if kind == opcode.NMI {
				vector = memorymap.VectorNMI
			}
			if kind != opcode.NMI && c.nmiPending {
				vector = memorymap.VectorNMI
				c.nmiPending = false
			}
			c.address = vector
			c.lo = c.read(vector)
		},
		func(c *CPU) {
			hi := c.read(c.address + 1)
			c.PC.Load(uint16(c.lo) | uint16(hi)<<8)
		},
	}
}
