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

// Package opcode holds the static instruction table the CPU core dispatches
// through: one Definition per object code, built once at init rather than
// decoded by a giant switch. Table has 256 entries, one per possible
// opcode byte; Interrupt holds the two synthetic non-opcode entries (NMI,
// IRQ) the core dispatches through when servicing an interrupt instead of
// fetching a real opcode.
package opcode

// AddressingMode describes how an instruction's operand is located.
type AddressingMode int

const (
	Implied AddressingMode = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Relative
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndirectX // (zp,X)
	IndirectY // (zp),Y
)

func (m AddressingMode) String() string {
	switch m {
	case Implied:
		return "implied"
	case Accumulator:
		return "accumulator"
	case Immediate:
		return "immediate"
	case ZeroPage:
		return "zeropage"
	case ZeroPageX:
		return "zeropage,X"
	case ZeroPageY:
		return "zeropage,Y"
	case Relative:
		return "relative"
	case Absolute:
		return "absolute"
	case AbsoluteX:
		return "absolute,X"
	case AbsoluteY:
		return "absolute,Y"
	case Indirect:
		return "indirect"
	case IndirectX:
		return "(indirect,X)"
	case IndirectY:
		return "(indirect),Y"
	}
	return "unknown"
}

// Definition describes one object code: its mnemonic, how it addresses
// its operand, its length and base cycle count, whether that cycle count
// is extended by a page crossing, and whether the opcode is one of the
// undocumented ("illegal") combinations the 2A03 happens to decode.
type Definition struct {
	Opcode        uint8
	Mnemonic      string
	Mode          AddressingMode
	Bytes         int
	Cycles        int
	PageSensitive bool
	Illegal       bool

	// Jam is true for the handful of opcodes that lock the processor: no
	// further instructions execute until a reset.
	Jam bool
}

func (d Definition) String() string {
	return d.Mnemonic
}

func d(op uint8, mnemonic string, mode AddressingMode, bytes, cycles int, pageSensitive, illegal bool) Definition {
	return Definition{Opcode: op, Mnemonic: mnemonic, Mode: mode, Bytes: bytes, Cycles: cycles, PageSensitive: pageSensitive, Illegal: illegal}
}

func jam(op uint8) Definition {
	return Definition{Opcode: op, Mnemonic: "JAM", Mode: Implied, Bytes: 1, Cycles: 0, Illegal: true, Jam: true}
}

// Table is indexed by object code and is fully populated: every one of the
// 256 possible byte values decodes to something, even if that something is
// JAM.
var Table [256]Definition

func init() {
	rows := []Definition{
		d(0x00, "BRK", Implied, 1, 7, false, false),
		d(0x01, "ORA", IndirectX, 2, 6, false, false),
		jam(0x02),
		d(0x03, "SLO", IndirectX, 2, 8, false, true),
		d(0x04, "NOP", ZeroPage, 2, 3, false, true),
		d(0x05, "ORA", ZeroPage, 2, 3, false, false),
		d(0x06, "ASL", ZeroPage, 2, 5, false, false),
		d(0x07, "SLO", ZeroPage, 2, 5, false, true),
		d(0x08, "PHP", Implied, 1, 3, false, false),
		d(0x09, "ORA", Immediate, 2, 2, false, false),
		d(0x0A, "ASL", Accumulator, 1, 2, false, false),
		d(0x0B, "ANC", Immediate, 2, 2, false, true),
		d(0x0C, "NOP", Absolute, 3, 4, false, true),
		d(0x0D, "ORA", Absolute, 3, 4, false, false),
		d(0x0E, "ASL", Absolute, 3, 6, false, false),
		d(0x0F, "SLO", Absolute, 3, 6, false, true),

		d(0x10, "BPL", Relative, 2, 2, true, false),
		d(0x11, "ORA", IndirectY, 2, 5, true, false),
		jam(0x12),
		d(0x13, "SLO", IndirectY, 2, 8, false, true),
		d(0x14, "NOP", ZeroPageX, 2, 4, false, true),
		d(0x15, "ORA", ZeroPageX, 2, 4, false, false),
		d(0x16, "ASL", ZeroPageX, 2, 6, false, false),
		d(0x17, "SLO", ZeroPageX, 2, 6, false, true),
		d(0x18, "CLC", Implied, 1, 2, false, false),
		d(0x19, "ORA", AbsoluteY, 3, 4, true, false),
		d(0x1A, "NOP", Implied, 1, 2, false, true),
		d(0x1B, "SLO", AbsoluteY, 3, 7, false, true),
		d(0x1C, "NOP", AbsoluteX, 3, 4, true, true),
		d(0x1D, "ORA", AbsoluteX, 3, 4, true, false),
		d(0x1E, "ASL", AbsoluteX, 3, 7, false, false),
		d(0x1F, "SLO", AbsoluteX, 3, 7, false, true),

		d(0x20, "JSR", Absolute, 3, 6, false, false),
		d(0x21, "AND", IndirectX, 2, 6, false, false),
		jam(0x22),
		d(0x23, "RLA", IndirectX, 2, 8, false, true),
		d(0x24, "BIT", ZeroPage, 2, 3, false, false),
		d(0x25, "AND", ZeroPage, 2, 3, false, false),
		d(0x26, "ROL", ZeroPage, 2, 5, false, false),
		d(0x27, "RLA", ZeroPage, 2, 5, false, true),
		d(0x28, "PLP", Implied, 1, 4, false, false),
		d(0x29, "AND", Immediate, 2, 2, false, false),
		d(0x2A, "ROL", Accumulator, 1, 2, false, false),
		d(0x2B, "ANC", Immediate, 2, 2, false, true),
		d(0x2C, "BIT", Absolute, 3, 4, false, false),
		d(0x2D, "AND", Absolute, 3, 4, false, false),
		d(0x2E, "ROL", Absolute, 3, 6, false, false),
		d(0x2F, "RLA", Absolute, 3, 6, false, true),

		d(0x30, "BMI", Relative, 2, 2, true, false),
		d(0x31, "AND", IndirectY, 2, 5, true, false),
		jam(0x32),
		d(0x33, "RLA", IndirectY, 2, 8, false, true),
		d(0x34, "NOP", ZeroPageX, 2, 4, false, true),
		d(0x35, "AND", ZeroPageX, 2, 4, false, false),
		d(0x36, "ROL", ZeroPageX, 2, 6, false, false),
		d(0x37, "RLA", ZeroPageX, 2, 6, false, true),
		d(0x38, "SEC", Implied, 1, 2, false, false),
		d(0x39, "AND", AbsoluteY, 3, 4, true, false),
		d(0x3A, "NOP", Implied, 1, 2, false, true),
		d(0x3B, "RLA", AbsoluteY, 3, 7, false, true),
		d(0x3C, "NOP", AbsoluteX, 3, 4, true, true),
		d(0x3D, "AND", AbsoluteX, 3, 4, true, false),
		d(0x3E, "ROL", AbsoluteX, 3, 7, false, false),
		d(0x3F, "RLA", AbsoluteX, 3, 7, false, true),

		d(0x40, "RTI", Implied, 1, 6, false, false),
		d(0x41, "EOR", IndirectX, 2, 6, false, false),
		jam(0x42),
		d(0x43, "SRE", IndirectX, 2, 8, false, true),
		d(0x44, "NOP", ZeroPage, 2, 3, false, true),
		d(0x45, "EOR", ZeroPage, 2, 3, false, false),
		d(0x46, "LSR", ZeroPage, 2, 5, false, false),
		d(0x47, "SRE", ZeroPage, 2, 5, false, true),
		d(0x48, "PHA", Implied, 1, 3, false, false),
		d(0x49, "EOR", Immediate, 2, 2, false, false),
		d(0x4A, "LSR", Accumulator, 1, 2, false, false),
		d(0x4B, "ALR", Immediate, 2, 2, false, true),
		d(0x4C, "JMP", Absolute, 3, 3, false, false),
		d(0x4D, "EOR", Absolute, 3, 4, false, false),
		d(0x4E, "LSR", Absolute, 3, 6, false, false),
		d(0x4F, "SRE", Absolute, 3, 6, false, true),

		d(0x50, "BVC", Relative, 2, 2, true, false),
		d(0x51, "EOR", IndirectY, 2, 5, true, false),
		jam(0x52),
		d(0x53, "SRE", IndirectY, 2, 8, false, true),
		d(0x54, "NOP", ZeroPageX, 2, 4, false, true),
		d(0x55, "EOR", ZeroPageX, 2, 4, false, false),
		d(0x56, "LSR", ZeroPageX, 2, 6, false, false),
		d(0x57, "SRE", ZeroPageX, 2, 6, false, true),
		d(0x58, "CLI", Implied, 1, 2, false, false),
		d(0x59, "EOR", AbsoluteY, 3, 4, true, false),
		d(0x5A, "NOP", Implied, 1, 2, false, true),
		d(0x5B, "SRE", AbsoluteY, 3, 7, false, true),
		d(0x5C, "NOP", AbsoluteX, 3, 4, true, true),
		d(0x5D, "EOR", AbsoluteX, 3, 4, true, false),
		d(0x5E, "LSR", AbsoluteX, 3, 7, false, false),
		d(0x5F, "SRE", AbsoluteX, 3, 7, false, true),

		d(0x60, "RTS", Implied, 1, 6, false, false),
		d(0x61, "ADC", IndirectX, 2, 6, false, false),
		jam(0x62),
		d(0x63, "RRA", IndirectX, 2, 8, false, true),
		d(0x64, "NOP", ZeroPage, 2, 3, false, true),
		d(0x65, "ADC", ZeroPage, 2, 3, false, false),
		d(0x66, "ROR", ZeroPage, 2, 5, false, false),
		d(0x67, "RRA", ZeroPage, 2, 5, false, true),
		d(0x68, "PLA", Implied, 1, 4, false, false),
		d(0x69, "ADC", Immediate, 2, 2, false, false),
		d(0x6A, "ROR", Accumulator, 1, 2, false, false),
		d(0x6B, "ARR", Immediate, 2, 2, false, true),
		d(0x6C, "JMP", Indirect, 3, 5, false, false),
		d(0x6D, "ADC", Absolute, 3, 4, false, false),
		d(0x6E, "ROR", Absolute, 3, 6, false, false),
		d(0x6F, "RRA", Absolute, 3, 6, false, true),

		d(0x70, "BVS", Relative, 2, 2, true, false),
		d(0x71, "ADC", IndirectY, 2, 5, true, false),
		jam(0x72),
		d(0x73, "RRA", IndirectY, 2, 8, false, true),
		d(0x74, "NOP", ZeroPageX, 2, 4, false, true),
		d(0x75, "ADC", ZeroPageX, 2, 4, false, false),
		d(0x76, "ROR", ZeroPageX, 2, 6, false, false),
		d(0x77, "RRA", ZeroPageX, 2, 6, false, true),
		d(0x78, "SEI", Implied, 1, 2, false, false),
		d(0x79, "ADC", AbsoluteY, 3, 4, true, false),
		d(0x7A, "NOP", Implied, 1, 2, false, true),
		d(0x7B, "RRA", AbsoluteY, 3, 7, false, true),
		d(0x7C, "NOP", AbsoluteX, 3, 4, true, true),
		d(0x7D, "ADC", AbsoluteX, 3, 4, true, false),
		d(0x7E, "ROR", AbsoluteX, 3, 7, false, false),
		d(0x7F, "RRA", AbsoluteX, 3, 7, false, true),

		d(0x80, "NOP", Immediate, 2, 2, false, true),
		d(0x81, "STA", IndirectX, 2, 6, false, false),
		d(0x82, "NOP", Immediate, 2, 2, false, true),
		d(0x83, "SAX", IndirectX, 2, 6, false, true),
		d(0x84, "STY", ZeroPage, 2, 3, false, false),
		d(0x85, "STA", ZeroPage, 2, 3, false, false),
		d(0x86, "STX", ZeroPage, 2, 3, false, false),
		d(0x87, "SAX", ZeroPage, 2, 3, false, true),
		d(0x88, "DEY", Implied, 1, 2, false, false),
		d(0x89, "NOP", Immediate, 2, 2, false, true),
		d(0x8A, "TXA", Implied, 1, 2, false, false),
		d(0x8B, "XAA", Immediate, 2, 2, false, true),
		d(0x8C, "STY", Absolute, 3, 4, false, false),
		d(0x8D, "STA", Absolute, 3, 4, false, false),
		d(0x8E, "STX", Absolute, 3, 4, false, false),
		d(0x8F, "SAX", Absolute, 3, 4, false, true),

		d(0x90, "BCC", Relative, 2, 2, true, false),
		d(0x91, "STA", IndirectY, 2, 6, false, false),
		jam(0x92),
		d(0x93, "AHX", IndirectY, 2, 6, false, true),
		d(0x94, "STY", ZeroPageX, 2, 4, false, false),
		d(0x95, "STA", ZeroPageX, 2, 4, false, false),
		d(0x96, "STX", ZeroPageY, 2, 4, false, false),
		d(0x97, "SAX", ZeroPageY, 2, 4, false, true),
		d(0x98, "TYA", Implied, 1, 2, false, false),
		d(0x99, "STA", AbsoluteY, 3, 5, false, false),
		d(0x9A, "TXS", Implied, 1, 2, false, false),
		d(0x9B, "TAS", AbsoluteY, 3, 5, false, true),
		d(0x9C, "SHY", AbsoluteX, 3, 5, false, true),
		d(0x9D, "STA", AbsoluteX, 3, 5, false, false),
		d(0x9E, "SHX", AbsoluteY, 3, 5, false, true),
		d(0x9F, "AHX", AbsoluteY, 3, 5, false, true),

		d(0xA0, "LDY", Immediate, 2, 2, false, false),
		d(0xA1, "LDA", IndirectX, 2, 6, false, false),
		d(0xA2, "LDX", Immediate, 2, 2, false, false),
		d(0xA3, "LAX", IndirectX, 2, 6, false, true),
		d(0xA4, "LDY", ZeroPage, 2, 3, false, false),
		d(0xA5, "LDA", ZeroPage, 2, 3, false, false),
		d(0xA6, "LDX", ZeroPage, 2, 3, false, false),
		d(0xA7, "LAX", ZeroPage, 2, 3, false, true),
		d(0xA8, "TAY", Implied, 1, 2, false, false),
		d(0xA9, "LDA", Immediate, 2, 2, false, false),
		d(0xAA, "TAX", Implied, 1, 2, false, false),
		d(0xAB, "LAX", Immediate, 2, 2, false, true),
		d(0xAC, "LDY", Absolute, 3, 4, false, false),
		d(0xAD, "LDA", Absolute, 3, 4, false, false),
		d(0xAE, "LDX", Absolute, 3, 4, false, false),
		d(0xAF, "LAX", Absolute, 3, 4, false, true),

		d(0xB0, "BCS", Relative, 2, 2, true, false),
		d(0xB1, "LDA", IndirectY, 2, 5, true, false),
		jam(0xB2),
		d(0xB3, "LAX", IndirectY, 2, 5, true, true),
		d(0xB4, "LDY", ZeroPageX, 2, 4, false, false),
		d(0xB5, "LDA", ZeroPageX, 2, 4, false, false),
		d(0xB6, "LDX", ZeroPageY, 2, 4, false, false),
		d(0xB7, "LAX", ZeroPageY, 2, 4, false, true),
		d(0xB8, "CLV", Implied, 1, 2, false, false),
		d(0xB9, "LDA", AbsoluteY, 3, 4, true, false),
		d(0xBA, "TSX", Implied, 1, 2, false, false),
		d(0xBB, "LAS", AbsoluteY, 3, 4, true, true),
		d(0xBC, "LDY", AbsoluteX, 3, 4, true, false),
		d(0xBD, "LDA", AbsoluteX, 3, 4, true, false),
		d(0xBE, "LDX", AbsoluteY, 3, 4, true, false),
		d(0xBF, "LAX", AbsoluteY, 3, 4, true, true),

		d(0xC0, "CPY", Immediate, 2, 2, false, false),
		d(0xC1, "CMP", IndirectX, 2, 6, false, false),
		d(0xC2, "NOP", Immediate, 2, 2, false, true),
		d(0xC3, "DCP", IndirectX, 2, 8, false, true),
		d(0xC4, "CPY", ZeroPage, 2, 3, false, false),
		d(0xC5, "CMP", ZeroPage, 2, 3, false, false),
		d(0xC6, "DEC", ZeroPage, 2, 5, false, false),
		d(0xC7, "DCP", ZeroPage, 2, 5, false, true),
		d(0xC8, "INY", Implied, 1, 2, false, false),
		d(0xC9, "CMP", Immediate, 2, 2, false, false),
		d(0xCA, "DEX", Implied, 1, 2, false, false),
		d(0xCB, "AXS", Immediate, 2, 2, false, true),
		d(0xCC, "CPY", Absolute, 3, 4, false, false),
		d(0xCD, "CMP", Absolute, 3, 4, false, false),
		d(0xCE, "DEC", Absolute, 3, 6, false, false),
		d(0xCF, "DCP", Absolute, 3, 6, false, true),

		d(0xD0, "BNE", Relative, 2, 2, true, false),
		d(0xD1, "CMP", IndirectY, 2, 5, true, false),
		jam(0xD2),
		d(0xD3, "DCP", IndirectY, 2, 8, false, true),
		d(0xD4, "NOP", ZeroPageX, 2, 4, false, true),
		d(0xD5, "CMP", ZeroPageX, 2, 4, false, false),
		d(0xD6, "DEC", ZeroPageX, 2, 6, false, false),
		d(0xD7, "DCP", ZeroPageX, 2, 6, false, true),
		d(0xD8, "CLD", Implied, 1, 2, false, false),
		d(0xD9, "CMP", AbsoluteY, 3, 4, true, false),
		d(0xDA, "NOP", Implied, 1, 2, false, true),
		d(0xDB, "DCP", AbsoluteY, 3, 7, false, true),
		d(0xDC, "NOP", AbsoluteX, 3, 4, true, true),
		d(0xDD, "CMP", AbsoluteX, 3, 4, true, false),
		d(0xDE, "DEC", AbsoluteX, 3, 7, false, false),
		d(0xDF, "DCP", AbsoluteX, 3, 7, false, true),

		d(0xE0, "CPX", Immediate, 2, 2, false, false),
		d(0xE1, "SBC", IndirectX, 2, 6, false, false),
		d(0xE2, "NOP", Immediate, 2, 2, false, true),
		d(0xE3, "ISC", IndirectX, 2, 8, false, true),
		d(0xE4, "CPX", ZeroPage, 2, 3, false, false),
		d(0xE5, "SBC", ZeroPage, 2, 3, false, false),
		d(0xE6, "INC", ZeroPage, 2, 5, false, false),
		d(0xE7, "ISC", ZeroPage, 2, 5, false, true),
		d(0xE8, "INX", Implied, 1, 2, false, false),
		d(0xE9, "SBC", Immediate, 2, 2, false, false),
		d(0xEA, "NOP", Implied, 1, 2, false, false),
		d(0xEB, "SBC", Immediate, 2, 2, false, true),
		d(0xEC, "CPX", Absolute, 3, 4, false, false),
		d(0xED, "SBC", Absolute, 3, 4, false, false),
		d(0xEE, "INC", Absolute, 3, 6, false, false),
		d(0xEF, "ISC", Absolute, 3, 6, false, true),

		d(0xF0, "BEQ", Relative, 2, 2, true, false),
		d(0xF1, "SBC", IndirectY, 2, 5, true, false),
		jam(0xF2),
		d(0xF3, "ISC", IndirectY, 2, 8, false, true),
		d(0xF4, "NOP", ZeroPageX, 2, 4, false, true),
		d(0xF5, "SBC", ZeroPageX, 2, 4, false, false),
		d(0xF6, "INC", ZeroPageX, 2, 6, false, false),
		d(0xF7, "ISC", ZeroPageX, 2, 6, false, true),
		d(0xF8, "SED", Implied, 1, 2, false, false),
		d(0xF9, "SBC", AbsoluteY, 3, 4, true, false),
		d(0xFA, "NOP", Implied, 1, 2, false, true),
		d(0xFB, "ISC", AbsoluteY, 3, 7, false, true),
		d(0xFC, "NOP", AbsoluteX, 3, 4, true, true),
		d(0xFD, "SBC", AbsoluteX, 3, 4, true, false),
		d(0xFE, "INC", AbsoluteX, 3, 7, false, false),
		d(0xFF, "ISC", AbsoluteX, 3, 7, false, true),
	}

	for _, r := range rows {
		Table[r.Opcode] = r
	}
}

// InterruptKind distinguishes the three synthetic entries: NMI and IRQ,
// dispatched through when the core services an interrupt instead of
// fetching an opcode, and Reset.
type InterruptKind int

const (
	NMI InterruptKind = iota
	IRQ
	Reset
)

// Interrupt describes the synthetic 7-cycle BRK-shaped sequence used for
// NMI and IRQ servicing, and a Reset entry of the same shape; the CPU's
// ResetCold and ResetWarm load the reset vector directly and do not
// dispatch through the Reset entry. It is not indexed by object code - nothing
// on the bus ever produces these bytes - but shares Definition's shape so
// the core's dispatch loop does not need a separate code path.
func Interrupt(kind InterruptKind) Definition {
	switch kind {
	case NMI:
		return Definition{Mnemonic: "NMI", Mode: Implied, Bytes: 1, Cycles: 7}
	case IRQ:
		return Definition{Mnemonic: "IRQ", Mode: Implied, Bytes: 1, Cycles: 7}
	case Reset:
		return Definition{Mnemonic: "RESET", Mode: Implied, Bytes: 1, Cycles: 7}
	}
	panic("unreachable")
}
