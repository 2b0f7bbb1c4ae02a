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

// Package mapper094 implements iNES mapper 094 (Un1rom): PRG-ROM in 16 KiB
// banks, with $8000-$BFFF bound to a bank selected by the last byte
// written anywhere in $8000-$FFFF, and $C000-$FFFF permanently bound to
// the last bank. CHR is always RAM.
package mapper094

import (
	"fmt"

	"github.com/nescore/nescore/curated"
	nesErrors "github.com/nescore/nescore/hardware/errors"
	"github.com/nescore/nescore/hardware/memory/bus"
	"github.com/nescore/nescore/hardware/memory/cartridge"
	"github.com/nescore/nescore/hardware/memory/cartridge/mapper"
)

const bankSize = 16 * 1024

func init() {
	cartridge.Register(94, New)
}

// Mapper094 holds the full PRG image and the index of the bank currently
// bound to the selectable $8000-$BFFF window.
type Mapper094 struct {
	prg          []uint8
	prgBankCount int
	currentBank  int
	chr          []uint8
}

// New constructs a mapper094 instance. PRG must be a whole number of 16
// KiB banks.
func New(rom *cartridge.ROM) (mapper.Mapper, error) {
	if len(rom.PRG) == 0 || len(rom.PRG)%bankSize != 0 {
		return nil, curated.Errorf(nesErrors.RomMalformed, "mapper 094 requires PRG size to be a multiple of 16KiB, got %d bytes", len(rom.PRG))
	}

	chr := make([]uint8, 8*1024)
	copy(chr, rom.CHR)

	return &Mapper094{
		prg:          rom.PRG,
		prgBankCount: len(rom.PRG) / bankSize,
		chr:          chr,
	}, nil
}

func (m *Mapper094) ID() string {
	return "094"
}

func (m *Mapper094) Install(cpuBus, ppuBus *bus.Bus) {
	cpuBus.SetMirroredHandlers(0x8000, 0xBFFF, bankSize, readSelectable, writeSelect, m)
	cpuBus.SetMirroredHandlers(0xC000, 0xFFFF, bankSize, readFixed, writeSelect, m)
	ppuBus.SetMirroredHandlers(0x0000, 0x1FFF, len(m.chr), readCHR, writeCHR, m)
}

func (m *Mapper094) Step() {}

func (m *Mapper094) NumBanks() int {
	return m.prgBankCount
}

func (m *Mapper094) GetBank(addr uint16) mapper.BankInfo {
	if addr >= 0xC000 {
		return mapper.BankInfo{Number: m.prgBankCount - 1, Segment: 1}
	}
	return mapper.BankInfo{Number: m.currentBank, Segment: 0}
}

func (m *Mapper094) Snapshot() mapper.Mapper {
	cp := *m
	cp.chr = append([]uint8(nil), m.chr...)
	return &cp
}

// EncodeState implements mapper.StateCodec: the selected bank (one byte)
// followed by the full CHR-RAM image.
func (m *Mapper094) EncodeState() []uint8 {
	data := make([]uint8, 0, 1+len(m.chr))
	data = append(data, uint8(m.currentBank))
	data = append(data, m.chr...)
	return data
}

// DecodeState implements mapper.StateCodec.
func (m *Mapper094) DecodeState(data []uint8) error {
	if len(data) < 1+len(m.chr) {
		return fmt.Errorf("mapper 094 state too short: got %d bytes, want %d", len(data), 1+len(m.chr))
	}
	m.currentBank = int(data[0])
	copy(m.chr, data[1:1+len(m.chr)])
	return nil
}

func readSelectable(owner interface{}, param uint16) uint8 {
	m := owner.(*Mapper094)
	return m.prg[m.currentBank*bankSize+int(param)]
}

func readFixed(owner interface{}, param uint16) uint8 {
	m := owner.(*Mapper094)
	lastBank := m.prgBankCount - 1
	return m.prg[lastBank*bankSize+int(param)]
}

// writeSelect handles a write anywhere in $8000-$FFFF: the value written,
// not the address, selects the bank.
func writeSelect(owner interface{}, param uint16, value uint8) {
	m := owner.(*Mapper094)
	bank := int(value&0b00011100) >> 2
	m.currentBank = bank % m.prgBankCount
}

func readCHR(owner interface{}, param uint16) uint8 {
	return owner.(*Mapper094).chr[param]
}

func writeCHR(owner interface{}, param uint16, value uint8) {
	owner.(*Mapper094).chr[param] = value
}
