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

// Package mapper000 implements NROM, the no-bank-switching mapper used by
// the earliest NES cartridges: 16 or 32 KiB of fixed PRG-ROM and a single
// 8 KiB CHR bank, ROM or RAM depending on whether the iNES header declared
// any CHR data at all.
package mapper000

import (
	"fmt"

	"github.com/nescore/nescore/curated"
	nesErrors "github.com/nescore/nescore/hardware/errors"
	"github.com/nescore/nescore/hardware/memory/bus"
	"github.com/nescore/nescore/hardware/memory/cartridge"
	"github.com/nescore/nescore/hardware/memory/cartridge/mapper"
)

func init() {
	cartridge.Register(0, New)
}

// Mapper000 is NROM. There is nothing to switch: PRG-ROM is mirrored
// across $8000-$FFFF at its own size (16 KiB mirrors twice, 32 KiB fills
// the window once), and CHR is a single fixed bank.
type Mapper000 struct {
	prg    []uint8
	chr    []uint8
	chrRAM bool
	prgRAM []uint8
}

// New constructs an NROM mapper. PRG must be exactly 16 or 32 KiB, the
// only two sizes the real board supports.
func New(rom *cartridge.ROM) (mapper.Mapper, error) {
	if len(rom.PRG) != 16*1024 && len(rom.PRG) != 32*1024 {
		return nil, curated.Errorf(nesErrors.RomMalformed, "NROM requires 16KiB or 32KiB PRG, got %d bytes", len(rom.PRG))
	}

	chr := rom.CHR
	chrRAM := false
	if len(chr) == 0 {
		chr = make([]uint8, 8*1024)
		chrRAM = true
	}

	return &Mapper000{
		prg:    rom.PRG,
		chr:    chr,
		chrRAM: chrRAM,
		prgRAM: make([]uint8, rom.PRGRAMSize),
	}, nil
}

func (m *Mapper000) ID() string {
	return "NROM"
}

func (m *Mapper000) Install(cpuBus, ppuBus *bus.Bus) {
	cpuBus.SetMirroredHandlers(0x8000, 0xFFFF, len(m.prg), readPRG, writePRG, m)
	if len(m.prgRAM) > 0 {
		cpuBus.SetMirroredHandlers(0x6000, 0x7FFF, len(m.prgRAM), readPRGRAM, writePRGRAM, m)
	}
	ppuBus.SetMirroredHandlers(0x0000, 0x1FFF, len(m.chr), readCHR, writeCHR, m)
}

func (m *Mapper000) Step() {}

func (m *Mapper000) NumBanks() int {
	return 1
}

func (m *Mapper000) GetBank(addr uint16) mapper.BankInfo {
	if addr < 0x8000 {
		return mapper.BankInfo{Number: 0, Segment: 0, IsRAM: true}
	}
	return mapper.BankInfo{Number: 0, Segment: 0}
}

func (m *Mapper000) Snapshot() mapper.Mapper {
	cp := *m
	cp.prgRAM = append([]uint8(nil), m.prgRAM...)
	if m.chrRAM {
		cp.chr = append([]uint8(nil), m.chr...)
	}
	return &cp
}

// EncodeState implements mapper.StateCodec. NROM has no bank to select;
// the only mutable state is PRG-RAM (if the cartridge has any) and CHR-RAM
// (if CHR is not ROM).
func (m *Mapper000) EncodeState() []uint8 {
	data := make([]uint8, 0, len(m.prgRAM)+len(m.chr))
	data = append(data, m.prgRAM...)
	if m.chrRAM {
		data = append(data, m.chr...)
	}
	return data
}

// DecodeState implements mapper.StateCodec.
func (m *Mapper000) DecodeState(data []uint8) error {
	if len(data) < len(m.prgRAM) {
		return fmt.Errorf("mapper state too short for %d bytes of PRG-RAM", len(m.prgRAM))
	}
	copy(m.prgRAM, data[:len(m.prgRAM)])
	data = data[len(m.prgRAM):]

	if m.chrRAM {
		if len(data) < len(m.chr) {
			return fmt.Errorf("mapper state too short for %d bytes of CHR-RAM", len(m.chr))
		}
		copy(m.chr, data[:len(m.chr)])
	}
	return nil
}

func readPRG(owner interface{}, param uint16) uint8 {
	return owner.(*Mapper000).prg[param]
}

func writePRG(owner interface{}, param uint16, value uint8) {
	// PRG-ROM; writes are ignored.
}

func readPRGRAM(owner interface{}, param uint16) uint8 {
	return owner.(*Mapper000).prgRAM[param]
}

func writePRGRAM(owner interface{}, param uint16, value uint8) {
	owner.(*Mapper000).prgRAM[param] = value
}

func readCHR(owner interface{}, param uint16) uint8 {
	return owner.(*Mapper000).chr[param]
}

func writeCHR(owner interface{}, param uint16, value uint8) {
	m := owner.(*Mapper000)
	if m.chrRAM {
		m.chr[param] = value
	}
}
