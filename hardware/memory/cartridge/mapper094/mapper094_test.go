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

package mapper094_test

import (
	"testing"

	"github.com/nescore/nescore/hardware/memory/bus"
	"github.com/nescore/nescore/hardware/memory/cartridge"
	"github.com/nescore/nescore/hardware/memory/cartridge/mapper094"
	"github.com/nescore/nescore/test"
)

// fourBankROM builds a 64 KiB PRG image (4 banks of 16 KiB), each bank
// filled with its own bank number so reads can be identified.
func fourBankROM() *cartridge.ROM {
	prg := make([]uint8, 4*16*1024)
	for bank := 0; bank < 4; bank++ {
		for i := 0; i < 16*1024; i++ {
			prg[bank*16*1024+i] = uint8(bank)
		}
	}
	return &cartridge.ROM{MapperID: 94, PRG: prg}
}

func TestMapper094BankSwitch(t *testing.T) {
	rom := fourBankROM()
	m, err := mapper094.New(rom)
	if err != nil {
		t.Fatalf("constructing mapper: %v", err)
	}

	cpuBus := bus.New(0x10000)
	ppuBus := bus.New(0x4000)
	m.Install(cpuBus, ppuBus)

	// before any write, the selectable window defaults to bank 0.
	test.Equate(t, cpuBus.Read(0x8000), uint8(0))
	// the fixed window always serves the last bank (3).
	test.Equate(t, cpuBus.Read(0xC000), uint8(3))

	cpuBus.Write(0x9000, 0x0C) // bank = (0x0C & 0x1C) >> 2 = 3

	test.Equate(t, cpuBus.Read(0x8000), uint8(3))
	test.Equate(t, cpuBus.Read(0xBFFF), uint8(3))
	test.Equate(t, cpuBus.Read(0xC000), uint8(3))
	test.Equate(t, cpuBus.Read(0xFFFF), uint8(3))

	cpuBus.Write(0xFFFF, 0x04) // bank = (0x04 & 0x1C) >> 2 = 1
	test.Equate(t, cpuBus.Read(0x8000), uint8(1))
	test.Equate(t, cpuBus.Read(0xC000), uint8(3))
}

func TestMapper094CHRIsWritable(t *testing.T) {
	rom := fourBankROM()
	m, err := mapper094.New(rom)
	if err != nil {
		t.Fatalf("constructing mapper: %v", err)
	}

	cpuBus := bus.New(0x10000)
	ppuBus := bus.New(0x4000)
	m.Install(cpuBus, ppuBus)

	ppuBus.Write(0x0000, 0x42)
	test.Equate(t, ppuBus.Read(0x0000), uint8(0x42))
}

func TestMapper094RejectsUnalignedPRG(t *testing.T) {
	rom := &cartridge.ROM{MapperID: 94, PRG: make([]uint8, 100)}
	if _, err := mapper094.New(rom); err == nil {
		t.Fatal("expected an error for a PRG size that isn't a multiple of 16KiB")
	}
}
