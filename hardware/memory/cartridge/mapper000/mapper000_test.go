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

package mapper000_test

import (
	"testing"

	"github.com/nescore/nescore/hardware/memory/bus"
	"github.com/nescore/nescore/hardware/memory/cartridge"
	"github.com/nescore/nescore/hardware/memory/cartridge/mapper000"
	"github.com/nescore/nescore/test"
)

func TestMapper000SixteenKMirrors(t *testing.T) {
	prg := make([]uint8, 16*1024)
	prg[0] = 0xAA
	prg[len(prg)-1] = 0xBB

	m, err := mapper000.New(&cartridge.ROM{PRG: prg, PRGRAMSize: 8 * 1024})
	if err != nil {
		t.Fatalf("constructing mapper: %v", err)
	}

	cpuBus := bus.New(0x10000)
	ppuBus := bus.New(0x4000)
	m.Install(cpuBus, ppuBus)

	test.Equate(t, cpuBus.Read(0x8000), uint8(0xAA))
	test.Equate(t, cpuBus.Read(0xC000), uint8(0xAA)) // mirrors the same 16KiB
	test.Equate(t, cpuBus.Read(0xFFFF), uint8(0xBB))
	test.Equate(t, cpuBus.Read(0xBFFF), uint8(0xBB))
}

func TestMapper000ThirtyTwoKNoMirror(t *testing.T) {
	prg := make([]uint8, 32*1024)
	prg[0] = 0x11
	prg[16*1024] = 0x22

	m, err := mapper000.New(&cartridge.ROM{PRG: prg})
	if err != nil {
		t.Fatalf("constructing mapper: %v", err)
	}

	cpuBus := bus.New(0x10000)
	ppuBus := bus.New(0x4000)
	m.Install(cpuBus, ppuBus)

	test.Equate(t, cpuBus.Read(0x8000), uint8(0x11))
	test.Equate(t, cpuBus.Read(0xC000), uint8(0x22))
}

func TestMapper000CHRRAMWhenHeaderDeclaresNone(t *testing.T) {
	prg := make([]uint8, 16*1024)
	m, err := mapper000.New(&cartridge.ROM{PRG: prg})
	if err != nil {
		t.Fatalf("constructing mapper: %v", err)
	}

	cpuBus := bus.New(0x10000)
	ppuBus := bus.New(0x4000)
	m.Install(cpuBus, ppuBus)

	ppuBus.Write(0x0010, 0x55)
	test.Equate(t, ppuBus.Read(0x0010), uint8(0x55))
}

func TestMapper000RejectsBadPRGSize(t *testing.T) {
	if _, err := mapper000.New(&cartridge.ROM{PRG: make([]uint8, 1000)}); err == nil {
		t.Fatal("expected an error for an invalid PRG size")
	}
}
