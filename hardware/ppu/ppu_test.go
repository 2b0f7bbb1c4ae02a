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

package ppu_test

import (
	"testing"

	"github.com/nescore/nescore/hardware/memory/bus"
	"github.com/nescore/nescore/hardware/memory/cartridge"
	"github.com/nescore/nescore/hardware/ppu"
	"github.com/nescore/nescore/test"
)

func newPPU(t *testing.T, mirroring cartridge.Mirroring) (*ppu.PPU, *bus.Bus, *bus.Bus) {
	t.Helper()
	p := ppu.New(nil, mirroring)
	cpuBus := bus.New(0x10000)
	ppuBus := bus.New(0x4000)
	p.Install(cpuBus, ppuBus)
	return p, cpuBus, ppuBus
}

func TestPPURegistersMirrorEveryEightBytes(t *testing.T) {
	_, cpuBus, _ := newPPU(t, cartridge.MirrorHorizontal)

	cpuBus.Write(0x2003, 0x10) // OAMADDR, via the canonical address
	cpuBus.Write(0x200C, 0xAB) // OAMDATA, via its mirror ($200C = $2004 + 8)

	cpuBus.Write(0x200B, 0x10) // OAMADDR again, via its mirror ($200B = $2003 + 8)
	test.Equate(t, cpuBus.Read(0x2004), uint8(0xAB))
}

func TestPPUStatusReadClearsVBlankAndToggle(t *testing.T) {
	p, cpuBus, _ := newPPU(t, cartridge.MirrorHorizontal)

	// drive vblank via Step() up to the scanline/dot it's asserted on.
	for i := 0; i < 341*241+1; i++ {
		p.Step()
	}

	status := cpuBus.Read(0x2002)
	test.Equate(t, status&0x80, uint8(0x80))

	status = cpuBus.Read(0x2002)
	test.Equate(t, status&0x80, uint8(0))
}

func TestPPUStatusReadResetsScrollAddrToggle(t *testing.T) {
	_, cpuBus, _ := newPPU(t, cartridge.MirrorHorizontal)

	cpuBus.Write(0x2006, 0x20) // first PPUADDR write sets the toggle
	cpuBus.Read(0x2002)        // reading status clears it
	cpuBus.Write(0x2006, 0x00) // this is now treated as a first write again
	cpuBus.Write(0x2006, 0x10) // ... and this the second, completing the address
	cpuBus.Write(0x2007, 0x5A)

	test.Equate(t, cpuBus.Read(0x2002)&0x80, uint8(0))
}

func TestPPUDataWriteReadRoundTripsThroughNametable(t *testing.T) {
	_, cpuBus, _ := newPPU(t, cartridge.MirrorHorizontal)

	cpuBus.Write(0x2006, 0x20) // high byte of 0x2005
	cpuBus.Write(0x2006, 0x05) // low byte
	cpuBus.Write(0x2007, 0x99)

	cpuBus.Write(0x2006, 0x20)
	cpuBus.Write(0x2006, 0x05)
	cpuBus.Read(0x2007) // primes the one-access-delayed read buffer
	got := cpuBus.Read(0x2007)
	test.Equate(t, got, uint8(0x99))
}

func TestPPUDataAddressIncrementsByCtrlBit2(t *testing.T) {
	_, cpuBus, _ := newPPU(t, cartridge.MirrorHorizontal)

	cpuBus.Write(0x2000, 0x04) // PPUCTRL bit 2: +32 per access
	cpuBus.Write(0x2006, 0x20)
	cpuBus.Write(0x2006, 0x00)
	cpuBus.Write(0x2007, 0x01)
	cpuBus.Write(0x2007, 0x02)

	cpuBus.Write(0x2006, 0x20)
	cpuBus.Write(0x2006, 0x00)
	cpuBus.Read(0x2007) // stale buffered byte
	first := cpuBus.Read(0x2007)
	test.Equate(t, first, uint8(0x01))

	cpuBus.Write(0x2006, 0x20)
	cpuBus.Write(0x2006, 0x20) // 0x20 bytes further, matching the +32 increment
	cpuBus.Read(0x2007)
	second := cpuBus.Read(0x2007)
	test.Equate(t, second, uint8(0x02))
}

func TestPPUOAMDataReadWrite(t *testing.T) {
	_, cpuBus, _ := newPPU(t, cartridge.MirrorHorizontal)

	cpuBus.Write(0x2003, 0x10)
	cpuBus.Write(0x2004, 0x42)
	cpuBus.Write(0x2003, 0x10)
	test.Equate(t, cpuBus.Read(0x2004), uint8(0x42))
}

func TestPPUOAMDMAWriteAdvancesAndWraps(t *testing.T) {
	p, cpuBus, _ := newPPU(t, cartridge.MirrorHorizontal)

	for i := 0; i < 256; i++ {
		p.OAMDMAWrite(uint8(i))
	}
	// oamAddr wrapped back to 0 and every slot holds its index.
	for i := 0; i < 256; i++ {
		cpuBus.Write(0x2003, uint8(i))
		test.Equate(t, cpuBus.Read(0x2004), uint8(i))
	}
}

func TestPPUMirroringVertical(t *testing.T) {
	_, cpuBus, _ := newPPU(t, cartridge.MirrorVertical)

	cpuBus.Write(0x2006, 0x20) // nametable 0, $2000
	cpuBus.Write(0x2006, 0x00)
	cpuBus.Write(0x2007, 0x11)

	cpuBus.Write(0x2006, 0x28) // nametable 2, $2800 - shares physical RAM with nametable 0 under vertical mirroring
	cpuBus.Write(0x2006, 0x00)
	cpuBus.Read(0x2007)
	got := cpuBus.Read(0x2007)
	test.Equate(t, got, uint8(0x11))
}

func TestPPUMirroringHorizontal(t *testing.T) {
	_, cpuBus, _ := newPPU(t, cartridge.MirrorHorizontal)

	cpuBus.Write(0x2006, 0x20) // nametable 0, $2000
	cpuBus.Write(0x2006, 0x00)
	cpuBus.Write(0x2007, 0x22)

	cpuBus.Write(0x2006, 0x24) // nametable 1, $2400 - shares physical RAM with nametable 0 under horizontal mirroring
	cpuBus.Write(0x2006, 0x00)
	cpuBus.Read(0x2007)
	got := cpuBus.Read(0x2007)
	test.Equate(t, got, uint8(0x22))
}

func TestPPUPaletteBackgroundMirror(t *testing.T) {
	_, _, ppuBus := newPPU(t, cartridge.MirrorHorizontal)

	ppuBus.Write(0x3F00, 0x0F)
	test.Equate(t, ppuBus.Read(0x3F10), uint8(0x0F)) // 0x3F10 aliases 0x3F00
}

func TestPPUNMIRaisedOnVBlankWhenEnabled(t *testing.T) {
	p, cpuBus, _ := newPPU(t, cartridge.MirrorHorizontal)

	fired := false
	p.SetNMICallback(func() { fired = true })
	cpuBus.Write(0x2000, ppuCtrlNMIEnable)

	for i := 0; i < 341*241+1; i++ {
		p.Step()
	}
	test.Equate(t, fired, true)
}

func TestPPUNMINotRaisedWhenDisabled(t *testing.T) {
	p, _, _ := newPPU(t, cartridge.MirrorHorizontal)

	fired := false
	p.SetNMICallback(func() { fired = true })

	for i := 0; i < 341*241+1; i++ {
		p.Step()
	}
	test.Equate(t, fired, false)
}

const ppuCtrlNMIEnable = 0x80
