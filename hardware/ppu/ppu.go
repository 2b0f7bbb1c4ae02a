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

// Package ppu implements the bus-visible register shell of the 2C02/2C07
// picture processing unit: PPUCTRL/PPUMASK/PPUSTATUS/OAMADDR/OAMDATA/
// PPUSCROLL/PPUADDR/PPUDATA, the 256-byte OAM, and the vblank/NMI timing
// those registers expose. Pixel generation itself - the part a
// DisplayHost would consume - is out of scope; Step only tracks enough of
// the scanline/dot counters to raise NMI and flip PPUSTATUS at the right
// moments.
package ppu

import (
	"github.com/nescore/nescore/hardware/instance"
	"github.com/nescore/nescore/hardware/memory/bus"
	"github.com/nescore/nescore/hardware/memory/cartridge"
	"github.com/nescore/nescore/hardware/memory/memorymap"
	"github.com/nescore/nescore/hardware/memory/ram"
)

// dots per scanline and scanlines per frame, NTSC timing. PAL/Dendy differ
// only in the number of post-render scanlines, which this register shell
// doesn't otherwise observe.
const (
	dotsPerScanline  = 341
	scanlinesPerFrame = 262
	vblankScanline   = 241
	preRenderScanline = 261
)

// PPU holds the register file, OAM, nametable and palette RAM, and the
// scanline/dot position used to time vblank and NMI.
type PPU struct {
	instance *instance.Instance

	oam       *ram.RAM
	nametable *ram.RAM
	palette   *ram.RAM

	mirroring cartridge.Mirroring

	ctrl   uint8
	mask   uint8
	status uint8
	oamAddr uint8

	// v/t/x/w form the internal scroll/address latch exactly as the real
	// chip implements PPUSCROLL and PPUADDR sharing one write toggle.
	v, t uint16
	x     uint8
	w     bool

	// readBuffer holds the byte returned by the *previous* PPUDATA read;
	// reads below the palette range are delayed by one read.
	readBuffer uint8

	// busLatch is the value of the open-bus line shared by all 2C02
	// registers: any register access, read or write, drives it, and any
	// undefined bits of a read come from here instead.
	busLatch uint8

	dot      int
	scanline int

	// ppuBus is retained so PPUDATA reads/writes (and the DMA-independent
	// VRAM increment they perform) can address the full PPU bus, which
	// also carries the mapper's CHR pattern tables.
	ppuBus *bus.Bus

	// raiseNMI is called once when vblank begins while NMI output is
	// enabled (ctrl bit 7), or the instant that bit is set while vblank
	// is already asserted. It is nil in tests that don't wire a CPU.
	raiseNMI func()
}

// New constructs a PPU with zeroed registers and RAM. mirroring selects how
// the 2KiB onboard nametable RAM is laid out across the PPU's 0x2000-0x2FFF
// window; it normally comes from the cartridge's iNES header.
func New(ins *instance.Instance, mirroring cartridge.Mirroring) *PPU {
	return &PPU{
		instance:  ins,
		oam:       ram.New(256),
		nametable: ram.New(2 * 1024),
		palette:   ram.New(32),
		mirroring: mirroring,
	}
}

// SetNMICallback wires the function the PPU calls to raise the CPU's NMI
// line. The System calls this once during wiring, passing cpu.NMIRaise.
func (p *PPU) SetNMICallback(f func()) {
	p.raiseNMI = f
}

// OAMDMAWrite implements the write side of an OAM DMA transfer: the CPU's
// BeginDMA calls this once per byte, writing to OAMDATA exactly as a CPU
// write to 0x2004 would, advancing OAMADDR and wrapping at 256.
func (p *PPU) OAMDMAWrite(value uint8) {
	p.oam.Poke(uint16(p.oamAddr), value)
	p.oamAddr++
}

// Install wires the PPU's registers onto the CPU bus (mirrored every 8
// bytes across 0x2000-0x3FFF) and its RAM-backed memory regions onto the
// PPU bus (nametables and palette RAM; pattern tables are left to the
// mapper's CHR installation).
func (p *PPU) Install(cpuBus, ppuBus *bus.Bus) {
	p.ppuBus = ppuBus

	cpuBus.SetMirroredHandlers(int(memorymap.PPURegOrigin), int(memorymap.PPURegTop), 8, readReg, writeReg, p)

	// period 0x1000 folds the 0x3000-0x3EFF mirror onto 0x2000-0x2EFF,
	// leaving param as the 0-4095 offset nametableOffset expects.
	ppuBus.SetMirroredHandlers(int(memorymap.NametableOrigin), int(memorymap.NametableMirrorTop), 0x1000, readNametable, writeNametable, p)

	ppuBus.SetMirroredHandlers(int(memorymap.PaletteOrigin), int(memorymap.PaletteTop), 32, readPalette, writePalette, p)
}

// ResetCold clears the register file and scroll/address latch. OAM and
// nametable/palette contents start zeroed, or randomised if the instance
// prefers it, matching the CPU's own cold-reset convention.
func (p *PPU) ResetCold() {
	p.ctrl = 0
	p.mask = 0
	p.status = 0
	p.oamAddr = 0
	p.v, p.t, p.x = 0, 0, 0
	p.w = false
	p.readBuffer = 0
	p.busLatch = 0
	p.dot = 0
	p.scanline = 0

	if p.instance != nil && p.instance.Prefs.RandomState.Get().(bool) {
		p.oam.Randomise(p.instance.Random)
		p.nametable.Randomise(p.instance.Random)
		p.palette.Randomise(p.instance.Random)
	}
}

// OAMByte reads an OAM byte directly, bypassing OAMADDR/OAMDATA - used by
// the scheduler's DMA tests and by save-state encoding.
func (p *PPU) OAMByte(addr uint8) uint8 {
	return p.oam.Peek(uint16(addr))
}

// Dot reports the current dot (pixel-clock position) within the
// scanline, for tests that check the PPU advances at the ratio the
// scheduler promises.
func (p *PPU) Dot() int {
	return p.dot
}

// OAMSnapshot, NametableSnapshot and PaletteSnapshot return copies of the
// PPU's RAM-backed memory regions, for save-state encoding.
func (p *PPU) OAMSnapshot() []uint8 {
	return p.oam.Snapshot()
}

func (p *PPU) NametableSnapshot() []uint8 {
	return p.nametable.Snapshot()
}

func (p *PPU) PaletteSnapshot() []uint8 {
	return p.palette.Snapshot()
}

// RestoreOAM, RestoreNametable and RestorePalette replace the PPU's
// RAM-backed memory regions from a save state. Each slice must be the
// same length as the region it replaces (256, 2048 and 32 bytes
// respectively).
func (p *PPU) RestoreOAM(data []uint8) {
	p.oam.Restore(data)
}

func (p *PPU) RestoreNametable(data []uint8) {
	p.nametable.Restore(data)
}

func (p *PPU) RestorePalette(data []uint8) {
	p.palette.Restore(data)
}

// nametableOffset maps a 0-4095 offset from 0x2000 (already folded by the
// 0x3000-0x3EFF mirror) down to an offset into the 2KiB physical
// nametable RAM, according to the cartridge's mirroring mode. Four-screen
// mirroring needs cartridge-supplied extra VRAM this module doesn't
// model; it falls back to the same layout as horizontal mirroring.
func (p *PPU) nametableOffset(foldedAddr uint16) uint16 {
	table := foldedAddr / 0x0400
	within := foldedAddr % 0x0400

	switch p.mirroring {
	case cartridge.MirrorVertical:
		return (table%2)*0x0400 + within
	default: // MirrorHorizontal, MirrorFourScreen (best-effort fallback)
		return (table/2)*0x0400 + within
	}
}

// readData implements the PPUDATA read side. Reads below the palette
// range come from a one-access-delayed buffer - a hardware quirk of the
// real chip - while palette reads bypass the buffer and return
// immediately.
func (p *PPU) readData() uint8 {
	addr := p.v & memorymap.PPUAddressMask
	var v uint8
	if addr >= memorymap.PaletteOrigin {
		v = p.ppuBus.Read(addr)
		p.readBuffer = p.ppuBus.Read(addr - 0x1000) // buffer still fills from the nametable mirror behind the palette
	} else {
		v = p.readBuffer
		p.readBuffer = p.ppuBus.Read(addr)
	}
	p.v += p.addrIncrement()
	return v
}

// writeData implements the PPUDATA write side: a direct, unbuffered write
// through the PPU bus at the current address, which then advances exactly
// as a read would.
func (p *PPU) writeData(value uint8) {
	addr := p.v & memorymap.PPUAddressMask
	p.ppuBus.Write(addr, value)
	p.v += p.addrIncrement()
}

// readNametable implements bus.ReadFunc for the PPU's nametable window.
func readNametable(owner interface{}, param uint16) uint8 {
	p := owner.(*PPU)
	return p.nametable.Peek(p.nametableOffset(param))
}

// writeNametable implements bus.WriteFunc for the PPU's nametable window.
func writeNametable(owner interface{}, param uint16, value uint8) {
	p := owner.(*PPU)
	p.nametable.Poke(p.nametableOffset(param), value)
}

// readPalette implements bus.ReadFunc for palette RAM. Entries 0x10,
// 0x14, 0x18, 0x1C mirror 0x00, 0x04, 0x08, 0x0C - the "universal
// background colour" aliasing the real chip's decoder produces.
func readPalette(owner interface{}, param uint16) uint8 {
	return owner.(*PPU).palette.Peek(paletteMirror(param))
}

// writePalette implements bus.WriteFunc for palette RAM.
func writePalette(owner interface{}, param uint16, value uint8) {
	owner.(*PPU).palette.Poke(paletteMirror(param), value)
}

// paletteMirror folds the four sprite-palette-background aliases down to
// their background-palette counterparts.
func paletteMirror(param uint16) uint16 {
	if param&0x13 == 0x10 {
		return param &^ 0x10
	}
	return param
}

// Step advances the PPU by one dot (one pixel-clock tick). It only tracks
// the transitions that are externally observable through PPUSTATUS and
// NMI: entering vblank at the start of scanline 241, and clearing vblank/
// sprite-zero-hit/overflow at the start of the pre-render scanline.
func (p *PPU) Step() {
	p.dot++
	if p.dot >= dotsPerScanline {
		p.dot = 0
		p.scanline++
		if p.scanline >= scanlinesPerFrame {
			p.scanline = 0
		}
	}

	if p.dot == 1 {
		switch p.scanline {
		case vblankScanline:
			p.status |= statusVBlank
			if p.ctrl&ctrlNMIEnable != 0 && p.raiseNMI != nil {
				p.raiseNMI()
			}
		case preRenderScanline:
			p.status &^= statusVBlank | statusSprite0Hit | statusSpriteOverflow
		}
	}
}
