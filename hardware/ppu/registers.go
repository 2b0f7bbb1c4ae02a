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

package ppu

// PPUCTRL bits ($2000, write-only).
const (
	ctrlNametableMask  = 0x03
	ctrlIncrement32    = 1 << 2
	ctrlSpriteTable    = 1 << 3
	ctrlBackgroundTable = 1 << 4
	ctrlSpriteSize8x16 = 1 << 5
	ctrlNMIEnable      = 1 << 7
)

// PPUSTATUS bits ($2002, read-only).
const (
	statusSpriteOverflow = 1 << 5
	statusSprite0Hit     = 1 << 6
	statusVBlank         = 1 << 7
)

// the eight register offsets, after mirroring down to 0x2000-0x2007.
const (
	regCtrl     = 0
	regMask     = 1
	regStatus   = 2
	regOAMAddr  = 3
	regOAMData  = 4
	regScroll   = 5
	regAddr     = 6
	regData     = 7
)

// readReg implements bus.ReadFunc for the CPU-visible PPU register window.
// param is the register offset 0-7 after SetMirroredHandlers folds the
// full 0x2000-0x3FFF range down to it.
func readReg(owner interface{}, param uint16) uint8 {
	p := owner.(*PPU)

	var v uint8
	switch param {
	case regStatus:
		v = p.readStatus()
	case regOAMData:
		v = p.oam.Peek(uint16(p.oamAddr))
	case regData:
		v = p.readData()
	default:
		// PPUCTRL, PPUMASK, OAMADDR, PPUSCROLL, PPUADDR are write-only;
		// reading them returns whatever was last driven on the bus.
		v = p.busLatch
	}

	p.busLatch = v
	return v
}

// writeReg implements bus.WriteFunc for the CPU-visible PPU register
// window.
func writeReg(owner interface{}, param uint16, value uint8) {
	p := owner.(*PPU)
	p.busLatch = value

	switch param {
	case regCtrl:
		wasEnabled := p.ctrl&ctrlNMIEnable != 0
		p.ctrl = value
		p.t = (p.t &^ (0x03 << 10)) | uint16(value&ctrlNametableMask)<<10
		// enabling NMI output while vblank is already asserted fires
		// immediately, the same edge the real chip produces.
		if !wasEnabled && value&ctrlNMIEnable != 0 && p.status&statusVBlank != 0 && p.raiseNMI != nil {
			p.raiseNMI()
		}
	case regMask:
		p.mask = value
	case regOAMAddr:
		p.oamAddr = value
	case regOAMData:
		p.oam.Poke(uint16(p.oamAddr), value)
		p.oamAddr++
	case regScroll:
		p.writeScroll(value)
	case regAddr:
		p.writeAddr(value)
	case regData:
		p.writeData(value)
	}
}

// readStatus implements the read side of PPUSTATUS: the top three bits are
// live register state, the low five come from whatever was last driven on
// the bus, and the read itself clears vblank and the scroll/address write
// toggle.
func (p *PPU) readStatus() uint8 {
	v := (p.status & (statusVBlank | statusSprite0Hit | statusSpriteOverflow)) | (p.busLatch & 0x1F)
	p.status &^= statusVBlank
	p.w = false
	return v
}

// writeScroll handles one write to PPUSCROLL. The first write (w==false)
// sets the fine/coarse X scroll; the second sets Y. w toggles after every
// write and is shared with PPUADDR.
func (p *PPU) writeScroll(value uint8) {
	if !p.w {
		p.t = (p.t &^ 0x001F) | uint16(value>>3)
		p.x = value & 0x07
	} else {
		p.t = (p.t &^ 0x73E0) | uint16(value&0x07)<<12 | uint16(value&0xF8)<<2
	}
	p.w = !p.w
}

// writeAddr handles one write to PPUADDR: the first write sets the high
// six bits of the address latch, the second the low eight, and the second
// write also commits t into v.
func (p *PPU) writeAddr(value uint8) {
	if !p.w {
		p.t = (p.t & 0x00FF) | uint16(value&0x3F)<<8
	} else {
		p.t = (p.t & 0xFF00) | uint16(value)
		p.v = p.t
	}
	p.w = !p.w
}

// addrIncrement returns how much v advances after a PPUDATA access,
// selected by PPUCTRL bit 2.
func (p *PPU) addrIncrement() uint16 {
	if p.ctrl&ctrlIncrement32 != 0 {
		return 32
	}
	return 1
}
