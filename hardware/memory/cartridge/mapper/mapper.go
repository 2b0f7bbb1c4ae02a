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

// Package mapper defines the capability set a cartridge mapper implements,
// independent of any one mapper's bank-switching scheme.
package mapper

import "github.com/nescore/nescore/hardware/memory/bus"

// Mapper is a cartridge-resident bank-switching implementation. A mapper
// owns the cartridge's PRG and CHR data and, once Install has been called,
// answers for every address the iNES header assigns it on the CPU and PPU
// buses - by registering bus slot handlers, not by being consulted
// directly on every access.
type Mapper interface {
	// ID is the mapper's short name, used in logging and save-state
	// tagging (eg. "NROM", "094").
	ID() string

	// Install registers this mapper's read/write handlers across the
	// relevant address ranges of both buses. Called once, after the
	// system has applied its default map.
	Install(cpuBus, ppuBus *bus.Bus)

	// Step is called once per CPU cycle by the scheduler. Most mappers
	// have no internal clock and leave this empty; ones with IRQ
	// counters or serial interfaces use it to advance that state.
	Step()

	// NumBanks reports the number of switchable PRG banks the cartridge
	// exposes, for save-state sizing and debugger display.
	NumBanks() int

	// GetBank reports which bank and segment currently answers for a
	// cartridge-space CPU address.
	GetBank(addr uint16) BankInfo

	// Snapshot returns a deep copy of the mapper's internal state,
	// suitable for save-state encoding; the original is left untouched.
	Snapshot() Mapper
}

// StateCodec is implemented by mappers that carry persistent state beyond
// what the ROM image itself reproduces - a selected bank, an IRQ counter,
// battery-backed PRG-RAM contents. Mappers with nothing of the sort (most
// of them) don't need to implement it; hardware/savestate tags the
// section with ID() either way, so a codec-less mapper's section is just
// empty.
type StateCodec interface {
	// EncodeState returns the mapper's private state as an opaque byte
	// string. The format is the mapper's own business; only the mapper
	// that produced it is expected to be able to read it back.
	EncodeState() []uint8

	// DecodeState restores private state previously returned by
	// EncodeState. The caller (hardware/savestate) has already checked
	// the section's id tag matches ID().
	DecodeState(data []uint8) error
}
