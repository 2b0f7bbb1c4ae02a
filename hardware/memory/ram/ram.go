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

// Package ram implements the passive byte arrays wired into bus slots:
// internal CPU RAM, PPU nametable RAM, palette RAM, and OAM. None of these
// types know about the bus; RAM.ReadHandler/WriteHandler are bound to
// slots by whoever owns the memory map.
package ram

import "github.com/nescore/nescore/random"

// RAM is a fixed-size byte array addressable through bus.ReadFunc/
// bus.WriteFunc-compatible methods.
type RAM struct {
	data []uint8
}

// New creates a RAM of the given size, zero-filled.
func New(size int) *RAM {
	return &RAM{data: make([]uint8, size)}
}

// Randomise fills the RAM with pseudo-random values, used for cold reset
// when the host has enabled RandomState.
func (r *RAM) Randomise(rnd *random.Random) {
	for i := range r.data {
		r.data[i] = rnd.Uint8()
	}
}

// Peek reads a byte directly, without going through a bus slot.
func (r *RAM) Peek(addr uint16) uint8 {
	return r.data[addr]
}

// Poke writes a byte directly, without going through a bus slot.
func (r *RAM) Poke(addr uint16, v uint8) {
	r.data[addr] = v
}

// Len returns the number of bytes in the array.
func (r *RAM) Len() int {
	return len(r.data)
}

// Snapshot returns a copy of the RAM contents, for save states.
func (r *RAM) Snapshot() []uint8 {
	c := make([]uint8, len(r.data))
	copy(c, r.data)
	return c
}

// Restore replaces the RAM contents from a save state. data must be the
// same length as the RAM.
func (r *RAM) Restore(data []uint8) {
	copy(r.data, data)
}

// Read implements bus.ReadFunc: owner must be *RAM, param is the address
// within it.
func Read(owner interface{}, param uint16) uint8 {
	return owner.(*RAM).data[param]
}

// Write implements bus.WriteFunc: owner must be *RAM, param is the
// address within it.
func Write(owner interface{}, param uint16, value uint8) {
	owner.(*RAM).data[param] = value
}
