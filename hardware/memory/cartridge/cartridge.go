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

package cartridge

import (
	"github.com/nescore/nescore/curated"
	nesErrors "github.com/nescore/nescore/hardware/errors"
	"github.com/nescore/nescore/hardware/memory/cartridge/mapper"
)

// Constructor builds a Mapper from a decoded ROM. Mapper subpackages pass
// one of these to Register from their own init function.
type Constructor func(rom *ROM) (mapper.Mapper, error)

var registry = make(map[int]Constructor)

// Register associates a mapper constructor with the iNES mapper id it
// implements. Intended to be called from a mapper subpackage's init
// function, eg:
//
//	func init() {
//		cartridge.Register(94, New)
//	}
func Register(mapperID int, ctor Constructor) {
	registry[mapperID] = ctor
}

// NewMapper looks up rom's mapper id in the registry and constructs it.
// Returns nesErrors.MapperUnsupported if no mapper subpackage has
// registered that id.
func NewMapper(rom *ROM) (mapper.Mapper, error) {
	ctor, ok := registry[rom.MapperID]
	if !ok {
		return nil, curated.Errorf(nesErrors.MapperUnsupported, rom.MapperID)
	}
	return ctor(rom)
}
