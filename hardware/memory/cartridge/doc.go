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

// Package cartridge loads an iNES ROM image and dispatches it to a
// registered mapper constructor by mapper id. It knows nothing about any
// particular mapper's bank-switching scheme - that lives in the mapper
// subpackages (mapper000, mapper094, ...), each of which registers itself
// with Register from an init function, keyed by the iNES mapper number it
// implements.
package cartridge
