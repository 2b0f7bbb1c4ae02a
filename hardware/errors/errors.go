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

// Package errors collects the curated.Errorf patterns raised by the
// cartridge loader and save-state codec. Runtime execution never raises
// one of these: an illegal opcode halts the CPU, it doesn't error, and an
// unknown bus address reads as open bus rather than failing.
package errors

// Sentinel patterns for curated.Errorf(). Each expects the arguments noted
// in its comment; curated.Is(err, RomMalformed) etc. recovers the pattern
// from a wrapped error chain.
const (
	// RomMalformed is raised by the cartridge loader when the iNES header
	// fails its magic check, PRG/CHR sizes don't match the file length, or
	// a mandatory field is otherwise unreadable. Expects one %v detail.
	RomMalformed = "malformed rom: %v"

	// MapperUnsupported is raised when the iNES header names a mapper id
	// with no registered implementation. Expects the numeric mapper id.
	MapperUnsupported = "unsupported mapper: %d"

	// StateCorrupt is raised by savestate.Decode when the encoded blob
	// fails its checksum or version check. Expects one %v detail.
	StateCorrupt = "corrupt save state: %v"
)
