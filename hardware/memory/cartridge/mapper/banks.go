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

package mapper

import "fmt"

// BankInfo identifies which bank and segment currently answers for a
// cartridge address - used by debuggers and the disassembler, not by the
// mappers themselves during normal execution.
type BankInfo struct {
	Number  int
	Segment int

	// IsRAM is true if this segment is writable (CHR-RAM, PRG-RAM),
	// false for ROM.
	IsRAM bool
}

func (b BankInfo) String() string {
	if b.IsRAM {
		return fmt.Sprintf("%dR", b.Number)
	}
	return fmt.Sprintf("%d", b.Number)
}
