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

package execution

// Bug names a documented 6502-family hardware quirk, preserved faithfully
// by the 2A03 rather than fixed. Software that relies on one of these is
// depending on real silicon behaviour, not a defect in this emulation.
type Bug string

const (
	NoBug Bug = ""

	// JmpIndirectPageWrap: JMP (nnnn) never advances across a page
	// boundary to fetch its high byte. JMP ($12FF) reads its target's
	// high byte from $1200, not $1300.
	JmpIndirectPageWrap Bug = "indirect JMP page wrap"

	// ZeroPageIndexWrap: zero-page indexed addressing (zp,X / zp,Y)
	// wraps within page zero instead of carrying into page one.
	ZeroPageIndexWrap Bug = "zero page index wrap"
)
