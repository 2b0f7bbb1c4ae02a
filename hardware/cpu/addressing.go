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

package cpu

// fetchByte reads the byte at PC and advances PC past it. Every addressing
// mode's micro-op program uses this for its operand-byte fetches; see
// microcode.go for how those fetches are spread one-per-cycle across the
// program.
func (c *CPU) fetchByte() uint8 {
	v := c.read(c.PC.Address())
	c.PC.Add(1)
	return v
}
