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

// Package opcode is a static, fully-populated description of the
// 2A03/6502-derivative instruction set, legal and illegal alike, plus the
// two synthetic interrupt-service entries the CPU core walks through the
// same dispatch path as a real opcode. It describes shape only - mnemonic,
// addressing mode, length, base cycle count - and holds no behaviour; the
// cpu package supplies the operation and addressing-mode functions that do
// the actual work.
package opcode
