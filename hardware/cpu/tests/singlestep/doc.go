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

// Package singlestep runs the CPU against Tom Harte's SingleStepTests
// fixture format: a JSON array of {name, initial, final, cycles} records,
// one per opcode, each describing the full register and RAM state before
// and after executing a single instruction.
//
// The real corpus (https://github.com/SingleStepTests/65x02) runs into the
// tens of thousands of cases per opcode and is deliberately not vendored
// here; testdata holds a small hand-authored sample covering a handful of
// addressing modes and flag-setting paths instead. Drop additional fixture
// files into testdata/*.json in the same shape to extend coverage.
//
// cycles doubles as the expected total cycle count and the expected
// cycle-by-cycle bus trace: each instruction's micro-op program (see
// hardware/cpu/doc.go) performs at most one bus access per cycle, in
// execution order, and runCase replays both against it.
package singlestep
