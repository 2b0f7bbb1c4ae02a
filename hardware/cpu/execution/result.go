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

import (
	"fmt"

	"github.com/nescore/nescore/hardware/cpu/opcode"
)

// BusAccess records one half-cycle's worth of bus activity: a single read
// or write performed by one micro-op, in the order the micro-op program
// executed them. A conformance test replays this against a reference
// cycle-by-cycle trace to check not just that an instruction took the
// right number of cycles, but that it touched the right addresses - dummy
// reads, dummy writes, and all - along the way.
type BusAccess struct {
	Address uint16
	Value   uint8
	Write   bool
}

// Result holds everything interesting about one instruction's execution,
// for consumption by a disassembler or debugger rather than by the CPU
// itself.
type Result struct {
	Address uint16
	Defn    opcode.Definition

	// Final is false until the instruction has completed; IsValid should
	// not be called on a Result still being built.
	Final bool

	// ByteCount is the instruction's length in bytes, including the
	// opcode byte, as given by its definition; it is 0 for an
	// interrupt-service sequence.
	ByteCount int

	// Cycles is the actual number of bus cycles the instruction took,
	// which may exceed Defn.Cycles for a page-crossing access or a taken
	// branch.
	Cycles int

	// PageFault records whether an extra cycle was spent on a page
	// crossing.
	PageFault bool

	// CPUBug records a documented hardware quirk that fired during this
	// instruction, if any.
	CPUBug Bug

	// Trace is the ordered list of bus half-cycles the instruction's
	// micro-op program actually performed.
	Trace []BusAccess
}

func (r Result) String() string {
	return fmt.Sprintf("%#04x %s (%d cycles)", r.Address, r.Defn.Mnemonic, r.Cycles)
}
