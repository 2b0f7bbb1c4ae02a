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
	"github.com/nescore/nescore/curated"
	"github.com/nescore/nescore/hardware/cpu/opcode"
)

// IsValid checks whether a Result is internally consistent with its
// instruction definition. Not called by the CPU itself - it would cost a
// branch on every instruction for no benefit outside a debugger - but
// useful for an interactive debugger or a disassembly sanity check.
func (r Result) IsValid() error {
	if !r.Final {
		return curated.Errorf("cpu: execution not finalised (bad opcode?)")
	}

	if !r.Defn.PageSensitive && r.PageFault {
		return curated.Errorf("cpu: unexpected page fault")
	}

	if r.ByteCount != r.Defn.Bytes {
		return curated.Errorf("cpu: unexpected number of bytes read during decode (%d instead of %d)", r.ByteCount, r.Defn.Bytes)
	}

	if r.CPUBug != NoBug {
		return nil
	}

	if r.Defn.Mode == opcode.Relative {
		if r.Cycles != r.Defn.Cycles && r.Cycles != r.Defn.Cycles+1 && r.Cycles != r.Defn.Cycles+2 {
			return curated.Errorf("cpu: number of cycles wrong for opcode %#02x [%s] (%d instead of %d, %d or %d)",
				r.Defn.Opcode, r.Defn.Mnemonic, r.Cycles, r.Defn.Cycles, r.Defn.Cycles+1, r.Defn.Cycles+2)
		}
		return nil
	}

	if r.Defn.PageSensitive {
		if r.PageFault && r.Cycles != r.Defn.Cycles && r.Cycles != r.Defn.Cycles+1 {
			return curated.Errorf("cpu: number of cycles wrong for opcode %#02x [%s] (%d instead of %d, %d)",
				r.Defn.Opcode, r.Defn.Mnemonic, r.Cycles, r.Defn.Cycles, r.Defn.Cycles+1)
		}
		return nil
	}

	if r.Cycles != r.Defn.Cycles {
		return curated.Errorf("cpu: number of cycles wrong for opcode %#02x [%s] (%d instead of %d)",
			r.Defn.Opcode, r.Defn.Mnemonic, r.Cycles, r.Defn.Cycles)
	}

	return nil
}
