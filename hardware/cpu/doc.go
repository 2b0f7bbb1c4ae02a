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

// Package cpu emulates the 2A03's 6502-derivative core. Like every 8-bit
// processor of the era it executes instructions according to the single
// byte value read from the address the program counter points at; that
// byte is the opcode, looked up in the opcode package's instruction table,
// and the definition found there drives decoding of the rest of the
// instruction.
//
// A CPU is constructed with NewCPU, given an instance.Instance (for the
// random source and preferences) and the bus.Bus it reads and writes
// through. Call ResetCold (or ResetWarm, for a soft reset) before the
// first step.
//
// Once an opcode byte is fetched, its definition drives buildProgram
// (microcode.go) to assemble a short list of micro-ops - one per remaining
// cycle, each performing at most one bus half-cycle. Two ways of driving
// that list are provided. Step runs a whole program back to back and
// returns the number of cycles it took; it is the entry point used by the
// single-instruction test harness in hardware/cpu/tests/singlestep, which
// only cares about CPU state - and the bus trace LastResult.Trace records
// - before and after one opcode. TickPhi1/TickPhi2 are the half-cycle entry
// points a Scheduler drives at the CPU's tick rate: TickPhi1 samples the
// interrupt lines (polling for a pending NMI/IRQ during an instruction's
// last micro-op, the real chip's polling point); TickPhi2 runs exactly one
// queued micro-op per call, starting a new program once the previous one is
// exhausted. Either driver executes the identical sequence of micro-ops in
// the identical order, so the bus trace and cycle count are the same
// either way.
//
// LastResult, an execution.Result, describes the most recently completed
// instruction - useful for a debugger or disassembler, not consulted by
// the CPU itself.
package cpu
