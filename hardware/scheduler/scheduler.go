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

// Package scheduler drives the master clock: it ticks the CPU, PPU, APU
// and cartridge mapper in the ratio their television region demands, and
// wires the $4014 OAM DMA port, the one piece of the default memory map
// that needs more than one component's state to answer correctly.
package scheduler

import (
	"github.com/nescore/nescore/hardware/apu"
	"github.com/nescore/nescore/hardware/clocks"
	"github.com/nescore/nescore/hardware/cpu"
	"github.com/nescore/nescore/hardware/memory/bus"
	"github.com/nescore/nescore/hardware/memory/cartridge/mapper"
	"github.com/nescore/nescore/hardware/memory/memorymap"
	"github.com/nescore/nescore/hardware/ppu"
)

// Scheduler advances every component by one master-clock unit at a time.
// tick_master() of spec: one CPU tick is emitted every ratio.CPUDiv
// units, one PPU tick every ratio.PPUDiv units. A CPU tick is a PHI1 call
// immediately followed by a PHI2 call on the same master-tick boundary,
// as specified; DMA only stretches CPU time; PPU and APU proceed
// normally while CPU.TickPhi2 is servicing a DMA transfer.
type Scheduler struct {
	cpu    *cpu.CPU
	ppu    *ppu.PPU
	apu    *apu.APU
	mapper mapper.Mapper
	ratio  clocks.Ratio

	cpuAcc int
	ppuAcc int

	// cpuCycle counts completed CPU ticks since the scheduler was built,
	// used only to recover the parity a $4014 write began on for
	// CPU.BeginDMA's 513/514-cycle alignment rule.
	cpuCycle uint64

	// masterTicks counts every call to Tick, satisfying random.Ticker so
	// the Scheduler itself can seed an Instance's cold-reset randomiser.
	masterTicks int64
}

// MasterTicks implements random.Ticker.
func (s *Scheduler) MasterTicks() int64 {
	return s.masterTicks
}

// CPUCycles reports the number of completed CPU ticks since the
// Scheduler was built, for save-state encoding.
func (s *Scheduler) CPUCycles() uint64 {
	return s.cpuCycle
}

// RestoreCPUCycles sets the completed-CPU-tick count from a save state,
// so a write to $4014 immediately after a load sees the same odd/even
// parity the original had at that point.
func (s *Scheduler) RestoreCPUCycles(n uint64) {
	s.cpuCycle = n
}

// New builds a Scheduler over already-constructed components, ticking
// them at the divisor ratio of the given television region.
func New(c *cpu.CPU, p *ppu.PPU, a *apu.APU, m mapper.Mapper, ratio clocks.Ratio) *Scheduler {
	return &Scheduler{cpu: c, ppu: p, apu: a, mapper: m, ratio: ratio}
}

// Install wires the $4014 OAM DMA write port onto the CPU bus. Nothing
// else in the default map needs scheduler-level state, so this is its
// only bus slot.
func (s *Scheduler) Install(cpuBus *bus.Bus) {
	cpuBus.SetWriteHandler(int(memorymap.OAMDMA), int(memorymap.OAMDMA), writeOAMDMA, s, 0)
}

// Tick advances the master clock by one unit, stepping the PPU and then
// the CPU once their respective divisors roll over, in that order, with
// the mapper and APU ticked once per completed CPU cycle.
func (s *Scheduler) Tick() {
	s.masterTicks++

	s.ppuAcc++
	if s.ppuAcc >= s.ratio.PPUDiv {
		s.ppuAcc -= s.ratio.PPUDiv
		s.ppu.Step()
	}

	s.cpuAcc++
	if s.cpuAcc < s.ratio.CPUDiv {
		return
	}
	s.cpuAcc -= s.ratio.CPUDiv

	s.cpuCycle++
	s.cpu.TickPhi1()
	s.cpu.TickPhi2()
	s.apu.Step()
	s.mapper.Step()
}

// writeOAMDMA implements bus.WriteFunc for $4014. value is the source
// page; the CPU's DMA state machine takes over tick_master's CPU slice
// until the transfer completes, writing each byte it reads out through
// ppu.OAMDMAWrite.
func writeOAMDMA(owner interface{}, param uint16, value uint8) {
	s := owner.(*Scheduler)
	oddCycle := s.cpuCycle%2 == 1
	s.cpu.BeginDMA(value, oddCycle, s.ppu.OAMDMAWrite)
}
