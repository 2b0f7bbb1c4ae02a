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

// Package system is the main container for an emulated console: it wires
// CPU, PPU, APU, controller ports and a cartridge mapper onto a shared
// bus pair, applies the default memory map, and drives them all through
// a Scheduler. It is the entry point a host program constructs once per
// running instance.
package system

import (
	"github.com/nescore/nescore/hardware/apu"
	"github.com/nescore/nescore/hardware/clocks"
	"github.com/nescore/nescore/hardware/controller"
	"github.com/nescore/nescore/hardware/cpu"
	"github.com/nescore/nescore/hardware/instance"
	"github.com/nescore/nescore/hardware/memory/bus"
	"github.com/nescore/nescore/hardware/memory/cartridge"
	"github.com/nescore/nescore/hardware/memory/cartridge/mapper"

	// blank-imported for their init-time cartridge.Register call: System
	// is the composition root, so it's the one place that must know
	// about every mapper this build supports.
	_ "github.com/nescore/nescore/hardware/memory/cartridge/mapper000"
	_ "github.com/nescore/nescore/hardware/memory/cartridge/mapper094"

	"github.com/nescore/nescore/hardware/memory/memorymap"
	"github.com/nescore/nescore/hardware/memory/ram"
	"github.com/nescore/nescore/hardware/ppu"
	"github.com/nescore/nescore/hardware/preferences"
	"github.com/nescore/nescore/hardware/scheduler"
)

// System is the main container for the emulated console's hardware.
type System struct {
	Instance *instance.Instance

	CPUBus *bus.Bus
	PPUBus *bus.Bus

	RAM        *ram.RAM
	CPU        *cpu.CPU
	PPU        *ppu.PPU
	APU        *apu.APU
	Controller *controller.Controller
	Mapper     mapper.Mapper
	Scheduler  *scheduler.Scheduler
}

// New builds a System around a decoded cartridge image: it constructs
// every component, applies the default CPU/PPU memory map, lets the
// mapper overlay its own cartridge-space handlers, and wires the
// cross-component connections (OAM DMA, NMI-on-vblank) the default map
// can't express through bus slots alone. prefs may be nil, in which case
// default preferences (NTSC, no cold-reset randomisation) apply.
func New(rom *cartridge.ROM, prefs *preferences.Preferences) (*System, error) {
	sys := &System{}

	// the System is passed as the random.Ticker here, per instance.
	// NewInstance's own doc comment ("ticks... is normally the System
	// itself") - MasterTicks only needs to resolve once ResetCold runs,
	// by which point Scheduler is assigned below.
	sys.Instance = instance.NewInstance(sys, prefs)

	sys.CPUBus = bus.New(0x10000)
	sys.PPUBus = bus.New(0x4000)

	sys.RAM = ram.New(int(memorymap.RAMMask) + 1)
	sys.CPUBus.SetMirroredHandlers(int(memorymap.RAMOrigin), int(memorymap.RAMTop), int(memorymap.RAMMask)+1, ram.Read, ram.Write, sys.RAM)

	sys.PPU = ppu.New(sys.Instance, rom.Mirroring)
	sys.APU = apu.New()
	sys.Controller = controller.New()
	sys.CPU = cpu.NewCPU(sys.Instance, sys.CPUBus)

	m, err := cartridge.NewMapper(rom)
	if err != nil {
		return nil, err
	}
	sys.Mapper = m

	sys.PPU.Install(sys.CPUBus, sys.PPUBus)
	sys.APU.Install(sys.CPUBus)
	sys.Controller.Install(sys.CPUBus)
	sys.Mapper.Install(sys.CPUBus, sys.PPUBus)

	region := sys.Instance.Prefs.GetRegion()
	sys.Scheduler = scheduler.New(sys.CPU, sys.PPU, sys.APU, sys.Mapper, clocks.ForRegion(region))
	sys.Scheduler.Install(sys.CPUBus)

	sys.PPU.SetNMICallback(sys.CPU.NMIRaise)

	return sys, nil
}

// MasterTicks implements random.Ticker by delegating to the Scheduler.
func (sys *System) MasterTicks() int64 {
	if sys.Scheduler == nil {
		return 0
	}
	return sys.Scheduler.MasterTicks()
}

// SetPoller attaches the host's button source to both controller ports.
func (sys *System) SetPoller(p controller.InputPoller) {
	sys.Controller.SetPoller(p)
}

// ResetCold performs the console's power-on reset: every component
// that owns state resets to its documented (or, if preferred,
// randomised) post-power-on values.
func (sys *System) ResetCold() {
	sys.CPU.ResetCold()
	sys.PPU.ResetCold()
	sys.APU.ResetCold()
	sys.Controller.ResetCold()
}

// ResetWarm performs the console's RESET-button sequence: only the CPU
// observes a reduced reset on real hardware (RAM, PPU and APU state
// survive a warm reset).
func (sys *System) ResetWarm() {
	sys.CPU.ResetWarm()
}

// Tick advances the master clock by one unit, per Scheduler.Tick.
func (sys *System) Tick() {
	sys.Scheduler.Tick()
}
