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

// Package controller implements the $4016/$4017 shift-register ports the
// CPU polls for button state: a write to $4016 latches (or continuously
// reloads) both ports from an InputPoller, and each subsequent read
// shifts one bit out, most-significant first.
package controller

import "github.com/nescore/nescore/hardware/memory/bus"

// InputPoller is the host-supplied button source, one call per port.
// Button bits are packed A, B, Select, Start, Up, Down, Left, Right from
// bit 7 down to bit 0 - the same order the shift register reads them out
// in, MSB first.
type InputPoller interface {
	PollPort(port int) uint8
}

// Controller implements the two polled controller ports. Port 0 reads
// through $4016, port 1 through $4017 - the latch write, however, is
// $4016 only and affects both ports at once, matching real wiring where a
// single strobe line feeds every pad.
type Controller struct {
	cpuBus *bus.Bus
	poller InputPoller

	// strobe mirrors bit 0 of the last $4016 write. While held high, both
	// shift registers continuously reload from the poller; reads return
	// the live state of the first (A) button rather than shifting.
	strobe bool
	shift  [2]uint8
}

// New constructs a Controller with no poller attached; SetPoller must be
// called before Install for reads to return real button state (an unset
// poller reads back all-zero buttons).
func New() *Controller {
	return &Controller{poller: noInput{}}
}

type noInput struct{}

func (noInput) PollPort(port int) uint8 { return 0 }

// SetPoller attaches the host's button source.
func (c *Controller) SetPoller(p InputPoller) {
	c.poller = p
}

// Install wires $4016 (read and write) and $4017 (read only - the write
// side of $4017 belongs to the APU's frame counter register) onto the CPU
// bus.
func (c *Controller) Install(cpuBus *bus.Bus) {
	c.cpuBus = cpuBus
	cpuBus.SetReadHandler(0x4016, 0x4016, readPort, c, 0x4016)
	cpuBus.SetWriteHandler(0x4016, 0x4016, writeStrobe, c, 0x4016)
	cpuBus.SetReadHandler(0x4017, 0x4017, readPort, c, 0x4017)
}

// ResetCold clears the strobe latch and both shift registers.
func (c *Controller) ResetCold() {
	c.strobe = false
	c.shift = [2]uint8{}
}

// readPort implements bus.ReadFunc for both $4016 and $4017. param is the
// real address, used only to recover which port this is and to read the
// bus's open-bus byte for the upper seven bits the real hardware leaves
// undriven.
func readPort(owner interface{}, param uint16) uint8 {
	c := owner.(*Controller)
	port := int(param - 0x4016)

	bit := c.readBit(port)
	openBus := c.cpuBus.OpenBus(param)
	return (openBus &^ 0x01) | bit
}

// readBit returns the next output bit for the given port, advancing the
// shift register unless the strobe is held high.
func (c *Controller) readBit(port int) uint8 {
	if c.strobe {
		c.shift[port] = c.poller.PollPort(port)
		return (c.shift[port] >> 7) & 1
	}
	bit := (c.shift[port] >> 7) & 1
	// shifting in a 1 bit reproduces the real shift register's behaviour
	// of reading back all-1s once every real button bit has been read.
	c.shift[port] = (c.shift[port] << 1) | 1
	return bit
}

func writeStrobe(owner interface{}, param uint16, value uint8) {
	c := owner.(*Controller)
	newStrobe := value&0x01 != 0
	if newStrobe {
		c.shift[0] = c.poller.PollPort(0)
		c.shift[1] = c.poller.PollPort(1)
	}
	c.strobe = newStrobe
}
