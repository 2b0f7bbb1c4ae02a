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

package controller_test

import (
	"testing"

	"github.com/nescore/nescore/hardware/controller"
	"github.com/nescore/nescore/hardware/memory/bus"
	"github.com/nescore/nescore/test"
)

// fakePoller reports a fixed button byte per port, A..Right from bit 7 to
// bit 0.
type fakePoller struct {
	state [2]uint8
}

func (f *fakePoller) PollPort(port int) uint8 {
	return f.state[port]
}

func newController(t *testing.T, p *fakePoller) (*controller.Controller, *bus.Bus) {
	t.Helper()
	c := controller.New()
	c.SetPoller(p)
	b := bus.New(0x10000)
	c.Install(b)
	return c, b
}

func TestControllerShiftsOutMSBFirst(t *testing.T) {
	p := &fakePoller{state: [2]uint8{0b1010_0110, 0}}
	_, b := newController(t, p)

	b.Write(0x4016, 0x01) // strobe high: latches/reloads continuously
	b.Write(0x4016, 0x00) // strobe low: freezes the latched state, reads begin shifting

	expected := []uint8{1, 0, 1, 0, 0, 1, 1, 0}
	for _, want := range expected {
		got := b.Read(0x4016) & 0x01
		test.Equate(t, got, want)
	}
}

func TestControllerReadsAllOnesAfterEightBits(t *testing.T) {
	p := &fakePoller{state: [2]uint8{0xFF, 0}}
	_, b := newController(t, p)

	b.Write(0x4016, 0x01)
	b.Write(0x4016, 0x00)
	for i := 0; i < 8; i++ {
		b.Read(0x4016)
	}
	test.Equate(t, b.Read(0x4016)&0x01, uint8(1))
	test.Equate(t, b.Read(0x4016)&0x01, uint8(1))
}

func TestControllerPort2ReadsThrough4017(t *testing.T) {
	p := &fakePoller{state: [2]uint8{0, 0b1100_0000}}
	_, b := newController(t, p)

	b.Write(0x4016, 0x01)
	b.Write(0x4016, 0x00)

	test.Equate(t, b.Read(0x4017)&0x01, uint8(1))
	test.Equate(t, b.Read(0x4017)&0x01, uint8(1))
	test.Equate(t, b.Read(0x4017)&0x01, uint8(0))
}

func TestControllerStrobeHighReturnsLiveAState(t *testing.T) {
	p := &fakePoller{state: [2]uint8{0x80, 0}}
	_, b := newController(t, p)

	b.Write(0x4016, 0x01) // strobe held high
	test.Equate(t, b.Read(0x4016)&0x01, uint8(1))

	p.state[0] = 0x00
	test.Equate(t, b.Read(0x4016)&0x01, uint8(0))
}

func TestControllerUpperBitsAreOpenBus(t *testing.T) {
	p := &fakePoller{state: [2]uint8{0, 0}}
	_, b := newController(t, p)

	b.Write(0x4016, 0xA5) // drives the slot's open-bus latch to 0xA5
	got := b.Read(0x4016)
	test.Equate(t, got&0xFE, uint8(0xA5&0xFE))
}
