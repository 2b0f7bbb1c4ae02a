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

package ram_test

import (
	"testing"

	"github.com/nescore/nescore/hardware/memory/bus"
	"github.com/nescore/nescore/hardware/memory/ram"
	"github.com/nescore/nescore/test"
)

func TestDirectAccess(t *testing.T) {
	r := ram.New(0x0800)
	r.Poke(0x0010, 0x42)
	test.Equate(t, r.Peek(0x0010), 0x42)
}

func TestMirroredBusAccess(t *testing.T) {
	r := ram.New(0x0800)
	b := bus.New(0x10000)
	b.SetMirroredHandlers(0x0000, 0x1FFF, 0x0800, ram.Read, ram.Write, r)

	b.Write(0x0010, 0x55)
	test.Equate(t, r.Peek(0x0010), 0x55)

	// the same underlying byte is visible at every mirror
	test.Equate(t, b.Read(0x0810), 0x55)
	test.Equate(t, b.Read(0x1010), 0x55)
	test.Equate(t, b.Read(0x1810), 0x55)
}

func TestSnapshotRestore(t *testing.T) {
	r := ram.New(4)
	r.Poke(0, 1)
	r.Poke(1, 2)
	r.Poke(2, 3)
	r.Poke(3, 4)

	snap := r.Snapshot()

	r2 := ram.New(4)
	r2.Restore(snap)
	test.Equate(t, r2.Peek(2), 3)
}
