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

package random

import (
	"math/rand"
	"time"
)

// the base seed for all random numbers
var baseSeed int64

// initialise base seed
func init() {
	baseSeed = int64(time.Now().Nanosecond())
}

// Ticker is satisfied by anything that can report a monotonically
// increasing tick count, such as the master clock of the scheduler. Random
// numbers are sensitive to this value so that two instances started from
// the same ROM and the same point in time produce the same sequence.
type Ticker interface {
	MasterTicks() int64
}

// Random is a random number generator that is sensitive to the master
// clock, so that register randomisation on cold reset is deterministic
// given the same starting tick count.
type Random struct {
	ticks Ticker

	// use zero seed rather than the random base seed. this is only really
	// useful for normalised instances where random numbers must be
	// predictable, such as the single-step test harness.
	ZeroSeed bool
}

// NewRandom is the preferred method of initialisation for the Random type.
func NewRandom(ticks Ticker) *Random {
	return &Random{
		ticks: ticks,
	}
}

// new RNG from the standard library
func (rnd *Random) rand() *rand.Rand {
	var t int64
	if rnd.ticks != nil {
		t = rnd.ticks.MasterTicks()
	}
	if rnd.ZeroSeed {
		return rand.New(rand.NewSource(t))
	}
	return rand.New(rand.NewSource(baseSeed + t))
}

// Intn returns, as an int, a non-negative pseudo-random number in [0,n).
func (rnd *Random) Intn(n int) int {
	return rnd.rand().Intn(n)
}

// Uint8 returns a pseudo-random byte, used to fill RAM and registers on
// cold reset when the preference for randomised state is enabled.
func (rnd *Random) Uint8() uint8 {
	return uint8(rnd.rand().Intn(256))
}
