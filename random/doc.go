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

// Package random should be used in preference to the math/rand package when
// a random number is required inside the emulation core.
//
// Random numbers are seeded from the master clock tick count (via the
// Ticker interface) added to a base seed taken from the wall clock when the
// package is initialised. Two cores in the same process, at the same tick
// count, produce the same values; across separate runs they differ.
//
// If the same random numbers are required every single time then set
// ZeroSeed to true, which replaces the base seed with zero. This is useful
// for testing purposes.
package random
