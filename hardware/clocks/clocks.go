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

// Package clocks defines the master-clock divisor pairs that fix how often
// the CPU and PPU tick relative to one another, for each television region
// the console was manufactured for.
package clocks

import "github.com/nescore/nescore/hardware/preferences"

// Ratio is a region's master-clock divisor pair. tick_master() emits one
// CPU tick every CPUDiv master units and one PPU tick every PPUDiv master
// units.
type Ratio struct {
	CPUDiv int
	PPUDiv int
}

// Region presets, as manufactured.
var (
	NTSC  = Ratio{CPUDiv: 12, PPUDiv: 4}
	PAL   = Ratio{CPUDiv: 16, PPUDiv: 5}
	Dendy = Ratio{CPUDiv: 15, PPUDiv: 5}
)

// ForRegion returns the divisor pair for a named region, defaulting to
// NTSC for an unrecognised value.
func ForRegion(r preferences.Region) Ratio {
	switch r {
	case preferences.RegionPAL:
		return PAL
	case preferences.RegionDendy:
		return Dendy
	default:
		return NTSC
	}
}
