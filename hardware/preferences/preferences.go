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

// Package preferences collates the preference values that affect how the
// hardware behaves but which are not determined by the ROM itself: the
// television region and whether cold-reset state should be randomised.
//
// Unlike the debugger-era gopher2600 preferences, these values are never
// persisted to disk by the core. A host program that wants persistence
// should read/write the exported prefs.Value types itself.
package preferences

import (
	"github.com/nescore/nescore/curated"
	"github.com/nescore/nescore/prefs"
)

// Region identifies the television standard the console was built for,
// which in turn fixes the CPU:PPU tick ratio used by the scheduler.
type Region string

const (
	RegionNTSC  Region = "NTSC"
	RegionPAL   Region = "PAL"
	RegionDendy Region = "Dendy"
)

// UnsupportedRegion is raised when a Preferences value is set to a region
// string that isn't one of the known constants.
const UnsupportedRegion = "unsupported region: %s"

// Preferences collates all the preference values used by the hardware
// layer. NewPreferences returns one that defaults to NTSC with cold-reset
// state randomisation disabled; in the zero value the region is empty and
// the Region field is not wired to it.
type Preferences struct {
	// television region, fixing the scheduler's CPU:PPU tick ratio
	Region prefs.Generic

	// initialise RAM and registers to random values after a cold reset
	// rather than the console's real, mostly-deterministic power-on state
	RandomState prefs.Bool

	region Region
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type.
func NewPreferences() *Preferences {
	p := &Preferences{
		region: RegionNTSC,
	}

	p.Region = *prefs.NewGeneric(
		func(v prefs.Value) error {
			r := Region(v.(string))
			switch r {
			case RegionNTSC, RegionPAL, RegionDendy:
				p.region = r
				return nil
			default:
				return curated.Errorf(UnsupportedRegion, string(r))
			}
		},
		func() prefs.Value {
			return string(p.region)
		},
	)

	return p
}

// GetRegion returns the currently selected region.
func (p *Preferences) GetRegion() Region {
	return p.region
}

// Reset restores all preferences to their default values.
func (p *Preferences) Reset() error {
	if err := p.Region.Set(string(RegionNTSC)); err != nil {
		return err
	}
	return p.RandomState.Reset()
}
