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

// Package instance defines those parts of the emulation that might change
// from instance to instance of the System type, but are not actually the
// System itself.
//
// Particularly useful when running more than one instance of the emulation
// in parallel, or when comparing a fresh core against a rewound one.
package instance

import (
	"github.com/nescore/nescore/hardware/preferences"
	"github.com/nescore/nescore/random"
)

// Label indicates the context of the instance.
type Label string

// List of valid Label values.
const (
	Main       Label = ""
	Comparison Label = "comparison"
)

// Instance defines those parts of the emulation that might change between
// different instantiations of the System type, but are not actually the
// System itself. No field of a System, Bus or CPU should be global; every
// one of them is reached through an Instance constructed explicitly by the
// host.
type Instance struct {
	Label Label

	Random *random.Random

	// the preferences of the running instance. this instance can be shared
	// with other running instances of the emulation.
	Prefs *preferences.Preferences
}

// NewInstance is the preferred method of initialisation for the Instance
// type. ticks supplies the master-clock tick count used to seed Random; it
// is normally the System itself. prefs may be nil, in which case a fresh,
// default Preferences value is created.
func NewInstance(ticks random.Ticker, prefs *preferences.Preferences) *Instance {
	if prefs == nil {
		prefs = preferences.NewPreferences()
	}

	return &Instance{
		Random: random.NewRandom(ticks),
		Prefs:  prefs,
	}
}

// Normalise ensures the instance is in a known default state. Useful for
// regression testing where the initial state must be the same for every
// run of the test.
func (ins *Instance) Normalise() {
	ins.Random.ZeroSeed = true
	_ = ins.Prefs.Reset()
}
