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

package savestate_test

import (
	"testing"

	"github.com/nescore/nescore/curated"
	nesErrors "github.com/nescore/nescore/hardware/errors"
	"github.com/nescore/nescore/hardware/memory/cartridge"
	"github.com/nescore/nescore/hardware/savestate"
	"github.com/nescore/nescore/hardware/system"
	"github.com/nescore/nescore/test"
)

func newNROMSystem(t *testing.T, prg []uint8) *system.System {
	t.Helper()

	sys, err := system.New(&cartridge.ROM{PRG: prg, Mirroring: cartridge.MirrorHorizontal}, nil)
	if err != nil {
		t.Fatalf("constructing system: %v", err)
	}
	sys.ResetCold()
	return sys
}

func setResetVector(prg []uint8, addr uint16) {
	off := len(prg) - 4
	prg[off] = uint8(addr)
	prg[off+1] = uint8(addr >> 8)
}

// TestSaveLoadRoundTripRestoresRegisters exercises property 6: encoding
// then decoding a state restores the CPU's visible register file exactly,
// even though the System being decoded into is a fresh instance that
// never ran the original program.
func TestSaveLoadRoundTripRestoresRegisters(t *testing.T) {
	prg := make([]uint8, 16*1024)
	prg[0] = 0xA9 // LDA #$42
	prg[1] = 0x42
	prg[2] = 0xAA // TAX
	prg[3] = 0xA8 // TAY
	setResetVector(prg, 0x8000)

	original := newNROMSystem(t, prg)
	for i := 0; i < 3*2*12; i++ { // three two-cycle instructions, NTSC cpu_div=12
		original.Tick()
	}

	blob := savestate.Encode(original)

	fresh := newNROMSystem(t, prg)
	if err := savestate.Decode(blob, fresh); err != nil {
		t.Fatalf("decoding save state: %v", err)
	}

	test.Equate(t, fresh.CPU.A.Value(), uint8(0x42))
	test.Equate(t, fresh.CPU.X.Value(), uint8(0x42))
	test.Equate(t, fresh.CPU.Y.Value(), uint8(0x42))
	test.Equate(t, fresh.CPU.PC.Address(), original.CPU.PC.Address())
}

// TestSaveLoadRoundTripRestoresRAMAndOAM checks the bulk memory regions
// the layout names: internal RAM and PPU OAM.
func TestSaveLoadRoundTripRestoresRAMAndOAM(t *testing.T) {
	prg := make([]uint8, 16*1024)
	prg[0] = 0xEA // NOP
	setResetVector(prg, 0x8000)

	original := newNROMSystem(t, prg)
	original.RAM.Poke(0x0000, 0x11)
	original.RAM.Poke(0x07FF, 0x22)
	original.PPU.RestoreOAM(func() []uint8 {
		oam := make([]uint8, 256)
		for i := range oam {
			oam[i] = uint8(i)
		}
		return oam
	}())

	blob := savestate.Encode(original)

	fresh := newNROMSystem(t, prg)
	if err := savestate.Decode(blob, fresh); err != nil {
		t.Fatalf("decoding save state: %v", err)
	}

	test.Equate(t, fresh.RAM.Peek(0x0000), uint8(0x11))
	test.Equate(t, fresh.RAM.Peek(0x07FF), uint8(0x22))
	test.Equate(t, fresh.PPU.OAMByte(0x00), uint8(0x00))
	test.Equate(t, fresh.PPU.OAMByte(0xFF), uint8(0xFF))
}

// TestDecodeRejectsCorruptChecksum exercises invariant/error-kind
// StateCorrupt (SPEC_FULL.md / spec.md §7): a single flipped byte in the
// body must be caught by the trailing checksum rather than silently
// loaded.
func TestDecodeRejectsCorruptChecksum(t *testing.T) {
	prg := make([]uint8, 16*1024)
	prg[0] = 0xEA
	setResetVector(prg, 0x8000)

	original := newNROMSystem(t, prg)
	blob := savestate.Encode(original)
	blob[10] ^= 0xFF // corrupt a byte inside the CPU register section

	fresh := newNROMSystem(t, prg)

	decodeErr := savestate.Decode(blob, fresh)
	if decodeErr == nil {
		t.Fatalf("expected an error decoding a corrupted blob, got nil")
	}
	if !curated.Is(decodeErr, nesErrors.StateCorrupt) {
		t.Errorf("expected a StateCorrupt error, got %v", decodeErr)
	}
}

// TestDecodeRejectsMapperMismatch exercises the mapper-id tag: a blob
// encoded against one mapper must not silently load onto a System running
// a different one, even if both happen to be byte-compatible this far.
func TestDecodeRejectsMapperMismatch(t *testing.T) {
	prg16 := make([]uint8, 16*1024)
	prg16[0] = 0xEA
	setResetVector(prg16, 0x8000)
	nrom := newNROMSystem(t, prg16)
	blob := savestate.Encode(nrom)

	prg094 := make([]uint8, 16*1024)
	prg094[0] = 0xEA
	setResetVector(prg094, 0x8000)
	sys094, err := system.New(&cartridge.ROM{MapperID: 94, PRG: prg094}, nil)
	if err != nil {
		t.Fatalf("constructing mapper-094 system: %v", err)
	}
	sys094.ResetCold()

	decodeErr := savestate.Decode(blob, sys094)
	if decodeErr == nil {
		t.Fatalf("expected an error decoding onto a different mapper, got nil")
	}
	if !curated.Is(decodeErr, nesErrors.StateCorrupt) {
		t.Errorf("expected a StateCorrupt error, got %v", decodeErr)
	}
}

// TestDecodeRejectsTruncatedBlob exercises the truncation path
// io.ReadFull catches: a blob cut off mid-section must not panic or read
// past its own bounds.
func TestDecodeRejectsTruncatedBlob(t *testing.T) {
	prg := make([]uint8, 16*1024)
	prg[0] = 0xEA
	setResetVector(prg, 0x8000)

	original := newNROMSystem(t, prg)
	blob := savestate.Encode(original)

	fresh := newNROMSystem(t, prg)
	decodeErr := savestate.Decode(blob[:len(blob)/2], fresh)
	if decodeErr == nil {
		t.Fatalf("expected an error decoding a truncated blob, got nil")
	}
	if !curated.Is(decodeErr, nesErrors.StateCorrupt) {
		t.Errorf("expected a StateCorrupt error, got %v", decodeErr)
	}
}
