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

// Package savestate encodes and decodes a System's complete machine state
// to a flat byte blob: CPU registers and cycle counter, internal RAM, PPU
// nametable/palette/OAM RAM, and mapper-private state tagged by mapper id
// and version. Decode rejects a blob whose trailing checksum doesn't
// match, or whose mapper tag doesn't match the System's cartridge, rather
// than silently loading a mismatched state.
package savestate

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"io"

	"github.com/nescore/nescore/curated"
	nesErrors "github.com/nescore/nescore/hardware/errors"
	"github.com/nescore/nescore/hardware/memory/cartridge/mapper"
	"github.com/nescore/nescore/hardware/system"
)

// magic identifies the blob as one of ours before any version-specific
// parsing begins.
var magic = [4]byte{'N', 'S', 'V', '1'}

// formatVersion is bumped whenever the section layout below changes. A
// blob with a different version is corrupt as far as Decode is concerned
// - there's no migration path for a format this is still settling.
const formatVersion = 1

// Encode captures sys's complete state: CPU registers and cycle counter,
// internal RAM, the PPU's nametable/palette/OAM RAM, and the mapper's own
// private state if it implements mapper.StateCodec. The returned blob is
// trailed with a CRC32 checksum that Decode verifies before touching sys.
func Encode(sys *system.System) []uint8 {
	var buf bytes.Buffer

	buf.Write(magic[:])
	buf.WriteByte(formatVersion)

	buf.WriteByte(sys.CPU.A.Value())
	buf.WriteByte(sys.CPU.X.Value())
	buf.WriteByte(sys.CPU.Y.Value())
	buf.WriteByte(sys.CPU.Status.Value())
	buf.WriteByte(sys.CPU.SP.Value())
	pc := sys.CPU.PC.Address()
	buf.WriteByte(uint8(pc))
	buf.WriteByte(uint8(pc >> 8))

	var cycles [8]uint8
	binary.LittleEndian.PutUint64(cycles[:], sys.Scheduler.CPUCycles())
	buf.Write(cycles[:])

	buf.Write(sys.RAM.Snapshot())
	buf.Write(sys.PPU.NametableSnapshot())
	buf.Write(sys.PPU.PaletteSnapshot())
	buf.Write(sys.PPU.OAMSnapshot())

	writeMapperSection(&buf, sys.Mapper)

	checksum := crc32.ChecksumIEEE(buf.Bytes())
	var trailer [4]uint8
	binary.LittleEndian.PutUint32(trailer[:], checksum)
	buf.Write(trailer[:])

	return buf.Bytes()
}

// writeMapperSection appends the mapper's id (length-prefixed), a
// per-mapper state version byte, and its private state (length-prefixed).
// A mapper that doesn't implement mapper.StateCodec contributes an empty
// state section - its id is still recorded, so Decode can confirm the
// blob belongs to this cartridge.
func writeMapperSection(buf *bytes.Buffer, m mapper.Mapper) {
	id := m.ID()
	buf.WriteByte(uint8(len(id)))
	buf.WriteString(id)
	buf.WriteByte(formatVersion)

	var state []uint8
	if codec, ok := m.(mapper.StateCodec); ok {
		state = codec.EncodeState()
	}

	var length [2]uint8
	binary.LittleEndian.PutUint16(length[:], uint16(len(state)))
	buf.Write(length[:])
	buf.Write(state)
}

// Decode verifies data's checksum and mapper tag, then restores sys's
// complete state from it. sys is left untouched if verification fails.
// Raises nesErrors.StateCorrupt on a checksum mismatch, a format-version
// mismatch, a truncated blob, or a mapper id that doesn't match the
// System's cartridge.
func Decode(data []uint8, sys *system.System) error {
	if len(data) < 4 {
		return curated.Errorf(nesErrors.StateCorrupt, "blob too short to contain a checksum")
	}

	body, trailer := data[:len(data)-4], data[len(data)-4:]
	want := binary.LittleEndian.Uint32(trailer)
	got := crc32.ChecksumIEEE(body)
	if want != got {
		return curated.Errorf(nesErrors.StateCorrupt, "checksum mismatch: got %#08x, want %#08x", got, want)
	}

	r := bytes.NewReader(body)

	var gotMagic [4]uint8
	if _, err := io.ReadFull(r, gotMagic[:]); err != nil || gotMagic != magic {
		return curated.Errorf(nesErrors.StateCorrupt, "missing save-state magic")
	}

	version, err := r.ReadByte()
	if err != nil {
		return curated.Errorf(nesErrors.StateCorrupt, "truncated before format version")
	}
	if version != formatVersion {
		return curated.Errorf(nesErrors.StateCorrupt, "unsupported format version %d", version)
	}

	var regs [7]uint8
	if _, err := io.ReadFull(r, regs[:]); err != nil {
		return curated.Errorf(nesErrors.StateCorrupt, "truncated CPU registers")
	}

	var cycles [8]uint8
	if _, err := io.ReadFull(r, cycles[:]); err != nil {
		return curated.Errorf(nesErrors.StateCorrupt, "truncated CPU cycle counter")
	}

	ram := make([]uint8, sys.RAM.Len())
	if _, err := io.ReadFull(r, ram); err != nil {
		return curated.Errorf(nesErrors.StateCorrupt, "truncated internal RAM")
	}

	nametable := make([]uint8, len(sys.PPU.NametableSnapshot()))
	if _, err := io.ReadFull(r, nametable); err != nil {
		return curated.Errorf(nesErrors.StateCorrupt, "truncated nametable RAM")
	}

	palette := make([]uint8, len(sys.PPU.PaletteSnapshot()))
	if _, err := io.ReadFull(r, palette); err != nil {
		return curated.Errorf(nesErrors.StateCorrupt, "truncated palette RAM")
	}

	oam := make([]uint8, len(sys.PPU.OAMSnapshot()))
	if _, err := io.ReadFull(r, oam); err != nil {
		return curated.Errorf(nesErrors.StateCorrupt, "truncated OAM")
	}

	idLen, err := r.ReadByte()
	if err != nil {
		return curated.Errorf(nesErrors.StateCorrupt, "truncated before mapper id")
	}
	id := make([]uint8, idLen)
	if _, err := io.ReadFull(r, id); err != nil {
		return curated.Errorf(nesErrors.StateCorrupt, "truncated mapper id")
	}
	if string(id) != sys.Mapper.ID() {
		return curated.Errorf(nesErrors.StateCorrupt, "mapper id mismatch: blob has %q, cartridge is %q", id, sys.Mapper.ID())
	}

	if _, err := r.ReadByte(); err != nil { // mapper state version, unused until a mapper needs more than one
		return curated.Errorf(nesErrors.StateCorrupt, "truncated before mapper state version")
	}

	var stateLen [2]uint8
	if _, err := io.ReadFull(r, stateLen[:]); err != nil {
		return curated.Errorf(nesErrors.StateCorrupt, "truncated before mapper state length")
	}
	state := make([]uint8, binary.LittleEndian.Uint16(stateLen[:]))
	if len(state) > 0 {
		if _, err := io.ReadFull(r, state); err != nil {
			return curated.Errorf(nesErrors.StateCorrupt, "truncated mapper state")
		}
	}

	if codec, ok := sys.Mapper.(mapper.StateCodec); ok {
		if err := codec.DecodeState(state); err != nil {
			return curated.Errorf(nesErrors.StateCorrupt, err)
		}
	}

	sys.CPU.A.Load(regs[0])
	sys.CPU.X.Load(regs[1])
	sys.CPU.Y.Load(regs[2])
	sys.CPU.Status.FromValue(regs[3])
	sys.CPU.SP.Load(regs[4])
	sys.CPU.PC.Load(uint16(regs[5]) | uint16(regs[6])<<8)

	sys.Scheduler.RestoreCPUCycles(binary.LittleEndian.Uint64(cycles[:]))

	sys.RAM.Restore(ram)
	sys.PPU.RestoreNametable(nametable)
	sys.PPU.RestorePalette(palette)
	sys.PPU.RestoreOAM(oam)

	return nil
}
