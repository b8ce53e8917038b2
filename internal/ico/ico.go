// Package ico writes and reads Windows ICO containers. Entries are stored as
// PNG payloads byte-for-byte identical to the sources: the packer only
// repackages already-correctly-sized rasters, it never rescales or re-encodes.
package ico

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/pain-lang/painicons/internal/iconset"
)

// MaxEntrySize is the largest resolution an ICONDIRENTRY can describe: the
// width and height fields are single bytes where zero means 256.
const MaxEntrySize = 256

type iconDir struct {
	Reserved uint16
	Type     uint16
	Count    uint16
}

type iconDirEntry struct {
	Width       uint8
	Height      uint8
	ColorCount  uint8
	Reserved    uint8
	Planes      uint16
	BitCount    uint16
	BytesInRes  uint32
	ImageOffset uint32
}

const (
	dirSize   = 6
	entrySize = 16
)

// PackableSizes splits a set's resolutions into those an ICO directory can
// represent and those it cannot (above MaxEntrySize).
func PackableSizes(set *iconset.Set) (packable, skipped []int) {
	for _, e := range set.Entries {
		if e.Size > MaxEntrySize {
			skipped = append(skipped, e.Size)
			continue
		}
		packable = append(packable, e.Size)
	}
	return packable, skipped
}

// Encode writes the set as an ICO container: ICONDIR header, one directory
// entry per resolution, then the raw PNG payloads in ascending size order.
// Resolutions above MaxEntrySize are skipped. Output is deterministic for an
// unchanged set.
func Encode(w io.Writer, set *iconset.Set) error {
	var entries []iconset.Entry
	for _, e := range set.Entries {
		if e.Size > MaxEntrySize {
			continue
		}
		entries = append(entries, e)
	}
	if len(entries) == 0 {
		return fmt.Errorf("identity %q has no resolutions representable in an ICO directory", set.Identity)
	}

	buf := &bytes.Buffer{}
	hdr := iconDir{Type: 1, Count: uint16(len(entries))}
	if err := binary.Write(buf, binary.LittleEndian, hdr); err != nil {
		return err
	}
	offset := uint32(dirSize + entrySize*len(entries))
	for _, e := range entries {
		meta := iconDirEntry{
			Width:       sizeByte(e.Size),
			Height:      sizeByte(e.Size),
			Planes:      1,
			BitCount:    32,
			BytesInRes:  uint32(len(e.Data)),
			ImageOffset: offset,
		}
		if err := binary.Write(buf, binary.LittleEndian, meta); err != nil {
			return err
		}
		offset += uint32(len(e.Data))
	}
	for _, e := range entries {
		buf.Write(e.Data)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// WriteFile packs the set to path, overwriting any existing file there.
func WriteFile(path string, set *iconset.Set) error {
	buf := &bytes.Buffer{}
	if err := Encode(buf, set); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func sizeByte(size int) uint8 {
	if size >= MaxEntrySize {
		return 0
	}
	return uint8(size)
}

// DirEntry describes one embedded image as listed in the container directory.
type DirEntry struct {
	Size   int
	Offset uint32
	Length uint32
}

// ParseDir reads the container directory of an ICO blob.
func ParseDir(data []byte) ([]DirEntry, error) {
	r := bytes.NewReader(data)
	var hdr iconDir
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, err
	}
	if hdr.Reserved != 0 || hdr.Type != 1 || hdr.Count == 0 {
		return nil, fmt.Errorf("invalid icon file")
	}
	entries := make([]DirEntry, hdr.Count)
	for i := uint16(0); i < hdr.Count; i++ {
		var e iconDirEntry
		if err := binary.Read(r, binary.LittleEndian, &e); err != nil {
			return nil, err
		}
		if int64(e.ImageOffset)+int64(e.BytesInRes) > int64(len(data)) {
			return nil, fmt.Errorf("icon data out of range")
		}
		size := int(e.Width)
		if size == 0 {
			size = MaxEntrySize
		}
		entries[i] = DirEntry{Size: size, Offset: e.ImageOffset, Length: e.BytesInRes}
	}
	return entries, nil
}

// Extract returns the raw payload bytes for a directory entry.
func Extract(data []byte, e DirEntry) ([]byte, error) {
	end := int64(e.Offset) + int64(e.Length)
	if end > int64(len(data)) {
		return nil, fmt.Errorf("icon data out of range")
	}
	chunk := make([]byte, e.Length)
	copy(chunk, data[e.Offset:end])
	return chunk, nil
}
