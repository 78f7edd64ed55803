package icon

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/png"
	"path/filepath"
	"sort"
)

const (
	icoDirSize      = 6
	icoDirEntrySize = 16
	icoMaxDimension = 256
)

const ICOName = "icon.ico"

// ICOEntry is one PNG-compressed image inside an ICO container.
type ICOEntry struct {
	Width  int
	Height int
	PNG    []byte
}

func ICOEntryFromImage(img image.Image) (ICOEntry, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return ICOEntry{}, fmt.Errorf("encode ico entry: %w", err)
	}
	b := img.Bounds()
	return ICOEntry{Width: b.Dx(), Height: b.Dy(), PNG: buf.Bytes()}, nil
}

// FitsICO reports whether an image of that edge length can live in an ICO.
func FitsICO(size int) bool {
	return size > 0 && size <= icoMaxDimension
}

// BuildICO packs entries, smallest first, into a Vista-style ICO file.
func BuildICO(entries []ICOEntry) ([]byte, error) {
	if len(entries) == 0 {
		return nil, errors.New("ico needs at least one image")
	}
	if len(entries) > 0xffff {
		return nil, fmt.Errorf("ico supports at most 65535 images, got %d", len(entries))
	}
	sorted := append([]ICOEntry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Width < sorted[j].Width
	})

	total := icoDirSize + icoDirEntrySize*len(sorted)
	for _, e := range sorted {
		if !FitsICO(e.Width) || !FitsICO(e.Height) {
			return nil, fmt.Errorf("ico dimensions must be 1..%d, got %dx%d", icoMaxDimension, e.Width, e.Height)
		}
		total += len(e.PNG)
	}

	buf := make([]byte, total)
	binary.LittleEndian.PutUint16(buf[0:2], 0) // reserved
	binary.LittleEndian.PutUint16(buf[2:4], 1) // image type (icon)
	binary.LittleEndian.PutUint16(buf[4:6], uint16(len(sorted)))

	offset := icoDirSize + icoDirEntrySize*len(sorted)
	for i, e := range sorted {
		entry := buf[icoDirSize+i*icoDirEntrySize : icoDirSize+(i+1)*icoDirEntrySize]
		entry[0] = icoDimByte(e.Width)
		entry[1] = icoDimByte(e.Height)
		entry[2] = 0                                  // palette
		entry[3] = 0                                  // reserved
		binary.LittleEndian.PutUint16(entry[4:6], 1)  // color planes
		binary.LittleEndian.PutUint16(entry[6:8], 32) // bits per pixel
		binary.LittleEndian.PutUint32(entry[8:12], uint32(len(e.PNG)))
		binary.LittleEndian.PutUint32(entry[12:16], uint32(offset))
		copy(buf[offset:], e.PNG)
		offset += len(e.PNG)
	}
	return buf, nil
}

func ICOPath(dir string) string {
	return filepath.Join(dir, ICOName)
}

func icoDimByte(v int) byte {
	if v >= icoMaxDimension {
		return 0
	}
	return byte(v)
}
