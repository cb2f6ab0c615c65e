package domain

import (
	"errors"
	"strings"
	"unicode/utf16"
)

// Payloads written by the editor extension are lz-string streams packed 15
// bits per UTF-16 unit, offset by 32, and always terminated by a space.
const (
	lzUnitOffset = 32
	lzUnitMax    = lzUnitOffset + 1<<15 - 1
	lzResetBit   = 1 << 14
)

var (
	errLZTruncated = errors.New("stream ended before end marker")
	errLZBadCode   = errors.New("invalid dictionary reference")
)

// isLegacyPayload reports text shaped like compressToUTF16 output
func isLegacyPayload(s string) bool {
	if !strings.HasSuffix(s, " ") {
		return false
	}
	for _, r := range s {
		if r < lzUnitOffset || r > lzUnitMax {
			return false
		}
	}
	return true
}

type lzReader struct {
	units []int
	val   int
	pos   int
	index int
}

func (r *lzReader) next() int {
	if r.index >= len(r.units) {
		r.index++
		return 0
	}
	v := r.units[r.index]
	r.index++
	return v
}

// read returns n bits, least significant first
func (r *lzReader) read(n int) int {
	bits := 0
	for power := 1; power != 1<<n; power <<= 1 {
		set := r.val&r.pos != 0
		r.pos >>= 1
		if r.pos == 0 {
			r.pos = lzResetBit
			r.val = r.next()
		}
		if set {
			bits |= power
		}
	}
	return bits
}

// decompressUTF16 decodes an lz-string compressToUTF16 payload
func decompressUTF16(s string) (string, error) {
	units := make([]int, 0, len(s))
	for _, c := range s {
		units = append(units, int(c)-lzUnitOffset)
	}
	if len(units) == 0 {
		return "", errLZTruncated
	}

	r := &lzReader{units: units, pos: lzResetBit, index: 1, val: units[0]}
	dict := [][]uint16{nil, nil, nil}
	enlargeIn, numBits := 4, 3

	var w []uint16
	switch r.read(2) {
	case 0:
		w = []uint16{uint16(r.read(8))}
	case 1:
		w = []uint16{uint16(r.read(16))}
	case 2:
		return "", nil
	default:
		return "", errLZBadCode
	}
	dict = append(dict, w)
	out := append([]uint16(nil), w...)

	for {
		if r.index > len(units) {
			return "", errLZTruncated
		}

		code := r.read(numBits)
		switch code {
		case 0, 1:
			width := 8
			if code == 1 {
				width = 16
			}
			dict = append(dict, []uint16{uint16(r.read(width))})
			code = len(dict) - 1
			enlargeIn--
		case 2:
			return string(utf16.Decode(out)), nil
		}
		if enlargeIn == 0 {
			enlargeIn = 1 << numBits
			numBits++
		}

		var entry []uint16
		switch {
		case code < len(dict) && dict[code] != nil:
			entry = dict[code]
		case code == len(dict):
			entry = append(append([]uint16(nil), w...), w[0])
		default:
			return "", errLZBadCode
		}
		out = append(out, entry...)

		dict = append(dict, append(append([]uint16(nil), w...), entry[0]))
		enlargeIn--
		w = entry
		if enlargeIn == 0 {
			enlargeIn = 1 << numBits
			numBits++
		}
	}
}
