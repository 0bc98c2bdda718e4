// Package jpegquality estimates the quality setting a JPEG file was encoded
// with by reading its quantization tables. The estimate inverts the standard
// table scaling, so for files produced with the usual Annex K tables (which
// includes everything image/jpeg writes) the original setting is recovered
// exactly; for custom tables the closest match is reported.
package jpegquality

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
)

var (
	ErrInvalidJPEG  = errors.New("invalid JPEG header")
	ErrWrongTable   = errors.New("wrong size for quantization table")
	ErrShortSegment = errors.New("short segment length")
	ErrShortDQT     = errors.New("section DQT is too short")

	errNoDQT = errors.New("no quantization table found")
)

const (
	markerSOI = 0xffd8
	markerEOI = 0xffd9
	markerSOS = 0xffda
	markerDQT = 0xffdb
)

type jpegReader struct {
	rs      io.ReadSeeker
	quality int
}

// New reads quantization tables from rs, which is rewound first so the same
// reader can be inspected repeatedly.
func New(rs io.ReadSeeker) (*jpegReader, error) {

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	jr := &jpegReader{rs: rs}
	if jr.readMarker() != markerSOI {
		return nil, ErrInvalidJPEG
	}

	for {
		switch m := jr.readMarker(); m {
		case 0:
			return nil, io.ErrUnexpectedEOF
		case markerEOI, markerSOS:
			// entropy coded data follows SOS, no tables past this point
			return nil, errNoDQT
		case markerDQT:
			q, err := jr.readDQT()
			if err != nil {
				return nil, err
			}
			jr.quality = q
			return jr, nil
		default:
			if err := jr.skipSegment(); err != nil {
				return nil, err
			}
		}
	}
}

// NewWithBytes is a convenience wrapper over New for in-memory images.
func NewWithBytes(data []byte) (*jpegReader, error) {
	return New(bytes.NewReader(data))
}

// Quality returns estimated encoding quality in the 1 to 100 range.
func (jr *jpegReader) Quality() int {
	return jr.quality
}

// readMarker returns the next two bytes as a marker or 0 when the stream ends
// or is not positioned at one.
func (jr *jpegReader) readMarker() int {
	var buf [2]byte
	if _, err := io.ReadFull(jr.rs, buf[:]); err != nil {
		return 0
	}
	if buf[0] != 0xff {
		return 0
	}
	return int(binary.BigEndian.Uint16(buf[:]))
}

func (jr *jpegReader) segmentLength() (int, error) {
	var buf [2]byte
	if _, err := io.ReadFull(jr.rs, buf[:]); err != nil {
		return 0, err
	}
	l := int(binary.BigEndian.Uint16(buf[:]))
	if l < 2 {
		return 0, ErrShortSegment
	}
	return l - 2, nil
}

func (jr *jpegReader) skipSegment() error {
	l, err := jr.segmentLength()
	if err != nil {
		return err
	}
	_, err = jr.rs.Seek(int64(l), io.SeekCurrent)
	return err
}

// readDQT parses every table in the segment and estimates quality from the
// luminance one, falling back to whatever table comes first.
func (jr *jpegReader) readDQT() (int, error) {

	l, err := jr.segmentLength()
	if err != nil {
		return 0, err
	}
	// at least a precision/id byte and one 8-bit table
	if l < 65 {
		return 0, ErrShortDQT
	}

	buf := make([]byte, l)
	if _, err := io.ReadFull(jr.rs, buf); err != nil {
		return 0, err
	}

	quality := 0
	for off := 0; off < len(buf); {
		pqtq := buf[off]
		off++

		precision, id := int(pqtq>>4), int(pqtq&0x0f)

		size := blockSize
		if precision > 0 {
			size = blockSize * 2
		}
		if off+size > len(buf) {
			return 0, ErrWrongTable
		}

		var tab [blockSize]int
		if precision > 0 {
			for k := range blockSize {
				tab[k] = int(binary.BigEndian.Uint16(buf[off+k*2:]))
			}
		} else {
			for k := range blockSize {
				tab[k] = int(buf[off+k])
			}
		}
		off += size

		base := &baseChrominance
		if id == 0 {
			base = &baseLuminance
		}
		q := estimate(&tab, base)

		if quality == 0 || id == 0 {
			quality = q
		}
		if id == 0 {
			break
		}
	}
	if quality == 0 {
		return 0, errNoDQT
	}
	return quality, nil
}

const blockSize = 64

// estimate finds the quality whose scaled standard table is closest to tab.
// Scaling follows ITU-T T.81: scale = 5000/q below 50, 200-2q above, each
// coefficient (base*scale + 50)/100 clamped to 1..255.
func estimate(tab *[blockSize]int, base *[blockSize]int) int {

	bestQ, bestDiff := 1, int(^uint(0)>>1)
	for q := 1; q <= 100; q++ {
		scale := 200 - q*2
		if q < 50 {
			scale = 5000 / q
		}
		diff := 0
		for k := range blockSize {
			v := (base[zigzag[k]]*scale + 50) / 100
			if v < 1 {
				v = 1
			}
			if v > 255 {
				v = 255
			}
			if d := tab[k] - v; d < 0 {
				diff -= d
			} else {
				diff += d
			}
		}
		if diff < bestDiff {
			bestDiff, bestQ = diff, q
		}
		if diff == 0 {
			break
		}
	}
	return bestQ
}

// Annex K reference tables in natural order.
var baseLuminance = [blockSize]int{
	16, 11, 10, 16, 24, 40, 51, 61,
	12, 12, 14, 19, 26, 58, 60, 55,
	14, 13, 16, 24, 40, 57, 69, 56,
	14, 17, 22, 29, 51, 87, 80, 62,
	18, 22, 37, 56, 68, 109, 103, 77,
	24, 35, 55, 64, 81, 104, 113, 92,
	49, 64, 78, 87, 103, 121, 120, 101,
	72, 92, 95, 98, 112, 100, 103, 99,
}

var baseChrominance = [blockSize]int{
	17, 18, 24, 47, 99, 99, 99, 99,
	18, 21, 26, 66, 99, 99, 99, 99,
	24, 26, 56, 99, 99, 99, 99, 99,
	47, 66, 99, 99, 99, 99, 99, 99,
	99, 99, 99, 99, 99, 99, 99, 99,
	99, 99, 99, 99, 99, 99, 99, 99,
	99, 99, 99, 99, 99, 99, 99, 99,
	99, 99, 99, 99, 99, 99, 99, 99,
}

// zigzag maps a coefficient position in the file to its natural table index.
var zigzag = [blockSize]int{
	0, 1, 8, 16, 9, 2, 3, 10,
	17, 24, 32, 25, 18, 11, 4, 5,
	12, 19, 26, 33, 40, 48, 41, 34,
	27, 20, 13, 6, 7, 14, 21, 28,
	35, 42, 49, 56, 57, 50, 43, 36,
	29, 22, 15, 23, 30, 37, 44, 51,
	58, 59, 52, 45, 38, 31, 39, 46,
	53, 60, 61, 54, 47, 55, 62, 63,
}
