package dataset

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"

	"github.com/dygy/guitarset/internal/features"
)

// npy format version 1.0: magic, header length, python-dict header padded
// to a 64-byte boundary, then the raw little-endian values in C order.
var npyMagic = []byte("\x93NUMPY\x01\x00")

// WriteNPY persists the feature tensor as a NumPy .npy array of float64,
// so the downstream training code can np.load it directly. Overwrites any
// existing file.
func WriteNPY(path string, b features.Batch) error {
	samples, rows, cols := b.Shape()

	header := fmt.Sprintf("{'descr': '<f8', 'fortran_order': False, 'shape': (%d, %d, %d), }", samples, rows, cols)
	// pad with spaces so magic+length+header is a multiple of 64, ending
	// in a newline
	total := len(npyMagic) + 2 + len(header) + 1
	pad := (64 - total%64) % 64
	for i := 0; i < pad; i++ {
		header += " "
	}
	header += "\n"

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.Write(npyMagic); err != nil {
		return fmt.Errorf("write magic: %w", err)
	}
	if err := binary.Write(f, binary.LittleEndian, uint16(len(header))); err != nil {
		return fmt.Errorf("write header length: %w", err)
	}
	if _, err := f.Write([]byte(header)); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	buf := make([]byte, 8)
	for _, matrix := range b {
		for _, row := range matrix {
			for _, v := range row {
				binary.LittleEndian.PutUint64(buf, math.Float64bits(v))
				if _, err := f.Write(buf); err != nil {
					return fmt.Errorf("write values: %w", err)
				}
			}
		}
	}

	return nil
}
