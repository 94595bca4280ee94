package linerec

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/exp/constraints"

	"github.com/moffa90/go-firmware/firmware"
)

// DecodeBytes decodes the hex digits line[start:start+2*n] into n bytes.
// Upper and lower case digits are accepted.
func DecodeBytes(line string, start, n int) ([]byte, error) {
	end := start + 2*n
	if start < 0 || n < 0 || end > len(line) {
		return nil, firmware.ErrTruncatedRecord
	}

	data, err := hex.DecodeString(line[start:end])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", firmware.ErrInvalidHex, err)
	}

	return data, nil
}

// DecodeUint decodes width hex digits at line[start:] as a big-endian unsigned value.
// width must be even. The raw bytes are returned as well, for checksum computation.
func DecodeUint[T constraints.Unsigned](line string, start, width int) (T, []byte, error) {
	raw, err := DecodeBytes(line, start, width/2)
	if err != nil {
		return 0, nil, err
	}

	var v uint64
	for _, b := range raw {
		v = v<<8 | uint64(b)
	}

	return T(v), raw, nil
}
