package srec

import (
	"fmt"
	"io"
	"os"

	"github.com/moffa90/go-firmware/firmware"
	"github.com/moffa90/go-firmware/internal/linerec"
)

// Constants for S-record parsing. Indexes and sizes are in characters.
const (
	RecordTypeIndex = 0
	ByteCountIndex  = 2
	AddressIndex    = 4

	RecordTypeSize = 2
	ByteCountSize  = 2
	ChecksumSize   = 2

	// MinimumRecordLength is the length of a record with a 16-bit address and no data
	MinimumRecordLength = AddressIndex + 4 + ChecksumSize
)

// RecordType identifies an S-record type, S0 to S9.
type RecordType byte

// Record types.
const (
	S0 RecordType = iota
	S1
	S2
	S3
	S4
	S5
	S6
	S7
	S8
	S9
)

func (t RecordType) String() string {
	return fmt.Sprintf("S%d", byte(t))
}

// AddressSize returns the width of the address field in hex characters.
func (t RecordType) AddressSize() int {
	switch t {
	case S2:
		return 6
	case S3:
		return 8
	default:
		return 4
	}
}

// IsData reports whether records of this type carry image data.
func (t RecordType) IsData() bool {
	return t == S1 || t == S2 || t == S3
}

type record struct {
	Type    RecordType
	Address uint32
	Data    []byte
}

// Load loads a Motorola S-record file from the given path.
//
// Example:
//
//	img, err := srec.Load("app.s19")
//	if err != nil {
//	    log.Fatal(err)
//	}
func Load(path string, opts ...firmware.LoadOption) (*firmware.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &firmware.ReadError{Err: err}
	}
	defer func() { _ = f.Close() }()

	return LoadReader(f, opts...)
}

// LoadReader loads S-records from any io.Reader.
func LoadReader(r io.Reader, opts ...firmware.LoadOption) (*firmware.Image, error) {
	cfg := firmware.NewLoadConfig(opts...)
	log := cfg.Logger

	img := firmware.NewImage(true)

	lines, err := linerec.Decode(r, cfg, func(lineNum int, line string) error {
		rec, err := parseRecord(line)
		if err != nil {
			return err
		}

		log.Debug().
			Int("line", lineNum).
			Str("type", rec.Type.String()).
			Str("address", fmt.Sprintf("0x%08X", rec.Address)).
			Int("size", len(rec.Data)).
			Msg("record")

		if rec.Type.IsData() {
			img.SetData(rec.Address, rec.Data)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Debug().Int("lines", lines).Int("blocks", img.Len()).Msg("s-record loaded")

	return img, nil
}

// parseRecord parses a single S-record line.
func parseRecord(line string) (*record, error) {
	if len(line) < MinimumRecordLength {
		return nil, firmware.ErrTruncatedRecord
	}

	recType, err := parseRecordType(line[RecordTypeIndex : RecordTypeIndex+RecordTypeSize])
	if err != nil {
		return nil, err
	}

	addressSize := recType.AddressSize()
	if len(line) < AddressIndex+addressSize+ChecksumSize {
		return nil, firmware.ErrTruncatedRecord
	}

	byteCount, byteCountRaw, err := linerec.DecodeUint[uint8](line, ByteCountIndex, ByteCountSize)
	if err != nil {
		return nil, err
	}
	address, addressRaw, err := linerec.DecodeUint[uint32](line, AddressIndex, addressSize)
	if err != nil {
		return nil, err
	}

	if len(line) != AddressIndex+int(byteCount)*2 {
		return nil, firmware.ErrInvalidRecordLength
	}

	dataSize := int(byteCount) - (addressSize+ChecksumSize)/2
	dataIndex := AddressIndex + addressSize

	data, err := linerec.DecodeBytes(line, dataIndex, dataSize)
	if err != nil {
		return nil, err
	}

	checksum, _, err := linerec.DecodeUint[uint8](line, dataIndex+dataSize*2, ChecksumSize)
	if err != nil {
		return nil, err
	}

	expected := linerec.OnesComplementChecksum(byteCountRaw, addressRaw, data)
	if checksum != expected {
		return nil, &firmware.ChecksumError{Expected: expected, Reported: checksum}
	}

	return &record{
		Type:    recType,
		Address: address,
		Data:    data,
	}, nil
}

func parseRecordType(code string) (RecordType, error) {
	if len(code) != RecordTypeSize || code[0] != 'S' || code[1] < '0' || code[1] > '9' {
		return 0, fmt.Errorf("%w '%s'", firmware.ErrUnsupportedRecordType, code)
	}
	return RecordType(code[1] - '0'), nil
}
