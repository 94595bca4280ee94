package ihex

import (
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/moffa90/go-firmware/firmware"
	"github.com/moffa90/go-firmware/internal/linerec"
)

// Constants for Intel HEX record parsing. Indexes and sizes are in characters.
const (
	// StartCode is the first character of every record
	StartCode = ':'

	ByteCountIndex  = 1
	AddressIndex    = 3
	RecordTypeIndex = 7
	DataIndex       = 9

	ByteCountSize  = 2
	AddressSize    = 4
	RecordTypeSize = 2
	ChecksumSize   = 2

	// MinimumRecordLength is the length of a record without data
	MinimumRecordLength = DataIndex + ChecksumSize
)

// RecordType identifies the kind of an Intel HEX record.
type RecordType byte

// Supported record types.
const (
	RecordData                  RecordType = 0x00
	RecordEOF                   RecordType = 0x01
	RecordExtendedLinearAddress RecordType = 0x04
	RecordStartLinearAddress    RecordType = 0x05
)

func (t RecordType) String() string {
	switch t {
	case RecordData:
		return "data"
	case RecordEOF:
		return "eof"
	case RecordExtendedLinearAddress:
		return "extended-linear-address"
	case RecordStartLinearAddress:
		return "start-linear-address"
	default:
		return fmt.Sprintf("%02Xh", byte(t))
	}
}

type record struct {
	Type    RecordType
	Address uint32
	Data    []byte
}

// Load loads an Intel HEX file from the given path.
//
// Example:
//
//	img, err := ihex.Load("app.hex")
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

// LoadReader loads Intel HEX records from any io.Reader.
//
// Example:
//
//	img, err := ihex.LoadReader(strings.NewReader(":0400000001020304F2\n:00000001FF\n"))
func LoadReader(r io.Reader, opts ...firmware.LoadOption) (*firmware.Image, error) {
	cfg := firmware.NewLoadConfig(opts...)
	log := cfg.Logger

	img := firmware.NewImage(true)

	var extendedLinearAddress uint32
	eofSeen := false

	lines, err := linerec.Decode(r, cfg, func(lineNum int, line string) error {
		if eofSeen {
			return firmware.ErrRecordAfterEOF
		}

		rec, err := parseRecord(line)
		if err != nil {
			return err
		}

		rec.Address += extendedLinearAddress

		log.Debug().
			Int("line", lineNum).
			Str("type", rec.Type.String()).
			Str("address", fmt.Sprintf("0x%08X", rec.Address)).
			Int("size", len(rec.Data)).
			Msg("record")

		switch rec.Type {
		case RecordData:
			img.SetData(rec.Address, rec.Data)
		case RecordEOF:
			eofSeen = true
		case RecordExtendedLinearAddress:
			extendedLinearAddress, err = extendedAddress(rec)
			if err != nil {
				return err
			}
			log.Debug().
				Int("line", lineNum).
				Str("offset", fmt.Sprintf("0x%08X", extendedLinearAddress)).
				Msg("extended linear address")
		default:
			// Start Linear Address carries no image data
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Debug().Int("lines", lines).Int("blocks", img.Len()).Msg("intel hex loaded")

	return img, nil
}

// parseRecord parses a single Intel HEX record line.
//
// Record format:
//
//	:[ByteCount(1 byte)][Address(2 bytes)][RecordType(1 byte)][Data(N bytes)][Checksum(1 byte)]
//
// Multi-byte fields are big-endian.
func parseRecord(line string) (*record, error) {
	if len(line) < MinimumRecordLength {
		return nil, firmware.ErrTruncatedRecord
	}

	if line[0] != StartCode {
		r, _ := utf8.DecodeRuneInString(line)
		return nil, fmt.Errorf("%w '%c' (%02Xh)", firmware.ErrInvalidStartCode, r, r)
	}

	byteCount, byteCountRaw, err := linerec.DecodeUint[uint8](line, ByteCountIndex, ByteCountSize)
	if err != nil {
		return nil, err
	}
	address, addressRaw, err := linerec.DecodeUint[uint32](line, AddressIndex, AddressSize)
	if err != nil {
		return nil, err
	}
	typeCode, typeRaw, err := linerec.DecodeUint[uint8](line, RecordTypeIndex, RecordTypeSize)
	if err != nil {
		return nil, err
	}

	if len(line) != MinimumRecordLength+int(byteCount)*2 {
		return nil, firmware.ErrInvalidRecordLength
	}

	recType := RecordType(typeCode)
	switch recType {
	case RecordData, RecordEOF, RecordExtendedLinearAddress, RecordStartLinearAddress:
	default:
		return nil, fmt.Errorf("%w '%02Xh'", firmware.ErrUnsupportedRecordType, typeCode)
	}

	data, err := linerec.DecodeBytes(line, DataIndex, int(byteCount))
	if err != nil {
		return nil, err
	}

	checksum, _, err := linerec.DecodeUint[uint8](line, DataIndex+int(byteCount)*2, ChecksumSize)
	if err != nil {
		return nil, err
	}

	expected := linerec.TwosComplementChecksum(byteCountRaw, addressRaw, typeRaw, data)
	if checksum != expected {
		return nil, &firmware.ChecksumError{Expected: expected, Reported: checksum}
	}

	return &record{
		Type:    recType,
		Address: address,
		Data:    data,
	}, nil
}

// extendedAddress returns the address offset carried by an Extended Linear Address record.
func extendedAddress(rec *record) (uint32, error) {
	if len(rec.Data) != 2 {
		return 0, firmware.ErrInvalidExtendedAddress
	}
	return uint32(rec.Data[0])<<24 + uint32(rec.Data[1])<<16, nil
}
