package srec

import (
	"bytes"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moffa90/go-firmware/firmware"
)

func mustHex(t testing.TB, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestLoadReader(t *testing.T) {
	type wantBlock struct {
		address uint32
		data    string
	}

	tests := []struct {
		name  string
		input string
		want  []wantBlock
	}{
		{
			name: "single block with header and trailer",
			input: "S00F000068656C6C6F202020202000003C\n" +
				"S11F00007C0802A6900100049421FFF07C6C1B787C8C23783C6000003863000026\n" +
				"S11F001C4BFFFFE5398000007D83637880010014382100107C0803A64E800020E9\n" +
				"S111003848656C6C6F20776F726C642E0A0042\n" +
				"S5030003F9\n" +
				"S9030000FC",
			want: []wantBlock{
				{0x0000, "7C0802A6900100049421FFF07C6C1B787C8C23783C60000038630000" +
					"4BFFFFE5398000007D83637880010014382100107C0803A64E800020" +
					"48656C6C6F20776F726C642E0A00"},
			},
		},
		{
			name: "multiple blocks with 16, 24 and 32 bit addresses",
			input: "S11F10007C0802A6900100049421FFF07C6C1B787C8C23783C6000003863000016\n" +
				"S2200700004BFFFFE5398000007D83637880010014382100107C0803A64E800020FD\n" +
				"S3138000001048656C6C6F20776F726C642E0A00E8\n",
			want: []wantBlock{
				{0x00001000, "7C0802A6900100049421FFF07C6C1B787C8C23783C60000038630000"},
				{0x00070000, "4BFFFFE5398000007D83637880010014382100107C0803A64E800020"},
				{0x80000010, "48656C6C6F20776F726C642E0A00"},
			},
		},
		{
			name:  "only header and trailer",
			input: "S00F000068656C6C6F202020202000003C\nS9030000FC\n",
			want:  []wantBlock{},
		},
		{
			name:  "lower case digits and crlf",
			input: "S111003848656c6c6f20776f726c642e0a0042\r\nS9030000fc\r\n",
			want:  []wantBlock{{0x0038, "48656C6C6F20776F726C642E0A00"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := LoadReader(strings.NewReader(tt.input))
			require.NoError(t, err)

			assert.True(t, img.HasExplicitAddresses())

			blocks := img.Blocks()
			require.Len(t, blocks, len(tt.want))
			for i, want := range tt.want {
				assert.Equal(t, want.address, blocks[i].StartAddress, "block %d address", i)
				assert.Equal(t, mustHex(t, want.data), blocks[i].Data, "block %d data", i)
			}
		})
	}
}

func TestLoadReader_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantLine int
		wantIs   error
		wantMsg  string
	}{
		{
			name:     "invalid hex in byte count",
			input:    "S11l003848656C6C6F20776F726C642E0A0042",
			wantLine: 1,
			wantIs:   firmware.ErrInvalidHex,
			wantMsg:  "Invalid hexadecimal value",
		},
		{
			name:     "invalid hex in address",
			input:    "S1110N3848656C6C6F20776F726C642E0A0042",
			wantLine: 1,
			wantIs:   firmware.ErrInvalidHex,
			wantMsg:  "Invalid hexadecimal value",
		},
		{
			name:     "invalid hex in data",
			input:    "S111003848656C6C6F20776F72iC642E0A0042",
			wantLine: 1,
			wantIs:   firmware.ErrInvalidHex,
			wantMsg:  "Invalid hexadecimal value",
		},
		{
			name:     "invalid hex in checksum",
			input:    "S111003848656C6C6F20776F726C642E0A004x",
			wantLine: 1,
			wantIs:   firmware.ErrInvalidHex,
			wantMsg:  "Invalid hexadecimal value",
		},
		{
			name:     "unsupported record type",
			input:    "R111003848656C6C6F20776F726C642E0A0042",
			wantLine: 1,
			wantIs:   firmware.ErrUnsupportedRecordType,
			wantMsg:  "Unsupported record type 'R1'",
		},
		{
			name:     "lower case type character",
			input:    "s9030000FC",
			wantLine: 1,
			wantIs:   firmware.ErrUnsupportedRecordType,
			wantMsg:  "Unsupported record type 's9'",
		},
		{
			name:     "invalid checksum",
			input:    "S111003848656C6C6F20776F726C642E0A0043",
			wantLine: 1,
			wantMsg:  "Invalid checksum (expected: 42h, reported: 43h)",
		},
		{
			name:     "truncated record",
			input:    "S111003",
			wantLine: 1,
			wantIs:   firmware.ErrTruncatedRecord,
			wantMsg:  "Truncated record",
		},
		{
			name:     "truncated 32 bit address",
			input:    "S30580000010",
			wantLine: 1,
			wantIs:   firmware.ErrTruncatedRecord,
			wantMsg:  "Truncated record",
		},
		{
			name:     "invalid record length",
			input:    "S110003848656C6C6F20776F726C642E0A0042",
			wantLine: 1,
			wantIs:   firmware.ErrInvalidRecordLength,
			wantMsg:  "Invalid record length",
		},
		{
			name: "error on later line",
			input: "S00F000068656C6C6F202020202000003C\n" +
				"\n" +
				"S111003848656C6C6F20776F726C642E0A0043\n",
			wantLine: 3,
			wantMsg:  "Invalid checksum",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := LoadReader(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Nil(t, img)

			var fe *firmware.FormatError
			require.True(t, errors.As(err, &fe), "expected *firmware.FormatError, got %T", err)
			assert.Equal(t, tt.wantLine, fe.Line)
			assert.Contains(t, err.Error(), tt.wantMsg)
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}
		})
	}
}

func TestLoadReader_WithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	_, err := LoadReader(strings.NewReader("S3138000001048656C6C6F20776F726C642E0A00E8\n"),
		firmware.WithLogger(logger))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"type":"S3"`)
	assert.Contains(t, out, `"address":"0x80000010"`)
	assert.Contains(t, out, `"message":"s-record loaded"`)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.s19")
	require.NoError(t, os.WriteFile(path, []byte("S111003848656C6C6F20776F726C642E0A0042\nS9030000FC\n"), 0o600))

	img, err := Load(path)
	require.NoError(t, err)

	data, ok := img.GetData(0x0038, 14)
	require.True(t, ok)
	assert.Equal(t, []byte("Hello world.\n\x00"), data)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.s19"))

	var re *firmware.ReadError
	require.True(t, errors.As(err, &re))
}

func TestRecordType(t *testing.T) {
	tests := []struct {
		typ         RecordType
		name        string
		addressSize int
		isData      bool
	}{
		{S0, "S0", 4, false},
		{S1, "S1", 4, true},
		{S2, "S2", 6, true},
		{S3, "S3", 8, true},
		{S5, "S5", 4, false},
		{S7, "S7", 4, false},
		{S9, "S9", 4, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.typ.String())
			assert.Equal(t, tt.addressSize, tt.typ.AddressSize())
			assert.Equal(t, tt.isData, tt.typ.IsData())
		})
	}
}

func BenchmarkParseRecord(b *testing.B) {
	line := "S11F00007C0802A6900100049421FFF07C6C1B787C8C23783C6000003863000026"
	for i := 0; i < b.N; i++ {
		_, _ = parseRecord(line)
	}
}
