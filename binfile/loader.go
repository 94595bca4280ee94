package binfile

import (
	"fmt"
	"io"
	"os"

	"github.com/moffa90/go-firmware/firmware"
)

// MaxSize is the largest binary image, in bytes, that fits the 32-bit address space.
const MaxSize = 1<<32 - 1

// Load loads a binary file from the given path. The file size is taken up front and
// a file that yields fewer bytes is reported as a *firmware.ReadError.
func Load(path string, opts ...firmware.LoadOption) (*firmware.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &firmware.ReadError{Err: err}
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, &firmware.ReadError{Err: err}
	}

	return load(f, info.Size(), firmware.NewLoadConfig(opts...))
}

// LoadReader loads binary data from any io.Reader, reading it until EOF.
func LoadReader(r io.Reader, opts ...firmware.LoadOption) (*firmware.Image, error) {
	cfg := firmware.NewLoadConfig(opts...)

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &firmware.ReadError{Err: fmt.Errorf("couldn't read binary file contents: %w", err)}
	}
	if err := checkSize(int64(len(data))); err != nil {
		return nil, err
	}

	return newImage(data, cfg), nil
}

// load reads exactly size bytes from r.
func load(r io.Reader, size int64, cfg firmware.LoadConfig) (*firmware.Image, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}

	data := make([]byte, size)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, &firmware.ReadError{Err: fmt.Errorf("couldn't read binary file contents: %w", err)}
	}

	return newImage(data, cfg), nil
}

// checkSize rejects contents that do not fit the 32-bit address space.
func checkSize(size int64) error {
	if size < 0 || uint64(size) > MaxSize {
		return &firmware.ReadError{Err: fmt.Errorf("binary file too large: %d bytes", size)}
	}
	return nil
}

func newImage(data []byte, cfg firmware.LoadConfig) *firmware.Image {
	img := firmware.NewImage(false)
	img.SetData(0, data)

	cfg.Logger.Debug().Int("size", len(data)).Msg("binary loaded")

	return img
}
