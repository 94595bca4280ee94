// Package linerec implements the line loop shared by the text firmware loaders.
//
// A loader supplies a Handler that parses one trimmed, non-blank line into records
// and applies them to its image. Decode takes care of splitting the stream into
// lines, skipping blank ones, counting line numbers and wrapping failures into
// *firmware.FormatError or *firmware.ReadError.
package linerec

import (
	"bufio"
	"io"
	"strings"
	"unicode"

	"github.com/moffa90/go-firmware/firmware"
)

// Handler processes one non-blank line. lineNum is 1-based.
type Handler func(lineNum int, line string) error

// Decode feeds every non-blank line of r to handle, in order. Trailing whitespace
// (including a CR of a CRLF line ending) is trimmed before the line is handed over.
// It returns the number of lines read.
func Decode(r io.Reader, cfg firmware.LoadConfig, handle Handler) (int, error) {
	scanner := bufio.NewScanner(r)

	maxLine := cfg.MaxLineLength
	if maxLine <= 0 {
		maxLine = firmware.DefaultMaxLineLength
	}
	scanner.Buffer(make([]byte, 0, min(maxLine, 64*1024)), maxLine)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimRightFunc(scanner.Text(), unicode.IsSpace)

		// Skip empty lines
		if line == "" {
			continue
		}

		if err := handle(lineNum, line); err != nil {
			return lineNum, &firmware.FormatError{Line: lineNum, Err: err}
		}
	}

	if err := scanner.Err(); err != nil {
		return lineNum, &firmware.ReadError{Err: err}
	}

	return lineNum, nil
}
