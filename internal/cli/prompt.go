package cli

import (
	"errors"
	"io"
	"os"
	"strings"
)

const maxPromptLineBytes = 1024

var (
	errStdinUnavailable  = errors.New("stdin unavailable")
	errPromptLineTooLong = errors.New("input line too long")
)

// readPassword is swapped out in tests.
var readPassword = readPasswordNoEcho

// readPasswordNoEcho reads one line from stdin with terminal echo turned off.
// Input that is not a terminal, such as a pipe, is read as-is.
func readPasswordNoEcho(stdin *os.File) ([]byte, error) {
	if stdin == nil {
		return nil, errStdinUnavailable
	}

	restore, err := disableEcho(stdin)
	if err != nil {
		return nil, err
	}
	defer restore()

	return readLine(stdin)
}

// readLine reads byte by byte so consecutive prompts on a pipe do not lose
// buffered input.
func readLine(reader io.Reader) ([]byte, error) {
	line := make([]byte, 0, 64)
	buffer := make([]byte, 1)
	for {
		count, err := reader.Read(buffer)
		if count == 1 {
			if buffer[0] == '\n' {
				break
			}
			if len(line) >= maxPromptLineBytes {
				return nil, errPromptLineTooLong
			}
			line = append(line, buffer[0])
		}
		if errors.Is(err, io.EOF) {
			if len(line) == 0 {
				return nil, io.ErrUnexpectedEOF
			}
			break
		}
		if err != nil {
			return nil, err
		}
	}
	return []byte(strings.TrimRight(string(line), "\r")), nil
}
