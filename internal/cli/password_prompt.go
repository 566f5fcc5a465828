package cli

import (
	"errors"
	"io"
	"os"
	"strings"
)

var errNotTerminal = errors.New("stdin is not a terminal")

// readPasswordNoEcho reads one line from stdin with terminal echo disabled.
// Piped input that is not a terminal is read as is. Bytes past the newline
// stay unread so consecutive prompts can share stdin.
func readPasswordNoEcho(stdin *os.File) ([]byte, error) {
	if stdin == nil {
		return nil, errors.New("stdin unavailable")
	}

	restore, err := disableEcho(stdin)
	if err != nil && !errors.Is(err, errNotTerminal) {
		return nil, err
	}
	if restore != nil {
		defer restore()
	}

	line, err := readLine(stdin)
	if err != nil {
		return nil, err
	}
	return []byte(strings.TrimRight(line, "\r")), nil
}

func readLine(reader io.Reader) (string, error) {
	var builder strings.Builder
	buffer := make([]byte, 1)
	for {
		n, err := reader.Read(buffer)
		if n == 1 {
			if buffer[0] == '\n' {
				return builder.String(), nil
			}
			builder.WriteByte(buffer[0])
		}
		if errors.Is(err, io.EOF) {
			return builder.String(), nil
		}
		if err != nil {
			return "", err
		}
	}
}
