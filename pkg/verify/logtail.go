package verify

import (
	"io"
	"os"
	"strings"

	"github.com/exaima/redeploy/pkg/errors"
)

// maxTailBytes bounds how much of the sink is read when extracting a tail,
// so a large log never gets loaded whole.
const maxTailBytes = 64 * 1024

// TailLines returns the final n lines of the file at path. The read is
// bounded to the last maxTailBytes regardless of file size.
func TailLines(path string, n int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewIOError("failed to open log sink", err).WithContext("path", path)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, errors.NewIOError("failed to stat log sink", err).WithContext("path", path)
	}

	size := info.Size()
	offset := int64(0)
	if size > maxTailBytes {
		offset = size - maxTailBytes
	}

	buf := make([]byte, size-offset)
	if _, err := f.ReadAt(buf, offset); err != nil && err != io.EOF {
		return nil, errors.NewIOError("failed to read log sink", err).WithContext("path", path)
	}

	text := strings.TrimRight(string(buf), "\n")
	if text == "" {
		return nil, nil
	}
	lines := strings.Split(text, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines, nil
}
