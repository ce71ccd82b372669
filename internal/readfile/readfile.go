// Package readfile loads preview text.
package readfile

import (
	"bytes"
	"os"
	"strings"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Lines returns the lines of path with CRLF endings folded to LF and a
// leading byte order mark removed. A trailing newline yields a final empty
// line so line numbers match the file.
func Lines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	normalized := strings.ReplaceAll(string(data), "\r\n", "\n")
	return strings.Split(normalized, "\n"), nil
}
