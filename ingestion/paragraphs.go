package ingestion

import (
	"bufio"
	"io"
	"strings"
)

// maxLineSize bounds a single paragraph line.
const maxLineSize = 1 << 20

// ReadParagraphs returns the whitespace-trimmed non-blank lines of r, in
// order.
func ReadParagraphs(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var paragraphs []string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		paragraphs = append(paragraphs, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return paragraphs, nil
}
