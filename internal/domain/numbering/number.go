// Package numbering formats human readable document numbers.
package numbering

import (
	"fmt"
	"strconv"
	"strings"
)

// Format renders PREFIX-YEAR-NNN. Sequences above 999 print in full.
func Format(prefix string, year int, seq int64) string {
	return fmt.Sprintf("%s-%d-%03d", prefix, year, seq)
}

// Parse splits a formatted number back into its parts
func Parse(number string) (prefix string, year int, seq int64, err error) {
	parts := strings.Split(number, "-")
	if len(parts) != 3 {
		return "", 0, 0, fmt.Errorf("malformed document number %q", number)
	}
	year, err = strconv.Atoi(parts[1])
	if err != nil {
		return "", 0, 0, fmt.Errorf("malformed year in %q: %w", number, err)
	}
	seq, err = strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return "", 0, 0, fmt.Errorf("malformed sequence in %q: %w", number, err)
	}
	return parts[0], year, seq, nil
}
