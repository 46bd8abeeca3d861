package jobs

import (
	"fmt"
	"os"
)

// AppendLines appends one line per entry to the plain-text log file at path,
// creating it when absent. External tooling tails these files, so the format
// stays `<timestamp> <message>` with no structure beyond that.
func AppendLines(path string, lines []string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	for _, line := range lines {
		if _, err := fmt.Fprintln(f, line); err != nil {
			return fmt.Errorf("write log line: %w", err)
		}
	}

	return nil
}
