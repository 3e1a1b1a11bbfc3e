package commitcfg

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// HasIgnoreEntry reports whether content lists entry, either bare or
// anchored at the root with a leading slash.
func HasIgnoreEntry(content, entry string) bool {
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == entry || trimmed == "/"+entry {
			return true
		}
	}
	return false
}

// ignoreAddition returns the text to append so content ends with entry on
// its own line. A newline is prepended only when the last line is unterminated.
func ignoreAddition(content, entry string) string {
	if content == "" || strings.HasSuffix(content, "\n") {
		return entry + "\n"
	}
	return "\n" + entry + "\n"
}

// EnsureIgnoreEntry appends entry to the ignore list at path unless it is
// already there. A missing file is treated as empty and created. It reports
// whether anything was written.
func EnsureIgnoreEntry(path, entry string) (bool, error) {
	var content string
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		content = string(data)
	case errors.Is(err, os.ErrNotExist):
	default:
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if HasIgnoreEntry(content, entry) {
		return false, nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return false, fmt.Errorf("failed to open %s: %w", path, err)
	}
	if _, err := f.WriteString(ignoreAddition(content, entry)); err != nil {
		f.Close()
		return false, fmt.Errorf("failed to append to %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return false, fmt.Errorf("failed to close %s: %w", path, err)
	}
	return true, nil
}
