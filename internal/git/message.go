package git

import (
	"fmt"
	"os"
	"strings"
)

// MessageFile is a pending commit message kept on disk, such as the file git
// hands to a prepare-commit-msg hook. A trailing block of '#' comment lines
// is kept aside and written back unchanged.
type MessageFile struct {
	path     string
	body     string
	comments string
}

// ReadMessageFile loads the message at path. A missing file is an empty message.
func ReadMessageFile(path string) (*MessageFile, error) {
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read message file %s: %w", path, err)
	}
	body, comments := splitComments(string(data))
	return &MessageFile{path: path, body: body, comments: comments}, nil
}

// Path returns the file location.
func (m *MessageFile) Path() string {
	return m.path
}

// Message returns the message without its trailing comment block.
func (m *MessageFile) Message() string {
	return m.body
}

// SetMessage replaces the message and rewrites the file.
func (m *MessageFile) SetMessage(text string) error {
	content := text + "\n"
	if m.comments != "" {
		content += "\n" + m.comments
	}
	if err := os.WriteFile(m.path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write message file %s: %w", m.path, err)
	}
	m.body = text
	return nil
}

// Clear empties the message, keeping the comment block.
func (m *MessageFile) Clear() error {
	if err := os.WriteFile(m.path, []byte(m.comments), 0644); err != nil {
		return fmt.Errorf("failed to clear message file %s: %w", m.path, err)
	}
	m.body = ""
	return nil
}

// splitComments separates content from its trailing run of comment and blank
// lines. Only a run containing at least one comment line is split off.
func splitComments(content string) (body, comments string) {
	lines := strings.SplitAfter(content, "\n")
	cut := len(lines)
	for i := len(lines) - 1; i >= 0; i-- {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" {
			continue
		}
		if !strings.HasPrefix(trimmed, "#") {
			break
		}
		cut = i
	}
	if cut == len(lines) {
		return content, ""
	}
	return strings.Join(lines[:cut], ""), strings.Join(lines[cut:], "")
}
