package orchestrator

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/atotto/clipboard"

	"commitail-cli/internal/interfaces"
)

var errClipboardUnsupported = errors.New("clipboard is not supported on this system")

// MessageWriter delivers composed messages to stdout, the clipboard or a file
type MessageWriter struct {
	stdout          io.Writer
	copyToClipboard func(string) error
}

// NewOutputHandler writes to the process's stdout and the system clipboard
func NewOutputHandler() interfaces.OutputHandler {
	return NewOutputHandlerTo(os.Stdout)
}

// NewOutputHandlerTo writes stdout-bound messages to w
func NewOutputHandlerTo(w io.Writer) interfaces.OutputHandler {
	writer := &MessageWriter{stdout: w, copyToClipboard: clipboard.WriteAll}
	if clipboard.Unsupported {
		writer.copyToClipboard = nil
	}
	return writer
}

func (w *MessageWriter) WriteToClipboard(content string) error {
	if w.copyToClipboard == nil {
		return errClipboardUnsupported
	}
	return w.copyToClipboard(content)
}

func (w *MessageWriter) WriteToStdout(content string) error {
	_, err := fmt.Fprintln(w.stdout, content)
	return err
}

// WriteToFile replaces the file at path with content, newline terminated
func (w *MessageWriter) WriteToFile(content string, path string) error {
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write message to %s: %w", path, err)
	}
	return nil
}
