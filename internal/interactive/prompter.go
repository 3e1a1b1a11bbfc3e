package interactive

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"golang.org/x/term"

	"commitail-cli/internal/interfaces"
)

// CancelLabel is the negative answer offered next to an affirmative one.
const CancelLabel = "Cancel"

// Prompter handles interactive user input collection. It implements both
// interfaces.Picker and interfaces.Confirmer.
type Prompter struct {
	in           io.Reader
	out          io.Writer
	numberSelect bool
	isTerminal   func() bool
}

// NewPrompter creates a new interactive prompter on the process's stdio
func NewPrompter(numberSelect bool) *Prompter {
	return &Prompter{
		in:           os.Stdin,
		out:          os.Stderr,
		numberSelect: numberSelect,
		isTerminal:   func() bool { return term.IsTerminal(int(os.Stdin.Fd())) },
	}
}

// newLinePrompter creates a prompter that always reads numbered answers
// line by line from in
func newLinePrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:           in,
		out:          out,
		numberSelect: true,
		isTerminal:   func() bool { return false },
	}
}

// Pick implements interfaces.Picker
func (p *Prompter) Pick(ctx context.Context, message string, items []interfaces.PickItem) (string, bool, error) {
	if len(items) == 0 {
		return "", false, nil
	}
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = item.Label
	}

	if p.numberSelect || !p.isTerminal() {
		index, ok, err := p.selectWithNumbers(message, displayLines(items))
		if err != nil || !ok {
			return "", false, err
		}
		return labels[index], true, nil
	}

	prompt := &survey.Select{
		Message: message,
		Options: labels,
		Description: func(_ string, index int) string {
			return items[index].Description
		},
	}

	var index int
	if err := survey.AskOne(prompt, &index); err != nil {
		if isCancel(err) {
			return "", false, nil
		}
		return "", false, err
	}

	return labels[index], true, nil
}

// Confirm implements interfaces.Confirmer. The negative answer is the default.
func (p *Prompter) Confirm(ctx context.Context, prompt, affirmative string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	options := []string{affirmative, CancelLabel}

	if p.numberSelect || !p.isTerminal() {
		index, ok, err := p.selectWithNumbers(prompt, options)
		if err != nil || !ok {
			return false, err
		}
		return index == 0, nil
	}

	selectPrompt := &survey.Select{
		Message: prompt,
		Options: options,
		Default: CancelLabel,
	}

	var selected string
	if err := survey.AskOne(selectPrompt, &selected); err != nil {
		if isCancel(err) {
			return false, nil
		}
		return false, err
	}

	return selected == affirmative, nil
}

// displayLines renders items as "label  (description)"
func displayLines(items []interfaces.PickItem) []string {
	lines := make([]string, len(items))
	for i, item := range items {
		if item.Description != "" {
			lines[i] = fmt.Sprintf("%s  (%s)", item.Label, item.Description)
		} else {
			lines[i] = item.Label
		}
	}
	return lines
}

// selectWithNumbers displays numbered options and returns the chosen index.
// On a terminal a single key press selects; elsewhere a line is read.
func (p *Prompter) selectWithNumbers(message string, options []string) (int, bool, error) {
	fmt.Fprintf(p.out, "\n%s\n\n", message)
	for i, option := range options {
		fmt.Fprintf(p.out, "  %d. %s\n", i+1, option)
	}
	fmt.Fprintln(p.out)

	if !p.isTerminal() || len(options) > 9 {
		return p.fallbackNumberSelection(options)
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		// Fallback to line input if raw mode fails
		return p.fallbackNumberSelection(options)
	}
	defer term.Restore(fd, oldState)

	fmt.Fprint(p.out, "Select option: ")

	buffer := make([]byte, 1)
	for {
		if _, err := p.in.Read(buffer); err != nil {
			if errors.Is(err, io.EOF) {
				return 0, false, nil
			}
			return 0, false, err
		}

		char := buffer[0]

		// Handle number keys (1-9)
		if char >= '1' && char <= '9' {
			selectedIndex := int(char - '1')
			if selectedIndex < len(options) {
				fmt.Fprintf(p.out, "%c\r\n", char)
				return selectedIndex, true, nil
			}
		}

		// Handle Escape or Ctrl+C
		if char == 27 || char == 3 {
			fmt.Fprint(p.out, "\r\n")
			return 0, false, nil
		}
	}
}

// fallbackNumberSelection reads a 1-based number from a line of input. An
// empty line or end of input means no selection.
func (p *Prompter) fallbackNumberSelection(options []string) (int, bool, error) {
	fmt.Fprintf(p.out, "Enter number (1-%d), or press Enter to cancel: ", len(options))

	reader := bufio.NewReader(p.in)
	input, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, false, err
	}

	input = strings.TrimSpace(input)
	if input == "" {
		return 0, false, nil
	}

	selectedIndex, err := strconv.Atoi(input)
	if err != nil {
		return 0, false, fmt.Errorf("invalid input: please enter a number between 1 and %d", len(options))
	}

	// Validate range (convert from 1-based to 0-based)
	if selectedIndex < 1 || selectedIndex > len(options) {
		return 0, false, fmt.Errorf("invalid selection: please enter a number between 1 and %d", len(options))
	}

	return selectedIndex - 1, true, nil
}

// isCancel reports whether err is survey's way of saying the user backed out
func isCancel(err error) bool {
	return errors.Is(err, terminal.InterruptErr) || errors.Is(err, io.EOF)
}
