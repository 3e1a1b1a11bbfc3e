package interfaces

import (
	"context"
	"errors"
)

// ErrCancelled is returned when the user declines a pick or a confirmation.
// It is an accepted outcome and is never reported as a failure.
var ErrCancelled = errors.New("cancelled by user")

// PickItem is one entry shown by a Picker.
type PickItem struct {
	Label       string
	Description string
}

// Picker lets the user choose one item from an ordered list.
type Picker interface {
	// Pick returns the chosen label, or ok == false when nothing was chosen.
	Pick(ctx context.Context, message string, items []PickItem) (label string, ok bool, err error)
}

// Confirmer asks a yes/no question where yes is spelled by affirmative.
type Confirmer interface {
	Confirm(ctx context.Context, prompt, affirmative string) (bool, error)
}

// WorkspaceResolver locates the root directory the tool operates on.
type WorkspaceResolver interface {
	// Root returns the workspace root, or ok == false when none is open.
	Root() (root string, ok bool)
}
