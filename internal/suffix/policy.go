// Package suffix decides which suffix to append and what the resulting
// commit message looks like.
package suffix

import (
	"context"
	"fmt"
	"strings"

	"commitail-cli/internal/commitcfg"
	"commitail-cli/internal/interfaces"
)

// PickMessage is shown above the interactive suffix list.
const PickMessage = "Select the suffix to append to the commit message:"

// Items converts config options into picker entries, preserving order.
func Items(cfg *commitcfg.Config) []interfaces.PickItem {
	items := make([]interfaces.PickItem, 0, len(cfg.AppendOptions))
	for _, opt := range cfg.AppendOptions {
		items = append(items, interfaces.PickItem{Label: opt.Label, Description: opt.Description})
	}
	return items
}

// Select returns the suffix to append. With manual == false it takes the
// option at defaultIndex (0 when absent) without interaction; otherwise it
// asks picker and returns interfaces.ErrCancelled when nothing is chosen.
func Select(ctx context.Context, cfg *commitcfg.Config, picker interfaces.Picker) (string, error) {
	if !cfg.IsManual() {
		return cfg.DefaultOption().Label, nil
	}

	label, ok, err := picker.Pick(ctx, PickMessage, Items(cfg))
	if err != nil {
		return "", fmt.Errorf("failed to pick suffix: %w", err)
	}
	if !ok {
		return "", interfaces.ErrCancelled
	}
	return label, nil
}

// Composed is the outcome of Compose: either Skip, or a new message Text.
type Composed struct {
	Skip bool
	Text string
}

// Compose appends suffix to original separated by a single space. When the
// trimmed original already ends with suffix the result is a Skip.
func Compose(original, suffix string) Composed {
	trimmed := strings.TrimSpace(original)
	if strings.HasSuffix(trimmed, suffix) {
		return Composed{Skip: true}
	}
	if trimmed == "" {
		return Composed{Text: suffix}
	}
	return Composed{Text: trimmed + " " + suffix}
}
