package suffix

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commitail-cli/internal/commitcfg"
	"commitail-cli/internal/interfaces"
)

type scriptedPicker struct {
	label string
	ok    bool
	err   error
	calls int
	items []interfaces.PickItem
}

func (p *scriptedPicker) Pick(ctx context.Context, message string, items []interfaces.PickItem) (string, bool, error) {
	p.calls++
	p.items = items
	return p.label, p.ok, p.err
}

func config(t *testing.T, text string) *commitcfg.Config {
	t.Helper()
	doc, err := commitcfg.Parse([]byte(text))
	require.NoError(t, err)
	result := commitcfg.Validate(doc)
	require.True(t, result.Valid, result.Message)
	return result.Config
}

func TestCompose(t *testing.T) {
	tests := []struct {
		name     string
		original string
		suffix   string
		want     Composed
	}{
		{name: "appends with one space", original: "fix: bug", suffix: "[wip]", want: Composed{Text: "fix: bug [wip]"}},
		{name: "trims the original", original: "  fix: bug \n", suffix: "[wip]", want: Composed{Text: "fix: bug [wip]"}},
		{name: "empty original", original: "", suffix: "[skip ci]", want: Composed{Text: "[skip ci]"}},
		{name: "whitespace original", original: " \n\t", suffix: "[skip ci]", want: Composed{Text: "[skip ci]"}},
		{name: "already suffixed", original: "fix: bug [wip]", suffix: "[wip]", want: Composed{Skip: true}},
		{name: "already suffixed with trailing space", original: "fix: bug [wip]  ", suffix: "[wip]", want: Composed{Skip: true}},
		{name: "suffix only inside message", original: "[wip] fix: bug", suffix: "[wip]", want: Composed{Text: "[wip] fix: bug [wip]"}},
		{name: "emoji suffix", original: "chore: deps", suffix: "🔧 chore", want: Composed{Text: "chore: deps 🔧 chore"}},
		{name: "suffix glued to text counts", original: "fix:bug[wip]", suffix: "[wip]", want: Composed{Skip: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compose(tt.original, tt.suffix))
		})
	}
}

func TestCompose_Properties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	suffixGen := gen.RegexMatch(`\[[a-z ]{1,10}\]`)

	properties.Property("composed text always ends with the suffix", prop.ForAll(
		func(original, suffix string) bool {
			c := Compose(original, suffix)
			return c.Skip || strings.HasSuffix(c.Text, suffix)
		},
		gen.AnyString(),
		suffixGen,
	))

	properties.Property("composing twice is a skip", prop.ForAll(
		func(original, suffix string) bool {
			first := Compose(original, suffix)
			if first.Skip {
				return true
			}
			return Compose(first.Text, suffix).Skip
		},
		gen.AnyString(),
		suffixGen,
	))

	properties.Property("composed text starts with the trimmed original", prop.ForAll(
		func(original, suffix string) bool {
			c := Compose(original, suffix)
			return c.Skip || strings.HasPrefix(c.Text, strings.TrimSpace(original))
		},
		gen.AlphaString(),
		suffixGen,
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestSelect_Automatic(t *testing.T) {
	picker := &scriptedPicker{}
	cfg := config(t, `{"appendOptions": ["[skip ci]", ["[wip]", "work in progress"]], "manual": false, "defaultIndex": 1}`)

	label, err := Select(context.Background(), cfg, picker)
	require.NoError(t, err)
	assert.Equal(t, "[wip]", label)
	assert.Zero(t, picker.calls)

	assert.Equal(t, Composed{Text: "fix: bug [wip]"}, Compose("fix: bug", label))
}

func TestSelect_AutomaticDefaultsToFirst(t *testing.T) {
	cfg := config(t, `{"appendOptions": ["a", "b"], "manual": false}`)
	label, err := Select(context.Background(), cfg, &scriptedPicker{})
	require.NoError(t, err)
	assert.Equal(t, "a", label)
}

func TestSelect_Interactive(t *testing.T) {
	cfg := config(t, `{"appendOptions": ["[skip ci]", ["[wip]", "work in progress"]]}`)

	t.Run("picked", func(t *testing.T) {
		picker := &scriptedPicker{label: "[wip]", ok: true}
		label, err := Select(context.Background(), cfg, picker)
		require.NoError(t, err)
		assert.Equal(t, "[wip]", label)
		assert.Equal(t, 1, picker.calls)
		assert.Equal(t, []interfaces.PickItem{
			{Label: "[skip ci]"},
			{Label: "[wip]", Description: "work in progress"},
		}, picker.items)
	})

	t.Run("dismissed", func(t *testing.T) {
		_, err := Select(context.Background(), cfg, &scriptedPicker{})
		assert.ErrorIs(t, err, interfaces.ErrCancelled)
	})

	t.Run("picker failed", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := Select(context.Background(), cfg, &scriptedPicker{err: boom})
		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, interfaces.ErrCancelled)
	})
}
