package template

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commitail-cli/internal/commitcfg"
)

func testConfig() *commitcfg.Config {
	manual := false
	index := 1
	return &commitcfg.Config{
		AppendOptions: []commitcfg.Option{
			commitcfg.PairedOption("[wip]", "work in progress"),
			commitcfg.PlainOption("[skip ci]"),
		},
		Manual:       &manual,
		DefaultIndex: &index,
	}
}

func TestProcessor_RenderDefault(t *testing.T) {
	processor := NewProcessor()

	out, err := processor.Render("", "/repo/commitail.config.json", testConfig())
	require.NoError(t, err)

	expected := "  1. [wip]  (work in progress)\n" +
		"* 2. [skip ci]\n" +
		"mode: automatic, default: \"[skip ci]\"\n"
	assert.Equal(t, expected, out)
}

func TestProcessor_LoadTemplate(t *testing.T) {
	tempDir := t.TempDir()
	templatePath := filepath.Join(tempDir, "labels.tmpl")
	require.NoError(t, os.WriteFile(templatePath, []byte(`{{ range .Options }}{{ .Label }};{{ end }}`), 0644))

	processor := NewProcessor()

	tests := []struct {
		name      string
		source    string
		wantError bool
	}{
		{name: "default template", source: ""},
		{name: "inline template", source: "{{ len .Options }}"},
		{name: "template from file", source: "@" + templatePath},
		{name: "missing template file", source: "@" + filepath.Join(tempDir, "missing.tmpl"), wantError: true},
		{name: "unparsable template", source: "{{ range .Options }", wantError: true},
		{name: "unknown function", source: "{{ nosuchfunc .Options }}", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := processor.LoadTemplate(tt.source)
			if tt.wantError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, tmpl)
		})
	}
}

func TestProcessor_Execute(t *testing.T) {
	processor := NewProcessor()
	data := NewListData("/repo/commitail.config.json", testConfig())

	tests := []struct {
		name     string
		template string
		expected string
	}{
		{
			name:     "labels joined with sprig",
			template: `{{ $labels := list }}{{ range .Options }}{{ $labels = append $labels .Label }}{{ end }}{{ join ", " $labels }}`,
			expected: "[wip], [skip ci]",
		},
		{
			name:     "config path and default index",
			template: `{{ base .ConfigPath }}#{{ .DefaultIndex }}`,
			expected: "commitail.config.json#1",
		},
		{
			name:     "upper via sprig",
			template: `{{ .DefaultLabel | upper }}`,
			expected: "[SKIP CI]",
		},
		{
			name:     "pad and truncate",
			template: `{{ range .Options }}[{{ pad 6 (truncate 6 .Label) }}]{{ end }}`,
			expected: "[[wip] ][[sk...]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := processor.LoadTemplate(tt.template)
			require.NoError(t, err)

			result, err := processor.Execute(tmpl, data)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestProcessor_ExecuteError(t *testing.T) {
	processor := NewProcessor()
	tmpl, err := processor.LoadTemplate(`{{ .NoSuchField }}`)
	require.NoError(t, err)

	_, err = processor.Execute(tmpl, ListData{})
	assert.Error(t, err)
}

func TestNewListData(t *testing.T) {
	data := NewListData("p", commitcfg.DefaultConfig())

	assert.True(t, data.Manual)
	assert.Equal(t, 0, data.DefaultIndex)
	assert.Equal(t, "[skip ci]", data.DefaultLabel)
	require.Len(t, data.Options, 4)
	assert.True(t, data.Options[0].Default)
	assert.False(t, data.Options[3].Default)
	assert.Equal(t, 4, data.Options[3].Number)
	assert.Equal(t, "🚀 deploy", data.Options[3].Label)
}

func TestHelperFunctions(t *testing.T) {
	tests := []struct {
		name     string
		function func() string
		expected string
	}{
		{
			name:     "truncateFunc short text",
			function: func() string { return truncateFunc(10, "short") },
			expected: "short",
		},
		{
			name:     "truncateFunc long text",
			function: func() string { return truncateFunc(10, "this is a very long text") },
			expected: "this is...",
		},
		{
			name:     "truncateFunc tiny length",
			function: func() string { return truncateFunc(2, "chore") },
			expected: "ch",
		},
		{
			name:     "truncateFunc counts runes",
			function: func() string { return truncateFunc(7, "🔧 chore") },
			expected: "🔧 chore",
		},
		{
			name:     "padFunc",
			function: func() string { return padFunc(5, "ab") },
			expected: "ab   ",
		},
		{
			name:     "padFunc wider text",
			function: func() string { return padFunc(2, "abc") },
			expected: "abc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.function())
		})
	}
}
