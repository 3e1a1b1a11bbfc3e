package template

import (
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"commitail-cli/internal/commitcfg"
)

// DefaultListTemplate renders one option per line, marking the default.
const DefaultListTemplate = `{{- range .Options -}}
{{ if .Default }}*{{ else }} {{ end }} {{ .Number }}. {{ .Label }}{{ with .Description }}  ({{ . }}){{ end }}
{{ end -}}
mode: {{ if .Manual }}interactive{{ else }}automatic{{ end }}, default: {{ .DefaultLabel | quote }}
`

// OptionView is one option as seen by a list template
type OptionView struct {
	Index       int
	Number      int
	Label       string
	Description string
	Default     bool
}

// ListData is the data handed to a list template
type ListData struct {
	ConfigPath   string
	Options      []OptionView
	Manual       bool
	DefaultIndex int
	DefaultLabel string
}

// NewListData builds the template view of cfg
func NewListData(path string, cfg *commitcfg.Config) ListData {
	data := ListData{
		ConfigPath:   path,
		Manual:       cfg.IsManual(),
		DefaultIndex: cfg.DefaultPosition(),
		DefaultLabel: cfg.DefaultOption().Label,
	}
	for i, option := range cfg.AppendOptions {
		data.Options = append(data.Options, OptionView{
			Index:       i,
			Number:      i + 1,
			Label:       option.Label,
			Description: option.Description,
			Default:     i == data.DefaultIndex,
		})
	}
	return data
}

// Processor parses and executes list templates
type Processor struct{}

// NewProcessor creates a new template processor
func NewProcessor() *Processor {
	return &Processor{}
}

// LoadTemplate parses a template. An empty source yields the default
// template; a source starting with '@' is read from the named file; anything
// else is parsed as template text.
func (p *Processor) LoadTemplate(source string) (*template.Template, error) {
	name := "list"
	text := source

	switch {
	case source == "":
		text = DefaultListTemplate
	case strings.HasPrefix(source, "@"):
		path := strings.TrimPrefix(source, "@")
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read template file %s: %w", path, err)
		}
		name = path
		text = string(content)
	}

	tmpl, err := template.New(name).Funcs(helpers()).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	return tmpl, nil
}

// Execute executes a template with the provided data
func (p *Processor) Execute(tmpl *template.Template, data ListData) (string, error) {
	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// Render loads source and executes it against cfg in one go
func (p *Processor) Render(source, path string, cfg *commitcfg.Config) (string, error) {
	tmpl, err := p.LoadTemplate(source)
	if err != nil {
		return "", err
	}
	return p.Execute(tmpl, NewListData(path, cfg))
}

// helpers merges the sprig functions with our own
func helpers() template.FuncMap {
	funcMap := sprig.TxtFuncMap()
	funcMap["truncate"] = truncateFunc
	funcMap["pad"] = padFunc
	return funcMap
}

// truncateFunc shortens text to length runes, ending in "..." when cut
func truncateFunc(length int, text string) string {
	runes := []rune(text)
	if len(runes) <= length {
		return text
	}
	if length <= 3 {
		return string(runes[:length])
	}
	return string(runes[:length-3]) + "..."
}

// padFunc right-pads text with spaces to width runes
func padFunc(width int, text string) string {
	n := len([]rune(text))
	if n >= width {
		return text
	}
	return text + strings.Repeat(" ", width-n)
}
