package commitcfg

import (
	"encoding/json"
	"fmt"
	"math"
)

// Validation messages, one per rule, in the order the rules are applied.
const (
	MsgMalformed          = "config file is empty or malformed"
	MsgOptionsNotArray    = "appendOptions must be an array"
	MsgOptionsEmpty       = "appendOptions cannot be empty"
	MsgOptionType         = "each element of appendOptions must be a string or a 2-length string pair"
	MsgManualType         = "manual must be boolean"
	MsgDefaultIndexType   = "defaultIndex must be a number"
	msgDefaultIndexFormat = "defaultIndex out of range, must be between 0 and %d"
)

// ValidationResult is either valid, with Config set and Message empty, or
// invalid, with Message set and Config nil.
type ValidationResult struct {
	Valid   bool
	Message string
	Config  *Config
}

func invalid(message string) ValidationResult {
	return ValidationResult{Message: message}
}

// Parse decodes raw file content into the loosely typed value Validate expects.
func Parse(data []byte) (any, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Validate checks a decoded JSON document and builds a Config from it.
// Rules are applied in order and the first failure wins.
func Validate(candidate any) ValidationResult {
	doc, ok := candidate.(map[string]any)
	if !ok || doc == nil {
		return invalid(MsgMalformed)
	}

	rawOptions, ok := doc["appendOptions"].([]any)
	if !ok {
		return invalid(MsgOptionsNotArray)
	}
	if len(rawOptions) == 0 {
		return invalid(MsgOptionsEmpty)
	}

	options := make([]Option, 0, len(rawOptions))
	for _, raw := range rawOptions {
		opt, ok := parseOption(raw)
		if !ok {
			return invalid(MsgOptionType)
		}
		options = append(options, opt)
	}

	cfg := &Config{AppendOptions: options}

	if raw, present := doc["manual"]; present {
		manual, ok := raw.(bool)
		if !ok {
			return invalid(MsgManualType)
		}
		cfg.Manual = &manual
	}

	if raw, present := doc["defaultIndex"]; present {
		index, ok := asInteger(raw)
		if !ok {
			return invalid(MsgDefaultIndexType)
		}
		if index < 0 || index >= float64(len(options)) {
			return invalid(fmt.Sprintf(msgDefaultIndexFormat, len(options)-1))
		}
		position := int(index)
		cfg.DefaultIndex = &position
	}

	return ValidationResult{Valid: true, Config: cfg}
}

// parseOption accepts a string or an array whose first two entries are
// strings; anything past the second entry is ignored.
func parseOption(raw any) (Option, bool) {
	switch v := raw.(type) {
	case string:
		return PlainOption(v), true
	case []any:
		if len(v) < 2 {
			return Option{}, false
		}
		label, ok := v[0].(string)
		if !ok {
			return Option{}, false
		}
		description, ok := v[1].(string)
		if !ok {
			return Option{}, false
		}
		return PairedOption(label, description), true
	case []string:
		if len(v) < 2 {
			return Option{}, false
		}
		return PairedOption(v[0], v[1]), true
	default:
		return Option{}, false
	}
}

// asInteger reports whether raw is a whole number. encoding/json decodes
// every number as float64, so 1.0 counts as an integer and 1.5 does not.
func asInteger(raw any) (float64, bool) {
	var f float64
	switch v := raw.(type) {
	case float64:
		f = v
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return f, true
}
