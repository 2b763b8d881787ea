package validator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const attributePlaceholder = ":attribute"

// Messages maps a rule name to its message template.
// Templates may reference ":attribute" (the field name) and ":<rule>" (the first parameter).
type Messages map[string]string

var defaultMessages = Messages{
	"required":    "The :attribute field is required.",
	"email":       "The :attribute must be a valid email address.",
	"min":         "The :attribute must be at least :min characters.",
	"max":         "The :attribute may not be greater than :max characters.",
	"numeric":     "The :attribute must be a numeric value.",
	"string":      "The :attribute must be a string.",
	"array":       "The :attribute must be an array.",
	"in":          "The selected :attribute is invalid.",
	"date":        "The :attribute must be a valid date.",
	"date_format": "The :attribute does not match the format :date_format.",
	"url":         "The :attribute must be a valid URL.",
	"regex":       "The :attribute format is invalid.",
	"unique":      "The :attribute has already been taken.",
}

// DefaultMessages returns a copy of the built-in template table.
func DefaultMessages() Messages {
	return maps.Clone(defaultMessages)
}

// Merge returns a new table where overrides win over m.
func (m Messages) Merge(overrides map[string]string) Messages {
	out := maps.Clone(m)
	if out == nil {
		out = make(Messages, len(overrides))
	}
	maps.Copy(out, overrides)
	return out
}

// Render formats the failure message for field and rule.
//
// Only the first parameter is interpolated, through a placeholder named after
// the rule itself (":min" for min, ":date_format" for date_format). After the
// parameter pass ":attribute" is substituted a second time, so a parameter
// that contains ":attribute" is rendered with the field name.
func (m Messages) Render(field, rule string, params []string) string {
	var message string
	if tmpl, ok := m[rule]; ok {
		message = strings.ReplaceAll(tmpl, attributePlaceholder, field)
	} else {
		message = fmt.Sprintf(`The field "%s" did not pass the validation rule "%s".`, field, rule)
	}

	if len(params) > 0 {
		message = strings.ReplaceAll(message, ":"+rule, params[0])
		message = strings.ReplaceAll(message, attributePlaceholder, field)
	}

	return message
}

func unknownRuleMessage(rule string) string {
	return fmt.Sprintf(`This validation rule "%s" does not exist.`, rule)
}

// LoadMessages reads a flat "rule: template" table from a YAML or JSON file.
func LoadMessages(ctx context.Context, path string) (Messages, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadMessages, err)
	}
	return ParseMessages(ctx, data, filepath.Ext(path))
}

// ParseMessages decodes a template table. ext selects the format and may
// include the leading dot: "yaml", "yml" or "json".
func ParseMessages(ctx context.Context, data []byte, ext string) (Messages, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrFailedToParseMessages, err)
	}

	var raw map[string]any
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, errors.Join(ErrFailedToParseMessages, err)
		}
	case "json":
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, errors.Join(ErrFailedToParseMessages, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMessagesFormat, ext)
	}

	messages := make(Messages, len(raw))
	for rule, val := range raw {
		tmpl, ok := val.(string)
		if !ok {
			return nil, fmt.Errorf("%w: template for rule %q must be a string, got %T", ErrFailedToParseMessages, rule, val)
		}
		messages[rule] = tmpl
	}

	return messages, nil
}
