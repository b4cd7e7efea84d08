package config

import (
	"fmt"
	"sort"
)

// IOError wraps a failure to read the config file itself (not a content
// problem).
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("reading config %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// ParseError wraps a TOML syntax or type error while decoding the config
// file.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing config %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError reports a single out-of-range or invalid-enum setting.
// Message is formatted exactly as the CLI/MCP surfaces it to the user.
type ValidationError struct {
	Decree  string
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("decree.%s.%s: %s", e.Decree, e.Field, e.Message)
}

type intRange struct {
	min, max int
	common   string
}

var intRanges = map[string]intRange{
	"tab-width":       {1, 16, "2, 4, or 8"},
	"max-line-length": {40, 500, "80, 100, or 120"},
	"max-lines":       {50, 5000, "300, 500, or 1000"},
}

var enumValues = map[string][]string{
	"trailing-whitespace":  {"deny", "allow"},
	"tabs-vs-spaces":       {"tabs", "spaces", "either"},
	"final-newline":        {"require", "allow"},
	"line-endings":         {"lf", "crlf", "either"},
	"blank-line-whitespace": {"deny", "allow"},
}

// Validate range- and enum-checks every decree's settings and returns the
// first violation found. Range errors use the exact message format required
// downstream: "{value} is outside the range {min}-{max} - common values are
// {suggestions}".
func Validate(cfg *DictateConfig) error {
	names := make([]string, 0, len(cfg.Decree))
	for name := range cfg.Decree {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		settings := cfg.Decree[name]
		if err := validateIntField(name, "tab-width", settings.TabWidth); err != nil {
			return err
		}
		if err := validateIntField(name, "max-line-length", settings.MaxLineLength); err != nil {
			return err
		}
		if err := validateIntField(name, "max-lines", settings.MaxLines); err != nil {
			return err
		}
		if err := validateEnumField(name, "trailing-whitespace", settings.TrailingWhitespace); err != nil {
			return err
		}
		if err := validateEnumField(name, "tabs-vs-spaces", settings.TabsVsSpaces); err != nil {
			return err
		}
		if err := validateEnumField(name, "final-newline", settings.FinalNewline); err != nil {
			return err
		}
		if err := validateEnumField(name, "line-endings", settings.LineEndings); err != nil {
			return err
		}
		if err := validateEnumField(name, "blank-line-whitespace", settings.BlankLineWhitespace); err != nil {
			return err
		}
	}
	return nil
}

func validateIntField(decree, field string, value *int) error {
	if value == nil {
		return nil
	}
	r, ok := intRanges[field]
	if !ok {
		return nil
	}
	if *value < r.min || *value > r.max {
		return &ValidationError{
			Decree: decree,
			Field:  field,
			Message: fmt.Sprintf(
				"%d is outside the range %d-%d - common values are %s",
				*value, r.min, r.max, r.common,
			),
		}
	}
	return nil
}

func validateEnumField(decree, field string, value *string) error {
	if value == nil {
		return nil
	}
	allowed, ok := enumValues[field]
	if !ok {
		return nil
	}
	for _, v := range allowed {
		if v == *value {
			return nil
		}
	}
	return &ValidationError{
		Decree:  decree,
		Field:   field,
		Message: fmt.Sprintf("%q is not one of %s", *value, joinQuoted(allowed)),
	}
}

func joinQuoted(values []string) string {
	out := ""
	for i, v := range values {
		if i > 0 {
			out += ", "
		}
		out += `"` + v + `"`
	}
	return out
}
