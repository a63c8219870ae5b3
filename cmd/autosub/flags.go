package main

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"autosub/internal/language"
	"autosub/internal/services/whisperx"
	"autosub/internal/transcript"
)

// boolValue accepts yes/no style spellings so "--srt_only True" and
// "--srt_only=n" both parse. A value is always required.
type boolValue struct {
	value *bool
}

var _ pflag.Value = (*boolValue)(nil)

func newBoolValue(p *bool, def bool) *boolValue {
	*p = def
	return &boolValue{value: p}
}

func (b *boolValue) String() string {
	if b.value == nil {
		return "false"
	}
	if *b.value {
		return "true"
	}
	return "false"
}

func (b *boolValue) Set(s string) error {
	parsed, err := parseBool(s)
	if err != nil {
		return err
	}
	*b.value = parsed
	return nil
}

func (b *boolValue) Type() string { return "boolean" }

func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "t", "y", "1":
		return true, nil
	case "no", "false", "f", "n", "0":
		return false, nil
	default:
		return false, fmt.Errorf("boolean value expected, got %q", s)
	}
}

// choiceValue restricts a string flag to a normalized set of values.
type choiceValue struct {
	value     *string
	typeName  string
	normalize func(string) (string, error)
}

var _ pflag.Value = (*choiceValue)(nil)

func (c *choiceValue) String() string {
	if c.value == nil {
		return ""
	}
	return *c.value
}

func (c *choiceValue) Set(s string) error {
	normalized, err := c.normalize(s)
	if err != nil {
		return err
	}
	*c.value = normalized
	return nil
}

func (c *choiceValue) Type() string { return c.typeName }

func newModelValue(p *string, def string) *choiceValue {
	*p = def
	return &choiceValue{value: p, typeName: "model", normalize: func(s string) (string, error) {
		s = strings.TrimSpace(s)
		if !whisperx.IsKnownModel(s) {
			return "", fmt.Errorf("invalid choice %q (choose from %s)", s, strings.Join(whisperx.AvailableModels(), ", "))
		}
		return s, nil
	}}
}

func newTaskValue(p *string, def string) *choiceValue {
	*p = def
	return &choiceValue{value: p, typeName: "task", normalize: func(s string) (string, error) {
		task, err := transcript.ParseTask(s)
		return string(task), err
	}}
}

func newLanguageValue(p *string, def string) *choiceValue {
	*p = def
	return &choiceValue{value: p, typeName: "language", normalize: language.Normalize}
}
