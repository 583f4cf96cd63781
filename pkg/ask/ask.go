// Package ask prompts on the terminal for values a command was not given
// as flags.
package ask

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/pflag"
)

var templates = &promptui.PromptTemplates{
	Prompt:  "{{ . }}: ",
	Valid:   "{{ . | green }}: ",
	Invalid: "{{ . | red }}: ",
	Success: "{{ . | bold }}: ",
}

// runner is swapped in tests.
var runner = func(p promptui.Prompt) (string, error) { return p.Run() }

func required(input string) error {
	if strings.TrimSpace(input) == "" {
		return errors.New("empty")
	}
	return nil
}

// String asks for a non-empty value.
func String(label string) (string, error) {
	return runner(promptui.Prompt{
		Label:     label,
		Templates: templates,
		Validate:  required,
	})
}

// Secret asks for a non-empty value without echoing it.
func Secret(label string) (string, error) {
	return runner(promptui.Prompt{
		Label:       label,
		Templates:   templates,
		Validate:    required,
		Mask:        '*',
		HideEntered: true,
	})
}

// Confirm asks a yes/no question; empty input picks def.
func Confirm(label string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	result, err := runner(promptui.Prompt{
		Label:     fmt.Sprintf("%s [%s]", label, hint),
		Templates: templates,
		Validate: func(input string) error {
			if input == "" {
				return nil
			}
			_, err := ParseBool(input)
			return err
		},
	})
	if err != nil {
		return false, err
	}
	if result == "" {
		return def, nil
	}
	return ParseBool(result)
}

// Field names a flag to prompt for.
type Field struct {
	Flag   string
	Label  string
	Secret bool
}

// Flags prompts for every field whose flag was not set and stores the
// answer in the flag.
func Flags(fs *pflag.FlagSet, fields ...Field) error {
	for _, field := range fields {
		f := fs.Lookup(field.Flag)
		if f == nil {
			return fmt.Errorf("unknown flag %q", field.Flag)
		}
		if f.Changed {
			continue
		}
		label := field.Label
		if label == "" {
			label = f.Usage
		}
		ask := String
		if field.Secret {
			ask = Secret
		}
		v, err := ask(label)
		if err != nil {
			return fmt.Errorf("prompt for --%s: %w", f.Name, err)
		}
		if err := fs.Set(f.Name, v); err != nil {
			return err
		}
	}
	return nil
}

// ParseBool is strconv.ParseBool with the addition of Yes/No parsing.
func ParseBool(str string) (bool, error) {
	switch str {
	case "1", "t", "T", "true", "TRUE", "True", "y", "Y", "yes", "YES", "Yes":
		return true, nil
	case "0", "f", "F", "false", "FALSE", "False", "n", "N", "no", "NO", "No":
		return false, nil
	}
	return false, &strconv.NumError{Func: "ParseBool", Num: str, Err: strconv.ErrSyntax}
}
