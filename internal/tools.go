package internal

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

type promptValidator func(string) (bool, string)

type promptConfig struct {
	tries     int
	validator promptValidator
}

type promptOption func(*promptConfig)

func WithValidator(v promptValidator) promptOption {
	return func(cfg *promptConfig) {
		cfg.validator = v
	}
}

func WithMaxTries(i int) promptOption {
	return func(cfg *promptConfig) {
		cfg.tries = i
	}
}

// Prompt writes a prompt and reads one line, re-prompting until the
// validator accepts the input or the try limit is hit.
func Prompt(rw io.ReadWriter, prompt string, opts ...promptOption) (string, error) {
	config := &promptConfig{}
	for _, opt := range opts {
		opt(config)
	}

	scanner := bufio.NewScanner(rw)

	tries := 0
	for {
		if _, err := rw.Write([]byte(prompt)); err != nil {
			return "", err
		}

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", err
			}
			return "", io.EOF
		}
		input := strings.TrimSpace(scanner.Text())

		if config.validator != nil {
			ok, msg := config.validator(input)
			if !ok {
				rw.Write([]byte(msg))

				tries++
				if config.tries > 0 && config.tries == tries {
					rw.Write([]byte("too many tries\n"))
					return "", fmt.Errorf("too many tries")
				}

				continue
			}
		}

		return input, nil
	}
}

func PromptYN(rw io.ReadWriter, prompt string) (bool, error) {
	str, err := Prompt(rw, prompt, WithValidator(
		func(str string) (bool, string) {
			switch strings.ToLower(str) {
			case "y", "yes", "n", "no":
				return true, ""
			default:
				return false, "enter 'yes' or 'no'\n"
			}
		},
	))
	if err != nil {
		return false, err
	}

	switch strings.ToLower(str) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// Select writes a numbered menu and returns the index of the chosen option.
func Select(rw io.ReadWriter, prompt string, options []string) (int, error) {
	var menu strings.Builder
	for i, o := range options {
		fmt.Fprintf(&menu, "  %d) %s\n", i+1, o)
	}
	if _, err := rw.Write([]byte(menu.String())); err != nil {
		return 0, err
	}

	choice := 0
	_, err := Prompt(rw, prompt, WithValidator(
		func(str string) (bool, string) {
			n, err := strconv.Atoi(str)
			if err != nil || n < 1 || n > len(options) {
				return false, fmt.Sprintf("enter a number between 1 and %d\n", len(options))
			}
			choice = n - 1
			return true, ""
		},
	))
	if err != nil {
		return 0, err
	}

	return choice, nil
}
