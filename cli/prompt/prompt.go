// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package prompt

import (
	"errors"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/utils"
)

var (
	ErrInputEmpty      = errors.New("input is empty")
	ErrInvalidChoice   = errors.New("invalid choice")
	ErrIndexOutOfRange = errors.New("index out-of-range")
)

func Address(label string) (codec.Address, error) {
	promptText := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			if len(input) == 0 {
				return ErrInputEmpty
			}
			_, err := codec.ParseAddress(input)
			return err
		},
	}
	recipient, err := promptText.Run()
	if err != nil {
		return codec.EmptyAddress, err
	}
	return codec.ParseAddress(strings.TrimSpace(recipient))
}

// Choice asks for an index in [0, maxChoice). A single option is selected
// without asking.
func Choice(label string, maxChoice int) (int, error) {
	if maxChoice == 1 {
		utils.Outf("{{yellow}}%s:{{/}} 0 [auto-selected]\n", label)
		return 0, nil
	}
	promptText := promptui.Prompt{
		Label:    label,
		Validate: ValidateChoice(maxChoice),
	}
	rawIndex, err := promptText.Run()
	if err != nil {
		return -1, err
	}
	return strconv.Atoi(strings.TrimSpace(rawIndex))
}

func ValidateChoice(maxChoice int) promptui.ValidateFunc {
	return func(input string) error {
		if len(input) == 0 {
			return ErrInputEmpty
		}
		index, err := strconv.Atoi(input)
		if err != nil {
			return err
		}
		if index >= maxChoice || index < 0 {
			return ErrIndexOutOfRange
		}
		return nil
	}
}

func Bool(label string) (bool, error) {
	promptText := promptui.Prompt{
		Label:    label + " (y/n)",
		Validate: ValidateBool,
	}
	rawContinue, err := promptText.Run()
	if err != nil {
		return false, err
	}
	return strings.ToLower(strings.TrimSpace(rawContinue)) == "y", nil
}

func ValidateBool(input string) error {
	if len(input) == 0 {
		return ErrInputEmpty
	}
	lower := strings.ToLower(input)
	if lower == "y" || lower == "n" {
		return nil
	}
	return ErrInvalidChoice
}
