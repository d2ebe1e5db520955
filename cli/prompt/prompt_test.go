// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package prompt

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateChoice(t *testing.T) {
	tests := []struct {
		input       string
		expectedErr error
	}{
		{"0", nil},
		{"2", nil},
		{"3", ErrIndexOutOfRange},
		{"-1", ErrIndexOutOfRange},
		{"", ErrInputEmpty},
		{"one", strconv.ErrSyntax},
	}
	validate := ValidateChoice(3)
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.ErrorIs(t, validate(tt.input), tt.expectedErr)
		})
	}
}

func TestValidateBool(t *testing.T) {
	require := require.New(t)
	require.NoError(ValidateBool("y"))
	require.NoError(ValidateBool("N"))
	require.ErrorIs(ValidateBool(""), ErrInputEmpty)
	require.ErrorIs(ValidateBool("maybe"), ErrInvalidChoice)
}

func TestChoiceAutoSelects(t *testing.T) {
	index, err := Choice("key", 1)
	require.NoError(t, err)
	require.Zero(t, index)
}
