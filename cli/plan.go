// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v2"
)

const (
	KeyStep     = "key"
	CountStep   = "count"
	BalanceStep = "balance"
)

type Plan struct {
	// The name of the plan.
	Name string `json:"name" yaml:"name"`
	// A description of the plan.
	Description string `json:"description" yaml:"description"`
	// Steps performed in order during simulation.
	Steps []Step `json:"steps" yaml:"steps"`
}

type Step struct {
	Description string `json:"description" yaml:"description"`
	// Action is one of key, initialize, increment, decrement, count or
	// balance.
	Action string `json:"action" yaml:"action"`
	// Key names the signer of an instruction, the key created by a key
	// step or the account of a balance step.
	Key string `json:"key,omitempty" yaml:"key,omitempty"`
	// Require holds assertions against the outcome of this step.
	Require *Require `json:"require,omitempty" yaml:"require,omitempty"`
}

type Require struct {
	// Success requires an instruction to succeed (true) or revert (false).
	Success *bool `json:"success,omitempty" yaml:"success,omitempty"`
	// Error requires an instruction to revert with an error containing
	// this text, such as "Underflow".
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
	// Result is compared to the count, or to the balance of a balance step.
	Result *ResultAssertion `json:"result,omitempty" yaml:"result,omitempty"`
}

type ResultAssertion struct {
	// The operator to use for the assertion.
	Operator string `json:"operator" yaml:"operator"`
	// The value to compare against.
	Value string `json:"value" yaml:"value"`
}

type Operator string

const (
	NumericGt Operator = ">"
	NumericLt Operator = "<"
	NumericGe Operator = ">="
	NumericLe Operator = "<="
	NumericEq Operator = "=="
	NumericNe Operator = "!="
)

// Verify checks that every step names a known action and carries the key
// it needs.
func (p *Plan) Verify() error {
	if len(p.Steps) == 0 {
		return fmt.Errorf("%w: no steps found", ErrInvalidPlan)
	}
	for i, step := range p.Steps {
		switch step.Action {
		case CountStep:
		case KeyStep, BalanceStep, InitializeInstruction, IncrementInstruction, DecrementInstruction:
			if step.Key == "" {
				return fmt.Errorf("%w %d: %s requires a key", ErrInvalidStep, i, step.Action)
			}
		default:
			return fmt.Errorf("%w %d: unknown action %q", ErrInvalidStep, i, step.Action)
		}
		if step.Require == nil || step.Require.Result == nil {
			continue
		}
		if _, err := validateAssertion(0, step.Require.Result); err != nil {
			return fmt.Errorf("%w %d: %w", ErrInvalidStep, i, err)
		}
	}
	return nil
}

// validateAssertion reports whether [actual] satisfies [assertion].
func validateAssertion(actual uint64, assertion *ResultAssertion) (bool, error) {
	value, err := strconv.ParseUint(assertion.Value, 10, 64)
	if err != nil {
		return false, err
	}
	switch Operator(assertion.Operator) {
	case NumericGt:
		return actual > value, nil
	case NumericLt:
		return actual < value, nil
	case NumericGe:
		return actual >= value, nil
	case NumericLe:
		return actual <= value, nil
	case NumericEq:
		return actual == value, nil
	case NumericNe:
		return actual != value, nil
	default:
		return false, fmt.Errorf("unknown operator %q", assertion.Operator)
	}
}

// ReadPlan decodes a JSON or YAML plan from [r].
func ReadPlan(r io.Reader) (*Plan, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return unmarshalPlan(b)
}

func unmarshalPlan(bytes []byte) (*Plan, error) {
	var p Plan
	switch {
	case isJSON(bytes):
		if err := json.Unmarshal(bytes, &p); err != nil {
			return nil, err
		}
	case isYAML(bytes):
		if err := yaml.Unmarshal(bytes, &p); err != nil {
			return nil, err
		}
	default:
		return nil, ErrInvalidFormat
	}
	return &p, nil
}

func isJSON(b []byte) bool {
	var js map[string]interface{}
	return json.Unmarshal(b, &js) == nil
}

func isYAML(b []byte) bool {
	if len(strings.TrimSpace(string(b))) == 0 {
		return false
	}
	var y map[string]interface{}
	return yaml.Unmarshal(b, &y) == nil
}
