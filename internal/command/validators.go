// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"

	"github.com/tfctl/apidiff/internal/output"
	"github.com/tfctl/apidiff/internal/publisher"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

func OutputValidator(value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("must be one of %v", output.Formats)
	}
	_, err := output.ParseFormat(s)
	return err
}

func PositiveValidator(value any) error {
	if n, ok := value.(int); !ok || n <= 0 {
		return fmt.Errorf("must be a positive number, got %v", value)
	}
	return nil
}

func RepoValidator(value any) error {
	s, _ := value.(string)
	_, _, err := publisher.SplitRepo(s)
	return err
}
