// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"bufio"
	"context"
	"io"

	"github.com/mattn/go-shellwords"

	"github.com/ava-labs/countervm/utils"
)

// Console reads command lines from [in] and passes their words to [exec]
// until "exit", EOF or [ctx] is done. A failed command is printed and the
// console keeps reading.
func Console(ctx context.Context, in io.Reader, exec func(context.Context, []string) error) error {
	parser := shellwords.NewParser()
	parser.ParseEnv = true

	scanner := bufio.NewScanner(in)
	utils.Outf("{{cyan}}counter-cli console{{/}} (type exit to quit)\n")
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		utils.Outf("{{bold}}>{{/}} ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		args, err := parser.Parse(scanner.Text())
		if err != nil {
			utils.Outf("{{red}}invalid input:{{/}} %v\n", err)
			continue
		}
		if len(args) == 0 {
			continue
		}
		if args[0] == "exit" || args[0] == "quit" {
			return nil
		}
		if err := exec(ctx, args); err != nil {
			utils.Outf("{{red}}error:{{/}} %v\n", err)
		}
	}
}
