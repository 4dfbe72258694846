// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package cmd

import (
	"fmt"
	"time"

	"github.com/db47h/pulsesim/filter"
	"github.com/spf13/cobra"
)

var untilCmd = &cobra.Command{
	Use:   "until <expr>",
	Short: "Press the button until a pulse matches an expression",
	Long: `Press the button until a delivered pulse matches expr and print the press
number. The expression has access to the following variables:

	from   name of the sending module ("button" for the button)
	to     name of the receiving module
	kind   kind of the receiving module
	high   true for a high pulse
	low    true for a low pulse
	press  current press number

For example:

	pulsesim until -i input.txt 'to == "rx" && low'`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := loadNetwork()
		if err != nil {
			return err
		}
		f, err := filter.Compile(args[0])
		if err != nil {
			return err
		}
		start := time.Now()
		p, err := filter.PressUntil(n, f, pressLimit(cmd))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Result: %d in %v\n", p, time.Since(start))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(untilCmd)
	untilCmd.Flags().Uint64Var(&limit, "limit", 0, "maximum number of presses")
}
