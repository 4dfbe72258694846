// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var limit uint64

var firstCmd = &cobra.Command{
	Use:   "first <module>",
	Short: "Find the first press on which a module sends a high pulse",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := loadNetwork()
		if err != nil {
			return err
		}
		id, err := lookup(n, args[0])
		if err != nil {
			return err
		}
		start := time.Now()
		p, err := n.FindFirstHigh(id, pressLimit(cmd))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Result: %d in %v\n", p, time.Since(start))
		return nil
	},
}

// pressLimit returns the --limit flag value if set, the configured limit
// otherwise.
//
func pressLimit(cmd *cobra.Command) uint64 {
	if cmd.Flags().Changed("limit") {
		return limit
	}
	return env.Limit
}

func init() {
	rootCmd.AddCommand(firstCmd)
	firstCmd.Flags().Uint64Var(&limit, "limit", 0, "maximum number of presses")
}
