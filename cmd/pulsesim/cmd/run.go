// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var presses int

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Press the button and count pulses",
	Long: `Press the button a number of times (-n, default from PULSESIM_PRESSES) and
print the number of low and high pulses delivered, then their product.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := loadNetwork()
		if err != nil {
			return err
		}
		count := env.Presses
		if cmd.Flags().Changed("presses") {
			count = presses
		}
		start := time.Now()
		t, err := n.PressN(count)
		if err != nil {
			return err
		}
		elapsed := time.Since(start)
		logger.Info("run", zap.Int("presses", count), zap.Uint64("low", t.Low), zap.Uint64("high", t.High))
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "low: %d\nhigh: %d\n", t.Low, t.High)
		fmt.Fprintf(out, "Result: %d in %v\n", t.Product(), elapsed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().IntVarP(&presses, "presses", "n", 1000, "number of button presses")
}
