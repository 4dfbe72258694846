// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package cmd

import (
	"fmt"
	"time"

	"github.com/db47h/pulsesim"
	"github.com/spf13/cobra"
)

var (
	verify      bool
	workers     int
	allowShared bool
)

var predictCmd = &cobra.Command{
	Use:   "predict [target]",
	Short: "Predict the first press on which a module receives a low pulse",
	Long: `Predict the first press on which target (default rx) receives a low pulse.

The target must be a conjunction or be fed by a single conjunction. Each input
of that conjunction is simulated until it first sends a high pulse; the result
is the least common multiple of these presses. This assumes that each input
sends high exactly on multiples of its first hit, which --verify partially
checks.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := loadNetwork()
		if err != nil {
			return err
		}
		target := "rx"
		if len(args) > 0 {
			target = args[0]
		}
		id, err := lookup(n, target)
		if err != nil {
			return err
		}
		a := pulsesim.Analyzer{
			Limit:       pressLimit(cmd),
			Workers:     env.Workers,
			Verify:      verify,
			AllowShared: allowShared,
			Logger:      logger,
		}
		if cmd.Flags().Changed("workers") {
			a.Workers = workers
		}
		start := time.Now()
		p, err := a.Predict(n, id)
		if err != nil {
			return err
		}
		elapsed := time.Since(start)
		out := cmd.OutOrStdout()
		for i, f := range p.Feeders {
			fmt.Fprintf(out, "%s: %d\n", n.Name(f), p.Hits[i])
		}
		fmt.Fprintf(out, "Result: %d in %v\n", p.Press, elapsed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(predictCmd)
	f := predictCmd.Flags()
	f.BoolVar(&verify, "verify", false, "check that each feeder hits again at twice its first hit")
	f.IntVarP(&workers, "workers", "w", 0, "number of parallel simulations")
	f.BoolVar(&allowShared, "allow-shared", false, "accept feeders with shared upstream modules")
	f.Uint64Var(&limit, "limit", 0, "maximum number of presses per feeder")
}
